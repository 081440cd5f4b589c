// Briefwise fetches newsletter emails from Gmail, indexes them in a
// local vector database and answers questions or produces summaries
// over the stored content with Gemini.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driven/config/file"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driven/llm/gemini"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driven/storage/sqlite"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driven/tokencount"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driven/vectorstore/chromem"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/cli"
	"github.com/briefwise-labs/briefwise-cli/internal/adapters/driving/tui/components/params"
	"github.com/briefwise-labs/briefwise-cli/internal/connectors/google"
	gmailconn "github.com/briefwise-labs/briefwise-cli/internal/connectors/google/gmail"
	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driven"
	"github.com/briefwise-labs/briefwise-cli/internal/core/services"
	"github.com/briefwise-labs/briefwise-cli/internal/normalisers/newsletter"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

// run returns the process exit code. Exiting through a return value
// instead of os.Exit lets the deferred cleanup close the catalog even
// when a command fails.
func run() int {
	cfg, err := file.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	cli.SetVersion(version)

	// Commands that need the core service report the validation problem;
	// version and help still work without any configuration.
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		digest, cleanup, err := buildDigestService(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initialising services: %v\n", err)
			return 1
		}
		defer cleanup()

		cli.SetDigestService(digest)
		cli.SetTUIConfig(&cli.TUIConfig{Defaults: params.Defaults{
			Temperature: cfg.Defaults.Temperature,
			MaxTokens:   cfg.Defaults.MaxTokens,
			WindowDays:  cfg.Defaults.WindowDays,
			TopK:        cfg.Defaults.TopK,
		}})
	}

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}

// buildDigestService wires the storage, model and mailbox adapters into
// the digest service. The returned cleanup closes the catalog.
func buildDigestService(cfg *file.Config) (*services.DigestService, func(), error) {
	catalog, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening document catalog: %w", err)
	}

	embedder, err := gemini.NewEmbeddingService(gemini.EmbeddingConfig{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.EmbeddingModel,
	})
	if err != nil {
		catalog.Close()
		return nil, nil, err
	}

	vectors, err := chromem.NewStore(cfg.DataDir, embedder)
	if err != nil {
		catalog.Close()
		return nil, nil, fmt.Errorf("opening vector store: %w", err)
	}

	llm, err := gemini.NewLLMService(gemini.LLMConfig{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})
	if err != nil {
		catalog.Close()
		return nil, nil, err
	}

	library := services.NewLibraryService(catalog, vectors)
	connector := &lazyMailConnector{cfg: cfg}

	digest := services.NewDigestService(
		connector,
		library,
		llm,
		tokencount.NewCounter(),
		cfg.Senders,
		cfg.Gmail.MaxResults,
	)

	cleanup := func() {
		if err := library.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing catalog: %v\n", err)
		}
	}
	return digest, cleanup, nil
}

// lazyMailConnector defers Gmail construction until the first fetch, so
// the interactive OAuth flow only runs when the mailbox is actually
// needed.
type lazyMailConnector struct {
	cfg *file.Config

	mu   sync.Mutex
	conn *gmailconn.Connector
}

var _ driven.MailConnector = (*lazyMailConnector)(nil)

func (l *lazyMailConnector) Fetch(
	ctx context.Context, senders []string, maxResults int64, windowDays int,
) ([]domain.EmailRecord, error) {
	conn, err := l.connector(ctx)
	if err != nil {
		return nil, err
	}
	return conn.Fetch(ctx, senders, maxResults, windowDays)
}

func (l *lazyMailConnector) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return nil
	}
	return l.conn.Close()
}

// connector builds the Gmail connector on first use. Failures are not
// cached; a later fetch retries authentication.
func (l *lazyMailConnector) connector(ctx context.Context) (*gmailconn.Connector, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn != nil {
		return l.conn, nil
	}

	auth, err := google.NewAuthenticator(l.cfg.Gmail.CredentialsPath, l.cfg.Gmail.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("preparing Gmail authentication: %w", err)
	}

	ts, err := auth.TokenSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticating with Gmail: %w", err)
	}

	svc, err := google.NewGmailService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("creating Gmail client: %w", err)
	}

	normaliser := newsletter.New()
	if marker := l.cfg.Normaliser.TruncateMarker; marker != "" {
		normaliser = newsletter.NewWithMarker(marker)
	}

	l.conn = gmailconn.NewConnector(svc, normaliser)
	return l.conn, nil
}
