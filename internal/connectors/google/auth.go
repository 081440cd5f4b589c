package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	oauth2google "golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"

	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
	"github.com/briefwise-labs/briefwise-cli/internal/logger"
)

// Authenticator manages the OAuth credential lifecycle for the Gmail API.
// The refreshable token is persisted next to the credentials file; when a
// refresh fails the stale token is deleted and the interactive
// authorization flow runs once more.
type Authenticator struct {
	cfg       *oauth2.Config
	tokenPath string
}

// NewAuthenticator reads the OAuth client secret from credentialsPath and
// prepares token persistence at tokenPath.
func NewAuthenticator(credentialsPath, tokenPath string) (*Authenticator, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	cfg, err := oauth2google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}

	return &Authenticator{cfg: cfg, tokenPath: tokenPath}, nil
}

// TokenSource returns a token source backed by the persisted token.
// Refreshed tokens are written back to disk. When the persisted token can
// no longer be refreshed it is deleted and the interactive flow runs; a
// failure there is fatal and propagates.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := a.loadToken()
	if err == nil {
		ts := a.cfg.TokenSource(ctx, tok)
		if fresh, terr := ts.Token(); terr == nil {
			if fresh.AccessToken != tok.AccessToken {
				if serr := a.saveToken(fresh); serr != nil {
					logger.Warn("Persisting refreshed token failed: %v", serr)
				}
			}
			return oauth2.ReuseTokenSource(fresh, ts), nil
		}
		// Refresh token expired or revoked. Drop the stale token and
		// fall through to interactive authorization.
		logger.Warn("Token refresh failed, re-authenticating: %v", domain.ErrTokenRefreshFailed)
		if rerr := os.Remove(a.tokenPath); rerr != nil && !os.IsNotExist(rerr) {
			logger.Warn("Removing stale token failed: %v", rerr)
		}
	}

	tok, err = a.authorize(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthRequired, err)
	}
	if serr := a.saveToken(tok); serr != nil {
		logger.Warn("Persisting token failed: %v", serr)
	}

	return oauth2.ReuseTokenSource(tok, a.cfg.TokenSource(ctx, tok)), nil
}

// authorize runs the interactive authorization-code flow using a local
// loopback server for the redirect.
func (a *Authenticator) authorize(ctx context.Context) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("start callback listener: %w", err)
	}
	defer listener.Close()

	cfg := *a.cfg
	cfg.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- fmt.Errorf("oauth state mismatch")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errCh <- fmt.Errorf("oauth callback missing code")
			return
		}
		fmt.Fprintln(w, "Authorization complete. You can close this window.")
		codeCh <- code
	})}
	go srv.Serve(listener) //nolint:errcheck // closed via listener
	defer srv.Close()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Open the following link in your browser to authorize Briefwise:\n\n  %s\n\n", authURL)

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// loadToken reads the persisted token from disk.
func (a *Authenticator) loadToken() (*oauth2.Token, error) {
	f, err := os.Open(a.tokenPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token file: %w", err)
	}
	return tok, nil
}

// saveToken writes the token to disk with owner-only permissions.
func (a *Authenticator) saveToken(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(a.tokenPath), 0700); err != nil {
		return err
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	return os.WriteFile(a.tokenPath, data, 0600)
}

// randomState produces an unguessable state parameter for the flow.
func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
