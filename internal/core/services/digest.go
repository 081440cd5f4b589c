package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driven"
	"github.com/briefwise-labs/briefwise-cli/internal/core/ports/driving"
	"github.com/briefwise-labs/briefwise-cli/internal/logger"
)

// NoDocumentsMessage is returned by Summarize when no stored document
// falls inside the requested window.
const NoDocumentsMessage = "You have no documents to summarize! Please add some to database!"

// summarySystem steers the model when summarising newsletters.
const summarySystem = `You are a machine learning expert with 10 years of experience. Your goal is to summarize the indicated documents. You have to do your best to get the essence out of these documents. Your audience will mainly be STEM students who want to become Data Scientists. You should propose up to 5 topics to explore (you can propose fewer). When you propose something, include the link or title of the email to deepen knowledge. If you think none of the topics is important, only summarize the text. Some documents will be in Polish and some in English. In order to standardize, generate text in English only.`

// answerSystem steers the model when answering a question over
// retrieved documents.
const answerSystem = `You are a machine learning expert with 10 years of experience. Your goal is to respond precisely to the question, mainly based on the provided documents. If you do not find relevant information in the documents, highlight that you used your embedded knowledge. Your audience will mainly be STEM students who want to become Data Scientists. If in your opinion a topic is difficult, break it down into smaller ones. Some documents will be in Polish and some in English. In order to standardize, generate text in English only.`

// DigestService implements the three user actions over the library, the
// mailbox connector and the LLM gateway.
type DigestService struct {
	connector driven.MailConnector
	library   *LibraryService
	llm       driven.LLMService
	tokens    driven.TokenCounter

	senders    []string
	maxResults int64

	// now is overridable for tests.
	now func() time.Time
}

var _ driving.DigestService = (*DigestService)(nil)

// NewDigestService creates the digest service. senders and maxResults
// parameterise mailbox syncs.
func NewDigestService(
	connector driven.MailConnector,
	library *LibraryService,
	llm driven.LLMService,
	tokens driven.TokenCounter,
	senders []string,
	maxResults int64,
) *DigestService {
	return &DigestService{
		connector:  connector,
		library:    library,
		llm:        llm,
		tokens:     tokens,
		senders:    senders,
		maxResults: maxResults,
		now:        time.Now,
	}
}

// Summarize generates a summary of all documents received within the
// trailing window of days. With no qualifying documents it returns a
// fixed message and makes no model call.
func (s *DigestService) Summarize(
	ctx context.Context, windowDays int, opts driving.GenerateParams,
) (*driving.Answer, error) {
	docs, err := s.library.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	cutoff := s.now().AddDate(0, 0, -windowDays)
	var texts []string
	for _, doc := range docs {
		date, derr := doc.Metadata.ParseDate()
		if derr != nil {
			logger.Warn("Skipping document %s: %v", doc.ID, derr)
			continue
		}
		if !date.Before(cutoff) {
			texts = append(texts, doc.Content)
		}
	}

	if len(texts) == 0 {
		logger.Info("No documents within the last %d days", windowDays)
		return &driving.Answer{Text: NoDocumentsMessage}, nil
	}

	prompt := "Summarize documents:\n" + strings.Join(texts, "\n")
	return s.generate(ctx, prompt, summarySystem, opts)
}

// Answer responds to a free-text question using the top-k retrieved
// documents as context.
func (s *DigestService) Answer(
	ctx context.Context, question string, topK int, opts driving.GenerateParams,
) (*driving.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrInvalidInput
	}

	docs, err := s.library.Query(ctx, question, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieving documents: %w", err)
	}

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.Content)
	}

	prompt := fmt.Sprintf("Question: %s\nRetrieved documents: %s",
		question, strings.Join(texts, "\n"))
	return s.generate(ctx, prompt, answerSystem, opts)
}

// Sync fetches newsletters for the trailing window of days and inserts
// the ones not yet stored.
func (s *DigestService) Sync(ctx context.Context, windowDays int) (*driving.SyncReport, error) {
	logger.Section("Mailbox sync")

	records, err := s.connector.Fetch(ctx, s.senders, s.maxResults, windowDays)
	if err != nil {
		return nil, fmt.Errorf("fetching mailbox: %w", err)
	}

	inserted, err := s.library.UpsertNew(ctx, records)
	if err != nil {
		return nil, err
	}

	return &driving.SyncReport{Fetched: len(records), Inserted: inserted}, nil
}

// generate calls the model and optionally counts the prompt's tokens.
func (s *DigestService) generate(
	ctx context.Context, prompt, system string, opts driving.GenerateParams,
) (*driving.Answer, error) {
	text, err := s.llm.Generate(ctx, prompt, system, opts.Options())
	if err != nil {
		return nil, err
	}

	answer := &driving.Answer{Text: text}
	if opts.CountTokens && s.tokens != nil {
		count, cerr := s.tokens.Count(prompt)
		if cerr != nil {
			logger.Warn("Token counting failed: %v", cerr)
		} else {
			answer.InputTokens = &count
		}
	}
	return answer, nil
}
