// Package ingest fetches the curated policy sources, extracts indicator flags
// from their text, and loads the results into the index store.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxRawTextLen caps stored document text. Sources are HTML pages; the first
// chunk is enough for substring-based indicator extraction.
const maxRawTextLen = 200000

// Document is a fetched policy source ready for loading.
type Document struct {
	Country  string
	ISOCode  string
	Name     string
	URL      string
	Category string
	RawText  string
}

// Fetcher retrieves source documents over HTTP. Fetching is best-effort and
// sequential: an unreachable or non-2xx source is logged and skipped, never
// retried, and the remaining sources still run.
type Fetcher struct {
	client  *http.Client
	logger  *slog.Logger
	metrics *Metrics
}

// NewFetcher constructs a Fetcher with the given timeout. metrics may be nil.
func NewFetcher(timeout time.Duration, logger *slog.Logger, m *Metrics) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: m,
	}
}

// FetchAll fetches every source in order and returns the documents that
// succeeded.
func (f *Fetcher) FetchAll(ctx context.Context) []Document {
	docs := make([]Document, 0, len(Sources))
	for _, src := range Sources {
		doc, err := f.fetch(ctx, src)
		if err != nil {
			f.metrics.IncSkipped()
			f.logger.WarnContext(ctx, "source skipped",
				"source", src.Name,
				"url", src.URL,
				"reason", err.Error(),
			)
			continue
		}
		f.metrics.IncFetched()
		f.logger.InfoContext(ctx, "source fetched", "source", src.Name, "bytes", len(doc.RawText))
		docs = append(docs, doc)
	}
	return docs
}

func (f *Fetcher) fetch(ctx context.Context, src Source) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return Document{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Document{}, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRawTextLen))
	if err != nil {
		return Document{}, fmt.Errorf("read body: %w", err)
	}

	return Document{
		Country:  src.Country,
		ISOCode:  src.ISOCode,
		Name:     src.Name,
		URL:      src.URL,
		Category: src.Category,
		RawText:  string(body),
	}, nil
}
