package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"sovindex/internal/indicator"
	"sovindex/internal/readiness/models"
	"sovindex/internal/readiness/store"
)

// policyStatusInForce is the status stamped on every ingested policy; the
// source list only tracks enacted texts.
const policyStatusInForce = "in_force"

// Loader writes fetched documents into the store. A whole load commits in one
// transaction; re-running ingest inserts fresh policy rows rather than
// deduplicating (snapshots reference countries, not policies, so history
// stays intact).
type Loader struct {
	logger *slog.Logger
	tx     store.TxRunner
}

// NewLoader constructs a Loader.
func NewLoader(tx store.TxRunner, logger *slog.Logger) *Loader {
	return &Loader{logger: logger, tx: tx}
}

// Load upserts each document's country, inserts its policy row, and extracts
// and inserts its indicator flags.
func (l *Loader) Load(ctx context.Context, docs []Document) error {
	err := l.tx.RunInTx(ctx, func(st store.Store) error {
		for _, doc := range docs {
			if err := l.loadOne(ctx, st, doc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	l.logger.InfoContext(ctx, "ingest committed", "documents", len(docs))
	return nil
}

func (l *Loader) loadOne(ctx context.Context, st store.Store, doc Document) error {
	country, err := st.UpsertCountry(ctx, models.Country{
		ISOCode: doc.ISOCode,
		Name:    doc.Country,
	})
	if err != nil {
		return fmt.Errorf("upsert country %s: %w", doc.ISOCode, err)
	}

	policy, err := st.InsertPolicy(ctx, models.Policy{
		CountryID: country.ID,
		Name:      doc.Name,
		SourceURL: doc.URL,
		Category:  doc.Category,
		Status:    policyStatusInForce,
		RawText:   doc.RawText,
	})
	if err != nil {
		return fmt.Errorf("insert policy %s: %w", doc.Name, err)
	}

	flags := indicator.Extract(doc.RawText)
	rows := make([]models.Indicator, 0, len(flags))
	keys := make([]string, 0, len(flags))
	for key := range flags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rows = append(rows, models.Indicator{
			Key:   key,
			Value: strconv.FormatBool(flags[key]),
		})
	}
	if err := st.InsertIndicators(ctx, policy.ID, rows); err != nil {
		return fmt.Errorf("insert indicators for %s: %w", doc.Name, err)
	}

	l.logger.InfoContext(ctx, "document loaded", "iso_code", doc.ISOCode, "policy", doc.Name)
	return nil
}
