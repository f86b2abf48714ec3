// Package ingest provides an AWS Lambda handler that appends queued records
// through the store's write-only path.
package ingest

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/maqsad-io/dynamo-ninja/store"
)

// Appender is the slice of the store the handler needs.
type Appender interface {
	AddItems(ctx context.Context, table string, recs []store.Record, skipTimestamps bool) error
}

// Handler appends SQS message bodies to a single table.
type Handler struct {
	store  Appender
	table  string
	logger *slog.Logger
}

// NewHandler creates a new ingest handler writing to table.
func NewHandler(s Appender, table string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  s,
		table:  table,
		logger: logger,
	}
}

// HandleEvent appends every well-formed message body in the event as one
// record. Malformed bodies are logged and skipped rather than retried: they
// would poison the queue, since a retry can never make them parse. A store
// failure is returned so the whole batch is retried and eventually lands in
// the DLQ.
func (h *Handler) HandleEvent(ctx context.Context, event events.SQSEvent) error {
	recs := make([]store.Record, 0, len(event.Records))
	for _, msg := range event.Records {
		var rec store.Record
		if err := json.Unmarshal([]byte(msg.Body), &rec); err != nil {
			h.logger.Error("skipping malformed message",
				"messageID", msg.MessageId,
				"error", err,
			)
			continue
		}
		recs = append(recs, rec)
	}

	if len(recs) == 0 {
		return nil
	}

	if err := h.store.AddItems(ctx, h.table, recs, false); err != nil {
		h.logger.Error("failed to append records",
			"table", h.table,
			"count", len(recs),
			"error", err,
		)
		return err
	}

	h.logger.Info("appended records",
		"table", h.table,
		"count", len(recs),
	)
	return nil
}
