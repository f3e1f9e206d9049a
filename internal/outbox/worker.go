package outbox

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"orderapi/internal/config"
	"orderapi/internal/repository"
)

// Publisher sends an already serialized event payload to the broker.
type Publisher interface {
	PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error
}

// Worker periodically flushes pending outbox entries to the broker.
// Entries are deleted only after a successful publish; a failed publish
// leaves the row for the next tick, so delivery is at-least-once.
type Worker struct {
	outbox   repository.OutboxRepository
	broker   Publisher
	interval time.Duration
	batch    int
	loc      *time.Location
}

// NewWorker creates a worker with the configured batch size and interval.
func NewWorker(outbox repository.OutboxRepository, broker Publisher, cfg config.OutboxConfig, loc *time.Location) *Worker {
	return &Worker{
		outbox:   outbox,
		broker:   broker,
		interval: time.Duration(cfg.IntervalMs) * time.Millisecond,
		batch:    cfg.BatchSize,
		loc:      loc,
	}
}

// Start blocks until ctx is cancelled, processing one batch per tick.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processEvents(ctx)
		}
	}
}

func (w *Worker) processEvents(ctx context.Context) {
	entries, err := w.outbox.FetchPending(ctx, w.batch)
	if err != nil {
		w.logJSON(map[string]any{
			"component":     "outbox",
			"event":         "outbox_fetch_failed",
			"status":        "error",
			"error_message": err.Error(),
			"batch":         w.batch,
		})
		return
	}

	for _, entry := range entries {
		if err := w.broker.PublishRaw(ctx, entry.EventName, entry.EntityName, entry.Payload); err != nil {
			w.logJSON(map[string]any{
				"component":     "outbox",
				"event":         "outbox_publish_failed",
				"status":        "error",
				"error_message": err.Error(),
				"event_id":      entry.ID,
				"event_name":    entry.EventName,
				"entity_name":   entry.EntityName,
			})
			continue
		}

		if err := w.outbox.Delete(ctx, entry.ID); err != nil {
			w.logJSON(map[string]any{
				"component":     "outbox",
				"event":         "outbox_delete_failed",
				"status":        "error",
				"error_message": err.Error(),
				"event_id":      entry.ID,
				"event_name":    entry.EventName,
				"entity_name":   entry.EntityName,
			})
		}
	}
}

func (w *Worker) logJSON(data map[string]any) {
	data["ts"] = time.Now().In(w.loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal outbox log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
