package audit

import (
	"context"
	"log/slog"
	"time"

	"cims/pkg/requestcontext"
)

// Publisher buffers audit events on a channel so emitting never blocks a
// request. A full buffer drops the event with a warning; the audit trail is
// best-effort operational history, not a ledger of record.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

// NewPublisher creates a publisher with the given buffer size.
func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Emit enqueues an event, stamping timestamp and request ID from context if
// unset.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	select {
	case p.inbox <- event:
	default:
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit buffer full, dropping event",
				"action", event.Action,
				"citizen_id", event.CitizenID,
			)
		}
	}
}

// Inbox exposes the receive side for the worker.
func (p *Publisher) Inbox() <-chan Event { return p.inbox }

// Worker drains the publisher's inbox into the store.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run consumes events until the context is cancelled. Persistence failures
// are logged and skipped so one bad write cannot stall the trail.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := w.store.Append(writeCtx, event); err != nil && w.logger != nil {
				w.logger.Error("audit append failed",
					"action", event.Action,
					"citizen_id", event.CitizenID,
					"error", err,
				)
			}
			cancel()
		}
	}
}
