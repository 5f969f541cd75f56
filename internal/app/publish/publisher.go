package publish

import (
	"context"

	"stayhub/internal/domain/shared/events"
)

// Publisher forwards domain events to interested consumers (Kafka in
// production, a buffer in tests).
type Publisher interface {
	Publish(ctx context.Context, batch []events.DomainEvent) error
}

// Recorder is the aggregate-side surface drained after a commit.
type Recorder interface {
	PendingEvents() []events.DomainEvent
	ClearEvents()
}

// Drain publishes an aggregate's pending events and clears them. A nil
// publisher drops the events; publish failures do not undo the committed
// state, so callers only log them.
func Drain(ctx context.Context, p Publisher, recorders ...Recorder) error {
	var batch []events.DomainEvent
	for _, rec := range recorders {
		if rec == nil {
			continue
		}
		batch = append(batch, rec.PendingEvents()...)
		rec.ClearEvents()
	}
	if p == nil || len(batch) == 0 {
		return nil
	}
	return p.Publish(ctx, batch)
}
