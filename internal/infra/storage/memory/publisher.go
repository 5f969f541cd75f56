package memory

import (
	"context"
	"sync"

	"stayhub/internal/domain/shared/events"
)

// Publisher collects published events in memory. Useful in tests and in the
// memory storage mode where no broker runs.
type Publisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(ctx context.Context, batch []events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, batch...)
	return nil
}

// Events returns a snapshot of everything published so far.
func (p *Publisher) Events() []events.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.DomainEvent(nil), p.events...)
}
