package events

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/dto"
)

// Publisher delivers domain events once the change that produced them has
// been committed.
type Publisher interface {
	Publish(ctx context.Context, msg dto.EventMsg) error
	Close() error
}

type noopPublisher struct{}

func NewNoop() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, msg dto.EventMsg) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
