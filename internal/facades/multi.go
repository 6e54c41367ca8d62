package facades

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-chat/internal/models"
)

//go:generate mockgen -source=multi.go -destination=multi_mock.go -package=facades

// Publisher pushes a notification to a named channel.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, n models.Notification) error
}

// MultiPushFacade fans a notification out to every configured publisher.
type MultiPushFacade struct {
	publishers []Publisher
}

// NewMultiPushFacade creates a fan-out over the given publishers.
func NewMultiPushFacade(publishers ...Publisher) *MultiPushFacade {
	return &MultiPushFacade{publishers: publishers}
}

// Publish delivers to all publishers even when some fail; the failures are joined.
func (f *MultiPushFacade) Publish(ctx context.Context, channel, event string, n models.Notification) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, channel, event, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
