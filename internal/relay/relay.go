// Package relay forwards message inserts observed on the database change feed
// to push channels.
package relay

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
)

//go:generate mockgen -source=relay.go -destination=relay_mock.go -package=relay

// EventClaimer hands unrelayed change feed entries to handle and marks each
// one relayed once handle has returned for it.
type EventClaimer interface {
	ClaimPending(ctx context.Context, limit int, handle func(models.MessageEventDB)) (int, error)
}

// Notifier blocks until the change feed signals new entries.
type Notifier interface {
	Wait(ctx context.Context) error
}

// Publisher pushes a notification to a named channel.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, n models.Notification) error
}

const (
	defaultBatchSize      = 100
	defaultRetryDelay     = 5 * time.Second
	defaultPublishTimeout = 5 * time.Second
)

// Relay drains the change feed whenever it is notified and publishes one
// "inserted" event per message on the "messages" channel. Publishing is
// sequential and failures are logged and dropped. An event counts as relayed
// only after its publish attempt, so a crash mid-batch republishes the batch.
type Relay struct {
	claimer        EventClaimer
	notifier       Notifier
	publisher      Publisher
	batchSize      int
	retryDelay     time.Duration
	publishTimeout time.Duration
}

// Opt configures a Relay.
type Opt func(*Relay)

// WithBatchSize sets how many events are claimed per query.
func WithBatchSize(n int) Opt {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithRetryDelay sets the pause after a listener failure.
func WithRetryDelay(d time.Duration) Opt {
	return func(r *Relay) {
		r.retryDelay = d
	}
}

// WithPublishTimeout bounds a single publish.
func WithPublishTimeout(d time.Duration) Opt {
	return func(r *Relay) {
		if d > 0 {
			r.publishTimeout = d
		}
	}
}

// New creates a Relay.
func New(claimer EventClaimer, notifier Notifier, publisher Publisher, opts ...Opt) *Relay {
	r := &Relay{
		claimer:        claimer,
		notifier:       notifier,
		publisher:      publisher,
		batchSize:      defaultBatchSize,
		retryDelay:     defaultRetryDelay,
		publishTimeout: defaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run relays until ctx is cancelled. Events left over from a previous run are
// relayed first.
func (r *Relay) Run(ctx context.Context) error {
	logger.Log.Infow("relay started", "batch_size", r.batchSize)

	for {
		r.drain(ctx)

		if err := r.notifier.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Log.Errorw("change feed listener failed", "error", err, "retry_in", r.retryDelay)

			select {
			case <-ctx.Done():
			case <-time.After(r.retryDelay):
			}
		}

		if ctx.Err() != nil {
			break
		}
	}

	logger.Log.Info("relay stopped")
	return nil
}

func (r *Relay) drain(ctx context.Context) {
	for ctx.Err() == nil {
		n, err := r.claimer.ClaimPending(ctx, r.batchSize, func(e models.MessageEventDB) {
			r.publish(ctx, e)
		})
		if err != nil {
			if ctx.Err() == nil {
				logger.Log.Errorw("failed to claim message events", "error", err)
			}
			return
		}

		if n < r.batchSize {
			return
		}
	}
}

// publish runs detached from ctx cancellation so claimed events still go out
// during shutdown.
func (r *Relay) publish(ctx context.Context, e models.MessageEventDB) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.publishTimeout)
	defer cancel()

	n := models.NewNotification(e)
	if err := r.publisher.Publish(pctx, models.MessagesChannel, models.InsertedEvent, n); err != nil {
		logger.Log.Errorw("failed to publish message notification",
			"event_id", e.EventID,
			"message_id", e.MessageID,
			"error", err,
		)
		return
	}

	logger.Log.Debugw("message notification published",
		"event_id", e.EventID,
		"message_id", e.MessageID,
	)
}
