package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
)

// MessageEventRepository reads the message change feed.
type MessageEventRepository struct {
	db *sqlx.DB
}

func NewMessageEventRepository(db *sqlx.DB) *MessageEventRepository {
	return &MessageEventRepository{db: db}
}

// ClaimPending locks up to limit unrelayed events, joined with their messages
// and ordered by event id, and passes each one to handle. An event is marked
// relayed only after handle returns for it, and the marks become visible when
// the whole batch has been handled. If the process dies or the transaction
// fails midway, the batch is claimed again later. Rows locked by another relay
// are skipped, so concurrent relays never handle the same event at once.
//
// ctx only guards the start of a claim. A started batch runs to completion so
// that events handled during shutdown are still marked.
func (r *MessageEventRepository) ClaimPending(ctx context.Context, limit int, handle func(models.MessageEventDB)) (int, error) {
	const selectQuery = `
		SELECT e.event_id, m.message_id, m.sender_id, m.receiver_id, m.body, m.created_at
		FROM message_events e
		JOIN messages m ON m.message_id = e.message_id
		WHERE e.relayed_at IS NULL
		ORDER BY e.event_id
		LIMIT $1
		FOR UPDATE OF e SKIP LOCKED
	`
	const markQuery = `UPDATE message_events SET relayed_at = NOW() WHERE event_id = $1`

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	txCtx := context.WithoutCancel(ctx)

	tx, err := r.db.BeginTxx(txCtx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	events := []models.MessageEventDB{}
	err = tx.SelectContext(txCtx, &events, selectQuery, limit)

	logger.Log.Debugw("query",
		"sql", oneLine(selectQuery),
		"args", []any{limit},
		"result", len(events),
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	for _, e := range events {
		handle(e)

		if _, err := tx.ExecContext(txCtx, markQuery, e.EventID); err != nil {
			logger.Log.Errorw("failed to mark message event relayed", "event_id", e.EventID, "error", err)
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(events), nil
}
