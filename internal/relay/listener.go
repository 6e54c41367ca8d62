package relay

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sbilibin2017/gw-chat/internal/logger"
)

// PgListener waits for Postgres NOTIFY messages on a channel over a dedicated
// connection. It is used by a single relay goroutine.
type PgListener struct {
	dsn     string
	channel string
	conn    *pgx.Conn
}

// NewPgListener creates a listener; the connection is opened on first Wait.
func NewPgListener(dsn, channel string) *PgListener {
	return &PgListener{dsn: dsn, channel: channel}
}

// Wait returns nil right after (re)connecting so the caller can catch up on
// anything written while it was not listening. Otherwise it blocks until a
// notification arrives. On failure the connection is dropped and reopened by
// the next call.
func (l *PgListener) Wait(ctx context.Context) error {
	if l.conn == nil {
		return l.connect(ctx)
	}

	n, err := l.conn.WaitForNotification(ctx)
	if err != nil {
		l.Close(context.WithoutCancel(ctx))
		return err
	}

	logger.Log.Debugw("change feed notification", "channel", n.Channel, "payload", n.Payload)
	return nil
}

func (l *PgListener) connect(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return err
	}

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		conn.Close(context.WithoutCancel(ctx))
		return err
	}

	l.conn = conn
	logger.Log.Infow("listening for change feed notifications", "channel", l.channel)
	return nil
}

// Close releases the listener connection.
func (l *PgListener) Close(ctx context.Context) error {
	if l.conn == nil {
		return nil
	}
	err := l.conn.Close(ctx)
	l.conn = nil
	return err
}
