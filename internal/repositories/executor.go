package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
)

// TxGetter returns the transaction bound to the context, if any.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor picks the context transaction when one is present.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// oneLine collapses a query onto a single line for logging.
func oneLine(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
