package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

func contextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFor returns the transaction opened by TxManager, or base outside one,
// bound to ctx so a cancelled request stops its queries.
func dbFor(ctx context.Context, base *gorm.DB) *gorm.DB {
	db := base
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		db = tx
	}
	return db.WithContext(ctx)
}
