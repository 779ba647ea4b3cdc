package store

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Models lists every table in dependency order.
var Models = []any{
	(*Collection)(nil),
	(*Group)(nil),
	(*User)(nil),
	(*UserSetting)(nil),
	(*Country)(nil),
	(*Region)(nil),
	(*Subregion)(nil),
	(*City)(nil),
	(*Chapter)(nil),
	(*Tag)(nil),
	(*ItemType)(nil),
	(*ItemTypeCustomField)(nil),
	(*Item)(nil),
	(*ItemTag)(nil),
	(*ItemChapter)(nil),
	(*ItemSetting)(nil),
	(*ItemVersion)(nil),
	(*ItemUserData)(nil),
	(*Comment)(nil),
	(*CommentVote)(nil),
	(*File)(nil),
	(*Link)(nil),
	(*LinkVote)(nil),
}

// OpenDB wraps a database/sql handle with the sqlite dialect.
func OpenDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, sqlitedialect.New())
}

// CreateSchema creates every table if it does not exist yet.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range Models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
