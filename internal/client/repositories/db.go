// Package repositories opens the local sqlite database that backs the
// console's persisted state.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/forsa-manager/internal/client/migrations"
	"github.com/dmitrijs2005/forsa-manager/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/forsa-manager/internal/filex"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	DB       *sql.DB
	Metadata metadata.Repository
}

// InitDatabase opens (creating if needed) the sqlite file at dsn and
// migrates it to the latest schema.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	// sqlite serialises writers anyway; one connection also keeps
	// ":memory:" databases coherent across calls
	db.SetMaxOpenConns(1)

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
