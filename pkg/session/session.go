// Package session hands request handlers scoped database sessions on top of
// a shared bun connection pool.
package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// Provider wraps the host's *bun.DB and scopes a session to each request.
// The provider itself is immutable and safe for concurrent use; scoping is
// per call.
type Provider struct {
	db *bun.DB
}

// NewProvider wraps an existing bun database handle.
func NewProvider(db *bun.DB) (*Provider, error) {
	if db == nil {
		return nil, fmt.Errorf("session: bun.DB is required")
	}
	return &Provider{db: db}, nil
}

// DB exposes the underlying handle for schema introspection and setup code.
func (p *Provider) DB() *bun.DB {
	return p.db
}

// View runs fn with a connection scoped to the request context. The
// connection is released when fn returns, on error paths included.
func (p *Provider) View(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("session: acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(ctx, conn)
}

// Update runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (p *Provider) Update(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return p.db.RunInTx(ctx, &sql.TxOptions{}, fn)
}
