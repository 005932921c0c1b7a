// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libris/internal/platform/dberr"
	"github.com/taibuivan/libris/internal/platform/postgres"
)

// # PostgreSQL Store

// querier is the subset of pgx shared by *pgxpool.Conn and pgx.Tx. Repository
// methods run against it so the same SQL works inside and outside a
// transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxStore creates units of work backed by a pgx connection pool.
type pgxStore struct {
	pool    *pgxpool.Pool
	retrier *postgres.Retrier
}

// NewPostgresStore constructs the PostgreSQL-backed [Store].
// commandTimeout bounds each individual statement attempt.
func NewPostgresStore(pool *pgxpool.Pool, commandTimeout time.Duration) Store {
	return &pgxStore{
		pool:    pool,
		retrier: &postgres.Retrier{CommandTimeout: commandTimeout},
	}
}

// NewUnitOfWork acquires a dedicated connection from the pool and binds all
// four repositories to it.
func (store *pgxStore) NewUnitOfWork(ctx context.Context) (UnitOfWork, error) {
	conn, err := store.pool.Acquire(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "acquire connection")
	}

	uow := &pgxUnitOfWork{conn: conn, retrier: store.retrier}
	uow.authors = &pgxAuthorRepository{uow: uow}
	uow.books = &pgxBookRepository{uow: uow}
	uow.categories = &pgxCategoryRepository{uow: uow}
	uow.links = &pgxBookCategoryRepository{uow: uow}
	return uow, nil
}

// # Unit of Work Implementation

// pgxUnitOfWork implements [UnitOfWork] on a single pooled connection.
//
// It is not safe for concurrent use; each request builds its own.
type pgxUnitOfWork struct {
	conn    *pgxpool.Conn
	tx      pgx.Tx
	retrier *postgres.Retrier

	authors    *pgxAuthorRepository
	books      *pgxBookRepository
	categories *pgxCategoryRepository
	links      *pgxBookCategoryRepository
}

// db returns the active transaction if one is open, the raw connection
// otherwise.
func (uow *pgxUnitOfWork) db() querier {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.conn
}

// Begin opens a transaction on the bound connection.
func (uow *pgxUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return ErrTransactionOpen
	}

	tx, err := uow.conn.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin transaction")
	}
	uow.tx = tx
	return nil
}

// Commit commits the open transaction. If the commit itself fails the
// transaction is rolled back so the connection returns to the pool clean.
func (uow *pgxUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Commit(ctx)
	if err != nil {
		_ = uow.tx.Rollback(ctx)
		uow.tx = nil
		return dberr.Wrap(err, "commit transaction")
	}
	uow.tx = nil
	return nil
}

// Rollback discards the open transaction. Calling it with no transaction
// open is a no-op.
func (uow *pgxUnitOfWork) Rollback(ctx context.Context) {
	if uow.tx == nil {
		return
	}
	_ = uow.tx.Rollback(ctx)
	uow.tx = nil
}

// Close rolls back any open transaction and releases the connection.
// It is idempotent.
func (uow *pgxUnitOfWork) Close(ctx context.Context) {
	if uow.conn == nil {
		return
	}
	uow.Rollback(ctx)
	uow.conn.Release()
	uow.conn = nil
}

func (uow *pgxUnitOfWork) Authors() AuthorRepository              { return uow.authors }
func (uow *pgxUnitOfWork) Books() BookRepository                  { return uow.books }
func (uow *pgxUnitOfWork) Categories() CategoryRepository         { return uow.categories }
func (uow *pgxUnitOfWork) BookCategories() BookCategoryRepository { return uow.links }
