// Package postgres implements the production storage backend over a hosted
// PostgreSQL service, using the pgx stdlib driver.
//
// Every entity carries an explicit field map between application-level
// camelCase names and storage-level snake_case columns. All statements and
// scans are built from that one map, so a field missing from it fails the
// mapping-fidelity test instead of silently dropping data on the round
// trip.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

// psql builds statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// createAttempts bounds the ID-collision retry loop on insert. IDs are epoch
// milliseconds, so a collision means another process inserted in the same
// millisecond; the retry bumps to the next one.
const createAttempts = 3

// colpair binds one application field (camelCase, as serialized in demo
// mode) to its relational column (snake_case). Order matters: values() and
// scan() of each table list fields in colmap order.
type colpair struct {
	Field  string
	Column string
}

type colmap []colpair

// columns returns the column names in declaration order.
func (m colmap) columns() []string {
	cols := make([]string, len(m))
	for i, p := range m {
		cols[i] = p.Column
	}
	return cols
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// table is the generic engine behind every relational repository: one
// entity, one field map, one pair of values/scan functions kept in colmap
// order.
type table[T models.Record] struct {
	db     *sql.DB
	name   string
	cols   colmap
	owner  string // owning-user column, "" when not owner-scoped
	mc     *metrics.Collector
	now    func() time.Time
	values func(T) ([]any, error)
	scan   func(scanner) (T, error)
}

func (t *table[T]) record(op string, start time.Time, err error) {
	t.mc.RecordOp(t.name, op, "postgres", start, err)
}

// mapErr converts driver errors into the sentinel errors callers match on.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return common.ErrAlreadyExists
	}
	return fmt.Errorf("db error: %w", err)
}

func (t *table[T]) List(ctx context.Context, userID string) (out []T, err error) {
	start := time.Now()
	defer func() { t.record("list", start, err) }()

	q := psql.Select(t.cols.columns()...).From(t.name).OrderBy("created_at")
	if userID != "" {
		if t.owner == "" {
			return nil, fmt.Errorf("%s is not owner-scoped", t.name)
		}
		q = q.Where(sq.Eq{t.owner: userID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := t.scan(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (t *table[T]) Create(ctx context.Context, rec T) (err error) {
	start := time.Now()
	defer func() { t.record("create", start, err) }()

	now := t.now()
	for attempt := 0; attempt < createAttempts; attempt++ {
		rec.SetRecordID(storage.EpochID(now))
		rec.TouchCreated(now)

		vals, err := t.values(rec)
		if err != nil {
			return err
		}
		query, args, err := psql.Insert(t.name).Columns(t.cols.columns()...).Values(vals...).ToSql()
		if err != nil {
			return err
		}

		_, err = t.db.ExecContext(ctx, query, args...)
		if err == nil {
			return nil
		}
		if !isPKCollision(err) || attempt == createAttempts-1 {
			return mapErr(err)
		}
		now = now.Add(time.Millisecond)
	}
	return common.ErrAlreadyExists
}

// isPKCollision reports whether err is a unique violation on the primary
// key, as opposed to a business constraint such as a duplicate email. Only
// PK collisions are retried with a bumped ID.
func isPKCollision(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation &&
		strings.HasSuffix(pgErr.ConstraintName, "_pkey")
}

func (t *table[T]) Get(ctx context.Context, id string) (T, error) {
	return t.getWhere(ctx, sq.Eq{"id": id})
}

func (t *table[T]) getWhere(ctx context.Context, pred any, args ...any) (zero T, err error) {
	start := time.Now()
	defer func() { t.record("get", start, err) }()

	query, qargs, err := psql.Select(t.cols.columns()...).From(t.name).Where(pred, args...).Limit(1).ToSql()
	if err != nil {
		return zero, err
	}

	rec, err := t.scan(t.db.QueryRowContext(ctx, query, qargs...))
	if err != nil {
		return zero, mapErr(err)
	}
	return rec, nil
}

// Update reads the row, applies the patch in Go and rewrites every mapped
// column. Single statements are atomic; the read-patch-write cycle itself
// is last-writer-wins, matching the per-row guarantees the rest of the
// system assumes.
func (t *table[T]) Update(ctx context.Context, id string, patch func(T)) (zero T, err error) {
	start := time.Now()
	defer func() { t.record("update", start, err) }()

	rec, err := t.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	patch(rec)
	rec.TouchUpdated(t.now())

	vals, err := t.values(rec)
	if err != nil {
		return zero, err
	}
	set := make(map[string]any, len(t.cols))
	for i, p := range t.cols {
		if p.Column == "id" {
			continue
		}
		set[p.Column] = vals[i]
	}

	query, args, err := psql.Update(t.name).SetMap(set).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return zero, err
	}
	if _, err = t.db.ExecContext(ctx, query, args...); err != nil {
		return zero, mapErr(err)
	}
	return rec, nil
}

func (t *table[T]) Delete(ctx context.Context, id string) (removed bool, err error) {
	start := time.Now()
	defer func() { t.record("delete", start, err) }()

	query, args, err := psql.Delete(t.name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, err
	}

	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, mapErr(err)
	}
	return n > 0, nil
}

// deleteWhere removes every row matching pred and returns how many went.
func (t *table[T]) deleteWhere(ctx context.Context, pred any, args ...any) (int, error) {
	query, qargs, err := psql.Delete(t.name).Where(pred, args...).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := t.db.ExecContext(ctx, query, qargs...)
	if err != nil {
		return 0, mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapErr(err)
	}
	return int(n), nil
}
