package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// prefsRepo implements PrefsRepo on the preferences table.
type prefsRepo struct {
	drv *entsql.Driver
}

func (r *prefsRepo) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(tablePreferences)).
		Where(entsql.And(
			entsql.EQ("namespace", namespace),
			entsql.EQ("key", key),
		)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return "", false, fmt.Errorf("query preference %s/%s: %w", namespace, key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan preference: %w", err)
	}
	return value, true, nil
}

func (r *prefsRepo) Set(ctx context.Context, namespace, key, value string) error {
	q, args := upsertPreference(namespace, key, value, time.Now())
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("set preference %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (r *prefsRepo) SetAll(ctx context.Context, namespace string, values map[string]string) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	now := time.Now()
	for key, value := range values {
		q, args := upsertPreference(namespace, key, value, now)
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("set preference %s/%s: %w", namespace, key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit preferences: %w", err)
	}
	return nil
}

func (r *prefsRepo) All(ctx context.Context, namespace string) (map[string]string, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select("key", "value").
		From(entsql.Table(tablePreferences)).
		Where(entsql.EQ("namespace", namespace)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query preferences %s: %w", namespace, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		out[key] = value
	}
	return out, rows.Err()
}

func (r *prefsRepo) DeleteNamespace(ctx context.Context, namespace string) error {
	q, args := entsql.Dialect(dialect.SQLite).
		Delete(tablePreferences).
		Where(entsql.EQ("namespace", namespace)).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("delete preferences %s: %w", namespace, err)
	}
	return nil
}

func upsertPreference(namespace, key, value string, now time.Time) (string, []any) {
	return entsql.Dialect(dialect.SQLite).
		Insert(tablePreferences).
		Columns("namespace", "key", "value", "updated_at").
		Values(namespace, key, value, now.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("namespace", "key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
}
