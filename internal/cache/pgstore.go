package cache

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sourcecd/skladbot/internal/models"
	"github.com/sourcecd/skladbot/internal/prjerrors"
)

// PgStore is the shared-cache alternative to FileStore for multi-instance
// deployments.
type PgStore struct {
	db *sql.DB
}

var (
	createOrdersTable = "CREATE TABLE IF NOT EXISTS order_cache (id VARCHAR(64) PRIMARY KEY, name VARCHAR(255), state VARCHAR(255), moment VARCHAR(64), sum BIGINT, city VARCHAR(255), recipient VARCHAR(255), link VARCHAR(512))"
	createMetaTable   = "CREATE TABLE IF NOT EXISTS cache_meta (id SMALLINT PRIMARY KEY, updated_at TIMESTAMPTZ)"

	getUpdatedAt  = "SELECT updated_at FROM cache_meta WHERE id=1"
	setUpdatedAt  = "INSERT INTO cache_meta (id, updated_at) VALUES (1, $1) ON CONFLICT (id) DO UPDATE SET updated_at=EXCLUDED.updated_at"
	listOrderRecs = "SELECT id, name, state, moment, sum, city, recipient, link FROM order_cache ORDER BY moment DESC"
	clearOrders   = "DELETE FROM order_cache"
	insertOrder   = "INSERT INTO order_cache (id, name, state, moment, sum, city, recipient, link) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)"
	updateOrder   = "UPDATE order_cache SET name=$2, state=$3, moment=$4, sum=$5, city=$6, recipient=$7, link=$8 WHERE id=$1"
)

func NewPgStore(dsn string) (*PgStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &PgStore{
		db: db,
	}, nil
}

func (pg *PgStore) PopulateDB(ctx context.Context) error {
	tx, err := pg.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createOrdersTable); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, createMetaTable); err != nil {
		return err
	}

	return tx.Commit()
}

func nullSum(sum *int64) sql.NullInt64 {
	if sum == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *sum, Valid: true}
}

func (pg *PgStore) Snapshot(ctx context.Context) (*models.OrderCache, error) {
	var updated time.Time
	row := pg.db.QueryRowContext(ctx, getUpdatedAt)
	if err := row.Scan(&updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, prjerrors.ErrEmptyCache
		}
		return nil, err
	}

	rows, err := pg.db.QueryContext(ctx, listOrderRecs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.OrderSummary
	for rows.Next() {
		var order models.OrderSummary
		var sum sql.NullInt64
		if err := rows.Scan(&order.ID, &order.Name, &order.State, &order.Moment, &sum, &order.City, &order.Recipient, &order.Link); err != nil {
			return nil, err
		}
		if sum.Valid {
			order.Sum = &sum.Int64
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.OrderCache{
		UpdatedAt:  updated.UTC().Format(time.RFC3339),
		TTLSeconds: TTLSeconds,
		Stats:      StatsFor(orders),
		Orders:     orders,
	}, nil
}

func (pg *PgStore) Save(ctx context.Context, snap *models.OrderCache) error {
	tx, err := pg.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, clearOrders); err != nil {
		return err
	}
	for _, order := range snap.Orders {
		if _, err := tx.ExecContext(ctx, insertOrder,
			order.ID, order.Name, order.State, order.Moment, nullSum(order.Sum), order.City, order.Recipient, order.Link); err != nil {
			return err
		}
	}
	updated, err := time.Parse(time.RFC3339, snap.UpdatedAt)
	if err != nil {
		updated = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx, setUpdatedAt, updated); err != nil {
		return err
	}

	return tx.Commit()
}

func (pg *PgStore) Upsert(ctx context.Context, order models.OrderSummary) (*models.OrderCache, error) {
	_, err := pg.db.ExecContext(ctx, insertOrder,
		order.ID, order.Name, order.State, order.Moment, nullSum(order.Sum), order.City, order.Recipient, order.Link)
	if err != nil {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || !pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return nil, err
		}
		if _, err := pg.db.ExecContext(ctx, updateOrder,
			order.ID, order.Name, order.State, order.Moment, nullSum(order.Sum), order.City, order.Recipient, order.Link); err != nil {
			return nil, err
		}
	}
	if _, err := pg.db.ExecContext(ctx, setUpdatedAt, time.Now().UTC()); err != nil {
		return nil, err
	}

	return pg.Snapshot(ctx)
}
