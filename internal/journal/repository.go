package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tillpoint/internal/orders"
)

var ErrSaleNotFound = errors.New("sale not found in journal")

// SaleRecord is one journaled sale, kept locally for receipt reprint and
// end-of-day reporting.
type SaleRecord struct {
	OrderID    string
	Code       string
	CashierID  string
	Total      decimal.Decimal
	Method     string
	Payload    []byte
	RecordedAt time.Time
}

type DaySummary struct {
	Sales      int
	GrossTotal decimal.Decimal
	Voids      int
}

// Repository is the local journal. All writes are best effort: callers
// log failures and move on, the platform remains the source of truth.
type Repository interface {
	RecordSale(ctx context.Context, o *orders.Order) error
	RecordVoidLogs(ctx context.Context, logs []orders.VoidLog) error
	SaleByCode(ctx context.Context, code string) (*SaleRecord, error)
	DaySummary(ctx context.Context, day time.Time, cashierID string) (*DaySummary, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RecordSale(ctx context.Context, o *orders.Order) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode sale payload: %w", err)
	}

	method := ""
	if o.Payment != nil {
		method = o.Payment.Method
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO journal_sales (order_id, code, cashier_id, total, method, payload, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (order_id) DO UPDATE
		SET payload = EXCLUDED.payload, total = EXCLUDED.total`,
		o.ID, o.Code, o.CashierID, o.Total.StringFixed(2), method, payload,
	)
	if err != nil {
		return fmt.Errorf("record sale: %w", err)
	}
	return nil
}

func (r *repository) RecordVoidLogs(ctx context.Context, logs []orders.VoidLog) error {
	for _, vl := range logs {
		if vl.ID == "" {
			continue
		}
		itemIDs, err := json.Marshal(vl.ItemIDs)
		if err != nil {
			return fmt.Errorf("encode void item ids: %w", err)
		}

		_, err = r.db.ExecContext(ctx, `
			INSERT INTO journal_voids (id, order_id, void_type, item_ids, reason, cashier_id, manager_id, approved_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE
			SET reason = EXCLUDED.reason, item_ids = EXCLUDED.item_ids`,
			vl.ID, vl.OrderID, string(vl.Type), itemIDs, vl.Reason, vl.CashierID, vl.ManagerID, vl.ApprovedAt,
		)
		if err != nil {
			return fmt.Errorf("record void %s: %w", vl.ID, err)
		}
	}
	return nil
}

func (r *repository) SaleByCode(ctx context.Context, code string) (*SaleRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT order_id, code, cashier_id, total, method, payload, recorded_at
		FROM journal_sales WHERE code = $1`,
		code,
	)

	var rec SaleRecord
	var total string
	err := row.Scan(&rec.OrderID, &rec.Code, &rec.CashierID, &total, &rec.Method, &rec.Payload, &rec.RecordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load sale %s: %w", code, err)
	}

	rec.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse journaled total: %w", err)
	}
	return &rec, nil
}

func (r *repository) DaySummary(ctx context.Context, day time.Time, cashierID string) (*DaySummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var summary DaySummary
	var gross sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM journal_sales
		WHERE recorded_at >= $1 AND recorded_at < $2
		AND ($3 = '' OR cashier_id = $3)`,
		start, end, cashierID,
	).Scan(&summary.Sales, &gross)
	if err != nil {
		return nil, fmt.Errorf("summarize sales: %w", err)
	}

	if gross.Valid {
		summary.GrossTotal, err = decimal.NewFromString(gross.String)
		if err != nil {
			return nil, fmt.Errorf("parse gross total: %w", err)
		}
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM journal_voids
		WHERE approved_at >= $1 AND approved_at < $2
		AND ($3 = '' OR cashier_id = $3)`,
		start, end, cashierID,
	).Scan(&summary.Voids)
	if err != nil {
		return nil, fmt.Errorf("summarize voids: %w", err)
	}

	return &summary, nil
}
