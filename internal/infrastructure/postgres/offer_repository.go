package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

var _ repository.OfferRepository = (*OfferRepo)(nil)

// OfferRepo implementación de OfferRepository sobre PostgreSQL.
// Recibe el pool directamente: Create y ReplaceItemsIfDraft abren su propia
// transacción para que cabecera y líneas se escriban de forma atómica.
type OfferRepo struct {
	pool *pgxpool.Pool
}

// NewOfferRepository construye el adaptador de ofertas.
func NewOfferRepository(pool *pgxpool.Pool) *OfferRepo {
	return &OfferRepo{pool: pool}
}

// Create persiste la oferta y sus líneas en una transacción.
func (r *OfferRepo) Create(offer *entity.Offer) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO offers (id, demand_id, customer_id, status, currency, total_amount, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		offer.ID, nullIfEmpty(offer.DemandID), offer.CustomerID, offer.Status,
		offer.Currency, offer.TotalAmount, offer.ValidUntil, offer.CreatedAt, offer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	if err := insertOfferItems(ctx, tx, offer.ID, offer.Items); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene la oferta con sus líneas; (nil, nil) si no existe.
func (r *OfferRepo) GetByID(id string) (*entity.Offer, error) {
	ctx := context.Background()
	var o entity.Offer
	err := r.pool.QueryRow(ctx, `
		SELECT id, COALESCE(demand_id, ''), customer_id, status, currency, total_amount, valid_until, created_at, updated_at
		FROM offers WHERE id = $1`, id).Scan(
		&o.ID, &o.DemandID, &o.CustomerID, &o.Status, &o.Currency, &o.TotalAmount, &o.ValidUntil, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// List lista todas las ofertas con sus líneas, en orden de creación.
func (r *OfferRepo) List() ([]*entity.Offer, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, COALESCE(demand_id, ''), customer_id, status, currency, total_amount, valid_until, created_at, updated_at
		FROM offers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	out := []*entity.Offer{}
	for rows.Next() {
		var o entity.Offer
		if err := rows.Scan(&o.ID, &o.DemandID, &o.CustomerID, &o.Status, &o.Currency, &o.TotalAmount, &o.ValidUntil, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		items, err := r.loadItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return out, nil
}

// UpdateStatus compare-and-swap: solo escribe si el estado actual es from.
func (r *OfferRepo) UpdateStatus(id, from, to string) (bool, error) {
	cmd, err := r.pool.Exec(context.Background(), `
		UPDATE offers SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, fmt.Errorf("update offer status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ReplaceItemsIfDraft reemplaza líneas y total solo si la oferta sigue en
// DRAFT. El check se hace con FOR UPDATE dentro de la transacción, así una
// transición concurrente a SENT no puede colarse entre el check y la escritura.
func (r *OfferRepo) ReplaceItemsIfDraft(offer *entity.Offer) (bool, error) {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM offers WHERE id = $1 FOR UPDATE`, offer.ID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lock offer: %w", err)
	}
	if status != entity.OfferStatusDraft {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `DELETE FROM offer_items WHERE offer_id = $1`, offer.ID); err != nil {
		return false, fmt.Errorf("delete offer items: %w", err)
	}
	if err := insertOfferItems(ctx, tx, offer.ID, offer.Items); err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE offers SET total_amount = $2, updated_at = now() WHERE id = $1`,
		offer.ID, offer.TotalAmount); err != nil {
		return false, fmt.Errorf("update offer total: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return true, nil
}

// SumTotalByStatus suma de total_amount de las ofertas en el estado dado.
func (r *OfferRepo) SumTotalByStatus(status string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(total_amount), 0) FROM offers WHERE status = $1`, status).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum offers by status: %w", err)
	}
	return total, nil
}

// ListRecent ofertas con actividad reciente, la más nueva primero (solo cabecera).
func (r *OfferRepo) ListRecent(limit int) ([]*entity.Offer, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, COALESCE(demand_id, ''), customer_id, status, currency, total_amount, valid_until, created_at, updated_at
		FROM offers ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent offers: %w", err)
	}
	defer rows.Close()

	out := []*entity.Offer{}
	for rows.Next() {
		var o entity.Offer
		if err := rows.Scan(&o.ID, &o.DemandID, &o.CustomerID, &o.Status, &o.Currency, &o.TotalAmount, &o.ValidUntil, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

func (r *OfferRepo) loadItems(ctx context.Context, offerID string) ([]entity.OfferItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, quantity, unit_price, discount, line_total
		FROM offer_items WHERE offer_id = $1 ORDER BY line_no`, offerID)
	if err != nil {
		return nil, fmt.Errorf("load offer items: %w", err)
	}
	defer rows.Close()

	items := []entity.OfferItem{}
	for rows.Next() {
		var it entity.OfferItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Discount, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan offer item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func insertOfferItems(ctx context.Context, tx pgx.Tx, offerID string, items []entity.OfferItem) error {
	for i, it := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO offer_items (id, offer_id, line_no, product_id, quantity, unit_price, discount, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, offerID, i, it.ProductID, it.Quantity, it.UnitPrice, it.Discount, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert offer item: %w", err)
		}
	}
	return nil
}
