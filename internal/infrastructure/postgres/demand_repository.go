package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modus-erp/modus-api/internal/domain/entity"
	"github.com/modus-erp/modus-api/internal/domain/repository"
)

var _ repository.DemandRepository = (*DemandRepo)(nil)

// DemandRepo implementación de DemandRepository sobre PostgreSQL.
// Recibe el pool directamente: Create abre su propia transacción para que la
// cabecera y las líneas se persistan de forma atómica.
type DemandRepo struct {
	pool *pgxpool.Pool
}

// NewDemandRepository construye el adaptador de demandas.
func NewDemandRepository(pool *pgxpool.Pool) *DemandRepo {
	return &DemandRepo{pool: pool}
}

// Create persiste la demanda y sus líneas en una transacción.
func (r *DemandRepo) Create(demand *entity.Demand) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO demands (id, title, description, requester, status, priority, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		demand.ID, demand.Title, demand.Description, demand.Requester,
		demand.Status, demand.Priority, demand.DueDate, demand.CreatedAt, demand.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert demand: %w", err)
	}
	for i, it := range demand.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO demand_items (id, demand_id, line_no, product_id, quantity, note)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, demand.ID, i, it.ProductID, it.Quantity, it.Note,
		)
		if err != nil {
			return fmt.Errorf("insert demand item: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene la demanda con sus líneas; (nil, nil) si no existe.
func (r *DemandRepo) GetByID(id string) (*entity.Demand, error) {
	ctx := context.Background()
	var d entity.Demand
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, description, requester, status, priority, due_date, created_at, updated_at
		FROM demands WHERE id = $1`, id).Scan(
		&d.ID, &d.Title, &d.Description, &d.Requester, &d.Status, &d.Priority, &d.DueDate, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get demand: %w", err)
	}
	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return &d, nil
}

// List lista todas las demandas con sus líneas, en orden de creación.
func (r *DemandRepo) List() ([]*entity.Demand, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, requester, status, priority, due_date, created_at, updated_at
		FROM demands ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list demands: %w", err)
	}
	defer rows.Close()

	out := []*entity.Demand{}
	for rows.Next() {
		var d entity.Demand
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Requester, &d.Status, &d.Priority, &d.DueDate, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan demand: %w", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, d := range out {
		items, err := r.loadItems(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		d.Items = items
	}
	return out, nil
}

// UpdateStatus compare-and-swap: solo escribe si el estado actual es from.
// RowsAffected == 0 significa carrera perdida (o demanda inexistente).
func (r *DemandRepo) UpdateStatus(id, from, to string) (bool, error) {
	cmd, err := r.pool.Exec(context.Background(), `
		UPDATE demands SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, fmt.Errorf("update demand status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// CountByStatus demandas en el estado dado.
func (r *DemandRepo) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM demands WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count demands by status: %w", err)
	}
	return n, nil
}

// ListRecent demandas con actividad reciente, la más nueva primero.
// Sin líneas: el feed de actividad solo necesita la cabecera.
func (r *DemandRepo) ListRecent(limit int) ([]*entity.Demand, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, title, description, requester, status, priority, due_date, created_at, updated_at
		FROM demands ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent demands: %w", err)
	}
	defer rows.Close()

	out := []*entity.Demand{}
	for rows.Next() {
		var d entity.Demand
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Requester, &d.Status, &d.Priority, &d.DueDate, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan demand: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *DemandRepo) loadItems(ctx context.Context, demandID string) ([]entity.DemandItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, quantity, note
		FROM demand_items WHERE demand_id = $1 ORDER BY line_no`, demandID)
	if err != nil {
		return nil, fmt.Errorf("load demand items: %w", err)
	}
	defer rows.Close()

	items := []entity.DemandItem{}
	for rows.Next() {
		var it entity.DemandItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.Note); err != nil {
			return nil, fmt.Errorf("scan demand item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
