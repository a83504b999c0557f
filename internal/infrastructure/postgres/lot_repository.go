package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/puntoventa/lotes-api/internal/domain"
	"github.com/puntoventa/lotes-api/internal/domain/entity"
	"github.com/puntoventa/lotes-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `id, product_id, label, unit_cost, stock, entry_at, expires_at, active, created_at`

// LotRepo implementación del puerto LotRepository sobre PostgreSQL (usable con pool o tx).
// La tabla lots tiene un índice único parcial sobre (product_id) WHERE label =
// 'Lote de Registro' que garantiza a lo sumo un lote de registro por producto.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste un lote nuevo. Una carrera sobre el lote de registro
// (violación del índice único parcial) devuelve domain.ErrDuplicate.
func (r *LotRepo) Create(lot *entity.Lot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lots (id, product_id, label, unit_cost, stock, entry_at, expires_at, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.Label, lot.UnitCost, lot.Stock,
		lot.EntryAt, lot.ExpiresAt, lot.Active, lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByProductAndLabel obtiene un lote por producto y etiqueta.
func (r *LotRepo) GetByProductAndLabel(productID, label string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE product_id = $1 AND label = $2`
	return r.scanOne(query, productID, label)
}

// ListByProduct lista todos los lotes del producto (activos e inactivos), ingreso ascendente.
func (r *LotRepo) ListByProduct(productID string) ([]entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE product_id = $1 ORDER BY entry_at ASC, created_at ASC`
	return r.list(query, productID)
}

// ListActive lista los lotes activos con stock positivo, ingreso ascendente.
func (r *LotRepo) ListActive(productID string) ([]entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE product_id = $1 AND active = true AND stock > 0 ORDER BY entry_at ASC, created_at ASC`
	return r.list(query, productID)
}

// UpdateStock fija stock y bandera active del lote. Un lote inactivo no vuelve a activarse.
func (r *LotRepo) UpdateStock(lotID string, stock decimal.Decimal, active bool) error {
	query := `UPDATE lots SET stock = $2, active = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, lotID, stock, active)
	if err != nil {
		return fmt.Errorf("update lot stock: %w", err)
	}
	return nil
}

func (r *LotRepo) scanOne(query string, args ...any) (*entity.Lot, error) {
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&l.ID, &l.ProductID, &l.Label, &l.UnitCost, &l.Stock,
		&l.EntryAt, &l.ExpiresAt, &l.Active, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

func (r *LotRepo) list(query string, args ...any) ([]entity.Lot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Label, &l.UnitCost, &l.Stock,
			&l.EntryAt, &l.ExpiresAt, &l.Active, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
