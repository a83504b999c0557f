package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/puntoventa/lotes-api/internal/domain/entity"
	"github.com/puntoventa/lotes-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, reason, date, unit_cost, lot_label, expires_at, discount_method, affects_financials, notes, receipt_ref, created_at, created_by`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla movements es append-only: este repo no expone Update ni Delete.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, type, quantity, reason, date, unit_cost, lot_label, expires_at, discount_method, affects_financials, notes, receipt_ref, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity, movement.Reason,
		movement.Date, movement.UnitCost, nullIfEmpty(movement.LotLabel), movement.ExpiresAt,
		nullIfEmpty(movement.DiscountMethod), movement.AffectsFinancials,
		movement.Notes, movement.ReceiptRef, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	var lotLabel, discountMethod, createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason, &m.Date,
		&m.UnitCost, &lotLabel, &m.ExpiresAt, &discountMethod, &m.AffectsFinancials,
		&m.Notes, &m.ReceiptRef, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	applyOptionals(&m, lotLabel, discountMethod, createdBy)
	return &m, nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []entity.Movement
	for rows.Next() {
		var m entity.Movement
		var lotLabel, discountMethod, createdBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason, &m.Date,
			&m.UnitCost, &lotLabel, &m.ExpiresAt, &discountMethod, &m.AffectsFinancials,
			&m.Notes, &m.ReceiptRef, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		applyOptionals(&m, lotLabel, discountMethod, createdBy)
		list = append(list, m)
	}
	return list, rows.Err()
}

func applyOptionals(m *entity.Movement, lotLabel, discountMethod, createdBy *string) {
	if lotLabel != nil {
		m.LotLabel = *lotLabel
	}
	if discountMethod != nil {
		m.DiscountMethod = *discountMethod
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
