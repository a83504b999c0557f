package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/puntoventa/lotes-api/internal/domain/entity"
	"github.com/puntoventa/lotes-api/internal/domain/repository"
)

var _ repository.MovementLotRepository = (*MovementLotRepo)(nil)

// MovementLotRepo implementación del puerto MovementLotRepository sobre PostgreSQL.
type MovementLotRepo struct {
	q Querier
}

// NewMovementLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementLotRepository(q Querier) *MovementLotRepo {
	return &MovementLotRepo{q: q}
}

// Create persiste el vínculo movimiento-lote.
func (r *MovementLotRepo) Create(link *entity.MovementLot) error {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movement_lots (id, movement_id, lot_id, quantity)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, link.ID, link.MovementID, link.LotID, link.Quantity)
	if err != nil {
		return fmt.Errorf("insert movement lot: %w", err)
	}
	return nil
}

// ListByMovement lista los vínculos de un movimiento.
func (r *MovementLotRepo) ListByMovement(movementID string) ([]entity.MovementLot, error) {
	query := `SELECT id, movement_id, lot_id, quantity FROM movement_lots WHERE movement_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list movement lots: %w", err)
	}
	defer rows.Close()
	var list []entity.MovementLot
	for rows.Next() {
		var link entity.MovementLot
		if err := rows.Scan(&link.ID, &link.MovementID, &link.LotID, &link.Quantity); err != nil {
			return nil, fmt.Errorf("scan movement lot: %w", err)
		}
		list = append(list, link)
	}
	return list, rows.Err()
}
