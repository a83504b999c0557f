package repository

import "github.com/puntoventa/lotes-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para Movement (DIP).
// La tabla es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByProduct(productID string, limit, offset int) ([]entity.Movement, error)
}

// MovementLotRepository define el puerto para los vínculos movimiento-lote.
type MovementLotRepository interface {
	Create(link *entity.MovementLot) error
	ListByMovement(movementID string) ([]entity.MovementLot, error)
}
