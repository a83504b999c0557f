package repository

import (
	"github.com/shopspring/decimal"

	"github.com/puntoventa/lotes-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para Lot (DIP).
type LotRepository interface {
	// Create inserta el lote. Si ya existe un "Lote de Registro" para el
	// producto (índice único parcial), devuelve domain.ErrDuplicate.
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	GetByProductAndLabel(productID, label string) (*entity.Lot, error)
	// ListByProduct devuelve todos los lotes del producto (activos e inactivos),
	// ordenados por fecha de ingreso ascendente. Necesario para asignar etiquetas
	// sin reutilizar números de lotes desactivados.
	ListByProduct(productID string) ([]entity.Lot, error)
	// ListActive devuelve los lotes con active=true y stock > 0, orden de ingreso ascendente.
	ListActive(productID string) ([]entity.Lot, error)
	// UpdateStock fija el stock del lote y su bandera active.
	UpdateStock(lotID string, stock decimal.Decimal, active bool) error
}
