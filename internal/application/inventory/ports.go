package inventory

import (
	"context"

	"github.com/puntoventa/lotes-api/internal/domain/entity"
	"github.com/puntoventa/lotes-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de lotes: reducciones de lotes, movimiento,
// vínculos movimiento-lote y stock agregado comitean juntos o se revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		linkRepo repository.MovementLotRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// KardexPDFGenerator genera el kardex (historial de movimientos) de un producto como PDF.
type KardexPDFGenerator interface {
	GenerateKardexPDF(product *entity.Product, movements []entity.Movement) ([]byte, error)
}
