package inventory

import (
	"context"

	"github.com/puntoventa/lotes-api/internal/domain/entity"
	"github.com/puntoventa/lotes-api/internal/domain/lot"
)

// ActiveLots devuelve los lotes activos con stock del producto, en orden de
// ingreso ascendente (los callers reordenan según estrategia).
func (uc *LotLedgerUseCase) ActiveLots(ctx context.Context, companyID, productID string) ([]entity.Lot, error) {
	if err := uc.checkOwnership(companyID, productID); err != nil {
		return nil, err
	}
	return uc.lotRepo.ListActive(productID)
}

// NextLabel devuelve la etiqueta que recibiría el próximo lote del producto.
func (uc *LotLedgerUseCase) NextLabel(ctx context.Context, companyID, productID string) (string, error) {
	if err := uc.checkOwnership(companyID, productID); err != nil {
		return "", err
	}
	lots, err := uc.lotRepo.ListByProduct(productID)
	if err != nil {
		return "", err
	}
	return lot.NextLabel(lots), nil
}

// Movements devuelve el historial de movimientos del producto (kardex), más
// reciente primero.
func (uc *LotLedgerUseCase) Movements(ctx context.Context, companyID, productID string, limit, offset int) (*entity.Product, []entity.Movement, error) {
	if err := uc.checkOwnership(companyID, productID); err != nil {
		return nil, nil, err
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, nil, err
	}
	movements, err := uc.movRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return product, movements, nil
}
