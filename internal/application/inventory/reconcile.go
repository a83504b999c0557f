package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/puntoventa/lotes-api/internal/domain"
	"github.com/puntoventa/lotes-api/internal/domain/entity"
	"github.com/puntoventa/lotes-api/internal/domain/money"
)

// AffectedLot lote tocado por un movimiento, con la cantidad que aportó.
type AffectedLot struct {
	LotID    string
	Label    string
	Quantity decimal.Decimal
}

// ReconcileResult reconstrucción de lectura de un movimiento: lotes afectados,
// costo total (solo entradas) y stock del producto antes del movimiento.
type ReconcileResult struct {
	Movement entity.Movement
	Lots     []AffectedLot
	// LotsEstimated=true cuando el movimiento es anterior al rastreo de vínculos
	// y los lotes listados son los activos actuales del producto, no los reales.
	LotsEstimated bool
	CostTotal     *decimal.Decimal // solo ENTRY: cantidad × costo unitario
	StockBefore   decimal.Decimal
}

// Reconcile reconstruye el detalle de un movimiento sin mutar estado.
// ENTRY: el único lote afectado es el creado por el movimiento (por etiqueta);
// stock_before = stock − cantidad. EXIT: lotes desde los vínculos movimiento-lote
// (fallback a los lotes activos actuales si no hay vínculos); stock_before =
// stock + cantidad.
func (uc *LotLedgerUseCase) Reconcile(ctx context.Context, companyID, movementID string) (*ReconcileResult, error) {
	if movementID == "" {
		return nil, domain.ErrInvalidInput
	}
	mov, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(mov.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	qty := money.Normalize(mov.Quantity)
	stock := money.Normalize(product.Stock)
	result := &ReconcileResult{Movement: *mov}

	switch mov.Type {
	case entity.MovementTypeEntry:
		unitCost := money.Normalize(mov.UnitCost)
		total := money.Normalize(qty.Mul(unitCost))
		result.CostTotal = &total
		result.StockBefore = stock.Sub(qty)
		if mov.LotLabel != "" {
			l, err := uc.lotRepo.GetByProductAndLabel(mov.ProductID, mov.LotLabel)
			if err != nil {
				return nil, err
			}
			if l != nil {
				result.Lots = []AffectedLot{{LotID: l.ID, Label: l.Label, Quantity: qty}}
			}
		}
	case entity.MovementTypeExit:
		result.StockBefore = stock.Add(qty)
		links, err := uc.linkRepo.ListByMovement(mov.ID)
		if err != nil {
			return nil, err
		}
		if len(links) > 0 {
			for _, link := range links {
				affected := AffectedLot{LotID: link.LotID, Quantity: money.Normalize(link.Quantity)}
				l, err := uc.lotRepo.GetByID(link.LotID)
				if err != nil {
					return nil, err
				}
				if l != nil {
					affected.Label = l.Label
				}
				result.Lots = append(result.Lots, affected)
			}
		} else {
			// Movimiento anterior al rastreo de vínculos: aproximar con los activos actuales
			actives, err := uc.lotRepo.ListActive(mov.ProductID)
			if err != nil {
				return nil, err
			}
			result.LotsEstimated = true
			for _, l := range actives {
				result.Lots = append(result.Lots, AffectedLot{
					LotID:    l.ID,
					Label:    l.Label,
					Quantity: money.Normalize(l.Stock),
				})
			}
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	return result, nil
}
