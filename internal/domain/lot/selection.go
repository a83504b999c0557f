// Package lot implementa los servicios de dominio del motor de lotes:
// asignación de etiquetas, política de selección para salidas y costo promedio.
package lot

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/puntoventa/lotes-api/internal/domain"
	"github.com/puntoventa/lotes-api/internal/domain/entity"
	"github.com/puntoventa/lotes-api/internal/domain/money"
)

// Strategy política de descuento de lotes en una salida.
type Strategy string

const (
	// StrategyFIFO consume primero el lote más antiguo.
	StrategyFIFO Strategy = "fifo"
	// StrategyLIFO consume primero el lote más reciente.
	StrategyLIFO Strategy = "lifo"
	// StrategyAuto consume primero los lotes por vencer (vencimiento más próximo
	// primero) y después los que no vencen en orden FIFO. Es la política por defecto.
	StrategyAuto Strategy = "auto"
)

// ParseStrategy normaliza el string de entrada; desconocido o vacío -> auto.
func ParseStrategy(s string) Strategy {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyFIFO:
		return StrategyFIFO
	case StrategyLIFO:
		return StrategyLIFO
	default:
		return StrategyAuto
	}
}

// Allocation indica cuánto tomar de un lote concreto.
type Allocation struct {
	LotID    string
	Label    string
	Quantity decimal.Decimal
}

// Order devuelve una copia de los lotes en el orden de consumo de la estrategia.
func Order(lots []entity.Lot, s Strategy) []entity.Lot {
	ordered := make([]entity.Lot, len(lots))
	copy(ordered, lots)

	switch s {
	case StrategyFIFO:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].EntryAt.Before(ordered[j].EntryAt)
		})
	case StrategyLIFO:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].EntryAt.After(ordered[j].EntryAt)
		})
	default: // auto: por vencer primero (vencimiento asc), luego sin vencimiento (ingreso asc)
		sort.SliceStable(ordered, func(i, j int) bool {
			ei, ej := ordered[i].ExpiresAt, ordered[j].ExpiresAt
			switch {
			case ei != nil && ej != nil:
				if !ei.Equal(*ej) {
					return ei.Before(*ej)
				}
				return ordered[i].EntryAt.Before(ordered[j].EntryAt)
			case ei != nil:
				return true
			case ej != nil:
				return false
			default:
				return ordered[i].EntryAt.Before(ordered[j].EntryAt)
			}
		})
	}
	return ordered
}

// Plan calcula el plan de descuento para una salida de requested unidades
// sobre los lotes activos dados. Recorre los lotes en el orden de la estrategia
// tomando min(stock del lote, restante) hasta cubrir la cantidad.
//
// Si los lotes se agotan con restante > 0, el libro de lotes divergió del
// stock agregado que el caller ya validó: devuelve domain.ErrLotesDesfasados.
// No muta los lotes recibidos.
func Plan(lots []entity.Lot, requested decimal.Decimal, s Strategy) ([]Allocation, error) {
	requested = money.Normalize(requested)
	if !requested.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	remaining := requested
	var plan []Allocation
	for _, l := range Order(lots, s) {
		stock := money.Normalize(l.Stock)
		if !l.Active || !stock.GreaterThan(decimal.Zero) {
			continue
		}
		take := stock
		if remaining.LessThan(take) {
			take = remaining
		}
		plan = append(plan, Allocation{LotID: l.ID, Label: l.Label, Quantity: take})
		remaining = remaining.Sub(take)
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
	}
	if remaining.GreaterThan(decimal.Zero) {
		return nil, domain.ErrLotesDesfasados
	}
	return plan, nil
}
