package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/puntoventa/lotes-api/internal/domain"
	"github.com/puntoventa/lotes-api/internal/domain/entity"
	"github.com/puntoventa/lotes-api/internal/domain/expiry"
	"github.com/puntoventa/lotes-api/internal/domain/lot"
	"github.com/puntoventa/lotes-api/internal/domain/money"
	"github.com/puntoventa/lotes-api/internal/domain/repository"
)

// LotLedgerUseCase registra entradas y salidas de inventario por lotes de forma
// transaccional, con bloqueo de fila sobre el producto (SELECT FOR UPDATE) y
// Commit/Rollback. Mantiene el invariante stock agregado == suma de lotes activos.
type LotLedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
	movRepo     repository.MovementRepository
	linkRepo    repository.MovementLotRepository
}

// NewLotLedgerUseCase construye el caso de uso. Los repos recibidos aquí van
// sobre el pool (lecturas); las escrituras pasan por el TxRunner.
func NewLotLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	linkRepo repository.MovementLotRepository,
) *LotLedgerUseCase {
	return &LotLedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		lotRepo:     lotRepo,
		movRepo:     movRepo,
		linkRepo:    linkRepo,
	}
}

// EntradaInput entrada para registrar un ingreso de mercancía.
// Quantity y UnitCost se normalizan a 2 decimales antes de operar.
type EntradaInput struct {
	CompanyID  string
	UserID     string
	ProductID  string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	Reason     string
	ExpiresAt  *time.Time // nil = usar la política de vencimiento del producto si la declara
	Notes      string
	ReceiptRef string
	UpdateCost bool // rodar el costo de referencia del producto (promedio ponderado)
}

// SalidaInput entrada para registrar una salida de mercancía.
type SalidaInput struct {
	CompanyID         string
	UserID            string
	ProductID         string
	Quantity          decimal.Decimal
	Reason            string
	Strategy          string // fifo | lifo | auto (default)
	AffectsFinancials bool
	Notes             string
}

// MovementResult resultado de una entrada o salida registrada.
type MovementResult struct {
	Movement    entity.Movement
	Lot         *entity.Lot      // ENTRY: lote creado
	Allocations []lot.Allocation // EXIT: plan de descuento aplicado
}

// RegisterEntrada valida, bloquea el producto, asegura el lote de registro,
// crea el lote nuevo con la próxima etiqueta y el movimiento ENTRY, y suma el
// stock agregado. Todo en una transacción.
func (uc *LotLedgerUseCase) RegisterEntrada(ctx context.Context, in EntradaInput) (*MovementResult, error) {
	qty := money.Normalize(in.Quantity)
	unitCost := money.Normalize(in.UnitCost)
	if !qty.GreaterThan(decimal.Zero) || unitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkOwnership(in.CompanyID, in.ProductID); err != nil {
		return nil, err
	}

	now := time.Now()
	var result MovementResult

	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		_ repository.MovementLotRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto para serializar entradas/salidas concurrentes
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		stock := money.Normalize(product.Stock)

		if _, _, err := ensureRegistro(lotRepo, movRepo, product, in.UserID, now, nil); err != nil {
			return err
		}

		lots, err := lotRepo.ListByProduct(in.ProductID)
		if err != nil {
			return err
		}
		label := lot.NextLabel(lots)

		expires := in.ExpiresAt
		if expires == nil && product.HasExpiry {
			if lapse, ok := expiry.Parse(product.ExpiryLapse); ok {
				t := lapse.From(now)
				expires = &t
			}
		}

		newLot := &entity.Lot{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			Label:     label,
			UnitCost:  unitCost,
			Stock:     qty,
			EntryAt:   now,
			ExpiresAt: expires,
			Active:    true,
			CreatedAt: now,
		}
		if err := lotRepo.Create(newLot); err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:         uuid.New().String(),
			ProductID:  in.ProductID,
			Type:       entity.MovementTypeEntry,
			Quantity:   qty,
			Reason:     in.Reason,
			Date:       now,
			UnitCost:   &unitCost,
			LotLabel:   label,
			ExpiresAt:  expires,
			Notes:      in.Notes,
			ReceiptRef: in.ReceiptRef,
			CreatedAt:  now,
			CreatedBy:  in.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		newStock := stock.Add(qty)
		if in.UpdateCost {
			newCost := money.Normalize(lot.CostoPromedio(stock, money.Normalize(product.Cost), qty, unitCost))
			if err := productRepo.UpdateStockAndCost(in.ProductID, newStock, newCost); err != nil {
				return err
			}
		} else if err := productRepo.UpdateStock(in.ProductID, newStock); err != nil {
			return err
		}

		result = MovementResult{Movement: *mov, Lot: newLot}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RegisterSalida valida cantidad y stock agregado, obtiene el plan de descuento
// según la estrategia, reduce los lotes (inactivándolos al llegar a cero), crea
// el movimiento EXIT con un vínculo por lote tocado y resta el stock agregado.
// Movimiento, vínculos, reducciones y agregado comitean como unidad atómica.
func (uc *LotLedgerUseCase) RegisterSalida(ctx context.Context, in SalidaInput) (*MovementResult, error) {
	qty := money.Normalize(in.Quantity)
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkOwnership(in.CompanyID, in.ProductID); err != nil {
		return nil, err
	}
	strategy := lot.ParseStrategy(in.Strategy)

	now := time.Now()
	var result MovementResult

	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		linkRepo repository.MovementLotRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		stock := money.Normalize(product.Stock)
		if stock.LessThan(qty) {
			return domain.ErrInsufficientStock
		}

		if _, _, err := ensureRegistro(lotRepo, movRepo, product, in.UserID, now, nil); err != nil {
			return err
		}

		actives, err := lotRepo.ListActive(in.ProductID)
		if err != nil {
			return err
		}
		plan, err := lot.Plan(actives, qty, strategy)
		if err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:                uuid.New().String(),
			ProductID:         in.ProductID,
			Type:              entity.MovementTypeExit,
			Quantity:          qty,
			Reason:            in.Reason,
			Date:              now,
			DiscountMethod:    string(strategy),
			AffectsFinancials: in.AffectsFinancials,
			Notes:             in.Notes,
			CreatedAt:         now,
			CreatedBy:         in.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		byID := make(map[string]entity.Lot, len(actives))
		for _, l := range actives {
			byID[l.ID] = l
		}
		for _, alloc := range plan {
			current := money.Normalize(byID[alloc.LotID].Stock)
			remaining := current.Sub(alloc.Quantity)
			// El lote pasa a inactivo exactamente cuando su stock llega a <= 0
			active := remaining.GreaterThan(decimal.Zero)
			if err := lotRepo.UpdateStock(alloc.LotID, remaining, active); err != nil {
				return err
			}
			link := &entity.MovementLot{
				ID:         uuid.New().String(),
				MovementID: mov.ID,
				LotID:      alloc.LotID,
				Quantity:   alloc.Quantity,
			}
			if err := linkRepo.Create(link); err != nil {
				return err
			}
		}

		if err := productRepo.UpdateStock(in.ProductID, stock.Sub(qty)); err != nil {
			return err
		}

		result = MovementResult{Movement: *mov, Allocations: plan}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// checkOwnership valida que el producto exista y pertenezca a la empresa.
func (uc *LotLedgerUseCase) checkOwnership(companyID, productID string) error {
	if productID == "" || companyID == "" {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}
