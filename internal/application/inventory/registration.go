package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/puntoventa/lotes-api/internal/domain"
	"github.com/puntoventa/lotes-api/internal/domain/entity"
	"github.com/puntoventa/lotes-api/internal/domain/expiry"
	"github.com/puntoventa/lotes-api/internal/domain/money"
	"github.com/puntoventa/lotes-api/internal/domain/repository"
)

// RegistroInput entrada para crear explícitamente el lote de registro.
type RegistroInput struct {
	CompanyID string
	UserID    string
	ProductID string
	ExpiresAt *time.Time // nil = derivar de la política de vencimiento del producto
}

// RegistroResult resultado de la creación del lote de registro.
// Created=false indica que el producto ya tenía lote de registro o no tiene stock.
type RegistroResult struct {
	Created  bool
	Movement *entity.Movement
	Lot      *entity.Lot
}

// CreateRegistrationLot crea, si hace falta, el lote sintético que representa
// el stock previo al control por lotes. Es idempotente: si el lote ya existe no
// hace nada. Una carrera de creación concurrente termina en domain.ErrDuplicate
// (índice único parcial) y revierte la transacción completa; el caller decide
// si reintenta.
func (uc *LotLedgerUseCase) CreateRegistrationLot(ctx context.Context, in RegistroInput) (*RegistroResult, error) {
	if err := uc.checkOwnership(in.CompanyID, in.ProductID); err != nil {
		return nil, err
	}

	now := time.Now()
	var result RegistroResult

	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		_ repository.MovementLotRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		l, m, err := ensureRegistro(lotRepo, movRepo, product, in.UserID, now, in.ExpiresAt)
		if err != nil {
			return err
		}
		result = RegistroResult{Created: l != nil, Movement: m, Lot: l}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ensureRegistro crea el lote de registro y su movimiento "Registro inicial" si
// el producto tiene stock agregado pero ningún lote de registro todavía. Ambos
// cargan el stock y costo actuales del producto. Devuelve (nil, nil, nil) cuando
// no hay nada que hacer. Debe llamarse con la fila del producto ya bloqueada.
func ensureRegistro(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	product *entity.Product,
	actorID string,
	now time.Time,
	explicitExpiry *time.Time,
) (*entity.Lot, *entity.Movement, error) {
	lots, err := lotRepo.ListByProduct(product.ID)
	if err != nil {
		return nil, nil, err
	}
	for _, l := range lots {
		if l.IsRegistro() {
			return nil, nil, nil
		}
	}

	stock := money.Normalize(product.Stock)
	if !stock.GreaterThan(decimal.Zero) {
		return nil, nil, nil
	}
	cost := money.Normalize(product.Cost)

	expires := explicitExpiry
	if expires == nil && product.HasExpiry {
		if lapse, ok := expiry.Parse(product.ExpiryLapse); ok {
			t := lapse.From(now)
			expires = &t
		}
	}

	l := &entity.Lot{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Label:     entity.LotLabelRegistro,
		UnitCost:  cost,
		Stock:     stock,
		EntryAt:   now,
		ExpiresAt: expires,
		Active:    true,
		CreatedAt: now,
	}
	// Una carrera con otra transacción sube como ErrDuplicate y aborta todo
	if err := lotRepo.Create(l); err != nil {
		return nil, nil, err
	}

	m := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      entity.MovementTypeEntry,
		Quantity:  stock,
		Reason:    entity.ReasonRegistroInicial,
		Date:      now,
		UnitCost:  &cost,
		LotLabel:  entity.LotLabelRegistro,
		ExpiresAt: expires,
		CreatedAt: now,
		CreatedBy: actorID,
	}
	if err := movRepo.Create(m); err != nil {
		return nil, nil, err
	}
	return l, m, nil
}
