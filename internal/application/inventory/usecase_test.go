package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puntoventa/lotes-api/internal/application/dto"
	"github.com/puntoventa/lotes-api/internal/application/inventory"
	"github.com/puntoventa/lotes-api/internal/domain"
	"github.com/puntoventa/lotes-api/internal/domain/entity"
	"github.com/puntoventa/lotes-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un memStore compartido entre los repos y un TxRunner que
// ejecuta la función directamente (sin transacción real).
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID = "company-1"
	testOtherCo   = "company-2"
	testUserID    = "user-1"
	testProductID = "product-1"
)

type memStore struct {
	products  map[string]*entity.Product
	lots      []*entity.Lot
	movements []*entity.Movement
	links     []*entity.MovementLot

	// failLotCreate fuerza el error de una carrera de creación concurrente.
	failLotCreate error
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	r.s.products[productID].Stock = stock
	return nil
}

func (r *memProductRepo) UpdateStockAndCost(productID string, stock, cost decimal.Decimal) error {
	p := r.s.products[productID]
	p.Stock, p.Cost = stock, cost
	return nil
}

type memLotRepo struct{ s *memStore }

func (r *memLotRepo) Create(l *entity.Lot) error {
	if r.s.failLotCreate != nil {
		return r.s.failLotCreate
	}
	if l.IsRegistro() {
		for _, existing := range r.s.lots {
			if existing.ProductID == l.ProductID && existing.IsRegistro() {
				return domain.ErrDuplicate // índice único parcial
			}
		}
	}
	cp := *l
	r.s.lots = append(r.s.lots, &cp)
	return nil
}

func (r *memLotRepo) GetByID(id string) (*entity.Lot, error) {
	for _, l := range r.s.lots {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLotRepo) GetByProductAndLabel(productID, label string) (*entity.Lot, error) {
	for _, l := range r.s.lots {
		if l.ProductID == productID && l.Label == label {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLotRepo) ListByProduct(productID string) ([]entity.Lot, error) {
	var out []entity.Lot
	for _, l := range r.s.lots {
		if l.ProductID == productID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *memLotRepo) ListActive(productID string) ([]entity.Lot, error) {
	var out []entity.Lot
	for _, l := range r.s.lots {
		if l.ProductID == productID && l.Active && l.Stock.GreaterThan(decimal.Zero) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *memLotRepo) UpdateStock(lotID string, stock decimal.Decimal, active bool) error {
	for _, l := range r.s.lots {
		if l.ID == lotID {
			l.Stock, l.Active = stock, active
			return nil
		}
	}
	return domain.ErrNotFound
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]entity.Movement, error) {
	var out []entity.Movement
	// más recientes primero: el store inserta en orden cronológico
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ProductID == productID {
			out = append(out, *r.s.movements[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type memLinkRepo struct{ s *memStore }

func (r *memLinkRepo) Create(link *entity.MovementLot) error {
	cp := *link
	r.s.links = append(r.s.links, &cp)
	return nil
}

func (r *memLinkRepo) ListByMovement(movementID string) ([]entity.MovementLot, error) {
	var out []entity.MovementLot
	for _, link := range r.s.links {
		if link.MovementID == movementID {
			out = append(out, *link)
		}
	}
	return out, nil
}

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(_ context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	linkRepo repository.MovementLotRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&memLotRepo{t.s}, &memMovementRepo{t.s}, &memLinkRepo{t.s}, &memProductRepo{t.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func testProduct(stock, cost float64) *entity.Product {
	return &entity.Product{
		ID:        testProductID,
		CompanyID: testCompanyID,
		Name:      "Café molido 500g",
		Stock:     decimal.NewFromFloat(stock),
		Cost:      decimal.NewFromFloat(cost),
	}
}

func newLedger(products ...*entity.Product) (*inventory.LotLedgerUseCase, *memStore) {
	s := newMemStore(products...)
	uc := inventory.NewLotLedgerUseCase(
		&memTxRunner{s},
		&memProductRepo{s},
		&memLotRepo{s},
		&memMovementRepo{s},
		&memLinkRepo{s},
	)
	return uc, s
}

// activeLotSum suma el stock de los lotes activos del producto.
func activeLotSum(s *memStore, productID string) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range s.lots {
		if l.ProductID == productID && l.Active {
			sum = sum.Add(l.Stock)
		}
	}
	return sum
}

func entrada(qty, cost string) inventory.EntradaInput {
	return inventory.EntradaInput{
		CompanyID: testCompanyID,
		UserID:    testUserID,
		ProductID: testProductID,
		Quantity:  decimal.RequireFromString(qty),
		UnitCost:  decimal.RequireFromString(cost),
		Reason:    "Compra a proveedor",
	}
}

func salida(qty, strategy string) inventory.SalidaInput {
	return inventory.SalidaInput{
		CompanyID: testCompanyID,
		UserID:    testUserID,
		ProductID: testProductID,
		Quantity:  decimal.RequireFromString(qty),
		Reason:    "Venta",
		Strategy:  strategy,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

// TestRegisterEntrada_PrimeraEntradaCreaRegistro un producto con stock previo al
// control por lotes recibe primero su "Lote de Registro" y después el lote nuevo.
func TestRegisterEntrada_PrimeraEntradaCreaRegistro(t *testing.T) {
	uc, s := newLedger(testProduct(10, 100))

	result, err := uc.RegisterEntrada(context.Background(), entrada("5", "120"))
	require.NoError(t, err)

	require.NotNil(t, result.Lot)
	assert.Equal(t, "Lote #2", result.Lot.Label,
		"con el registro recién creado, el lote de la entrada es el #2")
	assert.Equal(t, entity.MovementTypeEntry, result.Movement.Type)

	// Registro + lote nuevo
	require.Len(t, s.lots, 2)
	assert.Equal(t, entity.LotLabelRegistro, s.lots[0].Label)
	assert.Equal(t, "10.00", s.lots[0].Stock.StringFixed(2),
		"el lote de registro carga el stock previo del producto")
	assert.Equal(t, "100.00", s.lots[0].UnitCost.StringFixed(2))

	// Movimiento "Registro inicial" + movimiento de la entrada
	require.Len(t, s.movements, 2)
	assert.Equal(t, entity.ReasonRegistroInicial, s.movements[0].Reason)

	// Conservación: stock agregado == suma de lotes activos
	assert.True(t, s.products[testProductID].Stock.Equal(activeLotSum(s, testProductID)),
		"el stock agregado debe igualar la suma de lotes activos")
	assert.Equal(t, "15.00", s.products[testProductID].Stock.StringFixed(2))
}

// TestRegisterEntrada_ProductoSinStockPrevio sin stock previo no hay nada que
// representar: ensureRegistro es un no-op y el lote de la entrada toma la
// etiqueta de registro todavía pendiente.
func TestRegisterEntrada_ProductoSinStockPrevio(t *testing.T) {
	uc, s := newLedger(testProduct(0, 0))

	result, err := uc.RegisterEntrada(context.Background(), entrada("8", "50"))
	require.NoError(t, err)

	// ensureRegistro no hace nada (stock 0); el lote de la entrada toma la
	// etiqueta de registro pendiente.
	require.Len(t, s.lots, 1)
	assert.Equal(t, entity.LotLabelRegistro, result.Lot.Label)
	assert.True(t, s.products[testProductID].Stock.Equal(activeLotSum(s, testProductID)))
}

// TestRegisterEntrada_EtiquetasMonotonas los números de lote crecen y nunca se
// reutilizan, incluso tras agotar lotes intermedios.
func TestRegisterEntrada_EtiquetasMonotonas(t *testing.T) {
	uc, s := newLedger(testProduct(10, 100))
	ctx := context.Background()

	r1, err := uc.RegisterEntrada(ctx, entrada("5", "100"))
	require.NoError(t, err)
	r2, err := uc.RegisterEntrada(ctx, entrada("5", "100"))
	require.NoError(t, err)
	assert.Equal(t, "Lote #2", r1.Lot.Label)
	assert.Equal(t, "Lote #3", r2.Lot.Label)

	// Agotar el lote #2 por completo no libera su número
	_, err = uc.RegisterSalida(ctx, salida("15", "fifo"))
	require.NoError(t, err)

	r3, err := uc.RegisterEntrada(ctx, entrada("5", "100"))
	require.NoError(t, err)
	assert.Equal(t, "Lote #4", r3.Lot.Label,
		"los números de lotes agotados nunca se reutilizan")
	assert.True(t, s.products[testProductID].Stock.Equal(activeLotSum(s, testProductID)))
}

// TestRegisterEntrada_CostoPromedio con update_cost la entrada rueda el costo de
// referencia del producto al promedio ponderado.
func TestRegisterEntrada_CostoPromedio(t *testing.T) {
	uc, s := newLedger(testProduct(10, 100))

	in := entrada("5", "130")
	in.UpdateCost = true
	_, err := uc.RegisterEntrada(context.Background(), in)
	require.NoError(t, err)

	// (10*100 + 5*130) / 15 = 110
	assert.Equal(t, "110.00", s.products[testProductID].Cost.StringFixed(2))
}

// TestRegisterEntrada_Validaciones cantidades no positivas y costos negativos se
// rechazan antes de tocar el storage.
func TestRegisterEntrada_Validaciones(t *testing.T) {
	uc, s := newLedger(testProduct(10, 100))
	ctx := context.Background()

	in := entrada("0", "10")
	_, err := uc.RegisterEntrada(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = entrada("5", "-1")
	_, err = uc.RegisterEntrada(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, s.lots, "una entrada inválida no debe dejar rastro")
	assert.Empty(t, s.movements)
}

// TestRegisterEntrada_Ownership producto de otra empresa → forbidden; producto
// inexistente → not found.
func TestRegisterEntrada_Ownership(t *testing.T) {
	uc, _ := newLedger(testProduct(10, 100))
	ctx := context.Background()

	in := entrada("5", "10")
	in.CompanyID = testOtherCo
	_, err := uc.RegisterEntrada(ctx, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	in = entrada("5", "10")
	in.ProductID = "no-existe"
	_, err = uc.RegisterEntrada(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRegisterEntrada_VencimientoPorPolitica sin fecha explícita, un producto
// perecedero deriva el vencimiento de su lapso simbólico.
func TestRegisterEntrada_VencimientoPorPolitica(t *testing.T) {
	p := testProduct(0, 0)
	p.HasExpiry = true
	p.ExpiryLapse = "1 semana"
	uc, _ := newLedger(p)

	before := time.Now()
	result, err := uc.RegisterEntrada(context.Background(), entrada("3", "10"))
	require.NoError(t, err)

	require.NotNil(t, result.Lot.ExpiresAt, "el lote debe heredar el vencimiento de la política")
	expected := before.AddDate(0, 0, 7)
	assert.WithinDuration(t, expected, *result.Lot.ExpiresAt, time.Minute)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas
// ──────────────────────────────────────────────────────────────────────────────

// TestRegisterSalida_DescuentaYVincula la salida reduce lotes según el plan,
// escribe un vínculo por lote tocado y mantiene la conservación.
func TestRegisterSalida_DescuentaYVincula(t *testing.T) {
	uc, s := newLedger(testProduct(10, 100))
	ctx := context.Background()

	_, err := uc.RegisterEntrada(ctx, entrada("5", "120")) // registro(10) + #2(5)
	require.NoError(t, err)

	result, err := uc.RegisterSalida(ctx, salida("12", "fifo"))
	require.NoError(t, err)

	// FIFO: registro (10) completo + 2 del lote #2
	require.Len(t, result.Allocations, 2)
	assert.Equal(t, entity.LotLabelRegistro, result.Allocations[0].Label)
	assert.Equal(t, "10.00", result.Allocations[0].Quantity.StringFixed(2))
	assert.Equal(t, "Lote #2", result.Allocations[1].Label)
	assert.Equal(t, "2.00", result.Allocations[1].Quantity.StringFixed(2))

	// El registro quedó agotado e inactivo
	registro, err := (&memLotRepo{s}).GetByProductAndLabel(testProductID, entity.LotLabelRegistro)
	require.NoError(t, err)
	assert.False(t, registro.Active, "un lote con stock cero pasa a inactivo")
	assert.True(t, registro.Stock.IsZero())

	// Un vínculo por lote tocado
	links, err := (&memLinkRepo{s}).ListByMovement(result.Movement.ID)
	require.NoError(t, err)
	assert.Len(t, links, 2)

	assert.Equal(t, "3.00", s.products[testProductID].Stock.StringFixed(2))
	assert.True(t, s.products[testProductID].Stock.Equal(activeLotSum(s, testProductID)))
}

// TestRegisterSalida_StockInsuficiente el agregado manda: si no alcanza, la
// salida se rechaza sin escribir nada.
func TestRegisterSalida_StockInsuficiente(t *testing.T) {
	uc, s := newLedger(testProduct(4, 100))

	_, err := uc.RegisterSalida(context.Background(), salida("5", "auto"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.movements)
	assert.Empty(t, s.links)
}

// TestRegisterSalida_PrimeraSalidaCreaRegistro una salida sobre stock nunca
// loteado primero materializa el lote de registro y descuenta de él.
func TestRegisterSalida_PrimeraSalidaCreaRegistro(t *testing.T) {
	uc, s := newLedger(testProduct(10, 100))

	result, err := uc.RegisterSalida(context.Background(), salida("4", "auto"))
	require.NoError(t, err)

	require.Len(t, result.Allocations, 1)
	assert.Equal(t, entity.LotLabelRegistro, result.Allocations[0].Label)
	assert.Equal(t, "6.00", s.products[testProductID].Stock.StringFixed(2))
	assert.True(t, s.products[testProductID].Stock.Equal(activeLotSum(s, testProductID)))
}

// TestRegisterSalida_LotesDesfasados si el libro de lotes no cubre el agregado
// ya validado, la operación es un error de integridad, no un descuento parcial.
func TestRegisterSalida_LotesDesfasados(t *testing.T) {
	uc, s := newLedger(testProduct(10, 100))

	// Registro preexistente con menos stock que el agregado: divergencia.
	s.lots = append(s.lots, &entity.Lot{
		ID:        "registro-viejo",
		ProductID: testProductID,
		Label:     entity.LotLabelRegistro,
		Stock:     decimal.NewFromInt(3),
		EntryAt:   time.Now().AddDate(0, -1, 0),
		Active:    true,
	})

	_, err := uc.RegisterSalida(context.Background(), salida("8", "auto"))
	assert.ErrorIs(t, err, domain.ErrLotesDesfasados)
}

// TestRegisterSalida_EstrategiaQuedaEnMovimiento el movimiento registra con qué
// método se descontó.
func TestRegisterSalida_EstrategiaQuedaEnMovimiento(t *testing.T) {
	uc, _ := newLedger(testProduct(10, 100))

	result, err := uc.RegisterSalida(context.Background(), salida("2", "lifo"))
	require.NoError(t, err)
	assert.Equal(t, "lifo", result.Movement.DiscountMethod)

	result, err = uc.RegisterSalida(context.Background(), salida("2", ""))
	require.NoError(t, err)
	assert.Equal(t, "auto", result.Movement.DiscountMethod, "estrategia vacía cae a auto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lote de registro explícito
// ──────────────────────────────────────────────────────────────────────────────

// TestCreateRegistrationLot_Idempotente la segunda llamada no crea nada.
func TestCreateRegistrationLot_Idempotente(t *testing.T) {
	uc, s := newLedger(testProduct(10, 100))
	ctx := context.Background()
	in := inventory.RegistroInput{CompanyID: testCompanyID, UserID: testUserID, ProductID: testProductID}

	first, err := uc.CreateRegistrationLot(ctx, in)
	require.NoError(t, err)
	assert.True(t, first.Created)
	require.NotNil(t, first.Lot)
	assert.Equal(t, entity.LotLabelRegistro, first.Lot.Label)
	require.NotNil(t, first.Movement)
	assert.Equal(t, entity.ReasonRegistroInicial, first.Movement.Reason)

	second, err := uc.CreateRegistrationLot(ctx, in)
	require.NoError(t, err)
	assert.False(t, second.Created, "la segunda llamada debe ser un no-op")
	assert.Nil(t, second.Lot)

	require.Len(t, s.lots, 1, "exactamente un lote de registro persistido")
}

// TestCreateRegistrationLot_SinStock producto sin stock no necesita registro.
func TestCreateRegistrationLot_SinStock(t *testing.T) {
	uc, s := newLedger(testProduct(0, 100))

	result, err := uc.CreateRegistrationLot(context.Background(),
		inventory.RegistroInput{CompanyID: testCompanyID, UserID: testUserID, ProductID: testProductID})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Empty(t, s.lots)
}

// TestCreateRegistrationLot_CarreraConcurrente la carrera termina en el índice
// único: ErrDuplicate sube al caller y nada queda a medias.
func TestCreateRegistrationLot_CarreraConcurrente(t *testing.T) {
	uc, s := newLedger(testProduct(10, 100))
	s.failLotCreate = domain.ErrDuplicate

	_, err := uc.CreateRegistrationLot(context.Background(),
		inventory.RegistroInput{CompanyID: testCompanyID, UserID: testUserID, ProductID: testProductID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, s.movements, "el movimiento no debe persistir si el lote falló")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación
// ──────────────────────────────────────────────────────────────────────────────

// TestReconcile_SalidaFiel una salida que tomó 3 de X y 2 de Y se reconstruye
// con exactamente esos lotes y cantidades, y stock_before == stock_after + 5.
func TestReconcile_SalidaFiel(t *testing.T) {
	uc, s := newLedger(testProduct(0, 0))
	ctx := context.Background()

	_, err := uc.RegisterEntrada(ctx, entrada("3", "100")) // lote X
	require.NoError(t, err)
	_, err = uc.RegisterEntrada(ctx, entrada("7", "100")) // lote Y
	require.NoError(t, err)

	exit, err := uc.RegisterSalida(ctx, salida("5", "fifo")) // 3 de X + 2 de Y
	require.NoError(t, err)

	rec, err := uc.Reconcile(ctx, testCompanyID, exit.Movement.ID)
	require.NoError(t, err)

	assert.False(t, rec.LotsEstimated, "con vínculos persistidos no hay estimación")
	require.Len(t, rec.Lots, 2)
	assert.Equal(t, "3.00", rec.Lots[0].Quantity.StringFixed(2))
	assert.Equal(t, "2.00", rec.Lots[1].Quantity.StringFixed(2))

	after := s.products[testProductID].Stock
	assert.True(t, rec.StockBefore.Equal(after.Add(decimal.NewFromInt(5))),
		"stock_before debe ser stock_after + cantidad de la salida")
	assert.Nil(t, rec.CostTotal, "las salidas no llevan costo total")
}

// TestReconcile_Entrada una entrada reconstruye su costo total y el lote creado.
func TestReconcile_Entrada(t *testing.T) {
	uc, s := newLedger(testProduct(0, 0))
	ctx := context.Background()

	result, err := uc.RegisterEntrada(ctx, entrada("4", "25.5"))
	require.NoError(t, err)

	rec, err := uc.Reconcile(ctx, testCompanyID, result.Movement.ID)
	require.NoError(t, err)

	require.NotNil(t, rec.CostTotal)
	assert.Equal(t, "102.00", rec.CostTotal.StringFixed(2), "4 × 25.50")
	require.Len(t, rec.Lots, 1)
	assert.Equal(t, result.Lot.ID, rec.Lots[0].LotID)
	assert.Equal(t, "4.00", rec.Lots[0].Quantity.StringFixed(2))

	after := s.products[testProductID].Stock
	assert.True(t, rec.StockBefore.Equal(after.Sub(decimal.NewFromInt(4))))
}

// TestReconcile_SalidaSinVinculos movimientos anteriores al rastreo caen al
// fallback de lotes activos actuales, marcado como estimación.
func TestReconcile_SalidaSinVinculos(t *testing.T) {
	uc, s := newLedger(testProduct(6, 100))
	ctx := context.Background()

	// Registro con los activos actuales
	_, err := uc.CreateRegistrationLot(ctx,
		inventory.RegistroInput{CompanyID: testCompanyID, UserID: testUserID, ProductID: testProductID})
	require.NoError(t, err)

	// Movimiento EXIT histórico sin vínculos
	legacy := &entity.Movement{
		ID:        "mov-legacy",
		ProductID: testProductID,
		Type:      entity.MovementTypeExit,
		Quantity:  decimal.NewFromInt(2),
		Date:      time.Now().AddDate(0, -6, 0),
		CreatedAt: time.Now().AddDate(0, -6, 0),
	}
	s.movements = append(s.movements, legacy)

	rec, err := uc.Reconcile(ctx, testCompanyID, legacy.ID)
	require.NoError(t, err)

	assert.True(t, rec.LotsEstimated, "sin vínculos los lotes son una aproximación")
	require.Len(t, rec.Lots, 1)
	assert.Equal(t, entity.LotLabelRegistro, rec.Lots[0].Label)
	assert.Equal(t, "8.00", rec.StockBefore.StringFixed(2), "stock 6 + salida 2")
}

// TestReconcile_Errores movimiento inexistente y empresa ajena.
func TestReconcile_Errores(t *testing.T) {
	uc, _ := newLedger(testProduct(5, 100))
	ctx := context.Background()

	_, err := uc.Reconcile(ctx, testCompanyID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Reconcile(ctx, testCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	result, err := uc.RegisterEntrada(ctx, entrada("1", "10"))
	require.NoError(t, err)
	_, err = uc.Reconcile(ctx, testOtherCo, result.Movement.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adaptadores de request y consultas
// ──────────────────────────────────────────────────────────────────────────────

// TestRegisterEntradaFromRequest_NormalizaMontos los montos llegan como texto de
// usuario y se normalizan en la frontera.
func TestRegisterEntradaFromRequest_NormalizaMontos(t *testing.T) {
	uc, s := newLedger(testProduct(0, 0))

	result, err := uc.RegisterEntradaFromRequest(context.Background(), testCompanyID, testUserID,
		dto.RegistrarEntradaRequest{
			ProductID: testProductID,
			Quantity:  "10.",
			UnitCost:  "$1,234.5",
		})
	require.NoError(t, err)

	assert.Equal(t, "10.00", result.Movement.Quantity.StringFixed(2))
	assert.Equal(t, "1234.50", result.Lot.UnitCost.StringFixed(2))
	assert.Equal(t, "10.00", s.products[testProductID].Stock.StringFixed(2))
}

// TestRegisterEntradaFromRequest_FechaInvalida una fecha de vencimiento no
// parseable es un error de validación, no una degradación silenciosa.
func TestRegisterEntradaFromRequest_FechaInvalida(t *testing.T) {
	uc, _ := newLedger(testProduct(0, 0))

	_, err := uc.RegisterEntradaFromRequest(context.Background(), testCompanyID, testUserID,
		dto.RegistrarEntradaRequest{
			ProductID:  testProductID,
			Quantity:   "1",
			UnitCost:   "1",
			ExpiryDate: "31/12/2025",
		})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestQueries_ActiveLotsYNextLabel lecturas con validación de pertenencia.
func TestQueries_ActiveLotsYNextLabel(t *testing.T) {
	uc, _ := newLedger(testProduct(10, 100))
	ctx := context.Background()

	next, err := uc.NextLabel(ctx, testCompanyID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, entity.LotLabelRegistro, next)

	_, err = uc.RegisterEntrada(ctx, entrada("5", "100"))
	require.NoError(t, err)

	next, err = uc.NextLabel(ctx, testCompanyID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, "Lote #3", next)

	lots, err := uc.ActiveLots(ctx, testCompanyID, testProductID)
	require.NoError(t, err)
	assert.Len(t, lots, 2)

	_, err = uc.ActiveLots(ctx, testOtherCo, testProductID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// TestMovements_PaginaDescendente el kardex pagina más reciente primero.
func TestMovements_PaginaDescendente(t *testing.T) {
	uc, _ := newLedger(testProduct(0, 0))
	ctx := context.Background()

	for _, qty := range []string{"1", "2", "3"} {
		_, err := uc.RegisterEntrada(ctx, entrada(qty, "10"))
		require.NoError(t, err)
	}

	product, movements, err := uc.Movements(ctx, testCompanyID, testProductID, 2, 0)
	require.NoError(t, err)
	require.NotNil(t, product)
	require.Len(t, movements, 2)
	assert.Equal(t, "3.00", movements[0].Quantity.StringFixed(2), "el más reciente primero")
	assert.Equal(t, "2.00", movements[1].Quantity.StringFixed(2))
}
