package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/puntoventa/lotes-api/internal/application/dto"
	"github.com/puntoventa/lotes-api/internal/application/inventory"
	"github.com/puntoventa/lotes-api/internal/domain"
	"github.com/puntoventa/lotes-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del motor de lotes (protegido).
type InventoryHandler struct {
	ledger *inventory.LotLedgerUseCase
	kardex inventory.KardexPDFGenerator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LotLedgerUseCase, kardex inventory.KardexPDFGenerator) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, kardex: kardex}
}

// RegistrarEntrada godoc
// @Summary      Registrar entrada de mercancía (crea un lote nuevo)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarEntradaRequest  true  "product_id, quantity, unit_cost; montos como string: se acepta $1,234.5"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/entradas [post]
func (h *InventoryHandler) RegistrarEntrada(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegistrarEntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.ledger.RegisterEntradaFromRequest(c.Context(), companyID, userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(result))
}

// RegistrarSalida godoc
// @Summary      Registrar salida de mercancía (descuenta de lotes según estrategia)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarSalidaRequest  true  "product_id, quantity; strategy: fifo | lifo | auto (default)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/salidas [post]
func (h *InventoryHandler) RegistrarSalida(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegistrarSalidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.ledger.RegisterSalidaFromRequest(c.Context(), companyID, userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(result))
}

// Reconciliar godoc
// @Summary      Reconstruir el detalle de un movimiento (solo lectura)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movimientos/{id}/reconciliacion [get]
func (h *InventoryHandler) Reconciliar(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	result, err := h.ledger.Reconcile(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := dto.ReconcileResponse{
		MovementID:    result.Movement.ID,
		Type:          result.Movement.Type,
		Quantity:      result.Movement.Quantity,
		Lots:          make([]dto.AllocationDTO, 0, len(result.Lots)),
		LotsEstimated: result.LotsEstimated,
		CostTotal:     result.CostTotal,
		StockBefore:   result.StockBefore,
	}
	for _, l := range result.Lots {
		out.Lots = append(out.Lots, dto.AllocationDTO{LotID: l.LotID, Label: l.Label, Quantity: l.Quantity})
	}
	return c.JSON(out)
}

// ListarLotes godoc
// @Summary      Lotes activos de un producto + próxima etiqueta
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/productos/{id}/lotes [get]
func (h *InventoryHandler) ListarLotes(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID := c.Params("id")
	lots, err := h.ledger.ActiveLots(c.Context(), companyID, productID)
	if err != nil {
		return mapDomainError(c, err)
	}
	nextLabel, err := h.ledger.NextLabel(c.Context(), companyID, productID)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.LotDTO, 0, len(lots))
	for _, l := range lots {
		out = append(out, toLotDTO(l))
	}
	return c.JSON(fiber.Map{
		"lots":       out,
		"next_label": nextLabel,
	})
}

// CrearLoteRegistro godoc
// @Summary      Crear el lote de registro del producto (idempotente)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.RegistroLotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/productos/{id}/lote-registro [post]
func (h *InventoryHandler) CrearLoteRegistro(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	result, err := h.ledger.CreateRegistrationLot(c.Context(), inventory.RegistroInput{
		CompanyID: companyID,
		UserID:    userID,
		ProductID: c.Params("id"),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	out := dto.RegistroLotResponse{Created: result.Created}
	if result.Lot != nil {
		out.LotID = result.Lot.ID
		out.LotLabel = result.Lot.Label
	}
	if result.Movement != nil {
		out.Movement = result.Movement.ID
	}
	status := fiber.StatusOK
	if result.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// ListarMovimientos godoc
// @Summary      Historial de movimientos de un producto (kardex), más reciente primero
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Máximo de filas (default 50)"
// @Param        offset  query  int     false  "Desplazamiento (default 0)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/productos/{id}/movimientos [get]
func (h *InventoryHandler) ListarMovimientos(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	product, movements, err := h.ledger.Movements(c.Context(), companyID, c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id": product.ID,
		"stock":      product.Stock,
		"movements":  movements,
		"limit":      page.Limit,
		"offset":     page.Offset,
	})
}

// KardexPDF godoc
// @Summary      Kardex del producto en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/productos/{id}/kardex.pdf [get]
func (h *InventoryHandler) KardexPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	// El PDF lista por defecto los últimos 200 movimientos.
	limit, offset := c.QueryInt("limit", 200), c.QueryInt("offset")
	product, movements, err := h.ledger.Movements(c.Context(), companyID, c.Params("id"), limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	pdfBytes, err := h.kardex.GenerateKardexPDF(product, movements)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="kardex-`+product.ID+`.pdf"`)
	return c.Send(pdfBytes)
}

// mapDomainError traduce errores sentinela del dominio a códigos HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case domain.ErrDuplicate:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case domain.ErrLotesDesfasados:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "LOTES_DESFASADOS", Message: "los lotes activos no cubren el stock agregado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toMovementResponse(result *inventory.MovementResult) dto.MovementResponse {
	out := dto.MovementResponse{
		MovementID: result.Movement.ID,
		Type:       result.Movement.Type,
		Quantity:   result.Movement.Quantity,
	}
	if result.Lot != nil {
		out.LotLabel = result.Lot.Label
	}
	for _, a := range result.Allocations {
		out.Allocations = append(out.Allocations, dto.AllocationDTO{LotID: a.LotID, Label: a.Label, Quantity: a.Quantity})
	}
	return out
}

func toLotDTO(l entity.Lot) dto.LotDTO {
	return dto.LotDTO{
		ID:        l.ID,
		Label:     l.Label,
		UnitCost:  l.UnitCost,
		Stock:     l.Stock,
		EntryAt:   l.EntryAt,
		ExpiresAt: l.ExpiresAt,
		Active:    l.Active,
	}
}
