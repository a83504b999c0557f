package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrarEntradaRequest body para POST /api/inventory/entradas.
// Quantity y UnitCost viajan como string y se normalizan en el caso de uso:
// se acepta "$1,234.5", "10." o "12" indistintamente.
type RegistrarEntradaRequest struct {
	ProductID  string `json:"product_id"`
	Quantity   string `json:"quantity"`
	UnitCost   string `json:"unit_cost"`
	Reason     string `json:"reason"`
	ExpiryDate string `json:"expiry_date,omitempty"` // "2006-01-02"; vacío = política del producto
	Notes      string `json:"notes,omitempty"`
	ReceiptRef string `json:"receipt_ref,omitempty"`
	UpdateCost bool   `json:"update_cost,omitempty"` // rodar el costo de referencia
}

// RegistrarSalidaRequest body para POST /api/inventory/salidas.
type RegistrarSalidaRequest struct {
	ProductID         string `json:"product_id"`
	Quantity          string `json:"quantity"`
	Reason            string `json:"reason"`
	Strategy          string `json:"strategy,omitempty"` // fifo | lifo | auto (default)
	AffectsFinancials bool   `json:"affects_financials,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// LotDTO salida de un lote.
type LotDTO struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Stock     decimal.Decimal `json:"stock"`
	EntryAt   time.Time       `json:"entry_at"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
	Active    bool            `json:"active"`
}

// AllocationDTO cuánto tomó una salida de un lote concreto.
type AllocationDTO struct {
	LotID    string          `json:"lot_id"`
	Label    string          `json:"label"`
	Quantity decimal.Decimal `json:"quantity"`
}

// MovementResponse salida de una entrada/salida registrada.
type MovementResponse struct {
	MovementID  string          `json:"movement_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	LotLabel    string          `json:"lot_label,omitempty"`    // ENTRY
	Allocations []AllocationDTO `json:"allocations,omitempty"`  // EXIT
}

// ReconcileResponse reconstrucción de lectura de un movimiento.
type ReconcileResponse struct {
	MovementID    string           `json:"movement_id"`
	Type          string           `json:"type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Lots          []AllocationDTO  `json:"lots"`
	LotsEstimated bool             `json:"lots_estimated,omitempty"`
	CostTotal     *decimal.Decimal `json:"cost_total,omitempty"` // solo ENTRY
	StockBefore   decimal.Decimal  `json:"stock_before"`
}

// RegistroLotResponse salida de POST /productos/:id/lote-registro.
type RegistroLotResponse struct {
	Created  bool   `json:"created"`
	LotID    string `json:"lot_id,omitempty"`
	LotLabel string `json:"lot_label,omitempty"`
	Movement string `json:"movement_id,omitempty"`
}
