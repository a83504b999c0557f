package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry = "ENTRY" // entrada
	MovementTypeExit  = "EXIT"  // salida
)

// Motivo del movimiento sintético que crea el lote de registro.
const ReasonRegistroInicial = "Registro inicial"

// Movement representa un movimiento de inventario. Es un registro de auditoría
// append-only: una vez creado nunca se actualiza ni se borra.
type Movement struct {
	ID                string
	ProductID         string
	Type              string // ENTRY | EXIT
	Quantity          decimal.Decimal
	Reason            string
	Date              time.Time
	UnitCost          *decimal.Decimal // solo ENTRY
	LotLabel          string           // solo ENTRY: etiqueta del lote creado
	ExpiresAt         *time.Time       // vencimiento del lote creado (ENTRY, opcional)
	DiscountMethod    string           // solo EXIT: fifo | lifo | auto
	AffectsFinancials bool             // solo EXIT: la salida impacta resultados
	Notes             string
	ReceiptRef        string // referencia de comprobante/factura
	CreatedAt         time.Time
	CreatedBy         string // UserID del actor
}

// MovementLot registra cuánto tomó un movimiento de salida de cada lote.
// La suma de Quantity de los links de un movimiento debe igualar su Quantity.
type MovementLot struct {
	ID         string
	MovementID string
	LotID      string
	Quantity   decimal.Decimal
}
