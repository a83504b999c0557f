package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una empresa.
// Stock es el agregado a nivel producto; el invariante del motor de lotes es
// Stock == suma de Lot.Stock de los lotes activos del producto.
// Cost es el costo de referencia que las entradas pueden actualizar.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo de referencia
	Stock       decimal.Decimal // agregado; se mantiene consistente con los lotes activos
	HasExpiry   bool            // el producto declara política de vencimiento
	ExpiryLapse string          // código simbólico ("1 semana", "3 meses", ...); vacío si no aplica
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
