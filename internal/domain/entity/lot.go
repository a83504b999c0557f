package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etiquetas de lote.
const (
	// LotLabelRegistro es el lote sintético que representa el stock que existía
	// antes de activar el control por lotes. Máximo uno por producto.
	LotLabelRegistro = "Lote de Registro"
	// LotLabelPrefix prefijo de los lotes numerados ("Lote #2", "Lote #3", ...).
	LotLabelPrefix = "Lote #"
)

// Lot representa un lote discreto de stock de un producto, con su propio costo
// unitario y fecha de vencimiento opcional. Un lote pasa a inactivo cuando su
// stock llega a cero o menos y nunca se reactiva: una reposición crea lote nuevo.
type Lot struct {
	ID        string
	ProductID string
	Label     string
	UnitCost  decimal.Decimal
	Stock     decimal.Decimal
	EntryAt   time.Time  // fecha de ingreso (orden FIFO)
	ExpiresAt *time.Time // nil = no vence
	Active    bool
	CreatedAt time.Time
}

// IsRegistro indica si el lote es el lote de registro del producto.
func (l Lot) IsRegistro() bool {
	return l.Label == LotLabelRegistro
}
