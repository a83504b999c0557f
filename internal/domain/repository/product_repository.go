package repository

import (
	"github.com/shopspring/decimal"

	"github.com/puntoventa/lotes-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// El motor de lotes solo necesita leer el producto, bloquear su fila dentro
// de una transacción y escribir de vuelta stock agregado y costo.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	// Usar únicamente con repositorios atados a una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(productID string, stock decimal.Decimal) error
	UpdateStockAndCost(productID string, stock, cost decimal.Decimal) error
}
