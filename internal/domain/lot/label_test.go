package lot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/puntoventa/lotes-api/internal/domain/entity"
	"github.com/puntoventa/lotes-api/internal/domain/lot"
)

func lotWithLabel(label string, active bool) entity.Lot {
	return entity.Lot{ID: "lot-" + label, Label: label, Active: active}
}

// TestNextLabel_SinLotes un producto sin lotes recibe primero el lote de registro.
func TestNextLabel_SinLotes(t *testing.T) {
	assert.Equal(t, entity.LotLabelRegistro, lot.NextLabel(nil))
	assert.Equal(t, entity.LotLabelRegistro, lot.NextLabel([]entity.Lot{}))
}

// TestNextLabel_SoloRegistro con el registro creado, el primer lote real es "Lote #2".
func TestNextLabel_SoloRegistro(t *testing.T) {
	lots := []entity.Lot{lotWithLabel(entity.LotLabelRegistro, true)}
	assert.Equal(t, "Lote #2", lot.NextLabel(lots),
		"el primer lote numerado después del registro es el #2")
}

// TestNextLabel_Monotonia la numeración es max+1 y nunca reutiliza números,
// aunque los lotes intermedios estén agotados (inactivos).
func TestNextLabel_Monotonia(t *testing.T) {
	lots := []entity.Lot{
		lotWithLabel(entity.LotLabelRegistro, false), // registro agotado
		lotWithLabel("Lote #2", false),               // agotado: su número no se libera
		lotWithLabel("Lote #3", true),
		lotWithLabel("Lote #7", true), // hueco: se respeta el máximo
	}
	assert.Equal(t, "Lote #8", lot.NextLabel(lots))
}

// TestNextLabel_EtiquetasSinSufijo etiquetas libres sin número parseable se ignoran.
func TestNextLabel_EtiquetasSinSufijo(t *testing.T) {
	lots := []entity.Lot{
		lotWithLabel(entity.LotLabelRegistro, true),
		lotWithLabel("Lote especial", true),
		lotWithLabel("Lote #", true),
		lotWithLabel("Lote #abc", true),
	}
	assert.Equal(t, "Lote #2", lot.NextLabel(lots),
		"sin sufijos numéricos válidos el piso es el #2")
}

// TestNextLabel_SinRegistroConNumerados si por datos históricos existen lotes
// numerados pero no el de registro, el registro sigue pendiente.
func TestNextLabel_SinRegistroConNumerados(t *testing.T) {
	lots := []entity.Lot{lotWithLabel("Lote #4", true)}
	assert.Equal(t, entity.LotLabelRegistro, lot.NextLabel(lots))
}
