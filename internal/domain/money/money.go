// Package money normaliza montos y cantidades a decimal fijo de 2 dígitos.
//
// El storage puede devolver representaciones flotantes y el usuario puede
// escribir "$1,234.5" o "10.". Toda cantidad o costo que cruce una frontera
// (input HTTP, lectura de storage) debe pasar por Normalize antes de operar;
// el núcleo nunca hace aritmética sobre el valor crudo.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Places precisión monetaria fija.
const Places = 2

// Zero valor por defecto de la normalización.
var Zero = decimal.Zero

// Normalize convierte cualquier valor numérico o textual soportado a decimal
// redondeado a 2 dígitos. Input no soportado o no parseable degrada a cero;
// nunca devuelve error (frontera de tolerancia deliberada).
func Normalize(v any) decimal.Decimal {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.Round(Places)
	case *decimal.Decimal:
		if x == nil {
			return Zero.Round(Places)
		}
		return x.Round(Places)
	case float64:
		return decimal.NewFromFloat(x).Round(Places)
	case float32:
		return decimal.NewFromFloat32(x).Round(Places)
	case int:
		return decimal.NewFromInt(int64(x)).Round(Places)
	case int64:
		return decimal.NewFromInt(x).Round(Places)
	case string:
		return NormalizeString(x)
	case nil:
		return Zero.Round(Places)
	default:
		return Zero.Round(Places)
	}
}

// NormalizeString normaliza un string monetario con cero como valor por defecto.
func NormalizeString(s string) decimal.Decimal {
	return NormalizeStringDefault(s, Zero)
}

// NormalizeStringDefault normaliza un string monetario. Acepta símbolo de
// moneda inicial, comas de miles y punto decimal colgante ("10." -> 10.00).
// Vacío o no parseable devuelve def redondeado.
func NormalizeStringDefault(s string, def decimal.Decimal) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return def.Round(Places)
	}
	// Símbolo de moneda inicial y separadores de miles
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	s = strings.ReplaceAll(s, ",", "")
	// Punto decimal colgante: "10." -> "10"
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return def.Round(Places)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return def.Round(Places)
	}
	return d.Round(Places)
}
