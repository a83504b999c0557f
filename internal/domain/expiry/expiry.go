// Package expiry resuelve los lapsos simbólicos de vencimiento del catálogo
// ("1 semana", "3 meses", ...) a fechas concretas relativas a "ahora".
package expiry

import "time"

// Lapse código simbólico de vencimiento tal como se guarda en el producto.
type Lapse string

// Lapsos del catálogo.
const (
	Lapse1Dia     Lapse = "1 día"
	Lapse3Dias    Lapse = "3 días"
	Lapse1Semana  Lapse = "1 semana"
	Lapse2Semanas Lapse = "2 semanas"
	Lapse1Mes     Lapse = "1 mes"
	Lapse3Meses   Lapse = "3 meses"
	Lapse6Meses   Lapse = "6 meses"
	Lapse1Anio    Lapse = "1 año"
	Lapse2Anios   Lapse = "2 años"
	Lapse3Anios   Lapse = "3 años"
)

// lapseDays tabla código -> días.
// "3 años" conserva los 1460 días (4 años) del sistema en producción.
var lapseDays = map[Lapse]int{
	Lapse1Dia:     1,
	Lapse3Dias:    3,
	Lapse1Semana:  7,
	Lapse2Semanas: 14,
	Lapse1Mes:     30,
	Lapse3Meses:   90,
	Lapse6Meses:   180,
	Lapse1Anio:    365,
	Lapse2Anios:   730,
	Lapse3Anios:   1460,
}

// Parse valida un código de lapso.
func Parse(code string) (Lapse, bool) {
	l := Lapse(code)
	_, ok := lapseDays[l]
	return l, ok
}

// Valid indica si el lapso pertenece al catálogo.
func (l Lapse) Valid() bool {
	_, ok := lapseDays[l]
	return ok
}

// Days devuelve los días del lapso (0 si no es válido).
func (l Lapse) Days() int {
	return lapseDays[l]
}

// From calcula la fecha de vencimiento a partir de now.
func (l Lapse) From(now time.Time) time.Time {
	return now.AddDate(0, 0, lapseDays[l])
}
