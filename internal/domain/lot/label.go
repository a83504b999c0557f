package lot

import (
	"strconv"
	"strings"

	"github.com/puntoventa/lotes-api/internal/domain/entity"
)

// NextLabel calcula la etiqueta del próximo lote de un producto a partir de
// TODOS sus lotes (activos e inactivos; los números nunca se reutilizan).
// Sin lote de registro devuelve "Lote de Registro"; con registro devuelve
// "Lote #N" con N = sufijo máximo + 1 (mínimo 2). Etiquetas sin sufijo
// numérico parseable se ignoran.
func NextLabel(lots []entity.Lot) string {
	hasRegistro := false
	max := 0
	for _, l := range lots {
		if l.IsRegistro() {
			hasRegistro = true
			continue
		}
		if n, ok := labelNumber(l.Label); ok && n > max {
			max = n
		}
	}
	if !hasRegistro {
		return entity.LotLabelRegistro
	}
	if max < 1 {
		return entity.LotLabelPrefix + "2"
	}
	return entity.LotLabelPrefix + strconv.Itoa(max+1)
}

// labelNumber extrae el sufijo numérico después de '#'.
func labelNumber(label string) (int, bool) {
	idx := strings.LastIndex(label, "#")
	if idx < 0 || idx == len(label)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(label[idx+1:]))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
