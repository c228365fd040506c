package folio

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefijos de folio por tipo de documento.
const (
	PrefijoVenta  = "VTA"
	PrefijoCuenta = "CPP"
)

// Format produce el folio legible PREFIJO-NNNNNN (consecutivo con ceros a la izquierda).
func Format(prefijo string, consecutivo int64) string {
	return fmt.Sprintf("%s-%06d", prefijo, consecutivo)
}

// Sequence extrae el consecutivo numérico de un folio PREFIJO-NNNNNN.
func Sequence(f string) (int64, error) {
	idx := strings.LastIndex(f, "-")
	if idx < 0 {
		return 0, fmt.Errorf("folio sin separador: %q", f)
	}
	n, err := strconv.ParseInt(f[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("folio con consecutivo inválido: %q", f)
	}
	return n, nil
}
