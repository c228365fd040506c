package folio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlonji2360/pos-venta/internal/domain/folio"
)

// TestFormat verifica el formato PREFIJO-NNNNNN con ceros a la izquierda.
func TestFormat(t *testing.T) {
	assert.Equal(t, "VTA-000001", folio.Format(folio.PrefijoVenta, 1))
	assert.Equal(t, "VTA-000123", folio.Format(folio.PrefijoVenta, 123))
	assert.Equal(t, "CPP-000042", folio.Format(folio.PrefijoCuenta, 42))
	// Consecutivos de más de seis dígitos no se truncan
	assert.Equal(t, "VTA-1234567", folio.Format(folio.PrefijoVenta, 1234567))
}

// TestSequence verifica la extracción del consecutivo (inverso de Format).
func TestSequence(t *testing.T) {
	n, err := folio.Sequence("VTA-000123")
	require.NoError(t, err)
	assert.Equal(t, int64(123), n)

	n, err = folio.Sequence(folio.Format(folio.PrefijoCuenta, 999999))
	require.NoError(t, err)
	assert.Equal(t, int64(999999), n)
}

func TestSequence_FolioInvalido(t *testing.T) {
	_, err := folio.Sequence("VTA000123")
	assert.Error(t, err, "folio sin separador debe retornar error")

	_, err = folio.Sequence("VTA-ABC")
	assert.Error(t, err, "consecutivo no numérico debe retornar error")
}
