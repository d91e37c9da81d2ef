package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/fiscal"
)

// Vector RC4 clásico: "Plaintext" con llave "Key" produce bbf316e8d940af0ad3.
func TestEncrypt_VectorConocido(t *testing.T) {
	out, err := fiscal.Encrypt("Plaintext", "Key")
	require.NoError(t, err)
	assert.Equal(t, "bbf316e8d940af0ad3", out)
}

func TestEncrypt_Determinista(t *testing.T) {
	a, err := fiscal.Encrypt("123456789", "9rCB7Sv4X29d)5k7N%3ab89p-3(5[A")
	require.NoError(t, err)
	b, err := fiscal.Encrypt("123456789", "9rCB7Sv4X29d)5k7N%3ab89p-3(5[A")
	require.NoError(t, err)
	assert.Equal(t, a, b, "el mismo par (mensaje, llave) siempre produce la misma salida")
}

func TestEncrypt_LongitudSalida(t *testing.T) {
	msg := "150344189179011292007070229"
	out, err := fiscal.Encrypt(msg, "llave")
	require.NoError(t, err)
	assert.Len(t, out, len(msg)*2, "dos caracteres hexadecimales por byte de mensaje")
}

func TestEncrypt_SensibleALaLlave(t *testing.T) {
	a, _ := fiscal.Encrypt("mensaje fiscal", "llaveA")
	b, _ := fiscal.Encrypt("mensaje fiscal", "llaveB")
	assert.NotEqual(t, a, b, "llaves distintas deben producir salidas distintas")
	assert.Len(t, b, len(a), "misma longitud de salida con llaves distintas")
}

func TestEncrypt_LlaveVacia(t *testing.T) {
	_, err := fiscal.Encrypt("mensaje", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBlankKey,
		"llave vacía es un error de integridad de datos, no debe producir salida")
}

func TestEncodeBase64(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{9, "9"},
		{10, "A"},
		{35, "Z"},
		{36, "a"},
		{61, "z"},
		{62, "+"},
		{63, "/"},
		{64, "10"},
		{65, "11"},
		{12345, "30v"}, // 3*64^2 + 0*64 + 57
	}
	for _, c := range cases {
		assert.Equal(t, c.want, fiscal.EncodeBase64(c.n), "n=%d", c.n)
	}
}
