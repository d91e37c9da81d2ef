package fiscal_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/fiscal"
)

// Vector clásico del algoritmo: el dígito verificador de 236 es 3.
func TestVerhoeffDigit_VectorConocido(t *testing.T) {
	assert.Equal(t, 3, fiscal.VerhoeffDigit("236"))
	assert.True(t, fiscal.VerhoeffValidate("2363"),
		"2363 debe validar: 3 es el dígito de control de 236")
}

func TestVerhoeffValidate_DigitoAlterado(t *testing.T) {
	assert.False(t, fiscal.VerhoeffValidate("2364"))
	assert.False(t, fiscal.VerhoeffValidate("2368"))
}

// TestVerhoeffAppend_SiempreValida cubre la propiedad central: todo numeral
// producido por VerhoeffAppend valida, cualquiera sea la cantidad de dígitos
// agregados, incluso con numerales más largos que el ciclo de 8 posiciones
// de la tabla de permutación.
func TestVerhoeffAppend_SiempreValida(t *testing.T) {
	seeds := []string{
		"0", "5", "1503", "4189179011", "20070702",
		"29040011007", "123456789012345", // más largo que el ciclo de 8
	}
	for _, seed := range seeds {
		for n := 1; n <= 5; n++ {
			t.Run(fmt.Sprintf("%s+%d", seed, n), func(t *testing.T) {
				padded := fiscal.VerhoeffAppend(seed, n)
				assert.Len(t, padded, len(seed)+n)
				assert.True(t, fiscal.VerhoeffValidate(padded),
					"el numeral con dígitos agregados debe validar")
			})
		}
	}
}

// Cada dígito agregado depende de todo lo acumulado: los prefijos intermedios
// también validan.
func TestVerhoeffAppend_PrefijosIntermediosValidan(t *testing.T) {
	padded := fiscal.VerhoeffAppend("1503", 5)
	for i := len("1503") + 1; i <= len(padded); i++ {
		assert.True(t, fiscal.VerhoeffValidate(padded[:i]), "prefijo %s", padded[:i])
	}
}
