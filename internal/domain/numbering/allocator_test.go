package numbering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/numbering"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validAuth() entity.Authorization {
	return entity.Authorization{
		Code:        "DOS-001",
		OrderNumber: "29040011007",
		TaxGroup:    1,
		ValidFrom:   day(2023, time.January, 1),
		ValidTo:     day(2023, time.December, 31),
		Active:      true,
		NextInvoice: 100,
		LastInvoice: 200,
		Key:         "9rCB7Sv4X29d)5k7N%3ab89p-3(5[A",
	}
}

func TestNewAllocator_VigenciaInclusiva(t *testing.T) {
	// los extremos de la ventana son válidos
	for _, today := range []time.Time{day(2023, time.January, 1), day(2023, time.December, 31)} {
		_, err := numbering.NewAllocator(validAuth(), today)
		assert.NoError(t, err, "la ventana de vigencia es inclusiva en %s", today)
	}
}

func TestNewAllocator_AunNoVigente(t *testing.T) {
	_, err := numbering.NewAllocator(validAuth(), day(2022, time.December, 31))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPrecondition)
	assert.Contains(t, err.Error(), "aún no entra en vigencia")
	assert.Contains(t, err.Error(), "29040011007", "el error nombra el número de orden")
	assert.Contains(t, err.Error(), "DOS-001", "el error nombra el código")
}

func TestNewAllocator_YaNoVigente(t *testing.T) {
	_, err := numbering.NewAllocator(validAuth(), day(2024, time.January, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPrecondition)
	assert.Contains(t, err.Error(), "ya no es vigente")
}

func TestNewAllocator_Inactiva(t *testing.T) {
	auth := validAuth()
	auth.Active = false
	_, err := numbering.NewAllocator(auth, day(2023, time.June, 15))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPrecondition)
	assert.Contains(t, err.Error(), "no está activa")
}

func TestNewAllocator_RangoInvalido(t *testing.T) {
	auth := validAuth()
	auth.NextInvoice = 200 // igual a la cota: rango agotado
	_, err := numbering.NewAllocator(auth, day(2023, time.June, 15))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPrecondition)
	assert.Contains(t, err.Error(), "número siguiente inválido")
}

func TestAllocate_Secuencia(t *testing.T) {
	al, err := numbering.NewAllocator(validAuth(), day(2023, time.June, 15))
	require.NoError(t, err)

	n1, err := al.Allocate()
	require.NoError(t, err)
	n2, err := al.Allocate()
	require.NoError(t, err)

	assert.Equal(t, int64(100), n1)
	assert.Equal(t, int64(101), n2)
	assert.Equal(t, int64(102), al.Authorization().NextInvoice,
		"el snapshot lleva el contador listo para persistir")
}

// El asignador trabaja sobre una copia: el registro cargado no se muta.
func TestAllocate_NoMutaElOriginal(t *testing.T) {
	auth := validAuth()
	al, err := numbering.NewAllocator(auth, day(2023, time.June, 15))
	require.NoError(t, err)

	_, err = al.Allocate()
	require.NoError(t, err)

	assert.Equal(t, int64(100), auth.NextInvoice, "el original queda intacto")
	assert.Equal(t, int64(101), al.Authorization().NextInvoice)
}

func TestAllocate_AgotaElRango(t *testing.T) {
	auth := validAuth()
	auth.NextInvoice = 199 // penúltimo estado posible: queda un solo número

	al, err := numbering.NewAllocator(auth, day(2023, time.June, 15))
	require.NoError(t, err)

	n, err := al.Allocate()
	require.NoError(t, err)
	assert.Equal(t, int64(199), n)

	_, err = al.Allocate()
	require.Error(t, err, "el rango nunca se sobrepasa en silencio")
	assert.ErrorIs(t, err, domain.ErrPrecondition)

	// la siguiente transacción que cargue el snapshot también debe fallar
	_, err = numbering.NewAllocator(al.Authorization(), day(2023, time.June, 15))
	assert.ErrorIs(t, err, domain.ErrPrecondition)
}

func TestResolveAssignment(t *testing.T) {
	scope := numbering.Scope{Kind: "Punto de venta", Code: "PV01"}
	assignments := []entity.TaxGroupAssignment{
		{TaxGroup: 1, VATExempt: false, AuthorizationCode: "DOS-GRAVADA"},
		{TaxGroup: 1, VATExempt: true, AuthorizationCode: "DOS-EXENTA"},
		{TaxGroup: 2, VATExempt: false, AuthorizationCode: "DOS-R2"},
	}

	t.Run("cliente exento prefiere dosificación exenta", func(t *testing.T) {
		a, err := numbering.ResolveAssignment(scope, assignments, 1, false)
		require.NoError(t, err)
		assert.Equal(t, "DOS-EXENTA", a.AuthorizationCode)
	})

	t.Run("cliente sujeto de IVA usa la gravada", func(t *testing.T) {
		a, err := numbering.ResolveAssignment(scope, assignments, 1, true)
		require.NoError(t, err)
		assert.Equal(t, "DOS-GRAVADA", a.AuthorizationCode)
	})

	t.Run("sin exenta cae a la gravada", func(t *testing.T) {
		a, err := numbering.ResolveAssignment(scope, assignments, 2, false)
		require.NoError(t, err)
		assert.Equal(t, "DOS-R2", a.AuthorizationCode)
	})

	t.Run("rubro sin dosificación", func(t *testing.T) {
		_, err := numbering.ResolveAssignment(scope, assignments, 9, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "PV01", "el error nombra el alcance")
		assert.Contains(t, err.Error(), "rubro 9")
	})
}

func TestRollCounters(t *testing.T) {
	sp := &entity.SalesPoint{
		Code:        "PV01",
		CurrentDate: day(2023, time.June, 14),
		NextOrder:   17,
		NextInvoice: 9,
	}

	numbering.RollCounters(sp, day(2023, time.June, 15))
	assert.Equal(t, int64(1), sp.NextOrder, "cambio de día reinicia el serial de órdenes")
	assert.Equal(t, int64(1), sp.NextInvoice, "cambio de día reinicia el serial de facturas")

	sp.NextOrder = 5
	sp.NextInvoice = 3
	numbering.RollCounters(sp, day(2023, time.June, 15))
	assert.Equal(t, int64(5), sp.NextOrder, "mismo día conserva los contadores")
	assert.Equal(t, int64(3), sp.NextInvoice)

	assert.Equal(t, int64(5), numbering.NextOrderSerial(sp))
	assert.Equal(t, int64(6), sp.NextOrder)
	assert.Equal(t, int64(3), numbering.NextInvoiceSerial(sp))
	assert.Equal(t, int64(4), sp.NextInvoice)
}
