package sale_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenoitRanque/guembe-pos-extension/internal/application/sale"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/numbering"
)

var testDay = time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testPartner() *entity.BusinessPartner {
	return &entity.BusinessPartner{
		CardCode:    "C001",
		CardName:    "Cliente de Prueba",
		VATLiable:   true,
		PayTermsGrp: 5,
	}
}

func testCatalog() map[string]*entity.Item {
	return map[string]*entity.Item{
		"COMIDA": {ItemCode: "COMIDA", ItemName: "Almuerzo", VATLiable: true, AllowCredit: true, AllowAffiliate: true, TaxGroup: 1},
		"HOSPED": {ItemCode: "HOSPED", ItemName: "Hospedaje", VATLiable: true, AllowCredit: true, TaxGroup: 2},
		"INTERN": {ItemCode: "INTERN", ItemName: "Consumo interno", AllowCredit: true, AllowAffiliate: true, TaxGroup: 0},
	}
}

func testAllocators(t *testing.T) map[int]*numbering.Allocator {
	t.Helper()
	mk := func(code, order string, exempt bool, group int) *numbering.Allocator {
		al, err := numbering.NewAllocator(entity.Authorization{
			Code:        code,
			OrderNumber: order,
			TaxGroup:    group,
			VATExempt:   exempt,
			ValidFrom:   testDay.AddDate(0, -6, 0),
			ValidTo:     testDay.AddDate(0, 6, 0),
			Active:      true,
			NextInvoice: 1000,
			LastInvoice: 2000,
			Key:         "9rCB7Sv4X29d)5k7N%3ab89p-3(5[A",
		}, testDay)
		require.NoError(t, err)
		return al
	}
	return map[int]*numbering.Allocator{
		1: mk("DOS-R1", "29040011001", false, 1),
		2: mk("DOS-R2", "29040011002", false, 2),
	}
}

func cashFor(lines []sale.SaleLine) *sale.PaymentDetails {
	hundred := decimal.NewFromInt(100)
	var cents decimal.Decimal
	for _, l := range lines {
		cents = cents.Add(l.PriceAfterVAT.Mul(hundred).Mul(l.Quantity))
	}
	return &sale.PaymentDetails{CashSum: cents.Div(hundred)}
}

func baseInput(t *testing.T, lines []sale.SaleLine) sale.SplitInput {
	return sale.SplitInput{
		Partner:        testPartner(),
		Catalog:        testCatalog(),
		Lines:          lines,
		PaymentGroup:   entity.PayGroupNone,
		Payment:        cashFor(lines),
		CustomerTaxID:  "4189179011",
		CustomerName:   "Cliente de Prueba",
		SalesPointCode: "PV01",
		Serial:         7,
		DocDate:        testDay,
		Allocators:     testAllocators(t),
	}
}

func line(code string, qty, price string) sale.SaleLine {
	return sale.SaleLine{ItemCode: code, ItemName: code, Quantity: dec(qty), PriceAfterVAT: dec(price)}
}

func newSplitter() *sale.Splitter {
	return sale.NewSplitter(decimal.NewFromInt(3))
}

func TestSplit_DosRubrosCompartenSerial(t *testing.T) {
	in := baseInput(t, []sale.SaleLine{
		line("COMIDA", "1", "50.00"),
		line("HOSPED", "2", "100.00"),
		line("COMIDA", "1", "25.00"),
	})

	drafts, err := newSplitter().Split(in)
	require.NoError(t, err)
	require.Len(t, drafts, 2, "una factura por rubro")

	assert.Equal(t, int64(7), drafts[0].Invoice.Serial)
	assert.Equal(t, int64(7), drafts[1].Invoice.Serial,
		"todas las facturas de la venta comparten el serial")

	// orden de primera aparición
	assert.Equal(t, 1, drafts[0].Treatment.Group())
	assert.Equal(t, 2, drafts[1].Treatment.Group())
	assert.Len(t, drafts[0].Invoice.Lines, 2)
	assert.Len(t, drafts[1].Invoice.Lines, 1)

	// cada factura fiscal consume un número de su propia dosificación
	assert.Equal(t, int64(1000), drafts[0].Invoice.Number)
	assert.Equal(t, int64(1000), drafts[1].Invoice.Number)
	assert.Equal(t, entity.InvoiceTypeFiscal, drafts[0].Invoice.Type)
	assert.Equal(t, entity.DocTypeSales, drafts[0].Invoice.DocType)

	assert.True(t, drafts[0].Invoice.DocTotal.Equal(dec("75.00")))
	assert.True(t, drafts[1].Invoice.DocTotal.Equal(dec("200.00")))
}

func TestSplit_RubroCeroVaSolo(t *testing.T) {
	in := baseInput(t, []sale.SaleLine{
		line("COMIDA", "1", "50.00"),
		line("INTERN", "1", "10.00"),
	})

	drafts, err := newSplitter().Split(in)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	var nonFiscal *sale.InvoiceDraft
	for _, d := range drafts {
		if !d.Treatment.Fiscal() {
			nonFiscal = d
		}
	}
	require.NotNil(t, nonFiscal, "las líneas sin rubro forman su propia factura")
	assert.Equal(t, entity.InvoiceTypeNonFiscal, nonFiscal.Invoice.Type)
	assert.Equal(t, entity.DocTypeNone, nonFiscal.Invoice.DocType)
	assert.Nil(t, nonFiscal.Auth, "sin dosificación: nunca recibe código de control")
	assert.Empty(t, nonFiscal.Invoice.ControlCode)
}

func TestSplit_AfiliadoTodoNoFiscal(t *testing.T) {
	partner := &entity.BusinessPartner{
		CardCode:    "AF001",
		CardName:    "Afiliado",
		Affiliate:   true,
		PayTermsGrp: 5,
	}
	lines := []sale.SaleLine{
		line("COMIDA", "1", "50.00"),
		line("INTERN", "1", "10.00"),
	}
	in := sale.SplitInput{
		Partner:        partner,
		Catalog:        testCatalog(),
		Lines:          lines,
		PaymentGroup:   5, // crédito obligado
		Payment:        nil,
		SalesPointCode: "PV01",
		Serial:         3,
		DocDate:        testDay,
		Allocators:     map[int]*numbering.Allocator{},
	}

	drafts, err := newSplitter().Split(in)
	require.NoError(t, err)
	require.Len(t, drafts, 1, "toda compra de afiliado cae en una sola factura no fiscal")
	assert.Equal(t, entity.InvoiceTypeAffiliate, drafts[0].Invoice.Type)
	for _, l := range drafts[0].Invoice.Lines {
		assert.False(t, l.TaxLiable)
		assert.Equal(t, entity.TaxCodeIVAExempt, l.TaxCode)
		assert.Empty(t, l.Expenses, "los afiliados no generan IT")
	}
}

func TestSplit_ParDeGastosIT(t *testing.T) {
	in := baseInput(t, []sale.SaleLine{line("COMIDA", "2", "100.00")})

	drafts, err := newSplitter().Split(in)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	expenses := drafts[0].Invoice.Lines[0].Expenses
	require.Len(t, expenses, 2, "toda línea gravada lleva su par debe/haber del IT")
	assert.Equal(t, entity.ExpenseITDebit, expenses[0].ExpenseCode)
	assert.True(t, expenses[0].LineTotal.Equal(dec("-6.00")),
		"round(100×100×2×3)/10000 = 6.00 al debe con signo negativo, fue %s", expenses[0].LineTotal)
	assert.Equal(t, entity.ExpenseITCredit, expenses[1].ExpenseCode)
	assert.True(t, expenses[1].LineTotal.Equal(dec("6.00")))
}

func TestSplit_SujecionConDosificacionExenta(t *testing.T) {
	// cliente no sujeto de IVA gobernado por dosificación exenta: la línea
	// sale exenta y la factura declara el total exento
	exemptAlloc, err := numbering.NewAllocator(entity.Authorization{
		Code:        "DOS-EX",
		OrderNumber: "29040011009",
		TaxGroup:    1,
		VATExempt:   true,
		ValidFrom:   testDay.AddDate(0, -1, 0),
		ValidTo:     testDay.AddDate(0, 1, 0),
		Active:      true,
		NextInvoice: 500,
		LastInvoice: 600,
		Key:         "llave-secreta",
	}, testDay)
	require.NoError(t, err)

	lines := []sale.SaleLine{line("COMIDA", "1", "80.00")}
	in := baseInput(t, lines)
	in.Partner.VATLiable = false
	in.Allocators = map[int]*numbering.Allocator{1: exemptAlloc}

	drafts, err := newSplitter().Split(in)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	l := drafts[0].Invoice.Lines[0]
	assert.False(t, l.TaxLiable)
	assert.Equal(t, entity.TaxCodeIVAExempt, l.TaxCode)
	assert.NotEmpty(t, l.Expenses, "el IT se genera igual: depende del artículo, no de la dosificación")
	assert.True(t, drafts[0].Invoice.ExemptTotal.Equal(dec("80.00")),
		"las dosificaciones exentas declaran el total exento")
}

func TestSplit_ValidacionesDeArticulo(t *testing.T) {
	t.Run("gravado sin rubro", func(t *testing.T) {
		in := baseInput(t, []sale.SaleLine{line("MAL1", "1", "10.00")})
		in.Catalog["MAL1"] = &entity.Item{ItemCode: "MAL1", ItemName: "Mal configurado", VATLiable: true, TaxGroup: 0}
		_, err := newSplitter().Split(in)
		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.Contains(t, err.Error(), "debe tener rubro")
	})

	t.Run("exento con rubro", func(t *testing.T) {
		in := baseInput(t, []sale.SaleLine{line("MAL2", "1", "10.00")})
		in.Catalog["MAL2"] = &entity.Item{ItemCode: "MAL2", ItemName: "Mal configurado", VATLiable: false, TaxGroup: 1}
		_, err := newSplitter().Split(in)
		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.Contains(t, err.Error(), "no debe tener rubro")
	})

	t.Run("afiliado con artículo no permitido", func(t *testing.T) {
		lines := []sale.SaleLine{line("HOSPED", "1", "100.00")}
		in := baseInput(t, lines)
		in.Partner.Affiliate = true
		in.Partner.VATLiable = false
		in.PaymentGroup = in.Partner.PayTermsGrp
		in.Payment = nil
		_, err := newSplitter().Split(in)
		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.Contains(t, err.Error(), "no permitido para consumo de afiliados")
	})

	t.Run("crédito con artículo no permitido", func(t *testing.T) {
		lines := []sale.SaleLine{line("SOLOCASH", "1", "10.00")}
		in := baseInput(t, lines)
		in.Catalog["SOLOCASH"] = &entity.Item{ItemCode: "SOLOCASH", ItemName: "Solo contado", VATLiable: true, TaxGroup: 1}
		in.PaymentGroup = in.Partner.PayTermsGrp
		in.Payment = nil
		_, err := newSplitter().Split(in)
		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.Contains(t, err.Error(), "no permitido para consumo a crédito")
	})
}

func TestSplit_ValidacionesDePago(t *testing.T) {
	lines := []sale.SaleLine{line("COMIDA", "1", "50.00")}

	t.Run("afiliado solo a crédito", func(t *testing.T) {
		in := baseInput(t, lines)
		in.Partner.Affiliate = true
		_, err := newSplitter().Split(in)
		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.Contains(t, err.Error(), "solo tiene permitida venta a crédito")
	})

	t.Run("grupo de crédito ajeno al cliente", func(t *testing.T) {
		in := baseInput(t, lines)
		in.PaymentGroup = 99
		in.Payment = nil
		_, err := newSplitter().Split(in)
		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.Contains(t, err.Error(), "condición de pago a crédito")
	})

	t.Run("crédito no presenta pago", func(t *testing.T) {
		in := baseInput(t, lines)
		in.PaymentGroup = in.Partner.PayTermsGrp
		_, err := newSplitter().Split(in)
		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.Contains(t, err.Error(), "no puede presentar pago")
	})

	t.Run("contado requiere pago", func(t *testing.T) {
		in := baseInput(t, lines)
		in.Payment = nil
		_, err := newSplitter().Split(in)
		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.Contains(t, err.Error(), "requiere pago")
	})

	t.Run("montos que no cuadran", func(t *testing.T) {
		in := baseInput(t, lines)
		in.Payment = &sale.PaymentDetails{CashSum: dec("49.99")}
		_, err := newSplitter().Split(in)
		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.Contains(t, err.Error(), "montos de pago")
	})

	t.Run("efectivo más tarjeta cuadra", func(t *testing.T) {
		in := baseInput(t, lines)
		in.Payment = &sale.PaymentDetails{
			CashSum: dec("20.00"),
			CreditCards: []entity.CreditCardPayment{
				{CreditCard: 1, CreditSum: dec("30.00"), VoucherNumber: "V-778"},
			},
		}
		_, err := newSplitter().Split(in)
		assert.NoError(t, err)
	})
}
