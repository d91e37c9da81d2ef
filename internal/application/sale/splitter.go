package sale

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/numbering"
)

// SaleLine es una línea de la orden valorizada que entra al reparto de
// facturas.
type SaleLine struct {
	ItemCode        string
	ItemName        string
	Quantity        decimal.Decimal
	PriceAfterVAT   decimal.Decimal
	CostingCode     string
	CostingCode2    string
	WarehouseCode   string
	SalesPersonCode int
	BaseOrderID     string
	BaseLine        int
}

// PaymentDetails es el pago adjunto a una venta al contado.
type PaymentDetails struct {
	CashSum     decimal.Decimal
	CreditCards []entity.CreditCardPayment
}

// SplitInput reúne todo lo que el reparto necesita, ya cargado por la
// orquestación: el reparto en sí es cómputo puro sobre estos datos.
type SplitInput struct {
	Partner        *entity.BusinessPartner
	Catalog        map[string]*entity.Item
	Lines          []SaleLine
	PaymentGroup   int
	Payment        *PaymentDetails
	CustomerTaxID  string
	CustomerName   string
	SalesPointCode string
	Serial         int64 // serial de factura compartido por toda la venta
	DocDate        time.Time
	Allocators     map[int]*numbering.Allocator // por rubro; vacío para afiliados
}

// InvoiceDraft es una factura derivada de la venta, lista para estampar el
// código de control y persistir. Auth es nil en facturas sin dosificación.
type InvoiceDraft struct {
	Treatment TaxTreatment
	Invoice   *entity.Invoice
	Auth      *entity.Authorization
}

// Splitter reparte una venta en facturas por tratamiento fiscal y decide la
// sujeción a IVA y los gastos del IT de cada línea.
type Splitter struct {
	taxPercent decimal.Decimal // porcentaje del impuesto a las transacciones
}

// NewSplitter construye el repartidor con el porcentaje de IT vigente.
func NewSplitter(taxPercent decimal.Decimal) *Splitter {
	return &Splitter{taxPercent: taxPercent}
}

// Split valida la venta y produce una factura por tratamiento fiscal,
// preservando el orden de primera aparición de cada grupo. Todas las
// facturas comparten el serial de la venta; las fiscales consumen un número
// de su dosificación.
func (s *Splitter) Split(in SplitInput) ([]*InvoiceDraft, error) {
	if err := s.validatePayment(in); err != nil {
		return nil, err
	}

	credit := in.PaymentGroup != entity.PayGroupNone

	var order []TaxTreatment
	drafts := make(map[TaxTreatment]*InvoiceDraft)

	for _, line := range in.Lines {
		item, ok := in.Catalog[line.ItemCode]
		if !ok {
			return nil, fmt.Errorf("%w: artículo '%s'", domain.ErrNotFound, line.ItemCode)
		}
		if err := validateLineItem(in.Partner, item, credit); err != nil {
			return nil, err
		}

		treatment := TreatmentFor(in.Partner, item)
		draft, ok := drafts[treatment]
		if !ok {
			draft = &InvoiceDraft{
				Treatment: treatment,
				Invoice: &entity.Invoice{
					Type:            invoiceType(in.Partner, treatment),
					SalesPointCode:  in.SalesPointCode,
					Serial:          in.Serial,
					DocDate:         in.DocDate,
					DocDueDate:      in.DocDate,
					CardCode:        in.Partner.CardCode,
					SalesPersonCode: line.SalesPersonCode,
					PaymentGroup:    in.PaymentGroup,
					CustomerTaxID:   in.CustomerTaxID,
					CustomerName:    in.CustomerName,
					DocType:         entity.DocTypeNone,
				},
			}
			drafts[treatment] = draft
			order = append(order, treatment)
		}

		liable := s.lineVATLiable(in, item, treatment)
		taxCode := entity.TaxCodeIVAExempt
		if liable {
			taxCode = entity.TaxCodeIVA
		}

		invLine := entity.InvoiceLine{
			ItemCode:        line.ItemCode,
			ItemName:        line.ItemName,
			Quantity:        line.Quantity,
			PriceAfterVAT:   line.PriceAfterVAT,
			CostingCode:     line.CostingCode,
			CostingCode2:    line.CostingCode2,
			WarehouseCode:   line.WarehouseCode,
			SalesPersonCode: line.SalesPersonCode,
			BaseOrderID:     line.BaseOrderID,
			BaseLine:        line.BaseLine,
			TaxCode:         taxCode,
			TaxLiable:       liable,
		}
		if item.VATLiable && !in.Partner.Affiliate {
			invLine.Expenses = s.transactionalTaxPair(line.PriceAfterVAT, line.Quantity)
		}
		draft.Invoice.Lines = append(draft.Invoice.Lines, invLine)
	}

	result := make([]*InvoiceDraft, 0, len(order))
	for _, treatment := range order {
		draft := drafts[treatment]
		draft.Invoice.DocTotal = linesTotal(draft.Invoice.Lines)

		if treatment.Fiscal() {
			alloc, ok := in.Allocators[treatment.Group()]
			if !ok {
				return nil, fmt.Errorf("%w: sin dosificación resuelta para rubro %d",
					domain.ErrNotFound, treatment.Group())
			}
			number, err := alloc.Allocate()
			if err != nil {
				return nil, err
			}
			auth := alloc.Authorization()
			draft.Auth = &auth
			draft.Invoice.DocType = entity.DocTypeSales
			draft.Invoice.Number = number
			draft.Invoice.AuthorizationCode = auth.Code
			draft.Invoice.AuthorizationOrder = auth.OrderNumber
			draft.Invoice.Deadline = auth.ValidTo
			if auth.VATExempt {
				draft.Invoice.ExemptTotal = draft.Invoice.DocTotal
			}
		}
		result = append(result, draft)
	}
	return result, nil
}

// lineVATLiable decide la sujeción a IVA de la línea: el artículo debe ser
// gravable, el cliente no puede ser afiliado, y o bien el cliente es sujeto
// de IVA o la dosificación que gobierna el rubro es gravada.
func (s *Splitter) lineVATLiable(in SplitInput, item *entity.Item, treatment TaxTreatment) bool {
	if !item.VATLiable || in.Partner.Affiliate {
		return false
	}
	if in.Partner.VATLiable {
		return true
	}
	if alloc, ok := in.Allocators[treatment.Group()]; treatment.Fiscal() && ok {
		auth := alloc.Authorization()
		return auth.VATLiable()
	}
	return false
}

// transactionalTaxPair calcula el par debe/haber del IT sobre el total de la
// línea, redondeado en centavos: round(precio×100×cantidad×pct)/10000.
func (s *Splitter) transactionalTaxPair(price, quantity decimal.Decimal) []entity.LineExpense {
	hundred := decimal.NewFromInt(100)
	total := price.Mul(hundred).Mul(quantity).Mul(s.taxPercent).
		Round(0).
		Div(decimal.NewFromInt(10000))
	return []entity.LineExpense{
		{ExpenseCode: entity.ExpenseITDebit, LineTotal: total.Neg()},
		{ExpenseCode: entity.ExpenseITCredit, LineTotal: total},
	}
}

func (s *Splitter) validatePayment(in SplitInput) error {
	credit := in.PaymentGroup != entity.PayGroupNone
	partner := in.Partner

	if partner.Affiliate && !credit {
		return fmt.Errorf("%w: cliente afiliado '%s' (%s) solo tiene permitida venta a crédito",
			domain.ErrPrecondition, partner.CardName, partner.CardCode)
	}
	if credit && in.PaymentGroup != partner.PayTermsGrp {
		return fmt.Errorf("%w: cliente '%s' (%s) no tiene permitida venta con condición de pago a crédito '%d'",
			domain.ErrPrecondition, partner.CardName, partner.CardCode, in.PaymentGroup)
	}
	if credit && in.Payment != nil {
		return fmt.Errorf("%w: venta a crédito no puede presentar pago", domain.ErrPrecondition)
	}
	if !credit && in.Payment == nil {
		return fmt.Errorf("%w: venta al contado requiere pago", domain.ErrPrecondition)
	}

	if in.Payment != nil {
		// comparación en centavos enteros para evitar deriva de punto flotante
		hundred := decimal.NewFromInt(100)
		paidCents := in.Payment.CashSum.Mul(hundred)
		for _, card := range in.Payment.CreditCards {
			paidCents = paidCents.Add(card.CreditSum.Mul(hundred))
		}
		var dueCents decimal.Decimal
		for _, line := range in.Lines {
			dueCents = dueCents.Add(line.PriceAfterVAT.Mul(hundred).Mul(line.Quantity))
		}
		if !dueCents.Equal(paidCents) {
			return fmt.Errorf("%w: error de montos de pago, se esperaba %s pero se recibió %s",
				domain.ErrPrecondition,
				dueCents.Div(hundred).String(), paidCents.Div(hundred).String())
		}
	}
	return nil
}

// validateLineItem aplica las reglas de elegibilidad del artículo.
func validateLineItem(partner *entity.BusinessPartner, item *entity.Item, credit bool) error {
	// el artículo debe ser exento o tener rubro, nunca ambas cosas a medias
	if item.VATLiable && item.TaxGroup == 0 {
		return fmt.Errorf("%w: artículo '%s' (%s) sujeto a impuesto debe tener rubro",
			domain.ErrPrecondition, item.ItemName, item.ItemCode)
	}
	if !item.VATLiable && item.TaxGroup != 0 {
		return fmt.Errorf("%w: artículo '%s' (%s) exento de impuesto no debe tener rubro",
			domain.ErrPrecondition, item.ItemName, item.ItemCode)
	}
	if partner.Affiliate && !item.AllowAffiliate {
		return fmt.Errorf("%w: artículo '%s' (%s) no permitido para consumo de afiliados",
			domain.ErrPrecondition, item.ItemName, item.ItemCode)
	}
	if credit && !item.AllowCredit {
		return fmt.Errorf("%w: artículo '%s' (%s) no permitido para consumo a crédito",
			domain.ErrPrecondition, item.ItemName, item.ItemCode)
	}
	return nil
}

func invoiceType(partner *entity.BusinessPartner, treatment TaxTreatment) int {
	switch {
	case partner.Affiliate:
		return entity.InvoiceTypeAffiliate
	case !treatment.Fiscal():
		return entity.InvoiceTypeNonFiscal
	default:
		return entity.InvoiceTypeFiscal
	}
}

// linesTotal suma los totales de línea en centavos enteros y vuelve a
// moneda, como exige la conciliación del pago.
func linesTotal(lines []entity.InvoiceLine) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	var cents decimal.Decimal
	for _, line := range lines {
		cents = cents.Add(line.PriceAfterVAT.Mul(hundred).Mul(line.Quantity))
	}
	return cents.Div(hundred)
}
