package sale

import "github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"

// TaxTreatment es el tratamiento fiscal que gobierna una línea de venta:
// Fiscal(rubro) o NonFiscal. El valor cero del tipo es NonFiscal.
type TaxTreatment struct {
	group  int
	fiscal bool
}

// FiscalTreatment es el tratamiento de un rubro gravable.
func FiscalTreatment(taxGroup int) TaxTreatment {
	return TaxTreatment{group: taxGroup, fiscal: true}
}

// NonFiscalTreatment es el tratamiento de ventas sin factura fiscal:
// artículos sin rubro y toda compra de afiliado.
func NonFiscalTreatment() TaxTreatment {
	return TaxTreatment{}
}

// TreatmentFor decide el tratamiento de una línea: las compras de afiliados
// nunca son fiscales, el resto sigue el rubro del artículo.
func TreatmentFor(partner *entity.BusinessPartner, item *entity.Item) TaxTreatment {
	if partner.Affiliate || item.TaxGroup == 0 {
		return NonFiscalTreatment()
	}
	return FiscalTreatment(item.TaxGroup)
}

// Fiscal indica si el tratamiento requiere dosificación y código de control.
func (t TaxTreatment) Fiscal() bool { return t.fiscal }

// Group es el rubro; solo tiene sentido cuando Fiscal() es verdadero.
func (t TaxTreatment) Group() int { return t.group }
