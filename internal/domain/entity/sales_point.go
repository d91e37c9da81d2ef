package entity

import "time"

// TaxGroupAssignment vincula un rubro del punto de venta con su dosificación.
// Un mismo rubro puede tener dos asignaciones: una gravada y una exenta.
type TaxGroupAssignment struct {
	TaxGroup          int
	VATExempt         bool
	AuthorizationCode string
}

// SalesPointItem es un artículo habilitado en el punto de venta, con sus
// códigos contables y la impresora de comanda asignada.
type SalesPointItem struct {
	ItemCode      string
	CostingCode   string
	CostingCode2  string
	WarehouseCode string
	Printer       string // vacío = sin comanda
}

// SalesPoint representa un punto de venta con sus contadores diarios de
// seriales. CurrentDate marca el día al que pertenecen los contadores; si no
// es hoy, ambos seriales se reinician a 1 antes de cualquier asignación.
type SalesPoint struct {
	Code        string
	Name        string
	CashAccount string
	CurrentDate time.Time
	NextOrder   int64
	NextInvoice int64
	TaxGroups   []TaxGroupAssignment
	Items       []SalesPointItem
}

// FindItem busca el artículo en el catálogo del punto de venta.
// Devuelve nil si el artículo no está habilitado.
func (sp *SalesPoint) FindItem(itemCode string) *SalesPointItem {
	for i := range sp.Items {
		if sp.Items[i].ItemCode == itemCode {
			return &sp.Items[i]
		}
	}
	return nil
}

// HasExemptAssignment indica si existe una dosificación exenta para el rubro.
func (sp *SalesPoint) HasExemptAssignment(taxGroup int) bool {
	for _, tg := range sp.TaxGroups {
		if tg.TaxGroup == taxGroup && tg.VATExempt {
			return true
		}
	}
	return false
}
