package entity

// Item son los datos del catálogo de artículos relevantes para la venta.
// TaxGroup 0 significa sin tratamiento fiscal (ningún rubro).
type Item struct {
	ItemCode       string
	ItemName       string
	VATLiable      bool
	AllowAffiliate bool // puede venderse a afiliados
	AllowCredit    bool // puede venderse a crédito
	TaxGroup       int
}
