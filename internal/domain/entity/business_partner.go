package entity

// PayGroupNone es el grupo de pago que marca una venta al contado.
const PayGroupNone = -1

// BusinessPartner representa al cliente de la venta (socio de negocio).
// Un afiliado solo puede comprar a crédito y nunca recibe factura fiscal.
type BusinessPartner struct {
	CardCode    string
	CardName    string
	VATLiable   bool // sujeto de IVA; un afiliado nunca lo es
	Affiliate   bool
	PayTermsGrp int // condición de pago a crédito asignada al cliente
}
