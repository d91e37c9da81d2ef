package entity

import "time"

// Authorization representa una dosificación: el rango contiguo de números de
// factura que la administración tributaria autoriza para un rubro, válido en
// una ventana de fechas y asociado a una sucursal o punto de venta.
// NextInvoice avanza en memoria durante la transacción de la venta y se
// escribe de vuelta exactamente una vez al confirmar.
type Authorization struct {
	Code        string // identidad del registro
	OrderNumber string // número de orden asignado por la autoridad; entra al código de control
	TaxGroup    int    // rubro al que aplica
	VATExempt   bool   // dosificación destinada a ventas exentas de IVA
	ValidFrom   time.Time
	ValidTo     time.Time // inclusive; se imprime como fecha límite de emisión
	Active      bool
	NextInvoice int64  // siguiente número de factura a emitir
	LastInvoice int64  // cota superior exclusiva del rango
	Key         string // llave secreta para el código de control

	// Metadatos de la autoridad que se imprimen en la factura
	Activity string
	Legend   string
	Address  string
	City     string
	Country  string
	Branch   string
}

// VATLiable indica si la dosificación grava IVA (no es una dosificación exenta).
func (a Authorization) VATLiable() bool {
	return !a.VATExempt
}
