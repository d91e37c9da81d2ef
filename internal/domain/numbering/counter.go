package numbering

import (
	"time"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
)

// RollCounters reinicia los seriales diarios del punto de venta si la fecha
// almacenada no es la de hoy. Debe llamarse antes de asignar cualquier serial
// dentro de la transacción.
func RollCounters(sp *entity.SalesPoint, today time.Time) {
	if sp.CurrentDate.Format(dayLayout) != today.Format(dayLayout) {
		sp.CurrentDate = today
		sp.NextOrder = 1
		sp.NextInvoice = 1
	}
}

// NextOrderSerial entrega el serial de orden actual y avanza el contador.
func NextOrderSerial(sp *entity.SalesPoint) int64 {
	n := sp.NextOrder
	sp.NextOrder++
	return n
}

// NextInvoiceSerial entrega el serial de factura actual y avanza el contador.
// Todas las facturas de una misma venta comparten el serial: se pide una vez
// por venta, no por factura.
func NextInvoiceSerial(sp *entity.SalesPoint) int64 {
	n := sp.NextInvoice
	sp.NextInvoice++
	return n
}
