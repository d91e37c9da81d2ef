package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditCardPayment es un cobro con tarjeta dentro del pago.
type CreditCardPayment struct {
	CreditCard    int
	CreditSum     decimal.Decimal
	VoucherNumber string
}

// AppliedInvoice aplica parte del pago a una factura de la venta.
type AppliedInvoice struct {
	InvoiceID  string
	SumApplied decimal.Decimal
}

// IncomingPayment es el pago recibido de una venta al contado, aplicado a
// todas las facturas generadas por la venta.
type IncomingPayment struct {
	ID          string
	DocDate     time.Time
	CardCode    string
	CashAccount string
	CashSum     decimal.Decimal
	CreditCards []CreditCardPayment
	Invoices    []AppliedInvoice
}
