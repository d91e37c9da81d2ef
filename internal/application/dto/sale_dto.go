package dto

import "github.com/shopspring/decimal"

// SaleOperationRequest es el sobre de toda operación del punto de venta.
// Test = true procesa la venta completa (validación y numeración incluidas)
// y revierte la transacción al final, para previsualizar sin efectos.
type SaleOperationRequest struct {
	Operation string           `json:"Operation"`
	Test      bool             `json:"Test"`
	Data      QuickSaleRequest `json:"Data"`
}

// SaleItemRequest es una línea vendida.
type SaleItemRequest struct {
	ItemCode      string          `json:"ItemCode"`
	Quantity      decimal.Decimal `json:"Quantity"`
	PriceAfterVAT decimal.Decimal `json:"PriceAfterVAT"`
}

// CreditCardRequest es un cobro con tarjeta dentro del pago.
type CreditCardRequest struct {
	CreditCard    int             `json:"CreditCard"`
	CreditSum     decimal.Decimal `json:"CreditSum"`
	VoucherNumber string          `json:"VoucherNum"`
}

// PaymentRequest es el pago de una venta al contado.
type PaymentRequest struct {
	CashSum     decimal.Decimal     `json:"CashSum"`
	CreditCards []CreditCardRequest `json:"PaymentCreditCards"`
}

// SaleInvoiceRequest son los datos de facturación de la venta.
// PaymentGroup distinto de -1 indica venta a crédito (sin pago adjunto).
type SaleInvoiceRequest struct {
	PaymentGroup  int             `json:"PaymentGroupCode"`
	CustomerTaxID string          `json:"NIT"`
	CustomerName  string          `json:"BusinessName"`
	Payment       *PaymentRequest `json:"Payment"`
}

// QuickSaleRequest es una venta rápida: orden, facturas y pago en una sola
// transacción.
type QuickSaleRequest struct {
	SalesPointCode  string             `json:"SalesPointCode"`
	CardCode        string             `json:"CardCode"`
	SalesPersonCode int                `json:"SalesPersonCode"`
	Items           []SaleItemRequest  `json:"Items"`
	Invoice         SaleInvoiceRequest `json:"Invoice"`
}

// PrintOrderItem es una línea de comanda.
type PrintOrderItem struct {
	ItemCode string          `json:"ItemCode"`
	ItemName string          `json:"ItemName"`
	Quantity decimal.Decimal `json:"Quantity"`
}

// PrintOrder es la comanda destinada a una impresora de preparación.
type PrintOrder struct {
	Printer         string           `json:"Printer"`
	DocDate         string           `json:"DocDate"`
	SalesPersonCode int              `json:"SalesPersonCode"`
	Serial          int64            `json:"Serial"`
	SalesPointCode  string           `json:"SalesPointCode"`
	Items           []PrintOrderItem `json:"Items"`
}

// PrintInvoiceItem es una línea del ticket de factura.
type PrintInvoiceItem struct {
	ItemCode      string          `json:"ItemCode"`
	ItemName      string          `json:"ItemName"`
	Quantity      decimal.Decimal `json:"Quantity"`
	PriceAfterVAT decimal.Decimal `json:"PriceAfterVAT"`
}

// PrintInvoice es el ticket de una factura. Los campos fiscales solo se
// llenan para facturas con dosificación.
type PrintInvoice struct {
	Type           int                `json:"Type"`
	DocDate        string             `json:"DocDate"`
	DocTotal       decimal.Decimal    `json:"DocTotal"`
	PaymentGroup   int                `json:"PaymentGroupCode"`
	Serial         int64              `json:"Serial"`
	SalesPointCode string             `json:"SalesPointCode"`
	Items          []PrintInvoiceItem `json:"Items"`

	// Campos fiscales
	InvoiceNumber      int64           `json:"InvoiceNumber,omitempty"`
	AuthorizationOrder string          `json:"AuthorizationOrder,omitempty"`
	ControlCode        string          `json:"ControlCode,omitempty"`
	Deadline           string          `json:"Deadline,omitempty"`
	ExemptTotal        decimal.Decimal `json:"ExemptTotal,omitempty"`
	CustomerTaxID      string          `json:"NIT,omitempty"`
	CustomerName       string          `json:"BusinessName,omitempty"`
	Activity           string          `json:"Activity,omitempty"`
	Legend             string          `json:"Legend,omitempty"`
	Address            string          `json:"Address,omitempty"`
	City               string          `json:"City,omitempty"`
	Country            string          `json:"Country,omitempty"`
	Branch             string          `json:"Branch,omitempty"`
}

// PrintPayload agrupa los documentos a imprimir producidos por la venta.
type PrintPayload struct {
	Orders   []PrintOrder   `json:"Orders"`
	Invoices []PrintInvoice `json:"Invoices"`
}

// QuickSaleResponse es la respuesta de la operación QUICKSALE.
type QuickSaleResponse struct {
	Test  bool         `json:"Test"`
	Print PrintPayload `json:"Print"`
}
