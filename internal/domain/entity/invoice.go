package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de factura.
const (
	InvoiceTypeFiscal    = 201
	InvoiceTypeNonFiscal = 202
	InvoiceTypeAffiliate = 203
)

// Tipos de documento ante la autoridad tributaria.
const (
	DocTypeSales = 7  // venta con tratamiento fiscal
	DocTypeNone  = 10 // sin tratamiento fiscal
)

// Códigos de gasto adicional del impuesto a las transacciones (IT).
const (
	ExpenseITDebit  = 2 // IT debe
	ExpenseITCredit = 4 // IT haber
)

// LineExpense es un gasto adicional de línea. El par debe/haber del IT
// mantiene cuadrado el libro auxiliar de la autoridad sin tocar el código
// de impuesto de la factura.
type LineExpense struct {
	ExpenseCode int
	LineTotal   decimal.Decimal
}

// InvoiceLine es una línea de factura, referida a la línea de orden que la
// originó.
type InvoiceLine struct {
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
	TaxCode         string
	TaxLiable       bool
	Expenses        []LineExpense
}

// Invoice es una factura fiscal, no fiscal o de afiliado. Serial es el
// correlativo diario del punto de venta, compartido por todas las facturas de
// una misma venta; Number es el número fiscal asignado por la dosificación y
// solo existe en facturas fiscales.
type Invoice struct {
	ID              string
	Type            int
	SalesPointCode  string
	Serial          int64
	DocDate         time.Time
	DocDueDate      time.Time
	CardCode        string
	SalesPersonCode int
	PaymentGroup    int    // PayGroupNone = contado
	CustomerTaxID   string // NIT declarado para la factura
	CustomerName    string // razón social declarada
	DocType         int    // DocTypeSales o DocTypeNone
	DocTotal        decimal.Decimal

	// Campos fiscales; vacíos cuando Type != InvoiceTypeFiscal
	AuthorizationCode  string
	AuthorizationOrder string    // número de orden de la dosificación
	Number             int64     // número de factura dentro del rango autorizado
	Deadline           time.Time // fecha límite de emisión (fin de vigencia)
	ControlCode        string
	ExemptTotal        decimal.Decimal // solo dosificaciones exentas

	Lines []InvoiceLine
}
