package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden.
const (
	OrderTypeQuickSale   = 101
	OrderTypeTableOpened = 102
	OrderTypeTableClosed = 103
)

// Códigos de impuesto por línea.
const (
	TaxCodeIVA       = "IVA"
	TaxCodeIVAExempt = "IVA_EXE"
)

// OrderLine es una línea de la orden de venta ya valorizada.
type OrderLine struct {
	LineNum         int
	ItemCode        string
	ItemName        string
	Quantity        decimal.Decimal
	PriceAfterVAT   decimal.Decimal
	CostingCode     string
	CostingCode2    string
	WarehouseCode   string
	SalesPersonCode int
	TaxCode         string // IVA o IVA_EXE
	TaxLiable       bool
}

// Order es la orden de venta que precede a la facturación. Serial es el
// correlativo diario del punto de venta, no un número fiscal.
type Order struct {
	ID              string
	Type            int
	SalesPointCode  string
	Serial          int64
	DocDate         time.Time
	DocDueDate      time.Time
	CardCode        string
	SalesPersonCode int
	Lines           []OrderLine
}
