package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementa InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la factura con sus líneas y gastos adicionales. Los campos
// fiscales van en NULL para facturas sin dosificación.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	const q = `
		INSERT INTO invoices
			(id, type, sales_point_code, serial, doc_date, doc_due_date,
			 card_code, sales_person_code, payment_group, customer_tax_id, customer_name,
			 doc_type, doc_total, authorization_code, authorization_order,
			 number, deadline, control_code, exempt_total, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			 $12, $13, $14, $15, $16, $17, $18, $19, now())`
	_, err := r.q.Exec(ctx, q,
		inv.ID, inv.Type, inv.SalesPointCode, inv.Serial, inv.DocDate, inv.DocDueDate,
		inv.CardCode, inv.SalesPersonCode, inv.PaymentGroup, inv.CustomerTaxID, inv.CustomerName,
		inv.DocType, inv.DocTotal,
		nullIfEmpty(inv.AuthorizationCode), nullIfEmpty(inv.AuthorizationOrder),
		nullIfZero(inv.Number), nullIfZeroTime(inv.Deadline), nullIfEmpty(inv.ControlCode),
		inv.ExemptTotal,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de factura %d de dosificación '%s' ya registrado: %w",
				inv.Number, inv.AuthorizationCode, err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	const qLine = `
		INSERT INTO invoice_lines
			(invoice_id, line_num, item_code, item_name, quantity, price_after_vat,
			 costing_code, costing_code2, warehouse_code, sales_person_code,
			 base_order_id, base_line, tax_code, tax_liable)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	const qExpense = `
		INSERT INTO invoice_line_expenses (invoice_id, line_num, expense_code, line_total)
		VALUES ($1, $2, $3, $4)`
	for i, line := range inv.Lines {
		_, err := r.q.Exec(ctx, qLine,
			inv.ID, i, line.ItemCode, line.ItemName, line.Quantity, line.PriceAfterVAT,
			line.CostingCode, line.CostingCode2, line.WarehouseCode, line.SalesPersonCode,
			line.BaseOrderID, line.BaseLine, line.TaxCode, line.TaxLiable,
		)
		if err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
		for _, exp := range line.Expenses {
			if _, err := r.q.Exec(ctx, qExpense, inv.ID, i, exp.ExpenseCode, exp.LineTotal); err != nil {
				return fmt.Errorf("insert invoice line expense: %w", err)
			}
		}
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullIfZero(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}

func nullIfZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
