package postgres

import (
	"context"
	"fmt"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementa OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden con sus líneas.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	const q = `
		INSERT INTO orders
			(id, type, sales_point_code, serial, doc_date, doc_due_date, card_code, sales_person_code, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, now())`
	_, err := r.q.Exec(ctx, q,
		order.ID, order.Type, order.SalesPointCode, order.Serial,
		order.DocDate, order.DocDueDate, order.CardCode, order.SalesPersonCode,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	const qLine = `
		INSERT INTO order_lines
			(order_id, line_num, item_code, item_name, quantity, price_after_vat,
			 costing_code, costing_code2, warehouse_code, sales_person_code, tax_code, tax_liable)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, line := range order.Lines {
		_, err := r.q.Exec(ctx, qLine,
			order.ID, line.LineNum, line.ItemCode, line.ItemName,
			line.Quantity, line.PriceAfterVAT,
			line.CostingCode, line.CostingCode2, line.WarehouseCode,
			line.SalesPersonCode, line.TaxCode, line.TaxLiable,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}
