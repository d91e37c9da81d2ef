package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/repository"
)

var _ repository.SalesPointRepository = (*SalesPointRepo)(nil)

// SalesPointRepo implementa SalesPointRepository sobre PostgreSQL (usable con pool o tx).
type SalesPointRepo struct {
	q Querier
}

// NewSalesPointRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesPointRepository(q Querier) *SalesPointRepo {
	return &SalesPointRepo{q: q}
}

// Get carga el punto de venta con su catálogo y sus asignaciones de rubro.
// La cabecera se bloquea (FOR UPDATE) para serializar los contadores diarios
// entre ventas concurrentes.
func (r *SalesPointRepo) Get(ctx context.Context, code string) (*entity.SalesPoint, error) {
	const q = `
		SELECT code, name, cash_account, business_date, next_order, next_invoice
		FROM sales_points WHERE code = $1
		FOR UPDATE`
	var sp entity.SalesPoint
	err := r.q.QueryRow(ctx, q, code).Scan(
		&sp.Code, &sp.Name, &sp.CashAccount,
		&sp.CurrentDate, &sp.NextOrder, &sp.NextInvoice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: punto de venta '%s'", domain.ErrNotFound, code)
		}
		return nil, fmt.Errorf("get sales_point: %w", err)
	}

	if sp.TaxGroups, err = r.taxGroups(ctx, code); err != nil {
		return nil, err
	}
	if sp.Items, err = r.items(ctx, code); err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *SalesPointRepo) taxGroups(ctx context.Context, code string) ([]entity.TaxGroupAssignment, error) {
	const q = `
		SELECT tax_group, vat_exempt, authorization_code
		FROM sales_point_tax_groups
		WHERE sales_point_code = $1
		ORDER BY tax_group, vat_exempt`
	rows, err := r.q.Query(ctx, q, code)
	if err != nil {
		return nil, fmt.Errorf("list sales_point tax_groups: %w", err)
	}
	defer rows.Close()
	var list []entity.TaxGroupAssignment
	for rows.Next() {
		var tg entity.TaxGroupAssignment
		if err := rows.Scan(&tg.TaxGroup, &tg.VATExempt, &tg.AuthorizationCode); err != nil {
			return nil, fmt.Errorf("scan tax_group: %w", err)
		}
		list = append(list, tg)
	}
	return list, rows.Err()
}

func (r *SalesPointRepo) items(ctx context.Context, code string) ([]entity.SalesPointItem, error) {
	const q = `
		SELECT item_code, costing_code, costing_code2, warehouse_code, printer
		FROM sales_point_items
		WHERE sales_point_code = $1
		ORDER BY item_code`
	rows, err := r.q.Query(ctx, q, code)
	if err != nil {
		return nil, fmt.Errorf("list sales_point items: %w", err)
	}
	defer rows.Close()
	var list []entity.SalesPointItem
	for rows.Next() {
		var it entity.SalesPointItem
		if err := rows.Scan(&it.ItemCode, &it.CostingCode, &it.CostingCode2, &it.WarehouseCode, &it.Printer); err != nil {
			return nil, fmt.Errorf("scan sales_point item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// UpdateCounters persiste la fecha y los seriales diarios del punto de venta.
func (r *SalesPointRepo) UpdateCounters(ctx context.Context, sp *entity.SalesPoint) error {
	const q = `
		UPDATE sales_points
		SET business_date = $2, next_order = $3, next_invoice = $4
		WHERE code = $1`
	tag, err := r.q.Exec(ctx, q, sp.Code, sp.CurrentDate, sp.NextOrder, sp.NextInvoice)
	if err != nil {
		return fmt.Errorf("update sales_point counters: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: punto de venta '%s'", domain.ErrNotFound, sp.Code)
	}
	return nil
}

// Create persiste el punto de venta con su catálogo y asignaciones.
func (r *SalesPointRepo) Create(ctx context.Context, sp *entity.SalesPoint) error {
	const q = `
		INSERT INTO sales_points (code, name, cash_account, business_date, next_order, next_invoice)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, q, sp.Code, sp.Name, sp.CashAccount, sp.CurrentDate, sp.NextOrder, sp.NextInvoice)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("punto de venta '%s' ya existe: %w", sp.Code, err)
		}
		return fmt.Errorf("insert sales_point: %w", err)
	}

	const qTG = `
		INSERT INTO sales_point_tax_groups (sales_point_code, tax_group, vat_exempt, authorization_code)
		VALUES ($1, $2, $3, $4)`
	for _, tg := range sp.TaxGroups {
		if _, err := r.q.Exec(ctx, qTG, sp.Code, tg.TaxGroup, tg.VATExempt, tg.AuthorizationCode); err != nil {
			return fmt.Errorf("insert sales_point tax_group: %w", err)
		}
	}

	const qIt = `
		INSERT INTO sales_point_items (sales_point_code, item_code, costing_code, costing_code2, warehouse_code, printer)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, it := range sp.Items {
		if _, err := r.q.Exec(ctx, qIt, sp.Code, it.ItemCode, it.CostingCode, it.CostingCode2, it.WarehouseCode, it.Printer); err != nil {
			return fmt.Errorf("insert sales_point item: %w", err)
		}
	}
	return nil
}
