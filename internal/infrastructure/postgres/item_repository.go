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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementa ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func (r *ItemRepo) Get(ctx context.Context, itemCode string) (*entity.Item, error) {
	const q = `
		SELECT item_code, item_name, vat_liable, allow_affiliate, allow_credit, tax_group
		FROM items WHERE item_code = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, q, itemCode).Scan(
		&it.ItemCode, &it.ItemName, &it.VATLiable, &it.AllowAffiliate, &it.AllowCredit, &it.TaxGroup,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: artículo '%s'", domain.ErrNotFound, itemCode)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	const q = `
		INSERT INTO items (item_code, item_name, vat_liable, allow_affiliate, allow_credit, tax_group)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, q, it.ItemCode, it.ItemName, it.VATLiable, it.AllowAffiliate, it.AllowCredit, it.TaxGroup)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("artículo '%s' ya existe: %w", it.ItemCode, err)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}
