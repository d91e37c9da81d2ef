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

var _ repository.AuthorizationRepository = (*AuthorizationRepo)(nil)

// AuthorizationRepo implementa AuthorizationRepository sobre PostgreSQL (usable con pool o tx).
type AuthorizationRepo struct {
	q Querier
}

// NewAuthorizationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuthorizationRepository(q Querier) *AuthorizationRepo {
	return &AuthorizationRepo{q: q}
}

// Get carga la dosificación. La fila se bloquea (FOR UPDATE) para serializar
// la asignación de números de factura entre ventas concurrentes.
func (r *AuthorizationRepo) Get(ctx context.Context, code string) (*entity.Authorization, error) {
	const q = `
		SELECT code, order_number, tax_group, vat_exempt,
		       valid_from, valid_to, active, next_invoice, last_invoice, cipher_key,
		       activity, legend, address, city, country, branch
		FROM authorizations WHERE code = $1
		FOR UPDATE`
	var a entity.Authorization
	err := r.q.QueryRow(ctx, q, code).Scan(
		&a.Code, &a.OrderNumber, &a.TaxGroup, &a.VATExempt,
		&a.ValidFrom, &a.ValidTo, &a.Active, &a.NextInvoice, &a.LastInvoice, &a.Key,
		&a.Activity, &a.Legend, &a.Address, &a.City, &a.Country, &a.Branch,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: dosificación '%s'", domain.ErrNotFound, code)
		}
		return nil, fmt.Errorf("get authorization: %w", err)
	}
	return &a, nil
}

// UpdateNextInvoice persiste el contador avanzado de la dosificación. El
// predicado next_invoice < $2 garantiza que el contador nunca retrocede.
func (r *AuthorizationRepo) UpdateNextInvoice(ctx context.Context, code string, next int64) error {
	const q = `
		UPDATE authorizations
		SET next_invoice = $2
		WHERE code = $1 AND next_invoice < $2`
	tag, err := r.q.Exec(ctx, q, code, next)
	if err != nil {
		return fmt.Errorf("update authorization next_invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: dosificación '%s' no avanzó a %d", domain.ErrPrecondition, code, next)
	}
	return nil
}

// Create persiste la dosificación.
func (r *AuthorizationRepo) Create(ctx context.Context, a *entity.Authorization) error {
	const q = `
		INSERT INTO authorizations
			(code, order_number, tax_group, vat_exempt,
			 valid_from, valid_to, active, next_invoice, last_invoice, cipher_key,
			 activity, legend, address, city, country, branch)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, q,
		a.Code, a.OrderNumber, a.TaxGroup, a.VATExempt,
		a.ValidFrom, a.ValidTo, a.Active, a.NextInvoice, a.LastInvoice, a.Key,
		a.Activity, a.Legend, a.Address, a.City, a.Country, a.Branch,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("dosificación '%s' ya existe: %w", a.Code, err)
		}
		return fmt.Errorf("insert authorization: %w", err)
	}
	return nil
}
