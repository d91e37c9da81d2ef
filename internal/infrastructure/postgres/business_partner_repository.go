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

var _ repository.BusinessPartnerRepository = (*BusinessPartnerRepo)(nil)

// BusinessPartnerRepo implementa BusinessPartnerRepository sobre PostgreSQL.
type BusinessPartnerRepo struct {
	q Querier
}

// NewBusinessPartnerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBusinessPartnerRepository(q Querier) *BusinessPartnerRepo {
	return &BusinessPartnerRepo{q: q}
}

func (r *BusinessPartnerRepo) Get(ctx context.Context, cardCode string) (*entity.BusinessPartner, error) {
	const q = `
		SELECT card_code, card_name, vat_liable, affiliate, pay_terms_grp
		FROM business_partners WHERE card_code = $1`
	var bp entity.BusinessPartner
	err := r.q.QueryRow(ctx, q, cardCode).Scan(
		&bp.CardCode, &bp.CardName, &bp.VATLiable, &bp.Affiliate, &bp.PayTermsGrp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: socio de negocio '%s'", domain.ErrNotFound, cardCode)
		}
		return nil, fmt.Errorf("get business_partner: %w", err)
	}
	return &bp, nil
}

func (r *BusinessPartnerRepo) Create(ctx context.Context, bp *entity.BusinessPartner) error {
	const q = `
		INSERT INTO business_partners (card_code, card_name, vat_liable, affiliate, pay_terms_grp)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, q, bp.CardCode, bp.CardName, bp.VATLiable, bp.Affiliate, bp.PayTermsGrp)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("socio de negocio '%s' ya existe: %w", bp.CardCode, err)
		}
		return fmt.Errorf("insert business_partner: %w", err)
	}
	return nil
}
