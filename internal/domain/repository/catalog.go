package repository

import (
	"context"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
)

// BusinessPartnerRepository define el puerto de lectura de socios de negocio.
type BusinessPartnerRepository interface {
	Get(ctx context.Context, cardCode string) (*entity.BusinessPartner, error)
	Create(ctx context.Context, bp *entity.BusinessPartner) error
}

// ItemRepository define el puerto de lectura del catálogo de artículos.
type ItemRepository interface {
	Get(ctx context.Context, itemCode string) (*entity.Item, error)
	Create(ctx context.Context, item *entity.Item) error
}
