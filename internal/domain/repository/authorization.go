package repository

import (
	"context"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
)

// AuthorizationRepository define el puerto de persistencia para
// dosificaciones.
type AuthorizationRepository interface {
	Get(ctx context.Context, code string) (*entity.Authorization, error)

	// UpdateNextInvoice persiste el contador avanzado de la dosificación.
	// Es la única mutación permitida desde una venta; nunca retrocede.
	UpdateNextInvoice(ctx context.Context, code string, next int64) error

	Create(ctx context.Context, auth *entity.Authorization) error
}
