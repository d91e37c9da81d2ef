package repository

import (
	"context"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
)

// SalesPointRepository define el puerto de persistencia para puntos de venta.
type SalesPointRepository interface {
	// Get carga el punto de venta con su catálogo de artículos y sus
	// asignaciones de rubro. Retorna domain.ErrNotFound envuelto si no existe.
	Get(ctx context.Context, code string) (*entity.SalesPoint, error)

	// UpdateCounters persiste la fecha y los seriales diarios. Se llama una
	// sola vez por venta, al final de la transacción.
	UpdateCounters(ctx context.Context, sp *entity.SalesPoint) error

	Create(ctx context.Context, sp *entity.SalesPoint) error
}
