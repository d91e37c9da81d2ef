package repository

import (
	"context"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
)

// OrderRepository persiste órdenes de venta con sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
}

// InvoiceRepository persiste facturas con sus líneas y gastos adicionales.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
}

// PaymentRepository persiste pagos recibidos con sus tarjetas y aplicaciones.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.IncomingPayment) error
}
