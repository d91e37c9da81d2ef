package sale

import (
	"context"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/repository"
)

// SaleRepos son los repositorios atados a la transacción de la venta.
type SaleRepos struct {
	SalesPoints    repository.SalesPointRepository
	Authorizations repository.AuthorizationRepository
	Orders         repository.OrderRepository
	Invoices       repository.InvoiceRepository
	Payments       repository.PaymentRepository
}

// SaleTxRunner ejecuta fn dentro de una transacción con los repositorios
// atados a ella. Si fn retorna error se hace rollback y se propaga. Con
// dryRun la transacción se revierte siempre, incluso en éxito: la venta de
// prueba corre la lógica completa sin dejar rastro.
type SaleTxRunner interface {
	RunSale(ctx context.Context, dryRun bool, fn func(repos SaleRepos) error) error
}
