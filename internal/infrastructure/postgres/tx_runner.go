package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BenoitRanque/guembe-pos-extension/internal/application/sale"
)

var _ sale.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSale inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Con dryRun nunca se llega al Commit: la venta de prueba
// corre la lógica completa (numeración incluida) y el Rollback diferido
// descarta todo.
func (r *TxRunner) RunSale(ctx context.Context, dryRun bool, fn func(repos sale.SaleRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := sale.SaleRepos{
		SalesPoints:    NewSalesPointRepository(tx),
		Authorizations: NewAuthorizationRepository(tx),
		Orders:         NewOrderRepository(tx),
		Invoices:       NewInvoiceRepository(tx),
		Payments:       NewPaymentRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if dryRun {
		return nil
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
