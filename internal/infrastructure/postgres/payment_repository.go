package postgres

import (
	"context"
	"fmt"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementa PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste el pago con sus tarjetas y las facturas aplicadas.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.IncomingPayment) error {
	const q = `
		INSERT INTO incoming_payments (id, doc_date, card_code, cash_account, cash_sum, created_at)
		VALUES ($1, $2, $3, $4, $5, now())`
	_, err := r.q.Exec(ctx, q, p.ID, p.DocDate, p.CardCode, p.CashAccount, p.CashSum)
	if err != nil {
		return fmt.Errorf("insert incoming_payment: %w", err)
	}

	const qCard = `
		INSERT INTO payment_credit_cards (payment_id, credit_card, credit_sum, voucher_number)
		VALUES ($1, $2, $3, $4)`
	for _, card := range p.CreditCards {
		if _, err := r.q.Exec(ctx, qCard, p.ID, card.CreditCard, card.CreditSum, card.VoucherNumber); err != nil {
			return fmt.Errorf("insert payment credit_card: %w", err)
		}
	}

	const qInv = `
		INSERT INTO payment_invoices (payment_id, invoice_id, sum_applied)
		VALUES ($1, $2, $3)`
	for _, inv := range p.Invoices {
		if _, err := r.q.Exec(ctx, qInv, p.ID, inv.InvoiceID, inv.SumApplied); err != nil {
			return fmt.Errorf("insert payment invoice: %w", err)
		}
	}
	return nil
}
