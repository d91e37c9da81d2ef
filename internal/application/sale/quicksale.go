package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BenoitRanque/guembe-pos-extension/internal/application/dto"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/fiscal"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/numbering"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/repository"
)

// QuickSaleUseCase procesa una venta rápida: crea la orden, reparte las
// facturas por tratamiento fiscal, estampa códigos de control, registra el
// pago y actualiza contadores y dosificaciones, todo en una transacción.
type QuickSaleUseCase struct {
	txRunner    SaleTxRunner
	partnerRepo repository.BusinessPartnerRepository
	itemRepo    repository.ItemRepository
	splitter    *Splitter
	codeSvc     *fiscal.ControlCodeService
	now         func() time.Time
}

// NewQuickSaleUseCase construye el caso de uso.
func NewQuickSaleUseCase(
	txRunner SaleTxRunner,
	partnerRepo repository.BusinessPartnerRepository,
	itemRepo repository.ItemRepository,
	splitter *Splitter,
	codeSvc *fiscal.ControlCodeService,
) *QuickSaleUseCase {
	return &QuickSaleUseCase{
		txRunner:    txRunner,
		partnerRepo: partnerRepo,
		itemRepo:    itemRepo,
		splitter:    splitter,
		codeSvc:     codeSvc,
		now:         time.Now,
	}
}

// WithClock fija el reloj, para pruebas.
func (uc *QuickSaleUseCase) WithClock(now func() time.Time) *QuickSaleUseCase {
	uc.now = now
	return uc
}

// Execute corre la venta. Con dryRun la lógica es idéntica (validación,
// numeración, códigos de control) pero la transacción se revierte siempre.
func (uc *QuickSaleUseCase) Execute(ctx context.Context, in dto.QuickSaleRequest, dryRun bool) (*dto.QuickSaleResponse, error) {
	if in.SalesPointCode == "" || in.CardCode == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: venta sin punto de venta, cliente o artículos", domain.ErrPrecondition)
	}

	// lecturas de catálogo fuera de la transacción: solo consulta
	partner, err := uc.partnerRepo.Get(ctx, in.CardCode)
	if err != nil {
		return nil, fmt.Errorf("cliente: %w", err)
	}
	catalog, err := uc.loadCatalog(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	today := uc.now()
	resp := &dto.QuickSaleResponse{Test: dryRun}

	err = uc.txRunner.RunSale(ctx, dryRun, func(repos SaleRepos) error {
		sp, err := repos.SalesPoints.Get(ctx, in.SalesPointCode)
		if err != nil {
			return fmt.Errorf("punto de venta: %w", err)
		}
		numbering.RollCounters(sp, today)

		order, err := uc.buildOrder(in, partner, catalog, sp, today)
		if err != nil {
			return err
		}
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}

		allocators, err := uc.resolveAllocators(ctx, repos, sp, partner, catalog, today)
		if err != nil {
			return err
		}

		drafts, err := uc.splitter.Split(SplitInput{
			Partner:        partner,
			Catalog:        catalog,
			Lines:          saleLinesFromOrder(order),
			PaymentGroup:   in.Invoice.PaymentGroup,
			Payment:        paymentDetails(in.Invoice.Payment),
			CustomerTaxID:  in.Invoice.CustomerTaxID,
			CustomerName:   in.Invoice.CustomerName,
			SalesPointCode: sp.Code,
			Serial:         numbering.NextInvoiceSerial(sp),
			DocDate:        today,
			Allocators:     allocators,
		})
		if err != nil {
			return err
		}

		invoices := make([]*entity.Invoice, 0, len(drafts))
		for _, draft := range drafts {
			draft.Invoice.ID = uuid.New().String()
			if draft.Auth != nil {
				code, err := uc.codeSvc.Generate(fiscal.ControlCodeParams{
					AuthorizationOrder: draft.Auth.OrderNumber,
					InvoiceNumber:      fmt.Sprintf("%d", draft.Invoice.Number),
					CustomerTaxID:      draft.Invoice.CustomerTaxID,
					DocDate:            fiscal.FormatDate(draft.Invoice.DocDate),
					Amount:             draft.Invoice.DocTotal,
					Key:                draft.Auth.Key,
				})
				if err != nil {
					return fmt.Errorf("código de control de dosificación %s(%s): %w",
						draft.Auth.OrderNumber, draft.Auth.Code, err)
				}
				draft.Invoice.ControlCode = code
			}
			if err := repos.Invoices.Create(ctx, draft.Invoice); err != nil {
				return err
			}
			invoices = append(invoices, draft.Invoice)
		}

		if in.Invoice.Payment != nil {
			payment := buildPayment(in.Invoice.Payment, partner, sp, invoices, today)
			if err := repos.Payments.Create(ctx, payment); err != nil {
				return err
			}
		}

		// escritura única de contadores y dosificaciones al cierre
		if err := repos.SalesPoints.UpdateCounters(ctx, sp); err != nil {
			return err
		}
		for _, alloc := range allocators {
			auth := alloc.Authorization()
			if err := repos.Authorizations.UpdateNextInvoice(ctx, auth.Code, auth.NextInvoice); err != nil {
				return err
			}
		}

		printOrders, err := buildPrintOrders(order, sp)
		if err != nil {
			return err
		}
		resp.Print = dto.PrintPayload{
			Orders:   printOrders,
			Invoices: buildPrintInvoices(drafts),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// loadCatalog carga una sola vez cada artículo vendido.
func (uc *QuickSaleUseCase) loadCatalog(ctx context.Context, items []dto.SaleItemRequest) (map[string]*entity.Item, error) {
	catalog := make(map[string]*entity.Item)
	for _, it := range items {
		if _, ok := catalog[it.ItemCode]; ok {
			continue
		}
		item, err := uc.itemRepo.Get(ctx, it.ItemCode)
		if err != nil {
			return nil, fmt.Errorf("artículo '%s': %w", it.ItemCode, err)
		}
		catalog[it.ItemCode] = item
	}
	return catalog, nil
}

// buildOrder arma la orden de venta con el serial diario y los códigos
// contables del catálogo del punto de venta.
func (uc *QuickSaleUseCase) buildOrder(
	in dto.QuickSaleRequest,
	partner *entity.BusinessPartner,
	catalog map[string]*entity.Item,
	sp *entity.SalesPoint,
	today time.Time,
) (*entity.Order, error) {
	order := &entity.Order{
		ID:              uuid.New().String(),
		Type:            entity.OrderTypeQuickSale,
		SalesPointCode:  sp.Code,
		Serial:          numbering.NextOrderSerial(sp),
		DocDate:         today,
		DocDueDate:      today,
		CardCode:        partner.CardCode,
		SalesPersonCode: in.SalesPersonCode,
	}

	for i, reqLine := range in.Items {
		item := catalog[reqLine.ItemCode]
		spItem := sp.FindItem(reqLine.ItemCode)
		if spItem == nil {
			return nil, fmt.Errorf("%w: artículo '%s' (%s) no encontrado para punto de venta '%s' (%s)",
				domain.ErrNotFound, item.ItemName, item.ItemCode, sp.Name, sp.Code)
		}
		if item.VATLiable && item.TaxGroup == 0 {
			return nil, fmt.Errorf("%w: artículo '%s' (%s) sujeto a impuesto debe tener rubro",
				domain.ErrPrecondition, item.ItemName, item.ItemCode)
		}
		if !item.VATLiable && item.TaxGroup != 0 {
			return nil, fmt.Errorf("%w: artículo '%s' (%s) exento de impuesto no debe tener rubro",
				domain.ErrPrecondition, item.ItemName, item.ItemCode)
		}
		if partner.Affiliate && !item.AllowAffiliate {
			return nil, fmt.Errorf("%w: artículo '%s' (%s) no permitido para consumo de afiliados",
				domain.ErrPrecondition, item.ItemName, item.ItemCode)
		}

		// en la orden aún no hay dosificación cargada: la sujeción se decide
		// contra las asignaciones del punto de venta
		liable := item.VATLiable && !partner.Affiliate &&
			(partner.VATLiable || !sp.HasExemptAssignment(item.TaxGroup))
		taxCode := entity.TaxCodeIVAExempt
		if liable {
			taxCode = entity.TaxCodeIVA
		}

		order.Lines = append(order.Lines, entity.OrderLine{
			LineNum:         i,
			ItemCode:        item.ItemCode,
			ItemName:        item.ItemName,
			Quantity:        reqLine.Quantity,
			PriceAfterVAT:   reqLine.PriceAfterVAT,
			CostingCode:     spItem.CostingCode,
			CostingCode2:    spItem.CostingCode2,
			WarehouseCode:   spItem.WarehouseCode,
			SalesPersonCode: in.SalesPersonCode,
			TaxCode:         taxCode,
			TaxLiable:       liable,
		})
	}
	return order, nil
}

// resolveAllocators carga y valida la dosificación de cada rubro tocado por
// la venta. Los afiliados no facturan fiscalmente: no resuelven ninguna.
func (uc *QuickSaleUseCase) resolveAllocators(
	ctx context.Context,
	repos SaleRepos,
	sp *entity.SalesPoint,
	partner *entity.BusinessPartner,
	catalog map[string]*entity.Item,
	today time.Time,
) (map[int]*numbering.Allocator, error) {
	allocators := make(map[int]*numbering.Allocator)
	if partner.Affiliate {
		return allocators, nil
	}

	scope := numbering.Scope{Kind: "punto de venta", Code: sp.Code}
	for _, item := range catalog {
		if item.TaxGroup == 0 {
			continue
		}
		if _, ok := allocators[item.TaxGroup]; ok {
			continue
		}
		assignment, err := numbering.ResolveAssignment(scope, sp.TaxGroups, item.TaxGroup, partner.VATLiable)
		if err != nil {
			return nil, err
		}
		auth, err := repos.Authorizations.Get(ctx, assignment.AuthorizationCode)
		if err != nil {
			return nil, fmt.Errorf("dosificación: %w", err)
		}
		alloc, err := numbering.NewAllocator(*auth, today)
		if err != nil {
			return nil, err
		}
		allocators[item.TaxGroup] = alloc
	}
	return allocators, nil
}

func saleLinesFromOrder(order *entity.Order) []SaleLine {
	lines := make([]SaleLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, SaleLine{
			ItemCode:        l.ItemCode,
			ItemName:        l.ItemName,
			Quantity:        l.Quantity,
			PriceAfterVAT:   l.PriceAfterVAT,
			CostingCode:     l.CostingCode,
			CostingCode2:    l.CostingCode2,
			WarehouseCode:   l.WarehouseCode,
			SalesPersonCode: l.SalesPersonCode,
			BaseOrderID:     order.ID,
			BaseLine:        l.LineNum,
		})
	}
	return lines
}

func paymentDetails(p *dto.PaymentRequest) *PaymentDetails {
	if p == nil {
		return nil
	}
	d := &PaymentDetails{CashSum: p.CashSum}
	for _, card := range p.CreditCards {
		d.CreditCards = append(d.CreditCards, entity.CreditCardPayment{
			CreditCard:    card.CreditCard,
			CreditSum:     card.CreditSum,
			VoucherNumber: card.VoucherNumber,
		})
	}
	return d
}

func buildPayment(
	p *dto.PaymentRequest,
	partner *entity.BusinessPartner,
	sp *entity.SalesPoint,
	invoices []*entity.Invoice,
	today time.Time,
) *entity.IncomingPayment {
	payment := &entity.IncomingPayment{
		ID:          uuid.New().String(),
		DocDate:     today,
		CardCode:    partner.CardCode,
		CashAccount: sp.CashAccount,
		CashSum:     p.CashSum,
	}
	for _, card := range p.CreditCards {
		payment.CreditCards = append(payment.CreditCards, entity.CreditCardPayment{
			CreditCard:    card.CreditCard,
			CreditSum:     card.CreditSum,
			VoucherNumber: card.VoucherNumber,
		})
	}
	for _, inv := range invoices {
		payment.Invoices = append(payment.Invoices, entity.AppliedInvoice{
			InvoiceID:  inv.ID,
			SumApplied: inv.DocTotal,
		})
	}
	return payment
}
