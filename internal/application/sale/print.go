package sale

import (
	"fmt"

	"github.com/BenoitRanque/guembe-pos-extension/internal/application/dto"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/fiscal"
)

// buildPrintOrders agrupa las líneas de la orden por impresora de comanda
// según el catálogo del punto de venta. Los artículos sin impresora asignada
// no generan comanda.
func buildPrintOrders(order *entity.Order, sp *entity.SalesPoint) ([]dto.PrintOrder, error) {
	var printers []string
	grouped := make(map[string]*dto.PrintOrder)

	for _, line := range order.Lines {
		spItem := sp.FindItem(line.ItemCode)
		if spItem == nil {
			return nil, fmt.Errorf("%w: artículo '%s' (%s) no encontrado para punto de venta '%s' (%s)",
				domain.ErrNotFound, line.ItemName, line.ItemCode, sp.Name, sp.Code)
		}
		if spItem.Printer == "" {
			continue
		}
		po, ok := grouped[spItem.Printer]
		if !ok {
			po = &dto.PrintOrder{
				Printer:         spItem.Printer,
				DocDate:         fiscal.FormatDate(order.DocDate),
				SalesPersonCode: order.SalesPersonCode,
				Serial:          order.Serial,
				SalesPointCode:  order.SalesPointCode,
			}
			grouped[spItem.Printer] = po
			printers = append(printers, spItem.Printer)
		}
		po.Items = append(po.Items, dto.PrintOrderItem{
			ItemCode: line.ItemCode,
			ItemName: line.ItemName,
			Quantity: line.Quantity,
		})
	}

	result := make([]dto.PrintOrder, 0, len(printers))
	for _, p := range printers {
		result = append(result, *grouped[p])
	}
	return result, nil
}

// buildPrintInvoices arma el ticket de cada factura; las fiscales llevan los
// metadatos de la autoridad tomados de su dosificación.
func buildPrintInvoices(drafts []*InvoiceDraft) []dto.PrintInvoice {
	result := make([]dto.PrintInvoice, 0, len(drafts))
	for _, draft := range drafts {
		inv := draft.Invoice
		pi := dto.PrintInvoice{
			Type:           inv.Type,
			DocDate:        fiscal.FormatDate(inv.DocDate),
			DocTotal:       inv.DocTotal,
			PaymentGroup:   inv.PaymentGroup,
			Serial:         inv.Serial,
			SalesPointCode: inv.SalesPointCode,
		}
		for _, line := range inv.Lines {
			pi.Items = append(pi.Items, dto.PrintInvoiceItem{
				ItemCode:      line.ItemCode,
				ItemName:      line.ItemName,
				Quantity:      line.Quantity,
				PriceAfterVAT: line.PriceAfterVAT,
			})
		}
		if draft.Auth != nil {
			pi.InvoiceNumber = inv.Number
			pi.AuthorizationOrder = inv.AuthorizationOrder
			pi.ControlCode = inv.ControlCode
			pi.Deadline = fiscal.FormatDate(inv.Deadline)
			pi.ExemptTotal = inv.ExemptTotal
			pi.CustomerTaxID = inv.CustomerTaxID
			pi.CustomerName = inv.CustomerName
			pi.Activity = draft.Auth.Activity
			pi.Legend = draft.Auth.Legend
			pi.Address = draft.Auth.Address
			pi.City = draft.Auth.City
			pi.Country = draft.Auth.Country
			pi.Branch = draft.Auth.Branch
		}
		result = append(result, pi)
	}
	return result
}
