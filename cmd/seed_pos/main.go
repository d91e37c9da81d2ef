// seed_pos puebla la base de datos con datos de demostración: un punto de
// venta con su catálogo, dosificaciones vigentes para dos rubros y socios de
// negocio de cada tipo. Pensado para levantar un entorno local funcional.
//
// Uso: go run ./cmd/seed_pos
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/entity"
	"github.com/BenoitRanque/guembe-pos-extension/internal/infrastructure/postgres"
	"github.com/BenoitRanque/guembe-pos-extension/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	today := time.Now().Truncate(24 * time.Hour)

	authRepo := postgres.NewAuthorizationRepository(pool)
	auths := []*entity.Authorization{
		{
			Code:        "DOS-REST-2026",
			OrderNumber: "29040011007",
			TaxGroup:    1,
			ValidFrom:   today.AddDate(0, -1, 0),
			ValidTo:     today.AddDate(1, 0, 0),
			Active:      true,
			NextInvoice: 1,
			LastInvoice: 50000,
			Key:         "9rCB7Sv4X29d)5k7N%3ab89p-3(5[A",
			Activity:    "Servicios de restaurante",
			Legend:      "Ley 453: tiene derecho a recibir información veraz sobre el servicio",
			Address:     "Km 7 Doble Vía La Guardia",
			City:        "Santa Cruz",
			Country:     "Bolivia",
			Branch:      "Casa Matriz",
		},
		{
			Code:        "DOS-HOSP-2026",
			OrderNumber: "29040011008",
			TaxGroup:    2,
			ValidFrom:   today.AddDate(0, -1, 0),
			ValidTo:     today.AddDate(1, 0, 0),
			Active:      true,
			NextInvoice: 1,
			LastInvoice: 20000,
			Key:         "mF(84F79t6Bc5g7EB96-4b73a)1D+C",
			Activity:    "Servicios de hospedaje",
			Legend:      "Ley 453: tiene derecho a recibir información veraz sobre el servicio",
			Address:     "Km 7 Doble Vía La Guardia",
			City:        "Santa Cruz",
			Country:     "Bolivia",
			Branch:      "Casa Matriz",
		},
	}
	for _, a := range auths {
		if err := authRepo.Create(ctx, a); err != nil {
			fmt.Fprintf(os.Stderr, "dosificación %s: %v\n", a.Code, err)
			os.Exit(1)
		}
	}

	itemRepo := postgres.NewItemRepository(pool)
	items := []*entity.Item{
		{ItemCode: "ALM-EJEC", ItemName: "Almuerzo ejecutivo", VATLiable: true, AllowAffiliate: true, AllowCredit: true, TaxGroup: 1},
		{ItemCode: "PARRILLA", ItemName: "Parrillada familiar", VATLiable: true, AllowCredit: true, TaxGroup: 1},
		{ItemCode: "HAB-DOBLE", ItemName: "Habitación doble por noche", VATLiable: true, AllowCredit: true, TaxGroup: 2},
		{ItemCode: "CONSUMO-INT", ItemName: "Consumo interno del personal", AllowAffiliate: true, AllowCredit: true},
	}
	for _, it := range items {
		if err := itemRepo.Create(ctx, it); err != nil {
			fmt.Fprintf(os.Stderr, "artículo %s: %v\n", it.ItemCode, err)
			os.Exit(1)
		}
	}

	spRepo := postgres.NewSalesPointRepository(pool)
	sp := &entity.SalesPoint{
		Code:        "PV-REST",
		Name:        "Restaurante Principal",
		CashAccount: "1.1.01.001",
		CurrentDate: today,
		NextOrder:   1,
		NextInvoice: 1,
		TaxGroups: []entity.TaxGroupAssignment{
			{TaxGroup: 1, AuthorizationCode: "DOS-REST-2026"},
			{TaxGroup: 2, AuthorizationCode: "DOS-HOSP-2026"},
		},
		Items: []entity.SalesPointItem{
			{ItemCode: "ALM-EJEC", CostingCode: "REST", CostingCode2: "PV-REST", WarehouseCode: "ALM01", Printer: "COCINA"},
			{ItemCode: "PARRILLA", CostingCode: "REST", CostingCode2: "PV-REST", WarehouseCode: "ALM01", Printer: "PARRILLA"},
			{ItemCode: "HAB-DOBLE", CostingCode: "HOSP", CostingCode2: "PV-REST", WarehouseCode: "ALM02"},
			{ItemCode: "CONSUMO-INT", CostingCode: "REST", WarehouseCode: "ALM01", Printer: "COCINA"},
		},
	}
	if err := spRepo.Create(ctx, sp); err != nil {
		fmt.Fprintf(os.Stderr, "punto de venta %s: %v\n", sp.Code, err)
		os.Exit(1)
	}

	bpRepo := postgres.NewBusinessPartnerRepository(pool)
	partners := []*entity.BusinessPartner{
		{CardCode: "C-SINNOMBRE", CardName: "Cliente sin nombre", VATLiable: true, PayTermsGrp: entity.PayGroupNone},
		{CardCode: "C-EMPRESA", CardName: "Empresa Viajes Bolivia SRL", VATLiable: true, PayTermsGrp: 5},
		{CardCode: "C-EXTERIOR", CardName: "Agencia del exterior", VATLiable: false, PayTermsGrp: 8},
		{CardCode: "E-PERSONAL", CardName: "Personal de planta", VATLiable: false, Affiliate: true, PayTermsGrp: 3},
	}
	for _, bp := range partners {
		if err := bpRepo.Create(ctx, bp); err != nil {
			fmt.Fprintf(os.Stderr, "socio %s: %v\n", bp.CardCode, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Datos de demostración cargados: %d dosificaciones, %d artículos, 1 punto de venta, %d socios\n",
		len(auths), len(items), len(partners))
}
