package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/BenoitRanque/guembe-pos-extension/internal/application/sale"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/repository"
	"github.com/BenoitRanque/guembe-pos-extension/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	QuickSale      *sale.QuickSaleUseCase
	SalesPoints    repository.SalesPointRepository
	Authorizations repository.AuthorizationRepository
	Log            *logger.Logger
	JWTSecret      string
	Company        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Healthcheck (público)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Extension GuembePOS is up and running!")
	})

	api := app.Group("/api")

	// Rutas protegidas: Bearer Token más verificación de compañía
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireCompany(deps.Company))

	// Ventas (protegido)
	saleHandler := NewSaleHandler(deps.QuickSale, deps.Log)
	protected.Post("/sales", saleHandler.Process)

	// Puntos de venta (protegido)
	salesPoints := protected.Group("/sales-points")
	salesPointHandler := NewSalesPointHandler(deps.SalesPoints)
	salesPoints.Get("/:code", salesPointHandler.GetByCode)
	salesPoints.Post("/", salesPointHandler.Create)

	// Dosificaciones (protegido)
	authorizations := protected.Group("/authorizations")
	authorizationHandler := NewAuthorizationHandler(deps.Authorizations)
	authorizations.Get("/:code", authorizationHandler.GetByCode)
	authorizations.Post("/", authorizationHandler.Create)
}
