package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Paqueteria-api/internal/application/auth"
	"github.com/jhoicas/Paqueteria-api/internal/application/grn"
	"github.com/jhoicas/Paqueteria-api/internal/application/otp"
	"github.com/jhoicas/Paqueteria-api/internal/application/usecase"
	"github.com/jhoicas/Paqueteria-api/internal/application/warehouse"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
	"github.com/jhoicas/Paqueteria-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	LocationUC  *usecase.LocationUseCase
	GRNUC       *grn.UseCase
	ManifestUC  *grn.ManifestUseCase
	OTPUC       *otp.UseCase
	WarehouseUC *warehouse.UseCase
	UserRepo    repository.UserRepository
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	actors := actorLoader{userRepo: deps.UserRepo}

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Locations (protegido; alta solo admin)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", RequireRole(entity.RoleAdmin), locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// GRNs (protegido)
	grns := protected.Group("/grns")
	grnHandler := NewGRNHandler(deps.GRNUC, deps.ManifestUC, actors)
	grns.Post("/", grnHandler.Create)
	grns.Get("/", grnHandler.List)
	grns.Get("/:id", grnHandler.GetByID)
	grns.Delete("/:id", grnHandler.Delete)
	grns.Get("/:id/manifest.pdf", grnHandler.Manifest)

	// OTP (protegido; reenvío solo admin)
	otpHandler := NewOTPHandler(deps.OTPUC, actors)
	protected.Post("/otp/redeem", otpHandler.Redeem)
	grns.Post("/:id/otp/resend", RequireRole(entity.RoleAdmin), otpHandler.Resend)

	// Notas de entrega (protegido, solo lectura)
	protected.Get("/dns", grnHandler.ListDNs)

	// Bodega (protegido; las etapas de piso son de bodegueros)
	wh := protected.Group("/warehouse")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, actors)
	wh.Post("/inward", warehouseHandler.Inward)
	wh.Post("/floor-assign", RequireRole(entity.RoleBodeguero, entity.RoleAdmin), warehouseHandler.AssignToFloor)
	wh.Post("/floor-delivery", RequireRole(entity.RoleBodeguero, entity.RoleAdmin), warehouseHandler.FloorDelivery)
	wh.Get("/inwards", warehouseHandler.ListInwards)
	wh.Get("/pending", warehouseHandler.ListPending)
}
