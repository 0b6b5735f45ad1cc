package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ziyaarah/backend/internal/groupcode"
	"github.com/ziyaarah/backend/internal/middleware"
	"github.com/ziyaarah/backend/internal/services"
	"github.com/ziyaarah/backend/internal/storage"
	"gorm.io/gorm"
)

// RegisterRoutes wires every handler onto the app. Shared by the
// server entrypoint and the test harness so the two never drift.
func RegisterRoutes(app *fiber.App, db *gorm.DB, storageClient *storage.MinIOClient) {
	access := services.NewAccessService(db)
	registry := groupcode.NewRegistry(db)
	audit := services.NewAuditService(db)

	tripService := services.NewTripService(db, access, registry)
	membershipService := services.NewMembershipService(db, access, registry)
	checkpointService := services.NewCheckpointService(db, access)
	packingService := services.NewPackingService(db, access)
	ritualService := services.NewRitualService(db, access)
	stageService := services.NewStageService(db, access)
	resourceService := services.NewResourceService(db)

	authHandler := NewAuthHandler(db)
	tripsHandler := NewTripsHandler(tripService, audit)
	membersHandler := NewMembersHandler(membershipService, audit)
	checkpointsHandler := NewCheckpointsHandler(checkpointService)
	packingHandler := NewPackingHandler(packingService)
	ritualsHandler := NewRitualsHandler(ritualService)
	stagesHandler := NewStagesHandler(stageService)
	resourcesHandler := NewResourcesHandler(resourceService, storageClient)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)

	tripRoutes := api.Group("/trips", authMiddleware.RequireAuth)
	tripRoutes.Post("/", tripsHandler.Create)
	tripRoutes.Get("/", tripsHandler.List)
	tripRoutes.Post("/join", membersHandler.Join)
	tripRoutes.Get("/:id", tripsHandler.Get)
	tripRoutes.Put("/:id", tripsHandler.Update)
	tripRoutes.Delete("/:id", tripsHandler.Delete)
	tripRoutes.Get("/:id/members", membersHandler.List)
	tripRoutes.Post("/:id/members", membersHandler.Add)
	tripRoutes.Delete("/:id/members/:userId", membersHandler.Remove)
	tripRoutes.Post("/:id/checkpoints", checkpointsHandler.Create)
	tripRoutes.Get("/:id/packing", packingHandler.ListForTrip)
	tripRoutes.Post("/:id/packing/categories", packingHandler.CreateCategory)
	tripRoutes.Get("/:id/rituals", ritualsHandler.ListForTrip)
	tripRoutes.Post("/:id/rituals", ritualsHandler.Create)
	tripRoutes.Get("/:id/stages", stagesHandler.ListForTrip)
	tripRoutes.Post("/:id/stages", stagesHandler.Create)

	checkpointRoutes := api.Group("/checkpoints", authMiddleware.RequireAuth)
	checkpointRoutes.Get("/:id", checkpointsHandler.Get)
	checkpointRoutes.Put("/:id/complete", checkpointsHandler.SetCompleted)
	checkpointRoutes.Delete("/:id", checkpointsHandler.Delete)

	packingRoutes := api.Group("/packing", authMiddleware.RequireAuth)
	packingRoutes.Put("/categories/:id", packingHandler.UpdateCategory)
	packingRoutes.Delete("/categories/:id", packingHandler.DeleteCategory)
	packingRoutes.Post("/categories/:id/items", packingHandler.CreateItem)
	packingRoutes.Put("/items/:id", packingHandler.UpdateItem)
	packingRoutes.Delete("/items/:id", packingHandler.DeleteItem)

	ritualRoutes := api.Group("/rituals", authMiddleware.RequireAuth)
	ritualRoutes.Put("/:id", ritualsHandler.Update)
	ritualRoutes.Delete("/:id", ritualsHandler.Delete)
	ritualRoutes.Post("/:id/steps", ritualsHandler.CreateStep)

	stepRoutes := api.Group("/ritual-steps", authMiddleware.RequireAuth)
	stepRoutes.Put("/:id/complete", ritualsHandler.SetStepCompleted)
	stepRoutes.Delete("/:id", ritualsHandler.DeleteStep)

	stageRoutes := api.Group("/stages", authMiddleware.RequireAuth)
	stageRoutes.Put("/:id", stagesHandler.Update)
	stageRoutes.Delete("/:id", stagesHandler.Delete)

	api.Get("/bookmarks", authMiddleware.RequireAuth, resourcesHandler.ListBookmarks)

	resourceRoutes := api.Group("/resources", authMiddleware.OptionalAuth)
	resourceRoutes.Get("/", resourcesHandler.List)
	resourceRoutes.Get("/:id", resourcesHandler.Get)
	resourceRoutes.Get("/:id/file", resourcesHandler.DownloadFile)
	resourceRoutes.Post("/", authMiddleware.RequireAuth, resourcesHandler.Create)
	resourceRoutes.Put("/:id", authMiddleware.RequireAuth, resourcesHandler.Update)
	resourceRoutes.Post("/:id/file", authMiddleware.RequireAuth, resourcesHandler.AttachFile)
	resourceRoutes.Delete("/:id", authMiddleware.RequireAuth, resourcesHandler.Delete)
	resourceRoutes.Get("/:id/bookmark", authMiddleware.RequireAuth, resourcesHandler.IsBookmarked)
	resourceRoutes.Post("/:id/bookmark", authMiddleware.RequireAuth, resourcesHandler.Bookmark)
	resourceRoutes.Delete("/:id/bookmark", authMiddleware.RequireAuth, resourcesHandler.RemoveBookmark)
}
