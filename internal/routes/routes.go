package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/barbersoft/agenda-api/internal/audit"
	"github.com/barbersoft/agenda-api/internal/cache"
	"github.com/barbersoft/agenda-api/internal/config"
	"github.com/barbersoft/agenda-api/internal/handlers"
	infraRepo "github.com/barbersoft/agenda-api/internal/infra/repository"
	"github.com/barbersoft/agenda-api/internal/middleware"
	ucAgenda "github.com/barbersoft/agenda-api/internal/usecase/agenda"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	unitRepo := infraRepo.NewUnitGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var unitCache *cache.UnitCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("invalid REDIS_URL, unit cache disabled: %v", err)
		} else {
			unitCache = cache.NewUnitCache(redis.NewClient(opts), cache.DefaultUnitTTL)
		}
	}

	// ======================================================
	// USE CASES
	// ======================================================
	resolveUnitUC := ucAgenda.NewResolveUnit(unitRepo, unitCache)
	resolveClientUC := ucAgenda.NewResolveClient(clientRepo, auditDispatcher)

	checkUC := ucAgenda.NewCheckAvailability(catalogRepo, appointmentRepo)
	createUC := ucAgenda.NewCreateBooking(
		catalogRepo,
		appointmentRepo,
		resolveClientUC,
		auditDispatcher,
	)
	cancelUC := ucAgenda.NewCancelBooking(appointmentRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	agendaHandler := handlers.NewAgendaHandler(
		resolveUnitUC,
		checkUC,
		createUC,
		cancelUC,
	)

	api := r.Group("/api")
	{
		api.POST("/agenda", middleware.APIKeyAuth(cfg), agendaHandler.Handle)
	}
}
