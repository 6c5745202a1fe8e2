package router

import (
	"database/sql"
	"net/http"

	_ "pet-lost-found/docs"
	mem "pet-lost-found/internal/adapters/storage/memory"
	pg "pet-lost-found/internal/adapters/storage/postgres"
	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/domain/notifications"
	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/reports"
	"pet-lost-found/internal/middleware"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/metrics"
	"pet-lost-found/internal/ports/auth"
	"pet-lost-found/internal/ports/images"
	"pet-lost-found/internal/ports/lock"
	"pet-lost-found/internal/ports/notify"
	"pet-lost-found/internal/ports/roles"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Roles     roles.Resolver   // nil = adopter + shelter para todos
	Publisher notify.Publisher // nil = solo registro en DB
	Images    images.Store     // nil con DB = sin fotos; sin DB usa store en memoria
	Locker    lock.Locker      // nil = scans sin lock (una sola instancia)

	Policy  matching.Policy
	Logger  logger.Logger
	Metrics *metrics.Metrics
}

// App expone lo que necesitan los binarios además del handler HTTP
// (scan periódico, limpieza de fotos).
type App struct {
	Handler       http.Handler
	Reports       *reports.Service
	Engine        *matching.Engine
	Matches       *matching.Service
	Scanner       *matching.Scanner
	Notifications *notifications.Service
}

func NewRouter(opts Options) http.Handler {
	return Build(opts).Handler
}

func Build(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	var (
		petRepo     pets.Repository
		reportsRepo interface {
			reports.Repository
			reports.ImageRepository
		}
		matchRepo matching.Repository
		notifRepo notifications.Repository
		store     = opts.Images
	)

	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		reportsRepo = pg.NewReportsRepo(opts.DB)
		matchRepo = pg.NewMatchesRepo(opts.DB)
		notifRepo = pg.NewNotificationsRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
		memReports := mem.NewReportsRepo(petRepo)
		reportsRepo = memReports
		matchRepo = mem.NewMatchRepo(memReports)
		notifRepo = mem.NewNotificationRepo()
		if store == nil {
			store = mem.NewImageStore()
		}
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	notifSvc := notifications.NewService(notifRepo, opts.Publisher, log, opts.Metrics)

	reportsSvc := reports.NewService(reportsRepo, reports.Options{
		Pets:   petRepo,
		Roles:  opts.Roles,
		Logger: log,
	})
	if store != nil {
		reportsSvc.EnableImages(reportsRepo, store)
	}

	engine := matching.NewEngine(reportsRepo, matchRepo, matching.EngineOptions{
		Policy:   opts.Policy,
		Notifier: notifSvc,
		Logger:   log,
		Metrics:  opts.Metrics,
	})
	reportsSvc.SetMatcher(engine)

	matchSvc := matching.NewService(matchRepo, reportsRepo, notifSvc, log, opts.Metrics)
	scanner := matching.NewScanner(engine, matchRepo, opts.Locker)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	reports.RegisterRoutes(r, reportsSvc)
	matching.RegisterRoutes(r, matchSvc)
	notifications.RegisterRoutes(r, notifSvc)

	return &App{
		Handler:       r,
		Reports:       reportsSvc,
		Engine:        engine,
		Matches:       matchSvc,
		Scanner:       scanner,
		Notifications: notifSvc,
	}
}
