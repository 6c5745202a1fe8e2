package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"pet-lost-found/internal/adapters/auth/odin"
	"pet-lost-found/internal/adapters/images/minio"
	redislock "pet-lost-found/internal/adapters/lock/redis"
	"pet-lost-found/internal/adapters/notify/rabbitmq"
	"pet-lost-found/internal/adapters/roles/accounts"
	mem "pet-lost-found/internal/adapters/storage/memory"
	pg "pet-lost-found/internal/adapters/storage/postgres"
	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/platform/config"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/metrics"
	"pet-lost-found/internal/router"
)

// Las claves de lock quedan como lostfound:<clave>, p.ej. lostfound:scan.
const redisLockPrefix = "lostfound:"

// Runtime es la app armada más lo que hay que cerrar al salir.
type Runtime struct {
	App *router.App
	DB  *sql.DB

	closers []func() error
}

func (rt *Runtime) Close(log logger.Logger) {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			log.Warn("close failed", map[string]any{"error": err})
		}
	}
}

// OpenDB abre Postgres y migra si DB_AUTO_MIGRATE=true. Sin DSN devuelve nil (modo memoria).
func OpenDB(cfg config.Config, log logger.Logger) (*sql.DB, error) {
	if cfg.DBDSN == "" {
		return nil, nil
	}
	if cfg.DBAutoMigrate {
		if err := pg.Migrate(cfg.DBDSN, log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

// Build conecta los adapters opcionales según config. Cada integración sin configurar
// cae a su modo local (verifier dev, roles abiertos, sin broker, etc.).
func Build(ctx context.Context, cfg config.Config, log logger.Logger, m *metrics.Metrics) (*Runtime, error) {
	rt := &Runtime{}
	opts := router.Options{
		Policy: matching.Policy{
			MinScore:    cfg.Matching.MinScore,
			ScanTopN:    cfg.Matching.ScanTopN,
			TriggerTopN: cfg.Matching.TriggerTopN,
		},
		Logger:  log,
		Metrics: m,
	}

	fail := func(err error) (*Runtime, error) {
		rt.Close(log)
		return nil, err
	}

	db, err := OpenDB(cfg, log)
	if err != nil {
		return fail(err)
	}
	if db != nil {
		rt.DB = db
		rt.closers = append(rt.closers, db.Close)
		opts.DB = db
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	if cfg.OdinBaseURL != "" {
		client, err := odin.NewClient(odin.Config{BaseURL: cfg.OdinBaseURL, APIKey: cfg.OdinAPIKey})
		if err != nil {
			return fail(fmt.Errorf("odin client: %w", err))
		}
		opts.AuthVerifier = odin.NewVerifier(client)
	} else {
		log.Warn("ODIN_BASE_URL not set, auth runs in dev mode (X-Debug-User-ID)", nil)
	}

	if cfg.AccountsBaseURL != "" || cfg.AllowAllRoles {
		var client *accounts.Client
		if cfg.AccountsBaseURL != "" {
			client, err = accounts.NewClient(accounts.Config{BaseURL: cfg.AccountsBaseURL, APIKey: cfg.AccountsAPIKey})
			if err != nil {
				return fail(fmt.Errorf("accounts client: %w", err))
			}
		}
		opts.Roles = accounts.NewResolver(client, cfg.AllowAllRoles)
	}

	if cfg.RabbitMQURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, log)
		if err != nil {
			return fail(fmt.Errorf("rabbitmq: %w", err))
		}
		rt.closers = append(rt.closers, pub.Close)
		opts.Publisher = pub
	}

	if cfg.MinIO.Endpoint != "" {
		store, err := minio.NewStore(ctx, minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
		}, log)
		if err != nil {
			return fail(fmt.Errorf("minio: %w", err))
		}
		opts.Images = store
	} else if db != nil {
		log.Warn("MINIO_ENDPOINT not set, report images disabled", nil)
	}

	if cfg.RedisURL != "" {
		rdb, err := redislock.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fail(err)
		}
		rt.closers = append(rt.closers, rdb.Close)
		opts.Locker = redislock.NewLocker(rdb, redisLockPrefix, log)
	} else if db == nil {
		opts.Locker = mem.NewLocker()
	}

	rt.App = router.Build(opts)
	return rt, nil
}
