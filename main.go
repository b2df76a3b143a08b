package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/access"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/auth"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/config"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/database"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/handlers"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/intake"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/logging"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/metrics"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/middleware"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/routes"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store/memory"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store/mongostore"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store/pgstore"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, logger); err != nil {
		logging.Component(logger, "main").WithError(err).Fatal("server stopped")
	}
}

// run owns every resource it opens so deferred cleanup happens before main
// exits.
func run(cfg config.Config, logger *logrus.Logger) error {
	log := logging.Component(logger, "main")

	st, err := openStore(cfg, logging.Component(logger, "store"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.WithError(err).Warn("store close failed")
		}
	}()

	policy, err := access.Load(cfg.AccessPolicyFile, cfg.AdminEmails)
	if err != nil {
		return fmt.Errorf("load access policy: %w", err)
	}
	if len(policy.Admins()) == 0 {
		log.Warn("no admin emails configured; /api/my-orders returns only the caller's orders")
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty; every bearer token will be rejected")
	}

	mode, err := intake.ParseMode(cfg.OrderIntakeMode)
	if err != nil {
		return err
	}
	svc := intake.NewService(st,
		intake.WithMode(mode),
		intake.WithLogger(logging.Component(logger, "order")),
		intake.WithRecorder(metrics.Intake{}),
	)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logging.Component(logger, "ratelimit"))
		stop := make(chan struct{})
		defer close(stop)
		limiter.StartCleanup(cfg.RateLimitIdleTTL, stop)
	}

	httpLog := logging.Component(logger, "http")
	handlers.SetLogger(httpLog)

	r, err := routes.NewEngine(cfg.TrustedProxies)
	if err != nil {
		return err
	}
	r.Use(gin.Recovery(), middleware.CORS(cfg.CORSOrigins), middleware.Metrics(), middleware.RequestLogger(httpLog))

	routes.RegisterRoutes(r, routes.Deps{
		Store:        st,
		Intake:       svc,
		Verifier:     auth.NewVerifier(cfg.JWTSecret),
		Policy:       policy,
		Limiter:      limiter,
		ProtectAdmin: cfg.ProtectAdminAPI,
		Log:          logging.Component(logger, "auth"),
	})

	log.WithFields(logrus.Fields{
		"port":            cfg.Port,
		"store":           cfg.StoreDriver,
		"intake_mode":     mode,
		"trusted_proxies": cfg.TrustedProxies,
	}).Info("listening")
	return r.Run(":" + cfg.Port)
}

// openStore is swapped out in tests.
var openStore = openConfiguredStore

func openConfiguredStore(cfg config.Config, log *logrus.Entry) (store.Store, error) {
	switch strings.ToLower(cfg.StoreDriver) {
	case "", "memory":
		log.Warn("using in-memory store; data is lost on restart")
		return memory.New(), nil

	case "mongo", "mongodb":
		client, err := database.Connect(cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.DBName)
		log.WithField("db", db.Name()).Info("MongoDB connected")
		if err := database.EnsureIndexes(db, log); err != nil {
			log.WithError(err).Warn("index setup incomplete")
		}
		return mongostore.New(db), nil

	case "postgres", "postgresql":
		db, err := database.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("PostgreSQL connected and migrated")
		return pgstore.New(db), nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
