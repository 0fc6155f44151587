package main

import (
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/nimasrn/invoice-dashboard/internal/config"
	"github.com/nimasrn/invoice-dashboard/internal/handlers"
	"github.com/nimasrn/invoice-dashboard/internal/repository"
	"github.com/nimasrn/invoice-dashboard/internal/services"
	"github.com/nimasrn/invoice-dashboard/internal/viewcache"
	xhttp "github.com/nimasrn/invoice-dashboard/pkg/http"
	"github.com/nimasrn/invoice-dashboard/pkg/logger"
	"github.com/nimasrn/invoice-dashboard/pkg/pg"
	"github.com/nimasrn/invoice-dashboard/pkg/prom"
	"github.com/nimasrn/invoice-dashboard/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	if config.Get().PromNamespace != "" {
		host, _ := os.Hostname()
		if err := prom.Create(host, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed creating metrics", "error", err)
		}
		if config.Get().AppDebugMetricsAddr != "" {
			go prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
		}
	}

	// transport (tcp for now)
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	views := viewcache.New(redisAdap, config.Get().ViewCacheTTL)

	invoiceRepo := repository.NewInvoiceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	revenueRepo := repository.NewRevenueRepository(db)
	userRepo := repository.NewUserRepository(db)

	// services
	dashboardService := services.NewDashboardService(invoiceRepo, customerRepo, revenueRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, views)
	authService := services.NewAuthService(userRepo, redisAdap, config.Get().SessionTTL)
	healthService := services.NewHealthService(db)

	// v1 handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, views)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterDashboardRoutes(g, dashboardHandler)
	handlers.RegisterInvoiceRoutes(g, invoiceHandler)
	handlers.RegisterAuthRoutes(g, authHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	// Create new server
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Kill)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		s.Shutdown()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
