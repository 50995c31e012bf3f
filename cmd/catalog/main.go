package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"PriceStore/internal/auth"
	"PriceStore/internal/catalog"
	"PriceStore/internal/config"
	"PriceStore/pkg/kit"
)

func main() {
	service := "catalog"

	cfg, err := config.Load()
	if err != nil {
		boot := kit.NewLogger(service, "info")
		boot.Error("config", zap.Error(err))
		_ = boot.Sync()
		os.Exit(1)
	}

	log := kit.NewLogger(service, cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	operators := auth.NewMemStore()
	if _, err := operators.Create(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, auth.RoleAdmin); err != nil {
		log.Fatal("admin bootstrap", zap.Error(err))
	}

	store := catalog.NewMemStore()
	if cfg.Catalog.Seed {
		n, err := catalog.Seed(ctx, store, catalog.DefaultProducts)
		if err != nil {
			log.Fatal("catalog seed", zap.Error(err))
		}
		log.Info("catalog seeded", zap.Int("products", n))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := catalog.NewHandler(&catalog.Server{Store: store, Log: log}, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
		Auth: &auth.Server{
			Log:              log,
			Store:            operators,
			JWT:              auth.NewTokenMaker(cfg.Auth.JWTSecret),
			TokenTTL:         cfg.Auth.TokenTTL,
			LoginLimitPerMin: cfg.Auth.LoginLimitPerMin,
		},
	})

	if err := kit.RunHTTPServer(":"+cfg.Server.Port, h, log, cfg.Server.ShutdownTimeout); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
