package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"kudata/internal/bulk"
	"kudata/internal/core/config"
	"kudata/internal/core/database"
	"kudata/internal/core/logger"
	"kudata/internal/seed"
	"kudata/internal/store"
	"kudata/internal/synth"
)

const defaultSeed = 42

func main() {
	cfgPath := flag.String("config", "", "config file path")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(*cfgPath)

	log, sync := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer sync()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(store.All()...); err != nil {
			log.Fatal("auto migrate", zap.Error(err))
		}
	}

	orders, err := seed.LoadOrders(cfg.Seed.OrdersCSV)
	if err != nil {
		log.Fatal("load sample orders", zap.String("path", cfg.Seed.OrdersCSV), zap.Error(err))
	}
	details, err := seed.LoadOrderDetails(cfg.Seed.OrderDetailsCSV)
	if err != nil {
		log.Fatal("load sample order details", zap.String("path", cfg.Seed.OrderDetailsCSV), zap.Error(err))
	}
	log.Info("sample files loaded",
		zap.Int("orders", len(orders)),
		zap.Int("order_details", len(details)))

	seedVal := cfg.Generate.Seed
	if seedVal == 0 {
		seedVal = defaultSeed
	}
	vol := synth.Volumes{
		Users:         cfg.Generate.Users,
		Locations:     cfg.Generate.Locations,
		Orders:        cfg.Generate.Orders,
		Products:      cfg.Generate.Products,
		Categories:    cfg.Generate.Categories,
		CategoryLinks: cfg.Generate.CategoryLinks,
		Details:       cfg.Generate.OrderDetails,
	}
	ds := synth.New(seedVal, vol, log).Build(orders, details)

	ctx := context.Background()
	loader := bulk.NewLoader(db, log, cfg.Generate.BatchSize)
	if err := loader.Load(ctx, synth.Plan(ds)); err != nil {
		log.Fatal("bulk load", zap.Error(err))
	}
	if err := loader.SyncSequences(ctx, synth.Sequences()); err != nil {
		log.Fatal("sync sequences", zap.Error(err))
	}
	log.Info("all data inserted")
}
