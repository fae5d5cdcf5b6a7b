package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/merchantkit/commerce-core/app/catalog"
	"github.com/merchantkit/commerce-core/app/currencies"
	"github.com/merchantkit/commerce-core/app/pricing"
	"github.com/merchantkit/commerce-core/app/producttypes"
	"github.com/merchantkit/commerce-core/models"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=commerce port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := migrateAndSeed(db); err != nil {
		zlog.Fatal().Err(err).Msg("failed to migrate database")
	}

	currencyRepo := models.NewCurrenciesRepository(db)
	productRepo := models.NewProductsRepository(db)
	typeRepo := models.NewProductTypesRepository(db)

	ledger := currencies.NewLedger(currencyRepo, zlog.With().Str("component", "ledger").Logger())
	facade := pricing.NewFacade(productRepo, ledger, zlog.With().Str("component", "pricing").Logger())

	currencyHandler := currencies.NewCurrencyHandler(ledger)
	catalogHandler := catalog.NewCatalogHandler(productRepo)
	pricingHandler := pricing.NewPricingHandler(facade)
	typeHandler := producttypes.NewProductTypeHandler(typeRepo)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /currencies", currencyHandler.HandleGetAll)
	mux.HandleFunc("POST /currencies", currencyHandler.HandleSave)
	mux.HandleFunc("DELETE /currencies/{id}", currencyHandler.HandleDelete)
	mux.HandleFunc("GET /currencies/{id}", currencyHandler.HandleGetByID)
	mux.HandleFunc("GET /currencies/convert", currencyHandler.HandleConvert)
	mux.HandleFunc("GET /catalog", catalogHandler.HandleGet)
	mux.HandleFunc("POST /catalog", catalogHandler.HandleCreate)
	mux.HandleFunc("GET /catalog/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("GET /catalog/{id}/variants", catalogHandler.HandleGetVariants)
	mux.HandleFunc("GET /pricing/variants/{id}", pricingHandler.HandleGetQuote)
	mux.HandleFunc("GET /pricing/products/{id}/snapshot", pricingHandler.HandleGetSnapshot)
	mux.HandleFunc("GET /product-types", typeHandler.HandleGetAll)
	mux.HandleFunc("POST /product-types", typeHandler.HandleCreate)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{Addr: ":" + port, Handler: mux}

	go func() {
		zlog.Info().Str("port", port).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("shutdown failed")
	}
}

// migrateAndSeed creates the schema and guarantees a primary currency
// exists from first boot.
func migrateAndSeed(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Currency{}, &models.ProductType{}, &models.Product{}, &models.Variant{},
	); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Currency{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		usd := models.Currency{ISO: "USD", Rate: decimal.NewFromInt(1), IsPrimary: true}
		if err := db.Create(&usd).Error; err != nil {
			return err
		}
	}
	return nil
}
