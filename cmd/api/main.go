package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/tilapiasuite/tilapia/internal/account"
	accountStore "github.com/tilapiasuite/tilapia/internal/account/store"
	"github.com/tilapiasuite/tilapia/internal/asset"
	assetStore "github.com/tilapiasuite/tilapia/internal/asset/store"
	"github.com/tilapiasuite/tilapia/internal/config"
	"github.com/tilapiasuite/tilapia/internal/database"
	tilapiaHttp "github.com/tilapiasuite/tilapia/internal/http"
	accountHandler "github.com/tilapiasuite/tilapia/internal/http/account"
	assetHandler "github.com/tilapiasuite/tilapia/internal/http/asset"
	importHandler "github.com/tilapiasuite/tilapia/internal/http/importcsv"
	inventoryHandler "github.com/tilapiasuite/tilapia/internal/http/inventory"
	journalHandler "github.com/tilapiasuite/tilapia/internal/http/journal"
	reportHandler "github.com/tilapiasuite/tilapia/internal/http/report"
	"github.com/tilapiasuite/tilapia/internal/importer"
	"github.com/tilapiasuite/tilapia/internal/inventory"
	inventoryStore "github.com/tilapiasuite/tilapia/internal/inventory/store"
	"github.com/tilapiasuite/tilapia/internal/journal"
	journalStore "github.com/tilapiasuite/tilapia/internal/journal/store"
	"github.com/tilapiasuite/tilapia/internal/ledger"
	"github.com/tilapiasuite/tilapia/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		accountService = account.NewService(accountStore.New(db))
		journalService = journal.NewService(journalStore.New(db), accountService)
		ledgerService  = ledger.NewService(accountService, journalService, journalService)
		reportService  = report.NewService(ledgerService, journalService, accountService, report.Config{
			CashAccountCode:     cfg.Accounting.CashAccountCode,
			DrawingsAccountCode: cfg.Accounting.DrawingsAccountCode,
		})
		inventoryService = inventory.NewService(inventoryStore.New(db))
		assetService     = asset.NewService(assetStore.New(db), journalService, journalService)
		importService    = importer.NewService(journalService, importer.Config{
			CashAccountCode:    cfg.Accounting.CashAccountCode,
			SalesAccountCode:   cfg.Accounting.ImportSalesAccountCode,
			ExpenseAccountCode: cfg.Accounting.ImportExpenseAccountCode,
		})
	)

	var (
		accountH   = accountHandler.NewHandler(accountService)
		journalH   = journalHandler.NewHandler(journalService)
		reportH    = reportHandler.NewHandler(reportService, ledgerService)
		inventoryH = inventoryHandler.NewHandler(inventoryService)
		assetH     = assetHandler.NewHandler(assetService)
		importH    = importHandler.NewHandler(importService)
	)

	router := tilapiaHttp.New([]byte(cfg.JWT.Secret), accountH, journalH, reportH, inventoryH, assetH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
