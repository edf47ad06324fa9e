package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/lendfast/loan-ledger/internal/config"
	"github.com/lendfast/loan-ledger/internal/repository"
	"github.com/lendfast/loan-ledger/internal/service"
)

func main() {
	log.Println("Starting ledger scheduler...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	customerRepo := repository.NewCustomerRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// The report only reads; no redis cache needed here.
	ledgerService := service.NewLedgerService(customerRepo, loanRepo, paymentRepo, nil, cfg)

	c := cron.New(cron.WithSeconds())

	_, err = c.AddFunc(cfg.Scheduler.SettlementSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		log.Println("Running settlement report...")
		settled, err := ledgerService.SettlementReport(ctx)
		if err != nil {
			log.Printf("Settlement report failed: %v", err)
			return
		}
		log.Printf("Settlement report done: %d active loan(s) fully repaid", settled)
	})
	if err != nil {
		log.Fatalf("Error scheduling settlement report: %v", err)
	}

	c.Start()
	log.Println("Scheduler started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Println("Scheduler stopped")
}
