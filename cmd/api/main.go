package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/smartbudget/api/internal/application/backup"
	"github.com/smartbudget/api/internal/application/bills"
	"github.com/smartbudget/api/internal/application/budget"
	"github.com/smartbudget/api/internal/application/otp"
	"github.com/smartbudget/api/internal/application/user"
	"github.com/smartbudget/api/internal/config"
	"github.com/smartbudget/api/internal/infrastructure/dynamo"
	s3infra "github.com/smartbudget/api/internal/infrastructure/s3"
	"github.com/smartbudget/api/internal/infrastructure/smtp"
	"github.com/smartbudget/api/internal/schedule"
	transporthttp "github.com/smartbudget/api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	otpRepo := dynamo.NewOTPRepo(dynamoClient, cfg.DynamoTables.OTPStore)
	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	budgetRepo := dynamo.NewBudgetRepo(dynamoClient, cfg.DynamoTables.BudgetData)
	billsRepo := dynamo.NewBillsRepo(dynamoClient, cfg.DynamoTables.Bills)

	mailer := smtp.NewMailer(cfg)

	userSvc := user.NewService(userRepo)
	otpSvc := otp.NewService(otpRepo, userSvc, mailer, cfg.OTPTTL)
	budgetSvc := budget.NewService(budgetRepo)
	billsSvc := bills.NewService(billsRepo)

	sched := schedule.New()
	if err := sched.AddJob(schedule.JobFunc("otp-sweep", func(ctx context.Context) error {
		_, err := otpSvc.SweepExpired(ctx)
		return err
	}), cfg.SweepSchedule); err != nil {
		log.Fatalf("schedule otp sweep: %v", err)
	}

	// Snapshot job is optional — skipped when no bucket is configured.
	if cfg.BackupBucket != "" {
		s3Store := s3infra.NewStore(s3infra.NewClient(cfg), cfg.BackupBucket)
		backupSvc := backup.NewService(userRepo, budgetRepo, billsRepo, s3Store)
		if err := sched.AddJob(schedule.JobFunc("snapshot", backupSvc.Run), cfg.BackupSchedule); err != nil {
			log.Fatalf("schedule snapshot: %v", err)
		}
	} else {
		log.Println("WARN: BACKUP_BUCKET not set, snapshots disabled")
	}
	sched.Start(context.Background())

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		OTPService:    otpSvc,
		BudgetService: budgetSvc,
		BillsService:  billsSvc,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	sched.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
