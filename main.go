package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fieldops/wa-attendance-bot/internal/biz"
	"github.com/fieldops/wa-attendance-bot/internal/biz/usecase"
	"github.com/fieldops/wa-attendance-bot/internal/conf"
	"github.com/fieldops/wa-attendance-bot/internal/data"
	"github.com/fieldops/wa-attendance-bot/internal/server"
	"github.com/fieldops/wa-attendance-bot/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	repos, err := data.NewRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to open stores: %v", err)
	}
	defer repos.Close()

	summaryUC := usecase.NewSummaryUsecase(repos.Attendance, cfg.Messages)
	composerUC := usecase.NewComposerUsecase(repos.Gateway, cfg.Messages)
	reportUC := usecase.NewReportUsecase(repos.Directory, summaryUC, composerUC, cfg.Messages)
	usecases := &biz.Usecases{
		Summary:  summaryUC,
		Composer: composerUC,
		Report:   reportUC,
	}

	dispatcher := service.NewDispatcher(
		repos.Directory,
		usecases.Report,
		repos.Gateway,
		cfg.Messages,
		cfg.Server.DedupCapacity,
		cfg.Server.MaxWorkers,
	)

	srv := server.NewWebhookServer(cfg.Server.Addr, cfg.WhatsApp.VerifyToken, cfg.WhatsApp.PhoneNumberID, dispatcher)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		if err := srv.Stop(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		dispatcher.Wait()
		repos.Close()
		os.Exit(0)
	}()

	fmt.Println("Starting WhatsApp attendance bot...")
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}
