package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/auth"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/config"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/notify"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/repository"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/server"
	"github.com/WunderTransportTechnologies/ultimate-todo/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	authSvc := auth.NewService(userRepo, categoryRepo, []byte(cfg.JWTSecret), cfg.TokenTTL)
	todoSvc := service.NewTodoService(todoRepo)
	categorySvc := service.NewCategoryService(categoryRepo)

	if cfg.TelegramToken != "" {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		reminderSvc := service.NewReminderService(todoRepo, categoryRepo)
		digest := notify.NewDigestSender(userRepo, reminderSvc, notifier)

		scheduler := service.NewSchedulerService(time.Local)
		if _, err := scheduler.ScheduleDaily(cfg.DigestTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := digest.SendAll(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("digest: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule digest: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := server.New(authSvc, todoSvc, categorySvc, userRepo, []byte(cfg.JWTSecret))
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(cfg.CORSOrigins),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Ultimate todo API listening on %s", cfg.ListenAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
