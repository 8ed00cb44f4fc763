package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarianoPoeta/magnus/internal/budget"
	budgetrepo "github.com/MarianoPoeta/magnus/internal/budget/repositoryimpl"
	"github.com/MarianoPoeta/magnus/internal/config"
	"github.com/MarianoPoeta/magnus/internal/cooking"
	"github.com/MarianoPoeta/magnus/internal/eventbus"
	"github.com/MarianoPoeta/magnus/internal/notification"
	notificationrepo "github.com/MarianoPoeta/magnus/internal/notification/repositoryimpl"
	"github.com/MarianoPoeta/magnus/internal/pushnotification"
	"github.com/MarianoPoeta/magnus/internal/pushsubscription"
	pushsubrepo "github.com/MarianoPoeta/magnus/internal/pushsubscription/repositoryimpl"
	"github.com/MarianoPoeta/magnus/internal/shopping"
	"github.com/MarianoPoeta/magnus/internal/task"
	taskrepo "github.com/MarianoPoeta/magnus/internal/task/repositoryimpl"
	"github.com/MarianoPoeta/magnus/internal/workflow"
	"github.com/MarianoPoeta/magnus/pkg/clog"
	"github.com/MarianoPoeta/magnus/pkg/storage"

	server "github.com/MarianoPoeta/magnus/internal"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	// Setup logger
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewHTTPTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))

	// Setup storage
	var store storage.Storage
	switch env.StorageEnv.Type {
	case "s3":
		store, err = storage.NewS3Storage(context.Background(), env.StorageEnv.S3Bucket, env.StorageEnv.S3Prefix, env.StorageEnv.S3Region)
		if err != nil {
			slog.Error("failed to create S3 storage", "error", err)
			os.Exit(1)
		}
	default:
		store, err = storage.NewLocalStorage(env.StorageEnv.BaseDir)
		if err != nil {
			slog.Error("failed to create local storage", "error", err)
			os.Exit(1)
		}
	}

	// Setup event bus
	bus := eventbus.New()

	// Setup repositories
	budgetRepo := budgetrepo.NewYAMLRepository(store)
	taskRepo := taskrepo.NewYAMLRepository(store)
	notificationRepo := notificationrepo.NewYAMLRepository(store)
	pushSubRepo := pushsubrepo.NewYAMLRepository(store)

	// Setup workflow: confirmed budgets trigger task generation
	trigger := workflow.NewTrigger(task.NewGenerator())
	runner := workflow.NewRunner(trigger, taskRepo, notificationRepo, bus)

	// Setup servers
	budgetServer := budget.NewServer(budgetRepo, runner.OnBudgetStatusChange)
	taskServer := task.NewServer(taskRepo)
	shoppingServer := shopping.NewServer(budgetRepo, taskRepo)
	cookingServer := cooking.NewServer(budgetRepo, taskRepo)
	notificationServer := notification.NewServer(notificationRepo)

	// Setup push notification
	vapidEnv := config.VAPIDEnvFromEnv(env)
	pushSender := pushnotification.NewSender(vapidEnv, pushSubRepo)
	pushSubscriptionServer := pushsubscription.NewServer(pushSubRepo, vapidEnv)
	pushDispatcher := pushnotification.NewDispatcher(bus, notificationRepo, pushSender)

	srv := server.NewServer(
		config.BaseEnvFromEnv(env),
		budgetServer,
		taskServer,
		shoppingServer,
		cookingServer,
		notificationServer,
		pushSubscriptionServer,
	)

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	go pushDispatcher.Start(ctx)

	go func() {
		if err := srv.ListenAndServe(ctx); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
