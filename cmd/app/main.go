package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"go.uber.org/zap"

	"rosterservice/internal/app/config"
	httpapi "rosterservice/internal/app/http"
	"rosterservice/internal/app/http/handler"
	"rosterservice/internal/domain/notify"
	"rosterservice/internal/domain/roster"
	"rosterservice/internal/domain/workflow"
	"rosterservice/internal/infrastructure/async"
	"rosterservice/internal/infrastructure/db/pg"
	"rosterservice/internal/infrastructure/logging"
	"rosterservice/internal/infrastructure/notifier"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open error", zap.Error(err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("db ping error", zap.Error(err))
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("goose dialect error", zap.Error(err))
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatal("goose up error", zap.Error(err))
	}

	uow := pg.NewTxManager(db)

	eventBus := async.NewAsyncEventBus(ctx, cfg.EventWorkers, log)
	defer eventBus.Close()

	teamStore := pg.NewTeamStore(db)
	rosterSvc := roster.NewService(uow, teamStore, eventBus)

	var sink notify.Sink
	if cfg.SlackBotToken != "" {
		sink = notifier.NewSlackSink(cfg.SlackBotToken)
	} else {
		log.Warn("SLACK_BOT_TOKEN not set, roster messages go to the log")
		sink = notifier.NewLogSink(log)
	}

	engine := workflow.NewEngine(ctx, log)
	defer engine.Shutdown()

	for _, def := range []workflow.Definition{
		workflow.Recruit(rosterSvc),
		workflow.Boot(rosterSvc),
		workflow.Roster(rosterSvc, sink),
	} {
		if err := engine.Register(def); err != nil {
			log.Fatal("workflow register error", zap.Error(err))
		}
	}

	h := handler.New(rosterSvc, engine, log)
	router := httpapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
