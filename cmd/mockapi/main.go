// Command mockapi serves a fake backend for local development of the TUI.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/mockapi"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:5000", "listen address")
	days := flag.Int("days", 45, "days before the mock token expires")
	invalid := flag.Bool("invalid-token", false, "report the token as invalid")
	vercel := flag.Bool("vercel", false, "answer forced renewals with manual instructions")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	opts := []mockapi.Option{mockapi.WithDaysRemaining(*days)}
	if *invalid {
		opts = append(opts, mockapi.WithInvalidToken())
	}
	if *vercel {
		opts = append(opts, mockapi.WithVercel())
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Mount("/", mockapi.New(opts...).Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("mock backend listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
