// @title       SMS Gateway Connector API
// @version     1.0
// @description Forwards SMS requests over the message bus to the SMS gateway service and journals their outcome.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/oggyb/sms-gateway-connector/internal/bus/redisbus"
	"github.com/oggyb/sms-gateway-connector/internal/cache/redis"
	"github.com/oggyb/sms-gateway-connector/internal/config"
	"github.com/oggyb/sms-gateway-connector/internal/connector"
	"github.com/oggyb/sms-gateway-connector/internal/db/gormdb"
	"github.com/oggyb/sms-gateway-connector/internal/handler"
	msgRepo "github.com/oggyb/sms-gateway-connector/internal/repository/gorm/message"
	routes "github.com/oggyb/sms-gateway-connector/internal/router"
	"github.com/oggyb/sms-gateway-connector/internal/server"
	"github.com/oggyb/sms-gateway-connector/internal/service"
)

func main() {
	// Base context for the whole application lifetime.
	rootCtx := context.Background()

	// Load configuration from environment/.env.
	cfg := config.New()

	// One Redis pool backs both the bus and the outcome counters.
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	msgBus := redisbus.New(rdb, redisbus.Options{
		ReplyTTL:     cfg.Bus.ReplyTTL,
		PollInterval: cfg.Bus.PollInterval,
	})
	if err := msgBus.Ping(rootCtx); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	counters := redis.New(rdb)

	// Init DB.
	db, err := gormdb.New(cfg.PostgresDSN(), cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	// Connector and services.
	gateway := connector.New(msgBus, cfg.Gateway.Address)
	log.Printf("[Main] SMS gateway address: %s", gateway.Address())

	msgSvc := service.NewMessageService(
		msgRepo.NewRepository(db),
		gateway,
		counters,
		service.DefaultPersistTimeout,
	)

	deps := routes.AppDeps{
		Home:    handler.NewHomeHandler(msgBus),
		Message: handler.NewMessageHandler(msgSvc, cfg.API.SendTimeout),
	}

	addr := fmt.Sprintf("%s:%s", cfg.API.Host, cfg.API.Port)
	srv := server.New(addr, deps, cfg.API.SendTimeout+5*time.Second)

	// Create a context that is cancelled on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("HTTP server listening on %s", addr)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Block until we receive a shutdown signal.
	<-ctx.Done()
	log.Println("[Main] Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("[Main] Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Main] HTTP server graceful shutdown failed: %v", err)
	} else {
		log.Println("[Main] HTTP server stopped.")
	}

	// Requests still waiting on the gateway are abandoned here.
	if err := msgBus.Close(); err != nil {
		log.Printf("[Main] Bus close failed: %v", err)
	}

	log.Println("[Main] Shutdown complete.")
}
