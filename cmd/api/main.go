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

	"github.com/classroom-api/internal/config"
	"github.com/classroom-api/internal/infrastructure/dynamo"
	"github.com/classroom-api/internal/infrastructure/smtp"
	"github.com/classroom-api/internal/infrastructure/token"
	transporthttp "github.com/classroom-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	tokenProvider, err := token.NewProvider(cfg)
	if err != nil {
		log.Fatalf("token provider: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:          dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		AdministratorRepo: dynamo.NewMembershipRepo(dynamoClient, cfg.DynamoTables.Administrators),
		ProfessorRepo:     dynamo.NewMembershipRepo(dynamoClient, cfg.DynamoTables.Professors),
		StudentRepo:       dynamo.NewMembershipRepo(dynamoClient, cfg.DynamoTables.Students),
		ConsumedTokenRepo: dynamo.NewConsumedTokenRepo(dynamoClient, cfg.DynamoTables.ConsumedResetTokens),
		Mailer:            smtp.NewMailer(cfg),
		TokenProvider:     tokenProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

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
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
