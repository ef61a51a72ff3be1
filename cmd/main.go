package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/annsmirn/negotiation-service/internal/db"
	"github.com/annsmirn/negotiation-service/internal/handlers"
	"github.com/annsmirn/negotiation-service/internal/repository"
	"github.com/annsmirn/negotiation-service/internal/router"
	"github.com/annsmirn/negotiation-service/internal/router/config"
	"github.com/annsmirn/negotiation-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	negotiationRepo := repository.NewPostgresNegotiationRepository(dbPool)
	contractRepo := repository.NewPostgresContractRepository(dbPool)
	userRepo := repository.NewPostgresUserRepository(dbPool)

	negotiationService := services.NewNegotiationService(negotiationRepo, contractRepo, dbPool)
	contractService := services.NewContractService(contractRepo, dbPool)
	userService := services.NewUserService(userRepo, dbPool)

	negotiationHandler := handlers.NewNegotiationHandler(negotiationService, logger, 5*time.Second, dbPool)
	contractHandler := handlers.NewContractHandler(contractService, logger, 5*time.Second, dbPool)
	userHandler := handlers.NewUserHandler(userService, logger, 5*time.Second, dbPool)

	routes := router.InitRoutes(negotiationHandler, contractHandler, userHandler)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
