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

	"estate-api/config"
	"estate-api/consumers"
	"estate-api/controllers"
	"estate-api/publishers"
	"estate-api/repositories"
	"estate-api/routes"
	"estate-api/services"
	"estate-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// listingsExchange es el exchange fanout de eventos de publicaciones
const listingsExchange = "listings_events"

func main() {
	// ============================================
	// 1. CONFIGURACIÓN
	// ============================================
	cfg := config.LoadConfig()
	instanceID := uuid.NewString()

	log.Println("🔧 Configuración cargada:")
	log.Printf("   - Port: %s", cfg.Port)
	log.Printf("   - Environment: %s", cfg.Environment)
	log.Printf("   - Store: %s", cfg.StoreDriver)
	log.Printf("   - Instance: %s", instanceID)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// 2. CONECTAR A LA BASE (Mongo o MySQL)
	// ============================================
	ctx := context.Background()
	userRepo, listingRepo, closeStore := openStore(ctx, cfg)
	defer closeStore()

	// ============================================
	// 3. CACHÉ Y MENSAJERÍA
	// ============================================
	cacheRepo := repositories.NewCacheRepository(cfg.MemcachedHost, cfg.CacheTTL)

	var publisher publishers.ListingPublisher = publishers.NoopPublisher{}
	var consumer *consumers.RabbitMQConsumer
	if cfg.RabbitMQURL != "" {
		rabbitPublisher, err := publishers.NewRabbitMQPublisher(cfg.RabbitMQURL, listingsExchange, instanceID)
		if err != nil {
			log.Fatalf("❌ Failed to create RabbitMQ publisher: %v", err)
		}
		publisher = rabbitPublisher

		consumer, err = consumers.NewRabbitMQConsumer(cfg.RabbitMQURL, listingsExchange, instanceID, cacheRepo)
		if err != nil {
			log.Fatalf("❌ Failed to create RabbitMQ consumer: %v", err)
		}
		if err := consumer.Start(); err != nil {
			log.Fatalf("❌ Failed to start RabbitMQ consumer: %v", err)
		}
		log.Println("✅ RabbitMQ publisher y consumer iniciados")
	} else {
		log.Println("⚠️  RABBITMQ_URL vacío: eventos deshabilitados")
	}

	// ============================================
	// 4. INICIALIZAR CAPAS
	// ============================================
	log.Println("🏗️  Inicializando capas...")

	tokens := utils.NewTokenManager(cfg.JWTSecret)

	listingService := services.NewListingService(listingRepo, cacheRepo, publisher)
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo, listingService)

	router := routes.SetupRouter(routes.Controllers{
		Auth:    controllers.NewAuthController(authService, cfg.IsProduction()),
		User:    controllers.NewUserController(userService, cfg.IsProduction()),
		Listing: controllers.NewListingController(listingService),
	}, tokens, cfg.CORSOrigin)

	log.Println("✅ Capas inicializadas")

	// ============================================
	// 5. ARRANCAR EL SERVIDOR
	// ============================================
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Estate API corriendo en puerto %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	// ============================================
	// 6. GRACEFUL SHUTDOWN
	// ============================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Estate API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Printf("Error closing RabbitMQ consumer: %v", err)
		}
	}
	if err := publisher.Close(); err != nil {
		log.Printf("Error closing RabbitMQ publisher: %v", err)
	}

	log.Println("Estate API shut down complete")
}

// openStore abre el almacenamiento elegido en STORE_DRIVER
// Devuelve los repositorios y una función para cerrar la conexión
func openStore(ctx context.Context, cfg *config.Config) (repositories.UserRepository, repositories.ListingRepository, func()) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		log.Println("📡 Conectando a MongoDB...")
		client, err := repositories.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
		}
		db := client.Database(cfg.MongoDB)

		userRepo, err := repositories.NewUserMongoRepository(ctx, db)
		if err != nil {
			log.Fatalf("❌ Failed to init users collection: %v", err)
		}
		listingRepo, err := repositories.NewListingMongoRepository(ctx, db)
		if err != nil {
			log.Fatalf("❌ Failed to init listings collection: %v", err)
		}

		return userRepo, listingRepo, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("Error disconnecting from MongoDB: %v", err)
			}
		}

	case config.StoreMySQL:
		log.Println("📡 Conectando a MySQL...")
		db, err := repositories.NewMySQLDB(cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}

		return repositories.NewUserGormRepository(db), repositories.NewListingGormRepository(db), func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}

	default:
		log.Fatalf("❌ Unknown STORE_DRIVER %q (use %q or %q)", cfg.StoreDriver, config.StoreMongo, config.StoreMySQL)
		return nil, nil, nil
	}
}
