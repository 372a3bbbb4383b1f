package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymmate/fitness-server/internal/aiclient"
	"gymmate/fitness-server/internal/api"
	"gymmate/fitness-server/internal/config"
	"gymmate/fitness-server/internal/repository/mongo"
	"gymmate/fitness-server/internal/service"
	"gymmate/fitness-server/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting GymMate server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}
	log.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		ensure := func(name string, err error) {
			if err != nil {
				log.WithError(err).Errorf("Failed to ensure %s indexes", name)
			}
		}
		ensure("user", mongo.EnsureUserIndexes(ctx, appDB.Collection("users")))
		ensure("gym", mongo.EnsureGymIndexes(ctx, appDB.Collection("gyms")))
		ensure("exercise", mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises")))
		ensure("entry", mongo.EnsureEntryIndexes(ctx, appDB.Collection("gymentries")))
		ensure("program", mongo.EnsureProgramIndexes(ctx, appDB.Collection("programs")))
		ensure("conversation", mongo.EnsureConversationIndexes(ctx, appDB.Collection("conversations"), appDB.Collection("messages")))
		log.Info("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	gymRepo := mongo.NewMongoGymRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	entryRepo := mongo.NewMongoEntryRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	convRepo := mongo.NewMongoConversationRepository(appDB)

	// --- External AI service client ---
	aiClient := aiclient.New(cfg.AI.BaseURL, cfg.AI.Timeout)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, gymRepo, fileStorage)
	gymService := service.NewGymService(gymRepo)
	exerciseService := service.NewExerciseService(exerciseRepo, fileStorage)
	checkinService := service.NewCheckinService(userRepo, entryRepo)
	programService := service.NewProgramService(userRepo, programRepo, exerciseRepo, aiClient)
	chatService := service.NewChatService(userRepo, programRepo, convRepo, aiClient)
	coachService := service.NewCoachService(userRepo, entryRepo, programRepo)
	messagingService := service.NewMessagingService(userRepo, convRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		userService,
		gymService,
		exerciseService,
		checkinService,
		programService,
		chatService,
		coachService,
		messagingService,
	)

	// The mobile client talks to the API from a different origin.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      corsHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.ServerWriteTimeout(),
		IdleTimeout:  120 * time.Second,
	}

	log.Infof("Server starting on %s", cfg.Server.Address)

	// Listen errors flow back here instead of killing the process inside
	// the goroutine, so the deferred Mongo disconnect still runs.
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Errorf("ListenAndServe error: %v", err)
	case <-quit:
		log.Info("Shutting down server...")

		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Errorf("Server forced to shutdown: %v", err)
		}
	}

	log.Info("Server exiting.")
}
