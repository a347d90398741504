package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"groomify-backend/app/controller"
	"groomify-backend/app/router"
	"groomify-backend/db"
	"groomify-backend/engine"
	"groomify-backend/repository"
	"groomify-backend/service"
)

const defaultDatasetPath = "data/outfits.json"

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection and schema
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	if err := service.EnsureUploadsDir(); err != nil {
		return err
	}

	// Initialize repositories
	suggestionRepo := repository.NewSuggestionRepository()
	feedbackRepo := repository.NewFeedbackRepository()
	wardrobeRepo := repository.NewWardrobeRepository()
	clothingItemRepo := repository.NewClothingItemRepository()
	eventRepo := repository.NewEventRepository()

	// Initialize the recommendation engine. A missing dataset file is
	// not fatal; the engine can be filled later via dataset sync.
	datasetPath := os.Getenv("DATASET_PATH")
	if datasetPath == "" {
		datasetPath = defaultDatasetPath
	}
	dataset, err := engine.LoadDataset(datasetPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	recommendationEngine := engine.NewEngine(dataset, feedbackRepo)

	// The fetcher talks to the recommender over HTTP. By default that
	// is this same process.
	recommenderURL := os.Getenv("RECOMMENDER_URL")
	if recommenderURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		recommenderURL = "http://localhost:" + port
	}
	recommenderClient := service.NewRecommenderClient(recommenderURL)

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = recommenderURL
	}

	// Initialize services
	sessionStore := service.NewSessionStore()
	suggestionService := service.NewSuggestionService(suggestionRepo)
	lookbookService := service.NewLookbookService(suggestionService, baseURL)
	weatherService := service.NewWeatherService(os.Getenv("OPENCAGE_API_KEY"), os.Getenv("OPENWEATHER_API_KEY"))
	avatarService := service.NewAvatarService()

	// Dataset sync needs Drive credentials; without them the admin
	// sync endpoint stays disabled.
	var datasetSyncController *controller.DatasetSyncController
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		driveService, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return err
		}
		syncService := service.NewDatasetSyncService(driveService, recommendationEngine, datasetPath)
		datasetSyncController = controller.NewDatasetSyncController(syncService)
	} else {
		log.Printf("⚠️ GOOGLE_APPLICATION_CREDENTIALS not set, dataset sync disabled")
	}

	// Create controllers
	controllers := &router.Controllers{
		Recommendation: controller.NewRecommendationController(recommendationEngine, feedbackRepo),
		Review:         controller.NewReviewController(recommenderClient, sessionStore, suggestionService),
		Suggestion:     controller.NewSuggestionController(suggestionService, lookbookService),
		Wardrobe:       controller.NewWardrobeController(wardrobeRepo, clothingItemRepo),
		Event:          controller.NewEventController(eventRepo),
		Weather:        controller.NewWeatherController(weatherService),
		Avatar:         controller.NewAvatarController(avatarService),
		DatasetSync:    datasetSyncController,
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
