package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"lokalBack/internal/config"
	"lokalBack/internal/directory"
	"lokalBack/internal/geo"
	"lokalBack/internal/handlers"
	"lokalBack/internal/repositories"
	"lokalBack/internal/services"
	"lokalBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	tokens   *utils.Manager

	userRepo  *repositories.UserRepository
	clickRepo *repositories.ClickRepository

	businessHandler *handlers.BusinessHandler
	reviewHandler   *handlers.ReviewHandler
	favoriteHandler *handlers.FavoriteHandler
	categoryHandler *handlers.CategoryHandler
	clickHandler    *handlers.ClickHandler
	userHandler     *handlers.UserHandler
	geoHandler      *handlers.GeoHandler
	fcmHandler      *handlers.FCMHandler

	favoritesHub *FavoritesHub
}

func initializeApp(db *sql.DB, rdb *redis.Client, fcmClient *messaging.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		errorLog.Fatal("JWT_SECRET is not set")
	}
	tokens, err := utils.NewManager(jwtSecret)
	if err != nil {
		errorLog.Fatal(err)
	}

	// Repositories
	businessRepo := repositories.BusinessRepository{DB: db}
	reviewRepo := repositories.ReviewRepository{DB: db}
	favoriteRepo := repositories.FavoriteRepository{DB: db}
	categoryRepo := repositories.CategoryRepository{DB: db}
	clickRepo := repositories.ClickRepository{DB: db}
	userRepo := repositories.UserRepository{DB: db}

	// Shared in-memory listing snapshot and geocoding chain
	snapshot := directory.NewSnapshot()
	geocoder := geo.NewNominatimClient(&http.Client{}, cfg.Geocode.BaseURL, cfg.Geocode.UserAgent, cfg.Geocode.Country)
	coordCache := geo.NewCoordinateCache(rdb)

	// Websocket hub for favorites change events
	favoritesHub := NewFavoritesHub(errorLog)

	// Services
	businessService := &services.BusinessService{BusinessRepo: &businessRepo, Snapshot: snapshot, CoordCache: coordCache}
	reviewService := &services.ReviewService{ReviewsRepo: &reviewRepo, BusinessRepo: &businessRepo}
	favoriteService := &services.FavoriteService{FavoriteRepo: &favoriteRepo, Publisher: favoritesHub}
	categoryService := &services.CategoryService{CategoryRepo: &categoryRepo}
	clickService := &services.ClickService{ClickRepo: &clickRepo, BusinessRepo: &businessRepo}
	userService := &services.UserService{UserRepo: &userRepo, Tokens: tokens}
	resolverService := services.NewResolverService(snapshot, geocoder, coordCache, errorLog)

	// Handlers
	fcmHandler := handlers.NewFCMHandler(fcmClient, db)
	businessHandler := &handlers.BusinessHandler{Service: businessService, FCM: fcmHandler}
	reviewHandler := &handlers.ReviewHandler{Service: reviewService}
	favoriteHandler := &handlers.FavoriteHandler{Service: favoriteService}
	categoryHandler := &handlers.CategoryHandler{Service: categoryService}
	clickHandler := &handlers.ClickHandler{Service: clickService}
	userHandler := &handlers.UserHandler{Service: userService}
	geoHandler := &handlers.GeoHandler{Business: businessService, Resolver: resolverService}

	return &application{
		errorLog:        errorLog,
		infoLog:         infoLog,
		db:              db,
		tokens:          tokens,
		userRepo:        &userRepo,
		clickRepo:       &clickRepo,
		businessHandler: businessHandler,
		reviewHandler:   reviewHandler,
		favoriteHandler: favoriteHandler,
		categoryHandler: categoryHandler,
		clickHandler:    clickHandler,
		userHandler:     userHandler,
		geoHandler:      geoHandler,
		fcmHandler:      fcmHandler,
		favoritesHub:    favoritesHub,
	}
}
