package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"filmorate-service/internal/config"
	"filmorate-service/internal/database"
	"filmorate-service/internal/handler"
	"filmorate-service/internal/service"
	"filmorate-service/internal/storage/postgres"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
		rdb = nil
	}

	// Storage layer
	userStorage := postgres.NewUserStorage(db)
	friendshipStorage := postgres.NewFriendshipStorage(db)
	filmStorage := postgres.NewFilmStorage(db)
	genreStorage := postgres.NewGenreStorage(db)
	mpaStorage := postgres.NewMpaStorage(db)
	directorStorage := postgres.NewDirectorStorage(db)
	reviewStorage := postgres.NewReviewStorage(db)
	feedStorage := postgres.NewFeedStorage(db)

	// Service layer
	feedSvc := service.NewFeedService(feedStorage)
	userSvc := service.NewUserService(userStorage, friendshipStorage, filmStorage, feedSvc)
	filmSvc := service.NewFilmService(filmStorage, userStorage, genreStorage, mpaStorage, directorStorage, feedSvc, rdb)
	reviewSvc := service.NewReviewService(reviewStorage, userStorage, filmStorage, feedSvc)
	directorSvc := service.NewDirectorService(directorStorage)
	genreSvc := service.NewGenreService(genreStorage)
	mpaSvc := service.NewMpaService(mpaStorage)

	// Handlers
	userHandler := handler.NewUserHandler(userSvc, filmSvc)
	filmHandler := handler.NewFilmHandler(filmSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	directorHandler := handler.NewDirectorHandler(directorSvc)
	referenceHandler := handler.NewReferenceHandler(genreSvc, mpaSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Filmorate Service",
		ServerHeader: "Filmorate-Service",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", filmHandler.Health)

	// Users, friendships, feed, recommendations
	users := app.Group("/users")
	users.Get("/", userHandler.ListUsers)
	users.Post("/", userHandler.CreateUser)
	users.Put("/", userHandler.UpdateUser)
	users.Get("/:id", userHandler.GetUser)
	users.Delete("/:id", userHandler.DeleteUser)
	users.Put("/:id/friends/:friendId", userHandler.AddFriend)
	users.Delete("/:id/friends/:friendId", userHandler.RemoveFriend)
	users.Get("/:id/friends", userHandler.ListFriends)
	users.Get("/:id/friends/common/:otherId", userHandler.CommonFriends)
	users.Get("/:id/feed", userHandler.Feed)
	users.Get("/:id/recommendations", userHandler.Recommendations)

	// Films, likes, queries
	films := app.Group("/films")
	films.Get("/", filmHandler.ListFilms)
	films.Post("/", filmHandler.CreateFilm)
	films.Put("/", filmHandler.UpdateFilm)
	films.Get("/popular", filmHandler.Popular)
	films.Get("/common", filmHandler.Common)
	films.Get("/search", filmHandler.Search)
	films.Get("/director/:directorId", filmHandler.ByDirector)
	films.Get("/:id", filmHandler.GetFilm)
	films.Delete("/:id", filmHandler.DeleteFilm)
	films.Put("/:id/like/:userId", filmHandler.Like)
	films.Delete("/:id/like/:userId", filmHandler.Unlike)

	// Reviews and reactions
	reviews := app.Group("/reviews")
	reviews.Get("/", reviewHandler.ListReviews)
	reviews.Post("/", reviewHandler.CreateReview)
	reviews.Put("/", reviewHandler.UpdateReview)
	reviews.Get("/:id", reviewHandler.GetReview)
	reviews.Delete("/:id", reviewHandler.DeleteReview)
	reviews.Put("/:id/like/:userId", reviewHandler.LikeReview)
	reviews.Put("/:id/dislike/:userId", reviewHandler.DislikeReview)
	reviews.Delete("/:id/like/:userId", reviewHandler.RemoveReaction)
	reviews.Delete("/:id/dislike/:userId", reviewHandler.RemoveReaction)

	// Directors
	directors := app.Group("/directors")
	directors.Get("/", directorHandler.ListDirectors)
	directors.Post("/", directorHandler.CreateDirector)
	directors.Put("/", directorHandler.UpdateDirector)
	directors.Get("/:id", directorHandler.GetDirector)
	directors.Delete("/:id", directorHandler.DeleteDirector)

	// Reference data
	app.Get("/genres", referenceHandler.ListGenres)
	app.Get("/genres/:id", referenceHandler.GetGenre)
	app.Get("/mpa", referenceHandler.ListMpa)
	app.Get("/mpa/:id", referenceHandler.GetMpa)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down filmorate service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting filmorate service", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
