package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stayhub/internal/app/commands"
	bookingapp "stayhub/internal/app/handlers/booking"
	listingapp "stayhub/internal/app/handlers/listings"
	reviewapp "stayhub/internal/app/handlers/reviews"
	"stayhub/internal/app/middleware"
	"stayhub/internal/app/publish"
	"stayhub/internal/app/queries"
	authsvc "stayhub/internal/app/services/auth"
	"stayhub/internal/app/uow"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/broker/kafka"
	"stayhub/internal/infra/config"
	mongodb "stayhub/internal/infra/db/mongo"
	ginserver "stayhub/internal/infra/http/gin"
	"stayhub/internal/infra/obs"
	"stayhub/internal/infra/security"
	"stayhub/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	store, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer store.close(logger)

	publisher, closer, err := buildPublisher(cfg, logger)
	if err != nil {
		logger.Error("kafka producer init failed", "error", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer()
	}

	authService := &authsvc.Service{
		Users:     store.users,
		Passwords: security.BcryptHasher{},
		Tokens: security.JWTManager{
			Secret:     []byte(cfg.JWTSecret),
			Issuer:     cfg.JWTIssuer,
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
		},
		Logger: logger,
	}
	cookies := ginserver.Cookies{
		Secure:     cfg.SecureCookies,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}

	commandBus, queryBus := buildBuses(store.factory, publisher, logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: store.ready}, ginserver.Handlers{
		Auth:           ginserver.AuthHandler{Service: authService, Cookies: cookies, Logger: logger},
		Listing:        ginserver.ListingHandler{Commands: commandBus, Queries: queryBus, Logger: logger},
		Booking:        ginserver.BookingHandler{Commands: commandBus, Queries: queryBus, Logger: logger},
		Review:         ginserver.ReviewHandler{Commands: commandBus, Queries: queryBus, Logger: logger},
		AuthMiddleware: ginserver.AuthMiddleware{Service: authService, Cookies: cookies, Logger: logger}.Handle,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type storage struct {
	factory uow.Factory
	users   domainuser.Repository
	ready   func() error
	client  *mongodb.Client
}

func (s storage) close(logger *slog.Logger) {
	if s.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Close(ctx); err != nil {
		logger.Warn("mongo disconnect failed", "error", err)
	}
}

func buildStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage, error) {
	if cfg.StorageMode == "memory" {
		factory := memory.NewFactory()
		logger.Info("using in-memory storage")
		return storage{factory: factory, users: factory.UsersRepo, ready: func() error { return nil }}, nil
	}
	client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return storage{}, err
	}
	if err := client.EnsureIndexes(ctx); err != nil {
		return storage{}, err
	}
	return storage{
		factory: mongodb.Factory{DB: client.DB},
		users:   mongodb.NewUserRepository(client.DB),
		ready: func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		},
		client: client,
	}, nil
}

func buildPublisher(cfg config.Config, logger *slog.Logger) (publish.Publisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka brokers not configured, events stay local")
		return nil, nil, nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicPrefix, nil)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", "error", err)
		}
	}
	return producer, closer, nil
}

func buildBuses(factory uow.Factory, publisher publish.Publisher, logger *slog.Logger) (commands.Bus, queries.Bus) {
	commandBus := commands.NewInMemoryBus()
	queryBus := queries.NewInMemoryBus()

	commands.RegisterHandler(commandBus, listingapp.CreateListingCommand{}.Key(), &listingapp.CreateListingHandler{UoWFactory: factory, Publisher: publisher, Logger: logger})
	(&listingapp.UpdateListingHandler{UoWFactory: factory, Publisher: publisher, Logger: logger}).Register(commandBus)
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingCommand{}.Key(), &bookingapp.RequestBookingHandler{UoWFactory: factory, Publisher: publisher, Logger: logger})
	(&bookingapp.TransitionBookingHandler{UoWFactory: factory, Publisher: publisher, Logger: logger}).Register(commandBus)
	commands.RegisterHandler(commandBus, reviewapp.SubmitReviewCommand{}.Key(), &reviewapp.SubmitReviewHandler{UoWFactory: factory, Publisher: publisher, Logger: logger})
	commands.RegisterHandler(commandBus, reviewapp.DeleteReviewCommand{}.Key(), &reviewapp.DeleteReviewHandler{UoWFactory: factory, Publisher: publisher, Logger: logger})

	queries.RegisterHandler(queryBus, listingapp.GetListingQuery{}.Key(), &listingapp.GetListingHandler{UoWFactory: factory, Logger: logger})
	queries.RegisterHandler(queryBus, listingapp.SearchListingsQuery{}.Key(), &listingapp.SearchListingsHandler{UoWFactory: factory, Logger: logger})
	queries.RegisterHandler(queryBus, listingapp.ListOwnerListingsQuery{}.Key(), &listingapp.OwnerListingsHandler{UoWFactory: factory})
	(&listingapp.ReservedHandler{UoWFactory: factory}).Register(queryBus)
	(&listingapp.HistoryHandler{UoWFactory: factory}).Register(queryBus)
	(&bookingapp.GuestBookingsHandler{UoWFactory: factory}).Register(queryBus)
	(&bookingapp.HostBookingsHandler{UoWFactory: factory}).Register(queryBus)
	(&reviewapp.ListReviewsHandler{UoWFactory: factory}).Register(queryBus)

	return middleware.ChainCommands(commandBus, middleware.Logging(logger)),
		middleware.ChainQueries(queryBus, middleware.QueryLogging(logger))
}
