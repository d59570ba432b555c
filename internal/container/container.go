package container

import (
	"context"
	"fmt"

	"stockfeed/importer/internal/config"
	"stockfeed/importer/internal/domain"
	"stockfeed/importer/internal/feed"
	"stockfeed/importer/internal/repository"
	"stockfeed/importer/internal/service"
	"stockfeed/importer/internal/state"
	"stockfeed/importer/internal/storage"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config       *config.Config
	Profile      domain.SupplierProfile
	Fetcher      feed.Fetcher
	Repository   repository.ProductRepository
	Uploader     storage.Uploader
	StateManager state.RunStateManager

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	profile := domain.SupplierProfile{
		Name:            cfg.Supplier.Name,
		SKUPrefix:       cfg.Supplier.GetSKUPrefix(),
		DiscountPercent: cfg.Supplier.DiscountPercent,
		FeedFile:        cfg.Feed.File,
		ProductTable:    cfg.Supplier.GetProductTable(),
		StorePath:       cfg.Store.BasePath,
	}
	container.Profile = profile

	fetcher, err := feed.NewFetcher(cfg.Feed)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize feed fetcher: %w", err)
	}
	container.Fetcher = fetcher

	poolConfig, err := pgxpool.ParseConfig(
		fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
		))
	if err != nil {
		return nil, err
	}
	// Price columns are shopspring decimals end to end.
	poolConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	container.db = db

	productRepo := repository.NewProductRepository(db)
	if err := productRepo.EnsureSchema(ctx, profile.ProductTable); err != nil {
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}
	container.Repository = productRepo

	uploader, err := storage.NewUploader(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object store uploader: %w", err)
	}
	container.Uploader = uploader

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		container.StateManager = state.NewRedisRunStateManager(rdb)
	} else {
		container.StateManager = state.NewNoopRunStateManager()
	}

	container.Service = service.NewService(
		profile,
		fetcher,
		productRepo,
		uploader,
		container.StateManager,
		cfg.Export.Dir,
	)

	return container, nil
}

// Run executes one full import for the configured supplier
func (c *Container) Run(ctx context.Context) error {
	return c.Service.Run(ctx)
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		c.redis.Close()
	}

	log.Info("Container shut down successfully")
	return nil
}
