//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"chatstore/internal/config"
	attachmentdomain "chatstore/internal/domain/attachment"
	itemdomain "chatstore/internal/domain/item"
	threaddomain "chatstore/internal/domain/thread"
	"chatstore/internal/infrastructure/auth"
	"chatstore/internal/infrastructure/database"
	"chatstore/internal/infrastructure/logger"
	attachmentrepo "chatstore/internal/infrastructure/repository/attachment"
	itemrepo "chatstore/internal/infrastructure/repository/item"
	threadrepo "chatstore/internal/infrastructure/repository/thread"
	"chatstore/internal/interfaces/httpserver"
)

var storeSet = wire.NewSet(
	threadrepo.NewRepository,
	wire.Bind(new(threaddomain.Repository), new(*threadrepo.Repository)),
	threaddomain.NewService,
	itemrepo.NewRepository,
	wire.Bind(new(itemdomain.Repository), new(*itemrepo.Repository)),
	itemdomain.NewService,
	attachmentrepo.NewRepository,
	wire.Bind(new(attachmentdomain.Repository), new(*attachmentrepo.Repository)),
	attachmentdomain.NewService,
)

// BuildApplication assembles the chat store service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		newAuthValidator,
		storeSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}
