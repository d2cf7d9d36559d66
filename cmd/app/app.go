package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gameroom/gameroom-api/internal/api"
	"github.com/gameroom/gameroom-api/internal/config"
	"github.com/gameroom/gameroom-api/internal/db"
	"github.com/gameroom/gameroom-api/internal/logger"
	"github.com/gameroom/gameroom-api/internal/repository/dao"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	ctx := context.Background()

	if conf.API.Environment == "development" {
		if err = dao.Seed(ctx, postgresDB); err != nil {
			return fmt.Errorf("failed to seed demo data -> %w", err)
		}
	}

	s := api.NewServer(conf, postgresDB)

	if err = s.Availability.Run(ctx); err != nil {
		return fmt.Errorf("failed to start availability tracking -> %w", err)
	}
	defer s.Availability.Close()

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
