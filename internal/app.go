package internal

import (
	"context"

	"github.com/CharvitZalavadiya/GormishRestaurant/internal/board"
	"github.com/CharvitZalavadiya/GormishRestaurant/internal/cli"
	"github.com/CharvitZalavadiya/GormishRestaurant/internal/config"
	"github.com/CharvitZalavadiya/GormishRestaurant/internal/logging"
	"github.com/CharvitZalavadiya/GormishRestaurant/internal/orderapi"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Run() error {
	var runner *cli.Runner

	app := fx.New(
		logger.Module(),
		logger.WithFxDefaultLogger(),
		config.Module(),
		logging.Module(),
		orderapi.Module(),
		board.Module(),
		cli.Module(),
		fx.Populate(&runner),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	return runner.Execute()
}
