package board

import (
	"context"

	"github.com/CharvitZalavadiya/GormishRestaurant/internal/config"
	"github.com/CharvitZalavadiya/GormishRestaurant/internal/orderapi"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"board",
		fx.Provide(func(client *orderapi.Client, cfg config.Config, logger *zap.Logger) *Board {
			return NewBoard(client, cfg, logger)
		}),
		fx.Invoke(func(lc fx.Lifecycle, b *Board) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					b.Start()
					return nil
				},
				OnStop: func(_ context.Context) error {
					b.Stop()
					return nil
				},
			})
		}),
	)
}
