package orderapi

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"orderapi",
		fx.Provide(NewClient),
	)
}
