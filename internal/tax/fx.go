package tax

import (
	"github.com/smallbiznis/customdelivery/internal/tax/repository"
	"github.com/smallbiznis/customdelivery/internal/tax/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tax.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewCalculator),
	fx.Provide(service.NewService),
)
