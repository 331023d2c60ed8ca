package rate

import (
	"github.com/smallbiznis/customdelivery/internal/rate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rate.resolver",
	fx.Provide(service.New),
)
