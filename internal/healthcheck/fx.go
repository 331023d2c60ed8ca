package healthcheck

import (
	"github.com/smallbiznis/customdelivery/internal/healthcheck/service"
	"go.uber.org/fx"
)

var Module = fx.Module("healthcheck.service",
	fx.Provide(service.New),
)
