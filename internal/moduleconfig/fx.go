package moduleconfig

import (
	"github.com/smallbiznis/customdelivery/internal/config"
	"github.com/smallbiznis/customdelivery/internal/moduleconfig/repository"
	"github.com/smallbiznis/customdelivery/internal/moduleconfig/service"
	"go.uber.org/fx"
)

var Module = fx.Module("moduleconfig.service",
	fx.Provide(repository.Provide),
	fx.Provide(func(h *config.DeliveryConfigHolder) service.DefaultsSource { return h }),
	fx.Provide(service.New),
)
