package slice

import (
	"github.com/smallbiznis/customdelivery/internal/slice/repository"
	"github.com/smallbiznis/customdelivery/internal/slice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("slice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
