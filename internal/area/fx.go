package area

import (
	"github.com/smallbiznis/customdelivery/internal/area/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("area.repository",
	fx.Provide(repository.Provide),
)
