package reference

import (
	"github.com/blessnhq/blessn/internal/reference/repository"
	"github.com/blessnhq/blessn/internal/reference/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reference.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
