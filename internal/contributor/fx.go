package contributor

import (
	"github.com/blessnhq/blessn/internal/contributor/repository"
	"github.com/blessnhq/blessn/internal/contributor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contributor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
