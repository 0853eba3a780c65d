package social

import (
	"github.com/blessnhq/blessn/internal/social/repository"
	"github.com/blessnhq/blessn/internal/social/service"
	"go.uber.org/fx"
)

var Module = fx.Module("social.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
