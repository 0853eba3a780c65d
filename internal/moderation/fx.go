package moderation

import (
	"github.com/blessnhq/blessn/internal/moderation/repository"
	"github.com/blessnhq/blessn/internal/moderation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("moderation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
