package feed

import (
	"github.com/blessnhq/blessn/internal/feed/repository"
	"github.com/blessnhq/blessn/internal/feed/service"
	"go.uber.org/fx"
)

var Module = fx.Module("feed.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
