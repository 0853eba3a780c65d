package user

import (
	"github.com/blessnhq/blessn/internal/user/repository"
	"github.com/blessnhq/blessn/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
