package notification

import (
	"github.com/blessnhq/blessn/internal/notification/repository"
	"github.com/blessnhq/blessn/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
