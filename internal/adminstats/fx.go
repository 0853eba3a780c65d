package adminstats

import (
	"github.com/blessnhq/blessn/internal/adminstats/service"
	"go.uber.org/fx"
)

var Module = fx.Module("adminstats.service",
	fx.Provide(service.New),
)
