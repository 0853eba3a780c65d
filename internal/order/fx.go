package order

import (
	"github.com/blessnhq/blessn/internal/order/repository"
	"github.com/blessnhq/blessn/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
