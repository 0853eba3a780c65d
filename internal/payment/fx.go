package payment

import (
	"github.com/blessnhq/blessn/internal/payment/repository"
	"github.com/blessnhq/blessn/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
