package consumer

import (
	"github.com/blessnhq/blessn/internal/consumer/repository"
	"github.com/blessnhq/blessn/internal/consumer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("consumer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
