package chat

import (
	"github.com/blessnhq/blessn/internal/chat/repository"
	"github.com/blessnhq/blessn/internal/chat/service"
	"go.uber.org/fx"
)

var Module = fx.Module("chat.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
