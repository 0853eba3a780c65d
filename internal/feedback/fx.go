package feedback

import (
	"github.com/blessnhq/blessn/internal/feedback/repository"
	"github.com/blessnhq/blessn/internal/feedback/service"
	"go.uber.org/fx"
)

var Module = fx.Module("feedback.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
