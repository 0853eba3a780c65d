package platformfee

import (
	"github.com/blessnhq/blessn/internal/platformfee/repository"
	"github.com/blessnhq/blessn/internal/platformfee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("platformfee.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
