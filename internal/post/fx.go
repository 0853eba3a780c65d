package post

import (
	"github.com/blessnhq/blessn/internal/post/repository"
	"github.com/blessnhq/blessn/internal/post/service"
	"go.uber.org/fx"
)

var Module = fx.Module("post.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
