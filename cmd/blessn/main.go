package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/config"
	"github.com/blessnhq/blessn/internal/migration"
	"github.com/blessnhq/blessn/internal/observability"
	"github.com/blessnhq/blessn/internal/server"
	"github.com/blessnhq/blessn/pkg/db"
	"github.com/blessnhq/blessn/pkg/log"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)

	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
