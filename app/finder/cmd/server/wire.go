//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final binary.

package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/iWorld-y/monitor_finder/app/finder/internal/conf"
	"github.com/iWorld-y/monitor_finder/app/finder/internal/server"
)

// initApp init kratos application.
func initApp(*conf.Server, *conf.Data, *conf.Finder, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		server.ProviderSet,
		newApp,
	))
}
