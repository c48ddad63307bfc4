package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/monitor_finder/app/finder/internal/biz"
	"github.com/iWorld-y/monitor_finder/app/finder/internal/data"
	"github.com/iWorld-y/monitor_finder/app/finder/internal/service"
)

// ProviderSet 是 finder 服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewFinderEngine,

	// Data providers
	data.NewData,
	data.NewSessionRepo,

	// UseCase providers
	biz.NewFinderUseCase,

	// Service providers
	service.NewFinderService,
)
