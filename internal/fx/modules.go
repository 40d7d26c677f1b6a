package fx

import (
	"raid-progress/internal/api"
	"raid-progress/internal/config"
	"raid-progress/internal/logger"
	"raid-progress/internal/server"
	"raid-progress/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// api clients, bound to the interfaces the pipeline consumes
	fx.Provide(api.NewRaiderIOClient),
	fx.Provide(api.NewWlogsClient),
	fx.Provide(func(c *api.RaiderIOClient) service.RaiderIOAPI { return c }),
	fx.Provide(func(c *api.WlogsClient) service.WlogsAPI { return c }),
	// svc
	fx.Provide(service.NewSeasonService),
	fx.Provide(func(s *service.SeasonService) service.SeasonSource { return s }),
	fx.Provide(service.NewReportService),
	fx.Provide(func(s *service.ReportService) server.ReportAPI { return s }),
	// server
	fx.Provide(server.NewProgressServer),
)
