package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shrinkarr/shrinkarr/internal/encoder"
	"github.com/shrinkarr/shrinkarr/internal/middleware"
	profilesHttp "github.com/shrinkarr/shrinkarr/internal/profiles/delivery/http"
	profilesRepository "github.com/shrinkarr/shrinkarr/internal/profiles/repository"
	queueHttp "github.com/shrinkarr/shrinkarr/internal/queue/delivery/http"
	queueRepository "github.com/shrinkarr/shrinkarr/internal/queue/repository"
	queueUsecase "github.com/shrinkarr/shrinkarr/internal/queue/usecase"
	"github.com/shrinkarr/shrinkarr/internal/resources"
	resourcesHttp "github.com/shrinkarr/shrinkarr/internal/resources/delivery/http"
	resourcesRepository "github.com/shrinkarr/shrinkarr/internal/resources/repository"
	"github.com/shrinkarr/shrinkarr/internal/schedule"
	scheduleHttp "github.com/shrinkarr/shrinkarr/internal/schedule/delivery/http"
	scheduleRepository "github.com/shrinkarr/shrinkarr/internal/schedule/repository"
	"github.com/shrinkarr/shrinkarr/internal/scheduler"
	"github.com/shrinkarr/shrinkarr/pkg/utils"
)

func (s *Server) MapHandlers(ctx context.Context, e *echo.Echo) error {
	qRepo := queueRepository.NewQueueRepo(s.db)
	qRedisRepo := queueRepository.NewQueueRedisRepo(s.redisClient)
	schedRepo := scheduleRepository.NewScheduleRepo(s.db)
	thresholdsRepo := resourcesRepository.NewThresholdsRepo(s.db)
	pRepo := profilesRepository.NewProfilesRepo(s.db)

	queueUC := queueUsecase.NewQueueUseCase(s.cfg, qRepo, qRedisRepo, s.logger)

	evaluator := schedule.NewEvaluator(schedule.NewNoRestHours(), s.logger)
	sampler := resources.NewHostSampler(s.cfg, s.logger)
	monitor := resources.NewMonitor(s.cfg, sampler, qRedisRepo, s.logger)
	engine := encoder.NewEngine(s.cfg, queueUC, s.logger)

	sched := scheduler.NewScheduler(
		s.cfg, qRepo, queueUC, schedRepo, thresholdsRepo, pRepo,
		evaluator, sampler, engine, s.logger,
	)
	queueUC.SetCanceller(sched)

	go monitor.Run(ctx)
	go sched.Run(ctx)

	queueHandlers := queueHttp.NewQueueHandlers(queueUC, s.logger)
	scheduleHandlers := scheduleHttp.NewScheduleHandlers(schedRepo, evaluator, s.logger)
	resourcesHandlers := resourcesHttp.NewResourcesHandlers(monitor, thresholdsRepo, s.logger)
	profilesHandlers := profilesHttp.NewProfilesHandlers(pRepo, s.logger)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	queueGroup := v1.Group("/queue")
	historyGroup := v1.Group("/history")
	scheduleGroup := v1.Group("/schedule")
	controlGroup := v1.Group("/control")
	resourcesGroup := v1.Group("/resources")
	profilesGroup := v1.Group("/profiles")
	health := v1.Group("/health")

	queueHttp.MapQueueRoutes(queueGroup, historyGroup, queueHandlers)
	scheduleHttp.MapScheduleRoutes(scheduleGroup, controlGroup, scheduleHandlers)
	resourcesHttp.MapResourcesRoutes(resourcesGroup, resourcesHandlers)
	profilesHttp.MapProfilesRoutes(profilesGroup, profilesHandlers)

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
