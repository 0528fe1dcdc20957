package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-ops-api/internal/api/handler"
	"github.com/vfg2006/marketing-ops-api/internal/api/handler/router"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/scheduler"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/account"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/authenticating"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/avatar"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/mutating"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/syncing"
	"github.com/vfg2006/marketing-ops-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	authenticator authenticating.Authenticator,
	connectionService connecting.ConnectionService,
	accountService account.AccountService,
	syncService syncing.SyncService,
	mutationService mutating.MutationService,
	reportingService reporting.ReportingService,
	avatarService avatar.AvatarService,
	metricsSyncService *scheduler.MetricsSyncService,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.MetaConnection(connectionService)...),
		router.WithRoutes(handler.AdAccounts(accountService, connectionService)...),
		router.WithRoutes(handler.Sync(syncService, connectionService)...),
		router.WithRoutes(handler.Mutations(mutationService, connectionService)...),
		router.WithRoutes(handler.Metrics(syncService, reportingService)...),
		router.WithRoutes(handler.AIContext(reportingService)...),
		router.WithRoutes(handler.Tavus(avatarService, connectionService)...),
		router.WithRoutes(handler.CronJobs(metricsSyncService, cfg.Cron.Secret)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	chain := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           chain,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
