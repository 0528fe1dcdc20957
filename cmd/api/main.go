package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/tavus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/tavus/tavusclient"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/api"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/scheduler"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/account"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/authenticating"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/avatar"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/mutating"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/syncing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	credentialRepo := repository.NewCredentialRepository(pgConn)
	accountRepo := repository.NewAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	adSetRepo := repository.NewAdSetRepository(pgConn)
	adRepo := repository.NewAdRepository(pgConn)
	metricRepo := repository.NewMetricRepository(pgConn)
	syncJobRepo := repository.NewSyncJobRepository(pgConn)
	avatarRepo := repository.NewAvatarRepository(pgConn)

	authenticator := authenticating.NewService(cfg)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(cfg, metaClient)

	tavusClient := tavusclient.NewClient(cfg)
	tavusIntegrator := tavus.New(cfg, tavusClient)

	connectionService := connecting.NewService(
		credentialRepo,
		accountRepo,
		campaignRepo,
		adSetRepo,
		adRepo,
		metricRepo,
		syncJobRepo,
		avatarRepo,
		metaIntegrator,
		tavusIntegrator,
		cfg,
	)

	accountService := account.NewService(accountRepo, metaIntegrator, cfg)

	syncService := syncing.NewService(
		accountRepo,
		campaignRepo,
		adSetRepo,
		adRepo,
		metricRepo,
		syncJobRepo,
		metaIntegrator,
		cfg,
	)

	mutationService := mutating.NewService(
		accountRepo,
		campaignRepo,
		adSetRepo,
		adRepo,
		metaIntegrator,
		cfg,
	)

	reportingService := reporting.NewService(syncService, accountRepo, campaignRepo)

	avatarService := avatar.NewService(avatarRepo, tavusIntegrator, cfg)

	metricsSyncService := scheduler.NewMetricsSyncService(
		credentialRepo,
		accountRepo,
		syncService,
		cfg,
	)

	if err := metricsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de métricas")
	} else {
		logrus.Info("Agendador de sincronização de métricas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		connectionService,
		accountService,
		syncService,
		mutationService,
		reportingService,
		avatarService,
		metricsSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
