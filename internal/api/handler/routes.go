package handler

import (
	"net/http"

	"github.com/vfg2006/marketing-ops-api/internal/api/handler/router"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/internal/scheduler"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/account"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/avatar"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/mutating"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/syncing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func MetaConnection(service connecting.ConnectionService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/meta/connect",
			Method:  http.MethodPost,
			Handler: MetaConnect(service),
		},
		{
			Path:    "/v1/meta/connection",
			Method:  http.MethodGet,
			Handler: ConnectionStatus(service, domain.ProviderMeta),
		},
		{
			Path:    "/v1/meta/connection",
			Method:  http.MethodDelete,
			Handler: Disconnect(service, domain.ProviderMeta),
		},
	}
}

func AdAccounts(service account.AccountService, connections connecting.ConnectionService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/meta/adaccounts",
			Method:  http.MethodGet,
			Handler: ListProviderAdAccounts(service, connections),
		},
		{
			Path:    "/v1/meta/adaccounts",
			Method:  http.MethodPost,
			Handler: ConnectAdAccount(service),
		},
		{
			Path:    "/v1/accounts",
			Method:  http.MethodGet,
			Handler: ListConnectedAdAccounts(service),
		},
	}
}

func Sync(service syncing.SyncService, connections connecting.ConnectionService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/meta/sync",
			Method:  http.MethodPost,
			Handler: TriggerSync(service, connections),
		},
		{
			Path:    "/v1/meta/sync/:job_id",
			Method:  http.MethodGet,
			Handler: GetSyncJob(service),
		},
	}
}

func Mutations(service mutating.MutationService, connections connecting.ConnectionService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/meta/campaigns",
			Method:  http.MethodPost,
			Handler: CreateCampaign(service, connections),
		},
		{
			Path:    "/v1/meta/adsets",
			Method:  http.MethodPost,
			Handler: CreateAdSet(service, connections),
		},
		{
			Path:    "/v1/meta/ads",
			Method:  http.MethodPost,
			Handler: CreateAd(service, connections),
		},
		{
			Path:    "/v1/meta/media",
			Method:  http.MethodPost,
			Handler: UploadMedia(service, connections),
		},
	}
}

func Metrics(syncService syncing.SyncService, reportingService reporting.ReportingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/metrics/:level/:id",
			Method:  http.MethodGet,
			Handler: GetEntityMetrics(syncService),
		},
		{
			Path:    "/v1/metrics/:level/:id/summary",
			Method:  http.MethodGet,
			Handler: GetMetricsSummary(reportingService),
		},
	}
}

func AIContext(service reporting.ReportingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/ai/context",
			Method:  http.MethodGet,
			Handler: GetAIContext(service),
		},
	}
}

func Tavus(service avatar.AvatarService, connections connecting.ConnectionService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/tavus/connect",
			Method:  http.MethodPost,
			Handler: TavusConnect(connections),
		},
		{
			Path:    "/v1/tavus/connection",
			Method:  http.MethodGet,
			Handler: ConnectionStatus(connections, domain.ProviderTavus),
		},
		{
			Path:    "/v1/tavus/connection",
			Method:  http.MethodDelete,
			Handler: Disconnect(connections, domain.ProviderTavus),
		},
		{
			Path:    "/v1/tavus/replicas",
			Method:  http.MethodGet,
			Handler: ListReplicas(service, connections),
		},
		{
			Path:    "/v1/tavus/replicas/:id",
			Method:  http.MethodDelete,
			Handler: DeleteReplica(service, connections),
		},
		{
			Path:    "/v1/tavus/personas",
			Method:  http.MethodGet,
			Handler: ListPersonas(service, connections),
		},
		{
			Path:    "/v1/tavus/personas",
			Method:  http.MethodPost,
			Handler: CreatePersona(service, connections),
		},
		{
			Path:    "/v1/tavus/personas/:id",
			Method:  http.MethodDelete,
			Handler: DeletePersona(service, connections),
		},
		{
			Path:    "/v1/tavus/videos",
			Method:  http.MethodPost,
			Handler: RenderVideo(service, connections),
		},
		{
			Path:    "/v1/tavus/videos",
			Method:  http.MethodGet,
			Handler: ListVideos(service),
		},
		{
			Path:    "/v1/tavus/videos/:id",
			Method:  http.MethodGet,
			Handler: GetVideo(service, connections),
		},
		{
			Path:    "/v1/tavus/videos/:id",
			Method:  http.MethodDelete,
			Handler: DeleteVideo(service, connections),
		},
	}
}

func CronJobs(service *scheduler.MetricsSyncService, secret string) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/sync",
			Method:  http.MethodPost,
			Handler: TriggerCronSync(service, secret),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: CronStatus(service),
		},
	}
}
