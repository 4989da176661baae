package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/subscription-forecast-api/infrastructure/repository"
	"github.com/vfg2006/subscription-forecast-api/internal/api/handler/router"
	"github.com/vfg2006/subscription-forecast-api/internal/usecases/catalog"
	"github.com/vfg2006/subscription-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/subscription-forecast-api/internal/usecases/scenario"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Forecast(
	simulator forecasting.Simulator,
	catalogService catalog.CatalogService,
	snapshotRepo repository.SnapshotRepository,
) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/forecast/defaults",
			Method:  http.MethodGet,
			Handler: GetForecastDefaults(simulator, catalogService),
		},
		{
			Path:    "/v1/forecast/simulate",
			Method:  http.MethodPost,
			Handler: SimulateForecast(simulator, catalogService),
		},
		{
			Path:    "/v1/forecast/snapshot",
			Method:  http.MethodGet,
			Handler: GetLatestSnapshot(snapshotRepo),
		},
	}
}

func Projects(service catalog.CatalogService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/projects",
			Method:  http.MethodGet,
			Handler: ProjectList(service),
		},
		{
			Path:    "/v1/projects",
			Method:  http.MethodPost,
			Handler: CreateProject(service),
		},
		{
			Path:    "/v1/projects/:id",
			Method:  http.MethodDelete,
			Handler: DeleteProject(service),
		},
	}
}

func Scenarios(service scenario.ScenarioService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/scenarios",
			Method:  http.MethodGet,
			Handler: ScenarioList(service),
		},
		{
			Path:    "/v1/scenarios",
			Method:  http.MethodPost,
			Handler: CreateScenario(service),
		},
		{
			Path:    "/v1/scenarios/:id",
			Method:  http.MethodGet,
			Handler: GetScenario(service),
		},
		{
			Path:    "/v1/scenarios/:id",
			Method:  http.MethodPut,
			Handler: UpdateScenario(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
