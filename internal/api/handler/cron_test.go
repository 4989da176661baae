package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/subscription-forecast-api/internal/scheduler"
	"github.com/vfg2006/subscription-forecast-api/pkg/apiErrors"
)

func TestRunCronJob(t *testing.T) {
	t.Run("Tipo desconhecido retorna erro de validação", func(t *testing.T) {
		rt := newTestRouter(CronJobs(CronJobServices{
			ForecastSnapshotSyncService: &scheduler.ForecastSnapshotSyncService{},
		})...)

		req := httptest.NewRequest(http.MethodPost, "/v1/cron/unknown/run", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		apiErr := decodeAPIError(t, recorder)
		assert.Equal(t, apiErrors.ErrInvalidRequest, apiErr.Code)
	})

	t.Run("Serviço de snapshot indisponível retorna erro interno", func(t *testing.T) {
		rt := newTestRouter(CronJobs(CronJobServices{})...)

		req := httptest.NewRequest(http.MethodPost, "/v1/cron/snapshot/run", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		apiErr := decodeAPIError(t, recorder)
		assert.Equal(t, apiErrors.ErrInternalServer, apiErr.Code)
	})
}

func TestGetCronStatus(t *testing.T) {
	t.Run("Status das cron jobs configuradas", func(t *testing.T) {
		rt := newTestRouter(CronJobs(CronJobServices{
			ForecastSnapshotSyncService: &scheduler.ForecastSnapshotSyncService{},
		})...)

		req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var status map[string]any
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&status))
		assert.Contains(t, status, "snapshot")
	})

	t.Run("Serviço de snapshot indisponível retorna erro interno", func(t *testing.T) {
		rt := newTestRouter(CronJobs(CronJobServices{})...)

		req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		apiErr := decodeAPIError(t, recorder)
		assert.Equal(t, apiErrors.ErrInternalServer, apiErr.Code)
	})
}
