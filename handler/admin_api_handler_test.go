// ABOUTME: HTTP-level tests for the admin API endpoints
// ABOUTME: Drives the mux through httptest with a real schedule handler

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdminAPI(t *testing.T, synchronizer Synchronizer, purger Purger) (*AdminAPIHandler, *ScheduleHandler) {
	t.Helper()
	schedule := NewScheduleHandler(synchronizer, purger, DefaultScheduleConfig(), nil)
	return NewAdminAPIHandler(schedule, nil), schedule
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAdminAPI_SyncTrigger(t *testing.T) {
	api, _ := newTestAdminAPI(t, &stubSynchronizer{result: successfulResult("p")}, nil)

	rec := httptest.NewRecorder()
	api.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sync/trigger", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp TriggerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp.Status)
}

func TestAdminAPI_SyncTriggerRejectsGet(t *testing.T) {
	api, _ := newTestAdminAPI(t, &stubSynchronizer{}, nil)

	rec := httptest.NewRecorder()
	api.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/trigger", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, rec).ErrorCode)
}

func TestAdminAPI_FeedRefresh(t *testing.T) {
	tests := map[string]struct {
		path         string
		expectedCode int
		expectedErr  string
	}{
		"valid feed id": {
			path:         "/v1/feeds/42/refresh",
			expectedCode: http.StatusAccepted,
		},
		"non-numeric id": {
			path:         "/v1/feeds/abc/refresh",
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_FEED_ID",
		},
		"negative id": {
			path:         "/v1/feeds/-4/refresh",
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_FEED_ID",
		},
		"unknown operation": {
			path:         "/v1/feeds/42/rename",
			expectedCode: http.StatusNotFound,
			expectedErr:  "NOT_FOUND",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			api, _ := newTestAdminAPI(t, &stubSynchronizer{result: successfulResult("p")}, nil)

			rec := httptest.NewRecorder()
			api.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tc.path, nil))

			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedErr != "" {
				assert.Equal(t, tc.expectedErr, decodeError(t, rec).ErrorCode)
			}
		})
	}
}

func TestAdminAPI_PurgeTriggerWithoutPurger(t *testing.T) {
	api, _ := newTestAdminAPI(t, &stubSynchronizer{}, nil)

	rec := httptest.NewRecorder()
	api.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/purge/trigger", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "PURGE_FAILED", decodeError(t, rec).ErrorCode)
}

func TestAdminAPI_SyncStatus(t *testing.T) {
	api, _ := newTestAdminAPI(t, &stubSynchronizer{}, nil)

	rec := httptest.NewRecorder()
	api.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var status ScheduleStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.SyncRunning)
	assert.Equal(t, int64(0), status.TotalSyncs)
}

func TestAdminAPI_Health(t *testing.T) {
	api, schedule := newTestAdminAPI(t, &stubSynchronizer{}, nil)

	rec := httptest.NewRecorder()
	api.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, schedule.Start(t.Context()))
	defer schedule.Stop()

	rec = httptest.NewRecorder()
	api.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
