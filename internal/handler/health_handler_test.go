package handler_test

import (
	"net/http"
	"testing"

	"itemtracker/internal/infra/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	api := newTestAPI(t)

	rec := api.doJSON(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to Item Tracker API!","version":"1.0.0"}`, rec.Body.String())
}

func TestHealth_Healthy(t *testing.T) {
	api := newTestAPI(t)

	rec := api.doJSON(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"connected","api":"running"}`, rec.Body.String())
}

func TestHealth_DegradedWhenDatabaseGone(t *testing.T) {
	api := newTestAPI(t)
	require.NoError(t, db.Close(api.db))

	rec := api.doJSON(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","database":"disconnected","api":"running"}`, rec.Body.String())
}

func TestHealth_DoesNotWrite(t *testing.T) {
	api := newTestAPI(t)
	api.createNamed(t, 2)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, api.doJSON(t, http.MethodGet, "/health", nil).Code)
	}

	list := decode[ItemListBody](t, api.doJSON(t, http.MethodGet, "/items", nil))
	assert.Equal(t, int64(2), list.Total)
}

func TestStatuses(t *testing.T) {
	api := newTestAPI(t)

	rec := api.doJSON(t, http.MethodGet, "/statuses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"statuses":["active","stored","lost","donated","sold"]}`, rec.Body.String())
}
