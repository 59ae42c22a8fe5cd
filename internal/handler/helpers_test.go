package handler_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"itemtracker/internal/config"
	"itemtracker/internal/handler"
	"itemtracker/internal/infra/db"
	infraRepo "itemtracker/internal/infra/repository"
	"itemtracker/internal/server"
	"itemtracker/internal/usecase"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type ItemBody struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	Status      string    `json:"status"`
	Category    *string   `json:"category"`
	IsFragile   bool      `json:"is_fragile"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ItemListBody struct {
	Items   []ItemBody `json:"items"`
	Total   int64      `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
	Pages   int        `json:"pages"`
}

type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type testAPI struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	gdb := db.NewTestDB(t)
	items := infraRepo.NewItemGormRepository(gdb)

	e := server.New(
		config.Config{LogLevel: "error", CORSAllowOrigins: []string{"*"}},
		handler.NewHealthHandler(usecase.NewHealthUsecase(items, time.Second)),
		handler.NewItemHandler(usecase.NewItemUsecase(items, nil)),
	)
	e.Logger.SetOutput(io.Discard)

	return &testAPI{e: e, db: gdb}
}

// doJSON sends body (if non-nil) as application/json.
func (a *testAPI) doJSON(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) createItem(t *testing.T, body string) ItemBody {
	t.Helper()

	rec := a.doJSON(t, http.MethodPost, "/items", []byte(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[ItemBody](t, rec)
}

func (a *testAPI) createNamed(t *testing.T, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		a.createItem(t, fmt.Sprintf(`{"name":"Item %02d"}`, i))
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, kind string) ErrorBody {
	t.Helper()

	require.Equal(t, status, rec.Code, rec.Body.String())
	eb := decode[ErrorBody](t, rec)
	require.Equal(t, kind, eb.Kind)
	require.NotEmpty(t, eb.Error)
	return eb
}

func (a *testAPI) doRaw(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, contentType)

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}
