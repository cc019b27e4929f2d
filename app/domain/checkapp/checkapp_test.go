package checkapp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jcpaschoal/partner-portal/business/sdk/web"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*web.App, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewDiscard()
	app := web.NewApp(log.Info, nil)

	Routes(app, Config{
		Build: "test",
		Log:   log,
		DB:    sqlx.NewDb(db, "pgx"),
	})

	return app, mock
}

func TestLiveness(t *testing.T) {
	app, _ := newTestApp(t)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/liveness", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var info Info
	require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
	assert.Equal(t, "up", info.Status)
	assert.Equal(t, "test", info.Build)
	assert.Positive(t, info.GOMAXPROCS)
}

func TestReadiness(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectPing()
	mock.ExpectQuery("SELECT TRUE").WillReturnRows(sqlmock.NewRows([]string{"bool"}).AddRow(true))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/readiness", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
