package httpserver

import (
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"report-srv/config"
	"report-srv/pkg/encrypter"
	"report-srv/pkg/log"
	pkgRedis "report-srv/pkg/redis"
	"report-srv/pkg/scope"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rejectAll struct{}

func (rejectAll) Verify(string) (scope.Payload, error) {
	return scope.Payload{}, errors.New("invalid token")
}

func newTestServer(t *testing.T) (*HTTPServer, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	redisClient, err := pkgRedis.NewRedis(pkgRedis.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { redisClient.Close() })

	cfg := &config.Config{
		Cookie:  config.CookieConfig{Name: "auth_token"},
		Storage: config.StorageConfig{Root: t.TempDir(), Backend: config.StorageBackendLocal, CacheTTL: time.Minute},
		Report:  config.ReportConfig{Timezone: "Asia/Seoul"},
	}

	srv, err := New(log.NewNop(), Config{
		Logger:      log.NewNop(),
		Port:        8080,
		Mode:        "test",
		PostgresDB:  db,
		RedisClient: redisClient,
		Config:      cfg,
		JWTManager:  rejectAll{},
		Encrypter:   mustEncrypter(t, "0123456789abcdef0123456789abcdef"),
	})
	require.NoError(t, err)
	require.NoError(t, srv.mapHandlers())

	return srv, mock
}

func get(srv *HTTPServer, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestSystemRoutes(t *testing.T) {
	srv, mock := newTestServer(t)

	t.Run("health and live", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(srv, "/health").Code)
		assert.Equal(t, http.StatusOK, get(srv, "/live").Code)
	})

	t.Run("ready", func(t *testing.T) {
		mock.ExpectPing()
		w := get(srv, "/ready")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"storage":"local"`)
	})

	t.Run("not ready when postgres is down", func(t *testing.T) {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		w := get(srv, "/ready")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("metrics", func(t *testing.T) {
		w := get(srv, "/metrics")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "go_goroutines")
	})

	t.Run("report routes require auth", func(t *testing.T) {
		w := get(srv, "/api/v1/reports")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewValidation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = New(log.NewNop(), Config{Logger: log.NewNop(), Mode: "test", Port: 8080})
	assert.EqualError(t, err, "postgresDB is required")

	_, err = New(log.NewNop(), Config{
		Logger:      log.NewNop(),
		Mode:        "test",
		Port:        8080,
		PostgresDB:  db,
		RedisClient: fakeRedis{},
		Config:      &config.Config{Storage: config.StorageConfig{Backend: config.StorageBackendMinIO}},
		JWTManager:  rejectAll{},
		Encrypter:   mustEncrypter(t, "0123456789abcdef"),
	})
	assert.EqualError(t, err, "minioClient is required for the minio storage backend")
}

func mustEncrypter(t *testing.T, key string) encrypter.Encrypter {
	t.Helper()
	enc, err := encrypter.New(key)
	require.NoError(t, err)
	return enc
}

type fakeRedis struct {
	pkgRedis.IRedis
}
