package usecase

import (
	"testing"
	"time"

	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/internal/report/repository"
	"report-srv/internal/report/repository/local"
	"report-srv/pkg/log"
	"report-srv/pkg/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.July, 2, 9, 30, 0, 0, time.UTC)

var (
	adminScope = model.Scope{UserID: "1", Username: "admin", Role: "ADMIN", Department: "HQ"}
	aliceScope = model.Scope{UserID: "2", Username: "alice", Role: "EMPLOYEE", Department: "Sales"}
	bobScope   = model.Scope{UserID: "3", Username: "bob", Role: "EMPLOYEE", Department: "Finance"}
)

type testEnv struct {
	uc        *implUseCase
	repo      *fakeRepo
	renderer  *fakeRenderer
	publisher *fakePublisher
	cache     *fakeCache
	root      string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	return buildTestEnv(t, nil)
}

// newCachedTestEnv reads and writes terminal jobs through an in-memory cache.
func newCachedTestEnv(t *testing.T) testEnv {
	t.Helper()
	cache := newFakeCache()
	env := buildTestEnv(t, cache)
	env.cache = cache
	return env
}

func buildTestEnv(t *testing.T, cache repository.CacheRepository) testEnv {
	t.Helper()

	root := t.TempDir()
	now := func() time.Time { return fixedNow }

	repo := newFakeRepo(now)
	renderer := &fakeRenderer{}
	publisher := &fakePublisher{}

	artifacts, err := local.New(log.NewNop(), root)
	require.NoError(t, err)

	uc := New(
		log.NewNop(),
		repo,
		cache,
		artifacts,
		renderer,
		publisher,
		metrics.New(prometheus.NewRegistry(), "test"),
		report.DefaultRegistry(),
		Config{StorageRoot: root, Location: time.UTC},
	).(*implUseCase)
	uc.now = now
	uc.newID = uuid.NewString

	return testEnv{
		uc:        uc,
		repo:      repo,
		renderer:  renderer,
		publisher: publisher,
		root:      root,
	}
}

// requireTerminalInvariants checks the READY and FAILED field rules.
func requireTerminalInvariants(t *testing.T, job model.ReportJob) {
	t.Helper()
	switch job.Status {
	case model.JobStatusReady:
		require.NotEmpty(t, job.FileName)
		require.NotEmpty(t, job.FilePath)
		require.Empty(t, job.ErrorMessage)
	case model.JobStatusFailed:
		require.NotEmpty(t, job.ErrorMessage)
		require.Empty(t, job.FileName)
		require.Empty(t, job.FilePath)
	default:
		t.Fatalf("job %s left in status %s", job.ID, job.Status)
	}
	require.Equal(t, job.PeriodStart == nil, job.PeriodEnd == nil)
}
