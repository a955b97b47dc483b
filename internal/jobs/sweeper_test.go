package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"transportmarket/internal/jobs"
	testlog "transportmarket/internal/testutil"
)

type stubPurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	n       int64
	err     error
}

func (s *stubPurger) PurgeArchivedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.n, s.err
}

type addCounter struct {
	mu    sync.Mutex
	total float64
}

func (c *addCounter) Add(v float64) {
	c.mu.Lock()
	c.total += v
	c.mu.Unlock()
}

func TestSweeper_SweepOnce(t *testing.T) {
	t.Parallel()

	repo := &stubPurger{n: 3}
	purged := &addCounter{}
	s := jobs.NewSweeper(repo, 30, "30 3 * * *", testlog.New().Logger(), purged)

	before := time.Now().UTC()
	require.NoError(t, s.SweepOnce(context.Background()))

	require.Len(t, repo.cutoffs, 1)
	wantCutoff := before.Add(-30 * 24 * time.Hour)
	require.WithinDuration(t, wantCutoff, repo.cutoffs[0], time.Minute)
	require.Equal(t, float64(3), purged.total)
}

func TestSweeper_SweepOnce_NothingPurged(t *testing.T) {
	t.Parallel()

	repo := &stubPurger{n: 0}
	purged := &addCounter{}
	s := jobs.NewSweeper(repo, 30, "30 3 * * *", testlog.New().Logger(), purged)

	require.NoError(t, s.SweepOnce(context.Background()))
	require.Zero(t, purged.total)
}

func TestSweeper_SweepOnce_RepoError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("db down")
	s := jobs.NewSweeper(&stubPurger{err: wantErr}, 30, "30 3 * * *", testlog.New().Logger(), nil)

	err := s.SweepOnce(context.Background())
	require.ErrorIs(t, err, wantErr)
}

func TestSweeper_StartStop(t *testing.T) {
	t.Parallel()

	s := jobs.NewSweeper(&stubPurger{}, 30, "30 3 * * *", testlog.New().Logger(), nil)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestSweeper_Start_BadSchedule(t *testing.T) {
	t.Parallel()

	s := jobs.NewSweeper(&stubPurger{}, 30, "not a schedule", testlog.New().Logger(), nil)
	require.Error(t, s.Start())
}
