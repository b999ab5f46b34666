package highscore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "best.yaml"))
	require.NoError(t, err)
	assert.Zero(t, s.Best())
}

func TestSubmitPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.yaml")
	s, err := Open(path)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	run := uuid.New()
	improved, err := s.Submit(42.5, run)
	require.NoError(t, err)
	assert.True(t, improved)

	improved, err = s.Submit(10, uuid.New())
	require.NoError(t, err)
	assert.False(t, improved)

	again, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, Record{Best: 42.5, RunID: run.String(), UpdatedAt: s.now()}, again.Record())
}

func TestEqualDistanceDoesNotImprove(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	_, err = s.Submit(5, uuid.New())
	require.NoError(t, err)

	improved, err := s.Submit(5, uuid.New())
	require.NoError(t, err)
	assert.False(t, improved)
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.yaml")
	require.NoError(t, os.WriteFile(path, []byte("best: [nope"), 0o644))
	_, err := Open(path)
	assert.ErrorContains(t, err, "decode high score")
}
