package scheduler

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritik-gupta001/nexalyze/models"
	"github.com/ritik-gupta001/nexalyze/store"
)

func newTestSweeper(t *testing.T) (*Sweeper, store.TaskStore, afero.Fs) {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	fs := afero.NewMemMapFs()
	s := New(st, fs, []string{"charts", "reports"}, 15*time.Minute, 30*24*time.Hour)
	return s, st, fs
}

func TestSweepFailsStaleTasks(t *testing.T) {
	s, st, _ := newTestSweeper(t)

	stale := models.NewTask("T-20260830-stale001", models.TypeNewsInsight)
	stale.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, st.Create(*stale))

	fresh := models.NewTask("T-20260830-fresh001", models.TypeNewsInsight)
	require.NoError(t, st.Create(*fresh))

	s.Sweep()

	got, err := st.Get("T-20260830-stale001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.Contains(t, got.Error, "wall-clock budget")
	require.NotNil(t, got.CompletedAt)

	got, err = st.Get("T-20260830-fresh001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, got.Status)
	assert.Empty(t, got.Error)
}

func TestSweepLeavesTerminalTasksAlone(t *testing.T) {
	s, st, _ := newTestSweeper(t)

	done := models.NewTask("T-20260830-done0001", models.TypeDataAnalysis)
	done.CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
	require.NoError(t, st.Create(*done))

	done.Status = models.StatusCompleted
	completedAt := time.Now().UTC().Add(-time.Hour)
	done.CompletedAt = &completedAt
	require.NoError(t, st.Update(*done))

	s.Sweep()

	got, err := st.Get("T-20260830-done0001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Empty(t, got.Error)
}

func TestSweepPrunesExpiredArtifacts(t *testing.T) {
	s, _, fs := newTestSweeper(t)

	require.NoError(t, afero.WriteFile(fs, "charts/old.svg", []byte("<svg/>"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "charts/new.svg", []byte("<svg/>"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "reports/old-report.md", []byte("# old"), 0o644))

	stale := time.Now().Add(-31 * 24 * time.Hour)
	require.NoError(t, fs.Chtimes("charts/old.svg", stale, stale))
	require.NoError(t, fs.Chtimes("reports/old-report.md", stale, stale))

	s.Sweep()

	exists, _ := afero.Exists(fs, "charts/old.svg")
	assert.False(t, exists)
	exists, _ = afero.Exists(fs, "reports/old-report.md")
	assert.False(t, exists)
	exists, _ = afero.Exists(fs, "charts/new.svg")
	assert.True(t, exists)
}

func TestSweepMissingDirsAreSkipped(t *testing.T) {
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	s := New(st, afero.NewMemMapFs(), []string{"nowhere"}, time.Minute, time.Hour)
	s.Sweep() // must not panic or error out
}
