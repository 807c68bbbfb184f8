package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLogs(t *testing.T, dir string, cat Category) string {
	t.Helper()
	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(dir, ".orbitfolio", "logs", date+"_"+string(cat)+".log"))
	require.NoError(t, err)
	return string(data)
}

func TestInitialize_RequiresWorkspace(t *testing.T) {
	assert.Error(t, Initialize("", Options{}))
}

func TestProductionModeWritesNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{DebugMode: false}))
	t.Cleanup(CloseAll)

	Scene("should not appear")
	_, err := os.Stat(filepath.Join(dir, ".orbitfolio", "logs"))
	assert.True(t, os.IsNotExist(err))
	assert.False(t, IsDebugMode())
}

func TestAllCategoriesLog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "debug"}))
	t.Cleanup(CloseAll)

	for _, cat := range Categories {
		Get(cat).Info("hello from %s", cat)
	}
	CloseAll()

	for _, cat := range Categories {
		assert.Contains(t, readLogs(t, dir, cat), "hello from "+string(cat))
	}
}

func TestCategoryToggle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{
		DebugMode:  true,
		Level:      "debug",
		Categories: map[string]bool{"audio": false},
	}))
	t.Cleanup(CloseAll)

	assert.False(t, IsCategoryEnabled(CategoryAudio))
	assert.True(t, IsCategoryEnabled(CategoryScene), "unlisted categories default on")
}

func TestLevelFilter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "warn"}))
	t.Cleanup(CloseAll)

	CatalogDebug("quiet detail")
	CatalogWarn("loud warning")
	CloseAll()

	out := readLogs(t, dir, CategoryCatalog)
	assert.NotContains(t, out, "quiet detail")
	assert.Contains(t, out, "loud warning")
}

func TestJSONFormat(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "info", JSONFormat: true}))
	t.Cleanup(CloseAll)

	Get(CategoryUI).With("width", 80).Info("resized")
	CloseAll()

	out := strings.TrimSpace(readLogs(t, dir, CategoryUI))
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"width":80`)
}

func TestTimerThreshold(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "debug"}))
	t.Cleanup(CloseAll)

	timer := StartTimer(CategoryScene, "slow op")
	time.Sleep(5 * time.Millisecond)
	elapsed := timer.StopWithThreshold(time.Millisecond)
	CloseAll()

	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
	assert.Contains(t, readLogs(t, dir, CategoryScene), "slow op took")
}
