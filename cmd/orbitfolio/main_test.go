package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"orbitfolio/internal/catalog"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// setupWorkspace points the global flags at a fresh workspace.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	logger = zap.NewNop()
	ws := t.TempDir()
	workspace = ws
	configPath = ""
	t.Setenv("ORBITFOLIO_DB", "")
	t.Setenv("ORBITFOLIO_CATALOG", "")
	t.Setenv("ORBITFOLIO_RADIUS", "")
	t.Cleanup(func() { workspace = "" })
	return ws
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	return cmd, buf
}

func resetAddFlags() {
	addID, addCodename, addTitle, addClassification, addSummary, addDescription = "", "", "", "", "", ""
	addStatus = string(catalog.StatusInProgress)
	addTech = nil
}

func TestProjectsAddListRemove(t *testing.T) {
	ws := setupWorkspace(t)
	defer resetAddFlags()

	cmd, buf := newTestCmd()
	require.NoError(t, runProjectsList(cmd, nil))
	assert.Contains(t, buf.String(), "No projects")

	resetAddFlags()
	addID, addCodename, addTitle, addStatus = "atlas", "ATLAS", "Atlas", "deployed"
	addTech = []string{"go", "sqlite"}
	cmd, buf = newTestCmd()
	require.NoError(t, runProjectsAdd(cmd, nil))
	assert.Equal(t, "atlas\n", buf.String())

	resetAddFlags()
	addTitle = "Beacon"
	cmd, buf = newTestCmd()
	require.NoError(t, runProjectsAdd(cmd, nil))
	generated := strings.TrimSpace(buf.String())
	assert.Len(t, generated, 36, "empty ids get a uuid")

	_, err := os.Stat(filepath.Join(ws, ".orbitfolio", "catalog.db"))
	require.NoError(t, err, "catalog database should live in the workspace")

	cmd, buf = newTestCmd()
	require.NoError(t, runProjectsList(cmd, nil))
	out := buf.String()
	assert.Contains(t, out, "ATLAS")
	assert.Contains(t, out, "DEPLOYED")
	assert.Contains(t, out, "Beacon")
	assert.Less(t, strings.Index(out, "ATLAS"), strings.Index(out, "Beacon"), "insertion order is kept")

	cmd, _ = newTestCmd()
	require.NoError(t, runProjectsRemove(cmd, []string{"atlas"}))
	err = runProjectsRemove(cmd, []string{"atlas"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no project")
}

func TestProjectsAddInvalidStatus(t *testing.T) {
	setupWorkspace(t)
	defer resetAddFlags()

	resetAddFlags()
	addTitle, addStatus = "X", "shipping"
	cmd, _ := newTestCmd()
	assert.Error(t, runProjectsAdd(cmd, nil))
}

func TestProjectsImportExport(t *testing.T) {
	ws := setupWorkspace(t)

	src := filepath.Join(ws, "seed.yaml")
	require.NoError(t, os.WriteFile(src, []byte(`projects:
  - id: atlas
    title: Atlas
    status: deployed
  - id: beacon
    title: Beacon
`), 0644))

	cmd, buf := newTestCmd()
	require.NoError(t, runProjectsImport(cmd, []string{src}))
	assert.Contains(t, buf.String(), "Imported 2 projects")

	dst := filepath.Join(ws, "out", "catalog.yaml")
	cmd, _ = newTestCmd()
	require.NoError(t, runProjectsExport(cmd, []string{dst}))

	got, err := catalog.LoadFile(dst)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, catalog.StatusDeployed, got[0].Status)
	assert.Equal(t, catalog.StatusInProgress, got[1].Status)
}

func TestLayoutCmd(t *testing.T) {
	setupWorkspace(t)
	layoutCount, layoutRadius, layoutT, layoutSeed = 4, 5, 1.5, 9
	defer func() { layoutCount, layoutRadius, layoutT, layoutSeed = 8, 0, 0, 1 }()

	cmd, buf := newTestCmd()
	require.NoError(t, runLayout(cmd, nil))

	var dump layoutDump
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &dump))
	assert.Equal(t, 4, dump.Count)
	assert.Equal(t, 5.0, dump.Radius)
	require.Len(t, dump.Nodes, 4)
	for _, n := range dump.Nodes {
		b := n.Base
		assert.InDelta(t, 25.0, b[0]*b[0]+b[1]*b[1]+b[2]*b[2], 1e-6, "base points lie on the sphere")
	}

	// Same seed, same layout.
	cmd2, buf2 := newTestCmd()
	require.NoError(t, runLayout(cmd2, nil))
	assert.Equal(t, buf.String(), buf2.String())
}

func TestLayoutDefaultsToConfiguredRadius(t *testing.T) {
	setupWorkspace(t)
	layoutCount, layoutRadius = 1, 0
	defer func() { layoutCount = 8 }()

	cmd, buf := newTestCmd()
	require.NoError(t, runLayout(cmd, nil))
	assert.Contains(t, buf.String(), "radius: 4")
}

func TestVersionCmd(t *testing.T) {
	cmd, buf := newTestCmd()
	versionCmd.Run(cmd, nil)
	assert.Equal(t, "orbitfolio dev\n", buf.String())
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/ws", "a.db"), resolvePath("/ws", "a.db"))
	assert.Equal(t, "/abs/a.db", resolvePath("/ws", "/abs/a.db"))
	assert.Equal(t, ":memory:", resolvePath("/ws", ":memory:"))
	assert.Equal(t, "", resolvePath("/ws", ""))
}

func TestOpenSources(t *testing.T) {
	ws := setupWorkspace(t)
	cfg, err := loadConfig(ws)
	require.NoError(t, err)

	cs, err := openSources(ws, cfg)
	require.NoError(t, err)
	assert.Empty(t, cs.seedPath)
	cs.Close()

	cfg.Catalog.SeedFile = "seed.yaml"
	require.NoError(t, catalog.SaveFile(filepath.Join(ws, "seed.yaml"), []catalog.Record{
		{ID: "s1", Title: "Seeded", Status: catalog.StatusArchived},
	}))
	cs, err = openSources(ws, cfg)
	require.NoError(t, err)
	defer cs.Close()
	assert.Equal(t, filepath.Join(ws, "seed.yaml"), cs.seedPath)

	recs, err := cs.source.Fetch(t.Context())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "s1", recs[0].ID)
}
