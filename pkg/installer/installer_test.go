package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaneholloman/fetch-skill/pkg/agents"
)

const testAgent agents.Type = "testagent"

func newTestRegistry(t *testing.T, globalDir string) *agents.Registry {
	t.Helper()

	registry, err := agents.NewRegistry(agents.WithAgent(testAgent, agents.Descriptor{
		Name:            "Test Agent",
		SkillsDir:       filepath.Join(".testagent", "skills"),
		GlobalSkillsDir: globalDir,
	}))
	require.NoError(t, err)
	return registry
}

// newTestSkill creates a skill source directory with files that should be
// copied and files that should be excluded.
func newTestSkill(t *testing.T) string {
	t.Helper()

	srcDir := filepath.Join(t.TempDir(), "my-skill")
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "notes"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "sub", "_draft"), 0o755))

	files := map[string]string{
		"SKILL.md":            "---\nname: my-skill\n---\n",
		"main.py":             "print('hello')\n",
		"README.md":           "docs\n",
		"metadata.json":       "{}\n",
		"_template.md":        "template\n",
		"notes/main.py":       "print('notes')\n",
		"notes/README.md":     "docs\n",
		"notes/metadata.json": "{}\n",
		"notes/_template.md":  "template\n",
		"sub/_draft/x.txt":    "draft\n",
		"sub/kept.txt":        "kept\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(srcDir, filepath.FromSlash(name)), []byte(content), 0o644))
	}

	return srcDir
}

func TestInstallSkillForAgent(t *testing.T) {
	cwd := t.TempDir()
	registry := newTestRegistry(t, filepath.Join(t.TempDir(), "global", "skills"))
	inst := New(registry)

	srcDir := newTestSkill(t)
	result := inst.InstallSkillForAgent(context.Background(), Skill{Path: srcDir}, testAgent, Options{Cwd: cwd})

	require.True(t, result.Success, "install failed: %s", result.Error)
	assert.Empty(t, result.Error)
	assert.Equal(t, filepath.Join(cwd, ".testagent", "skills", "my-skill"), result.Path)

	// Copied files
	assert.FileExists(t, filepath.Join(result.Path, "SKILL.md"))
	assert.FileExists(t, filepath.Join(result.Path, "main.py"))
	assert.FileExists(t, filepath.Join(result.Path, "notes", "main.py"))
	assert.FileExists(t, filepath.Join(result.Path, "sub", "kept.txt"))

	// Excluded at every depth
	assert.NoFileExists(t, filepath.Join(result.Path, "README.md"))
	assert.NoFileExists(t, filepath.Join(result.Path, "metadata.json"))
	assert.NoFileExists(t, filepath.Join(result.Path, "_template.md"))
	assert.NoFileExists(t, filepath.Join(result.Path, "notes", "README.md"))
	assert.NoFileExists(t, filepath.Join(result.Path, "notes", "metadata.json"))
	assert.NoFileExists(t, filepath.Join(result.Path, "notes", "_template.md"))
	assert.NoDirExists(t, filepath.Join(result.Path, "sub", "_draft"))

	content, err := os.ReadFile(filepath.Join(result.Path, "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('hello')\n", string(content))
}

func TestInstallSkillForAgentExplicitName(t *testing.T) {
	cwd := t.TempDir()
	registry := newTestRegistry(t, filepath.Join(t.TempDir(), "global", "skills"))
	inst := New(registry)

	srcDir := newTestSkill(t)
	result := inst.InstallSkillForAgent(context.Background(), Skill{Name: "renamed", Path: srcDir}, testAgent, Options{Cwd: cwd})

	require.True(t, result.Success, "install failed: %s", result.Error)
	assert.Equal(t, filepath.Join(cwd, ".testagent", "skills", "renamed"), result.Path)
}

func TestInstallSkillForAgentGlobal(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "global", "skills")
	registry := newTestRegistry(t, globalDir)
	inst := New(registry)

	srcDir := newTestSkill(t)
	result := inst.InstallSkillForAgent(context.Background(), Skill{Path: srcDir}, testAgent, Options{Global: true})

	require.True(t, result.Success, "install failed: %s", result.Error)
	assert.Equal(t, filepath.Join(globalDir, "my-skill"), result.Path)
	assert.FileExists(t, filepath.Join(result.Path, "main.py"))
}

func TestInstallSkillForAgentTraversalName(t *testing.T) {
	cwd := t.TempDir()
	registry := newTestRegistry(t, filepath.Join(t.TempDir(), "global", "skills"))
	inst := New(registry)

	srcDir := newTestSkill(t)
	result := inst.InstallSkillForAgent(context.Background(), Skill{Name: "../../etc", Path: srcDir}, testAgent, Options{Cwd: cwd})

	base := filepath.Join(cwd, ".testagent", "skills")
	require.True(t, result.Success, "install failed: %s", result.Error)
	assert.Equal(t, filepath.Join(base, "etc"), result.Path)
	assert.True(t, strings.HasPrefix(result.Path, base+string(filepath.Separator)), "install escaped the skills directory: %s", result.Path)
	assert.NoDirExists(t, filepath.Join(cwd, "etc"))
}

func TestInstallSkillForAgentUnknownAgent(t *testing.T) {
	registry := newTestRegistry(t, filepath.Join(t.TempDir(), "global", "skills"))
	inst := New(registry)

	result := inst.InstallSkillForAgent(context.Background(), Skill{Path: newTestSkill(t)}, "nonexistent", Options{Cwd: t.TempDir()})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unknown agent type")
}

func TestInstallSkillForAgentMissingSource(t *testing.T) {
	cwd := t.TempDir()
	registry := newTestRegistry(t, filepath.Join(t.TempDir(), "global", "skills"))
	inst := New(registry)

	result := inst.InstallSkillForAgent(context.Background(), Skill{Path: filepath.Join(t.TempDir(), "nope")}, testAgent, Options{Cwd: cwd})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "failed to read skill directory")
}

func TestInstallSkillForAgentIdempotent(t *testing.T) {
	cwd := t.TempDir()
	registry := newTestRegistry(t, filepath.Join(t.TempDir(), "global", "skills"))
	inst := New(registry)

	srcDir := newTestSkill(t)
	skill := Skill{Path: srcDir}

	first := inst.InstallSkillForAgent(context.Background(), skill, testAgent, Options{Cwd: cwd})
	require.True(t, first.Success, "install failed: %s", first.Error)

	// Stale content gets overwritten on reinstall
	require.NoError(t, os.WriteFile(filepath.Join(first.Path, "main.py"), []byte("stale"), 0o644))

	second := inst.InstallSkillForAgent(context.Background(), skill, testAgent, Options{Cwd: cwd})
	require.True(t, second.Success, "reinstall failed: %s", second.Error)
	assert.Equal(t, first.Path, second.Path)

	content, err := os.ReadFile(filepath.Join(second.Path, "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('hello')\n", string(content))
}

func TestIsSkillInstalled(t *testing.T) {
	cwd := t.TempDir()
	registry := newTestRegistry(t, filepath.Join(t.TempDir(), "global", "skills"))
	inst := New(registry)
	ctx := context.Background()
	opts := Options{Cwd: cwd}

	assert.False(t, inst.IsSkillInstalled(ctx, "my-skill", testAgent, opts))

	result := inst.InstallSkillForAgent(ctx, Skill{Path: newTestSkill(t)}, testAgent, opts)
	require.True(t, result.Success, "install failed: %s", result.Error)

	assert.True(t, inst.IsSkillInstalled(ctx, "my-skill", testAgent, opts))

	// The probe sanitizes names the same way install does
	assert.True(t, inst.IsSkillInstalled(ctx, "my-skill..", testAgent, opts))
	assert.False(t, inst.IsSkillInstalled(ctx, "other-skill", testAgent, opts))
}

func TestIsSkillInstalledUnknownAgent(t *testing.T) {
	registry := newTestRegistry(t, filepath.Join(t.TempDir(), "global", "skills"))
	inst := New(registry)

	assert.False(t, inst.IsSkillInstalled(context.Background(), "my-skill", "nonexistent", Options{Cwd: t.TempDir()}))
}

func TestGetInstallPath(t *testing.T) {
	cwd := t.TempDir()
	globalDir := filepath.Join(t.TempDir(), "global", "skills")
	registry := newTestRegistry(t, globalDir)
	inst := New(registry)

	path, err := inst.GetInstallPath("my-skill", testAgent, Options{Cwd: cwd})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, ".testagent", "skills", "my-skill"), path)

	// No filesystem writes
	assert.NoDirExists(t, path)

	globalPath, err := inst.GetInstallPath("my-skill", testAgent, Options{Global: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(globalDir, "my-skill"), globalPath)
}

func TestGetInstallPathUnknownAgent(t *testing.T) {
	registry := newTestRegistry(t, filepath.Join(t.TempDir(), "global", "skills"))
	inst := New(registry)

	_, err := inst.GetInstallPath("my-skill", "nonexistent", Options{Cwd: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown agent type")
}

func TestGetInstallPathMatchesInstall(t *testing.T) {
	cwd := t.TempDir()
	registry := newTestRegistry(t, filepath.Join(t.TempDir(), "global", "skills"))
	inst := New(registry)
	opts := Options{Cwd: cwd}

	names := []string{"my-skill", "../../etc", "  spaced  ", "..."}
	for _, name := range names {
		path, err := inst.GetInstallPath(name, testAgent, opts)
		require.NoError(t, err)

		result := inst.InstallSkillForAgent(context.Background(), Skill{Name: name, Path: newTestSkill(t)}, testAgent, opts)
		require.True(t, result.Success, "install failed for %q: %s", name, result.Error)
		assert.Equal(t, path, result.Path, "path mismatch for %q", name)
	}
}

func TestExcluded(t *testing.T) {
	assert.True(t, excluded("README.md"))
	assert.True(t, excluded("metadata.json"))
	assert.True(t, excluded("_template.md"))
	assert.True(t, excluded("_"))

	assert.False(t, excluded("readme.md"))
	assert.False(t, excluded("SKILL.md"))
	assert.False(t, excluded("main.py"))
	assert.False(t, excluded("notes"))
}
