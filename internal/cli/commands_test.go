package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilldock/skilldock/pkg/testutil"
)

// setupHome points HOME at a fresh temp directory and creates the shared
// skills directory inside it. Returns the home and shared paths.
func setupHome(t *testing.T) (string, string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	shared := testutil.CreateDir(t, home, "skilldock/skills")
	return home, shared
}

// execute runs the root command with the given args and returns its
// combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd := NewRootCmd()
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmdLinksTargets(t *testing.T) {
	home, shared := setupHome(t)

	out, err := execute(t, "--format", "text")
	require.NoError(t, err)

	assert.True(t, testutil.IsSymlinkTo(t, filepath.Join(home, ".claude", "skills"), shared))
	assert.Contains(t, out, "linked")
	assert.Contains(t, out, "claude")
}

func TestRootCmdBacksUpRealDirectory(t *testing.T) {
	home, shared := setupHome(t)

	claudeSkills := testutil.CreateDir(t, home, ".claude/skills")
	testutil.CreateFile(t, claudeSkills, "notes.md", "keep me")

	out, err := execute(t, "--format", "text")
	require.NoError(t, err)

	assert.True(t, testutil.IsSymlinkTo(t, claudeSkills, shared))
	backup := claudeSkills + ".backup"
	assert.True(t, testutil.DirExists(t, backup))

	content, readErr := os.ReadFile(filepath.Join(backup, "notes.md"))
	require.NoError(t, readErr)
	assert.Equal(t, "keep me", string(content))

	assert.Contains(t, out, "backed up and linked")
}

func TestRootCmdVersionedFamily(t *testing.T) {
	home, shared := setupHome(t)

	root := testutil.CreateDir(t, home, ".claude/plugins/cache/skilldock-marketplace/skilldock-skills")
	v1 := testutil.CreateDir(t, root, "1.0.0")

	_, err := execute(t, "--format", "text")
	require.NoError(t, err)

	assert.True(t, testutil.IsSymlinkTo(t, v1, shared))
	assert.True(t, testutil.DirExists(t, v1+".backup"))
}

func TestRootCmdFailsWithoutSharedDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	_, err := execute(t, "--format", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shared")

	// No target was touched.
	_, statErr := os.Lstat(filepath.Join(home, ".claude", "skills"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLinkCmdDryRun(t *testing.T) {
	home, _ := setupHome(t)

	out, err := execute(t, "link", "--dry-run", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "would link")
	assert.Contains(t, out, "DRY RUN")

	_, statErr := os.Lstat(filepath.Join(home, ".claude", "skills"))
	assert.True(t, os.IsNotExist(statErr), "dry run must not create the symlink")
}

func TestLinkCmdIsIdempotent(t *testing.T) {
	home, shared := setupHome(t)

	_, err := execute(t, "link", "--format", "text")
	require.NoError(t, err)

	out, err := execute(t, "link", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "already linked")
	assert.True(t, testutil.IsSymlinkTo(t, filepath.Join(home, ".claude", "skills"), shared))
	assert.False(t, testutil.DirExists(t, filepath.Join(home, ".claude", "skills.backup")))
}

func TestStatusCmdDoesNotMutate(t *testing.T) {
	home, _ := setupHome(t)

	out, err := execute(t, "status", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Shared directory:")
	assert.Contains(t, out, "not linked yet")

	_, statErr := os.Lstat(filepath.Join(home, ".claude", "skills"))
	assert.True(t, os.IsNotExist(statErr), "status must not create anything")
}

func TestStatusCmdReportsLinked(t *testing.T) {
	home, shared := setupHome(t)
	testutil.CreateSymlink(t, shared, filepath.Join(home, ".claude", "skills"))

	out, err := execute(t, "status", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "linked")
}

func TestGenConfigCmd(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "genconfig")
	require.NoError(t, err)

	assert.Contains(t, out, "shared_dir")
	assert.Contains(t, out, "skilldock/skills")
	// Values are commented out in the generated template.
	assert.True(t, strings.Contains(out, "# shared_dir") || strings.Contains(out, "#shared_dir"),
		"generated config should comment out values:\n%s", out)
}

func TestGenConfigCmdEffective(t *testing.T) {
	setupHome(t)
	t.Setenv("SKILLDOCK_SHARED_DIR", "other/skills")

	out, err := execute(t, "genconfig", "--effective")
	require.NoError(t, err)

	assert.Contains(t, out, "other/skills")
}

func TestGenConfigCmdWrite(t *testing.T) {
	home, _ := setupHome(t)

	out, err := execute(t, "genconfig", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote ")

	dest := filepath.Join(home, ".config", "skilldock", "config.toml")
	_, statErr := os.Stat(dest)
	require.NoError(t, statErr)

	// A second write must refuse to overwrite.
	_, err = execute(t, "genconfig", "--write")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestVersionCmd(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "skilldock")
}

func TestHelpTopics(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "help", "syncing")
	require.NoError(t, err)
	assert.Contains(t, out, "git")
}
