package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"syncing.md":   {Data: []byte("# Syncing\n\nHow to sync.")},
		"targets.txt":  {Data: []byte("Plain targets topic.")},
		"ignored.json": {Data: []byte("{}")},
	}
}

func TestNewScansSupportedExtensions(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"syncing", "targets"}, tm.ListTopics())

	_, ok := tm.GetTopic("ignored")
	assert.False(t, ok)

	topic, ok := tm.GetTopic("syncing")
	require.True(t, ok)
	assert.Equal(t, ".md", topic.Format)
	assert.Contains(t, topic.Content, "How to sync.")
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# raw", r.Render("# raw", ".md"))
}

func TestGlamourRendererPassesThroughNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}

func TestInitializeHelpCommand(t *testing.T) {
	rootCmd := &cobra.Command{Use: "skilldock"}
	require.NoError(t, Initialize(rootCmd, testFS(), Options{}))

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	rootCmd.SetArgs([]string{"help", "topics"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "syncing")
	assert.Contains(t, out.String(), "targets")

	out.Reset()
	rootCmd.SetArgs([]string{"help", "targets"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Plain targets topic.")

	out.Reset()
	rootCmd.SetArgs([]string{"help", "no-such-topic"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Unknown help topic")
}
