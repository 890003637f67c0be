// Package topics provides a pluggable, topic-based help system for Cobra
// CLI applications. Help topics are loaded from an fs.FS (typically an
// embedded directory), making the binary self-documenting.
package topics

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// TopicManager manages help topics for a Cobra application
type TopicManager struct {
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic represents a help topic
type Topic struct {
	Name    string
	Format  string
	Content string
}

// Options configures the TopicManager
type Options struct {
	// Extensions is the list of file extensions to consider as topics.
	// Defaults to [".txt", ".md"] if not specified.
	Extensions []string

	// Renderer for formatting topic content (optional).
	// Defaults to PlainRenderer if not specified.
	Renderer Renderer
}

// New creates a TopicManager from the topic files in fsys.
func New(fsys fs.FS, opts Options) (*TopicManager, error) {
	tm := &TopicManager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}

	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}

	if err := tm.scanTopics(fsys); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	return tm, nil
}

// scanTopics walks fsys and loads every file with a supported extension
func (tm *TopicManager) scanTopics(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		supported := false
		for _, validExt := range tm.extensions {
			if ext == validExt {
				supported = true
				break
			}
		}
		if !supported {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(path), ext)
		tm.topics[name] = &Topic{
			Name:    name,
			Format:  ext,
			Content: string(content),
		}
		return nil
	})
}

// GetTopic retrieves a topic by name
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	topic, exists := tm.topics[name]
	return topic, exists
}

// ListTopics returns all available topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the formatted content of a topic
func (tm *TopicManager) Render(topic *Topic) string {
	return tm.renderer.Render(topic.Content, topic.Format)
}

// Initialize replaces the root help command with one that also resolves
// help topics.
func Initialize(rootCmd *cobra.Command, fsys fs.FS, opts Options) error {
	tm, err := New(fsys, opts)
	if err != nil {
		return err
	}

	tm.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				tm.originalHelp(rootCmd, []string{})
				return
			}

			if args[0] == "topics" {
				names := tm.ListTopics()
				if len(names) == 0 {
					cmd.Println("No help topics available.")
					return
				}
				cmd.Println("Available help topics:")
				for _, name := range names {
					cmd.Printf("  %s\n", name)
				}
				return
			}

			// Commands take precedence over topics
			if target, _, err := rootCmd.Find(args); err == nil && target != rootCmd {
				tm.originalHelp(target, args)
				return
			}

			if topic, ok := tm.GetTopic(args[0]); ok {
				cmd.Print(tm.Render(topic))
				return
			}

			cmd.Printf("Unknown help topic or command: %s\n", args[0])
		},
	}

	rootCmd.SetHelpCommand(helpCmd)
	return nil
}
