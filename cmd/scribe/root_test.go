package scribe

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/scribe/pkg/config"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with isolated config and state directories
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRenderCmd(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		input := writeFile(t, "input.txt", `\bold{hi} there`)

		out, _, err := execute(t, "", "render", "--format", "ascii", "--width", "20", input)
		require.NoError(t, err)
		assert.Equal(t, "HI there\n", out)
	})

	t.Run("stdin_with_defaults", func(t *testing.T) {
		out, errOut, err := execute(t, `\bold{hi}`, "render")
		require.NoError(t, err)
		assert.Equal(t, "HI\n", out, "auto format is ascii when not writing to a terminal")
		assert.Empty(t, errOut)
	})

	t.Run("unknown_command_is_a_warning", func(t *testing.T) {
		out, errOut, err := execute(t, `\mystery{x} y`, "render", "-")
		require.NoError(t, err)
		assert.Equal(t, "x y\n", out)
		assert.Contains(t, errOut, "Warning: no action for command 'mystery'")
	})

	t.Run("yaml_input", func(t *testing.T) {
		out, _, err := execute(t, "- name: bold\n  arguments: [hi]\n- \" you\"\n", "render", "--input", "yaml", "-")
		require.NoError(t, err)
		assert.Equal(t, "HI you\n", out)
	})

	t.Run("xml_file", func(t *testing.T) {
		input := writeFile(t, "input.xml", `<command>a <bold>b</bold></command>`)

		out, _, err := execute(t, "", "render", input)
		require.NoError(t, err)
		assert.Equal(t, "a B\n", out)
	})

	t.Run("definitions", func(t *testing.T) {
		defs := writeFile(t, "actions.toml", "[[action]]\nname = \"shout\"\nkind = \"upper\"\n")

		out, errOut, err := execute(t, `\shout{hey} ho`, "render", "--definitions", defs)
		require.NoError(t, err)
		assert.Equal(t, "HEY ho\n", out)
		assert.Empty(t, errOut)
	})

	t.Run("output_file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out.txt")

		out, _, err := execute(t, `\bold{hi}`, "render", "-o", target)
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "HI", string(data))
	})

	t.Run("plain_format", func(t *testing.T) {
		out, errOut, err := execute(t, `a \bold{b}`, "render", "--format", "plain")
		require.NoError(t, err)
		assert.Equal(t, "a b\n", out)
		assert.Contains(t, errOut, "bold")
	})

	t.Run("config_file", func(t *testing.T) {
		cfg := writeFile(t, "config.toml", "[render]\nwidth = 10\nformat = \"ascii\"\n")

		out, _, err := execute(t, `\center{ab}`, "--config", cfg, "render")
		require.NoError(t, err)
		assert.Equal(t, "    ab    \n", out)
	})

	t.Run("invalid_width", func(t *testing.T) {
		_, _, err := execute(t, "x", "render", "--width", "0")
		require.Error(t, err)
		assert.Equal(t, errors.ErrConfigValid, errors.GetErrorCode(err))
	})

	t.Run("missing_input", func(t *testing.T) {
		_, _, err := execute(t, "", "render", filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
		assert.Equal(t, errors.ErrFileRead, errors.GetErrorCode(err))
	})

	t.Run("invalid_usage_fails", func(t *testing.T) {
		_, _, err := execute(t, `\bold{a}{b}`, "render")
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidUsage, errors.GetErrorCode(err))
	})

	t.Run("watch_needs_a_file", func(t *testing.T) {
		_, _, err := execute(t, "x", "render", "--watch")
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidUsage, errors.GetErrorCode(err))
	})
}

// syncBuffer is written by the watch loop while the test reads it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRenderWatch(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	input := writeFile(t, "input.txt", `\bold{one}`)

	cfg := &config.Config{
		Render: config.Render{Width: 20, Format: "ascii", Input: "auto"},
		Watch:  config.Watch{Debounce: 10 * time.Millisecond},
	}
	out := &syncBuffer{}
	r := &renderer{
		fs:     afero.NewOsFs(),
		cfg:    cfg,
		source: input,
		stdout: out,
		stderr: &syncBuffer{},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.watch(ctx) }()

	require.Eventually(t, func() bool { return out.String() == "ONE\n" }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(input, []byte(`\bold{two}`), 0644))
	require.Eventually(t, func() bool { return strings.HasSuffix(out.String(), "TWO\n") }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestTreeCmd(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		out, _, err := execute(t, `a \bold{b}`, "tree")
		require.NoError(t, err)
		assert.Contains(t, out, "name: bold")
		assert.Contains(t, out, "arguments:")
	})

	t.Run("markup_from_yaml", func(t *testing.T) {
		input := writeFile(t, "tree.yaml", "name: bold\narguments: [b]\n")

		out, _, err := execute(t, "", "tree", "--to", "markup", input)
		require.NoError(t, err)
		assert.Contains(t, out, `\bold{b}`)
	})

	t.Run("bad_target", func(t *testing.T) {
		_, _, err := execute(t, "x", "tree", "--to", "xml")
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidUsage, errors.GetErrorCode(err))
	})
}

func TestMiscCmds(t *testing.T) {
	t.Run("version", func(t *testing.T) {
		out, _, err := execute(t, "", "version")
		require.NoError(t, err)
		assert.Equal(t, "scribe dev (commit unknown, built unknown)\n", out)
	})

	t.Run("completion", func(t *testing.T) {
		out, _, err := execute(t, "", "completion", "bash")
		require.NoError(t, err)
		assert.Contains(t, out, "scribe")
	})

	t.Run("man", func(t *testing.T) {
		out, _, err := execute(t, "", "man")
		require.NoError(t, err)
		assert.Contains(t, out, ".TH \"SCRIBE\"")
	})

	t.Run("help_topic", func(t *testing.T) {
		out, _, err := execute(t, "", "help", "syntax")
		require.NoError(t, err)
		assert.Contains(t, out, "Markup syntax")
	})

	t.Run("help_topics_list", func(t *testing.T) {
		out, _, err := execute(t, "", "help", "topics")
		require.NoError(t, err)
		for _, topic := range []string{"syntax", "tables", "patterns", "definitions", "--format", "--width"} {
			assert.Contains(t, out, topic)
		}
	})

	t.Run("no_command", func(t *testing.T) {
		_, _, err := execute(t, "")
		require.Error(t, err)
		assert.Equal(t, ExitUsage, ExitCode(err))
	})
}

func TestActionsCmd(t *testing.T) {
	lines := func(out string) []string {
		return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	}

	t.Run("ascii", func(t *testing.T) {
		out, _, err := execute(t, "", "actions", "--format", "ascii")
		require.NoError(t, err)

		got := lines(out)
		assert.Contains(t, got, "bold")
		assert.Contains(t, got, "table")
		assert.Contains(t, got, "icon (silent)")
		assert.Regexp(t, `^\d+ action\(s\)$`, got[len(got)-1])
	})

	t.Run("plain", func(t *testing.T) {
		out, _, err := execute(t, "", "actions", "--format", "plain")
		require.NoError(t, err)
		assert.Equal(t, "baseCommand\ncommand\n2 action(s)\n", out)
	})

	t.Run("definitions", func(t *testing.T) {
		defs := writeFile(t, "actions.yaml", "action:\n  - name: shout\n    kind: upper\n")

		out, _, err := execute(t, "", "actions", "--format", "plain", "--definitions", defs)
		require.NoError(t, err)
		assert.Equal(t, "baseCommand\ncommand\nshout\n3 action(s)\n", out)
	})

	t.Run("removed_action", func(t *testing.T) {
		defs := writeFile(t, "actions.toml", "[[action]]\nname = \"bold\"\nkind = \"remove\"\n")

		out, _, err := execute(t, "", "actions", "--format", "ascii", "--definitions", defs)
		require.NoError(t, err)
		assert.NotContains(t, lines(out), "bold")
		assert.Contains(t, lines(out), "emph")
	})

	t.Run("remove_unknown", func(t *testing.T) {
		defs := writeFile(t, "actions.yaml", "action:\n  - name: bold\n    kind: remove\n")

		_, _, err := execute(t, "", "actions", "--format", "plain", "--definitions", defs)
		require.Error(t, err)
		assert.Equal(t, ExitFailure, ExitCode(err))
		assert.Contains(t, FormatError(err), "action=bold")
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"usage", errors.New(errors.ErrInvalidUsage, "bad flag"), ExitUsage},
		{"config", errors.New(errors.ErrConfigValid, "bad width"), ExitFailure},
		{"plain_error", assert.AnError, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}

	t.Run("bad_tree_target", func(t *testing.T) {
		_, _, err := execute(t, "x", "tree", "--to", "xml")
		assert.Equal(t, ExitUsage, ExitCode(err))
	})
}

func TestFormatError(t *testing.T) {
	err := errors.New(errors.ErrConfigValid, "bad width").
		WithDetails(map[string]interface{}{"value": -3, "key": "render.width"})
	assert.Contains(t, FormatError(err), "Error: [CONFIG_INVALID] bad width (key=render.width, value=-3)")

	assert.Contains(t, FormatError(assert.AnError), "Error: "+assert.AnError.Error())
	assert.NotContains(t, FormatError(assert.AnError), "(")
}
