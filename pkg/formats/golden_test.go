package formats_test

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/arthur-debert/scribe/pkg/formats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// Golden archives hold "key: value" settings in their comment and the
// files "input" (markup), "output" and optionally "errors" (one error key
// per line). The final newline of every file is not part of its content.
func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			require.NoError(t, err)

			settings := goldenSettings(t, archive.Comment)
			files := map[string]string{}
			for _, f := range archive.Files {
				files[f.Name] = strings.TrimSuffix(string(f.Data), "\n")
			}
			require.Contains(t, files, "input")
			require.Contains(t, files, "output")

			doc, err := formats.New(settings)
			require.NoError(t, err)
			require.NoError(t, doc.Add(command.Parse(files["input"])))

			out, err := doc.Contents()
			require.NoError(t, err)
			assert.Equal(t, files["output"], out)

			var keys []string
			for _, e := range doc.Errors() {
				keys = append(keys, errors.Key(e))
			}
			assert.Equal(t, files["errors"], strings.Join(keys, "\n"))
		})
	}
}

func goldenSettings(t *testing.T, comment []byte) formats.Settings {
	t.Helper()
	settings := formats.Settings{Format: formats.ASCII, Width: 40}

	scanner := bufio.NewScanner(bytes.NewReader(comment))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "format":
			f, err := formats.ParseFormat(value)
			require.NoError(t, err)
			settings.Format = f
		case "width":
			w, err := strconv.Atoi(value)
			require.NoError(t, err)
			settings.Width = w
		}
	}
	return settings
}
