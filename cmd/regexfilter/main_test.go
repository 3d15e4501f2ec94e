package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/filter"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/logging"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/reflection"
)

const widgetTree = `name: demo
children:
  - name: Widget
    kind: class
    children:
      - name: _internal
        kind: property
      - name: render
        kind: method
  - name: _helper
    kind: function
  - name: helper
    kind: function
`

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func decodeTree(t *testing.T, s string) *reflection.Project {
	t.Helper()
	p, err := reflection.Decode(strings.NewReader(s))
	require.NoError(t, err)
	return p
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"apply", "options", "version"}, names)

	for _, d := range filter.Declarations() {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(d.Name), "missing flag --%s", d.Name)
	}
}

func TestApply_MarksMatchesPrivate(t *testing.T) {
	out, err := execute(t, widgetTree, "apply", "-")
	require.NoError(t, err)

	p := decodeTree(t, out)
	internal, ok := p.Find("Widget._internal")
	require.True(t, ok)
	assert.True(t, internal.HasFlag(reflection.FlagPrivate))

	helper, ok := p.Find("_helper")
	require.True(t, ok)
	assert.True(t, helper.HasFlag(reflection.FlagPrivate))

	render, ok := p.Find("Widget.render")
	require.True(t, ok)
	assert.False(t, render.HasFlag(reflection.FlagPrivate))

	assert.Equal(t, 5, p.Len())
}

func TestApply_ExcludeRemovesMatches(t *testing.T) {
	out, err := execute(t, widgetTree, "apply", "--removeRegexExclude")
	require.NoError(t, err)

	p := decodeTree(t, out)
	_, ok := p.Find("Widget._internal")
	assert.False(t, ok)
	_, ok = p.Find("_helper")
	assert.False(t, ok)
	assert.Equal(t, 3, p.Len())
}

func TestApply_ScopeFlag(t *testing.T) {
	out, err := execute(t, widgetTree, "apply", "--removeRegexExclude", "--removeRegexScope", "function")
	require.NoError(t, err)

	p := decodeTree(t, out)
	_, ok := p.Find("_helper")
	assert.False(t, ok)
	_, ok = p.Find("Widget._internal")
	assert.True(t, ok, "property is outside the function scope")
}

func TestApply_JSONOutput(t *testing.T) {
	out, err := execute(t, widgetTree, "apply", "--format", "json", "-")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "demo", doc["name"])
}

func TestApply_InvalidPattern(t *testing.T) {
	_, err := execute(t, widgetTree, "apply", "--removeRegex", "([")
	require.Error(t, err)
	assert.ErrorIs(t, err, filter.ErrInvalidPattern)
}

func TestApply_InvalidFormat(t *testing.T) {
	_, err := execute(t, widgetTree, "apply", "--format", "xml")
	assert.Error(t, err)
}

func TestApply_ConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "regexfilter.yaml", "removeRegex: \"^render$\"\n")
	tree := writeFile(t, dir, "tree.yaml", widgetTree)
	output := filepath.Join(dir, "out.yaml")

	t.Setenv("REGEXFILTER_REMOVE_REGEX_EXCLUDE", "true")

	_, err := execute(t, "", "apply", "--config", cfg, "--output", output, tree)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	p := decodeTree(t, string(data))

	_, ok := p.Find("Widget.render")
	assert.False(t, ok, "env enables exclude for the file pattern")
	_, ok = p.Find("_helper")
	assert.True(t, ok, "file pattern replaces the default")
}

func TestApply_FlagBeatsEnv(t *testing.T) {
	t.Setenv("REGEXFILTER_REMOVE_REGEX", "^helper$")

	out, err := execute(t, widgetTree, "apply", "--removeRegexExclude", "--removeRegex", "^render$")
	require.NoError(t, err)

	p := decodeTree(t, out)
	_, ok := p.Find("helper")
	assert.True(t, ok)
	_, ok = p.Find("Widget.render")
	assert.False(t, ok)
}

func TestApply_WatchNeedsFile(t *testing.T) {
	_, err := execute(t, widgetTree, "apply", "--watch", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin")

	dir := t.TempDir()
	tree := writeFile(t, dir, "tree.yaml", widgetTree)
	_, err = execute(t, "", "apply", "--watch", "--output", tree, tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watched tree")
}

func TestOptionsCommand(t *testing.T) {
	out, err := execute(t, "", "options", "--removeRegexScope", "class,method")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(filter.Declarations())+1)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, out, filter.DefaultPattern)
	assert.Contains(t, out, "class,method")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "regexfilter dev\n", out)
}

func TestFileWatcher_RerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	tree := writeFile(t, dir, "tree.yaml", widgetTree)
	writeFile(t, dir, "unrelated.yaml", "x: 1\n")

	w, err := newFileWatcher([]string{tree})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, logging.NewNop(), func() error {
			runs.Add(1)
			return nil
		})
	}()

	writeFile(t, dir, "unrelated.yaml", "x: 2\n")
	writeFile(t, dir, "tree.yaml", widgetTree+"  - name: extra\n    kind: variable\n")

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
