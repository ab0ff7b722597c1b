package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesCommandPrintsTable(t *testing.T) {
	var out bytes.Buffer
	cmd := &routesCmd{BasePath: "/admin"}
	require.NoError(t, cmd.Run(context.Background(), &out))
	text := out.String()
	assert.Contains(t, text, "PATH")
	assert.Contains(t, text, "/admin/analytics")
	assert.Contains(t, text, "Notifications")
	assert.Len(t, strings.Split(strings.TrimSpace(text), "\n"), 7)
}

func TestRoutesCommandResolve(t *testing.T) {
	var out bytes.Buffer
	cmd := &routesCmd{BasePath: "/", Resolve: "/Users?tab=x"}
	require.NoError(t, cmd.Run(context.Background(), &out))
	assert.Contains(t, out.String(), "/users")
	assert.NotContains(t, out.String(), "/calendar")

	cmd.Resolve = "/nope"
	if err := cmd.Run(context.Background(), io.Discard); err == nil {
		t.Fatalf("expected unknown route error")
	}
}

func TestFixturesDumpValidates(t *testing.T) {
	var dump bytes.Buffer
	require.NoError(t, (&fixturesDumpCmd{}).Run(context.Background(), &dump))

	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, dump.Bytes(), 0o600))

	var out bytes.Buffer
	require.NoError(t, (&fixturesValidateCmd{File: path}).Run(context.Background(), &out))
	assert.Contains(t, out.String(), "ok (version 1, defaults")
}

func TestFixturesValidateRejectsBadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\nusers:\n  - name: Ann\n    status: Away\n"), 0o600))
	if err := (&fixturesValidateCmd{File: path}).Run(context.Background(), io.Discard); err == nil {
		t.Fatalf("expected schema error for unknown status")
	}
}

type recordingRenderer struct {
	names []string
}

func (r *recordingRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	if len(out) > 0 && out[0] != nil {
		_, _ = io.WriteString(out[0], "<html>"+name+"</html>")
	}
	return "<section></section>", nil
}

func TestRenderCommandWritesFile(t *testing.T) {
	renderer := &recordingRenderer{}
	path := filepath.Join(t.TempDir(), "settings.html")
	cmd := &renderCmd{Path: "/settings", Out: path, BasePath: "/admin", Dark: true, renderer: renderer}
	require.NoError(t, cmd.Run(context.Background(), io.Discard))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>layout</html>", string(data))
	assert.Equal(t, []string{"pages/settings", "layout"}, renderer.names)
}
