package preview

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreviewServer(t *testing.T) (string, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	workspace := t.TempDir()
	r := gin.New()
	r.NoRoute(Handler(workspace))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return workspace, srv
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		sb.Write(buf[:n])
		if err != nil {
			break
		}
	}
	return resp, sb.String()
}

func TestInjectLiveReloadBeforeBodyClose(t *testing.T) {
	html := "<html><body><p>hi</p></body></html>"
	out := InjectLiveReload(html)

	assert.Contains(t, out, "<script>")
	assert.Less(t, strings.Index(out, "<script>"), strings.Index(out, "</body>"))
	assert.Equal(t, 1, strings.Count(out, "</body>"))
}

func TestInjectLiveReloadAppendsWithoutBody(t *testing.T) {
	out := InjectLiveReload("<p>fragment</p>")
	assert.True(t, strings.HasPrefix(out, "<p>fragment</p>"))
	assert.Contains(t, out, "live_reload")
}

func TestServeHTMLInjectsReloadScript(t *testing.T) {
	workspace, srv := newPreviewServer(t)
	writeFile(t, workspace, "index.html", "<html><body><h1>Home</h1></body></html>")

	resp, body := get(t, srv, "/index.html")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "<h1>Home</h1>")
	assert.Contains(t, body, "live_reload")
}

func TestRootFallsBackToIndex(t *testing.T) {
	workspace, srv := newPreviewServer(t)
	writeFile(t, workspace, "index.html", "<html><body>root</body></html>")

	resp, body := get(t, srv, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "root")
}

func TestDirectoryServesItsIndex(t *testing.T) {
	workspace, srv := newPreviewServer(t)
	writeFile(t, workspace, "docs/index.html", "<html><body>docs</body></html>")

	resp, body := get(t, srv, "/docs")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "docs")
}

func TestNonHTMLServedVerbatim(t *testing.T) {
	workspace, srv := newPreviewServer(t)
	writeFile(t, workspace, "app.js", "console.log('hi')")
	writeFile(t, workspace, "style.css", "body{}")
	writeFile(t, workspace, "data.bin", "\x00\x01")

	resp, body := get(t, srv, "/app.js")
	assert.Equal(t, "application/javascript", resp.Header.Get("Content-Type"))
	assert.Equal(t, "console.log('hi')", body)
	assert.NotContains(t, body, "<script>")

	resp, _ = get(t, srv, "/style.css")
	assert.Equal(t, "text/css", resp.Header.Get("Content-Type"))

	resp, _ = get(t, srv, "/data.bin")
	assert.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))
}

func TestMissingFileGets404Page(t *testing.T) {
	_, srv := newPreviewServer(t)

	resp, body := get(t, srv, "/nope.html")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "404 - File not found")
}

func TestTraversalStaysInsideWorkspace(t *testing.T) {
	workspace, srv := newPreviewServer(t)
	writeFile(t, workspace, "index.html", "<html></html>")

	// Dot segments are cleaned away, so the request resolves inside the
	// workspace and simply misses.
	resp, _ := get(t, srv, "/../../etc/passwd")
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)

	resp, body := get(t, srv, "/%2e%2e/%2e%2e/etc/passwd")
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "root:")
}
