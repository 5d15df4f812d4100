// Package preview serves the shared workspace over HTTP so collaborators
// can open a live view of the project in a browser. Served HTML gets a
// reload-signaling script injected; the script listens on the websocket
// endpoint and refreshes the page on every live_reload envelope.
package preview

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MazyLawzey/websync-live/internal/observability"
)

// mimeTypes maps file extensions to content types for workspace files.
// Unknown extensions are served as application/octet-stream.
var mimeTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".mjs":  "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".woff": "font/woff",
	".woff2": "font/woff2",
	".ttf":  "font/ttf",
	".eot":  "application/vnd.ms-fontobject",
	".otf":  "font/otf",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".pdf":  "application/pdf",
	".xml":  "application/xml",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".webp": "image/webp",
}

// liveReloadScript reconnects with backoff and reloads the page when the
// server signals a file change.
const liveReloadScript = `<script>
(function() {
    var ws;
    var reconnectDelay = 1000;

    function connect() {
        ws = new WebSocket('ws://' + location.host + '/ws');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            try {
                var msg = JSON.parse(e.data);
                if (msg.type === 'live_reload') {
                    location.reload();
                }
            } catch(err) {}
        };

        ws.onclose = function() {
            setTimeout(connect, reconnectDelay);
            reconnectDelay = Math.min(reconnectDelay * 1.5, 5000);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    if (document.readyState === 'complete' || document.readyState === 'interactive') {
        connect();
    } else {
        window.addEventListener('DOMContentLoaded', connect);
    }
})();
</script>`

const notFoundPage = `<!DOCTYPE html><html><body><h1>404 - File not found</h1></body></html>`

// InjectLiveReload inserts the reload script into an HTML document, before
// </body> when present, appended otherwise.
func InjectLiveReload(html string) string {
	if strings.Contains(html, "</body>") {
		return strings.Replace(html, "</body>", liveReloadScript+"\n</body>", 1)
	}
	return html + liveReloadScript
}

// Handler serves files under workspacePath. Requests resolving outside the
// workspace are rejected; directories fall back to their index.html.
func Handler(workspacePath string) gin.HandlerFunc {
	root, err := filepath.Abs(workspacePath)
	if err != nil {
		root = workspacePath
	}

	return func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		if reqPath == "/" {
			reqPath = "/index.html"
		}

		filePath := filepath.Join(root, filepath.FromSlash(reqPath))

		// filepath.Join cleans the path, but keep an explicit containment
		// check so a crafted request can never escape the workspace.
		if filePath != root && !strings.HasPrefix(filePath, root+string(os.PathSeparator)) {
			c.String(http.StatusForbidden, "Forbidden")
			return
		}

		if info, err := os.Stat(filePath); err == nil && info.IsDir() {
			filePath = filepath.Join(filePath, "index.html")
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
				return
			}
			observability.Logger().Warn("preview read failed", "path", filePath, "error", err)
			c.String(http.StatusInternalServerError, "Error reading file")
			return
		}

		ext := strings.ToLower(filepath.Ext(filePath))
		contentType, ok := mimeTypes[ext]
		if !ok {
			contentType = "application/octet-stream"
		}

		if ext == ".html" || ext == ".htm" {
			c.Data(http.StatusOK, contentType+"; charset=utf-8", []byte(InjectLiveReload(string(data))))
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}
