package handlers

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/booster"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
	ws "github.com/silasary/Magic-Booster-Pack-Generator/pkg/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			// Non-browser clients (no Origin) are allowed.
			return true
		}
		originMu.RLock()
		defer originMu.RUnlock()
		if devAllowAll {
			return true
		}
		if devMode && isLoopback(origin) {
			return true
		}
		return allowedOrigins[origin]
	},
}

// Origin policy, set once by main before the router starts serving.
var (
	originMu       sync.RWMutex
	allowedOrigins = map[string]bool{}
	devMode        = false
	devAllowAll    = false
)

func SetWebSocketOriginPolicy(isDev bool, allowAllDev bool, origins []string) {
	originMu.Lock()
	defer originMu.Unlock()
	devMode = isDev
	devAllowAll = allowAllDev
	allowedOrigins = map[string]bool{}
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowedOrigins[o] = true
		}
	}
}

func isLoopback(origin string) bool {
	for _, prefix := range []string{
		"http://localhost:", "http://127.0.0.1:", "http://[::1]:",
		"https://localhost:", "https://127.0.0.1:", "https://[::1]:",
	} {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}

// boxEvent is one message on a box-generation stream.
type boxEvent struct {
	Type  string       `json:"type"` // pack|error|done
	Index int          `json:"index,omitempty"`
	Total int          `json:"total,omitempty"`
	Pack  *models.Pack `json:"pack,omitempty"`
	Error string       `json:"error,omitempty"`
}

// BoxStreamHandler streams a box one pack at a time, so clients can render
// progress instead of waiting on 24-36 packs in one response.
// GET /ws/box/:set
func BoxStreamHandler(gen *booster.Generator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		stream := ws.NewStream(conn)
		defer stream.Close()

		setCode := strings.ToLower(c.Param("set"))
		run, err := gen.NewRun(c.Request.Context(), setCode, parseOptions(c))
		if err != nil {
			_ = stream.Send(boxEvent{Type: "error", Error: err.Error()})
			return
		}

		total := run.Rules.PacksPerBox
		for i := 1; i <= total; i++ {
			pack, err := run.Next()
			if err != nil {
				logger.Warn("box stream aborted",
					zap.String("set", setCode), zap.Int("pack", i), zap.Error(err))
				_ = stream.Send(boxEvent{Type: "error", Index: i, Total: total, Error: err.Error()})
				return
			}
			if err := stream.Send(boxEvent{Type: "pack", Index: i, Total: total, Pack: pack}); err != nil {
				return
			}
		}
		_ = stream.Send(boxEvent{Type: "done", Total: total})
	}
}
