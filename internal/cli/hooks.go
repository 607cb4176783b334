package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/servicescan/pkg/observability"
)

var installHooksOnce sync.Once

// installDebugHooks routes collector, cache and HTTP events to logger at
// debug level. Only the first call has an effect.
func installDebugHooks(logger *log.Logger) {
	installHooksOnce.Do(func() {
		h := &debugHooks{logger: logger}
		observability.SetCollectorHooks(h)
		observability.SetCacheHooks(h)
		observability.SetHTTPHooks(h)
	})
}

// debugHooks implements every observability hook interface by logging.
type debugHooks struct {
	logger *log.Logger
}

func (h *debugHooks) OnProjectStart(_ context.Context, project string) {
	h.logger.Debug("project started", "project", project)
}

func (h *debugHooks) OnProjectComplete(_ context.Context, project string, manifests int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("project failed", "project", project, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("project done", "project", project, "manifests", manifests, "duration", d.Round(time.Millisecond))
}

func (h *debugHooks) OnCacheHit(_ context.Context, namespace string) {
	h.logger.Debug("cache hit", "ns", namespace)
}

func (h *debugHooks) OnCacheMiss(_ context.Context, namespace string) {
	h.logger.Debug("cache miss", "ns", namespace)
}

func (h *debugHooks) OnCacheSet(_ context.Context, namespace string, size int) {
	h.logger.Debug("cache set", "ns", namespace, "bytes", size)
}

func (h *debugHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *debugHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *debugHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request error", "method", method, "path", path, "err", err)
}

var (
	_ observability.CollectorHooks = (*debugHooks)(nil)
	_ observability.CacheHooks     = (*debugHooks)(nil)
	_ observability.HTTPHooks      = (*debugHooks)(nil)
)
