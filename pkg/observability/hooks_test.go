package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopCollectorHooks{}
	c.OnProjectStart(ctx, "infra")
	c.OnProjectComplete(ctx, "infra", 2, time.Second, nil)

	ch := NoopCacheHooks{}
	ch.OnCacheHit(ctx, "tree")
	ch.OnCacheMiss(ctx, "content")
	ch.OnCacheSet(ctx, "content", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "gitlab.com", "/api/v4/projects")
	h.OnResponse(ctx, "GET", "gitlab.com", "/api/v4/projects", 200, time.Second)
	h.OnError(ctx, "GET", "gitlab.com", "/api/v4/projects", errors.New("timeout"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Collector().(NoopCollectorHooks); !ok {
		t.Error("Collector() should return NoopCollectorHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customCollector := &testCollectorHooks{}
	SetCollectorHooks(customCollector)
	if Collector() != customCollector {
		t.Error("SetCollectorHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Collector().(NoopCollectorHooks); !ok {
		t.Error("Reset() should restore NoopCollectorHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testHTTPHooks{}
	SetHTTPHooks(custom)
	SetHTTPHooks(nil)

	if HTTP() != custom {
		t.Error("SetHTTPHooks(nil) should be ignored")
	}
}

type testCollectorHooks struct{ NoopCollectorHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
