package http

import (
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/avelichko/gameroom-server/internal/auth"
	"github.com/avelichko/gameroom-server/internal/calc"
	"github.com/avelichko/gameroom-server/internal/config"
	"github.com/avelichko/gameroom-server/internal/core"
	"github.com/avelichko/gameroom-server/internal/log"
	"github.com/avelichko/gameroom-server/internal/store"
	"github.com/avelichko/gameroom-server/internal/store/sqlite"
)

const testJWTSecret = "test-secret"

// newTestServer builds a full server against an in-memory store.
func newTestServer(t *testing.T) (*stdhttp.Server, store.Store, *core.Registry) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.ReadHeaderTimeout = time.Second
	cfg.JWTSecret = testJWTSecret

	registry := core.NewRegistry()
	server := NewServer(registry, st, testJWTConfig(), calc.NewService(), &cfg, log.Nop())
	return server, st, registry
}

func testJWTConfig() *auth.JWTConfig {
	return &auth.JWTConfig{
		Secret:   []byte(testJWTSecret),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
	}
}
