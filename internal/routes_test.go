package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bbcd/internal/controllers"
	"bbcd/internal/structures"
	"bbcd/internal/testutil"
)

// --- minimal mocks for routes test ---

type routeTestCache struct{}

func (m *routeTestCache) Get(_ string) ([]byte, bool) { return nil, false }
func (m *routeTestCache) Set(_ string, _ []byte)      {}

func routeTestController() *controllers.ApiController {
	conf := &structures.Config{
		Mirror: structures.MirrorConfig{RequestTimeout: time.Second},
	}
	return controllers.NewApiController(conf, &testutil.MockLogger{}, &testutil.MockRoundService{}, &routeTestCache{}, &testutil.MockScheduler{})
}

func TestInitRoutes_RegistersFiveRoutes(t *testing.T) {
	router := InitRoutes(routeTestController(), &structures.Config{})
	routes := router.GetRoutes()

	require.Len(t, routes, 5)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/latest")
	assert.Contains(t, urls, "/history")
	assert.Contains(t, urls, "/download")
	assert.Contains(t, urls, "/force-sync")
	assert.Contains(t, urls, "/register")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	router := InitRoutes(routeTestController(), &structures.Config{})
	routes := router.GetRoutes()

	mux := http.NewServeMux()
	for _, r := range routes {
		mux.Handle(r.Url, r.Handler)
	}

	// GET /latest with POST should fail
	req := httptest.NewRequest(http.MethodPost, "/latest", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// POST /register with GET should fail
	req = httptest.NewRequest(http.MethodGet, "/register", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
