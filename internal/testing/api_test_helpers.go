package testing

import (
	"log/slog"
	"testing"

	"github.com/Alia5/joymux/internal/server/api"
)

// StartAPIServer starts an API server on a free port and calls register to allow
// the caller to register the handlers needed for the test. Returns the address
// and a function to call when done.
func StartAPIServer(t *testing.T, register func(r *api.Router, apiSrv *api.Server)) (addr string, done func()) {
	t.Helper()
	apiSrv := api.New("127.0.0.1:0", api.ServerConfig{}, slog.Default())
	if register != nil {
		register(apiSrv.Router(), apiSrv)
	}
	if err := apiSrv.Start(); err != nil {
		t.Fatalf("api start failed: %v", err)
	}
	return apiSrv.Addr(), apiSrv.Close
}
