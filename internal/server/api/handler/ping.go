package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/joymux/internal/server/api"
	"github.com/Alia5/joymux/internal/version"
	"github.com/Alia5/joymux/pkg/apitypes"
)

// Ping returns a handler for the "ping" endpoint.
// It provides a minimal identity + version response.
func Ping() api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		b, err := json.Marshal(apitypes.PingResponse{Server: "joymux", Version: version.Version})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
