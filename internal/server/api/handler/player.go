package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/joymux/internal/server/api"
	"github.com/Alia5/joymux/pkg/apitypes"
)

func Player(s Status) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		p := s.Player()
		b, err := json.Marshal(apitypes.PlayerResponse{Player: int(p), Name: p.String()})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}

// Register wires every status endpoint into r.
func Register(r *api.Router, s Status) {
	r.Register("ping", Ping())
	r.Register("slots/list", SlotsList(s))
	r.Register("calibration/get", Calibration(s))
	r.Register("player/get", Player(s))
}
