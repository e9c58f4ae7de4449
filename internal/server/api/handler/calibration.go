package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/joymux/internal/server/api"
	"github.com/Alia5/joymux/pkg/apitypes"
	"github.com/Alia5/joymux/switchpad"
)

func stick(c switchpad.StickCalibration) apitypes.Stick {
	return apitypes.Stick{
		X: apitypes.Axis{Min: c.X.Min, Center: c.X.Center, Max: c.X.Max},
		Y: apitypes.Axis{Min: c.Y.Min, Center: c.Y.Center, Max: c.Y.Max},
	}
}

// Calibration reports the stick calibration read from the controller.
func Calibration(s Status) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		c := s.Calibration()
		b, err := json.Marshal(apitypes.CalibrationResponse{
			FactoryLeft:  stick(c.FactoryLeft),
			FactoryRight: stick(c.FactoryRight),
			UserLeft:     stick(c.UserLeft),
			UserRight:    stick(c.UserRight),
			HasUserLeft:  c.HasUserLeft,
			HasUserRight: c.HasUserRight,
		})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
