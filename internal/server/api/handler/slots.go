package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/joymux/internal/server/api"
	"github.com/Alia5/joymux/pkg/apitypes"
)

// SlotsList reports every virtual slot with its last pushed state.
func SlotsList(s Status) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		slots := s.Slots()
		out := apitypes.SlotsListResponse{Slots: make([]apitypes.Slot, 0, len(slots))}
		for _, sl := range slots {
			out.Slots = append(out.Slots, apitypes.Slot{
				Index:    sl.Index,
				Attached: sl.Attached,
				Handle:   uint64(sl.Handle),
				Buttons:  sl.State.Buttons.String(),
				LX:       sl.State.StickL.X,
				LY:       sl.State.StickL.Y,
				RX:       sl.State.StickR.X,
				RY:       sl.State.StickR.Y,
			})
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
