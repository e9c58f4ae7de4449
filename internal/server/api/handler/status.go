package handler

import (
	"github.com/Alia5/joymux/controller"
	"github.com/Alia5/joymux/switchpad"
)

// Status is the read-only view of a session the handlers report on.
type Status interface {
	Slots() []controller.SlotStatus
	Calibration() switchpad.CalibrationSet
	Player() switchpad.PlayerNumber
}
