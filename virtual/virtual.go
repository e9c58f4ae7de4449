// Package virtual defines the boundary to emulated controllers: a driver
// attaches a device, accepts state pushes for it and detaches it again.
package virtual

import (
	"errors"
	"image/color"
	"strings"
)

// ErrNotAttached is returned for a handle the driver does not know.
var ErrNotAttached = errors.New("virtual device not attached")

// Button is one bit of the emulated button mask.
type Button uint64

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonX
	ButtonY
	ButtonStickL
	ButtonStickR
	ButtonL
	ButtonR
	ButtonZL
	ButtonZR
	ButtonPlus
	ButtonMinus
	ButtonLeft
	ButtonUp
	ButtonRight
	ButtonDown
)

var buttonNames = [...]string{
	"A", "B", "X", "Y", "StickL", "StickR", "L", "R",
	"ZL", "ZR", "Plus", "Minus", "Left", "Up", "Right", "Down",
}

func (b Button) String() string {
	var parts []string
	for i, n := range buttonNames {
		if b&(1<<i) != 0 {
			parts = append(parts, n)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// StickState is a calibrated stick position in [-32767, 32767].
type StickState struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// State is one push to a virtual device.
type State struct {
	Buttons Button     `json:"buttons"`
	StickL  StickState `json:"stickL"`
	StickR  StickState `json:"stickR"`
}

// DeviceType is the controller a virtual device presents as.
type DeviceType uint8

const (
	DeviceTypeFullKey DeviceType = iota + 1
	DeviceTypeJoyLeft
	DeviceTypeJoyRight
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeFullKey:
		return "pro controller"
	case DeviceTypeJoyLeft:
		return "joy-con (L)"
	case DeviceTypeJoyRight:
		return "joy-con (R)"
	}
	return "unknown"
}

// DeviceInfo describes the device to attach.
type DeviceInfo struct {
	Type        DeviceType
	Name        string
	BodyColor   color.RGBA
	ButtonColor color.RGBA
	GripLeft    color.RGBA
	GripRight   color.RGBA
}

// Handle identifies an attached device. The zero Handle is never issued.
type Handle uint64

// Driver attaches and drives virtual devices. Calls for one session come
// from a single goroutine.
type Driver interface {
	Attach(info DeviceInfo) (Handle, error)
	Detach(h Handle) error
	PushState(h Handle, st State) error
}

// Nop is a Driver that accepts everything and emulates nothing.
type Nop struct{ next Handle }

func (n *Nop) Attach(DeviceInfo) (Handle, error) {
	n.next++
	return n.next, nil
}

// Detach always succeeds.
func (n *Nop) Detach(Handle) error { return nil }

// PushState discards st.
func (n *Nop) PushState(Handle, State) error { return nil }
