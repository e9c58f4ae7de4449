package controller

import (
	"fmt"

	"github.com/Alia5/joymux/switchpad"
	"github.com/Alia5/joymux/virtual"
)

// SlotCount is the number of virtual slots, one per selecting trigger.
const SlotCount = 3

const noSlot = -1

// slotTriggers selects a slot by index, checked in priority order.
var slotTriggers = [SlotCount]switchpad.Buttons{
	switchpad.ButtonZL,
	switchpad.ButtonL,
	switchpad.ButtonR,
}

var buttonMap = []struct {
	physical switchpad.Buttons
	virtual  virtual.Button
}{
	{switchpad.ButtonA, virtual.ButtonA},
	{switchpad.ButtonB, virtual.ButtonB},
	{switchpad.ButtonL, virtual.ButtonL},
	{switchpad.ButtonR, virtual.ButtonR},
	{switchpad.ButtonX, virtual.ButtonX},
	{switchpad.ButtonY, virtual.ButtonY},
	{switchpad.ButtonZR, virtual.ButtonZR},
	{switchpad.ButtonPlus, virtual.ButtonPlus},
	{switchpad.ButtonMinus, virtual.ButtonMinus},
	{switchpad.ButtonLeft, virtual.ButtonLeft},
	{switchpad.ButtonRight, virtual.ButtonRight},
	{switchpad.ButtonUp, virtual.ButtonUp},
	{switchpad.ButtonDown, virtual.ButtonDown},
	{switchpad.ButtonLStick, virtual.ButtonStickL},
	{switchpad.ButtonRStick, virtual.ButtonStickR},
}

type slot struct {
	attached bool
	handle   virtual.Handle
	state    virtual.State
}

// SlotStatus is a read-only view of one slot.
type SlotStatus struct {
	Index    int            `json:"index"`
	Attached bool           `json:"attached"`
	Handle   virtual.Handle `json:"handle,omitempty"`
	State    virtual.State  `json:"state"`
}

// Slots returns the status of every slot.
func (s *Session) Slots() []SlotStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SlotStatus, SlotCount)
	for i, sl := range s.slots {
		out[i] = SlotStatus{Index: i, Attached: sl.attached, Handle: sl.handle, State: sl.state}
	}
	return out
}

func selectSlot(b switchpad.Buttons) int {
	for i, trig := range slotTriggers {
		if b.Has(trig) {
			return i
		}
	}
	return noSlot
}

func mapButtons(b switchpad.Buttons, trigger switchpad.Buttons) virtual.Button {
	b &^= trigger
	var out virtual.Button
	for _, m := range buttonMap {
		if b.Has(m.physical) {
			out |= m.virtual
		}
	}
	return out
}

func mapStick(cal switchpad.StickCalibration, st switchpad.Stick) virtual.StickState {
	return virtual.StickState{
		X: switchpad.MapAxis(cal.X, int32(st.X)),
		Y: switchpad.MapAxis(cal.Y, int32(st.Y)),
	}
}

// translate runs slot selection, the attach chord and the state pushes for
// the current report. Callers hold s.mu.
func (s *Session) translate() {
	buttons := s.report.Buttons()
	idx := selectSlot(buttons)

	chord := idx != noSlot && buttons.Has(switchpad.ButtonLStick|switchpad.ButtonRStick)
	if chord && !s.comboHeld {
		if s.slots[idx].attached {
			s.detach(idx)
		} else {
			s.attach(idx)
		}
	}
	s.comboHeld = chord

	consumed := false
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.attached {
			continue
		}

		sl.state = virtual.State{}
		if i == idx {
			sl.state.Buttons = mapButtons(buttons, slotTriggers[i])
			sl.state.StickL = mapStick(s.calibration.Left(), s.report.LeftStick())
			sl.state.StickR = mapStick(s.calibration.Right(), s.report.RightStick())
			consumed = true
		}

		if err := s.driver.PushState(sl.handle, sl.state); err != nil {
			s.logger.Warn("push state failed, detaching", "slot", i, "error", err)
			s.detach(i)
		}
	}

	if consumed {
		s.report.SetButtons(0)
		s.report.SetLeftStick(switchpad.CenteredStick)
		s.report.SetRightStick(switchpad.CenteredStick)
	}
}

func (s *Session) attach(i int) {
	info := s.device
	if info.Name == "" {
		info.Name = fmt.Sprintf("joymux slot %d", i)
	}
	h, err := s.driver.Attach(info)
	if err != nil {
		s.logger.Error("attach virtual device", "slot", i, "error", err)
		return
	}
	sl := &s.slots[i]
	sl.attached = true
	sl.handle = h
	sl.state = virtual.State{}
	if err := s.driver.PushState(h, sl.state); err != nil {
		s.logger.Warn("initial push failed, detaching", "slot", i, "error", err)
		s.detach(i)
		return
	}
	s.logger.Info("attached", "slot", i, "handle", h)
}

func (s *Session) detach(i int) {
	sl := &s.slots[i]
	if err := s.driver.Detach(sl.handle); err != nil {
		s.logger.Warn("detach virtual device", "slot", i, "error", err)
	}
	s.logger.Info("detached", "slot", i, "handle", sl.handle)
	*sl = slot{}
}
