package uhid

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Alia5/joymux/internal/log"
	"github.com/Alia5/joymux/virtual"
)

// Slot devices use the pid.codes test ID on the virtual bus so hid-generic
// binds them.
const (
	SlotVendor  uint32 = 0x1209
	SlotProduct uint32 = 0x0001
)

// Driver attaches virtual slots as kernel gamepads.
type Driver struct {
	open   Opener
	logger *slog.Logger

	mu      sync.Mutex
	next    virtual.Handle
	devices map[virtual.Handle]*Device
}

// NewDriver returns a Driver. A nil open uses OpenPath.
func NewDriver(open Opener, logger *slog.Logger) *Driver {
	if open == nil {
		open = OpenPath
	}
	return &Driver{open: open, logger: logger, devices: map[virtual.Handle]*Device{}}
}

func (d *Driver) Attach(info virtual.DeviceInfo) (virtual.Handle, error) {
	desc, err := GamepadDescriptor.Bytes()
	if err != nil {
		return 0, fmt.Errorf("gamepad descriptor: %w", err)
	}
	rw, err := d.open()
	if err != nil {
		return 0, err
	}

	name := info.Name
	if name == "" {
		name = "joymux virtual " + info.Type.String()
	}
	dev, err := Create(rw, CreateParams{
		Name:       name,
		Bus:        BusVirtual,
		Vendor:     SlotVendor,
		Product:    SlotProduct,
		Descriptor: desc,
	})
	if err != nil {
		_ = rw.Close()
		return 0, err
	}

	d.mu.Lock()
	d.next++
	h := d.next
	d.devices[h] = dev
	d.mu.Unlock()

	// The kernel queues start/open events; nobody needs them but the
	// queue must not fill up.
	go func() {
		if err := dev.Events(context.Background(), func(ev Event) {
			d.logger.Log(context.Background(), log.LevelTrace, "uhid event", "handle", h, "type", ev.Type)
		}); err != nil {
			d.logger.Debug("uhid events ended", "handle", h, "error", err)
		}
	}()
	return h, nil
}

func (d *Driver) device(h virtual.Handle) (*Device, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dev, ok := d.devices[h]
	if !ok {
		return nil, virtual.ErrNotAttached
	}
	return dev, nil
}

func (d *Driver) Detach(h virtual.Handle) error {
	d.mu.Lock()
	dev, ok := d.devices[h]
	delete(d.devices, h)
	d.mu.Unlock()
	if !ok {
		return virtual.ErrNotAttached
	}
	return dev.Destroy()
}

func (d *Driver) PushState(h virtual.Handle, st virtual.State) error {
	dev, err := d.device(h)
	if err != nil {
		return err
	}
	r := NewGamepadReport(st)
	b, _ := r.MarshalBinary()
	return dev.Input(b)
}

// Close destroys every device still attached.
func (d *Driver) Close() error {
	d.mu.Lock()
	devs := d.devices
	d.devices = map[virtual.Handle]*Device{}
	d.mu.Unlock()
	for _, dev := range devs {
		_ = dev.Destroy()
	}
	return nil
}
