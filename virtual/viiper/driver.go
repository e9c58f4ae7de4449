// Package viiper attaches virtual slots as xbox360 devices on a VIIPER
// server, which exports them over USB/IP.
package viiper

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/Alia5/joymux/pkg/apiclient"
	"github.com/Alia5/joymux/virtual"
)

const deviceType = "xbox360"

// Config selects the VIIPER server and bus.
type Config struct {
	// BusID 0 creates a fresh bus on first attach.
	BusID   uint32
	Timeout time.Duration
}

type device struct {
	busID uint32
	devID string
	conn  net.Conn
}

// Driver implements virtual.Driver on top of the VIIPER API.
type Driver struct {
	client  *apiclient.Client
	cfg     Config
	logger  *slog.Logger
	mu      sync.Mutex
	busID   uint32
	next    virtual.Handle
	devices map[virtual.Handle]*device
}

func NewDriver(client *apiclient.Client, cfg Config, logger *slog.Logger) *Driver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	return &Driver{client: client, cfg: cfg, logger: logger, devices: map[virtual.Handle]*device{}}
}

func (d *Driver) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.cfg.Timeout)
}

// bus returns the bus to add devices to, creating it when needed.
// Callers hold d.mu.
func (d *Driver) bus(ctx context.Context) (uint32, error) {
	if d.busID != 0 {
		return d.busID, nil
	}
	if d.cfg.BusID != 0 {
		list, err := d.client.BusList(ctx)
		if err != nil {
			return 0, fmt.Errorf("list buses: %w", err)
		}
		if slices.Contains(list.Buses, d.cfg.BusID) {
			d.busID = d.cfg.BusID
			return d.busID, nil
		}
	}
	resp, err := d.client.BusCreate(ctx, d.cfg.BusID)
	if err != nil {
		return 0, fmt.Errorf("create bus: %w", err)
	}
	d.busID = resp.BusID
	d.logger.Info("viiper bus ready", "bus", d.busID)
	return d.busID, nil
}

func (d *Driver) Attach(info virtual.DeviceInfo) (virtual.Handle, error) {
	ctx, cancel := d.ctx()
	defer cancel()

	d.mu.Lock()
	defer d.mu.Unlock()

	busID, err := d.bus(ctx)
	if err != nil {
		return 0, err
	}
	resp, err := d.client.DeviceAdd(ctx, busID, deviceType)
	if err != nil {
		return 0, fmt.Errorf("add %s device: %w", deviceType, err)
	}
	busStr, devID, err := apiclient.SplitDeviceID(resp.ID)
	if err != nil {
		return 0, err
	}
	if b, err := strconv.ParseUint(busStr, 10, 32); err == nil {
		busID = uint32(b)
	}
	conn, err := d.client.OpenStream(ctx, busID, devID)
	if err != nil {
		_, _ = d.client.DeviceRemove(ctx, busID, devID)
		return 0, fmt.Errorf("open stream %s: %w", resp.ID, err)
	}

	d.next++
	d.devices[d.next] = &device{busID: busID, devID: devID, conn: conn}
	d.logger.Info("viiper device added", "id", resp.ID, "type", info.Type)
	return d.next, nil
}

func (d *Driver) Detach(h virtual.Handle) error {
	d.mu.Lock()
	dev, ok := d.devices[h]
	delete(d.devices, h)
	d.mu.Unlock()
	if !ok {
		return virtual.ErrNotAttached
	}

	_ = dev.conn.Close()
	ctx, cancel := d.ctx()
	defer cancel()
	if _, err := d.client.DeviceRemove(ctx, dev.busID, dev.devID); err != nil {
		return fmt.Errorf("remove device %d-%s: %w", dev.busID, dev.devID, err)
	}
	return nil
}

func (d *Driver) PushState(h virtual.Handle, st virtual.State) error {
	d.mu.Lock()
	dev, ok := d.devices[h]
	d.mu.Unlock()
	if !ok {
		return virtual.ErrNotAttached
	}
	x := NewXInputState(st)
	b, _ := x.MarshalBinary()
	_ = dev.conn.SetWriteDeadline(time.Now().Add(d.cfg.Timeout))
	if _, err := dev.conn.Write(b); err != nil {
		return fmt.Errorf("write xinput frame: %w", err)
	}
	return nil
}

// Close detaches every remaining device.
func (d *Driver) Close() error {
	d.mu.Lock()
	handles := make([]virtual.Handle, 0, len(d.devices))
	for h := range d.devices {
		handles = append(handles, h)
	}
	d.mu.Unlock()
	for _, h := range handles {
		if err := d.Detach(h); err != nil {
			d.logger.Warn("viiper detach", "handle", h, "error", err)
		}
	}
	return nil
}
