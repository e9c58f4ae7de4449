package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/Alia5/joymux/pkg/apitypes"
)

// Client wraps Transport with typed calls for the joymux status API and for
// the VIIPER server endpoints the viiper driver needs.
type Client struct{ transport *Transport }

// New constructs a client for the server at addr (host:port).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client on an existing Transport, usually a mock.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

func (c *Client) Ping(ctx context.Context) (*apitypes.PingResponse, error) {
	return call[apitypes.PingResponse](ctx, c, "ping", nil, nil)
}

// SlotsList returns the virtual slots of the running session.
func (c *Client) SlotsList(ctx context.Context) (*apitypes.SlotsListResponse, error) {
	return call[apitypes.SlotsListResponse](ctx, c, "slots/list", nil, nil)
}

func (c *Client) Calibration(ctx context.Context) (*apitypes.CalibrationResponse, error) {
	return call[apitypes.CalibrationResponse](ctx, c, "calibration/get", nil, nil)
}

func (c *Client) Player(ctx context.Context) (*apitypes.PlayerResponse, error) {
	return call[apitypes.PlayerResponse](ctx, c, "player/get", nil, nil)
}

// BusCreate creates a VIIPER bus. busID 0 lets the server choose.
func (c *Client) BusCreate(ctx context.Context, busID uint32) (*apitypes.BusCreateResponse, error) {
	var payload any
	if busID != 0 {
		payload = fmt.Sprintf("%d", busID)
	}
	return call[apitypes.BusCreateResponse](ctx, c, "bus/create", payload, nil)
}

func (c *Client) BusList(ctx context.Context) (*apitypes.BusListResponse, error) {
	return call[apitypes.BusListResponse](ctx, c, "bus/list", nil, nil)
}

// DeviceAdd adds a device of devType (e.g. "xbox360") to a bus. The
// response ID has the form "<busId>-<devId>".
func (c *Client) DeviceAdd(ctx context.Context, busID uint32, devType string) (*apitypes.DeviceAddResponse, error) {
	params := map[string]string{"id": fmt.Sprintf("%d", busID)}
	return call[apitypes.DeviceAddResponse](ctx, c, "bus/{id}/add", devType, params)
}

func (c *Client) DeviceRemove(ctx context.Context, busID uint32, devID string) (*apitypes.DeviceRemoveResponse, error) {
	params := map[string]string{"id": fmt.Sprintf("%d", busID)}
	return call[apitypes.DeviceRemoveResponse](ctx, c, "bus/{id}/remove", devID, params)
}

// OpenStream connects to the input stream of a device.
func (c *Client) OpenStream(ctx context.Context, busID uint32, devID string) (net.Conn, error) {
	params := map[string]string{"busId": fmt.Sprintf("%d", busID), "devId": devID}
	return c.transport.Stream(ctx, "bus/{busId}/{devId}", params)
}

// SplitDeviceID splits "<busId>-<devId>".
func SplitDeviceID(id string) (bus string, dev string, err error) {
	bus, dev, ok := strings.Cut(id, "-")
	if !ok || bus == "" || dev == "" {
		return "", "", fmt.Errorf("malformed device id %q", id)
	}
	return bus, dev, nil
}

func call[T any](ctx context.Context, c *Client, path string, payload any, params map[string]string) (*T, error) {
	line, err := c.transport.DoCtx(ctx, path, payload, params)
	if err != nil {
		return nil, err
	}
	return parse[T](line)
}

func parse[T any](line string) (*T, error) {
	if line == "" {
		return nil, errors.New("empty response")
	}
	var ae apitypes.ApiError
	if err := json.Unmarshal([]byte(line), &ae); err == nil && ae.Error != "" {
		return nil, errors.New(ae.Error)
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(line)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
