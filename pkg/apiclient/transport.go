package apiclient

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// Config controls low-level transport behavior such as timeouts.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func defaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Responder stands in for the network in tests. It receives the path
// pattern, payload and path params and returns the raw response line.
type Responder func(path string, payload any, pathParams map[string]string) (string, error)

// Transport speaks the line protocol: one "<path> <payload>\n" request,
// one response line back.
type Transport struct {
	addr string
	mock Responder
	cfg  Config
}

func NewTransport(addr string) *Transport { return NewTransportWithConfig(addr, nil) }

// NewTransportWithConfig creates a transport with optional timeouts.
func NewTransportWithConfig(addr string, cfg *Config) *Transport {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Transport{addr: addr, cfg: c}
}

// NewMockTransport returns canned responses without networking. Streams
// cannot be opened on it.
func NewMockTransport(responder Responder) *Transport {
	return &Transport{addr: "mock", mock: responder, cfg: defaultConfig()}
}

// Do sends a request and returns the response line without its newline.
// Payload handling:
//
//	[]byte -> sent as-is
//	string -> UTF-8 bytes
//	other  -> JSON
//	nil    -> no payload
func (c *Transport) Do(path string, payload any, pathParams map[string]string) (string, error) {
	return c.DoCtx(context.Background(), path, payload, pathParams)
}

// DoCtx is like Do but honors ctx.
func (c *Transport) DoCtx(ctx context.Context, path string, payload any, pathParams map[string]string) (string, error) {
	if c.mock != nil {
		return c.mock(path, payload, pathParams)
	}
	line, err := requestLine(path, payload, pathParams)
	if err != nil {
		return "", err
	}
	conn, err := c.dial(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	if err := c.writeLine(conn, line); err != nil {
		return "", err
	}
	r := bufio.NewReader(conn)
	if c.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	}
	resp, err := r.ReadString('\n')
	if err != nil && len(resp) == 0 {
		return "", fmt.Errorf("read: %w", err)
	}
	return strings.TrimSuffix(resp, "\n"), nil
}

// Stream sends the path line and hands the connection to the caller. The
// server answers nothing; the connection now carries raw frames.
func (c *Transport) Stream(ctx context.Context, path string, pathParams map[string]string) (net.Conn, error) {
	if c.mock != nil {
		return nil, fmt.Errorf("stream %s: not supported with mock transport", path)
	}
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.writeLine(conn, []byte(fillPath(path, pathParams))); err != nil {
		_ = conn.Close()
		return nil, err
	}
	_ = conn.SetWriteDeadline(time.Time{})
	return conn, nil
}

func (c *Transport) dial(ctx context.Context) (net.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	d := &net.Dialer{Timeout: c.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	return conn, nil
}

func (c *Transport) writeLine(conn net.Conn, line []byte) error {
	if c.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}
	if _, err := conn.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func requestLine(path string, payload any, pathParams map[string]string) ([]byte, error) {
	fullPath := fillPath(path, pathParams)
	pb, err := toPayloadBytes(payload)
	if err != nil {
		return nil, err
	}
	if len(pb) == 0 {
		return []byte(fullPath), nil
	}
	return append([]byte(fullPath+" "), pb...), nil
}

func fillPath(pattern string, params map[string]string) string {
	out := pattern
	for k, v := range params {
		out = strings.ReplaceAll(out, "{"+k+"}", url.PathEscape(v))
	}
	return strings.ToLower(out)
}

func toPayloadBytes(v any) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return t, nil
	case string:
		return []byte(t), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		return b, nil
	}
}
