package viiper

import (
	"bufio"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Alia5/joymux/pkg/apiclient"
	"github.com/Alia5/joymux/virtual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer answers the few VIIPER endpoints the driver uses and collects
// stream frames.
type fakeServer struct {
	mu      sync.Mutex
	lines   []string
	frames  [][]byte
	removed []string
}

func (f *fakeServer) start(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			go f.handle(c)
		}
	}()
	return ln.Addr().String()
}

func (f *fakeServer) handle(c net.Conn) {
	defer c.Close()
	r := bufio.NewReader(c)
	line, err := r.ReadString('\n')
	if err != nil {
		return
	}
	line = strings.TrimSpace(line)
	f.mu.Lock()
	f.lines = append(f.lines, line)
	f.mu.Unlock()

	fields := strings.Fields(line)
	switch {
	case line == "bus/list":
		_, _ = io.WriteString(c, `{"buses":[]}`+"\n")
	case strings.HasPrefix(line, "bus/create"):
		_, _ = io.WriteString(c, `{"busId":5}`+"\n")
	case strings.HasSuffix(fields[0], "/add"):
		_, _ = io.WriteString(c, `{"id":"5-1"}`+"\n")
	case strings.HasSuffix(fields[0], "/remove"):
		f.mu.Lock()
		f.removed = append(f.removed, fields[1])
		f.mu.Unlock()
		_, _ = io.WriteString(c, `{"busId":5,"devId":"1"}`+"\n")
	case fields[0] == "bus/5/1":
		for {
			frame := make([]byte, XInputStateSize)
			if _, err := io.ReadFull(r, frame); err != nil {
				return
			}
			f.mu.Lock()
			f.frames = append(f.frames, frame)
			f.mu.Unlock()
		}
	default:
		_, _ = io.WriteString(c, `{"error":"unknown path"}`+"\n")
	}
}

func (f *fakeServer) frameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func TestDriverAttachPushDetach(t *testing.T) {
	srv := &fakeServer{}
	addr := srv.start(t)
	d := NewDriver(apiclient.New(addr), Config{BusID: 5}, slog.Default())

	h, err := d.Attach(virtual.DeviceInfo{Type: virtual.DeviceTypeFullKey})
	require.NoError(t, err)

	require.NoError(t, d.PushState(h, virtual.State{
		Buttons: virtual.ButtonA | virtual.ButtonZR,
		StickL:  virtual.StickState{X: 32767, Y: -32767},
	}))
	assert.Eventually(t, func() bool { return srv.frameCount() == 1 }, time.Second, 5*time.Millisecond)

	srv.mu.Lock()
	var got XInputState
	require.NoError(t, got.UnmarshalBinary(srv.frames[0]))
	srv.mu.Unlock()
	assert.Equal(t, XInputState{Buttons: XButtonB, RT: 0xFF, LX: 32767, LY: -32767}, got)

	require.NoError(t, d.Detach(h))
	assert.ErrorIs(t, d.PushState(h, virtual.State{}), virtual.ErrNotAttached)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, []string{"1"}, srv.removed)
	assert.Equal(t, []string{"bus/list", "bus/create 5", "bus/5/add xbox360", "bus/5/1", "bus/5/remove 1"}, srv.lines)
}

func TestDriverAttachError(t *testing.T) {
	d := NewDriver(apiclient.New("127.0.0.1:1"), Config{Timeout: 200 * time.Millisecond}, slog.Default())
	_, err := d.Attach(virtual.DeviceInfo{})
	assert.Error(t, err)
}

func TestNewXInputState(t *testing.T) {
	tests := []struct {
		name string
		in   virtual.State
		want XInputState
	}{
		{"empty", virtual.State{}, XInputState{}},
		{"faces by position", virtual.State{Buttons: virtual.ButtonA | virtual.ButtonY}, XInputState{Buttons: XButtonB | XButtonX}},
		{"menu", virtual.State{Buttons: virtual.ButtonPlus | virtual.ButtonMinus}, XInputState{Buttons: XButtonStart | XButtonBack}},
		{"triggers", virtual.State{Buttons: virtual.ButtonZL}, XInputState{LT: 0xFF}},
		{"dpad", virtual.State{Buttons: virtual.ButtonUp | virtual.ButtonRight}, XInputState{Buttons: XButtonDPadUp | XButtonDPadRight}},
		{"sticks", virtual.State{StickR: virtual.StickState{X: -5, Y: 9}}, XInputState{RX: -5, RY: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewXInputState(tt.in))
		})
	}
}

func TestXInputStateShort(t *testing.T) {
	var x XInputState
	assert.ErrorIs(t, x.UnmarshalBinary(make([]byte, 3)), io.ErrUnexpectedEOF)
}
