package testing

import (
	"errors"
	"sync"

	"github.com/Alia5/joymux/transport"
	"github.com/Alia5/joymux/virtual"
)

// Transport records outgoing traffic. When Reply is set it is called in a
// new goroutine for every data report sent, the way a controller answers
// asynchronously.
type Transport struct {
	mu        sync.Mutex
	Data      [][]byte
	Sets      [][]byte
	Gets      []byte
	Handler   transport.Handler
	Reply     func(h transport.Handler, report []byte)
	SetResult transport.Status
	GetResult []byte
	SendErr   error
}

func (t *Transport) SendData(report []byte) error {
	if t.SendErr != nil {
		return t.SendErr
	}
	t.mu.Lock()
	t.Data = append(t.Data, append([]byte(nil), report...))
	reply, h := t.Reply, t.Handler
	t.mu.Unlock()
	if reply != nil && h != nil {
		go reply(h, append([]byte(nil), report...))
	}
	return nil
}

func (t *Transport) SendSetReport(_ transport.ReportKind, report []byte) error {
	if t.SendErr != nil {
		return t.SendErr
	}
	t.mu.Lock()
	t.Sets = append(t.Sets, append([]byte(nil), report...))
	h, st := t.Handler, t.SetResult
	t.mu.Unlock()
	if h != nil {
		go h.OnSetReportResult(st)
	}
	return nil
}

func (t *Transport) SendGetReport(id byte, _ transport.ReportKind) error {
	if t.SendErr != nil {
		return t.SendErr
	}
	t.mu.Lock()
	t.Gets = append(t.Gets, id)
	h, res := t.Handler, t.GetResult
	t.mu.Unlock()
	if h != nil {
		go h.OnGetReportResult(0, res)
	}
	return nil
}

// Sent returns a copy of the data reports sent so far.
func (t *Transport) Sent() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([][]byte(nil), t.Data...)
}

var ErrPush = errors.New("push rejected")

// Driver is an in-memory virtual.Driver.
type Driver struct {
	mu        sync.Mutex
	next      virtual.Handle
	Attached  map[virtual.Handle]virtual.DeviceInfo
	Pushes    map[virtual.Handle][]virtual.State
	Detached  []virtual.Handle
	FailPush  bool
	AttachErr error
}

func NewDriver() *Driver {
	return &Driver{
		Attached: map[virtual.Handle]virtual.DeviceInfo{},
		Pushes:   map[virtual.Handle][]virtual.State{},
	}
}

func (d *Driver) Attach(info virtual.DeviceInfo) (virtual.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.AttachErr != nil {
		return 0, d.AttachErr
	}
	d.next++
	d.Attached[d.next] = info
	return d.next, nil
}

func (d *Driver) Detach(h virtual.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.Attached[h]; !ok {
		return virtual.ErrNotAttached
	}
	delete(d.Attached, h)
	d.Detached = append(d.Detached, h)
	return nil
}

func (d *Driver) PushState(h virtual.Handle, st virtual.State) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.Attached[h]; !ok {
		return virtual.ErrNotAttached
	}
	if d.FailPush {
		return ErrPush
	}
	d.Pushes[h] = append(d.Pushes[h], st)
	return nil
}

// LastPush returns the most recent state pushed to h.
func (d *Driver) LastPush(h virtual.Handle) (virtual.State, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.Pushes[h]
	if len(p) == 0 {
		return virtual.State{}, false
	}
	return p[len(p)-1], true
}

// Consumer collects whatever a session passes through.
type Consumer struct {
	mu      sync.Mutex
	Reports [][]byte
	Sets    []transport.Status
	Gets    [][]byte
}

func (c *Consumer) Forward(report []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Reports = append(c.Reports, append([]byte(nil), report...))
	return nil
}

func (c *Consumer) ForwardSetReport(status transport.Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets = append(c.Sets, status)
	return nil
}

func (c *Consumer) ForwardGetReport(_ transport.Status, report []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets = append(c.Gets, append([]byte(nil), report...))
	return nil
}

// Last returns the most recently forwarded data report.
func (c *Consumer) Last() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Reports) == 0 {
		return nil
	}
	return c.Reports[len(c.Reports)-1]
}

func (c *Consumer) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Reports)
}
