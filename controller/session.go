// Package controller runs one physical controller connection: it translates
// inbound reports into virtual slot state, forwards what remains to the
// consumer and multiplexes synchronous requests over the asynchronous
// transport.
package controller

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Alia5/joymux/internal/log"
	"github.com/Alia5/joymux/internal/response"
	"github.com/Alia5/joymux/switchpad"
	"github.com/Alia5/joymux/transport"
	"github.com/Alia5/joymux/virtual"
)

// Consumer receives what the session passes through.
type Consumer interface {
	// Forward is called once per inbound data report, with the translated
	// report.
	Forward(report []byte) error
	ForwardSetReport(status transport.Status) error
	ForwardGetReport(status transport.Status, report []byte) error
}

// Config tunes a Session.
type Config struct {
	// ResponseTimeout bounds every synchronous request. Zero means 500ms.
	ResponseTimeout time.Duration
	// Device is the template for attached virtual slots.
	Device virtual.DeviceInfo
}

// DefaultDevice is a grey full-key controller.
var DefaultDevice = virtual.DeviceInfo{
	Type:        virtual.DeviceTypeFullKey,
	BodyColor:   color.RGBA{R: 0x32, G: 0x32, B: 0x32, A: 0xFF},
	ButtonColor: color.RGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF},
	GripLeft:    color.RGBA{R: 0x46, G: 0x46, B: 0x46, A: 0xFF},
	GripRight:   color.RGBA{R: 0x46, G: 0x46, B: 0x46, A: 0xFF},
}

// Session is the translation context of one connection. Inbound handlers
// may be called from any goroutine; they serialize on the session guard.
// Request methods never hold the guard while waiting.
type Session struct {
	transport transport.Transport
	driver    virtual.Driver
	consumer  Consumer
	logger    *slog.Logger
	raw       log.RawLogger
	responses *response.Queue
	device    virtual.DeviceInfo
	counter   atomic.Uint32

	mu          sync.Mutex
	report      switchpad.Report
	calibration switchpad.CalibrationSet
	slots       [SlotCount]slot
	comboHeld   bool
	player      switchpad.PlayerNumber
}

// New creates a session. driver may be nil when no virtual slots are wanted.
func New(t transport.Transport, driver virtual.Driver, consumer Consumer, cfg Config, logger *slog.Logger, raw log.RawLogger) *Session {
	if driver == nil {
		driver = &virtual.Nop{}
	}
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	dev := cfg.Device
	if dev.Type == 0 {
		dev = DefaultDevice
	}
	return &Session{
		transport: t,
		driver:    driver,
		consumer:  consumer,
		logger:    logger,
		raw:       raw,
		responses: response.NewQueue(cfg.ResponseTimeout),
		device:    dev,
	}
}

// OnDataReport is the per-tick pipeline: offer the report to the pending
// request, then translate it under the guard and forward the result.
func (s *Session) OnDataReport(report []byte) {
	s.raw.Log(true, "data", report)
	s.responses.Deliver(response.Event{Kind: response.KindData, Report: report})

	s.mu.Lock()
	defer s.mu.Unlock()

	s.report.Set(report)
	s.updateCalibration()
	// Other report ids (0x3F and friends) carry no buttons or sticks at the standard offsets.
	if hasStandardLayout(s.report.ID()) {
		s.translate()
		s.report.SetButtons(switchpad.ApplyButtonCombos(s.report.Buttons()))
	}

	if err := s.consumer.Forward(s.report.Bytes()); err != nil {
		s.logger.Warn("forward data report", "error", err)
	}
}

// OnSetReportResult answers a pending SetReport. With nothing pending the
// completion belongs to someone else and is passed through.
func (s *Session) OnSetReportResult(status transport.Status) {
	s.raw.Log(true, "set_result", nil)
	if s.responses.Pending() {
		s.responses.Deliver(response.Event{Kind: response.KindSetReport, Status: uint32(status)})
		return
	}
	if err := s.consumer.ForwardSetReport(status); err != nil {
		s.logger.Warn("forward set report result", "error", err)
	}
}

// OnGetReportResult answers a pending GetReport, or passes the completion
// through when nothing is pending.
func (s *Session) OnGetReportResult(status transport.Status, report []byte) {
	s.raw.Log(true, "get_result", report)
	if s.responses.Pending() {
		s.responses.Deliver(response.Event{Kind: response.KindGetReport, Status: uint32(status), Report: report})
		return
	}
	if err := s.consumer.ForwardGetReport(status, report); err != nil {
		s.logger.Warn("forward get report result", "error", err)
	}
}

// HandleOutputReport passes a host output report to the controller, noting
// the player number when the host sets the player LEDs.
func (s *Session) HandleOutputReport(report []byte) error {
	cmd, args, ok := switchpad.ParseSubcommandReport(report)
	if ok {
		s.logger.Debug("host subcommand", "subcommand", cmd)
	}
	if ok && cmd == switchpad.SubcommandSetPlayerLights && len(args) > 0 {
		player, err := switchpad.DecodeLEDs(args[0])
		if err != nil {
			s.logger.Warn("player lights", "error", err)
		} else {
			s.mu.Lock()
			s.player = player
			s.mu.Unlock()
			s.logger.Info("player lights", "player", player)
		}
	}
	return s.WriteData(report)
}

// WriteData sends a data report without waiting for an answer.
func (s *Session) WriteData(report []byte) error {
	s.raw.Log(false, "data", report)
	if err := s.transport.SendData(report); err != nil {
		return fmt.Errorf("send data report: %w", err)
	}
	return nil
}

// WriteDataReport sends report and waits for the inbound data report whose
// first byte is responseID.
func (s *Session) WriteDataReport(ctx context.Context, report []byte, responseID byte) ([]byte, error) {
	t := s.responses.IssueTagged(responseID)
	defer s.responses.Release(t)

	if err := s.WriteData(report); err != nil {
		return nil, err
	}
	ev, err := s.responses.Await(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("await %#02x report: %w", responseID, err)
	}
	return ev.Report, nil
}

// SetReport sends a set report request and returns its completion status.
func (s *Session) SetReport(ctx context.Context, kind transport.ReportKind, report []byte) error {
	t := s.responses.Issue(response.KindSetReport)
	defer s.responses.Release(t)

	s.raw.Log(false, "set_report", report)
	if err := s.transport.SendSetReport(kind, report); err != nil {
		return fmt.Errorf("send set report: %w", err)
	}
	ev, err := s.responses.Await(ctx, t)
	if err != nil {
		return fmt.Errorf("await set report: %w", err)
	}
	return transport.Status(ev.Status).Err()
}

// GetReport requests report id of the given kind.
func (s *Session) GetReport(ctx context.Context, id byte, kind transport.ReportKind) ([]byte, error) {
	t := s.responses.Issue(response.KindGetReport)
	defer s.responses.Release(t)

	s.raw.Log(false, "get_report", []byte{id})
	if err := s.transport.SendGetReport(id, kind); err != nil {
		return nil, fmt.Errorf("send get report: %w", err)
	}
	ev, err := s.responses.Await(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("await get report: %w", err)
	}
	if err := transport.Status(ev.Status).Err(); err != nil {
		return nil, err
	}
	return ev.Report, nil
}

// ReadCalibration asks the controller for every stick calibration block.
// The replies are picked up by the ingestion path like any other report.
// A failed read does not stop the remaining ones.
func (s *Session) ReadCalibration(ctx context.Context) error {
	var errs []error
	for _, r := range switchpad.CalibrationReads {
		req := switchpad.NewSPIFlashReadRequest(s.nextCounter(), r.Addr, r.Size)
		if _, err := s.WriteDataReport(ctx, req, switchpad.ReportIDSubcommandReply); err != nil {
			errs = append(errs, fmt.Errorf("spi read %#04x: %w", r.Addr, err))
			if ctx.Err() != nil {
				break
			}
		}
	}
	return errors.Join(errs...)
}

// Close detaches every attached slot and fails pending requests.
func (s *Session) Close() {
	s.responses.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].attached {
			s.detach(i)
		}
	}
}

func (s *Session) nextCounter() byte {
	return byte(s.counter.Add(1) & 0x0F)
}

// updateCalibration feeds SPI flash read replies into the calibration set.
func (s *Session) updateCalibration() {
	addr, _, data, ok := s.report.SPIFlashRead()
	if !ok {
		return
	}
	if s.calibration.Apply(addr, data) {
		s.logger.Debug("calibration updated", "addr", fmt.Sprintf("%#04x", addr))
	}
}

func hasStandardLayout(id byte) bool {
	switch id {
	case switchpad.ReportIDSubcommandReply, switchpad.ReportIDStandardFull, switchpad.ReportIDNFCIR:
		return true
	}
	return false
}

// Calibration returns a copy of the current calibration.
func (s *Session) Calibration() switchpad.CalibrationSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calibration
}

// Player returns the player number last set through the player LEDs.
func (s *Session) Player() switchpad.PlayerNumber {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}
