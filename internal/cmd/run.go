package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/joymux/controller"
	"github.com/Alia5/joymux/internal/log"
	"github.com/Alia5/joymux/internal/server/api"
	"github.com/Alia5/joymux/internal/server/api/handler"
	"github.com/Alia5/joymux/pkg/apiclient"
	"github.com/Alia5/joymux/transport/hidraw"
	"github.com/Alia5/joymux/virtual"
	"github.com/Alia5/joymux/virtual/uhid"
	"github.com/Alia5/joymux/virtual/viiper"
)

// Run connects to one controller and serves it until interrupted.
type Run struct {
	Hidraw          string        `help:"hidraw node of the connected controller" required:"" env:"JOYMUX_HIDRAW"`
	Driver          string        `help:"Virtual slot driver: uhid, viiper or none" enum:"uhid,viiper,none" default:"uhid" env:"JOYMUX_DRIVER"`
	ViiperAddr      string        `help:"VIIPER API address for the viiper driver" default:"localhost:3242" env:"JOYMUX_VIIPER_ADDR"`
	ViiperBus       uint32        `help:"VIIPER bus to add devices to; 0 creates one" default:"0" env:"JOYMUX_VIIPER_BUS"`
	Mirror          bool          `help:"Mirror the controller to the local host through uhid" env:"JOYMUX_MIRROR"`
	ReadCalibration bool          `help:"Read stick calibration from the controller on start" default:"true" negatable:"" env:"JOYMUX_READ_CALIBRATION"`
	ResponseTimeout time.Duration `help:"Timeout for synchronous controller requests" default:"500ms" env:"JOYMUX_RESPONSE_TIMEOUT"`

	API api.ServerConfig `embed:"" prefix:"api."`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dev, err := hidraw.Open(r.Hidraw, logger)
	if err != nil {
		return err
	}
	defer dev.Close()

	driver, closeDriver, err := r.driver(logger)
	if err != nil {
		return err
	}
	defer closeDriver()

	var consumer controller.Consumer = controller.LogConsumer{Raw: rawLogger}
	var mirror *uhid.Mirror
	if r.Mirror {
		mirror, err = newMirror(dev, logger)
		if err != nil {
			return err
		}
		consumer = mirror
	}

	session := controller.New(dev, driver, consumer, controller.Config{ResponseTimeout: r.ResponseTimeout}, logger, rawLogger)
	defer session.Close()

	logger.Info("Starting joymux", "hidraw", r.Hidraw, "driver", r.Driver, "mirror", r.Mirror)

	errCh := make(chan error, 2)
	go func() { errCh <- dev.Serve(ctx, session) }()
	if mirror != nil {
		go func() { errCh <- mirror.Serve(ctx, session) }()
	}

	if r.API.Addr != "" {
		apiSrv := api.New(r.API.Addr, r.API, logger)
		handler.Register(apiSrv.Router(), session)
		if err := apiSrv.Start(); err != nil {
			return err
		}
		defer apiSrv.Close()
	}

	if r.ReadCalibration {
		go readCalibration(ctx, session, logger)
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}

func readCalibration(ctx context.Context, s *controller.Session, logger *slog.Logger) {
	if err := s.ReadCalibration(ctx); err != nil {
		logger.Warn("read calibration", "error", err)
		return
	}
	cal := s.Calibration()
	logger.Info("calibration read", "left", cal.Left(), "right", cal.Right())
}

func (r *Run) driver(logger *slog.Logger) (virtual.Driver, func(), error) {
	switch r.Driver {
	case "uhid":
		d := uhid.NewDriver(nil, logger)
		return d, func() { _ = d.Close() }, nil
	case "viiper":
		d := viiper.NewDriver(apiclient.New(r.ViiperAddr), viiper.Config{BusID: r.ViiperBus}, logger)
		return d, func() { _ = d.Close() }, nil
	case "none":
		return &virtual.Nop{}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown driver %q", r.Driver)
}

func newMirror(dev *hidraw.Device, logger *slog.Logger) (*uhid.Mirror, error) {
	desc, err := dev.ReportDescriptor()
	if err != nil {
		return nil, fmt.Errorf("read report descriptor: %w", err)
	}
	rw, err := uhid.OpenPath()
	if err != nil {
		return nil, err
	}
	udev, err := uhid.Create(rw, uhid.CreateParams{
		Name:       "joymux mirror",
		Bus:        uhid.BusBluetooth,
		Vendor:     uhid.VendorNintendo,
		Product:    uhid.ProductProController,
		Descriptor: desc,
	})
	if err != nil {
		_ = rw.Close()
		return nil, err
	}
	return uhid.NewMirror(udev, logger), nil
}
