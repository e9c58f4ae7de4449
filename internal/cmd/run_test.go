package cmd

import (
	"bytes"
	"context"
	"encoding/binary"
	"log/slog"
	"testing"
	"time"

	"github.com/Alia5/joymux/controller"
	th "github.com/Alia5/joymux/internal/testing"
	"github.com/Alia5/joymux/switchpad"
	"github.com/Alia5/joymux/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalibrationSession(t *testing.T, flash map[uint32][]byte) *controller.Session {
	t.Helper()
	tr := &th.Transport{}
	s := controller.New(tr, th.NewDriver(), &th.Consumer{}, controller.Config{ResponseTimeout: 200 * time.Millisecond}, slog.Default(), nil)
	tr.Handler = s
	tr.Reply = func(h transport.Handler, report []byte) {
		cmd, args, ok := switchpad.ParseSubcommandReport(report)
		if !ok || cmd != switchpad.SubcommandSPIFlashRead {
			return
		}
		addr := binary.LittleEndian.Uint32(args)
		data, ok := flash[addr]
		if !ok {
			data = make([]byte, args[4])
		}
		h.OnDataReport(switchpad.NewSPIFlashReadReply(addr, data))
	}
	t.Cleanup(s.Close)
	return s
}

func TestReadCalibrationLogsResult(t *testing.T) {
	blob, err := parseHex(leftBlob)
	require.NoError(t, err)
	s := newCalibrationSession(t, map[uint32][]byte{
		switchpad.AddrFactoryStickLeft: blob,
		switchpad.AddrUserMagicLeft:    {0xB2, 0xA1},
		switchpad.AddrUserMagicRight:   {0xB2, 0xA1},
	})

	var buf bytes.Buffer
	readCalibration(context.Background(), s, slog.New(slog.NewTextHandler(&buf, nil)))

	out := buf.String()
	assert.Contains(t, out, "calibration read")
	assert.Contains(t, out, "left=")
	assert.Contains(t, out, "right=")
	assert.NotContains(t, out, "level=WARN")
	assert.Eventually(t, func() bool {
		return s.Calibration().Left() == leftCal
	}, time.Second, 5*time.Millisecond)
}

func TestReadCalibrationLogsFailure(t *testing.T) {
	s := newCalibrationSession(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	readCalibration(ctx, s, slog.New(slog.NewTextHandler(&buf, nil)))

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "read calibration")
	assert.NotContains(t, buf.String(), "calibration read")
}
