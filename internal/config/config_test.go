package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDefaults(t *testing.T) {
	var cli CLI
	p, err := kong.New(&cli)
	require.NoError(t, err)

	ctx, err := p.Parse([]string{"run", "--hidraw", "/dev/hidraw3"})
	require.NoError(t, err)
	assert.Equal(t, "run", ctx.Command())
	assert.Equal(t, "/dev/hidraw3", cli.Run.Hidraw)
	assert.Equal(t, "uhid", cli.Run.Driver)
	assert.True(t, cli.Run.ReadCalibration)
	assert.Equal(t, 500*time.Millisecond, cli.Run.ResponseTimeout)
	assert.Equal(t, ":3243", cli.Run.API.Addr)
	assert.Equal(t, "info", cli.Log.Level)
}

func TestRunFlags(t *testing.T) {
	var cli CLI
	p, err := kong.New(&cli)
	require.NoError(t, err)

	_, err = p.Parse([]string{
		"--log.level", "debug",
		"run", "--hidraw", "/dev/hidraw1",
		"--driver", "viiper", "--viiper-bus", "4",
		"--no-read-calibration", "--mirror", "--api.addr", "",
	})
	require.NoError(t, err)
	assert.Equal(t, "viiper", cli.Run.Driver)
	assert.Equal(t, uint32(4), cli.Run.ViiperBus)
	assert.False(t, cli.Run.ReadCalibration)
	assert.True(t, cli.Run.Mirror)
	assert.Empty(t, cli.Run.API.Addr)
	assert.Equal(t, "debug", cli.Log.Level)
}

func TestRunRejectsUnknownDriver(t *testing.T) {
	var cli CLI
	p, err := kong.New(&cli)
	require.NoError(t, err)
	_, err = p.Parse([]string{"run", "--hidraw", "/dev/hidraw1", "--driver", "vjoy"})
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JOYMUX_HIDRAW", "/dev/hidraw9")
	t.Setenv("JOYMUX_RESPONSE_TIMEOUT", "1s")

	var cli CLI
	p, err := kong.New(&cli)
	require.NoError(t, err)
	_, err = p.Parse([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, "/dev/hidraw9", cli.Run.Hidraw)
	assert.Equal(t, time.Second, cli.Run.ResponseTimeout)
}

func TestJSONConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log":{"level":"warn"}}`), 0o644))

	var cli CLI
	p, err := kong.New(&cli, kong.Configuration(kong.JSON, path))
	require.NoError(t, err)
	_, err = p.Parse([]string{"version"})
	require.NoError(t, err)
	assert.Equal(t, "warn", cli.Log.Level)
}

func TestDecodeCommand(t *testing.T) {
	var cli CLI
	p, err := kong.New(&cli)
	require.NoError(t, err)
	ctx, err := p.Parse([]string{"decode", "leds", "0x03"})
	require.NoError(t, err)
	assert.Equal(t, "decode leds <mask>", ctx.Command())
	assert.Equal(t, "0x03", cli.Decode.LEDs.Mask)
}
