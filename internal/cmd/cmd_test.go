package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Alia5/joymux/switchpad"
	"github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const leftBlob = "A0 05 4F F5 27 81 C0 05 60"

var leftCal = switchpad.StickCalibration{
	X: switchpad.AxisCalibration{Min: 0x7F5 - 0x5C0, Center: 0x7F5, Max: 0x7F5 + 0x5A0},
	Y: switchpad.AxisCalibration{Min: 0x812 - 0x600, Center: 0x812, Max: 0x812 + 0x4F0},
}

func TestDecodeCalibrationFormats(t *testing.T) {
	tests := []struct {
		format string
		decode func([]byte, any) error
	}{
		{"json", json.Unmarshal},
		{"yaml", yaml.Unmarshal},
		{"toml", toml.Unmarshal},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			c := DecodeCalibration{Hex: leftBlob, Format: tt.format, out: &buf}
			require.NoError(t, c.Run())

			var got switchpad.StickCalibration
			require.NoError(t, tt.decode(buf.Bytes(), &got))
			assert.Equal(t, leftCal, got)
		})
	}
}

func TestDecodeCalibrationErrors(t *testing.T) {
	c := DecodeCalibration{Hex: "A005", Format: "yaml", out: &bytes.Buffer{}}
	assert.Error(t, c.Run())

	c = DecodeCalibration{Hex: "zz", Format: "yaml", out: &bytes.Buffer{}}
	assert.Error(t, c.Run())
}

func TestDecodeMagic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"B2A1", "false\n"},
		{"b2:a1", "false\n"},
		{"FFFF", "true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, (&DecodeMagic{Hex: tt.in, out: &buf}).Run())
			assert.Equal(t, tt.want, buf.String())
		})
	}
	assert.Error(t, (&DecodeMagic{Hex: "B2", out: &bytes.Buffer{}}).Run())
}

func TestDecodeLEDs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&DecodeLEDs{Mask: "0b0011", out: &buf}).Run())
	assert.Equal(t, "player 2\n", buf.String())

	buf.Reset()
	require.NoError(t, (&DecodeLEDs{Mask: "0x10", out: &buf}).Run())
	assert.Equal(t, "player 1\n", buf.String())

	assert.Error(t, (&DecodeLEDs{Mask: "nope", out: &buf}).Run())
	assert.Error(t, (&DecodeLEDs{Mask: "256", out: &buf}).Run())
}

func TestWriteUnit(t *testing.T) {
	dir := t.TempDir()
	path, err := writeUnit(dir, "/usr/bin/joymux", []string{"--hidraw", "/dev/hidraw3", "--mirror"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, unitName), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "ExecStart=/usr/bin/joymux run --hidraw /dev/hidraw3 --mirror\n")
}

func TestQuoteArg(t *testing.T) {
	assert.Equal(t, "plain", quoteArg("plain"))
	assert.Equal(t, `"a b"`, quoteArg("a b"))
	assert.Equal(t, `"say \"hi\""`, quoteArg(`say "hi"`))
	assert.Equal(t, `""`, quoteArg(""))
}
