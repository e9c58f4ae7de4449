package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Alia5/joymux/switchpad"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Decode groups offline decoders for data captured from a controller.
type Decode struct {
	Calibration DecodeCalibration `cmd:"" help:"Parse a 9-byte stick calibration blob"`
	Magic       DecodeMagic       `cmd:"" help:"Check the 2-byte user calibration marker"`
	LEDs        DecodeLEDs        `cmd:"" name:"leds" help:"Decode a player LED mask"`
}

type DecodeCalibration struct {
	Hex    string `arg:"" help:"Blob as hex, spaces and colons allowed"`
	Right  bool   `help:"Blob belongs to the right stick"`
	Format string `help:"Output format: yaml, toml or json" enum:"yaml,toml,json" default:"yaml"`

	out io.Writer `kong:"-"`
}

func (c *DecodeCalibration) Run() error {
	raw, err := parseHex(c.Hex)
	if err != nil {
		return err
	}
	if len(raw) < switchpad.StickCalibrationSize {
		return fmt.Errorf("calibration blob needs %d bytes, got %d", switchpad.StickCalibrationSize, len(raw))
	}
	cal := switchpad.ParseStickCalibration(raw, !c.Right)
	return writeFormatted(writer(c.out), c.Format, cal)
}

type DecodeMagic struct {
	Hex string `arg:"" help:"Marker bytes as hex"`

	out io.Writer `kong:"-"`
}

func (c *DecodeMagic) Run() error {
	raw, err := parseHex(c.Hex)
	if err != nil {
		return err
	}
	if len(raw) < switchpad.UserCalibrationMagicSize {
		return fmt.Errorf("marker needs %d bytes, got %d", switchpad.UserCalibrationMagicSize, len(raw))
	}
	_, err = fmt.Fprintln(writer(c.out), switchpad.HasUserCalibrationMagic(raw))
	return err
}

type DecodeLEDs struct {
	Mask string `arg:"" help:"LED mask, decimal, 0x hex or 0b binary"`

	out io.Writer `kong:"-"`
}

func (c *DecodeLEDs) Run() error {
	v, err := strconv.ParseUint(c.Mask, 0, 8)
	if err != nil {
		return fmt.Errorf("parse mask: %w", err)
	}
	p, err := switchpad.DecodeLEDs(uint8(v))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer(c.out), p)
	return err
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func parseHex(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ":", "", "0x", "", "\t", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return b, nil
}

func writeFormatted(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "toml":
		b, err := toml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
}
