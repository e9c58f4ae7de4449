package hid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportBytes(t *testing.T) {
	r := Report{Items: []Item{
		UsagePage{Page: UsagePageGenericDesktop},
		Usage{Usage: UsageGamePad},
		Collection{Kind: CollectionApplication, Items: []Item{
			UsagePage{Page: UsagePageButton},
			UsageMinimum{Min: 1},
			UsageMaximum{Max: 16},
			LogicalMinimum{Min: 0},
			LogicalMaximum{Max: 1},
			ReportSize{Bits: 1},
			ReportCount{Count: 16},
			Input{Flags: MainData | MainVar | MainAbs},
			LogicalMinimum{Min: -32767},
			LogicalMaximum{Max: 32767},
		}},
	}}

	got, err := r.Bytes()
	require.NoError(t, err)
	assert.Equal(t, Data{
		0x05, 0x01,
		0x09, 0x05,
		0xA1, 0x01,
		0x05, 0x09,
		0x19, 0x01,
		0x29, 0x10,
		0x15, 0x00,
		0x25, 0x01,
		0x75, 0x01,
		0x95, 0x10,
		0x81, 0x02,
		0x16, 0x01, 0x80,
		0x26, 0xFF, 0x7F,
		0xC0,
	}, got)
}

func TestReportBytesNilItem(t *testing.T) {
	_, err := Report{Items: []Item{nil}}.Bytes()
	assert.Error(t, err)
}
