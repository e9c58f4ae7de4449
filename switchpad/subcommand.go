package switchpad

import "encoding/binary"

// Subcommand identifies a request carried by a 0x01 output report.
type Subcommand uint8

// Subcommands a host sends during its handshake. joymux itself only sends
// SPIFlashRead and inspects SetPlayerLights; the rest name host
// traffic in debug logs.
const (
	SubcommandRequestDeviceInfo  Subcommand = 0x02 // firmware version, type, MAC
	SubcommandSetInputReportMode Subcommand = 0x03 // 0x30 selects full reports
	SubcommandSPIFlashRead       Subcommand = 0x10
	SubcommandSetPlayerLights    Subcommand = 0x30
	SubcommandEnableIMU          Subcommand = 0x40
	SubcommandEnableVibration    Subcommand = 0x48
)

func (s Subcommand) String() string {
	switch s {
	case SubcommandRequestDeviceInfo:
		return "RequestDeviceInfo"
	case SubcommandSetInputReportMode:
		return "SetInputReportMode"
	case SubcommandSPIFlashRead:
		return "SPIFlashRead"
	case SubcommandSetPlayerLights:
		return "SetPlayerLights"
	case SubcommandEnableIMU:
		return "EnableIMU"
	case SubcommandEnableVibration:
		return "EnableVibration"
	default:
		return "UNKNOWN"
	}
}

// Output report layout: id, packet counter, 8 bytes of rumble, subcommand, args.
const (
	outOffCounter = 1
	outOffRumble  = 2
	outOffSubcmd  = 10
	outOffArgs    = 11
)

var neutralRumble = [8]byte{0x00, 0x01, 0x40, 0x40, 0x00, 0x01, 0x40, 0x40}

// NewSubcommandReport builds a rumble+subcommand output report with neutral
// rumble.
func NewSubcommandReport(counter byte, cmd Subcommand, args []byte) []byte {
	b := make([]byte, outOffArgs+len(args))
	b[0] = ReportIDRumbleSubcommand
	b[outOffCounter] = counter & 0x0F
	copy(b[outOffRumble:], neutralRumble[:])
	b[outOffSubcmd] = byte(cmd)
	copy(b[outOffArgs:], args)
	return b
}

// NewSPIFlashReadRequest asks for size bytes of SPI flash at addr.
func NewSPIFlashReadRequest(counter byte, addr uint32, size byte) []byte {
	args := make([]byte, 5)
	binary.LittleEndian.PutUint32(args, addr)
	args[4] = size
	return NewSubcommandReport(counter, SubcommandSPIFlashRead, args)
}

// ParseSubcommandReport returns the subcommand and arguments of a 0x01
// output report.
func ParseSubcommandReport(b []byte) (Subcommand, []byte, bool) {
	if len(b) <= outOffSubcmd || b[0] != ReportIDRumbleSubcommand {
		return 0, nil, false
	}
	return Subcommand(b[outOffSubcmd]), b[outOffArgs:], true
}

// NewSPIFlashReadReply builds the 0x21 input report a controller sends in
// answer to an SPI flash read.
func NewSPIFlashReadReply(addr uint32, data []byte) []byte {
	b := make([]byte, offSPIData+len(data))
	b[0] = ReportIDSubcommandReply
	b[offAck] = 0x90
	b[offSubcmdID] = byte(SubcommandSPIFlashRead)
	binary.LittleEndian.PutUint32(b[offSPIAddr:], addr)
	b[offSPISize] = byte(len(data))
	copy(b[offSPIData:], data)
	return b
}
