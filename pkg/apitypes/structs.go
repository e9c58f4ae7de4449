package apitypes

// Shared API response structs used by both handlers and clients.

type ApiError struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

type Slot struct {
	Index    int    `json:"index"`
	Attached bool   `json:"attached"`
	Handle   uint64 `json:"handle,omitempty"`
	Buttons  string `json:"buttons"`
	LX       int32  `json:"lx"`
	LY       int32  `json:"ly"`
	RX       int32  `json:"rx"`
	RY       int32  `json:"ry"`
}

type SlotsListResponse struct {
	Slots []Slot `json:"slots"`
}

type Axis struct {
	Min    int32 `json:"min"`
	Center int32 `json:"center"`
	Max    int32 `json:"max"`
}

type Stick struct {
	X Axis `json:"x"`
	Y Axis `json:"y"`
}

type CalibrationResponse struct {
	FactoryLeft  Stick `json:"factoryLeft"`
	FactoryRight Stick `json:"factoryRight"`
	UserLeft     Stick `json:"userLeft"`
	UserRight    Stick `json:"userRight"`
	HasUserLeft  bool  `json:"hasUserLeft"`
	HasUserRight bool  `json:"hasUserRight"`
}

type PlayerResponse struct {
	Player int    `json:"player"`
	Name   string `json:"name"`
}

// The remaining types mirror the responses of a VIIPER server, which the
// viiper driver talks to.

type BusListResponse struct {
	Buses []uint32 `json:"buses"`
}

type BusCreateResponse struct {
	BusID uint32 `json:"busId"`
}

type Device struct {
	BusID uint32 `json:"busId"`
	DevId string `json:"devId"`
	Vid   string `json:"vid"`
	Pid   string `json:"pid"`
	Type  string `json:"type"`
}

type DeviceAddResponse struct {
	ID string `json:"id"` // Format: "<busId>-<devId>"
}

type DeviceRemoveResponse struct {
	BusID uint32 `json:"busId"`
	DevId string `json:"devId"`
}
