package hid

// Usage pages, per the HID Usage Tables.
const (
	UsagePageGenericDesktop uint16 = 0x01
	UsagePageButton         uint16 = 0x09
)

// Generic Desktop usages.
const (
	UsageJoystick uint16 = 0x04
	UsageGamePad  uint16 = 0x05
	UsageX        uint16 = 0x30
	UsageY        uint16 = 0x31
	UsageRx       uint16 = 0x33
	UsageRy       uint16 = 0x34
)

type CollectionKind uint8

const (
	CollectionPhysical    CollectionKind = 0x00
	CollectionApplication CollectionKind = 0x01
)

type MainFlags uint8

const (
	MainData  MainFlags = 0x00
	MainConst MainFlags = 0x01
	MainVar   MainFlags = 0x02
	MainAbs   MainFlags = 0x00
)
