package stepper

import "fmt"

type Command uint8

func (c Command) String() string {
	switch c {
	case CommandHardwareInfo:
		return "hardware_info"
	case CommandFirmwareInfo:
		return "firmware_info"
	case CommandSetDirection:
		return "set_direction"
	case CommandSetVelocity:
		return "set_velocity"
	case CommandEnable:
		return "enable"
	case CommandDisable:
		return "disable"
	case CommandStart:
		return "start"
	case CommandStop:
		return "stop"
	case CommandStatus:
		return "status"
	default:
		return fmt.Sprintf("command_%02X", uint8(c))
	}
}

type HardwareInfo struct {
	Revision string `json:"revision"`
	MCU      string `json:"mcu"`
	Driver   string `json:"driver"`
}

type FirmwareInfo struct {
	Revision        string `json:"revision"`
	ProtocolVersion string `json:"protocol_version"`
}

type Status struct {
	Moving  bool `json:"moving"`
	Enabled bool `json:"enabled"`
}

func f2x[T ~uint8](v T) (byte, byte) {
	s := fmt.Sprintf("%02X", v)
	return s[0], s[1]
}

func f8x(v uint32) []byte {
	return []byte(fmt.Sprintf("%08X", v))
}
