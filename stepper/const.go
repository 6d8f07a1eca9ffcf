package stepper

const (
	CommRequestCharacter  = '>'
	CommResponseCharacter = '<'
	CommSeparator         = '|'
	CommEndCharacter      = '\n'
	CommAltEndCharacter   = '\r'
	CommRxBufferLenASCII  = 128
	CommMaxResponseLength = CommRxBufferLenASCII * 8
)

const (
	CommandHardwareInfo Command = 0x05
	CommandFirmwareInfo Command = 0x06

	CommandSetDirection Command = 0x10
	CommandSetVelocity  Command = 0x11
	CommandEnable       Command = 0x12
	CommandDisable      Command = 0x13
	CommandStart        Command = 0x14
	CommandStop         Command = 0x15
	CommandStatus       Command = 0x16
)

// USB identifiers of the RP2040 based driver board.
const (
	DefaultVID = "2e8a"
	DefaultPID = "000b"
)
