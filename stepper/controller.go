package stepper

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"sync"
	"time"

	"github.com/mdouchement/logger"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

var (
	ErrNotFound        = errors.New("device not found/plugged")
	ErrTimeout         = errors.New("no response from device")
	ErrInvalidResponse = errors.New("invalid response")
)

type port interface {
	io.ReadWriteCloser
	ResetInputBuffer() error
	ResetOutputBuffer() error
}

// A Controller drives a stepper board over its serial link.
// The volume/flow selection is kept host side and sent along with the velocity.
type Controller struct {
	sync     sync.Mutex
	pname    string
	serial   port
	log      logger.Logger
	wbuf     []byte
	rbuf     []byte
	chunk    []byte
	distMode bool
	empty    bool // volume run without any step to dispense
}

func OpenAuto(vid, pid string) (*Controller, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	var port *enumerator.PortDetails
	for _, p := range ports {
		if p.IsUSB && p.VID == vid && p.PID == pid {
			port = p
			break
		}
	}
	if port == nil {
		return nil, ErrNotFound
	}

	fmt.Printf("Found stepper board on %s - PID: %s - VID: %s - SN: %s\n", port.Name, port.VID, port.PID, port.SerialNumber)
	return Open(port.Name, 115200)
}

func Open(name string, baudRate int) (*Controller, error) {
	if baudRate == 0 {
		baudRate = 115200
	}

	p, err := serial.Open(name, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}

	if err = p.SetReadTimeout(200 * time.Millisecond); err != nil {
		return nil, err
	}

	return newController(name, p)
}

func newController(name string, p port) (*Controller, error) {
	c := &Controller{
		pname:  name,
		serial: p,
		wbuf:   make([]byte, 0, CommRxBufferLenASCII),
		rbuf:   make([]byte, 0, CommMaxResponseLength),
		chunk:  make([]byte, CommRxBufferLenASCII),
	}

	if err := c.serial.ResetInputBuffer(); err != nil {
		return nil, err
	}

	if err := c.serial.ResetOutputBuffer(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Controller) SetLogger(l logger.Logger) {
	c.log = l
}

func (c *Controller) Close() error {
	if err := c.serial.ResetInputBuffer(); err != nil {
		return err
	}

	if err := c.serial.ResetOutputBuffer(); err != nil {
		return err
	}

	return c.serial.Close()
}

func (c *Controller) Port() string {
	return c.pname
}

func (c *Controller) HardwareInfo() (*HardwareInfo, error) {
	response, err := c.Run(CommandHardwareInfo)
	if err != nil {
		return nil, fmt.Errorf("hardware_info: %w", err)
	}

	var hw HardwareInfo
	for k, v := range pairs(response) {
		switch k {
		case "HW_REV":
			hw.Revision = v
		case "MCU":
			hw.MCU = v
		case "DRIVER":
			hw.Driver = v
		}
	}

	return &hw, nil
}

func (c *Controller) FirmwareInfo() (*FirmwareInfo, error) {
	response, err := c.Run(CommandFirmwareInfo)
	if err != nil {
		return nil, fmt.Errorf("firmware_info: %w", err)
	}

	var fw FirmwareInfo
	for k, v := range pairs(response) {
		switch k {
		case "FW_REV":
			fw.Revision = v
		case "PROTOCOL_VERSION":
			fw.ProtocolVersion = v
		}
	}

	return &fw, nil
}

func (c *Controller) Status() (Status, error) {
	response, err := c.Run(CommandStatus)
	if err != nil {
		return Status{}, fmt.Errorf("status: %w", err)
	}

	var st Status
	var found int
	for k, v := range pairs(response) {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Status{}, fmt.Errorf("status: %s: %w", k, err)
		}

		switch k {
		case "MOVING":
			st.Moving = b
			found++
		case "ENABLED":
			st.Enabled = b
			found++
		}
	}
	if found != 2 {
		return Status{}, fmt.Errorf("status: %w: %q", ErrInvalidResponse, response)
	}

	return st, nil
}

//
// Motor collaborator
//

func (c *Controller) SetDirection(forward bool) {
	var v uint8
	if forward {
		v = 1
	}
	d1, d2 := f2x(v)
	c.exec(CommandSetDirection, d1, d2)
}

// SetVelocity sends the step rate and, in volume mode, the run target.
// The board reads a zero target as a continuous run, so a volume run with
// nothing to dispense is never started.
func (c *Controller) SetVelocity(p Profile) {
	var target uint32
	volume := c.DistMode()
	if volume {
		target = uint32(min(p.TargetSteps(), 0xFFFFFFFF))
	}

	c.sync.Lock()
	c.empty = volume && target == 0
	c.sync.Unlock()

	payload := append(f8x(p.MilliStepsPerSecond()), f8x(target)...)
	c.exec(CommandSetVelocity, payload...)
}

func (c *Controller) Enable() {
	c.exec(CommandEnable)
}

func (c *Controller) Disable() {
	c.exec(CommandDisable)
}

func (c *Controller) Start() {
	c.sync.Lock()
	empty := c.empty
	c.sync.Unlock()

	if empty {
		if c.log != nil {
			c.log.Warnf("Start skipped on %s: empty volume run", c.pname)
		}
		return
	}

	c.exec(CommandStart)
}

func (c *Controller) Stop() {
	c.exec(CommandStop)
}

func (c *Controller) IsMoving() bool {
	st, err := c.Status()
	if err != nil {
		c.warn(err)
		return false
	}
	return st.Moving
}

func (c *Controller) IsEnabled() bool {
	st, err := c.Status()
	if err != nil {
		c.warn(err)
		return false
	}
	return st.Enabled
}

func (c *Controller) DistMode() bool {
	c.sync.Lock()
	defer c.sync.Unlock()

	return c.distMode
}

func (c *Controller) SetDistMode(volume bool) {
	c.sync.Lock()
	defer c.sync.Unlock()

	c.distMode = volume
}

func (c *Controller) exec(command Command, payload ...byte) {
	if _, err := c.Run(command, payload...); err != nil {
		c.warn(fmt.Errorf("%s: %w", command, err))
	}
}

func (c *Controller) warn(err error) {
	if c.log != nil {
		c.log.WithError(err).Error("Stepper board command failed")
	}
}

// Run sends a framed command and returns the payload of the response.
//
//	request:  >CC<payload>\r\n
//	response: <CC|<payload>\r\n
//
// Lines received before the response are board logs.
func (c *Controller) Run(command Command, payload ...byte) ([]byte, error) {
	c.sync.Lock()
	defer c.sync.Unlock()

	c1, c2 := f2x(command)
	c.wbuf = append(c.wbuf[:0], CommRequestCharacter, c1, c2)
	c.wbuf = append(c.wbuf, payload...)
	c.wbuf = append(c.wbuf, CommAltEndCharacter, CommEndCharacter)

	n, err := c.serial.Write(c.wbuf)
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	if n != len(c.wbuf) && c.log != nil {
		c.log.Warnf("Invalid write: %d of %d", n, len(c.wbuf))
	}

	//

	c.rbuf = c.rbuf[:0]
	start, end := -1, -1
	for end < 0 {
		n, err = c.serial.Read(c.chunk)
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		if n == 0 {
			return nil, ErrTimeout
		}

		c.rbuf = append(c.rbuf, c.chunk[:n]...)
		if len(c.rbuf) > CommMaxResponseLength {
			return nil, fmt.Errorf("read: %w: too long", ErrInvalidResponse)
		}

		start = bytes.IndexByte(c.rbuf, CommResponseCharacter)
		if start < 0 {
			continue
		}
		if i := bytes.IndexByte(c.rbuf[start:], CommEndCharacter); i >= 0 {
			end = start + i
		}
	}

	logs := c.rbuf[:start]
	response := bytes.TrimSpace(c.rbuf[start:end])

	//

	if c.log != nil {
		for p := range bytes.SplitSeq(logs, []byte{'\r', '\n'}) {
			if len(p) == 0 {
				continue
			}
			c.log.Debug(string(p))
		}
		c.log.Debug(string(response))
	}

	//

	if len(response) < 4 || response[3] != CommSeparator {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResponse, response)
	}
	if response[1] != c1 || response[2] != c2 {
		return nil, fmt.Errorf("%w: unexpected command echo %q", ErrInvalidResponse, response[1:3])
	}

	copied := make([]byte, len(response)-4)
	copy(copied, response[4:])
	return copied, nil
}

// pairs iterates over `KEY:value;KEY:value` payloads.
func pairs(p []byte) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for field := range bytes.SplitSeq(p, []byte{';'}) {
			kv := bytes.SplitN(field, []byte{':'}, 2)
			if len(kv) != 2 {
				continue
			}
			if !yield(string(bytes.TrimSpace(kv[0])), string(bytes.TrimSpace(kv[1]))) {
				return
			}
		}
	}
}
