package report

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// MaxDatagramSize is the largest UDP payload over IPv4.
const MaxDatagramSize = 65507

// DefaultLocalAddr binds the sending socket to an ephemeral loopback port.
const DefaultLocalAddr = "127.0.0.1:0"

var api = sonic.ConfigStd

// Format selects the datagram encoding.
type Format int

const (
	// FormatRaw sends the text bytes with no framing.
	FormatRaw Format = iota
	// FormatJSON sends Payload encoded as one JSON object.
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps "raw" or "json" (any case) to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "raw":
		return FormatRaw, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatRaw, fmt.Errorf("%w: unknown format %q", ErrInvalidOption, name)
	}
}

// Payload is one match result to deliver.
type Payload struct {
	Pattern string `json:"pattern"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Text    string `json:"text"`
}

// UDP sends each Payload as a single datagram to a fixed destination.
type UDP struct {
	addr         string
	localAddr    string
	format       Format
	writeTimeout time.Duration
}

// NewUDP returns a reporter for the destination addr ("host:port").
func NewUDP(addr string, opts ...Option) (*UDP, error) {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return nil, fmt.Errorf("%w: destination %q: %v", ErrInvalidOption, addr, err)
	}

	u := &UDP{
		addr:      addr,
		localAddr: DefaultLocalAddr,
		format:    FormatRaw,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(u); err != nil {
			return nil, err
		}
	}

	return u, nil
}

// Addr returns the destination address.
func (u *UDP) Addr() string {
	return u.addr
}

// Format returns the datagram encoding in use.
func (u *UDP) Format() Format {
	return u.format
}

// Encode returns the datagram bytes for p.
func (u *UDP) Encode(p Payload) ([]byte, error) {
	if u.format == FormatJSON {
		return api.Marshal(p)
	}

	return []byte(p.Text), nil
}

// Report sends p as exactly one datagram from a freshly bound local socket.
// Every failure is a *TransportError.
func (u *UDP) Report(p Payload) error {
	data, err := u.Encode(p)
	if err != nil {
		return &TransportError{Op: "encode", Addr: u.addr, Err: err}
	}

	if len(data) > MaxDatagramSize {
		return &TransportError{
			Op:   "write",
			Addr: u.addr,
			Err:  fmt.Errorf("%w: %d > %d bytes", ErrPayloadTooLarge, len(data), MaxDatagramSize),
		}
	}

	raddr, err := net.ResolveUDPAddr("udp", u.addr)
	if err != nil {
		return &TransportError{Op: "resolve", Addr: u.addr, Err: err}
	}

	laddr, err := net.ResolveUDPAddr("udp", u.localAddr)
	if err != nil {
		return &TransportError{Op: "resolve", Addr: u.localAddr, Err: err}
	}

	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return &TransportError{Op: "listen", Addr: u.localAddr, Err: err}
	}
	defer conn.Close()

	if u.writeTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(u.writeTimeout)); err != nil {
			return &TransportError{Op: "write", Addr: u.addr, Err: err}
		}
	}

	n, err := conn.WriteToUDP(data, raddr)
	if err != nil {
		return &TransportError{Op: "write", Addr: u.addr, Err: err}
	}
	if n != len(data) {
		return &TransportError{Op: "write", Addr: u.addr, Err: io.ErrShortWrite}
	}

	return nil
}
