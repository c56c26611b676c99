package address

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sigurn/crc16"
)

// ErrInvalidAddress is returned for any text that does not describe a valid std address.
var ErrInvalidAddress = errors.New("invalid address")

var crcTable = crc16.MakeTable(crc16.CRC16_XMODEM)

const (
	flagBounceable    = 0x11
	flagNonBounceable = 0x51
	flagTestnet       = 0x80
)

type flags struct {
	bounceable bool
	testnet    bool
}

// Address is a std (addr_std) ledger address: signed 8 bit workchain and 256 bit account hash.
// Flags only affect the user-friendly text form.
type Address struct {
	flags     flags
	workchain int8
	data      [32]byte
}

func NewAddress(workchain int8, hash [32]byte) *Address {
	return &Address{
		flags:     flags{bounceable: true},
		workchain: workchain,
		data:      hash,
	}
}

// NewAddressFromBytes builds an address from a 32 byte hash slice.
func NewAddressFromBytes(workchain int8, hash []byte) (*Address, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("%w: hash should be 32 bytes, got %d", ErrInvalidAddress, len(hash))
	}

	var h [32]byte
	copy(h[:], hash)
	return NewAddress(workchain, h), nil
}

func MustParseAddr(addr string) *Address {
	a, err := ParseAddr(addr)
	if err != nil {
		panic(err)
	}
	return a
}

func MustParseRawAddr(addr string) *Address {
	a, err := ParseRawAddr(addr)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseAnyAddr accepts both raw (wc:hex) and user-friendly forms.
func ParseAnyAddr(addr string) (*Address, error) {
	if strings.Contains(addr, ":") {
		return ParseRawAddr(addr)
	}
	return ParseAddr(addr)
}

// ParseAddr parses user-friendly address, both url-safe and standard base64 alphabets are accepted.
func ParseAddr(addr string) (*Address, error) {
	if len(addr) != 48 {
		return nil, fmt.Errorf("%w: user-friendly form should be 48 chars, got %d", ErrInvalidAddress, len(addr))
	}

	enc := base64.URLEncoding
	if strings.ContainsAny(addr, "+/") {
		enc = base64.StdEncoding
	}

	data, err := enc.DecodeString(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	if len(data) != 36 {
		return nil, fmt.Errorf("%w: incorrect length", ErrInvalidAddress)
	}

	checksum := binary.BigEndian.Uint16(data[34:])
	if crc16.Checksum(data[:34], crcTable) != checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
	}

	fl, err := parseFlags(data[0])
	if err != nil {
		return nil, err
	}

	a := &Address{
		flags:     fl,
		workchain: int8(data[1]),
	}
	copy(a.data[:], data[2:34])

	return a, nil
}

// ParseRawAddr parses address in wc:hex form, for example 0:83dfd5...
func ParseRawAddr(addr string) (*Address, error) {
	idx := strings.IndexByte(addr, ':')
	if idx <= 0 {
		return nil, fmt.Errorf("%w: raw form should be workchain:hash", ErrInvalidAddress)
	}

	wc, err := strconv.ParseInt(addr[:idx], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: bad workchain: %v", ErrInvalidAddress, err)
	}

	hash := addr[idx+1:]
	if len(hash) != 64 {
		return nil, fmt.Errorf("%w: hash should be 64 hex chars, got %d", ErrInvalidAddress, len(hash))
	}

	data, err := hex.DecodeString(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: bad hash: %v", ErrInvalidAddress, err)
	}

	return NewAddressFromBytes(int8(wc), data)
}

func parseFlags(data byte) (flags, error) {
	var f flags
	if data&flagTestnet != 0 {
		f.testnet = true
		data &^= flagTestnet
	}

	switch data {
	case flagBounceable:
		f.bounceable = true
	case flagNonBounceable:
	default:
		return flags{}, fmt.Errorf("%w: unknown flags byte 0x%02x", ErrInvalidAddress, data)
	}
	return f, nil
}

func (f flags) toByte() byte {
	b := byte(flagNonBounceable)
	if f.bounceable {
		b = flagBounceable
	}
	if f.testnet {
		b |= flagTestnet
	}
	return b
}

func (a *Address) prepareChecksumData() []byte {
	data := make([]byte, 0, 34)
	data = append(data, a.flags.toByte(), byte(a.workchain))
	return append(data, a.data[:]...)
}

func (a *Address) Checksum() uint16 {
	return crc16.Checksum(a.prepareChecksumData(), crcTable)
}

// String returns user-friendly url-safe form.
func (a *Address) String() string {
	data := a.prepareChecksumData()
	data = binary.BigEndian.AppendUint16(data, a.Checksum())
	return base64.URLEncoding.EncodeToString(data)
}

// StringRaw returns wc:hex form.
func (a *Address) StringRaw() string {
	return strconv.Itoa(int(a.workchain)) + ":" + hex.EncodeToString(a.data[:])
}

func (a *Address) Workchain() int8 {
	return a.workchain
}

// Data returns copy of the account hash.
func (a *Address) Data() []byte {
	return append([]byte{}, a.data[:]...)
}

func (a *Address) Hash() [32]byte {
	return a.data
}

func (a *Address) IsBounceable() bool {
	return a.flags.bounceable
}

func (a *Address) IsTestnetOnly() bool {
	return a.flags.testnet
}

// Bounce returns a copy with bounceable flag set to the given value.
func (a *Address) Bounce(bounce bool) *Address {
	cp := *a
	cp.flags.bounceable = bounce
	return &cp
}

// Testnet returns a copy with testnet flag set to the given value.
func (a *Address) Testnet(testnet bool) *Address {
	cp := *a
	cp.flags.testnet = testnet
	return &cp
}

// Equals compares workchain and hash, flags are ignored.
func (a *Address) Equals(b *Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.workchain == b.workchain && a.data == b.data
}

func (a *Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAnyAddr(string(text))
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}
