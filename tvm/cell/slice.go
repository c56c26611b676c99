package cell

import (
	"errors"
	"math/big"

	"github.com/tonmint/tonmint/address"
)

var (
	ErrNotEnoughData           = errors.New("not enough data in cell")
	ErrNoMoreRefs              = errors.New("no more refs exists")
	ErrAddressTypeNotSupported = errors.New("address type is not supported")
)

// Slice reads bits and refs of a cell sequentially.
type Slice struct {
	bitsSz   uint
	loadedSz uint
	data     []byte

	refs []*Cell
}

func (c *Slice) BitsLeft() uint {
	return c.bitsSz - c.loadedSz
}

func (c *Slice) RefsNum() int {
	return len(c.refs)
}

func (c *Slice) MustLoadRef() *Slice {
	r, err := c.LoadRef()
	if err != nil {
		panic(err)
	}
	return r
}

func (c *Slice) LoadRef() (*Slice, error) {
	ref, err := c.LoadRefCell()
	if err != nil {
		return nil, err
	}
	return ref.BeginParse(), nil
}

func (c *Slice) LoadRefCell() (*Cell, error) {
	if len(c.refs) == 0 {
		return nil, ErrNoMoreRefs
	}
	ref := c.refs[0]
	c.refs = c.refs[1:]

	return ref, nil
}

// LoadMaybeRef returns nil cell without error when the flag bit is 0.
func (c *Slice) LoadMaybeRef() (*Cell, error) {
	has, err := c.LoadBoolBit()
	if err != nil {
		return nil, err
	}

	if !has {
		return nil, nil
	}
	return c.LoadRefCell()
}

func (c *Slice) MustLoadUInt(sz uint) uint64 {
	res, err := c.LoadUInt(sz)
	if err != nil {
		panic(err)
	}
	return res
}

func (c *Slice) LoadUInt(sz uint) (uint64, error) {
	if sz > 64 {
		return 0, ErrTooBigSize
	}

	res, err := c.LoadBigUInt(sz)
	if err != nil {
		return 0, err
	}
	return res.Uint64(), nil
}

func (c *Slice) MustLoadInt(sz uint) int64 {
	res, err := c.LoadInt(sz)
	if err != nil {
		panic(err)
	}
	return res
}

func (c *Slice) LoadInt(sz uint) (int64, error) {
	if sz > 64 {
		return 0, ErrTooBigSize
	}

	res, err := c.LoadBigInt(sz)
	if err != nil {
		return 0, err
	}
	return res.Int64(), nil
}

func (c *Slice) LoadBoolBit() (bool, error) {
	res, err := c.LoadUInt(1)
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

func (c *Slice) MustLoadBigUInt(sz uint) *big.Int {
	r, err := c.LoadBigUInt(sz)
	if err != nil {
		panic(err)
	}
	return r
}

func (c *Slice) LoadBigUInt(sz uint) (*big.Int, error) {
	if sz > 256 {
		return nil, ErrTooBigSize
	}

	b, err := c.LoadSlice(sz)
	if err != nil {
		return nil, err
	}

	// bits are at the left side of the bytes, move them right
	v := new(big.Int).SetBytes(b)
	return v.Rsh(v, uint(len(b))*8-sz), nil
}

func (c *Slice) LoadBigInt(sz uint) (*big.Int, error) {
	if sz > 257 {
		return nil, ErrTooBigSize
	}

	b, err := c.LoadSlice(sz)
	if err != nil {
		return nil, err
	}

	v := new(big.Int).SetBytes(b)
	v.Rsh(v, uint(len(b))*8-sz)

	// negative when the sign bit is set
	if sz > 0 && v.Bit(int(sz-1)) == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), sz))
	}
	return v, nil
}

func (c *Slice) LoadBigCoins() (*big.Int, error) {
	ln, err := c.LoadUInt(4)
	if err != nil {
		return nil, err
	}
	return c.LoadBigUInt(uint(ln * 8))
}

func (c *Slice) LoadCoins() (uint64, error) {
	v, err := c.LoadBigCoins()
	if err != nil {
		return 0, err
	}

	if !v.IsUint64() {
		return 0, ErrTooBigValue
	}
	return v.Uint64(), nil
}

func (c *Slice) MustLoadSlice(sz uint) []byte {
	s, err := c.LoadSlice(sz)
	if err != nil {
		panic(err)
	}
	return s
}

// LoadSlice loads sz bits, result is aligned to the left side of the bytes.
func (c *Slice) LoadSlice(sz uint) ([]byte, error) {
	if c.BitsLeft() < sz {
		return nil, ErrNotEnoughData
	}

	res := make([]byte, (sz+7)/8)
	for i := uint(0); i < sz; i++ {
		pos := c.loadedSz + i
		bit := (c.data[pos/8] >> (7 - pos%8)) & 1
		res[i/8] |= bit << (7 - i%8)
	}
	c.loadedSz += sz

	return res, nil
}

// LoadAddr loads MsgAddressInt, addr_none is returned as nil address.
func (c *Slice) LoadAddr() (*address.Address, error) {
	typ, err := c.LoadUInt(2)
	if err != nil {
		return nil, err
	}

	switch typ {
	case 0b00:
		return nil, nil
	case 0b10:
	default:
		return nil, ErrAddressTypeNotSupported
	}

	isAnycast, err := c.LoadBoolBit()
	if err != nil {
		return nil, err
	}

	if isAnycast {
		return nil, ErrAddressTypeNotSupported
	}

	workchain, err := c.LoadInt(8)
	if err != nil {
		return nil, err
	}

	data, err := c.LoadSlice(256)
	if err != nil {
		return nil, err
	}

	return address.NewAddressFromBytes(int8(workchain), data)
}

// ToCell returns not yet loaded part as a new cell.
func (c *Slice) ToCell() (*Cell, error) {
	left := c.BitsLeft()
	data, err := c.LoadSlice(left)
	if err != nil {
		return nil, err
	}

	refs := c.refs
	c.refs = nil

	return BeginCell().MustStoreSlice(data, left).storeRefs(refs).EndCell()
}

func (b *Builder) storeRefs(refs []*Cell) *Builder {
	b.refs = append(b.refs, refs...)
	return b
}
