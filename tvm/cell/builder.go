package cell

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/tonmint/tonmint/address"
)

const (
	MaxBits = 1023
	MaxRefs = 4
)

// ErrRange is the kind of every error caused by a value or a layout
// that does not fit the requested width or the cell limits.
var ErrRange = errors.New("out of range")

var (
	ErrTooBigValue    = fmt.Errorf("%w: too big value", ErrRange)
	ErrNegative       = fmt.Errorf("%w: value should be non negative", ErrRange)
	ErrTooBigSize     = fmt.Errorf("%w: too big size", ErrRange)
	ErrNotFit1023     = fmt.Errorf("%w: cell data size should fit into 1023 bits", ErrRange)
	ErrTooMuchRefs    = fmt.Errorf("%w: too much refs", ErrRange)
	ErrSmallSlice     = errors.New("too small slice for this size")
	ErrRefCannotBeNil = errors.New("ref cannot be nil")
)

// Builder accumulates bits and references of a future cell.
// Limits are checked by EndCell, store methods only check the value itself.
// Builder is not safe for concurrent use.
type Builder struct {
	bitsSz uint
	data   []byte

	refs []*Cell
}

func BeginCell() *Builder {
	return &Builder{}
}

func (b *Builder) MustStoreUInt(value uint64, sz uint) *Builder {
	err := b.StoreUInt(value, sz)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) StoreUInt(value uint64, sz uint) error {
	if sz > 64 {
		return b.StoreBigUInt(new(big.Int).SetUint64(value), sz)
	}

	if sz < 64 && value>>sz != 0 {
		return ErrTooBigValue
	}

	if sz == 0 {
		return nil
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, value<<(64-sz))

	return b.StoreSlice(buf, sz)
}

func (b *Builder) MustStoreInt(value int64, sz uint) *Builder {
	err := b.StoreInt(value, sz)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) StoreInt(value int64, sz uint) error {
	return b.StoreBigInt(big.NewInt(value), sz)
}

func (b *Builder) MustStoreBoolBit(value bool) *Builder {
	err := b.StoreBoolBit(value)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) StoreBoolBit(value bool) error {
	var i uint64
	if value {
		i = 1
	}
	return b.StoreUInt(i, 1)
}

func (b *Builder) MustStoreBigUInt(value *big.Int, sz uint) *Builder {
	err := b.StoreBigUInt(value, sz)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) StoreBigUInt(value *big.Int, sz uint) error {
	if value == nil {
		return fmt.Errorf("%w: nil value", ErrRange)
	}

	if value.Sign() == -1 {
		return ErrNegative
	}

	if sz > 256 {
		return ErrTooBigSize
	}

	if uint(value.BitLen()) > sz {
		return ErrTooBigValue
	}

	return b.storeBig(value, sz)
}

func (b *Builder) MustStoreBigInt(value *big.Int, sz uint) *Builder {
	err := b.StoreBigInt(value, sz)
	if err != nil {
		panic(err)
	}
	return b
}

// StoreBigInt stores two's complement signed value.
func (b *Builder) StoreBigInt(value *big.Int, sz uint) error {
	if value == nil {
		return fmt.Errorf("%w: nil value", ErrRange)
	}

	if sz > 257 {
		return ErrTooBigSize
	}

	if sz == 0 {
		if value.Sign() != 0 {
			return ErrTooBigValue
		}
		return nil
	}

	limit := new(big.Int).Lsh(big.NewInt(1), sz-1)
	if value.Cmp(limit) >= 0 || value.Cmp(new(big.Int).Neg(limit)) < 0 {
		return ErrTooBigValue
	}

	if value.Sign() == -1 {
		// 2^sz + value
		value = new(big.Int).Add(new(big.Int).Lsh(limit, 1), value)
	}

	return b.storeBig(value, sz)
}

// storeBig writes non negative value which is known to fit into sz bits.
func (b *Builder) storeBig(value *big.Int, sz uint) error {
	if sz == 0 {
		return nil
	}

	ln := (sz + 7) / 8
	// move value to the left side of the bytes
	shifted := new(big.Int).Lsh(value, ln*8-sz)

	return b.StoreSlice(shifted.FillBytes(make([]byte, ln)), sz)
}

func (b *Builder) MustStoreCoins(value uint64) *Builder {
	err := b.StoreCoins(value)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) StoreCoins(value uint64) error {
	return b.StoreBigCoins(new(big.Int).SetUint64(value))
}

func (b *Builder) MustStoreBigCoins(value *big.Int) *Builder {
	err := b.StoreBigCoins(value)
	if err != nil {
		panic(err)
	}
	return b
}

// StoreBigCoins stores VarUInteger 16.
func (b *Builder) StoreBigCoins(value *big.Int) error {
	if value == nil {
		return fmt.Errorf("%w: nil value", ErrRange)
	}

	if value.Sign() == -1 {
		return ErrNegative
	}

	ln := uint((value.BitLen() + 7) >> 3)
	if ln >= 16 {
		return ErrTooBigValue
	}

	if err := b.StoreUInt(uint64(ln), 4); err != nil {
		return err
	}
	return b.storeBig(value, ln*8)
}

func (b *Builder) MustStoreAddr(addr *address.Address) *Builder {
	err := b.StoreAddr(addr)
	if err != nil {
		panic(err)
	}
	return b
}

// StoreAddr stores MsgAddressInt. Nil address is stored as addr_none$00.
func (b *Builder) StoreAddr(addr *address.Address) error {
	if addr == nil {
		return b.StoreUInt(0, 2)
	}

	// addr_std$10, no anycast
	if err := b.StoreUInt(0b100, 3); err != nil {
		return err
	}

	if err := b.StoreInt(int64(addr.Workchain()), 8); err != nil {
		return err
	}

	return b.StoreSlice(addr.Data(), 256)
}

func (b *Builder) MustStoreMaybeRef(ref *Cell) *Builder {
	err := b.StoreMaybeRef(ref)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) StoreMaybeRef(ref *Cell) error {
	if ref == nil {
		return b.StoreUInt(0, 1)
	}

	if err := b.StoreUInt(1, 1); err != nil {
		return err
	}
	return b.StoreRef(ref)
}

func (b *Builder) MustStoreRef(ref *Cell) *Builder {
	err := b.StoreRef(ref)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) StoreRef(ref *Cell) error {
	if ref == nil {
		return ErrRefCannotBeNil
	}

	b.refs = append(b.refs, ref)
	return nil
}

func (b *Builder) MustStoreSlice(bytes []byte, sz uint) *Builder {
	err := b.StoreSlice(bytes, sz)
	if err != nil {
		panic(err)
	}
	return b
}

// StoreSlice appends first sz bits of bytes.
func (b *Builder) StoreSlice(bytes []byte, sz uint) error {
	if sz == 0 {
		return nil
	}

	if uint(len(bytes))*8 < sz {
		return ErrSmallSlice
	}

	shift := b.bitsSz % 8
	for i := uint(0); i*8 < sz; i++ {
		bits := sz - i*8
		if bits > 8 {
			bits = 8
		}

		// clear unused part of byte
		v := bytes[i] & (0xFF << (8 - bits))

		if shift == 0 {
			b.data = append(b.data, v)
			continue
		}

		// previous byte is not filled, move bits to fill it
		b.data[len(b.data)-1] |= v >> shift
		if bits > 8-shift {
			b.data = append(b.data, v<<(8-shift))
		}
	}

	b.bitsSz += sz
	return nil
}

func (b *Builder) MustStoreBuilder(builder *Builder) *Builder {
	err := b.StoreBuilder(builder)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) StoreBuilder(builder *Builder) error {
	if err := b.StoreSlice(builder.data, builder.bitsSz); err != nil {
		return err
	}
	b.refs = append(b.refs, builder.refs...)
	return nil
}

func (b *Builder) RefsUsed() int {
	return len(b.refs)
}

func (b *Builder) BitsUsed() uint {
	return b.bitsSz
}

func (b *Builder) BitsLeft() uint {
	if b.bitsSz > MaxBits {
		return 0
	}
	return MaxBits - b.bitsSz
}

func (b *Builder) RefsLeft() uint {
	if len(b.refs) > MaxRefs {
		return 0
	}
	return MaxRefs - uint(len(b.refs))
}

func (b *Builder) Copy() *Builder {
	return &Builder{
		bitsSz: b.bitsSz,
		data:   append([]byte{}, b.data...),
		refs:   append([]*Cell{}, b.refs...),
	}
}

func (b *Builder) MustEndCell() *Cell {
	c, err := b.EndCell()
	if err != nil {
		panic(err)
	}
	return c
}

// EndCell finalizes builder into immutable cell, builder stays usable.
func (b *Builder) EndCell() (*Cell, error) {
	if b.bitsSz > MaxBits {
		return nil, ErrNotFit1023
	}

	if len(b.refs) > MaxRefs {
		return nil, ErrTooMuchRefs
	}

	return newCell(false, b.bitsSz, append([]byte{}, b.data...), append([]*Cell{}, b.refs...)), nil
}
