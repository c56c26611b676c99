package cell

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math/bits"

	"github.com/tonmint/tonmint/tvm/boc"
)

// ErrMalformedBOC is the kind of every bag of cells decoding failure.
var ErrMalformedBOC = errors.New("malformed bag of cells")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedBOC, fmt.Sprintf(format, args...))
}

const libraryCellType = 2

type decodeConfig struct {
	strict bool
}

type DecodeOption func(*decodeConfig)

// WithStrict makes decoding fail when bytes remain after the bag of cells.
func WithStrict() DecodeOption {
	return func(c *decodeConfig) {
		c.strict = true
	}
}

type bocHeader struct {
	hasIndex      bool
	hasCRC        bool
	cellSizeBytes int
	offsetBytes   int
	cellsNum      int
	totalSize     int
	rootsIndex    []int
}

type rawCell struct {
	special    bool
	bitsSz     uint
	data       []byte
	refs       []int
	storedHash []byte

	storedDepth uint16
}

// FromBOC returns the first root of the bag of cells.
func FromBOC(data []byte, opts ...DecodeOption) (*Cell, error) {
	cells, err := FromBOCMultiRoot(data, opts...)
	if err != nil {
		return nil, err
	}

	if len(cells) == 0 {
		return nil, malformed("no root cells")
	}
	return cells[0], nil
}

func FromBOCMultiRoot(data []byte, opts ...DecodeOption) ([]*Cell, error) {
	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r := newReader(data)

	h, err := parseHeader(r, len(data))
	if err != nil {
		return nil, err
	}

	if h.hasIndex {
		if _, err = r.ReadBytes(h.cellsNum * h.offsetBytes); err != nil {
			return nil, malformed("cells index is truncated: %v", err)
		}
	}

	payload, err := r.ReadBytes(h.totalSize)
	if err != nil {
		return nil, malformed("cells payload is truncated: %v", err)
	}

	if h.hasCRC {
		consumed := len(data) - r.LeftLen()

		checksum, err := r.ReadBytes(4)
		if err != nil {
			return nil, malformed("checksum is missing")
		}

		if binary.LittleEndian.Uint32(checksum) != crc32.Checksum(data[:consumed], crcTable) {
			return nil, malformed("checksum not matches")
		}
	}

	if cfg.strict && r.LeftLen() > 0 {
		return nil, malformed("%d trailing bytes after bag of cells", r.LeftLen())
	}

	cells, err := parseCells(h.cellsNum, h.cellSizeBytes, payload)
	if err != nil {
		return nil, err
	}

	roots := make([]*Cell, len(h.rootsIndex))
	for i, id := range h.rootsIndex {
		roots[i] = cells[id]
	}
	return roots, nil
}

func parseHeader(r *cellBytesReader, total int) (*bocHeader, error) {
	magic, err := r.ReadBytes(4)
	if err != nil {
		return nil, malformed("too short data")
	}

	h := &bocHeader{}
	legacy := false

	switch {
	case bytes.Equal(magic, boc.Magic):
		fb, err := r.ReadByte()
		if err != nil {
			return nil, malformed("flags are missing")
		}

		if fb&boc.ReservedFlagsMask != 0 {
			return nil, malformed("reserved flags are set: %08b", fb)
		}

		flags := boc.ParseFlags(fb)
		if flags.HasCacheBits && !flags.HasIndex {
			return nil, malformed("cache bits are set without index")
		}

		h.hasIndex = flags.HasIndex
		h.hasCRC = flags.HasCrc32c
		h.cellSizeBytes = flags.SizeBytes
	case bytes.Equal(magic, boc.MagicIndexed), bytes.Equal(magic, boc.MagicIndexedCRC):
		sz, err := r.ReadByte()
		if err != nil {
			return nil, malformed("size is missing")
		}

		legacy = true
		h.hasIndex = true
		h.hasCRC = bytes.Equal(magic, boc.MagicIndexedCRC)
		h.cellSizeBytes = int(sz)
	default:
		return nil, malformed("invalid boc magic header %x", magic)
	}

	if h.cellSizeBytes < 1 || h.cellSizeBytes > 4 {
		return nil, malformed("invalid cell index size %d", h.cellSizeBytes)
	}

	off, err := r.ReadByte()
	if err != nil {
		return nil, malformed("offset size is missing")
	}

	h.offsetBytes = int(off)
	if h.offsetBytes < 1 || h.offsetBytes > 8 {
		return nil, malformed("invalid offset size %d", h.offsetBytes)
	}

	var counts [3]uint64
	for i := range counts {
		if counts[i], err = r.ReadInt(h.cellSizeBytes); err != nil {
			return nil, malformed("header is truncated")
		}
	}
	cellsNum, rootsNum, absentNum := counts[0], counts[1], counts[2]

	totalSize, err := r.ReadInt(h.offsetBytes)
	if err != nil {
		return nil, malformed("header is truncated")
	}

	if absentNum != 0 {
		return nil, malformed("absent cells are not supported, got %d", absentNum)
	}

	if rootsNum > cellsNum {
		return nil, malformed("roots num %d is bigger than cells num %d", rootsNum, cellsNum)
	}

	// every cell takes at least 2 descriptor bytes
	if totalSize < cellsNum*2 {
		return nil, malformed("cells payload size %d is too small for %d cells", totalSize, cellsNum)
	}

	if totalSize > uint64(total) {
		return nil, malformed("cells payload size %d is bigger than data", totalSize)
	}

	h.cellsNum = int(cellsNum)
	h.totalSize = int(totalSize)
	h.rootsIndex = make([]int, rootsNum)

	for i := range h.rootsIndex {
		if legacy {
			h.rootsIndex[i] = i
			continue
		}

		id, err := r.ReadInt(h.cellSizeBytes)
		if err != nil {
			return nil, malformed("roots list is truncated")
		}

		if id >= cellsNum {
			return nil, malformed("root %d points to non existing cell %d", i, id)
		}
		h.rootsIndex[i] = int(id)
	}

	return h, nil
}

func parseCells(cellsNum, refSizeBytes int, payload []byte) ([]*Cell, error) {
	r := newReader(payload)

	raws := make([]rawCell, cellsNum)
	for i := 0; i < cellsNum; i++ {
		raw, err := parseRawCell(r, i, cellsNum, refSizeBytes)
		if err != nil {
			return nil, err
		}
		raws[i] = *raw
	}

	if r.LeftLen() != 0 {
		return nil, malformed("%d bytes left in payload after all cells", r.LeftLen())
	}

	// refs always point forward, so building from the end
	// guarantees that every ref is already constructed
	cells := make([]*Cell, cellsNum)
	for i := cellsNum - 1; i >= 0; i-- {
		raw := raws[i]

		refs := make([]*Cell, len(raw.refs))
		for y, id := range raw.refs {
			refs[y] = cells[id]
		}

		c := newCell(raw.special, raw.bitsSz, raw.data, refs)
		if raw.storedHash != nil && !bytes.Equal(raw.storedHash, c.hash[:]) {
			return nil, malformed("cell %d: stored hash not matches calculated", i)
		}
		if raw.storedHash != nil && raw.storedDepth != c.depth {
			return nil, malformed("cell %d: stored depth %d not matches calculated %d", i, raw.storedDepth, c.depth)
		}
		cells[i] = c
	}

	return cells, nil
}

func parseRawCell(r *cellBytesReader, i, cellsNum, refSizeBytes int) (*rawCell, error) {
	d1, err := r.ReadByte()
	if err != nil {
		return nil, malformed("cell %d: descriptor is truncated", i)
	}

	d2, err := r.ReadByte()
	if err != nil {
		return nil, malformed("cell %d: descriptor is truncated", i)
	}

	// d1 = refs + special*8 + with_hashes*16 + level*32
	refsNum := int(d1 & 0b111)
	if refsNum > MaxRefs {
		return nil, malformed("cell %d: too many refs %d", i, refsNum)
	}

	if level := d1 >> 5; level != 0 {
		return nil, malformed("cell %d: cells of level %d are not supported", i, level)
	}

	raw := &rawCell{
		special: d1&8 != 0,
	}

	if d1&16 != 0 {
		// hash and depth of level 0
		stored, err := r.ReadBytes(32 + 2)
		if err != nil {
			return nil, malformed("cell %d: stored hash is truncated", i)
		}
		raw.storedHash = stored[:32]
		raw.storedDepth = binary.BigEndian.Uint16(stored[32:])
	}

	data, err := r.ReadBytes((int(d2) + 1) / 2)
	if err != nil {
		return nil, malformed("cell %d: data is truncated", i)
	}
	raw.data = append([]byte{}, data...)
	raw.bitsSz = uint(d2/2) * 8

	if d2%2 == 1 {
		last := raw.data[len(raw.data)-1]
		if last == 0 {
			return nil, malformed("cell %d: completion tag is missing", i)
		}

		// odd d2 means the last byte has at least one data bit before the tag
		if last&0x7f == 0 {
			return nil, malformed("cell %d: last data byte holds only completion tag", i)
		}

		tag := bits.TrailingZeros8(last)
		raw.bitsSz += uint(7 - tag)
		raw.data[len(raw.data)-1] = last &^ (1 << tag)
	}

	raw.refs = make([]int, refsNum)
	for y := range raw.refs {
		id, err := r.ReadInt(refSizeBytes)
		if err != nil {
			return nil, malformed("cell %d: refs are truncated", i)
		}

		if id <= uint64(i) || id >= uint64(cellsNum) {
			return nil, malformed("cell %d: ref %d points to invalid cell %d", i, y, id)
		}
		raw.refs[y] = int(id)
	}

	if raw.special {
		if raw.bitsSz < 8 {
			return nil, malformed("cell %d: special cell without type", i)
		}

		if raw.data[0] != libraryCellType {
			return nil, malformed("cell %d: special cell type %d is not supported", i, raw.data[0])
		}

		if raw.bitsSz != 8+256 || refsNum != 0 {
			return nil, malformed("cell %d: library cell should have 264 bits and no refs", i)
		}
	}

	return raw, nil
}
