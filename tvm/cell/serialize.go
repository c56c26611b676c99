package cell

import (
	"encoding/binary"
	"hash/crc32"
	"math/bits"

	"github.com/tonmint/tonmint/tvm/boc"
)

var crcTable = crc32.MakeTable(crc32.Castagnoli)

// ToBOC serializes the cell with crc32c, as wallets and node software do by default.
func (c *Cell) ToBOC() []byte {
	return c.ToBOCWithFlags(true)
}

func (c *Cell) ToBOCWithFlags(withCRC bool) []byte {
	return ToBOCWithFlags([]*Cell{c}, withCRC)
}

// ToBOCWithFlags serializes multiple roots into one bag of cells,
// equal cells are stored once.
func ToBOCWithFlags(roots []*Cell, withCRC bool) []byte {
	orderCells, index := flattenIndex(roots)

	cellSizeBytes := bytesForInt(uint64(len(orderCells)))

	var payload []byte
	for _, cl := range orderCells {
		payload = append(payload, cl.serialize(index, cellSizeBytes)...)
	}

	sizeBytes := bytesForInt(uint64(len(payload)))

	flags := boc.Flags{
		HasCrc32c: withCRC,
		SizeBytes: cellSizeBytes,
	}

	data := make([]byte, 0, 6+cellSizeBytes*(3+len(roots))+sizeBytes+len(payload)+4)
	data = append(data, boc.Magic...)
	data = append(data, flags.Byte(), byte(sizeBytes))

	data = append(data, dynamicIntBytes(uint64(len(orderCells)), cellSizeBytes)...)
	data = append(data, dynamicIntBytes(uint64(len(roots)), cellSizeBytes)...)
	// absent cells, complete BOCs only
	data = append(data, dynamicIntBytes(0, cellSizeBytes)...)
	data = append(data, dynamicIntBytes(uint64(len(payload)), sizeBytes)...)

	for _, root := range roots {
		data = append(data, dynamicIntBytes(uint64(index[root.hash]), cellSizeBytes)...)
	}
	data = append(data, payload...)

	if withCRC {
		data = binary.LittleEndian.AppendUint32(data, crc32.Checksum(data, crcTable))
	}

	return data
}

// serialize returns cell in bag of cells form: descriptors, completed data, refs indexes.
func (c *Cell) serialize(index map[[32]byte]int, refSizeBytes int) []byte {
	data := append(c.descriptors(), c.paddedData()...)
	for _, ref := range c.refs {
		data = append(data, dynamicIntBytes(uint64(index[ref.hash]), refSizeBytes)...)
	}
	return data
}

func bytesForInt(v uint64) int {
	n := (bits.Len64(v) + 7) / 8
	if n == 0 {
		return 1
	}
	return n
}

func dynamicIntBytes(val uint64, sz int) []byte {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, val)

	return data[8-sz:]
}
