package cell

import (
	"encoding/binary"
	"fmt"
)

type cellBytesReader struct {
	data []byte
}

func newReader(data []byte) *cellBytesReader {
	return &cellBytesReader{
		data: data,
	}
}

func (r *cellBytesReader) ReadBytes(num int) ([]byte, error) {
	if num < 0 || len(r.data) < num {
		return nil, fmt.Errorf("not enough data in reader, need %d, has %d", num, len(r.data))
	}

	ret := r.data[:num]
	r.data = r.data[num:]
	return ret, nil
}

func (r *cellBytesReader) ReadByte() (byte, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt reads big endian unsigned integer of sz bytes, sz should be in 1..8.
func (r *cellBytesReader) ReadInt(sz int) (uint64, error) {
	b, err := r.ReadBytes(sz)
	if err != nil {
		return 0, err
	}

	tmp := make([]byte, 8)
	copy(tmp[8-sz:], b)
	return binary.BigEndian.Uint64(tmp), nil
}

func (r *cellBytesReader) LeftLen() int {
	return len(r.data)
}
