package cell

import (
	"crypto/sha256"
	"encoding/binary"
)

// descriptors returns d1 (refs count and special flag, level is always 0)
// and d2 (floor(bits/8) + ceil(bits/8)).
func (c *Cell) descriptors() []byte {
	specBit := byte(0)
	if c.special {
		specBit = 8
	}

	ln := c.bitsSz/8 + (c.bitsSz+7)/8
	return []byte{byte(len(c.refs)) + specBit, byte(ln)}
}

// paddedData returns cell bits completed to the whole byte:
// a single 1 bit after the data and zeros after it.
func (c *Cell) paddedData() []byte {
	payload := append([]byte{}, c.data...)
	if rest := c.bitsSz % 8; rest != 0 {
		payload[len(payload)-1] |= 1 << (7 - rest)
	}
	return payload
}

func calcDepth(refs []*Cell) uint16 {
	var d uint16
	for _, ref := range refs {
		if ref.depth+1 > d {
			d = ref.depth + 1
		}
	}
	return d
}

// calcHash computes representation hash:
// sha256(d1 d2 data depth(ref_0)...depth(ref_n) hash(ref_0)...hash(ref_n)).
// References are already hashed, because they are finalized before the parent.
func (c *Cell) calcHash() [32]byte {
	h := sha256.New()
	h.Write(c.descriptors())
	h.Write(c.paddedData())

	depth := make([]byte, 2)
	for _, ref := range c.refs {
		binary.BigEndian.PutUint16(depth, ref.depth)
		h.Write(depth)
	}
	for _, ref := range c.refs {
		h.Write(ref.hash[:])
	}

	var res [32]byte
	copy(res[:], h.Sum(nil))
	return res
}
