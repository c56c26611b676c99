package cell

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Cell is an immutable node: up to 1023 bits and up to 4 references.
// Hash and depth are calculated once, when the cell is created,
// children are always complete before their parent, so cycles are impossible.
type Cell struct {
	special bool
	bitsSz  uint
	data    []byte

	refs []*Cell

	hash  [32]byte
	depth uint16
}

func newCell(special bool, bitsSz uint, data []byte, refs []*Cell) *Cell {
	c := &Cell{
		special: special,
		bitsSz:  bitsSz,
		data:    data,
		refs:    refs,
	}
	c.depth = calcDepth(refs)
	c.hash = c.calcHash()
	return c
}

func (c *Cell) BeginParse() *Slice {
	return &Slice{
		bitsSz: c.bitsSz,
		data:   c.data,
		refs:   append([]*Cell{}, c.refs...),
	}
}

// ToBuilder copies bits and refs of the cell into a new builder.
// Builder produces only ordinary cells, so for a special cell
// the result of EndCell is an ordinary one, with another hash.
func (c *Cell) ToBuilder() *Builder {
	return &Builder{
		bitsSz: c.bitsSz,
		data:   append([]byte{}, c.data...),
		refs:   append([]*Cell{}, c.refs...),
	}
}

func (c *Cell) BitsSize() uint {
	return c.bitsSz
}

func (c *Cell) RefsNum() int {
	return len(c.refs)
}

func (c *Cell) Ref(i int) (*Cell, error) {
	if i < 0 || i >= len(c.refs) {
		return nil, ErrNoMoreRefs
	}
	return c.refs[i], nil
}

func (c *Cell) IsSpecial() bool {
	return c.special
}

// Hash returns representation hash of the cell.
func (c *Cell) Hash() []byte {
	return append([]byte{}, c.hash[:]...)
}

func (c *Cell) Depth() uint16 {
	return c.depth
}

// Equals compares cells by representation hash.
func (c *Cell) Equals(other *Cell) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.hash == other.hash
}

func (c *Cell) Dump() string {
	return c.dump(0, false)
}

func (c *Cell) DumpBits() string {
	return c.dump(0, true)
}

func (c *Cell) dump(deep int, bin bool) string {
	var val string
	if bin {
		var sb strings.Builder
		for i := uint(0); i < c.bitsSz; i++ {
			sb.WriteByte('0' + (c.data[i/8]>>(7-i%8))&1)
		}
		val = sb.String()
	} else {
		val = hex.EncodeToString(c.data)
	}

	str := strings.Repeat("  ", deep) + fmt.Sprint(c.bitsSz) + "[" + val + "]"
	if c.special {
		str += "*"
	}

	if len(c.refs) > 0 {
		str += " -> {"
		for i, ref := range c.refs {
			str += "\n" + ref.dump(deep+1, bin)
			if i == len(c.refs)-1 {
				str += "\n"
			} else {
				str += ","
			}
		}
		str += strings.Repeat("  ", deep)
		return str + "}"
	}
	return str
}
