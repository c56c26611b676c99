package boc

import (
	"github.com/tonmint/tonmint/utils"
)

var (
	Magic = []byte{0xB5, 0xEE, 0x9C, 0x72}

	// legacy serialization modes, always with index and a single root
	MagicIndexed    = []byte{0x68, 0xFF, 0x65, 0xF3}
	MagicIndexedCRC = []byte{0xAC, 0xC3, 0xA7, 0x28}
)

// ReservedFlagsMask covers flags:2 bits of the flags byte, they must be zero.
const ReservedFlagsMask byte = 0b00011000

// Flags is the first byte after generic magic:
// has_idx:1 has_crc32c:1 has_cache_bits:1 flags:2 size:3
type Flags struct {
	HasIndex     bool
	HasCrc32c    bool
	HasCacheBits bool

	// SizeBytes is the number of bytes used for a cell index.
	SizeBytes int
}

func ParseFlags(data byte) Flags {
	return Flags{
		HasIndex:     utils.HasBit(data, 7),
		HasCrc32c:    utils.HasBit(data, 6),
		HasCacheBits: utils.HasBit(data, 5),
		SizeBytes:    int(data & 0b00000111),
	}
}

func (f Flags) Byte() byte {
	b := byte(f.SizeBytes) & 0b111
	if f.HasIndex {
		utils.SetBit(&b, 7)
	}
	if f.HasCrc32c {
		utils.SetBit(&b, 6)
	}
	if f.HasCacheBits {
		utils.SetBit(&b, 5)
	}
	return b
}
