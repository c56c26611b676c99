package cell

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"testing"
)

func twoCells() *Cell {
	child := BeginCell().MustStoreUInt(0b0001, 4).MustEndCell()
	return BeginCell().MustStoreUInt(0x23, 32).MustStoreRef(child).MustEndCell()
}

func TestToBOC_Golden(t *testing.T) {
	tests := []struct {
		name    string
		cell    *Cell
		withCRC bool
		want    string
	}{
		{"empty crc", BeginCell().MustEndCell(), true, "te6cckEBAQEAAgAAAEysuc0="},
		{"empty", BeginCell().MustEndCell(), false, "te6ccgEBAQEAAgAAAA=="},
		{"two cells crc", twoCells(), true, "te6cckEBAgEACgABCAAAACMBAAEYVDzfFg=="},
		{"two cells", twoCells(), false, base64.StdEncoding.EncodeToString(
			mustHex("b5ee9c7201010201000a0001080000002301000118"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base64.StdEncoding.EncodeToString(tt.cell.ToBOCWithFlags(tt.withCRC))
			if got != tt.want {
				t.Fatalf("ToBOCWithFlags() = %s, want %s", got, tt.want)
			}
		})
	}

	if !bytes.Equal(twoCells().ToBOC(), twoCells().ToBOCWithFlags(true)) {
		t.Fatal("ToBOC should include crc")
	}
}

func TestToBOC_Deterministic(t *testing.T) {
	a := twoCells().ToBOC()
	b := twoCells().ToBOC()
	if !bytes.Equal(a, b) {
		t.Fatal("equal trees should give equal bytes")
	}
}

func TestToBOCWithFlags_MultiRootShared(t *testing.T) {
	shared := BeginCell().MustStoreUInt(0xDEAD, 16).MustEndCell()
	r1 := BeginCell().MustStoreUInt(1, 8).MustStoreRef(shared).MustEndCell()
	r2 := BeginCell().MustStoreUInt(2, 8).MustStoreRef(shared).MustStoreRef(shared).MustEndCell()
	// equal to shared by hash, but another instance
	r3 := BeginCell().MustStoreUInt(0xDEAD, 16).MustEndCell()

	data := ToBOCWithFlags([]*Cell{r1, r2, r3}, true)

	// 3 unique cells, 3 roots
	if data[6] != 3 || data[7] != 3 {
		t.Fatalf("unexpected header counts, cells %d roots %d", data[6], data[7])
	}

	roots, err := FromBOCMultiRoot(data, WithStrict())
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 3 {
		t.Fatal("roots num mismatch", len(roots))
	}

	for i, want := range []*Cell{r1, r2, r3} {
		if !roots[i].Equals(want) {
			t.Fatalf("root %d mismatch:\n%s\n%s", i, roots[i].Dump(), want.Dump())
		}
	}

	if !roots[2].Equals(shared) {
		t.Fatal("deduplicated root should be the shared cell")
	}
}

func TestToBOC_RoundTripDeep(t *testing.T) {
	leaf := BeginCell().MustStoreUInt(0x7F, 7).MustEndCell()

	c := leaf
	for i := 0; i < 300; i++ {
		c = BeginCell().MustStoreUInt(uint64(i), 16).MustStoreRef(c).MustStoreRef(leaf).MustEndCell()
	}

	for _, withCRC := range []bool{true, false} {
		parsed, err := FromBOC(c.ToBOCWithFlags(withCRC), WithStrict())
		if err != nil {
			t.Fatal(err)
		}

		if !parsed.Equals(c) {
			t.Fatal("hash mismatch after round trip")
		}

		if parsed.Depth() != 300 {
			t.Fatal("depth mismatch", parsed.Depth())
		}
	}
}

func TestToBOC_RoundTripValues(t *testing.T) {
	full := BeginCell()
	for i := 0; i < 31; i++ {
		full.MustStoreUInt(0x1ABCDEF01, 33)
	}

	tests := []*Cell{
		BeginCell().MustEndCell(),
		BeginCell().MustStoreBoolBit(true).MustEndCell(),
		BeginCell().MustStoreUInt(0xFF, 8).MustEndCell(),
		BeginCell().MustStoreInt(-5, 13).MustStoreCoins(1500000).MustEndCell(),
		full.MustEndCell(),
	}

	for i, c := range tests {
		parsed, err := FromBOC(c.ToBOC())
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}

		if parsed.BitsSize() != c.BitsSize() || !parsed.Equals(c) {
			t.Fatalf("case %d: mismatch\n%s\n%s", i, parsed.DumpBits(), c.DumpBits())
		}
	}
}

func TestToBOC_BigIndexes(t *testing.T) {
	// more than 255 unique cells to get 2 bytes cell index
	cells := make([]*Cell, 0, 300)
	for i := 0; i < 300; i++ {
		cells = append(cells, BeginCell().MustStoreUInt(uint64(i), 16).MustEndCell())
	}

	data := ToBOCWithFlags(cells, true)
	if data[4]&0b111 != 2 {
		t.Fatal("cell index size should be 2, flags", data[4])
	}

	roots, err := FromBOCMultiRoot(data, WithStrict())
	if err != nil {
		t.Fatal(err)
	}

	for i := range cells {
		if !roots[i].Equals(cells[i]) {
			t.Fatal("root mismatch", i)
		}
	}
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
