package jetton

import (
	"encoding/base64"
	"errors"
	"math/big"
	"testing"

	"github.com/tonmint/tonmint/address"
	"github.com/tonmint/tonmint/tvm/cell"
)

func TestMintPayloadBOC(t *testing.T) {
	data, err := MintPayloadBOC(big.NewInt(1000), testOwner)
	if err != nil {
		t.Fatal(err)
	}

	want := "te6cckEBAQEAOAAAawAAACMAAAAAAAAAAAAAAAAAAAPogBdFK8Z2eJk2pMtUnVoizVJSY501fUJBUYvSIIlCSv8TkKyhd3s="
	if got := base64.StdEncoding.EncodeToString(data); got != want {
		t.Fatalf("MintPayloadBOC() = %s, want %s", got, want)
	}
}

func TestBuildMintPayload_Layout(t *testing.T) {
	amount, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	c, err := BuildMintPayload(amount, testOwner)
	if err != nil {
		t.Fatal(err)
	}

	if c.BitsSize() != 32+128+267 || c.RefsNum() != 0 {
		t.Fatal("unexpected layout", c.Dump())
	}

	s := c.BeginParse()
	if s.MustLoadUInt(32) != 0x23 {
		t.Fatal("op mismatch")
	}
	if s.MustLoadBigUInt(128).Cmp(amount) != 0 {
		t.Fatal("amount mismatch")
	}
	addr, err := s.LoadAddr()
	if err != nil {
		t.Fatal(err)
	}
	if !addr.Equals(testOwner) {
		t.Fatal("address mismatch")
	}
}

func TestBuildMintPayload_Amounts(t *testing.T) {
	one := big.NewInt(1)
	limit := new(big.Int).Lsh(one, 128)

	tests := []struct {
		name    string
		amount  *big.Int
		wantErr error
	}{
		{"zero", big.NewInt(0), nil},
		{"one", one, nil},
		{"max", new(big.Int).Sub(limit, one), nil},
		{"overflow", limit, cell.ErrRange},
		{"negative", big.NewInt(-1), cell.ErrRange},
		{"nil", nil, cell.ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := BuildMintPayload(tt.amount, testOwner)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			p, err := ParseMintPayload(c)
			if err != nil {
				t.Fatal(err)
			}
			if p.Amount.Cmp(tt.amount) != 0 || !p.RecipientWallet.Equals(testOwner) {
				t.Fatal("parsed payload mismatch")
			}
		})
	}

	if _, err := BuildMintPayload(one, nil); !errors.Is(err, address.ErrInvalidAddress) {
		t.Fatal("expected ErrInvalidAddress, got", err)
	}
}

func TestMintPayload_RoundTripBOC(t *testing.T) {
	wallet, err := CalcWalletAddress(testMaster, testOwner, testCode)
	if err != nil {
		t.Fatal(err)
	}

	data, err := MintPayloadBOC(big.NewInt(1_000_000_000), wallet)
	if err != nil {
		t.Fatal(err)
	}

	c, err := cell.FromBOC(data, cell.WithStrict())
	if err != nil {
		t.Fatal(err)
	}

	p, err := ParseMintPayload(c)
	if err != nil {
		t.Fatal(err)
	}

	if p.Amount.Int64() != 1_000_000_000 || !p.RecipientWallet.Equals(wallet) {
		t.Fatal("payload mismatch")
	}

	c2, err := p.ToCell()
	if err != nil {
		t.Fatal(err)
	}
	if !c2.Equals(c) {
		t.Fatal("rebuilt payload should be equal")
	}
}

func TestParseMintPayload_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cell    *cell.Cell
		wantErr error
	}{
		{"nil", nil, cell.ErrMalformedBOC},
		{"wrong op", cell.BeginCell().MustStoreUInt(0x24, 32).MustStoreUInt(1, 128).MustStoreAddr(testOwner).MustEndCell(), ErrUnexpectedOp},
		{"short", cell.BeginCell().MustStoreUInt(uint64(OpMint), 32).MustStoreUInt(1, 64).MustEndCell(), cell.ErrNotEnoughData},
		{"empty address", cell.BeginCell().MustStoreUInt(uint64(OpMint), 32).MustStoreUInt(1, 128).MustStoreAddr(nil).MustEndCell(), address.ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMintPayload(tt.cell); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	extra := cell.BeginCell().MustStoreUInt(uint64(OpMint), 32).MustStoreUInt(1, 128).
		MustStoreAddr(testOwner).MustStoreBoolBit(true).MustEndCell()
	if _, err := ParseMintPayload(extra); err == nil {
		t.Fatal("trailing bits should fail")
	}
}
