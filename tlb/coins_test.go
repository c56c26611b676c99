package tlb

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"
)

func TestCoins_FromTON(t *testing.T) {
	tests := []struct {
		val  string
		want uint64
	}{
		{"0", 0},
		{"0.0000", 0},
		{"7", 7000000000},
		{"7.518", 7518000000},
		{"17.98765432111", 17987654321},
		{"0.000000001", 1},
		{"0.090000001", 90000001},
		{"0.0015", 1500000},
		{"5.", 5000000000},
	}

	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			g, err := FromTON(tt.val)
			if err != nil {
				t.Fatal(err)
			}
			if g.Nano().Uint64() != tt.want {
				t.Fatalf("%s wrong: %d", tt.val, g.Nano().Uint64())
			}
		})
	}

	for _, bad := range []string{"17.987654.32111", ".17", "0..17", "", "-1", "1.-5", "abc", "1.2a"} {
		if _, err := FromTON(bad); !errors.Is(err, ErrInvalidCoins) {
			t.Fatalf("%q should be error, got %v", bad, err)
		}
	}
}

func TestCoins_String(t *testing.T) {
	tests := []struct {
		val  string
		want string
	}{
		{"0.090000001", "0.090000001"},
		{"0.19", "0.19"},
		{"7123.190000", "7123.19"},
		{"5", "5"},
		{"0", "0"},
		{"0.2", "0.2"},
		{"300", "300"},
		{"350", "350"},
	}

	for _, tt := range tests {
		if got := MustFromTON(tt.val).String(); got != tt.want {
			t.Fatalf("%s wrong: %s", tt.val, got)
		}
	}

	if ZeroCoins.String() != "0" || !ZeroCoins.IsZero() {
		t.Fatal("zero coins mismatch")
	}

	if (Coins{}).String() != "0" {
		t.Fatal("empty coins should be 0")
	}
}

func TestCoins_Decimals(t *testing.T) {
	for i := 0; i < 19; i++ {
		i := i
		t.Run("decimals "+fmt.Sprint(i), func(t *testing.T) {
			for x := 0; x < 2000; x++ {
				rnd := make([]byte, 64)
				_, _ = rand.Read(rnd)

				lo := new(big.Int).Mod(new(big.Int).SetBytes(rnd), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(i)), nil))
				if i > 0 && strings.HasSuffix(lo.String(), "0") {
					lo = lo.Add(lo, big.NewInt(1))
				}

				buf := make([]byte, 8)
				_, _ = rand.Read(buf)
				hi := new(big.Int).SetBytes(buf)

				amt := new(big.Int).Mul(hi, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(i)), nil))
				amt = amt.Add(amt, lo)

				var str string
				if i > 0 {
					loStr := lo.String()
					str = fmt.Sprintf("%d.%s", hi, strings.Repeat("0", i-len(loStr))+loStr)
				} else {
					str = fmt.Sprint(hi)
				}

				g, err := FromDecimal(str, i)
				if err != nil {
					t.Fatalf("%d %s err: %s", i, str, err.Error())
				}

				if g.String() != str {
					t.Fatalf("%d %s wrong: %s", i, str, g.String())
				}

				if g.Nano().String() != amt.String() {
					t.Fatalf("%d %s nano wrong: %s", i, amt.String(), g.Nano().String())
				}
			}
		})
	}
}

func TestCoins_ParseNano(t *testing.T) {
	g, err := ParseNano("1500000", TONDecimals)
	if err != nil {
		t.Fatal(err)
	}
	if g.String() != "0.0015" || g.Nano().Uint64() != 1500000 {
		t.Fatal("wrong value", g.String())
	}

	for _, bad := range []string{"", "1.5", "-10", "0x10"} {
		if _, err = ParseNano(bad, TONDecimals); !errors.Is(err, ErrInvalidCoins) {
			t.Fatalf("%q should be error, got %v", bad, err)
		}
	}
}

func TestCoins_Decode(t *testing.T) {
	var g Coins
	if err := g.Decode("1000000000"); err != nil {
		t.Fatal(err)
	}
	if g.String() != "1" {
		t.Fatal("wrong value", g.String())
	}

	if err := g.Decode("1 TON"); err == nil {
		t.Fatal("should be error")
	}
}

func TestCoins_NanoIsCopy(t *testing.T) {
	g := FromNanoTONU(10)
	g.Nano().SetInt64(20)

	if g.Nano().Int64() != 10 {
		t.Fatal("internal value should not change")
	}
}

func TestCoins_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		coins Coins
		want  string
	}{
		{"0.123456789 TON", FromNanoTONU(123_456_789), "\"123456789\""},
		{"1 TON", MustFromTON("1"), "\"1000000000\""},
		{"empty", Coins{}, "\"0\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.coins.MarshalJSON()
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalJSON() got = %s, want %s", got, tt.want)
			}
		})
	}
}
