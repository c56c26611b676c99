package tlb

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const TONDecimals = 9

var ErrInvalidCoins = errors.New("invalid coins amount")

// Coins is a non negative amount kept in indivisible units,
// decimals are used only for the text form.
type Coins struct {
	decimals int
	val      *big.Int
}

var ZeroCoins = FromNanoTONU(0)

func (g Coins) String() string {
	if g.val == nil {
		return "0"
	}

	a := g.val.String()
	if a == "0" || g.decimals == 0 {
		return a
	}

	splitter := len(a) - g.decimals
	if splitter <= 0 {
		a = "0." + strings.Repeat("0", g.decimals-len(a)) + a
	} else {
		a = a[:splitter] + "." + a[splitter:]
	}

	// cut trailing zeroes of the fraction
	a = strings.TrimRight(a, "0")
	return strings.TrimSuffix(a, ".")
}

// Nano returns amount in indivisible units.
func (g Coins) Nano() *big.Int {
	if g.val == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(g.val)
}

func (g Coins) Decimals() int {
	return g.decimals
}

func (g Coins) IsZero() bool {
	return g.val == nil || g.val.Sign() == 0
}

func MustFromTON(val string) Coins {
	v, err := FromTON(val)
	if err != nil {
		panic(err)
	}
	return v
}

func FromNano(val *big.Int, decimals int) (Coins, error) {
	if val == nil || val.Sign() < 0 {
		return Coins{}, fmt.Errorf("%w: should be non negative", ErrInvalidCoins)
	}

	return Coins{
		decimals: decimals,
		val:      new(big.Int).Set(val),
	}, nil
}

func FromNanoTONU(val uint64) Coins {
	return Coins{
		decimals: TONDecimals,
		val:      new(big.Int).SetUint64(val),
	}
}

// ParseNano parses integer amount of indivisible units, like "1500000".
func ParseNano(val string, decimals int) (Coins, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(val), 10)
	if !ok {
		return Coins{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidCoins, val)
	}
	return FromNano(v, decimals)
}

func FromTON(val string) (Coins, error) {
	return FromDecimal(val, TONDecimals)
}

// FromDecimal parses human readable amount, like "7.518".
// Digits after the supported precision are dropped.
func FromDecimal(val string, decimals int) (Coins, error) {
	if decimals < 0 || decimals >= 128 {
		return Coins{}, fmt.Errorf("%w: invalid decimals %d", ErrInvalidCoins, decimals)
	}

	s := strings.SplitN(val, ".", 2)
	if !isDigits(s[0]) || (len(s) == 2 && s[1] != "" && !isDigits(s[1])) {
		return Coins{}, fmt.Errorf("%w: %q", ErrInvalidCoins, val)
	}

	hi, _ := new(big.Int).SetString(s[0], 10)
	hi.Mul(hi, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))

	if len(s) == 2 && s[1] != "" && decimals > 0 {
		loStr := s[1]
		if len(loStr) > decimals {
			loStr = loStr[:decimals]
		}

		lo, _ := new(big.Int).SetString(loStr+strings.Repeat("0", decimals-len(loStr)), 10)
		hi.Add(hi, lo)
	}

	return Coins{
		decimals: decimals,
		val:      hi,
	}, nil
}

// Decode parses amount of nanotons, it makes Coins usable in env config.
func (g *Coins) Decode(value string) error {
	c, err := ParseNano(value, TONDecimals)
	if err != nil {
		return err
	}
	*g = c
	return nil
}

func (g Coins) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", g.Nano().String())), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
