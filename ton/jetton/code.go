package jetton

import (
	"errors"
	"fmt"

	"go.uber.org/atomic"

	"github.com/tonmint/tonmint/tvm/cell"
)

var ErrCodeNotFound = errors.New("jetton wallet code not found")

// LoadWalletCode decodes compiled wallet code artifact, the code is its first root.
func LoadWalletCode(buf []byte) (*cell.Cell, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: artifact is empty", ErrCodeNotFound)
	}

	roots, err := cell.FromBOCMultiRoot(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCodeNotFound, err)
	}

	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: artifact has no root cells", ErrCodeNotFound)
	}
	return roots[0], nil
}

// CodeCache holds wallet code for the whole process.
// Once set the code never changes, concurrent loads may discover it
// more than once, but only the first stored cell is kept.
type CodeCache struct {
	code atomic.Pointer[cell.Cell]
}

func (c *CodeCache) Get() *cell.Cell {
	return c.code.Load()
}

// Set stores code if nothing is stored yet and reports whether it was stored.
func (c *CodeCache) Set(code *cell.Cell) bool {
	if code == nil {
		return false
	}
	return c.code.CompareAndSwap(nil, code)
}

// Load returns cached code or calls discover and caches its result.
// Failed discovery leaves cache empty, so the next call tries again.
func (c *CodeCache) Load(discover func() ([]byte, error)) (*cell.Cell, error) {
	if code := c.code.Load(); code != nil {
		return code, nil
	}

	buf, err := discover()
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrCodeNotFound, err)
	}

	code, err := LoadWalletCode(buf)
	if err != nil {
		return nil, err
	}

	if !c.code.CompareAndSwap(nil, code) {
		return c.code.Load(), nil
	}
	return code, nil
}
