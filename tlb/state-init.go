package tlb

import (
	"fmt"

	"github.com/tonmint/tonmint/address"
	"github.com/tonmint/tonmint/tvm/cell"
)

// StateInit is the initial code and data of a contract,
// its hash is the contract address.
//
//	_ split_depth:(Maybe (## 5)) special:(Maybe TickTock)
//	  code:(Maybe ^Cell) data:(Maybe ^Cell)
//	  library:(HashmapE 256 SimpleLib) = StateInit;
//
// Split depth, tick-tock and libraries are always absent.
type StateInit struct {
	Code *cell.Cell
	Data *cell.Cell
}

func (s StateInit) ToCell() (*cell.Cell, error) {
	b := cell.BeginCell().
		MustStoreBoolBit(false). // split_depth
		MustStoreBoolBit(false)  // special

	if err := b.StoreMaybeRef(s.Code); err != nil {
		return nil, fmt.Errorf("failed to store code: %w", err)
	}

	if err := b.StoreMaybeRef(s.Data); err != nil {
		return nil, fmt.Errorf("failed to store data: %w", err)
	}

	// empty library dictionary
	b.MustStoreBoolBit(false)

	return b.EndCell()
}

// CalcAddress returns bounceable address of the contract deployed with this state.
func (s StateInit) CalcAddress(workchain int8) (*address.Address, error) {
	c, err := s.ToCell()
	if err != nil {
		return nil, fmt.Errorf("failed to build state init cell: %w", err)
	}

	var hash [32]byte
	copy(hash[:], c.Hash())

	return address.NewAddress(workchain, hash), nil
}
