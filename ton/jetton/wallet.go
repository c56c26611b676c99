// Package jetton derives jetton wallet addresses and builds
// payloads for the jetton minter contract.
package jetton

import (
	"fmt"

	"github.com/tonmint/tonmint/address"
	"github.com/tonmint/tonmint/tlb"
	"github.com/tonmint/tonmint/tvm/cell"
)

// WalletWorkchain is where jetton wallets are deployed by the minter.
const WalletWorkchain int8 = 0

// WalletData returns initial data of the jetton wallet: owner address and then master address.
func WalletData(owner, master *address.Address) (*cell.Cell, error) {
	if owner == nil {
		return nil, fmt.Errorf("%w: owner address is required", address.ErrInvalidAddress)
	}
	if master == nil {
		return nil, fmt.Errorf("%w: master address is required", address.ErrInvalidAddress)
	}

	b := cell.BeginCell()
	if err := b.StoreAddr(owner); err != nil {
		return nil, fmt.Errorf("failed to store owner address: %w", err)
	}
	if err := b.StoreAddr(master); err != nil {
		return nil, fmt.Errorf("failed to store master address: %w", err)
	}

	return b.EndCell()
}

// CalcWalletAddress returns address of the owner's jetton wallet
// which master deploys from the given wallet code.
func CalcWalletAddress(master, owner *address.Address, code *cell.Cell) (*address.Address, error) {
	if code == nil {
		return nil, fmt.Errorf("%w: wallet code is nil", ErrCodeNotFound)
	}

	data, err := WalletData(owner, master)
	if err != nil {
		return nil, err
	}

	addr, err := tlb.StateInit{Code: code, Data: data}.CalcAddress(WalletWorkchain)
	if err != nil {
		return nil, fmt.Errorf("failed to calc state init address: %w", err)
	}
	return addr, nil
}
