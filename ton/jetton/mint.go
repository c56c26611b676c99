package jetton

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/tonmint/tonmint/address"
	"github.com/tonmint/tonmint/tvm/cell"
)

// OpMint is the op code of the mint instruction accepted by the minter.
const OpMint uint32 = 0x23

// AmountBits is the width of the minted amount.
const AmountBits = 128

var ErrUnexpectedOp = errors.New("unexpected op code")

// MintPayload is the body of a message to the minter:
//
//	mint#00000023 amount:uint128 recipient_wallet:MsgAddressInt = MintPayload;
type MintPayload struct {
	Amount          *big.Int
	RecipientWallet *address.Address
}

func (p MintPayload) ToCell() (*cell.Cell, error) {
	return BuildMintPayload(p.Amount, p.RecipientWallet)
}

// BuildMintPayload returns the mint instruction cell,
// amount should fit into unsigned 128 bits.
func BuildMintPayload(amount *big.Int, recipientWallet *address.Address) (*cell.Cell, error) {
	if amount == nil {
		return nil, fmt.Errorf("%w: amount is required", cell.ErrRange)
	}
	if recipientWallet == nil {
		return nil, fmt.Errorf("%w: recipient wallet address is required", address.ErrInvalidAddress)
	}

	b := cell.BeginCell().MustStoreUInt(uint64(OpMint), 32)

	if err := b.StoreBigUInt(amount, AmountBits); err != nil {
		return nil, fmt.Errorf("failed to store amount %s: %w", amount.String(), err)
	}

	if err := b.StoreAddr(recipientWallet); err != nil {
		return nil, fmt.Errorf("failed to store recipient wallet: %w", err)
	}

	return b.EndCell()
}

// MintPayloadBOC returns serialized mint instruction, ready to be attached to a message.
func MintPayloadBOC(amount *big.Int, recipientWallet *address.Address) ([]byte, error) {
	c, err := BuildMintPayload(amount, recipientWallet)
	if err != nil {
		return nil, err
	}
	return c.ToBOC(), nil
}

func ParseMintPayload(c *cell.Cell) (*MintPayload, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: payload cell is nil", cell.ErrMalformedBOC)
	}

	s := c.BeginParse()

	op, err := s.LoadUInt(32)
	if err != nil {
		return nil, fmt.Errorf("failed to load op: %w", err)
	}
	if uint32(op) != OpMint {
		return nil, fmt.Errorf("%w: %x", ErrUnexpectedOp, op)
	}

	amount, err := s.LoadBigUInt(AmountBits)
	if err != nil {
		return nil, fmt.Errorf("failed to load amount: %w", err)
	}

	addr, err := s.LoadAddr()
	if err != nil {
		return nil, fmt.Errorf("failed to load recipient wallet: %w", err)
	}
	if addr == nil {
		return nil, fmt.Errorf("%w: recipient wallet is empty", address.ErrInvalidAddress)
	}

	if s.BitsLeft() != 0 || s.RefsNum() != 0 {
		return nil, fmt.Errorf("unexpected data after recipient wallet: %d bits, %d refs", s.BitsLeft(), s.RefsNum())
	}

	return &MintPayload{
		Amount:          amount,
		RecipientWallet: addr,
	}, nil
}
