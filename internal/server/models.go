package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// BuildMintRequest is a body of mint payload requests.
type BuildMintRequest struct {
	// Owner of the jetton wallet that receives minted tokens, any address form.
	RecipientOwner string `json:"recipientOwner" example:"EQC6KV4zs8TJtSZapOrRFmqSkxzpq-oSCoxekQRKElf4nC1I"`
	// Amount in jetton minimal units, a decimal string or a JSON integer.
	Amount json.RawMessage `json:"amount" swaggertype:"string" example:"1000"`
} // @name BuildMintRequest

type MintMessageData struct {
	Payload string `json:"payload"`
} // @name MintMessageData

// MintMessage describes an internal message for a wallet to send to the minter.
type MintMessage struct {
	To    string          `json:"to"`
	Value string          `json:"value"`
	Data  MintMessageData `json:"data"`
} // @name MintMessage

type BuildMintResponse struct {
	PayloadBase64          string      `json:"payloadBase64"`
	RecipientWalletAddress string      `json:"recipientWalletAddress"`
	Message                MintMessage `json:"message"`
	TransferLink           string      `json:"transferLink"`
} // @name BuildMintResponse

type PingResponse struct {
	Status                  string `json:"status"`
	WalletCodeLoaded        bool   `json:"walletCodeLoaded"`
	MinterAddressConfigured bool   `json:"minterAddressConfigured"`
} // @name PingResponse

func isMissing(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) == 0 || bytes.Equal(v, []byte("null")) || bytes.Equal(v, []byte(`""`))
}

// parseAmount accepts a JSON string or a JSON number holding a base 10 integer.
func parseAmount(raw json.RawMessage) (*big.Int, error) {
	v := bytes.TrimSpace(raw)

	var text string
	if len(v) > 0 && v[0] == '"' {
		if err := json.Unmarshal(v, &text); err != nil {
			return nil, fmt.Errorf("amount is not a string: %w", err)
		}
		text = strings.TrimSpace(text)
	} else {
		text = string(v)
	}

	if text == "" {
		return nil, errors.New("amount is empty")
	}

	digits := strings.TrimPrefix(text, "+")
	if strings.HasPrefix(digits, "-") {
		return nil, errors.New("amount should not be negative")
	}

	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("amount %q is not an integer", text)
		}
	}

	amount, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("amount %q is not an integer", text)
	}
	return amount, nil
}
