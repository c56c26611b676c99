package mint

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/tonmint/tonmint/internal/command"
	"github.com/tonmint/tonmint/tlb"
	"github.com/tonmint/tonmint/ton/jetton"
	"github.com/tonmint/tonmint/tvm/cell"
)

const (
	amountFlag   = "amount"
	decimalsFlag = "decimals"
	valueFlag    = "value"
	qrFlag       = "qr"

	qrSize = 256
)

type mintParams struct {
	command.CodeParams

	minter   string
	owner    string
	amount   string
	decimals int
	value    string
	qrPath   string
	testnet  bool
}

type MintResult struct {
	Wallet        string `json:"recipientWalletAddress"`
	Amount        string `json:"amount"`
	PayloadBase64 string `json:"payloadBase64"`
	To            string `json:"to"`
	Value         string `json:"value"`
	TransferLink  string `json:"transferLink"`
}

func (r *MintResult) GetOutput() string {
	return fmt.Sprintf("Wallet  = %s\nAmount  = %s\nPayload = %s\nTo      = %s\nValue   = %s\nLink    = %s\n",
		r.Wallet, r.Amount, r.PayloadBase64, r.To, r.Value, r.TransferLink)
}

func GetCommand() *cobra.Command {
	params := &mintParams{}

	cmd := &cobra.Command{
		Use:   "mint-payload",
		Short: "Builds jetton mint payload for the owner's jetton wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommand(cmd, params)
		},
	}

	params.SetFlags(cmd)

	cmd.Flags().StringVar(&params.minter, command.MinterFlag, "", "jetton minter address")
	cmd.Flags().StringVar(&params.owner, command.OwnerFlag, "", "owner of the jetton wallet receiving tokens")
	cmd.Flags().StringVar(&params.amount, amountFlag, "", "amount of jettons, like 1.5 when --decimals is set")
	cmd.Flags().IntVar(&params.decimals, decimalsFlag, 0, "jetton decimals, 0 means amount is in minimal units")
	cmd.Flags().StringVar(&params.value, valueFlag, "0.0015", "TON attached to the mint message")
	cmd.Flags().StringVar(&params.qrPath, qrFlag, "", "write PNG QR code of the transfer link to the file")
	cmd.Flags().BoolVar(&params.testnet, command.TestnetFlag, false, "render addresses in testnet form")

	return cmd
}

func runCommand(cmd *cobra.Command, params *mintParams) error {
	minter, err := command.ParseAddrFlag(command.MinterFlag, params.minter)
	if err != nil {
		return err
	}

	owner, err := command.ParseAddrFlag(command.OwnerFlag, params.owner)
	if err != nil {
		return err
	}

	if params.amount == "" {
		return fmt.Errorf("--%s is required", amountFlag)
	}

	amount, err := tlb.FromDecimal(params.amount, params.decimals)
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", amountFlag, err)
	}

	if amount.IsZero() {
		return errors.New("amount should be positive")
	}

	value, err := tlb.FromTON(params.value)
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", valueFlag, err)
	}

	logger := command.NewLogger(cmd, "mint-payload")

	code, err := params.LoadCode(logger)
	if err != nil {
		return err
	}

	wallet, err := jetton.CalcWalletAddress(minter, owner, code)
	if err != nil {
		return fmt.Errorf("failed to calculate wallet address: %w", err)
	}

	boc, err := jetton.MintPayloadBOC(amount.Nano(), wallet)
	if err != nil {
		return fmt.Errorf("failed to build payload: %w", err)
	}

	if err = verifyPayload(boc, amount, wallet.String()); err != nil {
		return err
	}

	to := command.FormatAddr(minter, params.testnet)
	link := jetton.TransferLink(to, value.Nano(), boc)

	if params.qrPath != "" {
		if err = qrcode.WriteFile(link, qrcode.Medium, qrSize, params.qrPath); err != nil {
			return fmt.Errorf("failed to write qr code: %w", err)
		}
		logger.Info("qr code saved", "path", params.qrPath)
	}

	return command.WriteResult(cmd, &MintResult{
		Wallet:        command.FormatAddr(wallet, params.testnet),
		Amount:        amount.Nano().String(),
		PayloadBase64: base64.StdEncoding.EncodeToString(boc),
		To:            to,
		Value:         value.Nano().String(),
		TransferLink:  link,
	})
}

// verifyPayload decodes built payload back, it must carry exactly what was requested.
func verifyPayload(boc []byte, amount tlb.Coins, wallet string) error {
	root, err := cell.FromBOC(boc, cell.WithStrict())
	if err != nil {
		return fmt.Errorf("built payload is not decodable: %w", err)
	}

	p, err := jetton.ParseMintPayload(root)
	if err != nil {
		return fmt.Errorf("built payload is not valid: %w", err)
	}

	if p.Amount.Cmp(amount.Nano()) != 0 || p.RecipientWallet.String() != wallet {
		return errors.New("built payload does not match the request")
	}
	return nil
}
