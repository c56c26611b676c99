package wallet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonmint/tonmint/internal/command"
	"github.com/tonmint/tonmint/ton/jetton"
)

type walletParams struct {
	command.CodeParams

	minter  string
	owner   string
	testnet bool
}

type WalletResult struct {
	Minter   string `json:"minter"`
	Owner    string `json:"owner"`
	Wallet   string `json:"wallet"`
	CodeHash string `json:"codeHash"`
}

func (r *WalletResult) GetOutput() string {
	return fmt.Sprintf("Minter    = %s\nOwner     = %s\nWallet    = %s\nCode Hash = %s\n",
		r.Minter, r.Owner, r.Wallet, r.CodeHash)
}

func GetCommand() *cobra.Command {
	params := &walletParams{}

	cmd := &cobra.Command{
		Use:   "wallet-address",
		Short: "Derives jetton wallet address of an owner for the given minter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommand(cmd, params)
		},
	}

	params.SetFlags(cmd)

	cmd.Flags().StringVar(&params.minter, command.MinterFlag, "", "jetton minter address")
	cmd.Flags().StringVar(&params.owner, command.OwnerFlag, "", "jetton wallet owner address")
	cmd.Flags().BoolVar(&params.testnet, command.TestnetFlag, false, "render addresses in testnet form")

	return cmd
}

func runCommand(cmd *cobra.Command, params *walletParams) error {
	minter, err := command.ParseAddrFlag(command.MinterFlag, params.minter)
	if err != nil {
		return err
	}

	owner, err := command.ParseAddrFlag(command.OwnerFlag, params.owner)
	if err != nil {
		return err
	}

	code, err := params.LoadCode(command.NewLogger(cmd, "wallet-address"))
	if err != nil {
		return err
	}

	wallet, err := jetton.CalcWalletAddress(minter, owner, code)
	if err != nil {
		return fmt.Errorf("failed to calculate wallet address: %w", err)
	}

	return command.WriteResult(cmd, &WalletResult{
		Minter:   command.FormatAddr(minter, params.testnet),
		Owner:    command.FormatAddr(owner, params.testnet),
		Wallet:   command.FormatAddr(wallet, params.testnet),
		CodeHash: fmt.Sprintf("%x", code.Hash()),
	})
}
