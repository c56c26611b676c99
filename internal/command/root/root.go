package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonmint/tonmint/internal/command"
	"github.com/tonmint/tonmint/internal/command/mint"
	"github.com/tonmint/tonmint/internal/command/serve"
	"github.com/tonmint/tonmint/internal/command/version"
	"github.com/tonmint/tonmint/internal/command/wallet"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Use:           "tonmint",
			Short:         "tonmint builds jetton mint payloads and derives jetton wallet addresses",
			SilenceUsage:  true,
			SilenceErrors: true,
		},
	}

	command.RegisterJSONOutputFlag(rootCommand.baseCmd)
	command.RegisterLogLevelFlag(rootCommand.baseCmd)

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		version.GetCommand(),
		serve.GetCommand(),
		wallet.GetCommand(),
		mint.GetCommand(),
	)
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
