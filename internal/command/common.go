// Package command holds helpers shared by tonmint CLI commands.
package command

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/tonmint/tonmint/address"
	"github.com/tonmint/tonmint/internal/artifact"
	"github.com/tonmint/tonmint/tvm/cell"
)

const (
	JSONOutputFlag = "json"
	LogLevelFlag   = "log-level"
	CodeFlag       = "code"
	DirFlag        = "dir"
	MinterFlag     = "minter"
	OwnerFlag      = "owner"
	TestnetFlag    = "testnet"
)

// CommandResult is an output of a command, printed as text or JSON.
type CommandResult interface {
	GetOutput() string
}

func RegisterJSONOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(
		JSONOutputFlag,
		false,
		"get all outputs in json format (default false)",
	)
}

func RegisterLogLevelFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String(
		LogLevelFlag,
		"info",
		"the log level for console output",
	)
}

// WriteResult prints result to the command output.
func WriteResult(cmd *cobra.Command, res CommandResult) error {
	if asJSON, _ := cmd.Flags().GetBool(JSONOutputFlag); asJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	_, err := fmt.Fprint(cmd.OutOrStdout(), res.GetOutput())
	return err
}

// NewLogger creates a logger writing to the command error output.
func NewLogger(cmd *cobra.Command, name string) hclog.Logger {
	level, _ := cmd.Flags().GetString(LogLevelFlag)

	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  hclog.LevelFromString(level),
		Output: cmd.ErrOrStderr(),
	})
}

// CodeParams are flags locating jetton wallet code artifact.
type CodeParams struct {
	CodePath string
	Dir      string
}

func (p *CodeParams) SetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&p.CodePath,
		CodeFlag,
		"",
		"path to the jetton wallet code artifact, checked before the default locations",
	)

	cmd.Flags().StringVar(
		&p.Dir,
		DirFlag,
		".",
		"project directory with artifacts/ and build/ folders",
	)
}

func (p *CodeParams) LoadCode(logger hclog.Logger) (*cell.Cell, error) {
	return artifact.NewLocator(logger, artifact.DefaultCandidates(p.Dir, p.CodePath)).LoadCode()
}

// ParseAddrFlag parses address given in a flag, any form is accepted.
func ParseAddrFlag(flag, value string) (*address.Address, error) {
	if value == "" {
		return nil, fmt.Errorf("--%s is required", flag)
	}

	addr, err := address.ParseAnyAddr(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return addr, nil
}

// FormatAddr renders bounceable user-friendly address.
func FormatAddr(addr *address.Address, testnet bool) string {
	return addr.Bounce(true).Testnet(testnet).String()
}
