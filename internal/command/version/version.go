package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonmint/tonmint/internal/command"
)

// Set with -ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

type VersionResult struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
}

func (r *VersionResult) GetOutput() string {
	return fmt.Sprintf("tonmint\nVersion    = %s\nCommit     = %s\nBuild Time = %s\n",
		r.Version, r.Commit, r.BuildTime)
}

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Returns the current tonmint version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WriteResult(cmd, &VersionResult{
				Version:   Version,
				Commit:    Commit,
				BuildTime: BuildTime,
			})
		},
	}
}
