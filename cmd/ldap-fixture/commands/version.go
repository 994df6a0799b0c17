package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// BuildInfo identifies the charm binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", b.Version, b.Commit, b.Date)
}

var build = BuildInfo{Version: "dev", Commit: "none", Date: "unknown"}

// SetBuildInfo records the values linked into main. Empty fields keep their
// defaults, except that a missing commit or date is taken from the VCS stamp
// the Go toolchain embeds.
func SetBuildInfo(info BuildInfo) {
	if info.Commit == "" || info.Commit == "none" || info.Date == "" || info.Date == "unknown" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			info = withVCSStamp(info, bi.Settings)
		}
	}
	if info.Version != "" {
		build.Version = info.Version
	}
	if info.Commit != "" {
		build.Commit = info.Commit
	}
	if info.Date != "" {
		build.Date = info.Date
	}
}

func withVCSStamp(info BuildInfo, settings []debug.BuildSetting) BuildInfo {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" || info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" || info.Date == "unknown" {
				info.Date = s.Value
			}
		}
	}
	return info
}

// Version returns the version command.
func Version() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the charm binary version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(out, build.Version)
				return
			}
			_, _ = fmt.Fprintf(out, "%s %s\n", cmd.Root().Name(), build)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")

	return cmd
}
