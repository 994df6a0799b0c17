package commands

import "github.com/spf13/cobra"

// configFlags are configuration values that can be given on the command line.
type configFlags struct {
	domain        string
	users         string
	adminPassword string
	organization  string
	workload      string
}

func (f *configFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.domain, "domain", "", "Directory domain, e.g. test.com")
	cmd.Flags().StringVar(&f.users, "users", "", "Comma-separated display names to seed")
	cmd.Flags().StringVar(&f.adminPassword, "admin-password", "", "slapd admin password")
	cmd.Flags().StringVar(&f.organization, "organization", "", "slapd organization")
	cmd.Flags().StringVar(&f.workload, "workload", "", "Workload container name")
}

// overrides returns the flags that were set explicitly, keyed by option name.
func (f *configFlags) overrides(cmd *cobra.Command) map[string]any {
	values := map[string]string{
		"domain":         f.domain,
		"users":          f.users,
		"admin-password": f.adminPassword,
		"organization":   f.organization,
		"workload":       f.workload,
	}

	out := make(map[string]any)
	for name, value := range values {
		if cmd.Flags().Changed(name) {
			out[name] = value
		}
	}
	return out
}
