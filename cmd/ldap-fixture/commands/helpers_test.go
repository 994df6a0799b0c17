package commands

import (
	"bytes"

	"github.com/spf13/cobra"
)

func captureOutput(cmd *cobra.Command) *bytes.Buffer {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return &buf
}
