package rootcmder

import "github.com/spf13/cobra"

// SetInteractive overrides terminal detection and returns a restore func.
func SetInteractive(v bool) func() {
	original := isInteractive
	isInteractive = func(*cobra.Command) bool { return v }
	return func() { isInteractive = original }
}
