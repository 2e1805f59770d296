// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwdstrength [COMMAND] [OPTIONS]",
		Short: "Score passwords with rule checks, entropy, and breach lookups",
		Long: "Score passwords against a fixed rule set, estimate their entropy and brute-force " +
			"crack time, and check them against the Pwned Passwords (haveibeenpwned.com) breach corpus. " +
			"Also serves the checker as a small web application with persisted results.",
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable the profiling server (pprof) when running commands")
	rootCmd.PersistentFlags().Uint16Var(&pprofPort, "profile-port", 6060, "The port to use for the pprof server. Only used if the profile flag is set")
}

func Execute() error {
	return rootCmd.Execute()
}
