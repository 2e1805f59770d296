// SPDX-License-Identifier: MIT

package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pwd-strength/internal/audit"
	"pwd-strength/internal/util"
)

var (
	auditCmd = &cobra.Command{
		Use:   "audit",
		Short: "Bulk-score a username:password list",
		Long: "Read username:password lines from a file, score every entry concurrently, and " +
			"report how many classified strong, moderate, and weak. Use --offline to skip breach " +
			"lookups when auditing large files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return auditCommand()
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	auditCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "username:password input file (required)")
	auditCmd.MarkFlagRequired("in-file")
	auditCmd.Flags().IntVarP(&threads, "threads", "t", 0, "Number of concurrent evaluations. Defaults to a multiple of the CPU count")
	auditCmd.Flags().BoolVar(&offline, "offline", false, "Skip the breach corpus lookup (no network calls)")
	auditCmd.Flags().StringVar(&hibpURL, "hibp-url", "", "Override the Pwned Passwords range API base URL")
	auditCmd.Flags().StringVarP(&blacklistFile, "blacklist", "b", "", "Common-password corpus file to use as the blacklist, one password or SHA1 hash per line")

	rootCmd.AddCommand(auditCmd)
}

func auditCommand() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	evaluator, err := buildEvaluator()
	if err != nil {
		return err
	}

	summary, err := audit.New(evaluator, threads).ProcessFile(context.Background(), inputFile)
	if err != nil {
		return err
	}

	if summary.Skipped > 0 {
		log.Warn().Msgf("skipped %d malformed lines", summary.Skipped)
	}

	for _, username := range summary.WeakUsers {
		log.Warn().Msgf("weak password for account %s", username)
	}

	return nil
}
