// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pwd-strength/internal/util"
	"pwd-strength/pkg/hibp"
	"pwd-strength/pkg/strength"
)

var (
	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Interactively score passwords from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkCommand()
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	checkCmd.Flags().BoolVar(&offline, "offline", false, "Skip the breach corpus lookup (no network calls)")
	checkCmd.Flags().StringVar(&hibpURL, "hibp-url", "", "Override the Pwned Passwords range API base URL")
	checkCmd.Flags().StringVarP(&blacklistFile, "blacklist", "b", "", "Common-password corpus file to use as the blacklist, one password or SHA1 hash per line")

	rootCmd.AddCommand(checkCmd)
}

func checkCommand() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	evaluator, err := buildEvaluator()
	if err != nil {
		return err
	}

	log.Info().Msgf("Running interactive session. ^C to exit")
	if err = runInteractiveSession(evaluator); err != nil {
		if err.Error() == "^C" || err.Error() == "^D" {
			log.Info().Msgf("Goodbye")
		} else {
			log.Error().Err(err).Msgf("Error during interactive session")
		}
		// No return to avoid the default cobra error message
		return nil
	}

	return nil
}

func runInteractiveSession(evaluator *strength.Evaluator) error {
	usernamePrompt := promptui.Prompt{
		Label: "Username",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("please enter a username")
			}
			return nil
		},
	}
	emailPrompt := promptui.Prompt{Label: "Email (optional)"}
	passwordPrompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) == 0 {
				return errors.New("please enter a valid password")
			}
			return nil
		},
	}

	for {
		username, err := usernamePrompt.Run()
		if err != nil {
			return err
		}

		email, err := emailPrompt.Run()
		if err != nil {
			return err
		}

		password, err := passwordPrompt.Run()
		if err != nil {
			return err
		}

		report := evaluator.Evaluate(context.Background(), username, password, email)
		fmt.Println(report.String())
		fmt.Println(strings.Repeat("-", 40))
	}
}

// buildEvaluator assembles the evaluator from the shared flags: blacklist
// corpus, breach client (unless offline), default guess rate.
func buildEvaluator() (*strength.Evaluator, error) {
	blacklist, err := loadBlacklist(blacklistFile)
	if err != nil {
		return nil, err
	}

	var breach strength.BreachChecker
	if offline {
		log.Warn().Msg("offline mode: breach lookups are skipped")
	} else {
		breach = hibp.NewClient(hibpURL, hibp.DefaultTimeout)
	}

	return strength.NewEvaluator(blacklist, breach, strength.DefaultGuessRate), nil
}

func loadBlacklist(fileName string) (strength.Blacklist, error) {
	if fileName == "" {
		return strength.DefaultBlacklist(), nil
	}

	stat, err := os.Stat(fileName)
	if err != nil {
		return nil, fmt.Errorf("error reading blacklist corpus: %w", err)
	}
	// Rough line estimate to warn before loading a corpus that won't fit.
	util.CheckRam(uint64(stat.Size() / 9))

	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("error opening blacklist corpus: %w", err)
	}

	defer func() {
		if err = file.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing blacklist corpus file")
		}
	}()

	set, err := strength.LoadBlacklist(file)
	if err != nil {
		return nil, fmt.Errorf("error loading blacklist corpus: %w", err)
	}

	log.Info().Msgf("loaded %d blacklist entries from %s", len(set), fileName)
	return set, nil
}
