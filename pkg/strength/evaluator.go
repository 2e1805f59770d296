// SPDX-License-Identifier: MIT

package strength

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Classification buckets a score. The thresholds partition the whole score
// range, so every report gets exactly one.
type Classification int

const (
	Weak Classification = iota
	Moderate
	Strong
)

func (c Classification) String() string {
	switch c {
	case Strong:
		return "Strong"
	case Moderate:
		return "Moderate"
	default:
		return "Weak"
	}
}

// Classify maps a score to its bucket: >= 6 Strong, >= 4 Moderate, else Weak.
func Classify(score int) Classification {
	switch {
	case score >= 6:
		return Strong
	case score >= 4:
		return Moderate
	default:
		return Weak
	}
}

// Report is the immutable result of one evaluation. Messages holds the
// per-rule feedback in rule order followed by the entropy and crack-time
// info lines, which are always present.
type Report struct {
	Score          int
	Classification Classification
	Messages       []string
	Entropy        float64
	CrackTime      string
}

// Feedback returns only the rule feedback, without the two trailing info
// lines. This is what callers persist.
func (r Report) Feedback() string {
	if len(r.Messages) < 2 {
		return ""
	}
	return strings.Join(r.Messages[:len(r.Messages)-2], "\n")
}

// String renders the full report: a classification marker line first, then
// every message in order.
func (r Report) String() string {
	var marker string
	switch r.Classification {
	case Strong:
		marker = "Strong password!"
	case Moderate:
		marker = "Moderate password. Consider improving:"
	default:
		marker = "Weak password:"
	}
	return marker + "\n" + strings.Join(r.Messages, "\n")
}

// BreachChecker reports whether a password appears in a known breach corpus.
// Implementations must never transmit or retain the raw password.
type BreachChecker interface {
	IsBreached(ctx context.Context, password string) (bool, error)
}

// Evaluator applies the scoring rules. The zero value is not usable; build
// one with NewEvaluator.
type Evaluator struct {
	blacklist Blacklist
	breach    BreachChecker
	guessRate float64
}

// NewEvaluator wires the evaluator's collaborators. breach may be nil, in
// which case the breach rule always passes (offline mode). A guessRate <= 0
// falls back to DefaultGuessRate.
func NewEvaluator(blacklist Blacklist, breach BreachChecker, guessRate float64) *Evaluator {
	if blacklist == nil {
		blacklist = DefaultBlacklist()
	}
	if guessRate <= 0 {
		guessRate = DefaultGuessRate
	}
	return &Evaluator{blacklist: blacklist, breach: breach, guessRate: guessRate}
}

// Evaluate runs every rule against the submission and returns the report.
// Rules are independent and all of them always run; each pass is worth one
// point. The only I/O is the breach lookup, which fails open: if the check
// cannot complete the rule passes and a warning is logged.
func (e *Evaluator) Evaluate(ctx context.Context, username, password, email string) Report {
	var messages []string
	score := 0

	// Rule 1: minimum length.
	if len([]rune(password)) >= 12 {
		score++
	} else {
		messages = append(messages, "Password must be at least 12 characters long.")
	}

	// Rule 2: uppercase letter.
	if strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		score++
	} else {
		messages = append(messages, "Add at least one uppercase letter.")
	}

	// Rule 3: lowercase letter.
	if strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") {
		score++
	} else {
		messages = append(messages, "Add at least one lowercase letter.")
	}

	// Rule 4: digit.
	if strings.ContainsAny(password, "0123456789") {
		score++
	} else {
		messages = append(messages, "Include at least one number.")
	}

	// Rule 5: special character.
	if strings.ContainsAny(password, Symbols) {
		score++
	} else {
		messages = append(messages, "Include at least one special character.")
	}

	// Rule 6: the password must not contain the username or the local part
	// of the email. Empty identifiers skip their sub-check.
	if containsIdentity(password, username, email) {
		messages = append(messages, "Don't use your username or email in the password.")
	} else {
		score++
	}

	// Rule 7: hashed blacklist of common passwords.
	if e.blacklist.Contains(password) {
		messages = append(messages, "This password is blacklisted (too common).")
	} else {
		score++
	}

	// Rule 8: passphrase bonus. No penalty on failure.
	if isPassphrase(password) {
		score++
		messages = append(messages, "Good! You're using a passphrase.")
	}

	// Rule 9: known breach corpora.
	if e.isBreached(ctx, password) {
		messages = append(messages, "This password has appeared in a known data breach.")
	} else {
		score++
	}

	entropy := Entropy(password)
	crackTime := CrackTime(entropy, e.guessRate)
	messages = append(messages,
		fmt.Sprintf("Entropy: %.2f bits", entropy),
		fmt.Sprintf("Estimated crack time: %s", crackTime),
	)

	return Report{
		Score:          score,
		Classification: Classify(score),
		Messages:       messages,
		Entropy:        entropy,
		CrackTime:      crackTime,
	}
}

func (e *Evaluator) isBreached(ctx context.Context, password string) bool {
	if e.breach == nil {
		return false
	}

	breached, err := e.breach.IsBreached(ctx, password)
	if err != nil {
		// Fail open: an unreachable or misbehaving breach service must not
		// block submissions. The password never appears in this log line.
		log.Warn().Err(err).Msg("breach check unavailable, treating password as not breached")
		return false
	}

	return breached
}

func containsIdentity(password, username, email string) bool {
	lower := strings.ToLower(password)

	if username != "" && strings.Contains(lower, strings.ToLower(username)) {
		return true
	}

	if email != "" {
		local := strings.ToLower(strings.SplitN(email, "@", 2)[0])
		if local != "" && strings.Contains(lower, local) {
			return true
		}
	}

	return false
}

func isPassphrase(password string) bool {
	words := strings.Fields(password)
	if len(words) < 4 {
		return false
	}
	for _, word := range words {
		if len([]rune(word)) <= 3 {
			return false
		}
	}
	return true
}
