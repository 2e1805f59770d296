package strength

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeBreach struct {
	breached bool
	err      error
	calls    int
}

func (f *fakeBreach) IsBreached(_ context.Context, _ string) (bool, error) {
	f.calls++
	return f.breached, f.err
}

func TestClassifyPartitionsScores(t *testing.T) {
	for score := 0; score <= 9; score++ {
		got := Classify(score)
		var want Classification
		switch {
		case score >= 6:
			want = Strong
		case score >= 4:
			want = Moderate
		default:
			want = Weak
		}
		if got != want {
			t.Errorf("Classify(%d) = %v, want %v", score, got, want)
		}
	}
}

func TestEvaluateStrongPassword(t *testing.T) {
	breach := &fakeBreach{}
	evaluator := NewEvaluator(nil, breach, 0)

	report := evaluator.Evaluate(context.Background(), "alice", "Tr0ub4dor&Horse!", "alice@example.com")

	if report.Score != 8 {
		t.Errorf("Score should be 8, got %d", report.Score)
	}
	if report.Classification != Strong {
		t.Errorf("Classification should be Strong, got %v", report.Classification)
	}
	if len(report.Messages) != 2 {
		t.Errorf("A fully passing password should only carry the two info lines, got %v", report.Messages)
	}
	if report.Feedback() != "" {
		t.Errorf("Feedback should be empty, got %q", report.Feedback())
	}
	if breach.calls != 1 {
		t.Errorf("Breach checker should be consulted exactly once, got %d calls", breach.calls)
	}
	if !strings.HasPrefix(report.String(), "Strong password!\n") {
		t.Errorf("Rendered report should lead with the classification marker: %q", report.String())
	}
}

func TestEvaluateWeakPassword(t *testing.T) {
	evaluator := NewEvaluator(nil, &fakeBreach{breached: true}, 0)

	report := evaluator.Evaluate(context.Background(), "bob", "password", "")

	if report.Score != 2 {
		t.Errorf("Score should be 2, got %d", report.Score)
	}
	if report.Classification != Weak {
		t.Errorf("Classification should be Weak, got %v", report.Classification)
	}

	// Six failed rules plus the two info lines, in rule order.
	if len(report.Messages) != 8 {
		t.Fatalf("Should have 8 messages, got %d: %v", len(report.Messages), report.Messages)
	}
	if report.Messages[0] != "Password must be at least 12 characters long." {
		t.Errorf("First message should be the length rule, got %q", report.Messages[0])
	}
	if !strings.HasPrefix(report.Messages[6], "Entropy: ") {
		t.Errorf("Second to last message should be the entropy line, got %q", report.Messages[6])
	}
	if !strings.HasPrefix(report.Messages[7], "Estimated crack time: ") {
		t.Errorf("Last message should be the crack time line, got %q", report.Messages[7])
	}
	if !strings.Contains(report.Feedback(), "blacklisted") {
		t.Errorf("Feedback should mention the blacklist, got %q", report.Feedback())
	}
	if strings.Contains(report.Feedback(), "Entropy") {
		t.Errorf("Feedback should not include the info lines, got %q", report.Feedback())
	}
}

func TestEvaluateModeratePassword(t *testing.T) {
	evaluator := NewEvaluator(nil, &fakeBreach{}, 0)

	report := evaluator.Evaluate(context.Background(), "bob", "sunshine12", "")

	if report.Score != 5 {
		t.Errorf("Score should be 5, got %d", report.Score)
	}
	if report.Classification != Moderate {
		t.Errorf("Classification should be Moderate, got %v", report.Classification)
	}
}

func TestEvaluateRejectsUsernameInPassword(t *testing.T) {
	evaluator := NewEvaluator(nil, nil, 0)

	report := evaluator.Evaluate(context.Background(), "alice", "alice123XYZ!", "alice@x.com")

	found := false
	for _, msg := range report.Messages {
		if msg == "Don't use your username or email in the password." {
			found = true
		}
	}
	if !found {
		t.Errorf("A password containing the username should fail the identity rule: %v", report.Messages)
	}
}

func TestEvaluateRejectsEmailLocalPart(t *testing.T) {
	evaluator := NewEvaluator(nil, nil, 0)

	report := evaluator.Evaluate(context.Background(), "bob", "ALICE123xyzX!", "Alice@example.com")

	if !strings.Contains(report.Feedback(), "username or email") {
		t.Errorf("The email local part should be matched case-insensitively: %v", report.Messages)
	}
}

func TestEvaluateSkipsEmptyIdentity(t *testing.T) {
	evaluator := NewEvaluator(nil, nil, 0)

	report := evaluator.Evaluate(context.Background(), "", "password", "")

	if strings.Contains(report.Feedback(), "username or email") {
		t.Errorf("Empty username and email should skip the identity rule: %v", report.Messages)
	}
}

func TestEvaluatePassphraseBonus(t *testing.T) {
	evaluator := NewEvaluator(nil, nil, 0)

	report := evaluator.Evaluate(context.Background(), "zz", "correct horse battery staple", "")

	if report.Score != 6 {
		t.Errorf("Score should be 6, got %d", report.Score)
	}
	if report.Classification != Strong {
		t.Errorf("Classification should be Strong, got %v", report.Classification)
	}

	found := false
	for _, msg := range report.Messages {
		if msg == "Good! You're using a passphrase." {
			found = true
		}
	}
	if !found {
		t.Errorf("The passphrase bonus should add a positive message: %v", report.Messages)
	}
}

func TestEvaluateNoPassphraseBonusForShortWords(t *testing.T) {
	evaluator := NewEvaluator(nil, nil, 0)

	// Four tokens, but "cat" is too short.
	report := evaluator.Evaluate(context.Background(), "zz", "correct horse cat staple", "")

	for _, msg := range report.Messages {
		if strings.Contains(msg, "passphrase") {
			t.Errorf("Short tokens should not earn the passphrase bonus: %v", report.Messages)
		}
	}
}

func TestEvaluateBreachFailureFailsOpen(t *testing.T) {
	open := NewEvaluator(nil, &fakeBreach{err: errors.New("connection refused")}, 0)
	closed := NewEvaluator(nil, &fakeBreach{breached: true}, 0)

	password := "Tr0ub4dor&Horse!"
	openReport := open.Evaluate(context.Background(), "alice", password, "")
	closedReport := closed.Evaluate(context.Background(), "alice", password, "")

	if openReport.Score != closedReport.Score+1 {
		t.Errorf("An unavailable breach check should pass the rule: open=%d closed=%d",
			openReport.Score, closedReport.Score)
	}
	if strings.Contains(openReport.Feedback(), "breach") {
		t.Errorf("Fail-open should not add a breach message: %v", openReport.Messages)
	}
}

func TestEvaluateEmptyPassword(t *testing.T) {
	evaluator := NewEvaluator(nil, nil, 0)

	report := evaluator.Evaluate(context.Background(), "bob", "", "")

	if report.Entropy != 0 {
		t.Errorf("Empty password should have zero entropy, got %v", report.Entropy)
	}
	if report.CrackTime != "less than 1 second" {
		t.Errorf("Empty password should crack instantly, got %q", report.CrackTime)
	}
	if report.Classification != Weak {
		t.Errorf("Empty password should classify Weak, got %v", report.Classification)
	}
}
