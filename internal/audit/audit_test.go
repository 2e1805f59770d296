package audit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pwd-strength/pkg/strength"
)

func TestProcessFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "accounts.txt")
	lines := "alice:password\n" +
		"bob:Tr0ub4dor&Horse!xyz\n" +
		"carol:correct horse battery staple\n" +
		"\n" +
		"no-colon-line\n" +
		"dave:sunshine12\n"
	if err := os.WriteFile(fileName, []byte(lines), 0o600); err != nil {
		t.Fatalf("Should not fail writing fixture: %s", err)
	}

	// Offline evaluator: no breach checker, demo blacklist.
	evaluator := strength.NewEvaluator(nil, nil, 0)
	summary, err := New(evaluator, 2).ProcessFile(context.Background(), fileName)
	if err != nil {
		t.Fatalf("Should not fail processing file: %s", err)
	}

	if summary.Total != 4 {
		t.Errorf("Should have 4 entries, got %d", summary.Total)
	}
	if summary.Skipped != 2 {
		t.Errorf("Should skip the blank and malformed lines, got %d", summary.Skipped)
	}
	if summary.Strong != 2 {
		t.Errorf("bob and carol should classify strong, got %d", summary.Strong)
	}
	if summary.Moderate != 1 {
		t.Errorf("dave should classify moderate, got %d", summary.Moderate)
	}
	if summary.Weak != 1 {
		t.Errorf("alice should classify weak, got %d", summary.Weak)
	}

	if len(summary.WeakUsers) != 1 || summary.WeakUsers[0] != "alice" {
		t.Errorf("Weak accounts should be listed by username only: %v", summary.WeakUsers)
	}
}

func TestProcessFileMissing(t *testing.T) {
	evaluator := strength.NewEvaluator(nil, nil, 0)
	if _, err := New(evaluator, 1).ProcessFile(context.Background(), "does-not-exist.txt"); err == nil {
		t.Errorf("A missing file should surface an error")
	}
}
