// SPDX-License-Identifier: MIT

// Package audit evaluates password lists in bulk, for sweeping existing
// account databases against the scoring rules.
package audit

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/thinhdanggroup/executor"

	"pwd-strength/internal/util"
	"pwd-strength/pkg/strength"
)

// Entry is one line of an audit file: "username:password". Everything after
// the first colon belongs to the password.
type Entry struct {
	Username string
	Password string
}

// Auditor fans entries out over a bounded worker pool and tallies the
// classifications.
type Auditor struct {
	evaluator   *strength.Evaluator
	parallelism int
	stat        *status
}

// New builds an Auditor. parallelism <= 0 sizes the pool from the CPU count.
func New(evaluator *strength.Evaluator, parallelism int) *Auditor {
	return &Auditor{evaluator: evaluator, parallelism: parallelism}
}

// ProcessFile audits every entry in the file and returns the tally. Lines
// that are blank or missing the colon separator are counted as skipped.
func (a *Auditor) ProcessFile(ctx context.Context, fileName string) (*Summary, error) {
	s := util.Stats()
	defer s()

	entries, skipped, err := readEntries(fileName)
	if err != nil {
		return nil, err
	}

	var threads int
	if a.parallelism > 0 {
		threads = a.parallelism
	} else {
		// Each evaluation may block on one breach lookup, so oversubscribe
		// the CPUs a little.
		threads = runtime.NumCPU() * 2
	}

	// This is a bounded thread pool. I just didn't want to implement it myself...
	auditTasks, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * threads,
		NumWorkers:    threads,
	})
	if err != nil {
		return nil, err
	}
	defer auditTasks.Close()

	log.Info().Msgf("auditing %d entries from %s with %d threads", len(entries), fileName, threads)
	a.stat = newStatus(len(entries))
	a.stat.BeginProgress()

	for _, entry := range entries {
		if err = auditTasks.Publish(a.processEntry, ctx, entry); err != nil {
			log.Panic().Err(err).Msgf("there is a programming error here.")
		}
	}

	auditTasks.Wait()
	summary := a.stat.Done()
	summary.Skipped = skipped

	return summary, nil
}

func (a *Auditor) processEntry(ctx context.Context, entry Entry) {
	report := a.evaluator.Evaluate(ctx, entry.Username, entry.Password, "")
	a.stat.ReportDone(entry.Username, report.Classification)
}

func readEntries(fileName string) ([]Entry, int, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, 0, fmt.Errorf("error opening audit file: %w", err)
	}

	defer func() {
		if err = file.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing audit file")
		}
	}()

	var entries []Entry
	skipped := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			skipped++
			continue
		}

		username, password, found := strings.Cut(line, ":")
		if !found || password == "" {
			skipped++
			continue
		}

		entries = append(entries, Entry{Username: username, Password: password})
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}

	return entries, skipped, nil
}
