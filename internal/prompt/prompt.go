// Package prompt is the promptui front end for resolver sessions.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tamagokakedon/aws-profile-switch/internal/resolver"
	"github.com/tamagokakedon/aws-profile-switch/internal/search"
	"github.com/tamagokakedon/aws-profile-switch/internal/sso"

	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

// searchAllItem is the escape entry offered before recent profiles.
const searchAllItem = "Search all profiles"

// Terminal implements resolver.Prompter on promptui. Everything renders
// on stderr so that stdout carries nothing but the shell command the
// caller evaluates.
type Terminal struct {
	logger *zap.Logger
	stdin  io.ReadCloser
	stderr io.WriteCloser
}

// New builds a Terminal bound to the process terminal.
func New(logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Terminal{
		logger: logger,
		stdin:  os.Stdin,
		stderr: os.Stderr,
	}
}

// Query asks one free-text question for the given stage.
func (t *Terminal) Query(stage resolver.State, label string) (string, error) {
	p := promptui.Prompt{
		Label:  label,
		Stdin:  t.stdin,
		Stdout: t.stderr,
	}

	input, err := p.Run()
	if err != nil {
		return "", t.mapErr(stage, err)
	}

	return input, nil
}

// Disambiguate lists the ranked candidates numbered from 1 and reads
// either a number picking one of them or a refining query.
func (t *Terminal) Disambiguate(stage resolver.State, matches []search.Candidate) (resolver.Selection, error) {
	fmt.Fprintln(t.stderr, "\nDid you mean:")
	for i, m := range matches {
		fmt.Fprintf(t.stderr, "  %d. %s (score: %d)\n", i+1, m.Text, m.Score)
	}

	p := promptui.Prompt{
		Label:  "Number to select, or refine the search",
		Stdin:  t.stdin,
		Stdout: t.stderr,
	}

	input, err := p.Run()
	if err != nil {
		return resolver.Selection{}, t.mapErr(stage, err)
	}

	return parseSelection(input), nil
}

// PickProfile chooses among profiles sharing an account and role.
func (t *Terminal) PickProfile(profiles []sso.Profile) (int, error) {
	items := make([]string, len(profiles))
	for i, p := range profiles {
		items[i] = profileItem(p)
	}

	sel := promptui.Select{
		Label:    "Several profiles match, choose one",
		Items:    items,
		Size:     len(items),
		Searcher: searcher(items),
		Stdin:    t.stdin,
		Stdout:   t.stderr,
	}

	idx, _, err := sel.Run()
	if err != nil {
		return 0, t.mapErr(resolver.StateSelectingProfile, err)
	}

	return idx, nil
}

// PickRecent offers recently used profiles. The escape entry sits at
// promptui index 0, so the returned profile index is shifted down by
// one and the escape comes back as -1.
func (t *Terminal) PickRecent(recent []sso.Profile) (int, error) {
	items := make([]string, 0, len(recent)+1)
	items = append(items, searchAllItem)
	for _, p := range recent {
		items = append(items, recentItem(p))
	}

	sel := promptui.Select{
		Label:    "Recent profiles",
		Items:    items,
		Size:     len(items),
		Searcher: searcher(items),
		Stdin:    t.stdin,
		Stdout:   t.stderr,
	}

	idx, _, err := sel.Run()
	if err != nil {
		return 0, t.mapErr(resolver.StateSelectingAccount, err)
	}

	return idx - 1, nil
}

// mapErr converts promptui termination into the pipeline's sentinel so
// that Ctrl+C and Ctrl+D cancel instead of failing the command.
func (t *Terminal) mapErr(stage resolver.State, err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		t.logger.Debug("input aborted", zap.Stringer("stage", stage), zap.Error(err))
		return resolver.ErrCancelled
	}

	return err
}

// parseSelection reads a digits-only answer as a 1-based index and any
// other text as a refining query. Empty input yields the zero
// Selection, which cancels.
func parseSelection(input string) resolver.Selection {
	input = strings.TrimSpace(input)
	if input == "" {
		return resolver.Selection{}
	}

	if isDigits(input) {
		n, err := strconv.Atoi(input)
		if err != nil {
			return resolver.Selection{}
		}
		return resolver.Selection{Index: n}
	}

	return resolver.Selection{Query: input}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func profileItem(p sso.Profile) string {
	if p.Region != "" {
		return fmt.Sprintf("%s (%s, %s)", p.Name, p.AccountID, p.Region)
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.AccountID)
}

func recentItem(p sso.Profile) string {
	return fmt.Sprintf("%s (%s)", p.Name, p.DisplayName())
}

// searcher filters select items as the user types.
func searcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if strings.TrimSpace(input) == "" {
			return true
		}
		return len(fuzzy.Find(input, []string{items[index]})) > 0
	}
}
