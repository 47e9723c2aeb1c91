// Package resolver drives the interactive account, role and profile
// selection over a read-only profile catalog.
package resolver

import (
	"errors"
	"strings"

	"github.com/tamagokakedon/aws-profile-switch/internal/search"
	"github.com/tamagokakedon/aws-profile-switch/internal/sso"

	"go.uber.org/zap"
)

// State identifies the stage a resolution session is in. Sessions only
// move forward; a front end that wants to go back starts a fresh
// Resolver.
type State int

const (
	StateSelectingAccount State = iota
	StateSelectingRole
	StateSelectingProfile
	StateResolved
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateSelectingAccount:
		return "selecting_account"
	case StateSelectingRole:
		return "selecting_role"
	case StateSelectingProfile:
		return "selecting_profile"
	case StateResolved:
		return "resolved"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

const (
	// AcceptThreshold is the score a best match must exceed to be taken
	// without disambiguation.
	AcceptThreshold = 70

	// NarrowedAcceptThreshold is the looser bar for a second free-text
	// query, scored against the already-ranked subset only.
	NarrowedAcceptThreshold = 50

	// DisambiguationLimit caps how many ranked candidates a stage
	// offers the user.
	DisambiguationLimit = 5

	// MaxSeeds caps how many recent profiles are offered up front.
	MaxSeeds = 5
)

// Selection is one answer to a disambiguation list: either a 1-based
// index into the presented candidates or a refining free-text query.
// The zero value is neither and cancels the attempt.
type Selection struct {
	Index int
	Query string
}

// Prompter supplies user input to the pipeline; the pipeline never reads
// the terminal itself. Implementations report interrupts and end of
// input as ErrCancelled.
type Prompter interface {
	// Query asks for a free-text query for the given stage.
	Query(stage State, label string) (string, error)

	// Disambiguate presents ranked candidates, numbered from 1, and
	// returns the user's selection.
	Disambiguate(stage State, matches []search.Candidate) (Selection, error)

	// PickProfile chooses among profiles sharing an account and role.
	// The returned index is zero-based; anything out of range cancels.
	PickProfile(profiles []sso.Profile) (int, error)

	// PickRecent offers recently used profiles. It returns a zero-based
	// index, or -1 to fall through to the normal account search.
	PickRecent(recent []sso.Profile) (int, error)
}

// Resolver runs the account, role and profile stages against the
// catalog, applying the shared accept/offer/reject policy at each stage.
// A Resolver is single use.
type Resolver struct {
	catalog  *sso.Catalog
	matcher  *search.Matcher
	prompter Prompter
	logger   *zap.Logger
	state    State
}

// New builds a Resolver. A nil matcher falls back to the default
// weighted-ratio scorer; a nil logger disables logging.
func New(catalog *sso.Catalog, matcher *search.Matcher, prompter Prompter, logger *zap.Logger) *Resolver {
	if matcher == nil {
		matcher = search.NewMatcher(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		catalog:  catalog,
		matcher:  matcher,
		prompter: prompter,
		logger:   logger,
		state:    StateSelectingAccount,
	}
}

// State reports the stage the session is in: StateResolved after a
// successful Resolve, StateCancelled after cancellation, and the stage
// that failed to resolve after a no-match outcome.
func (r *Resolver) State() State {
	return r.state
}

// Resolve runs the session: an optional pick from recent profiles, then
// the account, role and profile stages. recent holds profile names, most
// recent first; names no longer present in the catalog are dropped.
func (r *Resolver) Resolve(recent []string) (*sso.Profile, error) {
	var account, roleSeed string

	if seeds := r.seeds(recent); len(seeds) > 0 {
		idx, err := r.prompter.PickRecent(seeds)
		if err != nil {
			return nil, r.fail(err)
		}
		if idx >= 0 && idx < len(seeds) {
			account = seeds[idx].AccountName
			roleSeed = seeds[idx].RoleName
			r.logger.Info("using recent profile",
				zap.String("profile", seeds[idx].Name),
				zap.String("account", account),
				zap.String("role", roleSeed),
			)
			r.state = StateSelectingRole
		}
	}

	if account == "" {
		resolved, err := r.stage(StateSelectingAccount, "Account name (fuzzy search)", r.catalog.AccountNames(), "")
		if err != nil {
			return nil, r.fail(err)
		}
		account = resolved
		r.state = StateSelectingRole
	}

	role, err := r.stage(StateSelectingRole, "Role name (fuzzy search)", r.catalog.RolesForAccount(account), roleSeed)
	if err != nil {
		return nil, r.fail(err)
	}
	r.state = StateSelectingProfile

	profile, err := r.pickProfile(account, role)
	if err != nil {
		return nil, r.fail(err)
	}

	r.state = StateResolved
	r.logger.Info("profile resolved",
		zap.String("profile", profile.Name),
		zap.String("account", account),
		zap.String("role", role),
	)

	return profile, nil
}

// stage applies the policy shared by the account and role stages: exact
// match first, then a confident best match, then a disambiguation list.
// A non-empty seed replaces the free-text prompt.
func (r *Resolver) stage(s State, label string, candidates []string, seed string) (string, error) {
	if len(candidates) == 0 {
		r.logger.Debug("stage has no candidates", zap.Stringer("stage", s))
		return "", ErrNoMatch
	}

	query := strings.TrimSpace(seed)
	if query == "" {
		input, err := r.prompter.Query(s, label)
		if err != nil {
			return "", err
		}
		query = strings.TrimSpace(input)
		if query == "" {
			return "", ErrCancelled
		}
	}

	r.logger.Debug("stage query",
		zap.Stringer("stage", s),
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
	)

	// An exact name must never lose to a higher-scoring fuzzy artifact
	// from a different candidate.
	for _, c := range candidates {
		if c == query {
			r.logger.Debug("exact match", zap.Stringer("stage", s), zap.String("match", c))
			return c, nil
		}
	}

	if text, score := r.matcher.BestMatch(query, candidates); score > AcceptThreshold {
		r.logger.Info("using best match",
			zap.Stringer("stage", s),
			zap.String("match", text),
			zap.Int("score", score),
		)
		return text, nil
	}

	matches := r.matcher.Rank(query, candidates, DisambiguationLimit)
	if len(matches) == 0 {
		r.logger.Info("no match",
			zap.Stringer("stage", s),
			zap.String("query", query),
		)
		return "", ErrNoMatch
	}

	return r.disambiguate(s, matches)
}

// disambiguate resolves a ranked candidate list through the prompter:
// a 1-based index picks directly, any other text re-queries the ranked
// subset. Everything else cancels the attempt rather than looping.
func (r *Resolver) disambiguate(s State, matches []search.Candidate) (string, error) {
	sel, err := r.prompter.Disambiguate(s, matches)
	if err != nil {
		return "", err
	}

	if sel.Query != "" {
		subset := make([]string, len(matches))
		for i, m := range matches {
			subset[i] = m.Text
		}

		text, score := r.matcher.BestMatch(sel.Query, subset)
		if score > NarrowedAcceptThreshold {
			r.logger.Info("using refined match",
				zap.Stringer("stage", s),
				zap.String("match", text),
				zap.Int("score", score),
			)
			return text, nil
		}

		r.logger.Debug("refined query rejected",
			zap.Stringer("stage", s),
			zap.String("query", sel.Query),
			zap.Int("score", score),
		)
		return "", ErrCancelled
	}

	if sel.Index < 1 || sel.Index > len(matches) {
		r.logger.Debug("selection out of range",
			zap.Stringer("stage", s),
			zap.Int("index", sel.Index),
			zap.Int("matches", len(matches)),
		)
		return "", ErrCancelled
	}

	return matches[sel.Index-1].Text, nil
}

func (r *Resolver) pickProfile(account, role string) (*sso.Profile, error) {
	profiles := r.catalog.ProfilesFor(account, role)
	switch len(profiles) {
	case 0:
		// Cannot happen when account and role both came from the
		// catalog; surfaces as a no-result either way.
		return nil, ErrNoProfile
	case 1:
		return &profiles[0], nil
	}

	idx, err := r.prompter.PickProfile(profiles)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(profiles) {
		r.logger.Debug("profile selection out of range",
			zap.Int("index", idx),
			zap.Int("profiles", len(profiles)),
		)
		return nil, ErrCancelled
	}

	return &profiles[idx], nil
}

// seeds maps recent profile names through the catalog, dropping names
// that no longer exist, capped at MaxSeeds.
func (r *Resolver) seeds(recent []string) []sso.Profile {
	var seeds []sso.Profile
	for _, name := range recent {
		p, ok := r.catalog.ByName(name)
		if !ok {
			continue
		}
		seeds = append(seeds, p)
		if len(seeds) == MaxSeeds {
			break
		}
	}

	return seeds
}

func (r *Resolver) fail(err error) error {
	if errors.Is(err, ErrCancelled) {
		r.state = StateCancelled
	}
	return err
}
