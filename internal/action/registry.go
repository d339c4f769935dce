package action

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Registry holds the actions of one window, in registration order, bound
// to the window's workspace and refresh cascade.
type Registry struct {
	actions   []*Action
	source    DocumentSource
	refresher Refresher
	logger    *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(source DocumentSource, refresher Refresher, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		source:    source,
		refresher: refresher,
		logger:    logger.With("component", "actions"),
	}
}

// Register adds actions and computes their initial enabled state.
// It fails without registering anything if an action already belongs to
// a registry, appears twice in actions, or a shortcut is taken.
func (r *Registry) Register(actions ...*Action) error {
	seen := make(map[string]string)
	for _, a := range r.actions {
		if a.shortcut != "" {
			seen[a.shortcut] = a.label
		}
	}

	batch := make(map[*Action]bool, len(actions))
	for _, a := range actions {
		if a.registry != nil || batch[a] {
			return fmt.Errorf("register %q: %w", a.label, ErrAlreadyRegistered)
		}
		batch[a] = true
		if a.shortcut == "" {
			continue
		}
		if owner, ok := seen[a.shortcut]; ok {
			return fmt.Errorf("register %q: %s used by %q: %w", a.label, a.shortcut, owner, ErrDuplicateShortcut)
		}
		seen[a.shortcut] = a.label
	}

	for _, a := range actions {
		a.registry = r
		a.Refresh()
		r.actions = append(r.actions, a)
	}
	return nil
}

// All returns the registered actions in registration order.
func (r *Registry) All() []*Action {
	return slices.Clone(r.actions)
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.actions)
}

// RefreshAll recomputes every action's enabled state.
func (r *Registry) RefreshAll() {
	for _, a := range r.actions {
		a.Refresh()
	}
}

// Lookup returns the action bound to shortcut.
func (r *Registry) Lookup(shortcut string) (*Action, bool) {
	shortcut = NormalizeShortcut(shortcut)
	if shortcut == "" {
		return nil, false
	}
	for _, a := range r.actions {
		if a.shortcut == shortcut {
			return a, true
		}
	}
	return nil, false
}

// ByLabel returns the action with the given label (case-insensitive).
func (r *Registry) ByLabel(label string) (*Action, bool) {
	for _, a := range r.actions {
		if strings.EqualFold(a.label, label) {
			return a, true
		}
	}
	return nil, false
}

// Trigger executes the action bound to shortcut.
// handled is false if no action uses the shortcut.
func (r *Registry) Trigger(shortcut string) (handled bool, err error) {
	a, ok := r.Lookup(shortcut)
	if !ok {
		return false, nil
	}
	return true, a.Execute()
}

// Rebind changes the shortcut of the action with the given label.
// An empty shortcut removes the binding.
func (r *Registry) Rebind(label, shortcut string) error {
	a, ok := r.ByLabel(label)
	if !ok {
		return fmt.Errorf("rebind %q: %w", label, ErrActionNotFound)
	}

	shortcut = NormalizeShortcut(shortcut)
	if shortcut != "" {
		if other, ok := r.Lookup(shortcut); ok && other != a {
			return fmt.Errorf("rebind %q: %s used by %q: %w", label, shortcut, other.label, ErrDuplicateShortcut)
		}
	}
	a.shortcut = shortcut
	return nil
}

// Match is a palette search result.
type Match struct {
	Action *Action
	// Distance is the edit distance between the query and the closest
	// part of the label; 0 for substring matches.
	Distance int
}

// Find ranks actions by how closely their labels match query, for a
// command palette. Substring matches come first, then labels within
// maxDistance edits of the query. limit <= 0 returns all matches.
func (r *Registry) Find(query string, maxDistance, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []Match
	for _, a := range r.actions {
		label := strings.ToLower(a.label)
		if strings.Contains(label, q) {
			matches = append(matches, Match{Action: a, Distance: 0})
			continue
		}
		if d := labelDistance(label, q); d <= maxDistance {
			matches = append(matches, Match{Action: a, Distance: d})
		}
	}

	// Stable keeps registration order among equal distances.
	slices.SortStableFunc(matches, func(x, y Match) int {
		return x.Distance - y.Distance
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// labelDistance is the smallest edit distance between query and either
// the whole label or any single word of it.
func labelDistance(label, query string) int {
	best := levenshtein.ComputeDistance(label, query)
	for _, word := range strings.Fields(label) {
		if d := levenshtein.ComputeDistance(word, query); d < best {
			best = d
		}
	}
	return best
}
