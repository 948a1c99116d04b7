package models

import (
	"fmt"
	"time"

	"github.com/ghuser/stuffkeeper/services/stuff/domain"
)

// Scope is a named read-only filter over the stuff collection.
type Scope string

const (
	// ScopeAll applies no filter; it is the zero value.
	ScopeAll Scope = ""

	// ScopeActive selects stuffs with archived = false.
	ScopeActive Scope = "active"

	// ScopeArchived selects stuffs with archived = true.
	ScopeArchived Scope = "archived"

	// ScopeExpiringSoon selects stuffs whose expiration date is set and
	// strictly before now + ExpiringSoonWindow.
	ScopeExpiringSoon Scope = "expiring_soon"

	// ScopeExpired selects stuffs whose expiration date is set and
	// strictly before now.
	ScopeExpired Scope = "expired"
)

// ExpiringSoonWindow is the lookahead used by ScopeExpiringSoon.
const ExpiringSoonWindow = 7 * 24 * time.Hour

// ParseScope maps a query-string scope name to a Scope. The empty string
// parses to ScopeAll; anything else unrecognized is ErrUnknownScope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeAll, ScopeActive, ScopeArchived, ScopeExpiringSoon, ScopeExpired:
		return Scope(s), nil
	}
	return ScopeAll, fmt.Errorf("%w: %q", domain.ErrUnknownScope, s)
}

// Matches reports whether the stuff falls inside the scope as of now.
// The postgres repository applies the equivalent SQL predicate; this form
// backs the in-memory repository and pins the filter semantics in tests.
func (sc Scope) Matches(s *Stuff, now time.Time) bool {
	switch sc {
	case ScopeActive:
		return !s.Archived
	case ScopeArchived:
		return s.Archived
	case ScopeExpiringSoon:
		return s.ExpirationDate != nil && s.ExpirationDate.Before(now.Add(ExpiringSoonWindow))
	case ScopeExpired:
		return s.ExpirationDate != nil && s.ExpirationDate.Before(now)
	default:
		return true
	}
}
