package models

import (
	"errors"
	"testing"
	"time"

	"github.com/ghuser/stuffkeeper/services/stuff/domain"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Scope
		wantErr bool
	}{
		{"empty means all", "", ScopeAll, false},
		{"active", "active", ScopeActive, false},
		{"archived", "archived", ScopeArchived, false},
		{"expiring_soon", "expiring_soon", ScopeExpiringSoon, false},
		{"expired", "expired", ScopeExpired, false},
		{"unknown", "stale", ScopeAll, true},
		{"case sensitive", "Active", ScopeAll, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScope(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScope(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrUnknownScope) {
				t.Fatalf("expected ErrUnknownScope, got %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseScope(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestScope_Matches(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	tests := []struct {
		name  string
		scope Scope
		stuff Stuff
		want  bool
	}{
		{"all matches active", ScopeAll, Stuff{}, true},
		{"all matches archived", ScopeAll, Stuff{Archived: true}, true},

		{"active matches unarchived", ScopeActive, Stuff{}, true},
		{"active rejects archived", ScopeActive, Stuff{Archived: true}, false},

		{"archived matches archived", ScopeArchived, Stuff{Archived: true}, true},
		{"archived rejects unarchived", ScopeArchived, Stuff{}, false},

		{"expiring_soon: 3 days out is in", ScopeExpiringSoon, Stuff{ExpirationDate: at(3 * 24 * time.Hour)}, true},
		{"expiring_soon: already expired is in", ScopeExpiringSoon, Stuff{ExpirationDate: at(-24 * time.Hour)}, true},
		{"expiring_soon: exactly 7 days out is out", ScopeExpiringSoon, Stuff{ExpirationDate: at(ExpiringSoonWindow)}, false},
		{"expiring_soon: 30 days out is out", ScopeExpiringSoon, Stuff{ExpirationDate: at(30 * 24 * time.Hour)}, false},
		{"expiring_soon: no date is out", ScopeExpiringSoon, Stuff{}, false},

		{"expired: yesterday is in", ScopeExpired, Stuff{ExpirationDate: at(-24 * time.Hour)}, true},
		{"expired: exactly now is out", ScopeExpired, Stuff{ExpirationDate: at(0)}, false},
		{"expired: tomorrow is out", ScopeExpired, Stuff{ExpirationDate: at(24 * time.Hour)}, false},
		{"expired: no date is out", ScopeExpired, Stuff{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.Matches(&tt.stuff, now); got != tt.want {
				t.Fatalf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnit_Allowed(t *testing.T) {
	for _, u := range AllowedUnits() {
		if !u.Allowed() {
			t.Errorf("%q should be allowed", u)
		}
	}
	for _, u := range []Unit{"", "KG", "liters", "stones", "㎏"} {
		if u.Allowed() {
			t.Errorf("%q should not be allowed", u)
		}
	}
}
