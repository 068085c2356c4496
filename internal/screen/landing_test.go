package screen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/session"
)

// TestLanding_Mount tests role routing from the root screen
func TestLanding_Mount(t *testing.T) {
	tests := []struct {
		name      string
		role      user.Type
		route     navigation.Route
		selection bool
	}{
		{"no session", "", navigation.RouteIndex, true},
		{"passenger", user.TypePassenger, navigation.RoutePassengerDashboard, false},
		{"driver", user.TypeDriver, navigation.RouteDriver, false},
		{"admin", user.TypeAdmin, navigation.RouteAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.role)
			l := NewLanding(f.deps)
			assert.False(t, l.ShowModeSelection(), "nothing renders before the check")

			l.Mount(context.Background())

			assert.Equal(t, tt.route, f.nav.Current())
			assert.Len(t, f.nav.History(), 1)
			assert.Equal(t, tt.selection, l.ShowModeSelection())
		})
	}
}

// TestLanding_UnknownRole tests that an unknown role is cleared
func TestLanding_UnknownRole(t *testing.T) {
	f := newFixture(t, "")
	f.store.Set(session.KeyAccessToken, "abc")
	f.store.Set(session.KeyUser, `{"id":"9","name":"X","user_type":"ghost"}`)
	l := NewLanding(f.deps)

	res := l.Mount(context.Background())

	assert.Equal(t, navigation.StateInvalidCleared, res.State)
	assert.True(t, l.ShowModeSelection())
	_, ok := f.store.Get(session.KeyUser)
	assert.False(t, ok)
}

// TestLanding_ModeSelection tests the two entry points
func TestLanding_ModeSelection(t *testing.T) {
	f := newFixture(t, "")
	l := NewLanding(f.deps)
	l.Mount(context.Background())

	l.ChoosePassenger()
	assert.Equal(t, navigation.RoutePassenger, f.nav.Current())

	p := NewPassengerLanding(f.deps)
	p.Mount(context.Background())
	require.True(t, p.ShowAuthOptions())
	p.OpenRegister()
	assert.Equal(t, navigation.RouteRegister, f.nav.Current())

	require.True(t, f.nav.Back())
	require.True(t, f.nav.Back())
	l.ChooseAdmin()
	assert.Equal(t, navigation.RouteLogin, f.nav.Current())
}

// TestPassengerLanding_SignedIn tests that a stored session skips the options
func TestPassengerLanding_SignedIn(t *testing.T) {
	f := newFixture(t, user.TypePassenger)
	f.nav.Push(navigation.RoutePassenger)
	p := NewPassengerLanding(f.deps)

	p.Mount(context.Background())

	assert.False(t, p.ShowAuthOptions())
	assert.Equal(t, []navigation.Route{navigation.RouteIndex, navigation.RoutePassengerDashboard}, f.nav.History())
}
