package access

import (
	"testing"

	"jobunya-carrental-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func customerSession() *domain.Session {
	return &domain.Session{
		Token: "a3f9c2e1d4b5a6978812f3e4d5c6b7a8990011aa",
		User:  domain.User{ID: 7, Role: domain.RoleCustomer},
	}
}

func adminSession() *domain.Session {
	return &domain.Session{
		Token: "ffee99887766554433221100aabbccddeeff0011",
		User:  domain.User{ID: 1, Role: domain.RoleAdmin},
	}
}

func TestDecide(t *testing.T) {
	t.Run("NilSessionRedirectsToLogin", func(t *testing.T) {
		d := Decide(nil, domain.RoleCustomer)
		assert.False(t, d.Allow)
		assert.Equal(t, LoginPath, d.RedirectPath)
	})

	t.Run("EmptyTokenRedirectsToLogin", func(t *testing.T) {
		d := Decide(&domain.Session{User: domain.User{ID: 7, Role: domain.RoleCustomer}}, domain.RoleCustomer)
		assert.False(t, d.Allow)
		assert.Equal(t, LoginPath, d.RedirectPath)
	})

	t.Run("CustomerOnAdminRouteRedirectsHome", func(t *testing.T) {
		d := Decide(customerSession(), domain.RoleAdmin)
		assert.False(t, d.Allow)
		assert.Equal(t, HomePath, d.RedirectPath)
	})

	t.Run("AdminOnCustomerRouteRedirectsHome", func(t *testing.T) {
		d := Decide(adminSession(), domain.RoleCustomer)
		assert.False(t, d.Allow)
		assert.Equal(t, HomePath, d.RedirectPath)
	})

	t.Run("MatchingRoleAllows", func(t *testing.T) {
		assert.True(t, Decide(customerSession(), domain.RoleCustomer).Allow)
		assert.True(t, Decide(adminSession(), domain.RoleAdmin).Allow)
	})

	t.Run("EmptyRequirementAllowsAnyAuthenticated", func(t *testing.T) {
		assert.True(t, Decide(customerSession(), "").Allow)
		assert.True(t, Decide(adminSession(), "").Allow)
	})

	t.Run("EmptyRequirementStillRejectsAnonymous", func(t *testing.T) {
		d := Decide(nil, "")
		assert.False(t, d.Allow)
		assert.Equal(t, LoginPath, d.RedirectPath)
	})

	// Every input lands in exactly one of the three outcomes; an allow never
	// carries a redirect path and vice versa.
	t.Run("OutcomesAreExclusive", func(t *testing.T) {
		sessions := []*domain.Session{nil, {}, customerSession(), adminSession()}
		roles := []domain.Role{"", domain.RoleCustomer, domain.RoleAdmin}
		for _, sess := range sessions {
			for _, role := range roles {
				d := Decide(sess, role)
				if d.Allow {
					assert.Empty(t, d.RedirectPath)
				} else {
					assert.Contains(t, []string{LoginPath, HomePath}, d.RedirectPath)
				}
			}
		}
	})
}
