package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Research and Development": "research-and-development",
		"  Public Relations  ":     "public-relations",
		"Media & Creative":         "media-creative",
		"IT--Support":              "it-support",
		"Human_Resources":          "human_resources",
		"":                         "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestAccountHelpers(t *testing.T) {
	acc := &Account{Role: RoleSuperAdmin}
	assert.True(t, acc.IsAdmin())
	assert.False(t, acc.HasPendingOTP())
	assert.False(t, (&Account{Role: RoleUser}).IsAdmin())
	assert.False(t, Role("ROOT").Valid())
	assert.True(t, ForumPublished.Valid())
	assert.False(t, MemberRole("CHAIR").Valid())
}
