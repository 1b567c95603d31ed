package openid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArguments(t *testing.T) {
	testCases := []struct {
		name     string
		have     string
		expected Arguments
	}{
		{
			"ShouldReturnNilForEmptyString",
			"",
			nil,
		},
		{
			"ShouldReturnNilForWhitespaceOnly",
			" \t ",
			nil,
		},
		{
			"ShouldSplitSingleValue",
			"openid",
			Arguments{"openid"},
		},
		{
			"ShouldCollapseRunsOfWhitespace",
			"openid \t profile",
			Arguments{"openid", "profile"},
		},
		{
			"ShouldDeduplicateByFirstOccurrence",
			"openid openid profile",
			Arguments{"openid", "profile"},
		},
		{
			"ShouldPreserveOrder",
			"profile openid email",
			Arguments{"profile", "openid", "email"},
		},
		{
			"ShouldBeCaseSensitive",
			"openid OPENID profile",
			Arguments{"openid", "OPENID", "profile"},
		},
		{
			"ShouldIgnoreLeadingAndTrailingWhitespace",
			"  openid profile  ",
			Arguments{"openid", "profile"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseArguments(tc.have))
		})
	}
}

func TestArgumentsHas(t *testing.T) {
	args := Arguments{"openid", "profile"}

	assert.True(t, args.Has("openid"))
	assert.True(t, args.Has("openid", "profile"))
	assert.False(t, args.Has("openid", "email"))
	assert.False(t, args.Has("OPENID"))
	assert.True(t, args.HasOneOf("email", "profile"))
	assert.False(t, args.HasOneOf("email", "address"))
}

func TestArgumentsExactOne(t *testing.T) {
	assert.True(t, Arguments{"code"}.ExactOne("code"))
	assert.False(t, Arguments{"code", "id_token"}.ExactOne("code"))
	assert.False(t, Arguments{"CODE"}.ExactOne("code"))
	assert.False(t, Arguments(nil).ExactOne("code"))
}

func TestArgumentsMatches(t *testing.T) {
	assert.True(t, Arguments{"id_token", "code"}.Matches("code", "id_token"))
	assert.False(t, Arguments{"id_token", "code"}.Matches("code"))
	assert.False(t, Arguments{"code"}.Matches("code", "code"))
	assert.True(t, Arguments{"id_token", "code"}.MatchesExact("id_token", "code"))
	assert.False(t, Arguments{"id_token", "code"}.MatchesExact("code", "id_token"))
}

func TestArgumentsString(t *testing.T) {
	assert.Equal(t, "openid profile", Arguments{"openid", "profile"}.String())
	assert.Equal(t, "", Arguments(nil).String())
}
