package openid

import (
	"strings"
)

// Arguments holds the individual values of a space-delimited request parameter
// such as scope, acr_values or response_type.
type Arguments []string

// ParseArguments splits a raw space-delimited parameter value into Arguments.
// Splitting collapses runs of whitespace, preserves the original order and
// drops duplicate values by first occurrence. Comparison is case-sensitive, so
// "openid OPENID profile" yields three values.
func ParseArguments(raw string) Arguments {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(fields))
	args := make(Arguments, 0, len(fields))

	for _, field := range fields {
		if _, ok := seen[field]; ok {
			continue
		}

		seen[field] = struct{}{}
		args = append(args, field)
	}

	return args
}

// Has checks, in a case-sensitive manner, that all of the items provided exist
// in arguments.
func (r Arguments) Has(items ...string) bool {
	for _, item := range items {
		if !StringInSlice(item, r) {
			return false
		}
	}

	return true
}

// HasOneOf checks, in a case-sensitive manner, that at least one of the items
// provided exists in arguments.
func (r Arguments) HasOneOf(items ...string) bool {
	for _, item := range items {
		if StringInSlice(item, r) {
			return true
		}
	}

	return false
}

// ExactOne checks, by string case, that a single argument equals the provided
// string.
func (r Arguments) ExactOne(name string) bool {
	return len(r) == 1 && r[0] == name
}

// Matches performs a case-sensitive, out-of-order check that the items
// provided exist and equal all of the args in arguments.
func (r Arguments) Matches(items ...string) bool {
	if len(r) != len(items) {
		return false
	}

	found := make(map[string]bool)
	for _, item := range items {
		if !StringInSlice(item, r) {
			return false
		}
		found[item] = true
	}

	return len(found) == len(r)
}

// MatchesExact checks, by order and string case, that the items provided equal
// those in arguments.
func (r Arguments) MatchesExact(items ...string) bool {
	if len(r) != len(items) {
		return false
	}

	for i, item := range items {
		if item != r[i] {
			return false
		}
	}

	return true
}

// String joins the arguments back into their space-delimited wire form.
func (r Arguments) String() string {
	return strings.Join(r, " ")
}

// StringInSlice returns true if needle exists in haystack using an exact,
// case-sensitive comparison.
func StringInSlice(needle string, haystack []string) bool {
	for _, b := range haystack {
		if b == needle {
			return true
		}
	}

	return false
}

// RemoveEmpty returns args with zero-length values removed.
func RemoveEmpty(args []string) (ret []string) {
	for _, v := range args {
		v = strings.TrimSpace(v)
		if v != "" {
			ret = append(ret, v)
		}
	}

	return
}
