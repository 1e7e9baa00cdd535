package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestOSFilterMatches(t *testing.T) {
	tests := []struct {
		name     string
		filter   OSFilter
		platform Platform
		want     bool
	}{
		{"empty filter matches anything", OSFilter{}, Platform{OS: "linux", Arch: "x64"}, true},
		{"name match", OSFilter{Name: strptr("osx")}, Platform{OS: "osx", Arch: "arm64"}, true},
		{"name mismatch", OSFilter{Name: strptr("osx")}, Platform{OS: "linux", Arch: "x64"}, false},
		{"arch match", OSFilter{Arch: strptr("x86")}, Platform{OS: "windows", Arch: "x86"}, true},
		{"arch mismatch", OSFilter{Arch: strptr("x86")}, Platform{OS: "windows", Arch: "x64"}, false},
		{"version pattern match", OSFilter{Name: strptr("windows"), Version: strptr(`^10\.`)}, Platform{OS: "windows", Arch: "x64", Version: "10.0.19045"}, true},
		{"version pattern mismatch", OSFilter{Name: strptr("windows"), Version: strptr(`^10\.`)}, Platform{OS: "windows", Arch: "x64", Version: "6.1.7601"}, false},
		{"version pattern with empty platform version", OSFilter{Version: strptr(`^10\.`)}, Platform{OS: "windows", Arch: "x64"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.platform))
		})
	}
}

func TestGameRuleMatches(t *testing.T) {
	rule := GameRule{Action: "allow", Features: map[string]bool{"is_demo_user": true}}

	assert.True(t, rule.Matches(map[string]bool{"is_demo_user": true}))
	assert.False(t, rule.Matches(map[string]bool{"is_demo_user": false}))
	assert.False(t, rule.Matches(nil))

	unconditional := GameRule{Action: "allow"}
	assert.True(t, unconditional.Matches(nil))
}

func TestLibraryAppliesTo(t *testing.T) {
	linux := Platform{OS: "linux", Arch: "x64"}
	osx := Platform{OS: "osx", Arch: "arm64"}

	tests := []struct {
		name  string
		rules []LibraryRule
		p     Platform
		want  bool
	}{
		{"no rules always applies", nil, linux, true},
		{"allow everywhere", []LibraryRule{{Action: "allow"}}, linux, true},
		{"allow only osx, on osx", []LibraryRule{{Action: "allow", OS: &OSFilter{Name: strptr("osx")}}}, osx, true},
		{"allow only osx, on linux", []LibraryRule{{Action: "allow", OS: &OSFilter{Name: strptr("osx")}}}, linux, false},
		{
			"allow everywhere except osx, on osx",
			[]LibraryRule{{Action: "allow"}, {Action: "disallow", OS: &OSFilter{Name: strptr("osx")}}},
			osx,
			false,
		},
		{
			"allow everywhere except osx, on linux",
			[]LibraryRule{{Action: "allow"}, {Action: "disallow", OS: &OSFilter{Name: strptr("osx")}}},
			linux,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := Library{Rules: tt.rules}
			assert.Equal(t, tt.want, lib.AppliesTo(tt.p))
		})
	}
}

func TestCurrentPlatform(t *testing.T) {
	p := CurrentPlatform()
	assert.NotEmpty(t, p.OS)
	assert.NotEqual(t, "darwin", p.OS, "Go OS names are mapped to Mojang names")
	assert.NotEqual(t, "amd64", p.Arch)
}
