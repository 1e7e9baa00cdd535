package client

import (
	"regexp"
	"runtime"
)

// Platform describes the environment rules are evaluated against, using
// Mojang's OS naming ("linux", "windows", "osx").
type Platform struct {
	OS      string
	Arch    string // "x86", "x64", "arm64"
	Version string // OS version, matched against rule version patterns
}

// CurrentPlatform returns the platform of the running process.
func CurrentPlatform() Platform {
	osName := runtime.GOOS
	if osName == "darwin" {
		osName = "osx"
	}
	arch := runtime.GOARCH
	switch runtime.GOARCH {
	case "amd64":
		arch = "x64"
	case "386":
		arch = "x86"
	}
	return Platform{OS: osName, Arch: arch}
}

// GameRule guards a conditional game argument on launcher feature flags.
type GameRule struct {
	Action   string // "allow" or "disallow"
	Features map[string]bool
}

// JVMRule guards a conditional JVM argument on the operating system.
type JVMRule struct {
	Action string
	OS     OSFilter
}

// LibraryRule guards a library on the operating system. A rule without an
// OS filter matches every platform.
type LibraryRule struct {
	Action string
	OS     *OSFilter `model:"optional"`
}

// OSFilter narrows a rule to an operating system. Unset fields match
// anything; Version is a regular expression.
type OSFilter struct {
	Name    *string `model:"optional"`
	Version *string `model:"optional"`
	Arch    *string `model:"optional"`
}

// Matches reports whether the filter accepts the platform.
func (f OSFilter) Matches(p Platform) bool {
	if f.Name != nil && *f.Name != p.OS {
		return false
	}
	if f.Arch != nil && *f.Arch != p.Arch {
		return false
	}
	if f.Version != nil {
		ok, err := regexp.MatchString(*f.Version, p.Version)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// Matches reports whether every feature the rule names has the given
// state.
func (r GameRule) Matches(features map[string]bool) bool {
	for name, want := range r.Features {
		if features[name] != want {
			return false
		}
	}
	return true
}

// Matches reports whether the rule's OS filter accepts the platform.
func (r JVMRule) Matches(p Platform) bool {
	return r.OS.Matches(p)
}

// Matches reports whether the rule accepts the platform.
func (r LibraryRule) Matches(p Platform) bool {
	return r.OS == nil || r.OS.Matches(p)
}

// AppliesTo evaluates the library's rules against a platform. Rules apply
// in order and the last matching rule's action wins; a library with no
// rules always applies.
func (l *Library) AppliesTo(p Platform) bool {
	if len(l.Rules) == 0 {
		return true
	}
	allowed := false
	for _, rule := range l.Rules {
		if rule.Matches(p) {
			allowed = rule.Action == "allow"
		}
	}
	return allowed
}

func gameRulesAllow(rules []GameRule, features map[string]bool) bool {
	allowed := false
	for _, r := range rules {
		if r.Matches(features) {
			allowed = r.Action == "allow"
		}
	}
	return allowed
}

func jvmRulesAllow(rules []JVMRule, p Platform) bool {
	allowed := false
	for _, r := range rules {
		if r.Matches(p) {
			allowed = r.Action == "allow"
		}
	}
	return allowed
}
