package schema

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ID", "id"},
		{"URL", "url"},
		{"SHA1", "sha1"},
		{"JVM", "jvm"},
		{"OS", "os"},
		{"Assets", "assets"},
		{"AssetIndex", "asset_index"},
		{"TotalSize", "total_size"},
		{"ReleaseTime", "release_time"},
		{"ClientMappings", "client_mappings"},
		{"WindowsServer", "windows_server"},
		{"MinimumLauncherVersion", "minimum_launcher_version"},
		{"ComplianceLevel", "compliance_level"},
		{"MajorVersion", "major_version"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := toSnake(tt.in); got != tt.want {
				t.Errorf("toSnake(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToCamel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"id", "id"},
		{"sha1", "sha1"},
		{"release_time", "releaseTime"},
		{"compliance_level", "complianceLevel"},
		{"client_mappings", "clientMappings"},
		{"minimum_launcher_version", "minimumLauncherVersion"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := toCamel(tt.in); got != tt.want {
				t.Errorf("toCamel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProperty_NameMappingRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	word := gen.SliceOfN(4, gen.AlphaLowerChar()).Map(func(rs []rune) string {
		return string(rs)
	})

	properties.Property("snake -> camel -> snake is the identity", prop.ForAll(
		func(parts []string) bool {
			name := strings.Join(parts, "_")
			return toSnake(toCamel(name)) == name
		},
		gen.SliceOfN(3, word),
	))

	properties.Property("wire names never contain underscores", prop.ForAll(
		func(parts []string) bool {
			return !strings.Contains(toCamel(strings.Join(parts, "_")), "_")
		},
		gen.SliceOfN(3, word),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
