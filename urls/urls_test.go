package urls

import "testing"

func TestPackageURL(t *testing.T) {
	got := PackageURL("9ead053b2dea80522c19f1f0e2dcb437d3392d7f", "1.20.2.json")
	want := "https://piston-meta.mojang.com/v1/packages/9ead053b2dea80522c19f1f0e2dcb437d3392d7f/1.20.2.json"
	if got != want {
		t.Errorf("PackageURL = %q, want %q", got, want)
	}
}

func TestPackageURLVersion(t *testing.T) {
	got := PackageURLVersion("abc", "x.json", 2)
	want := "https://piston-meta.mojang.com/v2/packages/abc/x.json"
	if got != want {
		t.Errorf("PackageURLVersion = %q, want %q", got, want)
	}
}

func TestResourceURL(t *testing.T) {
	got, err := ResourceURL("a4b8e10ef85fede15e62686724205f18cd819c77")
	if err != nil {
		t.Fatalf("ResourceURL returned error: %v", err)
	}
	want := "https://resources.download.minecraft.net/a4/a4b8e10ef85fede15e62686724205f18cd819c77"
	if got != want {
		t.Errorf("ResourceURL = %q, want %q", got, want)
	}
}

func TestResourceURLShortHash(t *testing.T) {
	for _, hash := range []string{"", "a"} {
		if _, err := ResourceURL(hash); err == nil {
			t.Errorf("ResourceURL(%q) should fail", hash)
		}
	}
}

func TestVersionManifestURL(t *testing.T) {
	tests := []struct {
		fileVersion int
		want        string
	}{
		{1, "https://piston-meta.mojang.com/mc/game/version_manifest.json"},
		{2, "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"},
		{3, "https://piston-meta.mojang.com/mc/game/version_manifest_v3.json"},
	}

	for _, tt := range tests {
		if got := VersionManifestURL(tt.fileVersion); got != tt.want {
			t.Errorf("VersionManifestURL(%d) = %q, want %q", tt.fileVersion, got, tt.want)
		}
	}
}
