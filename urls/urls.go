// Package urls builds the well-known locations of Mojang's launcher
// metadata: version manifests, package JSON files, and content-addressed
// resource files. All builders are pure functions over their inputs.
package urls

import "fmt"

const (
	pistonMetaHost = "https://piston-meta.mojang.com"
	resourcesHost  = "https://resources.download.minecraft.net"
)

// PackageURL returns the location of a hashed package file under the v1
// packages API.
func PackageURL(hash, file string) string {
	return PackageURLVersion(hash, file, 1)
}

// PackageURLVersion is PackageURL for an explicit API version. The hash is
// interpolated as-is; supplying a malformed hash yields a well-formed URL
// that points at nothing.
func PackageURLVersion(hash, file string, apiVersion int) string {
	return fmt.Sprintf("%s/v%d/packages/%s/%s", pistonMetaHost, apiVersion, hash, file)
}

// ResourceURL returns the content-addressed location of a resource file.
// The bucket prefix is the first two characters of the hash, so a hash
// shorter than two characters has no defined location and is an error.
func ResourceURL(hash string) (string, error) {
	if len(hash) < 2 {
		return "", fmt.Errorf("resource hash %q is shorter than two characters", hash)
	}
	return fmt.Sprintf("%s/%s/%s", resourcesHost, hash[:2], hash), nil
}

// VersionManifestURL returns the manifest location for a manifest file
// version: version_manifest.json for 1, version_manifest_v{n}.json for any
// other value, following the upstream naming scheme.
func VersionManifestURL(fileVersion int) string {
	if fileVersion == 1 {
		return pistonMetaHost + "/mc/game/version_manifest.json"
	}
	return fmt.Sprintf("%s/mc/game/version_manifest_v%d.json", pistonMetaHost, fileVersion)
}
