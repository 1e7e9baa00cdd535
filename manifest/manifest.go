// Package manifest models Mojang's launcher version manifest, the index
// document listing every known game version. Two wire formats exist: v1,
// and v2 which additionally carries each version's content hash and
// compliance level. The two schemas are strict and mutually exclusive; a
// v1 document with v2 keys fails to parse and vice versa.
package manifest

import (
	"context"
	"time"

	"github.com/quasar/pistonmeta/fetch"
	"github.com/quasar/pistonmeta/schema"
)

// Latest names the most recent release and snapshot version ids.
type Latest struct {
	Release  string
	Snapshot string
}

// VersionV1 is one version entry of a v1 manifest.
type VersionV1 struct {
	ID          string
	Type        string // usually "release" or "snapshot"
	URL         string `validate:"url"`
	Time        time.Time
	ReleaseTime time.Time
}

// VersionV2 is one version entry of a v2 manifest. It extends the v1 entry
// with the content hash of the linked client descriptor and the version's
// compliance level.
type VersionV2 struct {
	ID              string
	Type            string
	URL             string `validate:"url"`
	Time            time.Time
	ReleaseTime     time.Time
	SHA1            string `validate:"len=40,hexadecimal"`
	ComplianceLevel int    `validate:"gte=0"`
}

// VersionManifestV1 is the v1 version manifest. Entry order is significant:
// index 0 is the most recently listed version.
type VersionManifestV1 struct {
	Latest   Latest
	Versions []VersionV1 `validate:"dive"`
}

// VersionManifestV2 is the v2 version manifest.
type VersionManifestV2 struct {
	Latest   Latest
	Versions []VersionV2 `validate:"dive"`
}

// ParseV1 validates data against the v1 manifest schema.
func ParseV1(data []byte) (*VersionManifestV1, error) {
	var m VersionManifestV1
	if err := schema.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseV2 validates data against the v2 manifest schema.
func ParseV2(data []byte) (*VersionManifestV2, error) {
	var m VersionManifestV2
	if err := schema.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// FetchV1 retrieves url through f and parses the result as a v1 manifest.
// Transport failures propagate unchanged.
func FetchV1(ctx context.Context, f fetch.Fetcher, url string) (*VersionManifestV1, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseV1(data)
}

// FetchV2 retrieves url through f and parses the result as a v2 manifest.
func FetchV2(ctx context.Context, f fetch.Fetcher, url string) (*VersionManifestV2, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseV2(data)
}

// Encode re-serializes the manifest.
func (m *VersionManifestV1) Encode(opts schema.Options) ([]byte, error) {
	return schema.Marshal(m, opts)
}

// Encode re-serializes the manifest.
func (m *VersionManifestV2) Encode(opts schema.Options) ([]byte, error) {
	return schema.Marshal(m, opts)
}

// Find returns the entry with the given version id.
func (m *VersionManifestV1) Find(id string) (*VersionV1, bool) {
	for i := range m.Versions {
		if m.Versions[i].ID == id {
			return &m.Versions[i], true
		}
	}
	return nil, false
}

// Find returns the entry with the given version id.
func (m *VersionManifestV2) Find(id string) (*VersionV2, bool) {
	for i := range m.Versions {
		if m.Versions[i].ID == id {
			return &m.Versions[i], true
		}
	}
	return nil, false
}

// LatestRelease returns the entry named by latest.release.
func (m *VersionManifestV2) LatestRelease() (*VersionV2, bool) {
	return m.Find(m.Latest.Release)
}

// LatestSnapshot returns the entry named by latest.snapshot.
func (m *VersionManifestV2) LatestSnapshot() (*VersionV2, bool) {
	return m.Find(m.Latest.Snapshot)
}
