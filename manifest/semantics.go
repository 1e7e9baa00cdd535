package manifest

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(manifestV1StructLevel, VersionManifestV1{})
	v.RegisterStructValidation(manifestV2StructLevel, VersionManifestV2{})
	return v
}

// Validate checks the semantic constraints that structural parsing leaves
// alone: well-formed entry URLs, hash shapes, and that latest.release and
// latest.snapshot name entries present in versions. A document can parse
// cleanly and still fail here.
func (m *VersionManifestV1) Validate() error {
	return validate.Struct(m)
}

// Validate checks the manifest's semantic constraints. See
// VersionManifestV1.Validate.
func (m *VersionManifestV2) Validate() error {
	return validate.Struct(m)
}

func manifestV1StructLevel(sl validator.StructLevel) {
	m := sl.Current().Interface().(VersionManifestV1)
	ids := make(map[string]bool, len(m.Versions))
	for _, v := range m.Versions {
		ids[v.ID] = true
	}
	reportUnknownLatest(sl, m.Latest, ids)
}

func manifestV2StructLevel(sl validator.StructLevel) {
	m := sl.Current().Interface().(VersionManifestV2)
	ids := make(map[string]bool, len(m.Versions))
	for _, v := range m.Versions {
		ids[v.ID] = true
	}
	reportUnknownLatest(sl, m.Latest, ids)
}

func reportUnknownLatest(sl validator.StructLevel, latest Latest, ids map[string]bool) {
	if !ids[latest.Release] {
		sl.ReportError(latest.Release, "Latest.Release", "Release", "knownversion", "")
	}
	if !ids[latest.Snapshot] {
		sl.ReportError(latest.Snapshot, "Latest.Snapshot", "Snapshot", "knownversion", "")
	}
}

// CompareReleases orders two release ids such as "1.20.2" and "1.13".
// Snapshot ids do not follow the release numbering and are rejected.
func CompareReleases(a, b string) (int, error) {
	va, err := semver.NewVersion(a)
	if err != nil {
		return 0, fmt.Errorf("parsing release id %q: %w", a, err)
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return 0, fmt.Errorf("parsing release id %q: %w", b, err)
	}
	return va.Compare(vb), nil
}

// ReleasesSince returns the release-type entries strictly newer than the
// given release id, in manifest order. Entries whose ids do not parse as
// release numbers are skipped.
func (m *VersionManifestV2) ReleasesSince(id string) ([]VersionV2, error) {
	base, err := semver.NewVersion(id)
	if err != nil {
		return nil, fmt.Errorf("parsing release id %q: %w", id, err)
	}
	var out []VersionV2
	for _, v := range m.Versions {
		if v.Type != "release" {
			continue
		}
		sv, err := semver.NewVersion(v.ID)
		if err != nil {
			continue
		}
		if sv.GreaterThan(base) {
			out = append(out, v)
		}
	}
	return out, nil
}
