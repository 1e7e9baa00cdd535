// Package client models the per-version client descriptor, the document
// that accompanies client.jar and describes how to assemble and launch one
// game version: its libraries, arguments, downloads, asset index, and log
// configuration.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/quasar/pistonmeta/fetch"
	"github.com/quasar/pistonmeta/schema"
)

// ClientV1 is a version's full launch metadata.
type ClientV1 struct {
	Arguments              *Arguments `model:"optional"`
	AssetIndex             AssetIndex
	Assets                 string
	ComplianceLevel        int `validate:"gte=0"`
	Downloads              Downloads
	ID                     string
	JavaVersion            JavaVersion
	Libraries              []Library `validate:"dive"`
	Logging                *Logging  `model:"optional"`
	MainClass              string
	MinecraftArguments     *string `model:"optional"`
	MinimumLauncherVersion int
	ReleaseTime            string
	Time                   string
	Type                   string
}

// AssetIndex locates the version's assets file.
type AssetIndex struct {
	ID        string
	SHA1      string `validate:"len=40,hexadecimal"`
	Size      int64  `validate:"gte=0"`
	TotalSize int64  `validate:"gte=0"`
	URL       string `validate:"url"`
}

// Download locates one downloadable file.
type Download struct {
	SHA1 string `validate:"len=40,hexadecimal"`
	Size int64  `validate:"gte=0"`
	URL  string `validate:"url"`
}

// Downloads lists the version's primary artifacts. Client and server are
// always present; the obfuscation maps and the legacy Windows server exist
// only for some versions.
type Downloads struct {
	Client         Download
	ClientMappings *Download `model:"optional"`
	Server         Download
	ServerMappings *Download `model:"optional"`
	WindowsServer  *Download `model:"optional"`
}

// JavaVersion names the Java runtime required by the version.
type JavaVersion struct {
	Component    string
	MajorVersion int `validate:"gte=0"`
}

// Library is one dependency of the version.
type Library struct {
	Downloads LibraryDownloads
	Name      string            // maven coordinates, "group:artifact:version"
	URL       *string           `model:"optional" validate:"omitempty,url"`
	Natives   map[string]string `model:"optional"`
	Extract   *Extract          `model:"optional"`
	Rules     []LibraryRule     `model:"optional"`
}

// LibraryDownloads carries the library's main artifact and any classified
// variants, keyed by classifier.
type LibraryDownloads struct {
	Artifact    *Artifact           `model:"optional"`
	Classifiers map[string]Artifact `model:"optional" validate:"dive"`
}

// Artifact locates one library file, with its storage path relative to the
// libraries directory.
type Artifact struct {
	Path string
	SHA1 string `validate:"len=40,hexadecimal"`
	Size int64  `validate:"gte=0"`
	URL  string `validate:"url"`
}

// Extract lists archive paths excluded when the library is unpacked.
type Extract struct {
	Exclude []string
}

// Logging carries the version's Log4j configuration.
type Logging struct {
	Client LogClient
}

// LogClient is the client-side logging setup.
type LogClient struct {
	Argument string // JVM argument template, e.g. "-Dlog4j.configurationFile=${path}"
	File     LogFile
	Type     string
}

// LogFile locates the log configuration file itself.
type LogFile struct {
	ID   string
	SHA1 string `validate:"len=40,hexadecimal"`
	Size int64  `validate:"gte=0"`
	URL  string `validate:"url"`
}

// Parse validates data against the v1 client descriptor schema.
func Parse(data []byte) (*ClientV1, error) {
	var c ClientV1
	if err := schema.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Fetch retrieves url through f and parses the result as a client
// descriptor. Transport failures propagate unchanged.
func Fetch(ctx context.Context, f fetch.Fetcher, url string) (*ClientV1, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Encode re-serializes the descriptor.
func (c *ClientV1) Encode(opts schema.Options) ([]byte, error) {
	return schema.Marshal(c, opts)
}

// GameArgumentsFor resolves the flat game argument list for a feature set,
// falling back to the legacy space-separated minecraftArguments form used
// by descriptors older than 1.13.
func (c *ClientV1) GameArgumentsFor(features map[string]bool) []string {
	if c.Arguments != nil {
		return c.Arguments.ResolveGame(features)
	}
	if c.MinecraftArguments != nil {
		return strings.Fields(*c.MinecraftArguments)
	}
	return nil
}

// ActiveLibraries returns the libraries whose rules allow the platform.
func (c *ClientV1) ActiveLibraries(p Platform) []Library {
	var out []Library
	for _, lib := range c.Libraries {
		if lib.AppliesTo(p) {
			out = append(out, lib)
		}
	}
	return out
}

// Coordinates splits the library's maven name into its group, artifact,
// and version parts.
func (l *Library) Coordinates() (group, artifact, version string, err error) {
	parts := strings.SplitN(l.Name, ":", 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("maven name %q: want group:artifact:version", l.Name)
	}
	return parts[0], parts[1], parts[2], nil
}

// NativeClassifier returns the classifier key of the library's native
// bundle for the platform, substituting ${arch} with the platform's word
// size. The second return is false when the library ships no natives for
// the platform.
func (l *Library) NativeClassifier(p Platform) (string, bool) {
	if l.Natives == nil {
		return "", false
	}
	classifier, ok := l.Natives[p.OS]
	if !ok {
		return "", false
	}
	bits := "64"
	if p.Arch == "x86" || strings.HasSuffix(p.Arch, "32") {
		bits = "32"
	}
	return strings.ReplaceAll(classifier, "${arch}", bits), true
}
