package bridge

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// defaultRoots are the directories probed for application bundles, in
// priority order.
func defaultRoots() []string {
	home, _ := os.UserHomeDir()
	return []string{
		"/System/Applications",
		"/System/Applications/Utilities",
		filepath.Join(home, "Applications"),
		"/Applications",
		"/System/Library/CoreServices",
		"/System/Library/CoreServices/Applications",
	}
}

// Discovery resolves human-readable application names to installed bundles.
type Discovery struct {
	roots  []string
	logger *slog.Logger
}

// NewDiscovery builds a Discovery over the standard application directories.
func NewDiscovery(logger *slog.Logger) *Discovery {
	return &Discovery{roots: defaultRoots(), logger: logger}
}

// NewDiscoveryWithRoots builds a Discovery over explicit directories.
func NewDiscoveryWithRoots(logger *slog.Logger, roots ...string) *Discovery {
	return &Discovery{roots: roots, logger: logger}
}

// Discover resolves name to an installed bundle. An exact "<Name>.app" match
// in any root wins; otherwise a case-insensitive substring match over the
// root's entries is accepted. Returns *ApplicationNotFoundError when nothing
// matches.
func (d *Discovery) Discover(name string) (*Bundle, error) {
	want := strings.TrimSuffix(name, ".app")

	for _, root := range d.roots {
		path := filepath.Join(root, want+".app")
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return d.describe(want, path)
		}
	}

	// Fuzzy pass: substring match on bundle names.
	lower := strings.ToLower(want)
	for _, root := range d.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() || !strings.HasSuffix(entry.Name(), ".app") {
				continue
			}
			base := strings.TrimSuffix(entry.Name(), ".app")
			if strings.Contains(strings.ToLower(base), lower) {
				d.logger.Debug("fuzzy bundle match", "requested", name, "matched", entry.Name(), "root", root)
				return d.describe(base, filepath.Join(root, entry.Name()))
			}
		}
	}
	return nil, &ApplicationNotFoundError{Name: name}
}

func (d *Discovery) describe(name, path string) (*Bundle, error) {
	b := &Bundle{Name: name, Path: path}

	id, err := bundleIdentifier(filepath.Join(path, "Contents", "Info.plist"))
	if err != nil {
		return nil, fmt.Errorf("read bundle %s: %w", path, err)
	}
	b.ID = id

	resources := filepath.Join(path, "Contents", "Resources")
	entries, err := os.ReadDir(resources)
	if err == nil {
		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), ".sdef") {
				b.SdefPath = filepath.Join(resources, entry.Name())
				break
			}
		}
	}
	return b, nil
}

// bundleIdentifier pulls CFBundleIdentifier out of an XML property list.
// Only the flat key/string layout of Info.plist is understood.
func bundleIdentifier(plistPath string) (string, error) {
	f, err := os.Open(plistPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	var lastKey string
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("CFBundleIdentifier not found in %s", plistPath)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "key":
			var key string
			if err := dec.DecodeElement(&key, &start); err != nil {
				return "", err
			}
			lastKey = key
		case "string":
			var val string
			if err := dec.DecodeElement(&val, &start); err != nil {
				return "", err
			}
			if lastKey == "CFBundleIdentifier" {
				return val, nil
			}
		}
	}
}
