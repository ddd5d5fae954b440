// Package modules holds the language module version table and the helpers
// that turn a user supplied module list into a canonical module set.
package modules

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
)

//go:embed versions.toml
var defaultVersions []byte

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_+-]*$`)

// Table maps a module name to its semantic version.
// A Table is never modified after it has been loaded.
type Table map[string]string

// DefaultTable returns the table shipped with hlpack
func DefaultTable() Table {
	t, err := parseTable(defaultVersions)
	if err != nil {
		// The embedded table is part of the build, a broken one is a bug
		panic(fmt.Sprintf("modules: invalid embedded version table: %v", err))
	}

	return t
}

// LoadTable reads a version table from a TOML file
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read version table: %w", err)
	}

	t, err := parseTable(data)
	if err != nil {
		return nil, fmt.Errorf("invalid version table %s: %w", path, err)
	}

	return t, nil
}

func parseTable(data []byte) (Table, error) {
	t := Table{}
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks every module name and version in the table
func (t Table) Validate() error {
	for _, name := range t.Names() {
		if !namePattern.MatchString(name) {
			return fmt.Errorf("invalid module name %q", name)
		}

		if _, err := semver.StrictNewVersion(t[name]); err != nil {
			return fmt.Errorf("invalid version %q for module %s: %w", t[name], name, err)
		}
	}

	return nil
}

// Names returns the known module names in sorted order
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Version returns the version of a module and whether it is tracked
func (t Table) Version(name string) (string, bool) {
	v, ok := t[name]
	return v, ok
}

// Summary renders "<name> v<version>" for every tracked module of the set,
// joined with ", ". Untracked modules are left out.
func (t Table) Summary(names []string) string {
	var parts []string
	for _, name := range Normalize(names) {
		if v, ok := t[name]; ok {
			parts = append(parts, name+" v"+v)
		}
	}

	return strings.Join(parts, ", ")
}

// Untracked returns the modules of the set that have no version in the table
func (t Table) Untracked(names []string) []string {
	var out []string
	for _, name := range Normalize(names) {
		if _, ok := t[name]; !ok {
			out = append(out, name)
		}
	}

	return out
}
