package builder

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	versionLabel = "@version"
	urlLabel     = "@url"

	// headerLines is the size of the license comment Closure Compiler
	// keeps at the top of its output: "/*", version, url, "*/"
	headerLines = 4
)

var coreVersionPattern = regexp.MustCompile(`(?m)^[ \t/*]*@version[ \t]+(\S+)`)

// CurrentCoreVersion reads the version tag from the core file header
func (b *Builder) CurrentCoreVersion() (string, error) {
	data, err := os.ReadFile(b.CoreFilePath())
	if err != nil {
		return "", fmt.Errorf("failed to read core file: %w", err)
	}

	return ParseCoreVersion(string(data))
}

// ParseCoreVersion extracts the @version tag from core file content
func ParseCoreVersion(content string) (string, error) {
	m := coreVersionPattern.FindStringSubmatch(content)
	if m == nil {
		return "", fmt.Errorf("%w: no %s tag in core file header", ErrParse, versionLabel)
	}

	return m[1], nil
}

// RewriteHeader replaces the four line license comment at the top of the
// compiler output with a single line naming the product, its version and
// url, and the included modules.
func RewriteHeader(output, productName string, names []string) (string, error) {
	lines := strings.Split(output, "\n")

	n := len(lines)
	if n > 0 && lines[n-1] == "" {
		n--
	}

	if n < headerLines {
		return "", fmt.Errorf("%w: %w: compiler output has %d lines, expected a %d line header",
			ErrCompile, ErrParse, n, headerLines)
	}

	version, err := headerValue(lines[1], versionLabel)
	if err != nil {
		return "", err
	}

	url, err := headerValue(lines[2], urlLabel)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "/* %s v%s %s", productName, version, url)

	if len(names) > 0 {
		sb.WriteString(" | included modules: ")
		sb.WriteString(strings.Join(names, ", "))
	}

	sb.WriteString(" */")

	rest := lines[headerLines:]
	return strings.Join(append([]string{sb.String()}, rest...), "\n"), nil
}

// headerValue strips the comment decoration and label from a header line
func headerValue(line, label string) (string, error) {
	s := strings.TrimSpace(line)
	s = strings.TrimSpace(strings.TrimPrefix(s, "*"))

	if !strings.HasPrefix(s, label) {
		return "", fmt.Errorf("%w: %w: expected %s in header line %q", ErrCompile, ErrParse, label, line)
	}

	value := strings.TrimSpace(strings.TrimPrefix(s, label))
	if value == "" {
		return "", fmt.Errorf("%w: %w: empty %s in compiler output header", ErrCompile, ErrParse, label)
	}

	return value, nil
}
