// Package project detects the Godot version a project directory wants,
// by walking up for a project.godot file and parsing its config/features
// declaration (spec §4.7 "Project version detection").
package project

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/terassyi/gdvm/internal/i18n"
	"github.com/terassyi/gdvm/internal/version"
)

// ProjectFileName is the Godot project manifest filename.
const ProjectFileName = "project.godot"

// Warner receives non-fatal warnings about a project file that exists
// but couldn't be fully read or understood (spec §4.7 "surface a
// warning" rather than silently ignoring it).
type Warner interface {
	Warnf(format string, args ...any)
}

type noopWarner struct{}

func (noopWarner) Warnf(string, ...any) {}

// Parsed holds the fields extracted from a project.godot file's contents.
type Parsed struct {
	configVersion    *int
	featuresVersion  string
	featuresDeclared bool
	hasDotnet        bool
}

// ParseString parses the raw contents of a project.godot file.
func ParseString(contents string) Parsed {
	p := Parsed{
		configVersion: parseConfigVersion(contents),
		hasDotnet:     strings.Contains(contents, "[dotnet]"),
	}
	if lines, ok := extractApplicationSection(contents); ok {
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "config/features=") {
				p.featuresDeclared = true
				if v, ok := parsePackedStringArrayForVersion(line); ok {
					p.featuresVersion = v
				}
				break
			}
		}
	}
	return p
}

// DetectedVersion converts the parsed fields into a version pattern, or
// reports false if no version could be determined. config_version == 4
// identifies a Godot 3.x project file format and is reported as a bare
// major-3 pattern regardless of what config/features says.
func (p Parsed) DetectedVersion() (version.Partial, bool) {
	if p.configVersion != nil && *p.configVersion == 4 {
		major := 3
		return version.Partial{Major: &major, CSharp: &p.hasDotnet}, true
	}

	if p.featuresVersion == "" {
		return version.Partial{}, false
	}

	v, ok := parseVersionString(p.featuresVersion)
	if !ok {
		return version.Partial{}, false
	}
	v.CSharp = &p.hasDotnet
	return v, true
}

// Probe loads and parses the project.godot file discovered by walking up
// from path.
type Probe struct {
	contents string
	file     string
}

// Load walks upward from path looking for a project.godot file and reads
// its contents. Returns false if no project file was found; a project
// file that was found but could not be read also returns false, after
// warning through warner (nil discards the warning).
func Load(path string, warner Warner) (Probe, bool) {
	if warner == nil {
		warner = noopWarner{}
	}
	file, ok := FindProjectFile(path)
	if !ok {
		return Probe{}, false
	}
	contents, err := os.ReadFile(file)
	if err != nil {
		warner.Warnf("%s", i18n.T("warning.project_read_failed", file, err))
		return Probe{}, false
	}
	return Probe{contents: string(contents), file: file}, true
}

// Parse parses the probe's loaded contents.
func (pr Probe) Parse() Parsed { return ParseString(pr.contents) }

// DetectInPath walks up from path for a project.godot file and returns
// the version pattern it declares, if any. If the file declares a
// config/features version string that isn't recognizable, it warns
// through warner instead of silently reporting no version (nil
// discards the warning).
func DetectInPath(path string, warner Warner) (version.Partial, bool) {
	if warner == nil {
		warner = noopWarner{}
	}
	probe, ok := Load(path, warner)
	if !ok {
		return version.Partial{}, false
	}
	parsed := probe.Parse()
	v, ok := parsed.DetectedVersion()
	if !ok && parsed.featuresDeclared {
		if parsed.featuresVersion == "" {
			warner.Warnf("%s", i18n.T("warning.project_features_unparsable", probe.file))
		} else {
			warner.Warnf("%s", i18n.T("warning.project_version_unparsable", probe.file, parsed.featuresVersion))
		}
	}
	return v, ok
}

// FindProjectFile walks up the directory tree from startPath until it
// finds a file named project.godot.
func FindProjectFile(startPath string) (string, bool) {
	current := startPath
	if info, err := os.Stat(startPath); err == nil && !info.IsDir() {
		if filepath.Base(startPath) == ProjectFileName {
			return startPath, true
		}
		current = filepath.Dir(startPath)
	}

	for {
		candidate := filepath.Join(current, ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// extractApplicationSection returns the lines within the [application]
// section of a project.godot file's contents.
func extractApplicationSection(contents string) ([]string, bool) {
	var lines []string
	inSection := false

	for _, line := range strings.Split(contents, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			if inSection {
				break
			}
			inSection = trimmed == "[application]"
			continue
		}
		if inSection {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return nil, false
	}
	return lines, true
}

// parsePackedStringArrayForVersion extracts the first quoted element of a
// PackedStringArray(...) value that looks like a version number, from a
// line such as config/features=PackedStringArray("4.3", "Forward Plus").
func parsePackedStringArrayForVersion(line string) (string, bool) {
	eqIdx := strings.Index(line, "=")
	if eqIdx < 0 {
		return "", false
	}
	valuePart := strings.TrimSpace(line[eqIdx+1:])
	if !strings.HasPrefix(valuePart, "PackedStringArray(") || !strings.HasSuffix(valuePart, ")") {
		return "", false
	}
	inner := strings.TrimSpace(valuePart[len("PackedStringArray(") : len(valuePart)-1])

	var values []string
	var current strings.Builder
	inQuotes := false
	escaped := false

	for _, c := range inner {
		switch {
		case c == '"' && !escaped:
			inQuotes = !inQuotes
			if !inQuotes {
				values = append(values, current.String())
				current.Reset()
			}
			escaped = false
			continue
		case c == '\\' && inQuotes && !escaped:
			escaped = true
			current.WriteRune(c)
			continue
		case inQuotes:
			current.WriteRune(c)
		}
		escaped = false
	}

	for _, v := range values {
		if isVersionFormat(v) {
			return v, true
		}
	}
	return "", false
}

// isVersionFormat reports whether s looks like "x.x" or "x.x.x" with all
// digit components.
func isVersionFormat(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

// parseVersionString parses an "x.x" or "x.x.x" version into a partial
// version pattern with no release type or C#/mono flag set.
func parseVersionString(s string) (version.Partial, bool) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return version.Partial{}, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return version.Partial{}, false
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return version.Partial{}, false
	}

	p := version.Partial{Major: &major, Minor: &minor}
	if len(parts) == 3 {
		patch, err := strconv.Atoi(parts[2])
		if err != nil {
			return version.Partial{}, false
		}
		p.Patch = &patch
	}
	return p, true
}

// parseConfigVersion extracts the config_version key's integer value from
// project.godot contents.
func parseConfigVersion(contents string) *int {
	for _, line := range strings.Split(contents, "\n") {
		eqIdx := strings.Index(line, "=")
		if eqIdx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eqIdx])
		if key != "config_version" {
			continue
		}
		val, err := strconv.Atoi(strings.TrimSpace(line[eqIdx+1:]))
		if err != nil {
			return nil
		}
		return &val
	}
	return nil
}
