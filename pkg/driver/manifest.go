package driver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest looked up by FindManifest.
const ManifestFileName = "elf.yml"

// Manifest represents the parsed contents of elf.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Targets     map[string]*TargetSpec
	TargetOrder []string
	LogLevel    string
	Repl        ReplConfig
	Test        TestConfig

	targetEntries []manifestTargetEntry
}

// TargetSpec describes a runnable program from the manifest.
type TargetSpec struct {
	Name         string
	OriginalName string
	Main         string
}

// ReplConfig holds the repl section.
type ReplConfig struct {
	History string
}

// TestConfig holds the test section.
type TestConfig struct {
	Paths []string
	Jobs  int
}

type manifestTargetEntry struct {
	sanitized string
	spec      *TargetSpec
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

var (
	ErrNoTargets        = errors.New("manifest: no targets defined")
	ErrManifestNotFound = errors.New("manifest: " + ManifestFileName + " not found")
)

var knownLogLevels = map[string]bool{
	"debug":    true,
	"verbose":  true,
	"info":     true,
	"warning":  true,
	"error":    true,
	"critical": true,
	"fatal":    true,
}

// LoadManifest parses elf.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from dir towards the filesystem root and returns the
// first elf.yml it finds.
func FindManifest(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("manifest: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrManifestNotFound
		}
		current = parent
	}
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}

	targetNames := make(map[string]string, len(m.targetEntries))
	for _, entry := range m.targetEntries {
		target := entry.spec
		if target == nil {
			continue
		}
		if other, exists := targetNames[entry.sanitized]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("targets %q and %q collide after sanitization", other, target.OriginalName))
		} else {
			targetNames[entry.sanitized] = target.OriginalName
		}
		if target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires an entrypoint path", target.OriginalName))
		}
	}

	if m.Version != "" && !semver.IsValid(canonicalVersion(m.Version)) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("version %q is not a semantic version", m.Version))
	}
	if m.LogLevel != "" && !knownLogLevels[m.LogLevel] {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q is not a known level", m.LogLevel))
	}
	if m.Test.Jobs < 0 {
		errs.Issues = append(errs.Issues, "test.jobs must not be negative")
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// canonicalVersion adds the leading v that semver expects.
func canonicalVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

// Dir is the directory holding the manifest; relative paths resolve against it.
func (m *Manifest) Dir() string {
	if m == nil || m.Path == "" {
		return ""
	}
	return filepath.Dir(m.Path)
}

// Resolve joins a manifest-relative path onto the manifest directory.
func (m *Manifest) Resolve(path string) string {
	if filepath.IsAbs(path) || m.Dir() == "" {
		return path
	}
	return filepath.Join(m.Dir(), path)
}

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*TargetSpec, error) {
	if m == nil {
		return nil, ErrNoTargets
	}
	for _, entry := range m.targetEntries {
		if entry.spec != nil {
			return entry.spec, nil
		}
	}
	return nil, ErrNoTargets
}

// FindTarget looks up a target by sanitized or original name.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	key := sanitizeSegment(strings.TrimSpace(name))
	if key != "" {
		if target, ok := m.Targets[key]; ok && target != nil {
			return target, true
		}
	}
	for _, entry := range m.targetEntries {
		if entry.spec == nil {
			continue
		}
		if strings.EqualFold(entry.spec.OriginalName, strings.TrimSpace(name)) {
			return entry.spec, true
		}
	}
	return nil, false
}

// HistoryPath resolves the repl history file, or "" when none is configured.
func (m *Manifest) HistoryPath() string {
	if m == nil || m.Repl.History == "" {
		return ""
	}
	return m.Resolve(m.Repl.History)
}

// TestPaths resolves the configured fixture roots.
func (m *Manifest) TestPaths() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Test.Paths))
	for _, path := range m.Test.Paths {
		out = append(out, m.Resolve(path))
	}
	return out
}

// sanitizeSegment maps a target name onto identifier-safe characters.
func sanitizeSegment(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '-' || r == ' ' || r == '.':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

type manifestFile struct {
	Name     string    `yaml:"name"`
	Version  string    `yaml:"version"`
	Targets  targetMap `yaml:"targets"`
	LogLevel string    `yaml:"log_level"`
	Repl     replYAML  `yaml:"repl"`
	Test     testYAML  `yaml:"test"`
}

type replYAML struct {
	History string `yaml:"history"`
}

type testYAML struct {
	Paths stringList `yaml:"paths"`
	Jobs  int        `yaml:"jobs"`
}

type targetYAML struct {
	Main string `yaml:"main"`
}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		tm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		entry := new(targetYAML)
		if err := entry.unmarshalYAML(valueNode); err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

// unmarshalYAML accepts either a bare entrypoint path or a mapping with main.
func (t *targetYAML) unmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*t = targetYAML{}
			return nil
		}
		*t = targetYAML{Main: strings.TrimSpace(value.Value)}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Main string `yaml:"main"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*t = targetYAML{Main: strings.TrimSpace(raw.Main)}
		return nil
	case yaml.AliasNode:
		return t.unmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("expected string or mapping, found %s", value.ShortTag())
	}
}

type stringList []string

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest(path string) *Manifest {
	targetCapacity := len(mf.Targets.items)
	result := &Manifest{
		Path:          path,
		Name:          sanitizeSegment(strings.TrimSpace(mf.Name)),
		Version:       strings.TrimSpace(mf.Version),
		Targets:       make(map[string]*TargetSpec, targetCapacity),
		TargetOrder:   make([]string, 0, targetCapacity),
		LogLevel:      strings.ToLower(strings.TrimSpace(mf.LogLevel)),
		Repl:          ReplConfig{History: strings.TrimSpace(mf.Repl.History)},
		Test:          TestConfig{Paths: mf.Test.Paths.Clone(), Jobs: mf.Test.Jobs},
		targetEntries: make([]manifestTargetEntry, 0, targetCapacity),
	}

	seenTargets := make(map[string]struct{}, targetCapacity)
	for _, item := range mf.Targets.items {
		if item.spec == nil {
			continue
		}
		original := strings.TrimSpace(item.name)
		sanitized := sanitizeSegment(original)
		spec := &TargetSpec{
			Name:         sanitized,
			OriginalName: original,
			Main:         item.spec.Main,
		}
		if _, exists := result.Targets[sanitized]; !exists {
			result.Targets[sanitized] = spec
		}
		if _, exists := seenTargets[sanitized]; !exists {
			result.TargetOrder = append(result.TargetOrder, sanitized)
			seenTargets[sanitized] = struct{}{}
		}
		result.targetEntries = append(result.targetEntries, manifestTargetEntry{
			sanitized: sanitized,
			spec:      spec,
		})
	}
	return result
}
