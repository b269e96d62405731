package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// FixtureExtension marks exec fixture files.
const FixtureExtension = ".santat"

// Section names understood in a fixture file.
const (
	SectionTest         = "TEST"
	SectionFile         = "FILE"
	SectionExpect       = "EXPECT"
	SectionExpectAST    = "EXPECT_AST"
	SectionExpectTokens = "EXPECT_TOKENS"
)

var ErrMissingFileSection = errors.New("fixture: missing required --FILE-- section")

var sectionHeader = regexp.MustCompile(`^--([A-Z_]+)--\s*$`)

// FixtureBlock is one named section, kept in file order so updates can be
// written back without reshuffling.
type FixtureBlock struct {
	Name    string
	Content string
}

// Fixture is a parsed .santat file.
type Fixture struct {
	Path   string
	Blocks []FixtureBlock
}

// ParseFixture splits text into its sections. A --FILE-- section is required.
func ParseFixture(path, text string) (*Fixture, error) {
	text = NormalizeNewlines(text)
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	fixture := &Fixture{Path: path}
	var (
		current string
		open    bool
		buffer  []string
	)
	flush := func() {
		if open {
			fixture.Blocks = append(fixture.Blocks, FixtureBlock{Name: current, Content: strings.Join(buffer, "\n")})
		}
	}
	for _, line := range lines {
		if match := sectionHeader.FindStringSubmatch(line); match != nil {
			flush()
			current, open, buffer = match[1], true, buffer[:0]
			continue
		}
		buffer = append(buffer, line)
	}
	flush()

	if _, ok := fixture.Section(SectionFile); !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingFileSection)
	}
	return fixture, nil
}

// LoadFixture reads and parses a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	return ParseFixture(path, string(data))
}

// Section returns the last section with the given name.
func (f *Fixture) Section(name string) (string, bool) {
	for i := len(f.Blocks) - 1; i >= 0; i-- {
		if f.Blocks[i].Name == name {
			return f.Blocks[i].Content, true
		}
	}
	return "", false
}

// Title is the --TEST-- description, or the file name when there is none.
func (f *Fixture) Title() string {
	if title, ok := f.Section(SectionTest); ok {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	return filepath.Base(f.Path)
}

// Source is the program under test.
func (f *Fixture) Source() string {
	src, _ := f.Section(SectionFile)
	return src
}

// Replace overwrites every existing section with the given name and reports
// whether anything changed.
func (f *Fixture) Replace(name, content string) bool {
	content = NormalizeNewlines(content)
	changed := false
	for i := range f.Blocks {
		if f.Blocks[i].Name == name && NormalizeNewlines(f.Blocks[i].Content) != content {
			f.Blocks[i].Content = content
			changed = true
		}
	}
	return changed
}

// Render writes the blocks back in fixture syntax.
func (f *Fixture) Render() string {
	parts := make([]string, 0, len(f.Blocks))
	for _, block := range f.Blocks {
		parts = append(parts, "--"+block.Name+"--\n"+block.Content)
	}
	return strings.Join(parts, "\n")
}

// Save writes the fixture back to its path.
func (f *Fixture) Save() error {
	if err := os.WriteFile(f.Path, []byte(f.Render()), 0o644); err != nil {
		return fmt.Errorf("fixture: write %s: %w", f.Path, err)
	}
	return nil
}

// Expectation pairs a section with the CLI mode that produces its output.
type Expectation struct {
	Section string
	Mode    string
}

// Expectations lists the checks a fixture runner performs, in order.
var Expectations = []Expectation{
	{Section: SectionExpect, Mode: "output"},
	{Section: SectionExpectAST, Mode: "ast"},
	{Section: SectionExpectTokens, Mode: "tokens"},
}

// OutputMatches compares expected and actual output, ignoring line-ending
// style and trailing whitespace.
func OutputMatches(expected, actual string) bool {
	return TrimOutput(expected) == TrimOutput(actual)
}

// TrimOutput drops trailing whitespace and normalizes line endings. Updated
// expectations are written back in this form.
func TrimOutput(s string) string {
	return strings.TrimRight(NormalizeNewlines(s), " \t\n")
}

// NormalizeNewlines converts CRLF line endings to LF.
func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// CollectFixtures expands files and directories into a sorted list of
// fixture paths.
func CollectFixtures(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("fixture: stat %s: %w", target, err)
		}
		if !info.IsDir() {
			if filepath.Ext(target) == FixtureExtension {
				files = append(files, target)
			}
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == FixtureExtension {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("fixture: walk %s: %w", target, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// ProgramRunner evaluates a source and writes what the run command would
// print to stdout.
type ProgramRunner func(src *Source, stdout io.Writer) error

// CheckResult is the outcome of one expectation.
type CheckResult struct {
	Section  string
	Mode     string
	Expected string
	Actual   string
	Err      error
	Passed   bool
}

// FixtureResult collects every check made against a fixture.
type FixtureResult struct {
	Fixture *Fixture
	Checks  []CheckResult
}

// Passed reports whether every check matched.
func (r *FixtureResult) Passed() bool {
	for _, check := range r.Checks {
		if !check.Passed {
			return false
		}
	}
	return true
}

// RunFixture runs each expectation present in f. The output check goes
// through run; the token and tree checks use the dump writers.
func RunFixture(f *Fixture, run ProgramRunner) *FixtureResult {
	result := &FixtureResult{Fixture: f}
	for _, exp := range Expectations {
		expected, ok := f.Section(exp.Section)
		if !ok {
			continue
		}
		src := NewSource(f.Path, f.Source())
		var buf bytes.Buffer
		var err error
		switch exp.Mode {
		case "tokens":
			err = DumpTokens(&buf, src)
		case "ast":
			err = DumpAST(&buf, src)
		default:
			err = run(src, &buf)
		}
		actual := buf.String()
		result.Checks = append(result.Checks, CheckResult{
			Section:  exp.Section,
			Mode:     exp.Mode,
			Expected: expected,
			Actual:   actual,
			Err:      err,
			Passed:   OutputMatches(expected, actual),
		})
	}
	return result
}

// Update rewrites failed expectations with their actual output and reports
// whether the fixture changed.
func (r *FixtureResult) Update() bool {
	changed := false
	for _, check := range r.Checks {
		if check.Passed {
			continue
		}
		if r.Fixture.Replace(check.Section, TrimOutput(check.Actual)) {
			changed = true
		}
	}
	return changed
}
