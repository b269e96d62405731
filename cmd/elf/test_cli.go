package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	goruntime "runtime"
	"strconv"
	"strings"

	"fortio.org/log"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"elf/interpreter-go/pkg/driver"
	"elf/interpreter-go/pkg/interpreter"
)

// TestCliConfig holds the parsed `elf test` arguments.
type TestCliConfig struct {
	Targets []string
	Jobs    int
	JobsSet bool
	Update  bool
}

type fixtureOutcome struct {
	Path   string
	Lines  []string
	Passed bool
}

func runTest(args []string) int {
	config, err := parseTestArguments(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "elf test: %v\n", err)
		return 2
	}

	manifest, err := loadManifestFrom(".")
	if err != nil {
		if !errors.Is(err, driver.ErrManifestNotFound) {
			fmt.Fprintf(os.Stderr, "elf test: failed to load manifest: %v\n", err)
			return 2
		}
		manifest = nil
	}
	applyManifestLogLevel(manifest)

	targets := config.Targets
	if len(targets) == 0 {
		targets = manifest.TestPaths()
	}
	if len(targets) == 0 {
		targets = []string{"."}
	}
	jobs := config.Jobs
	if !config.JobsSet && manifest != nil {
		jobs = manifest.Test.Jobs
	}
	if jobs <= 0 {
		jobs = goruntime.NumCPU()
	}

	files, err := driver.CollectFixtures(targets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "elf test: %v\n", err)
		return 2
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "elf test: no "+driver.FixtureExtension+" files found in the provided paths")
		return 2
	}

	log.LogVf("elf test: running %d fixtures with %d jobs", len(files), jobs)
	outcomes, err := runFixtures(context.Background(), files, jobs, config.Update)
	if err != nil {
		fmt.Fprintf(os.Stderr, "elf test: %v\n", err)
		return 2
	}

	passed := 0
	for _, outcome := range outcomes {
		fmt.Fprintln(os.Stdout, strings.Join(outcome.Lines, "\n"))
		fmt.Fprintln(os.Stdout)
		if outcome.Passed {
			passed++
		}
	}
	failed := len(outcomes) - passed
	fmt.Fprintf(os.Stdout, "Summary: %d/%d passing, %d failing\n", passed, len(outcomes), failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func parseTestArguments(args []string) (TestCliConfig, error) {
	config := TestCliConfig{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--update":
			config.Update = true
		case arg == "--jobs" || arg == "-j":
			val, err := expectFlagValue(arg, nextArg(args, &i))
			if err != nil {
				return TestCliConfig{}, err
			}
			jobs, err := parseJobs(arg, val)
			if err != nil {
				return TestCliConfig{}, err
			}
			config.Jobs, config.JobsSet = jobs, true
		case strings.HasPrefix(arg, "--jobs="):
			jobs, err := parseJobs("--jobs", strings.TrimPrefix(arg, "--jobs="))
			if err != nil {
				return TestCliConfig{}, err
			}
			config.Jobs, config.JobsSet = jobs, true
		case strings.HasPrefix(arg, "-"):
			return TestCliConfig{}, fmt.Errorf("unknown flag %s", arg)
		default:
			config.Targets = append(config.Targets, arg)
		}
	}
	return config, nil
}

func parseJobs(flag, value string) (int, error) {
	jobs, err := strconv.Atoi(value)
	if err != nil || jobs < 0 {
		return 0, fmt.Errorf("%s expects a non-negative integer (got %q)", flag, value)
	}
	return jobs, nil
}

func nextArg(args []string, index *int) string {
	*index = *index + 1
	if *index >= len(args) {
		return ""
	}
	return args[*index]
}

func expectFlagValue(flag string, value string) (string, error) {
	if value == "" || strings.HasPrefix(value, "-") {
		return "", fmt.Errorf("%s expects a value", flag)
	}
	return value, nil
}

// runFixtures runs every fixture with at most jobs in flight. Outcomes keep
// the order of files.
func runFixtures(ctx context.Context, files []string, jobs int, update bool) ([]fixtureOutcome, error) {
	outcomes := make([]fixtureOutcome, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = runFixtureFile(path, update)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func runFixtureFile(path string, update bool) fixtureOutcome {
	outcome := fixtureOutcome{Path: path}
	fixture, err := driver.LoadFixture(path)
	if err != nil {
		outcome.Lines = append(outcome.Lines, fmt.Sprintf("Error parsing %s: %v", path, err))
		return outcome
	}
	outcome.Lines = append(outcome.Lines, fmt.Sprintf("• %s (%s)", fixture.Title(), path))

	result := driver.RunFixture(fixture, runFixtureProgram)
	for _, check := range result.Checks {
		if check.Passed {
			outcome.Lines = append(outcome.Lines, fmt.Sprintf("    ✓ %s matches", check.Mode))
			continue
		}
		outcome.Lines = append(outcome.Lines, fmt.Sprintf("    ✗ %s differs", check.Mode))
		outcome.Lines = append(outcome.Lines, unifiedDiff(check.Expected, check.Actual, check.Mode+" expected", check.Mode+" actual"))
	}
	outcome.Passed = result.Passed()

	if update && !outcome.Passed && result.Update() {
		if err := fixture.Save(); err != nil {
			outcome.Lines = append(outcome.Lines, fmt.Sprintf("Error updating file: %v", err))
		} else {
			outcome.Lines = append(outcome.Lines, "  UPDATED "+fixture.Title())
		}
	}
	if outcome.Passed {
		outcome.Lines = append(outcome.Lines, "  PASS")
	} else {
		outcome.Lines = append(outcome.Lines, "  FAIL")
	}
	return outcome
}

// runFixtureProgram mirrors the run command: the result goes to stdout and a
// front-end failure leaves stdout empty.
func runFixtureProgram(src *driver.Source, stdout io.Writer) error {
	program, err := src.Parse()
	if err != nil {
		return err
	}
	return interpreter.Run(program, stdout)
}

// unifiedDiff renders a line diff of expected against actual.
func unifiedDiff(expected, actual, expectedLabel, actualLabel string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(driver.TrimOutput(expected)+"\n", driver.TrimOutput(actual)+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	out := []string{"--- " + expectedLabel, "+++ " + actualLabel}
	for _, diff := range diffs {
		sign := " "
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			sign = "-"
		case diffmatchpatch.DiffInsert:
			sign = "+"
		}
		for _, line := range strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n") {
			out = append(out, sign+strings.TrimRight(line, " "))
		}
	}
	return strings.Join(out, "\n")
}
