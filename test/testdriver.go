package test

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bridgeit.com/server/logging"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var testDriverLogger = log.With().Str("logger_name", "test::testdriver").Logger()

type ScriptTestResult struct {
	Filename string
	Passed   bool
	Failures []error
	Disabled bool
}

func (s *ScriptTestResult) addError(e error) {
	s.Failures = append(s.Failures, e)
}

// runs game scripts and captures the results
// and output the results at the end
type TestDriver struct {
	ScriptResult map[string]*ScriptTestResult
	ScriptFiles  []string
}

func NewTestDriver() *TestDriver {
	return &TestDriver{ScriptResult: make(map[string]*ScriptTestResult), ScriptFiles: make([]string, 0)}
}

func (t *TestDriver) RunGameScript(filename string) error {
	result := &ScriptTestResult{Filename: filename, Failures: make([]error, 0)}
	t.ScriptResult[filename] = result
	t.ScriptFiles = append(t.ScriptFiles, filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		err = errors.Wrapf(err, "loading %s", filename)
		result.addError(err)
		return err
	}

	var gameScript GameScript
	err = yaml.Unmarshal(data, &gameScript)
	if err != nil {
		err = errors.Wrapf(err, "parsing %s", filename)
		result.addError(err)
		return err
	}
	if gameScript.Disabled {
		result.Disabled = true
		return nil
	}

	gameScript.filename = filename
	gameScript.result = result

	testDriverLogger.Info().Str(logging.ScriptKey, filename).Msg("Running game script")
	e := gameScript.run(t)
	result.Passed = e == nil && len(result.Failures) == 0
	return e
}

// Failed returns the results of the scripts that did not pass.
func (t *TestDriver) Failed() []*ScriptTestResult {
	var failed []*ScriptTestResult
	for _, scriptFile := range t.ScriptFiles {
		result := t.ScriptResult[scriptFile]
		if !result.Disabled && len(result.Failures) != 0 {
			failed = append(failed, result)
		}
	}
	return failed
}

func (t *TestDriver) ReportResult() bool {
	for _, scriptFile := range t.ScriptFiles {
		if t.ScriptResult[scriptFile].Disabled {
			fmt.Printf("Script %s is disabled\n", scriptFile)
		}
	}
	failed := t.Failed()
	for _, result := range failed {
		fmt.Printf("Script %s failed\n", result.Filename)
		fmt.Printf("===========================\n")
		for _, e := range result.Failures {
			fmt.Printf("%s\n", e.Error())
		}
		fmt.Printf("===========================\n")
	}
	return len(failed) == 0
}

// ListGameScripts lists the yaml scripts in dir. A non-empty testName keeps only
// the script with that base name.
func ListGameScripts(dir string, testName string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", dir)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if testName != "" && strings.TrimSuffix(name, ext) != testName {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// RunGameScriptTests runs the scripts and reports the results. It returns false when any script failed.
func RunGameScriptTests(dir string, testName string) bool {
	files, err := ListGameScripts(dir, testName)
	if err != nil {
		fmt.Printf("Failed to get files from dir: %s\n", dir)
		return false
	}
	if len(files) == 0 {
		fmt.Printf("No game scripts found in %s\n", dir)
		return false
	}

	testDriver := NewTestDriver()
	for _, file := range files {
		testDriver.RunGameScript(file)
	}

	passed := testDriver.ReportResult()
	if passed {
		fmt.Printf("All scripts passed\n")
	} else {
		fmt.Printf("One or more scripts failed\n")
	}
	return passed
}
