package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"adrtools/internal/config"
	"adrtools/internal/testsupport"
)

const testRegistry = `{
  "speakers": [
    {"name": "ANNA", "nicknames": ["Annie"], "casting": {"gender": "F", "lo": 25, "hi": 30}},
    {"name": "BOB", "nicknames": [], "casting": {"gender": "M", "lo": 40, "hi": 45}}
  ]
}`

const testScript = "TC In\tTC Out\tCharacter\tDialogue\n" +
	"00:00:01:00\t00:00:02:00\tANNA\tHello there.\n" +
	"00:00:02:10\t00:00:03:00\tAnna\tHow are you?\n" +
	"00:00:05:00\t00:00:06:00\tBob to Anna\tFine.\n"

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	inputDir   string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("ADRTOOLS_REGISTRY", "")
	t.Setenv("ADRTOOLS_OUTPUT_DIR", "")

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithRegistry(testRegistry)}, opts...)...)
	base := testsupport.BaseDir(cfg)
	inputDir := filepath.Join(base, "scripts")
	testsupport.WriteText(t, filepath.Join(inputDir, "show_ep1.tsv"), testScript)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: testsupport.WriteConfig(t, cfg),
		baseDir:    base,
		inputDir:   inputDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s", needle, haystack)
	}
}
