package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adrtools/internal/faults"
	"adrtools/internal/testsupport"
)

func TestNormalizeMergeDensityPipeline(t *testing.T) {
	env := setupCLITestEnv(t)
	outDir := env.cfg.Paths.OutputDir

	out, _, err := runCLI(t, []string{"normalize", env.inputDir}, env.configPath)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	requireContains(t, out, "SHOW_EP1.gen.TAB")
	requireContains(t, out, "1 succeeded, 0 failed")

	normalized := testsupport.ReadText(t, filepath.Join(outDir, "SHOW_EP1.gen.TAB"))
	wantNormalized := "#\ttcin\ttcout\tcharacter\tactor\tline\n" +
		"0\t00:00:01:00\t00:00:02:00\tANNA\tF25-30\t[ANNA] Hello there.\n" +
		"1\t00:00:02:10\t00:00:03:00\tANNA\tF25-30\t[ANNA] How are you?\n" +
		"2\t00:00:05:00\t00:00:06:00\tBOB\tM40-45\t[BOB] Fine.\n"
	if normalized != wantNormalized {
		t.Fatalf("normalized output =\n%s\nwant\n%s", normalized, wantNormalized)
	}

	if _, _, err := runCLI(t, []string{"merge", outDir}, env.configPath); err != nil {
		t.Fatalf("merge: %v", err)
	}
	merged := testsupport.ReadText(t, filepath.Join(outDir, "SHOW_EP1.merged.TAB"))
	wantMerged := "#\ttcin\ttcout\tcharacter\tactor\tline\n" +
		"0\t00:00:01:00\t00:00:03:00\tANNA\tF25-30\t[ANNA] Hello there. How are you?\n" +
		"1\t00:00:05:00\t00:00:06:00\tBOB\tM40-45\t[BOB] Fine.\n"
	if merged != wantMerged {
		t.Fatalf("merged output =\n%s\nwant\n%s", merged, wantMerged)
	}

	out, stderr, err := runCLI(t, []string{"density", "--dry-run", "--windows", "3", filepath.Join(outDir, "SHOW_EP1.gen.TAB")}, env.configPath)
	if err != nil {
		t.Fatalf("density: %v", err)
	}
	wantDensity := "== SHOW_EP1.cuedensity.csv ==\n" +
		"frame\t0\t1\t2\n" +
		"frame_start\t0\t50\t100\n" +
		"value\t1\t1\t1\n"
	if out != wantDensity {
		t.Fatalf("density output =\n%s\nwant\n%s", out, wantDensity)
	}
	requireContains(t, stderr, "1 succeeded, 0 failed")
	if _, err := os.Stat(filepath.Join(outDir, "SHOW_EP1.cuedensity.csv")); !os.IsNotExist(err) {
		t.Fatalf("dry run should not write output, stat err = %v", err)
	}
}

func TestNormalizeContinuesPastBadFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteText(t, filepath.Join(env.inputDir, "show_ep2.tsv"), "Speaker\tDialogue\nANNA\tNo timecodes.\n")

	out, _, err := runCLI(t, []string{"normalize", "--workers", "2", env.inputDir}, env.configPath)
	if err != nil {
		t.Fatalf("per-file failures must not fail the batch: %v", err)
	}
	requireContains(t, out, "row_parse")
	requireContains(t, out, "1 succeeded, 1 failed")

	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, "SHOW_EP1.gen.TAB")); err != nil {
		t.Fatalf("expected good file to be written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, "SHOW_EP2.gen.TAB")); !os.IsNotExist(err) {
		t.Fatalf("bad file must not produce output, stat err = %v", err)
	}
}

func TestNormalizeRejectsMissingRegistryBeforeWork(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "missing.json")

	_, _, err := runCLI(t, []string{"normalize", "--registry", missing, env.inputDir}, env.configPath)
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, statErr := os.Stat(env.cfg.Paths.OutputDir); !os.IsNotExist(statErr) {
		t.Fatalf("output directory should not be created, stat err = %v", statErr)
	}
}

func TestNormalizeRejectsMissingInput(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"normalize", filepath.Join(env.baseDir, "nope")}, env.configPath)
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestDensityRejectsConflictingRuntimeFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"density", "--runtime", "60", "--media", "clip.mov", env.inputDir}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("expected flag conflict error, got %v", err)
	}
}
