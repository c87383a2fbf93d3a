package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adrtools/internal/speakers"
	"adrtools/internal/testsupport"
)

func TestSpeakersBuildsRegistry(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "bootstrap")
	characters := filepath.Join(dir, "characters.tsv")
	castings := filepath.Join(dir, "castings.tsv")
	names := filepath.Join(dir, "names.txt")
	target := filepath.Join(dir, "registry.json")
	testsupport.WriteText(t, characters, "# name\tnicknames\nBOB\nANNA\tAnnie\n")
	testsupport.WriteText(t, castings, "Anna\tF25-30\nAnnie\tF25-30\nZED\tM20-25\n")
	testsupport.WriteText(t, names, "Annna\nBobb\nZed\n")

	out, _, err := runCLI(t, []string{
		"speakers",
		"--characters", characters,
		"--castings", castings,
		"--names", names,
		"--out", target,
	}, env.configPath)
	if err != nil {
		t.Fatalf("speakers: %v", err)
	}
	requireContains(t, out, "Wrote 2 speakers")

	file, err := os.Open(target)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	reg, err := speakers.DecodeRegistry(file)
	if err != nil {
		t.Fatalf("DecodeRegistry: %v", err)
	}
	if len(reg.Speakers) != 2 || reg.Speakers[0].Name != "ANNA" || reg.Speakers[1].Name != "BOB" {
		t.Fatalf("unexpected speakers %+v", reg.Speakers)
	}
	if got := reg.Speakers[0].Casting.String(); got != "F25-30" {
		t.Fatalf("ANNA casting = %s", got)
	}
	if !reg.Speakers[1].Casting.IsZero() {
		t.Fatalf("BOB had no samples, got %s", reg.Speakers[1].Casting)
	}
	if len(reg.Speakers[0].Aliases) != 1 || reg.Speakers[0].Aliases[0].Alias != "annna" {
		t.Fatalf("unexpected ANNA aliases %+v", reg.Speakers[0].Aliases)
	}
}

func TestSpeakersRequiresCharacters(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"speakers"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--characters is required") {
		t.Fatalf("expected missing characters error, got %v", err)
	}
}

func TestRegistryResolveAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"registry", "resolve", "Annie", "Bobb", "Zed to Anna"}, env.configPath)
	if err != nil {
		t.Fatalf("registry resolve: %v", err)
	}
	requireContains(t, out, "Annie\tANNA\tF25-30\tnickname\t-")
	requireContains(t, out, "Bobb\tBOB\tM40-45\tfuzzy\t86")
	requireContains(t, out, "Zed to Anna\tZed\tCAST ME\tnone")

	out, _, err = runCLI(t, []string{"registry", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("registry show: %v", err)
	}
	requireContains(t, out, "ANNA\tAnnie\tF25-30\t-\t-")
	requireContains(t, out, "BOB\t-\tM40-45\t-\t-")
}

func TestNamesAndLines(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"names", env.inputDir}, env.configPath)
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	if out != "ANNA\nBOB TO ANNA\n" {
		t.Fatalf("names output = %q", out)
	}

	out, _, err = runCLI(t, []string{"names", "--split", env.inputDir}, env.configPath)
	if err != nil {
		t.Fatalf("names --split: %v", err)
	}
	if out != "ANNA\nBOB\n" {
		t.Fatalf("names --split output = %q", out)
	}

	out, _, err = runCLI(t, []string{"lines", "--character", "Bob", env.inputDir}, env.configPath)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	requireContains(t, out, "Character\tFile\tRow\tTC In\tTC Out\tLine\n")
	requireContains(t, out, "00:00:05:00\t00:00:06:00\tFine.")
}
