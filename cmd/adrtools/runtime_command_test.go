package main

import (
	"path/filepath"
	"testing"

	"adrtools/internal/testsupport"
)

const probeJSON = `{
  "streams": [{"index": 0, "codec_type": "video", "r_frame_rate": "25/1", "avg_frame_rate": "25/1"}],
  "format": {"filename": "clip.mov", "duration": "2530.480000"}
}`

func TestRuntimeCommand(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries(probeJSON, "ffprobe"))

	out, _, err := runCLI(t, []string{"runtime", "clip.mov"}, env.configPath)
	if err != nil {
		t.Fatalf("runtime: %v", err)
	}
	if out != "clip.mov\t00:42:10:12\t25\n" {
		t.Fatalf("runtime output = %q", out)
	}
}

func TestDensityUsesMediaRuntime(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries(probeJSON, "ffprobe"))
	if _, _, err := runCLI(t, []string{"normalize", env.inputDir}, env.configPath); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	cues := filepath.Join(env.cfg.Paths.OutputDir, "SHOW_EP1.gen.TAB")
	out, _, err := runCLI(t, []string{"density", "--dry-run", "--windows", "3", "--media", "clip.mov", cues}, env.configPath)
	if err != nil {
		t.Fatalf("density --media: %v", err)
	}
	want := "== SHOW_EP1.cuedensity.csv ==\n" +
		"frame\t0\t1\t2\n" +
		"frame_start\t0\t21087\t42174\n" +
		"value\t3\t0\t0\n"
	if out != want {
		t.Fatalf("density output =\n%s\nwant\n%s", out, want)
	}
}
