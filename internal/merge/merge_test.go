package merge

import (
	"testing"

	"adrtools/internal/script"
	"adrtools/internal/speakers"
	"adrtools/internal/timecode"
)

const second = 25 * timecode.TicksPerFrame

func cue(character string, startTicks, endTicks int64, text string) script.Cue {
	return script.Cue{
		Region:    timecode.NewRegion(timecode.New(startTicks, 25), timecode.New(endTicks, 25)),
		Character: character,
		Casting:   "F25-30",
		Line:      "[" + character + "] " + text,
	}
}

func newMerger() *Merger {
	return New(Options{FPS: 25, IdealSeconds: 5, MaxSeconds: 8, MaxGapTicks: 500, Exclude: []string{"UNKNOWN"}})
}

func spans(cues []script.Cue) [][2]int64 {
	out := make([][2]int64, 0, len(cues))
	for _, c := range cues {
		out = append(out, [2]int64{c.Start().Ticks, c.End().Ticks})
	}
	return out
}

func TestMergeContiguousCuesFormOneTake(t *testing.T) {
	merged := newMerger().Merge([]script.Cue{
		cue("ANNA", 0, 2*second, "One."),
		cue("ANNA", 2*second, 4*second, "Two."),
		cue("ANNA", 4*second, 6*second, "Three."),
	})
	if len(merged) != 1 {
		t.Fatalf("expected one merged cue, got %v", spans(merged))
	}
	got := merged[0]
	if got.Start().Ticks != 0 || got.End().Ticks != 6*second {
		t.Fatalf("unexpected span %v", spans(merged))
	}
	if got.Line != "[ANNA] One. Two. Three." || got.ID != 0 || got.Casting != "F25-30" {
		t.Fatalf("unexpected merged cue %+v", got)
	}
}

func TestMergeSplitsAtPauseAfterIdeal(t *testing.T) {
	frame := int64(timecode.TicksPerFrame)
	merged := newMerger().Merge([]script.Cue{
		cue("ANNA", 0, 2*second, "One."),
		cue("ANNA", 2*second, 4*second, "Two."),
		cue("ANNA", 4*second+frame, 6*second+frame, "Three."),
	})
	want := [][2]int64{{0, 4 * second}, {4*second + frame, 6*second + frame}}
	if got := spans(merged); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("spans = %v, want %v", got, want)
	}
	if merged[0].Line != "[ANNA] One. Two." || merged[1].Line != "[ANNA] Three." {
		t.Fatalf("unexpected lines %q / %q", merged[0].Line, merged[1].Line)
	}
}

func TestMergeGapWithinToleranceIsShared(t *testing.T) {
	merged := newMerger().Merge([]script.Cue{
		cue("ANNA", 0, 2*second, "One."),
		cue("ANNA", 2*second, 4*second, "Two."),
		cue("ANNA", 4*second+500, 6*second, "Three."),
	})
	if len(merged) != 1 {
		t.Fatalf("expected gap of 500 ticks to keep one take, got %v", spans(merged))
	}
}

func TestMergeFlushesBeforeExceedingMax(t *testing.T) {
	merged := newMerger().Merge([]script.Cue{
		cue("BOB", 0, 3*second, "a"),
		cue("BOB", 3*second, 6*second, "b"),
		cue("BOB", 6*second, 9*second, "c"),
		cue("BOB", 9*second, 12*second, "d"),
	})
	want := [][2]int64{{0, 6 * second}, {6 * second, 12 * second}}
	if got := spans(merged); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("spans = %v, want %v", got, want)
	}
}

func TestMergeExcludedCharacterFlushesOnlyAtEnd(t *testing.T) {
	merged := newMerger().Merge([]script.Cue{
		cue("UNKNOWN", 0, 3*second, "a"),
		cue("UNKNOWN", 10*second, 13*second, "b"),
		cue("UNKNOWN", 20*second, 23*second, "c"),
	})
	if len(merged) != 1 || merged[0].End().Ticks != 23*second {
		t.Fatalf("expected a single take for excluded character, got %v", spans(merged))
	}
}

func TestMergeGroupsByCharacterAndSortsGlobally(t *testing.T) {
	merged := newMerger().Merge([]script.Cue{
		cue("BOB", 3*second, 4*second, "late"),
		cue("ANNA", 1*second, 2*second, "early"),
		cue("BOB", 0, 1*second, "first"),
	})
	if len(merged) != 2 {
		t.Fatalf("expected two takes, got %v", spans(merged))
	}
	if merged[0].Character != "BOB" || merged[0].Line != "[BOB] first late" || merged[0].ID != 0 {
		t.Fatalf("unexpected first take %+v", merged[0])
	}
	if merged[1].Character != "ANNA" || merged[1].ID != 1 {
		t.Fatalf("unexpected second take %+v", merged[1])
	}
}

func TestMergeJoinsUnresolvedSpeakerAcrossLabelCase(t *testing.T) {
	normalizer := script.NewNormalizer(speakers.NewResolver(&speakers.Registry{}, speakers.DefaultRatio), script.Options{FPS: 25})
	cues, err := normalizer.Normalize(script.Rows{
		{Number: 1, Fields: []script.Field{
			{Key: script.FieldTCIn, Text: "00:00:01:00"},
			{Key: script.FieldTCOut, Text: "00:00:02:00"},
			{Key: script.FieldSpeaker, Text: "zed"},
			{Key: script.FieldLine, Text: "One."},
		}},
		{Number: 2, Fields: []script.Field{
			{Key: script.FieldTCIn, Text: "00:00:02:00"},
			{Key: script.FieldTCOut, Text: "00:00:03:00"},
			{Key: script.FieldSpeaker, Text: "Zed"},
			{Key: script.FieldLine, Text: "Two."},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	merged := newMerger().Merge(cues)
	if len(merged) != 1 {
		t.Fatalf("expected one take, got %v", spans(merged))
	}
	if merged[0].Character != "ZED" || merged[0].Line != "[ZED] One. Two." {
		t.Fatalf("unexpected merged cue %+v", merged[0])
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := newMerger().Merge(nil); len(got) != 0 {
		t.Fatalf("expected no cues, got %v", got)
	}
}
