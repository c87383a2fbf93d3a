package density

import (
	"bytes"
	"math"
	"testing"

	"adrtools/internal/script"
	"adrtools/internal/timecode"
)

func frameCue(startFrame, endFrame int64) script.Cue {
	return script.Cue{Region: timecode.NewRegion(timecode.FromFrames(startFrame, 25), timecode.FromFrames(endFrame, 25))}
}

func TestAnalyzeWindowWeights(t *testing.T) {
	// 1000 frames over 100 windows gives 10 frames per window.
	tests := []struct {
		name string
		cues []script.Cue
		want map[int]float64
	}{
		{"one full window", []script.Cue{frameCue(20, 30)}, map[int]float64{2: 1}},
		{"two full windows", []script.Cue{frameCue(20, 40)}, map[int]float64{2: 1, 3: 1}},
		{"half window", []script.Cue{frameCue(20, 25)}, map[int]float64{2: 1}},
		{"straddles boundary", []script.Cue{frameCue(25, 35)}, map[int]float64{2: 0.5, 3: 0.5}},
		{"overlapping cues add", []script.Cue{frameCue(20, 30), frameCue(20, 30)}, map[int]float64{2: 2}},
		{"zero length", []script.Cue{frameCue(50, 50)}, map[int]float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := NewAnalyzer(Options{Windows: 100, FPS: 25, RuntimeSeconds: 40}).Analyze(tt.cues)
			if len(samples) != 100 {
				t.Fatalf("expected 100 samples, got %d", len(samples))
			}
			for i, s := range samples {
				if s.Frame != i || s.FrameStart != int64(i)*10 {
					t.Fatalf("sample %d = %+v", i, s)
				}
				if math.Abs(s.Value-tt.want[i]) > 1e-9 {
					t.Fatalf("window %d = %v, want %v", i, s.Value, tt.want[i])
				}
			}
		})
	}
}

func TestTotalFramesFromLatestCue(t *testing.T) {
	a := NewAnalyzer(Options{FPS: 25})
	cues := []script.Cue{frameCue(0, 100), frameCue(300, 200)}
	if got := a.TotalFrames(cues); got != 300 {
		t.Fatalf("TotalFrames = %d, want 300", got)
	}
	samples := a.Analyze(cues)
	if samples[1].FrameStart != 3 {
		t.Fatalf("expected window size 3, got frame start %d", samples[1].FrameStart)
	}
}

func TestAnalyzeShortRuntimeUsesUnitWindows(t *testing.T) {
	samples := NewAnalyzer(Options{Windows: 100, FPS: 25}).Analyze([]script.Cue{frameCue(0, 5)})
	for i := 0; i < 5; i++ {
		if samples[i].Value != 1 {
			t.Fatalf("window %d = %v, want 1", i, samples[i].Value)
		}
	}
	if samples[5].Value != 0 {
		t.Fatalf("window 5 = %v", samples[5].Value)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Sample{{Frame: 0, FrameStart: 0, Value: 1}, {Frame: 1, FrameStart: 10, Value: 0.25}})
	if err != nil {
		t.Fatal(err)
	}
	want := "frame\t0\t1\nframe_start\t0\t10\nvalue\t1\t0.25\n"
	if buf.String() != want {
		t.Fatalf("Write = %q, want %q", buf.String(), want)
	}
}
