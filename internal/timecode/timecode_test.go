package timecode

import "testing"

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		"00:00:00:00",
		"00:00:10:24",
		"01:02:03:04",
		"10:59:59:24",
	}
	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			tc, err := Parse(value, 25)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", value, err)
			}
			if got := tc.String(); got != value {
				t.Errorf("String() = %q, want %q", got, value)
			}
		})
	}
}

func TestParseTicks(t *testing.T) {
	tc := MustParse("00:00:01:05", 25)
	if tc.Ticks != 30*TicksPerFrame {
		t.Fatalf("Ticks = %d, want %d", tc.Ticks, 30*TicksPerFrame)
	}
	if tc.Frames() != 30 {
		t.Fatalf("Frames() = %d, want 30", tc.Frames())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"too few fields", "00:00:10"},
		{"not a number", "00:aa:10:00"},
		{"frame equals rate", "00:00:10:25"},
		{"minutes overflow", "00:60:00:00"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.value, 25); err == nil {
				t.Fatalf("Parse(%q) expected error", tt.value)
			}
		})
	}
}

func TestFixFrameOverflow(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"00:00:10:25", "00:00:10:24"},
		{"00:00:10:10", "00:00:10:10"},
		{" 00:00:10:25 ", "00:00:10:24"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := FixFrameOverflow(tt.value, 25); got != tt.want {
			t.Errorf("FixFrameOverflow(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFixedRoundTrip(t *testing.T) {
	raw := "00:00:10:25"
	tc, err := ParseFixed(raw, 25)
	if err != nil {
		t.Fatalf("ParseFixed error: %v", err)
	}
	if tc.String() != FixFrameOverflow(raw, 25) {
		t.Fatalf("round trip = %q, want %q", tc.String(), FixFrameOverflow(raw, 25))
	}
}

func TestArithmetic(t *testing.T) {
	a := MustParse("00:00:02:00", 25)
	b := MustParse("00:00:01:10", 25)

	if got := a.Add(b).String(); got != "00:00:03:10" {
		t.Errorf("Add = %q", got)
	}
	if got := a.Sub(b).String(); got != "00:00:00:15" {
		t.Errorf("Sub = %q", got)
	}
	if got := b.Sub(a).Ticks; got != 0 {
		t.Errorf("Sub below zero = %d, want clamp to 0", got)
	}
	if got := b.Diff(a); got != -15*TicksPerFrame {
		t.Errorf("Diff = %d", got)
	}
	if !b.Before(a) || !a.After(b) || a.Equal(b) {
		t.Error("ordering helpers disagree")
	}
	if a.Compare(b) != 1 || b.Compare(a) != -1 || a.Compare(a) != 0 {
		t.Error("Compare disagrees")
	}
}

func TestSecondsToTicks(t *testing.T) {
	if got := SecondsToTicks(5, 25); got != 125000 {
		t.Fatalf("SecondsToTicks(5, 25) = %d, want 125000", got)
	}
	if got := FromSeconds(2, 25).String(); got != "00:00:02:00" {
		t.Fatalf("FromSeconds = %q", got)
	}
}

func TestRegionDuration(t *testing.T) {
	start := MustParse("00:00:01:00", 25)
	end := MustParse("00:00:03:00", 25)

	forward := NewRegion(start, end)
	backward := NewRegion(end, start)
	if forward.Duration() != 50*TicksPerFrame {
		t.Fatalf("Duration = %d", forward.Duration())
	}
	if backward.Duration() != forward.Duration() {
		t.Fatalf("reversed Duration = %d, want %d", backward.Duration(), forward.Duration())
	}
	if got := forward.String(); got != "00:00:01:00 --> 00:00:03:00" {
		t.Fatalf("String() = %q", got)
	}
}

func TestParseRegionAppliesFix(t *testing.T) {
	region, err := ParseRegion("00:00:01:25", "00:00:02:25", 25)
	if err != nil {
		t.Fatalf("ParseRegion error: %v", err)
	}
	if region.Start.String() != "00:00:01:24" || region.End.String() != "00:00:02:24" {
		t.Fatalf("unexpected region %s", region)
	}
}

func TestSpan(t *testing.T) {
	regions := []Region{
		NewRegion(MustParse("00:00:01:00", 25), MustParse("00:00:02:00", 25)),
		NewRegion(MustParse("00:00:02:00", 25), MustParse("00:00:04:00", 25)),
	}
	span := Span(regions)
	if span.Start.String() != "00:00:01:00" || span.End.String() != "00:00:04:00" {
		t.Fatalf("Span = %s", span)
	}
	if (Span(nil) != Region{}) {
		t.Fatal("expected zero region for empty sequence")
	}
}
