package textutil

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"identical", "bob", "bob", 100},
		{"case insensitive", "BOB", "bob", 100},
		{"prefix", "bob", "bobby", 75},
		{"disjoint", "abc", "xyz", 0},
		{"empty left", "", "bob", 0},
		{"empty both", "", "", 0},
		{"transposition", "marie", "maria", 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); got != tt.want {
				t.Errorf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	if Ratio("jonathan", "jon") != Ratio("jon", "jonathan") {
		t.Fatal("Ratio not symmetric")
	}
}

func TestUpperAndFold(t *testing.T) {
	if got := Upper("  mrs. o'hara "); got != "MRS. O'HARA" {
		t.Errorf("Upper = %q", got)
	}
	if !EqualFold("Straße", "STRASSE") {
		t.Error("expected full case folding to equate ß and SS")
	}
}

func TestProductionCodes(t *testing.T) {
	tests := []struct {
		path string
		prod string
		ep   string
	}{
		{"/scripts/show_ep101_final.tsv", "SHOW", "EP101"},
		{"show_ep2.tsv", "SHOW", "EP2"},
		{"/out/SHOW_EP1.gen.TAB", "SHOW", "EP1"},
		{"noseparator.tsv", "DEFAULT", "PROD"},
		{"_ep1.tsv", "DEFAULT", "PROD"},
	}
	for _, tt := range tests {
		prod, ep := ProductionCodes(tt.path)
		if prod != tt.prod || ep != tt.ep {
			t.Errorf("ProductionCodes(%q) = (%q, %q), want (%q, %q)", tt.path, prod, ep, tt.prod, tt.ep)
		}
	}
	if got := OutputName("show_ep101.tsv", ".gen.TAB"); got != "SHOW_EP101.gen.TAB" {
		t.Errorf("OutputName = %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := SanitizeFileName(` a/b:c?"d" `); got != "a-b-cd" {
		t.Errorf("SanitizeFileName = %q", got)
	}
}
