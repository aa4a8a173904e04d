package vcp

import (
	"testing"
)

func TestFeatureCodeString(t *testing.T) {
	tests := []struct {
		code FeatureCode
		want string
	}{
		{Luminance, "Luminance"},
		{PowerMode, "PowerMode"},
		{0xE9, "0xE9"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("FeatureCode(0x%02X).String() = %q, want %q", uint8(tt.code), got, tt.want)
		}
	}
}

func TestParseFeatureCode(t *testing.T) {
	tests := []struct {
		input string
		want  FeatureCode
	}{
		{"Luminance", Luminance},
		{"0x10", Luminance},
		{"10", Luminance},
		{"d6", PowerMode},
		{"0XDF", VersionCode},
	}
	for _, tt := range tests {
		got, err := ParseFeatureCode(tt.input)
		if err != nil {
			t.Fatalf("ParseFeatureCode(%q) returned error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseFeatureCode(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseFeatureCode_Invalid(t *testing.T) {
	for _, input := range []string{"", "0x", "100", "zz", "10z"} {
		if _, err := ParseFeatureCode(input); err == nil {
			t.Errorf("ParseFeatureCode(%q) should return error", input)
		}
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(Luminance) != KindContinuous {
		t.Error("Luminance should be continuous")
	}
	if KindOf(InputSource) != KindNonContinuous {
		t.Error("InputSource should be non-continuous")
	}
	if KindOf(LUTTable) != KindTable {
		t.Error("LUTTable should be a table")
	}
}

func TestParseRangePolicy(t *testing.T) {
	for input, want := range map[string]RangePolicy{"": RangeClamp, "clamp": RangeClamp, "strict": RangeStrict} {
		got, err := ParseRangePolicy(input)
		if err != nil || got != want {
			t.Errorf("ParseRangePolicy(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseRangePolicy("loose"); err == nil {
		t.Error("ParseRangePolicy(loose) should return error")
	}
}
