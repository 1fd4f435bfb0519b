package util

import (
	"reflect"
	"testing"
)

func TestKeyFromName(t *testing.T) {
	tests := map[string]string{
		"RAM":              "ram",
		"Screen Size (in)": "screen_size_in",
		"  Wi-Fi 6E ":      "wi_fi_6e",
		"Объём":            "",
		"CPU__Cores":       "cpu_cores",
	}
	for in, want := range tests {
		if got := KeyFromName(in); got != want {
			t.Errorf("KeyFromName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugify(t *testing.T) {
	if got := Slugify("Gaming Laptops"); got != "gaming-laptops" {
		t.Errorf("Slugify = %q", got)
	}
}

func TestSplitCSV(t *testing.T) {
	if got := SplitCSV(""); got != nil {
		t.Errorf("empty = %v", got)
	}
	if got, want := SplitCSV("hp, canon,,epson "), []string{"hp", "canon", "epson"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SplitCSV = %v, want %v", got, want)
	}
}
