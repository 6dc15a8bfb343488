package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"already clean", "Priya Sharma", "Priya Sharma"},
		{"leading and trailing spaces", "  Priya Sharma  ", "Priya Sharma"},
		{"internal run of spaces", "Priya    Sharma", "Priya Sharma"},
		{"tabs and newlines inside", "Priya\t\nSharma", "Priya Sharma"},
		{"mixed padding and runs", " \tPriya  \n Sharma ", "Priya Sharma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimAndNormalize_Idempotent(t *testing.T) {
	input := "  Priya   Sharma  "
	once := TrimAndNormalize(input)
	twice := TrimAndNormalize(once)
	if once != twice {
		t.Errorf("not idempotent: %q vs %q", once, twice)
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercase unchanged", "priya@example.com", "priya@example.com"},
		{"uppercase lowered", "Priya.Sharma@Example.COM", "priya.sharma@example.com"},
		{"padded and mixed case", "  Priya@EXAMPLE.com  ", "priya@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEmail(tt.input); got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("  +91 98765 43210  "); got != "+91 98765 43210" {
		t.Errorf("NormalizePhone trimmed wrong: %q", got)
	}
}

func TestPipeline_AppliesInOrder(t *testing.T) {
	p := Pipeline{
		func(s string) string { return s + "b" },
		func(s string) string { return s + "c" },
	}
	if got := p.Apply("a"); got != "abc" {
		t.Errorf("Pipeline.Apply = %q, want %q", got, "abc")
	}
}
