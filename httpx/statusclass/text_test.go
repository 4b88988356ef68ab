package statusclass

import (
	"strconv"
	"testing"
)

func TestClassOfTextMatchesIntegers(t *testing.T) {
	for code := 100; code < 600; code++ {
		text := strconv.Itoa(code)
		if got, want := ClassOfText(text), ClassOf(code); got != want {
			t.Fatalf("ClassOfText(%q) = %v, want %v", text, got, want)
		}
		if got, want := ClassOfBytes([]byte(text)), ClassOf(code); got != want {
			t.Fatalf("ClassOfBytes(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestClassOfTextOutOfRangeDigits(t *testing.T) {
	for _, text := range []string{"000", "042", "099", "600", "700", "999"} {
		if got := ClassOfText(text); got != Unknown {
			t.Fatalf("ClassOfText(%q) = %v, want Unknown", text, got)
		}
	}
}

func TestClassOfTextRejectsMalformedInput(t *testing.T) {
	for _, text := range []string{
		"", "2", "20", "2000", "0200", " 200", "200 ",
		"2x0", "x00", "20x", "-20", "+20", "2.0", "２００", "\x00\x00\x00",
	} {
		if got := ClassOfText(text); got != Unknown {
			t.Fatalf("ClassOfText(%q) = %v, want Unknown", text, got)
		}
		if got := ClassOfBytes([]byte(text)); got != Unknown {
			t.Fatalf("ClassOfBytes(%q) = %v, want Unknown", text, got)
		}
	}
	if got := ClassOfBytes(nil); got != Unknown {
		t.Fatalf("ClassOfBytes(nil) = %v, want Unknown", got)
	}
}

func TestClassOfTextUsesLeadingDigit(t *testing.T) {
	cases := map[string]Class{
		"100": Informational,
		"199": Informational,
		"204": Success,
		"302": Redirection,
		"418": ClientError,
		"599": ServerError,
	}
	for text, want := range cases {
		if got := ClassOfText(text); got != want {
			t.Fatalf("ClassOfText(%q) = %v, want %v", text, got, want)
		}
	}
}
