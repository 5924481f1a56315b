package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	if got := NormalizeE164("+375 29 123-45-67"); got != "+375291234567" {
		t.Fatalf("expected E.164 number, got %q", got)
	}
	if got := NormalizeE164("  not a phone "); got != "not a phone" {
		t.Fatalf("expected trimmed input back, got %q", got)
	}
}

func TestIsValidForRegion(t *testing.T) {
	if !IsValidForRegion("+375 29 123-45-67", "BY") {
		t.Fatal("expected Belarusian mobile number to be valid")
	}
	if IsValidForRegion("+31 6 12345678", "BY") {
		t.Fatal("expected Dutch number to be rejected for BY")
	}
	if IsValidForRegion("", "BY") {
		t.Fatal("expected empty input to be rejected")
	}
}
