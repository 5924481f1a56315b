package validator

import (
	"strings"
	"testing"
)

type sample struct {
	Name    string  `json:"name" validate:"required,notblank"`
	Comment *string `json:"comment" validate:"omitempty,notblank"`
}

func TestNotBlankRejectsWhitespace(t *testing.T) {
	val := New()

	if err := val.Struct(sample{Name: "Томат"}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	err := val.Struct(sample{Name: "   "})
	if err == nil {
		t.Fatal("expected whitespace name to fail")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Fatalf("expected JSON field name in error, got %v", err)
	}

	blank := " "
	if err := val.Struct(sample{Name: "ok", Comment: &blank}); err == nil {
		t.Fatal("expected blank comment to fail")
	}
}

type preferences struct {
	Theme  string  `json:"theme" validate:"required,theme"`
	Status *string `json:"status" validate:"omitempty,order_status"`
}

func TestThemeAndOrderStatusTags(t *testing.T) {
	val := New()

	shipped := "shipped"
	if err := val.Struct(preferences{Theme: "dark", Status: &shipped}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
	if err := val.Struct(preferences{Theme: "blue"}); err == nil {
		t.Fatal("expected unknown theme to fail")
	}
	lost := "lost"
	if err := val.Struct(preferences{Theme: "light", Status: &lost}); err == nil {
		t.Fatal("expected unknown status to fail")
	}
}
