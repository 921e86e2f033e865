package core

import "testing"

type menuMarker struct{}

func (menuMarker) TypePath() string { return "github.com/lixenwraith/scenery/core.menuMarker" }

type hudMarker struct{}

func (hudMarker) TypePath() string { return "github.com/lixenwraith/scenery/core.hudMarker" }

type blankMarker struct{}

func (blankMarker) TypePath() string { return "" }

// TestKeyOf_Stable verifies the same marker type always derives the same key
func TestKeyOf_Stable(t *testing.T) {
	first := KeyOf[menuMarker]()
	second := KeyOf[menuMarker]()
	if first != second {
		t.Errorf("Expected stable key, got %q and %q", first, second)
	}
	if first.String() != "github.com/lixenwraith/scenery/core.menuMarker" {
		t.Errorf("Unexpected key path: %s", first)
	}
}

// TestKeyOf_Distinct verifies distinct marker types derive distinct keys
func TestKeyOf_Distinct(t *testing.T) {
	if KeyOf[menuMarker]() == KeyOf[hudMarker]() {
		t.Error("Expected distinct keys for distinct marker types")
	}
}

// TestKeyOf_EmptyPathPanics verifies an empty TypePath is rejected
func TestKeyOf_EmptyPathPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for empty TypePath")
		}
	}()
	KeyOf[blankMarker]()
}

// TestKey_Short verifies the short form strips the import path
func TestKey_Short(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Key("github.com/lixenwraith/scenery/ui/dev.Modal"), "dev.Modal"},
		{Key("main.MainMenu"), "main.MainMenu"},
		{Key(""), ""},
	}
	for _, tc := range tests {
		if got := tc.key.Short(); got != tc.want {
			t.Errorf("Short(%q): expected %q, got %q", tc.key, tc.want, got)
		}
	}
}
