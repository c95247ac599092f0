package ply

import "testing"

func TestIDDeterministic(t *testing.T) {
	a := ID("SideBar")
	b := ID("SideBar")
	if a.ID != b.ID {
		t.Errorf("ID(%q) not deterministic: %#x vs %#x", "SideBar", a.ID, b.ID)
	}
	if a.ID == 0 {
		t.Error("ID() returned zero id")
	}
	if a.StringID != "SideBar" {
		t.Errorf("StringID = %q, want %q", a.StringID, "SideBar")
	}
}

func TestIDDistinctLabels(t *testing.T) {
	labels := []string{"Header", "Footer", "Body", "Sidebar", "a", "b", ""}
	seen := map[uint32]string{}
	for _, label := range labels {
		id := ID(label)
		if prev, ok := seen[id.ID]; ok {
			t.Errorf("ID(%q) collides with ID(%q): %#x", label, prev, id.ID)
		}
		seen[id.ID] = label
	}
}

func TestIDIIndexedVariants(t *testing.T) {
	base := ID("ListItem")
	tests := []struct {
		name  string
		index uint32
	}{
		{"index 0", 0},
		{"index 1", 1},
		{"index 2", 2},
		{"index 100", 100},
	}

	seen := map[uint32]bool{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := IDI("ListItem", tt.index)
			if id.BaseID != base.BaseID {
				t.Errorf("IDI BaseID = %#x, want %#x", id.BaseID, base.BaseID)
			}
			if id.Offset != tt.index {
				t.Errorf("IDI Offset = %d, want %d", id.Offset, tt.index)
			}
			if seen[id.ID] {
				t.Errorf("IDI(%q, %d) collides with earlier index", "ListItem", tt.index)
			}
			seen[id.ID] = true
		})
	}
}

func TestIDIZeroMatchesID(t *testing.T) {
	if got, want := IDI("Panel", 0).ID, ID("Panel").ID; got != want {
		t.Errorf("IDI(label, 0) = %#x, want ID(label) = %#x", got, want)
	}
}

func TestHashNumberSeedSeparation(t *testing.T) {
	// The same child offset under different parents must produce
	// different ids.
	parentA := ID("ParentA").ID
	parentB := ID("ParentB").ID
	if hashNumber(0, parentA).ID == hashNumber(0, parentB).ID {
		t.Error("anonymous child ids collide across parents")
	}
	if hashNumber(0, parentA).ID == hashNumber(1, parentA).ID {
		t.Error("anonymous sibling ids collide")
	}
}

func TestHashTextWithConfig(t *testing.T) {
	base := TextConfig{FontID: 1, FontSize: 16}
	tests := []struct {
		name   string
		text   string
		config TextConfig
		same   bool
	}{
		{"identical inputs", "hello", base, true},
		{"different font size", "hello", TextConfig{FontID: 1, FontSize: 24}, false},
		{"different font id", "hello", TextConfig{FontID: 2, FontSize: 16}, false},
		{"different letter spacing", "hello", TextConfig{FontID: 1, FontSize: 16, LetterSpacing: 2}, false},
		{"different text", "world", base, false},
	}

	reference := hashTextWithConfig("hello", &base)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hashTextWithConfig(tt.text, &tt.config)
			if (got == reference) != tt.same {
				t.Errorf("hashTextWithConfig = %#x, reference %#x, want same=%v", got, reference, tt.same)
			}
		})
	}
}
