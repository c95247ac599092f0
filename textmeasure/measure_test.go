package textmeasure

import (
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/agiangrant/ply"
)

// Face7x13 advances 7 pixels per glyph and stands 11+2 pixels tall.
const (
	glyph7 = float32(7)
	line13 = float32(13)
)

func TestMeasureTextBasicFace(t *testing.T) {
	m := New()
	tests := []struct {
		name string
		text string
		want ply.Dimensions
	}{
		{"empty", "", ply.Dimensions{Width: 0, Height: line13}},
		{"single glyph", "a", ply.Dimensions{Width: glyph7, Height: line13}},
		{"word", "abc", ply.Dimensions{Width: 3 * glyph7, Height: line13}},
		{"with space", "ab cd", ply.Dimensions{Width: 5 * glyph7, Height: line13}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.MeasureText(tt.text, &ply.TextConfig{})
			if got != tt.want {
				t.Errorf("MeasureText(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMeasureTextLetterSpacing(t *testing.T) {
	m := New()
	got := m.MeasureText("abc", &ply.TextConfig{LetterSpacing: 2})
	want := 3*glyph7 + 2*2
	if got.Width != want {
		t.Errorf("Width = %v, want %v", got.Width, want)
	}

	// Spacing sits between glyphs, so a single glyph gets none.
	got = m.MeasureText("a", &ply.TextConfig{LetterSpacing: 2})
	if got.Width != glyph7 {
		t.Errorf("single glyph Width = %v, want %v", got.Width, glyph7)
	}
}

func TestMeasureTextMissingGlyphFallsBack(t *testing.T) {
	m := New()
	// Face7x13 has no CJK coverage; missing runes measure as '?'.
	got := m.MeasureText("a世b", &ply.TextConfig{})
	if got.Width != 3*glyph7 {
		t.Errorf("Width = %v, want %v", got.Width, 3*glyph7)
	}
}

func TestMeasureTextUnknownFontUsesDefault(t *testing.T) {
	m := New()
	got := m.MeasureText("abc", &ply.TextConfig{FontID: 42})
	want := m.MeasureText("abc", &ply.TextConfig{FontID: 0})
	if got != want {
		t.Errorf("unknown font = %+v, want default face result %+v", got, want)
	}
}

func TestRegisterFace(t *testing.T) {
	m := New()
	m.RegisterFace(3, basicfont.Face7x13)
	got := m.MeasureText("xyz", &ply.TextConfig{FontID: 3})
	if got != (ply.Dimensions{Width: 3 * glyph7, Height: line13}) {
		t.Errorf("MeasureText = %+v, want %vx%v", got, 3*glyph7, line13)
	}
}

func TestFixed(t *testing.T) {
	measure := Fixed(10, 20)
	tests := []struct {
		name    string
		text    string
		spacing uint16
		want    ply.Dimensions
	}{
		{"empty", "", 0, ply.Dimensions{Width: 0, Height: 20}},
		{"word", "abcd", 0, ply.Dimensions{Width: 40, Height: 20}},
		{"spacing between glyphs", "abcd", 3, ply.Dimensions{Width: 49, Height: 20}},
		{"multibyte counts runes", "日本", 0, ply.Dimensions{Width: 20, Height: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := measure(tt.text, &ply.TextConfig{LetterSpacing: tt.spacing})
			if got != tt.want {
				t.Errorf("measure(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFixedDrivesLayout(t *testing.T) {
	ctx := ply.NewContext(ply.Dimensions{Width: 400, Height: 300})
	ctx.SetMeasureTextFunction(Fixed(10, 20))

	ctx.BeginLayout()
	ctx.OpenElement()
	ctx.ConfigureOpenElement(ply.ElementDeclaration{
		ID: ply.ID("Panel"),
		Layout: ply.LayoutConfig{
			Sizing: ply.Sizing{Width: ply.Fixed(200), Height: ply.Fit(0, 0)},
		},
	})
	ctx.Text("hello", ply.TextConfig{FontSize: 16})
	ctx.CloseElement()
	commands := ctx.EndLayout()

	var text *ply.RenderCommand
	for i := range commands {
		if commands[i].Type == ply.CommandText {
			text = &commands[i]
			break
		}
	}
	if text == nil {
		t.Fatal("no text command emitted")
	}
	if text.BoundingBox.Width != 50 || text.BoundingBox.Height != 20 {
		t.Errorf("text box = %vx%v, want 50x20",
			text.BoundingBox.Width, text.BoundingBox.Height)
	}
}
