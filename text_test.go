package ply

import (
	"errors"
	"testing"
)

func TestTextWrapsAtWordBoundaries(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})
	ctx.SetMeasureTextFunction(fixedMeasure(10, 20))

	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		ID:     ID("Paragraph"),
		Layout: LayoutConfig{Sizing: Sizing{Width: Fixed(100), Height: Fit(0, 0)}},
	}, func() {
		ctx.Text("aaa bbb ccc", TextConfig{FontSize: 16})
	})
	commands := ctx.EndLayout()

	texts := commandsOfType(commands, CommandText)
	if len(texts) != 2 {
		t.Fatalf("len(text commands) = %d, want 2", len(texts))
	}
	if texts[0].Text.Text != "aaa bbb" {
		t.Errorf("first line = %q, want %q", texts[0].Text.Text, "aaa bbb")
	}
	if texts[1].Text.Text != "ccc" {
		t.Errorf("second line = %q, want %q", texts[1].Text.Text, "ccc")
	}

	// The trailing space is trimmed from the broken line's width.
	if texts[0].BoundingBox.Width != 70 {
		t.Errorf("first line width = %v, want 70", texts[0].BoundingBox.Width)
	}
	if texts[1].BoundingBox.Y != 20 {
		t.Errorf("second line Y = %v, want 20", texts[1].BoundingBox.Y)
	}

	// The text element grew to two line heights.
	para, _ := ctx.ElementData(ID("Paragraph"))
	if para.Height != 40 {
		t.Errorf("paragraph height = %v, want 40", para.Height)
	}
}

func TestTextWrapNewlinesOnly(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})
	ctx.SetMeasureTextFunction(fixedMeasure(10, 20))

	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		ID:     ID("Paragraph"),
		Layout: LayoutConfig{Sizing: Sizing{Width: Fixed(50), Height: Fit(0, 0)}},
	}, func() {
		ctx.Text("aaa bbb\nccc", TextConfig{FontSize: 16, WrapMode: WrapNewlines})
	})
	commands := ctx.EndLayout()

	texts := commandsOfType(commands, CommandText)
	if len(texts) != 2 {
		t.Fatalf("len(text commands) = %d, want 2", len(texts))
	}
	// The first line overflows its 50px container rather than wrapping.
	if texts[0].Text.Text != "aaa bbb" {
		t.Errorf("first line = %q, want %q", texts[0].Text.Text, "aaa bbb")
	}
	if texts[1].Text.Text != "ccc" {
		t.Errorf("second line = %q, want %q", texts[1].Text.Text, "ccc")
	}
}

func TestTextWrapNoneNeverBreaks(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})
	ctx.SetMeasureTextFunction(fixedMeasure(10, 20))

	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		ID:     ID("Paragraph"),
		Layout: LayoutConfig{Sizing: Sizing{Width: Fixed(30), Height: Fit(0, 0)}},
	}, func() {
		ctx.Text("aaa bbb ccc", TextConfig{FontSize: 16, WrapMode: WrapNone})
	})
	commands := ctx.EndLayout()

	texts := commandsOfType(commands, CommandText)
	if len(texts) != 1 {
		t.Fatalf("len(text commands) = %d, want 1", len(texts))
	}
	if texts[0].Text.Text != "aaa bbb ccc" {
		t.Errorf("line = %q, want full text", texts[0].Text.Text)
	}
	if texts[0].BoundingBox.Width != 110 {
		t.Errorf("line width = %v, want 110 (overflowing the 30px box)", texts[0].BoundingBox.Width)
	}
}

func TestTextOverlongWordGetsOwnLine(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})
	ctx.SetMeasureTextFunction(fixedMeasure(10, 20))

	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		ID:     ID("Paragraph"),
		Layout: LayoutConfig{Sizing: Sizing{Width: Fixed(60), Height: Fit(0, 0)}},
	}, func() {
		ctx.Text("hi incomprehensible ok", TextConfig{FontSize: 16})
	})
	commands := ctx.EndLayout()

	texts := commandsOfType(commands, CommandText)
	var lines []string
	for _, cmd := range texts {
		lines = append(lines, cmd.Text.Text)
	}
	want := []string{"hi", "incomprehensible ", "ok"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTextAlignmentOffsetsShortLines(t *testing.T) {
	// The text element is 90 wide (the first line); the 20-wide second
	// line shifts within it according to the alignment.
	tests := []struct {
		name      string
		alignment AlignX
		wantX     float32
	}{
		{"left", AlignLeft, 0},
		{"center", AlignCenterX, 35},
		{"right", AlignRight, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(Dimensions{Width: 600, Height: 400})
			ctx.SetMeasureTextFunction(fixedMeasure(10, 20))

			ctx.BeginLayout()
			ctx.Element(ElementDeclaration{
				Layout: LayoutConfig{Sizing: Sizing{Width: Fixed(200), Height: Fixed(100)}},
			}, func() {
				ctx.Text("wide line\nok", TextConfig{
					FontSize:  16,
					WrapMode:  WrapNewlines,
					Alignment: tt.alignment,
				})
			})
			commands := ctx.EndLayout()

			text, ok := findTextCommand(commands, "ok")
			if !ok {
				t.Fatal("text command not found")
			}
			if text.BoundingBox.X != tt.wantX {
				t.Errorf("line X = %v, want %v", text.BoundingBox.X, tt.wantX)
			}
		})
	}
}

func TestMeasureFunctionRequired(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})

	var caught []*LayoutError
	ctx.SetErrorHandler(func(err *LayoutError) {
		caught = append(caught, err)
	})

	ctx.BeginLayout()
	ctx.Text("hello", TextConfig{FontSize: 16})
	ctx.Text("world", TextConfig{FontSize: 16})
	commands := ctx.EndLayout()

	count := 0
	for _, err := range caught {
		if errors.Is(err, &LayoutError{Kind: ErrTextMeasurementFunctionNotProvided}) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("missing-measure-function errors = %d, want 1 per frame", count)
	}
	if texts := commandsOfType(commands, CommandText); len(texts) != 0 {
		t.Errorf("len(text commands) = %d, want 0 without a measure function", len(texts))
	}
}

func TestMeasureCacheReuse(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})

	calls := 0
	base := fixedMeasure(10, 20)
	ctx.SetMeasureTextFunction(func(text string, config *TextConfig) Dimensions {
		calls++
		return base(text, config)
	})

	frame := func() {
		ctx.BeginLayout()
		ctx.Element(ElementDeclaration{
			Layout: LayoutConfig{Sizing: Sizing{Width: Fixed(300), Height: Fixed(100)}},
		}, func() {
			ctx.Text("hello world", TextConfig{FontSize: 16})
		})
		ctx.EndLayout()
	}

	frame()
	afterFirst := calls
	if afterFirst == 0 {
		t.Fatal("measure function never called")
	}

	// Identical text and config on later frames hit the cache.
	frame()
	frame()
	if calls != afterFirst {
		t.Errorf("calls = %d after repeat frames, want %d", calls, afterFirst)
	}

	// A config change measures again under a new key.
	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		Layout: LayoutConfig{Sizing: Sizing{Width: Fixed(300), Height: Fixed(100)}},
	}, func() {
		ctx.Text("hello world", TextConfig{FontSize: 32})
	})
	ctx.EndLayout()
	if calls == afterFirst {
		t.Error("font size change did not trigger a re-measure")
	}
}

func TestMeasureCacheEviction(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})

	calls := 0
	base := fixedMeasure(10, 20)
	ctx.SetMeasureTextFunction(func(text string, config *TextConfig) Dimensions {
		calls++
		return base(text, config)
	})

	textFrame := func() {
		ctx.BeginLayout()
		ctx.Text("transient", TextConfig{FontSize: 16})
		ctx.EndLayout()
	}
	emptyFrame := func() {
		ctx.BeginLayout()
		ctx.EndLayout()
	}

	textFrame()
	afterFirst := calls

	// The entry survives a frame without the text.
	emptyFrame()
	textFrame()
	if calls != afterFirst {
		t.Errorf("calls = %d, want %d (entry should still be cached)", calls, afterFirst)
	}

	// Enough absent frames evict it, forcing a fresh measurement.
	for i := 0; i < 4; i++ {
		emptyFrame()
	}
	textFrame()
	if calls == afterFirst {
		t.Error("stale cache entry was never evicted")
	}
}

func TestMeasureCacheCapacity(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})
	ctx.SetMeasureTextFunction(fixedMeasure(10, 20))
	ctx.SetMaxMeasureTextCacheWordCount(4)

	var caught []*LayoutError
	ctx.SetErrorHandler(func(err *LayoutError) {
		caught = append(caught, err)
	})

	ctx.BeginLayout()
	ctx.Text("one two three four five six seven eight nine ten", TextConfig{FontSize: 16})
	ctx.EndLayout()

	count := 0
	for _, err := range caught {
		if errors.Is(err, &LayoutError{Kind: ErrTextMeasurementCapacityExceeded}) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("capacity errors = %d, want 1", count)
	}
}
