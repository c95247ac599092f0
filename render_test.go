package ply

import (
	"math"
	"testing"
)

func TestRotatedFootprintClassification(t *testing.T) {
	slot := BoundingBox{X: 0, Y: 0, Width: 100, Height: 50}

	tests := []struct {
		name  string
		angle float64
		want  BoundingBox
	}{
		{"identity at 0", 0, slot},
		{"identity at 180", math.Pi, slot},
		{"swap at 90", math.Pi / 2, BoundingBox{X: 25, Y: -25, Width: 50, Height: 100}},
		{"swap at 270", 3 * math.Pi / 2, BoundingBox{X: 25, Y: -25, Width: 50, Height: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rotatedFootprint(slot, RotationConfig{AngleRadians: float32(tt.angle)}, 0)
			if !approxEqual(got.X, tt.want.X, 0.01) || !approxEqual(got.Y, tt.want.Y, 0.01) ||
				!approxEqual(got.Width, tt.want.Width, 0.01) || !approxEqual(got.Height, tt.want.Height, 0.01) {
				t.Errorf("footprint = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRotatedFootprintArbitraryAngle(t *testing.T) {
	slot := BoundingBox{X: 0, Y: 0, Width: 100, Height: 50}
	got := rotatedFootprint(slot, RotationConfig{AngleRadians: float32(math.Pi / 6)}, 0)

	// 30 degrees: strictly between the unrotated and 90-degree extremes.
	if got.Width <= 100 || got.Width >= 150 {
		t.Errorf("width = %v, want in (100, 150)", got.Width)
	}
	if got.Height <= 50 || got.Height >= 150 {
		t.Errorf("height = %v, want in (50, 150)", got.Height)
	}

	// The footprint stays centered on the layout slot.
	if cx := got.X + got.Width/2; !approxEqual(cx, 50, 0.01) {
		t.Errorf("center X = %v, want 50", cx)
	}
	if cy := got.Y + got.Height/2; !approxEqual(cy, 25, 0.01) {
		t.Errorf("center Y = %v, want 25", cy)
	}
}

func TestRotatedFootprintCornerRadiusExcluded(t *testing.T) {
	slot := BoundingBox{X: 0, Y: 0, Width: 100, Height: 100}
	radius := float32(20)
	angle := float32(math.Pi / 4)

	withRadius := rotatedFootprint(slot, RotationConfig{AngleRadians: angle}, radius)
	withoutRadius := rotatedFootprint(slot, RotationConfig{AngleRadians: angle}, 0)

	// Rounded corners stay inside the square's rotation sweep, so the
	// rounded footprint is strictly smaller.
	if withRadius.Width >= withoutRadius.Width {
		t.Errorf("rounded width = %v, want < %v", withRadius.Width, withoutRadius.Width)
	}
}

func TestRotationAffectsEmittedBoundingBox(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})

	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		ID:              ID("Spinner"),
		Layout:          LayoutConfig{Sizing: Sizing{Width: Fixed(100), Height: Fixed(50)}},
		BackgroundColor: cyan(),
		Rotation:        RotationConfig{AngleRadians: float32(math.Pi / 2), PivotX: 0.5, PivotY: 0.5},
	}, nil)
	commands := ctx.EndLayout()

	rects := commandsOfType(commands, CommandRectangle)
	if len(rects) != 1 {
		t.Fatalf("len(rects) = %d, want 1", len(rects))
	}
	got := rects[0].BoundingBox
	want := BoundingBox{X: 25, Y: -25, Width: 50, Height: 100}
	if !approxEqual(got.X, want.X, 0.01) || !approxEqual(got.Y, want.Y, 0.01) ||
		!approxEqual(got.Width, want.Width, 0.01) || !approxEqual(got.Height, want.Height, 0.01) {
		t.Errorf("rotated rect bbox = %+v, want %+v", got, want)
	}
	if rects[0].Rotation.AngleRadians == 0 {
		t.Error("rotation config not carried on the render command")
	}
}

func TestOffscreenElementsCulled(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})

	declare := func() []RenderCommand {
		ctx.BeginLayout()
		ctx.Element(ElementDeclaration{
			ID:              ID("Visible"),
			Layout:          LayoutConfig{Sizing: Sizing{Width: Fixed(50), Height: Fixed(50)}},
			BackgroundColor: red(),
		}, nil)
		ctx.Element(ElementDeclaration{
			ID:              ID("FarAway"),
			Layout:          LayoutConfig{Sizing: Sizing{Width: Fixed(50), Height: Fixed(50)}},
			BackgroundColor: cyan(),
			Floating: FloatingConfig{
				AttachTo: AttachToRoot,
				Offset:   Vector2{X: 5000, Y: 5000},
			},
		}, nil)
		return ctx.EndLayout()
	}

	if rects := commandsOfType(declare(), CommandRectangle); len(rects) != 1 {
		t.Errorf("len(rects) = %d with culling, want 1", len(rects))
	}

	ctx.SetCullingEnabled(false)
	if rects := commandsOfType(declare(), CommandRectangle); len(rects) != 2 {
		t.Errorf("len(rects) = %d without culling, want 2", len(rects))
	}
}

func TestClipElementEmitsScissorPair(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})

	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		ID:     ID("Viewport"),
		Layout: LayoutConfig{Sizing: Sizing{Width: Fixed(100), Height: Fixed(100)}},
		Clip:   ClipConfig{Horizontal: true, Vertical: true},
	}, func() {
		ctx.Element(ElementDeclaration{
			ID:              ID("Clipped"),
			Layout:          LayoutConfig{Sizing: Sizing{Width: Fixed(300), Height: Fixed(300)}},
			BackgroundColor: cyan(),
		}, nil)
	})
	commands := ctx.EndLayout()

	var startIdx, rectIdx, endIdx = -1, -1, -1
	for i, cmd := range commands {
		switch cmd.Type {
		case CommandScissorStart:
			startIdx = i
		case CommandRectangle:
			rectIdx = i
		case CommandScissorEnd:
			endIdx = i
		}
	}
	if startIdx == -1 || rectIdx == -1 || endIdx == -1 {
		t.Fatalf("missing scissor commands: start=%d rect=%d end=%d", startIdx, rectIdx, endIdx)
	}
	if !(startIdx < rectIdx && rectIdx < endIdx) {
		t.Errorf("scissor bracket does not enclose content: start=%d rect=%d end=%d", startIdx, rectIdx, endIdx)
	}
	if commands[startIdx].ID != ID("Viewport").ID {
		t.Errorf("scissor start id = %#x, want clip element id %#x", commands[startIdx].ID, ID("Viewport").ID)
	}
	if commands[startIdx].BoundingBox != (BoundingBox{X: 0, Y: 0, Width: 100, Height: 100}) {
		t.Errorf("scissor bbox = %+v, want the clip element's box", commands[startIdx].BoundingBox)
	}
}

func TestShaderEffectsBracketSubtree(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})

	blur := ShaderConfig{CacheKey: "blur-8", Fragment: "// fragment source"}

	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		ID:              ID("Panel"),
		Layout:          LayoutConfig{Sizing: Sizing{Width: Fixed(100), Height: Fixed(100)}},
		BackgroundColor: red(),
		Effects:         []ShaderConfig{blur},
	}, func() {
		ctx.Element(ElementDeclaration{
			ID:              ID("Inner"),
			Layout:          LayoutConfig{Sizing: Sizing{Width: Fixed(40), Height: Fixed(40)}},
			BackgroundColor: cyan(),
		}, nil)
	})
	commands := ctx.EndLayout()

	var order []RenderCommandType
	for _, cmd := range commands {
		order = append(order, cmd.Type)
	}
	want := []RenderCommandType{
		CommandShaderBegin,
		CommandRectangle,
		CommandRectangle,
		CommandShaderEnd,
	}
	if len(order) != len(want) {
		t.Fatalf("command types = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("command types = %v, want %v", order, want)
		}
	}

	if commands[0].Shader.CacheKey != "blur-8" {
		t.Errorf("shader cache key = %q, want %q", commands[0].Shader.CacheKey, "blur-8")
	}
	if len(commands[1].Effects) != 1 {
		t.Errorf("element effects count = %d, want 1", len(commands[1].Effects))
	}
}

func TestShaderEffectChainNesting(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})

	effects := []ShaderConfig{
		{CacheKey: "desaturate"},
		{CacheKey: "vignette"},
	}

	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		ID:              ID("Panel"),
		Layout:          LayoutConfig{Sizing: Sizing{Width: Fixed(100), Height: Fixed(100)}},
		BackgroundColor: red(),
		Effects:         effects,
	}, nil)
	commands := ctx.EndLayout()

	var begins, ends int
	for _, cmd := range commands {
		switch cmd.Type {
		case CommandShaderBegin:
			begins++
		case CommandShaderEnd:
			ends++
		}
	}
	if begins != 2 || ends != 2 {
		t.Errorf("shader brackets = %d begins / %d ends, want 2 / 2", begins, ends)
	}
	if commands[0].Shader.CacheKey != "desaturate" || commands[1].Shader.CacheKey != "vignette" {
		t.Error("shader chain order not preserved")
	}
}

func TestImageElementCommand(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})

	payload := struct{ name string }{"texture-atlas"}

	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		ID:     ID("Icon"),
		Layout: LayoutConfig{Sizing: Sizing{Width: Fixed(32), Height: Fixed(32)}},
		Image:  ImageConfig{Data: payload},
	}, nil)
	commands := ctx.EndLayout()

	images := commandsOfType(commands, CommandImage)
	if len(images) != 1 {
		t.Fatalf("len(images) = %d, want 1", len(images))
	}
	if images[0].Image.Data != payload {
		t.Error("image payload not passed through")
	}
	// Image replaces the rectangle for the element.
	if rects := commandsOfType(commands, CommandRectangle); len(rects) != 0 {
		t.Errorf("len(rects) = %d, want 0", len(rects))
	}
}

func TestCustomElementCommand(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})

	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		ID:         ID("Canvas"),
		Layout:     LayoutConfig{Sizing: Sizing{Width: Fixed(64), Height: Fixed(64)}},
		CustomData: "draw-me",
	}, nil)
	commands := ctx.EndLayout()

	customs := commandsOfType(commands, CommandCustom)
	if len(customs) != 1 {
		t.Fatalf("len(customs) = %d, want 1", len(customs))
	}
	if customs[0].Custom.Data != "draw-me" {
		t.Error("custom payload not passed through")
	}
}

func TestBorderBetweenChildren(t *testing.T) {
	ctx := NewContext(Dimensions{Width: 600, Height: 400})

	ctx.BeginLayout()
	ctx.Element(ElementDeclaration{
		ID: ID("Table"),
		Layout: LayoutConfig{
			Sizing:          Sizing{Width: Fixed(100), Height: Fixed(90)},
			LayoutDirection: TopToBottom,
		},
		Border: BorderConfig{
			Color: midGray(),
			Width: BorderWidth{BetweenChildren: 1},
		},
	}, func() {
		for i := 0; i < 3; i++ {
			ctx.Element(ElementDeclaration{
				Layout: LayoutConfig{Sizing: Sizing{Width: Grow(0, 0), Height: Fixed(30)}},
			}, nil)
		}
	})
	commands := ctx.EndLayout()

	borders := commandsOfType(commands, CommandBorder)
	if len(borders) != 1 {
		t.Fatalf("len(borders) = %d, want 1", len(borders))
	}

	// Two separator lines for three children.
	separators := commandsOfType(commands, CommandRectangle)
	if len(separators) != 2 {
		t.Fatalf("len(separators) = %d, want 2", len(separators))
	}
	if separators[0].BoundingBox.Y != 30 || separators[1].BoundingBox.Y != 60 {
		t.Errorf("separator Ys = %v, %v, want 30, 60",
			separators[0].BoundingBox.Y, separators[1].BoundingBox.Y)
	}
	if separators[0].BoundingBox.Height != 1 || separators[0].BoundingBox.Width != 100 {
		t.Errorf("separator box = %+v, want 100x1", separators[0].BoundingBox)
	}
}
