package ply

import "math"

// fixedMeasure returns a measurement function with a constant glyph advance
// and line height, so layouts in tests are fully deterministic.
func fixedMeasure(glyphWidth, lineHeight float32) MeasureTextFunc {
	return func(text string, config *TextConfig) Dimensions {
		count := 0
		for range text {
			count++
		}
		width := glyphWidth * float32(count)
		if count > 1 {
			width += float32(config.LetterSpacing) * float32(count-1)
		}
		return Dimensions{Width: width, Height: lineHeight}
	}
}

func approxEqual(a, b, tolerance float32) bool {
	return math.Abs(float64(a-b)) <= float64(tolerance)
}

func commandsOfType(commands []RenderCommand, commandType RenderCommandType) []RenderCommand {
	var out []RenderCommand
	for _, cmd := range commands {
		if cmd.Type == commandType {
			out = append(out, cmd)
		}
	}
	return out
}

func findTextCommand(commands []RenderCommand, text string) (RenderCommand, bool) {
	for _, cmd := range commands {
		if cmd.Type == CommandText && cmd.Text.Text == text {
			return cmd, true
		}
	}
	return RenderCommand{}, false
}
