package ply

// WrapMode defines text wrapping behavior.
type WrapMode uint8

const (
	// WrapWords wraps at whitespace without breaking words.
	WrapWords WrapMode = iota
	// WrapNewlines wraps only at newline characters.
	WrapNewlines
	// WrapNone never wraps; text may overflow its parent.
	WrapNone
)

// TextConfig describes a text element. The engine does not manage fonts:
// callers assign their own FontID values and interpret them in the measure
// function and the renderer.
type TextConfig struct {
	Color         Color
	FontID        uint16
	FontSize      uint16
	LetterSpacing uint16
	LineHeight    uint16
	WrapMode      WrapMode
	Alignment     AlignX
	Effects       []ShaderConfig
	UserData      any
}

// MeasureTextFunc measures a run of text with the given config and returns
// its unwrapped dimensions. The engine calls it per word, so it must be
// cheap and deterministic for identical inputs.
type MeasureTextFunc func(text string, config *TextConfig) Dimensions
