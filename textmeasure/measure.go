// Package textmeasure provides ready-made text measurement functions for
// the ply layout engine, built on golang.org/x/image/font metrics.
//
// It covers Latin and other simple scripts measured with a font.Face. Real
// applications typically plug in their renderer's own measurement instead;
// these implementations exist so layouts can be driven, and tested, without
// a rendering backend.
package textmeasure

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/agiangrant/ply"
)

// Measurer measures text with a set of registered font faces, keyed by the
// font ids used in ply.TextConfig. It is stateless after setup and safe for
// concurrent use once all faces are registered.
type Measurer struct {
	faces map[uint16]font.Face
}

// New returns a Measurer with the basicfont 7x13 face registered as font 0.
func New() *Measurer {
	return &Measurer{
		faces: map[uint16]font.Face{0: basicfont.Face7x13},
	}
}

// RegisterFace associates a font id with a face. Registering must finish
// before the measurer is handed to the engine.
func (m *Measurer) RegisterFace(fontID uint16, face font.Face) {
	m.faces[fontID] = face
}

// MeasureText implements ply.MeasureTextFunc. Width is the summed glyph
// advances plus letter spacing between glyphs; height comes from the face
// metrics.
func (m *Measurer) MeasureText(text string, config *ply.TextConfig) ply.Dimensions {
	face, ok := m.faces[config.FontID]
	if !ok {
		face = m.faces[0]
	}
	if face == nil {
		return ply.Dimensions{}
	}

	metrics := face.Metrics()
	height := float32(metrics.Ascent.Round() + metrics.Descent.Round())

	var width float32
	glyphs := 0
	for _, r := range text {
		advance, ok := face.GlyphAdvance(r)
		if !ok {
			advance, _ = face.GlyphAdvance('?')
		}
		width += float32(advance) / 64
		glyphs++
	}
	if glyphs > 1 {
		width += float32(config.LetterSpacing) * float32(glyphs-1)
	}

	return ply.Dimensions{Width: width, Height: height}
}

// Fixed returns a measurement function with a constant glyph advance and
// line height, independent of any font. Deterministic layouts built on it
// are convenient in tests and headless tools.
func Fixed(glyphWidth, lineHeight float32) ply.MeasureTextFunc {
	return func(text string, config *ply.TextConfig) ply.Dimensions {
		count := 0
		for range text {
			count++
		}
		width := glyphWidth * float32(count)
		if count > 1 {
			width += float32(config.LetterSpacing) * float32(count-1)
		}
		return ply.Dimensions{Width: width, Height: lineHeight}
	}
}
