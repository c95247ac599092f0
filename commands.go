package ply

// RenderCommandType discriminates render commands.
type RenderCommandType uint8

const (
	CommandNone RenderCommandType = iota
	CommandRectangle
	CommandBorder
	CommandText
	CommandImage
	CommandScissorStart
	CommandScissorEnd
	CommandCustom
	CommandShaderBegin
	CommandShaderEnd
)

// String returns the command type name, for logs and debug output.
func (t RenderCommandType) String() string {
	switch t {
	case CommandNone:
		return "None"
	case CommandRectangle:
		return "Rectangle"
	case CommandBorder:
		return "Border"
	case CommandText:
		return "Text"
	case CommandImage:
		return "Image"
	case CommandScissorStart:
		return "ScissorStart"
	case CommandScissorEnd:
		return "ScissorEnd"
	case CommandCustom:
		return "Custom"
	case CommandShaderBegin:
		return "ShaderBegin"
	case CommandShaderEnd:
		return "ShaderEnd"
	}
	return "Unknown"
}

// RectangleData is the payload of a CommandRectangle.
type RectangleData struct {
	BackgroundColor Color
	CornerRadius    CornerRadius
}

// TextData is the payload of a CommandText. Each wrapped line of a text
// element becomes its own command.
type TextData struct {
	Text          string
	Color         Color
	FontID        uint16
	FontSize      uint16
	LetterSpacing uint16
	LineHeight    uint16
}

// ImageData is the payload of a CommandImage.
type ImageData struct {
	BackgroundColor Color
	CornerRadius    CornerRadius
	Data            any
}

// BorderData is the payload of a CommandBorder.
type BorderData struct {
	Color        Color
	CornerRadius CornerRadius
	Width        BorderWidth
}

// CustomData is the payload of a CommandCustom.
type CustomData struct {
	BackgroundColor Color
	CornerRadius    CornerRadius
	Data            any
}

// RenderCommand is one drawing instruction. Commands are emitted in paint
// order: consumers draw them front to back of the slice with no sorting.
type RenderCommand struct {
	// BoundingBox is the area the command occupies. For rotated elements it
	// is the rotated footprint, not the layout slot.
	BoundingBox BoundingBox
	Type        RenderCommandType
	Rectangle   RectangleData
	Text        TextData
	Image       ImageData
	Border      BorderData
	Custom      CustomData
	// Shader is set on CommandShaderBegin.
	Shader ShaderConfig
	// Effects are per-element shader effects, applied in order.
	Effects  []ShaderConfig
	Rotation RotationConfig
	UserData any
	ID       uint32
	ZIndex   int16
}
