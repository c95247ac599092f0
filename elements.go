package ply

// CornerRadius holds per-corner rounding in pixels.
type CornerRadius struct {
	TopLeft     float32
	TopRight    float32
	BottomLeft  float32
	BottomRight float32
}

// CornerRadiusAll rounds every corner by the same amount.
func CornerRadiusAll(value float32) CornerRadius {
	return CornerRadius{TopLeft: value, TopRight: value, BottomLeft: value, BottomRight: value}
}

// IsZero reports whether no corner is rounded.
func (c CornerRadius) IsZero() bool {
	return c.TopLeft == 0 && c.TopRight == 0 && c.BottomLeft == 0 && c.BottomRight == 0
}

// maxRadius returns the largest corner radius, used by the rotated footprint.
func (c CornerRadius) maxRadius() float32 {
	r := c.TopLeft
	if c.TopRight > r {
		r = c.TopRight
	}
	if c.BottomLeft > r {
		r = c.BottomLeft
	}
	if c.BottomRight > r {
		r = c.BottomRight
	}
	return r
}

// PointerCaptureMode controls whether a floating element swallows pointer
// input or lets it pass through to elements underneath.
type PointerCaptureMode uint8

const (
	// PointerCapture captures all pointer input over the element.
	PointerCapture PointerCaptureMode = iota
	// PointerPassthrough lets pointer input reach elements underneath.
	PointerPassthrough
)

// FloatingAttachTo selects what a floating element is positioned relative to.
type FloatingAttachTo uint8

const (
	// AttachToNone disables floating for the element.
	AttachToNone FloatingAttachTo = iota
	// AttachToParent positions relative to the declaring parent.
	AttachToParent
	// AttachToElementWithID positions relative to the element with ParentID.
	AttachToElementWithID
	// AttachToRoot positions relative to the root layout area.
	AttachToRoot
)

// FloatingClipTo selects the clip behavior of a floating element.
type FloatingClipTo uint8

const (
	// ClipToNone leaves the floating element unclipped.
	ClipToNone FloatingClipTo = iota
	// ClipToAttachedParent clips the floating element to its attach target's
	// clip context.
	ClipToAttachedParent
)

// FloatingAttachPoint is one of the nine anchor points on a box.
type FloatingAttachPoint uint8

const (
	AttachPointLeftTop FloatingAttachPoint = iota
	AttachPointLeftCenter
	AttachPointLeftBottom
	AttachPointCenterTop
	AttachPointCenterCenter
	AttachPointCenterBottom
	AttachPointRightTop
	AttachPointRightCenter
	AttachPointRightBottom
)

// FloatingAttachPoints pairs the anchor on the floating element with the
// anchor on its attach target.
type FloatingAttachPoints struct {
	Element FloatingAttachPoint
	Parent  FloatingAttachPoint
}

// FloatingConfig detaches an element from normal flow and positions it
// relative to an attach target on its own stacking layer.
type FloatingConfig struct {
	Offset             Vector2
	Expand             Dimensions
	ParentID           uint32
	ZIndex             int16
	AttachPoints       FloatingAttachPoints
	PointerCaptureMode PointerCaptureMode
	AttachTo           FloatingAttachTo
	ClipTo             FloatingClipTo
}

// ClipConfig makes an element a scroll/clip container on the given axes.
// ChildOffset shifts children, typically by the negated scroll position.
type ClipConfig struct {
	Horizontal  bool
	Vertical    bool
	ChildOffset Vector2
}

// BorderWidth holds per-side border widths plus the width of separator lines
// drawn between children.
type BorderWidth struct {
	Left            uint16
	Right           uint16
	Top             uint16
	Bottom          uint16
	BetweenChildren uint16
}

// IsZero reports whether no border would be drawn.
func (b BorderWidth) IsZero() bool {
	return b.Left == 0 && b.Right == 0 && b.Top == 0 && b.Bottom == 0 && b.BetweenChildren == 0
}

// BorderAll sets the same width on every side.
func BorderAll(width uint16) BorderWidth {
	return BorderWidth{Left: width, Right: width, Top: width, Bottom: width}
}

// BorderConfig describes an element's border.
type BorderConfig struct {
	Color Color
	Width BorderWidth
}

// ImageConfig attaches caller-owned image data to an element. The engine
// never inspects Data; it is passed through on the render command.
type ImageConfig struct {
	Data any
}

// RotationConfig rotates an element's rendering around a pivot. The element
// keeps its layout slot; only the emitted bounding box footprint changes.
type RotationConfig struct {
	// AngleRadians is the clockwise rotation in radians.
	AngleRadians float32
	// PivotX/PivotY are normalized pivot coordinates, (0.5, 0.5) = center.
	PivotX float32
	PivotY float32
	FlipX  bool
	FlipY  bool
}

// ElementDeclaration fully configures an open element. Zero values leave
// each concern disabled.
type ElementDeclaration struct {
	ID              ElementID
	Layout          LayoutConfig
	BackgroundColor Color
	CornerRadius    CornerRadius
	AspectRatio     float32
	Image           ImageConfig
	Floating        FloatingConfig
	Clip            ClipConfig
	Border          BorderConfig
	Rotation        RotationConfig
	CustomData      any
	Effects         []ShaderConfig
	UserData        any
}

// elementConfigType tags the per-element config entries stored in the arena.
type elementConfigType uint8

const (
	configShared elementConfigType = iota
	configText
	configImage
	configFloating
	configCustom
	configClip
	configBorder
	configAspect
	configRotation
	configEffects
)
