package ply

// SizingType defines how an axis of an element is sized.
type SizingType uint8

const (
	// SizingFit sizes the element to its content, constrained by min/max.
	SizingFit SizingType = iota
	// SizingGrow expands the element into available space, constrained by min/max.
	SizingGrow
	// SizingPercent sizes the element as a fraction of its parent's content area.
	SizingPercent
	// SizingFixed pins the element to an exact size.
	SizingFixed
)

// SizingAxis holds the sizing strategy for one axis.
type SizingAxis struct {
	Type    SizingType
	Min     float32
	Max     float32
	Percent float32
}

// Fit sizes to content within [min, max]. Pass max 0 for unbounded.
func Fit(min, max float32) SizingAxis {
	return SizingAxis{Type: SizingFit, Min: min, Max: max}
}

// Grow expands into available space within [min, max]. Pass max 0 for unbounded.
func Grow(min, max float32) SizingAxis {
	return SizingAxis{Type: SizingGrow, Min: min, Max: max}
}

// Fixed pins the axis to an exact size.
func Fixed(size float32) SizingAxis {
	return SizingAxis{Type: SizingFixed, Min: size, Max: size}
}

// Percent sizes the axis as a fraction (0.0–1.0) of the parent's content area.
// Negative fractions clamp to zero.
func Percent(percent float32) SizingAxis {
	if percent < 0 {
		percent = 0
	}
	return SizingAxis{Type: SizingPercent, Percent: percent}
}

// Sizing pairs the strategies for both axes.
type Sizing struct {
	Width  SizingAxis
	Height SizingAxis
}

// Padding holds per-side inner spacing in pixels.
type Padding struct {
	Left   uint16
	Right  uint16
	Top    uint16
	Bottom uint16
}

// PaddingAll applies the same padding to every side.
func PaddingAll(value uint16) Padding {
	return Padding{Left: value, Right: value, Top: value, Bottom: value}
}

// LayoutDirection controls the axis along which children are stacked.
type LayoutDirection uint8

const (
	// LeftToRight lays children out horizontally.
	LeftToRight LayoutDirection = iota
	// TopToBottom lays children out vertically.
	TopToBottom
)

// AlignX is the horizontal child alignment within a parent.
type AlignX uint8

const (
	AlignLeft AlignX = iota
	AlignCenterX
	AlignRight
)

// AlignY is the vertical child alignment within a parent.
type AlignY uint8

const (
	AlignTop AlignY = iota
	AlignCenterY
	AlignBottom
)

// ChildAlignment positions children inside leftover parent space.
type ChildAlignment struct {
	X AlignX
	Y AlignY
}

// LayoutConfig describes how an element arranges itself and its children.
type LayoutConfig struct {
	Sizing          Sizing
	Padding         Padding
	ChildGap        uint16
	ChildAlignment  ChildAlignment
	LayoutDirection LayoutDirection
}

func defaultLayoutConfig() LayoutConfig {
	return LayoutConfig{}
}

// paddingAlongAxis returns the summed padding for the given axis.
func (p Padding) alongAxis(xAxis bool) float32 {
	if xAxis {
		return float32(p.Left) + float32(p.Right)
	}
	return float32(p.Top) + float32(p.Bottom)
}

// clampAxis applies the axis min/max constraints to a size.
func (s SizingAxis) clamp(size float32) float32 {
	max := s.Max
	if max <= 0 {
		max = maxFloat
	}
	if size > max {
		size = max
	}
	if size < s.Min {
		size = s.Min
	}
	return size
}
