package ply

import "fmt"

var debugEnabled = false // Set to true for debug logging

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		fmt.Printf(format+"\n", args...)
	}
}

const (
	debugViewWidth     float32 = 400
	debugViewRowHeight float32 = 30
	debugViewPadding   uint16  = 10
	debugViewIndent    uint16  = 16
	debugViewZIndex    int16   = 32766
)

var (
	debugColorPanel     = RGBA(58, 56, 52, 255)
	debugColorRow       = RGBA(62, 60, 58, 255)
	debugColorText      = RGBA(238, 226, 231, 255)
	debugColorDimension = RGBA(141, 133, 135, 255)
)

func (c *Context) debugTextConfig() TextConfig {
	return TextConfig{
		Color:    debugColorText,
		FontSize: 14,
		WrapMode: WrapNone,
	}
}

// renderDebugView appends the built-in inspector overlay to the frame: a
// floating panel on the right edge listing every declared element with its
// id and resolved size. Rendered with the engine's own primitives so any
// backend can draw it.
func (c *Context) renderDebugView() {
	if c.measureTextFn == nil {
		return
	}

	// Snapshot: rows are generated from the elements declared before the
	// panel itself.
	type row struct {
		elementIndex int
		depth        int
	}
	var rows []row
	var walk func(elementIndex, depth int)
	walk = func(elementIndex, depth int) {
		rows = append(rows, row{elementIndex: elementIndex, depth: depth})
		elem := &c.layoutElements[elementIndex]
		if c.elementHasConfig(elementIndex, configText) {
			return
		}
		for i := 0; i < elem.childrenLength; i++ {
			walk(c.layoutElementChildren[elem.childrenStart+i], depth+1)
		}
	}
	snapshotRoots := len(c.treeRoots)
	for i := 0; i < snapshotRoots; i++ {
		walk(c.treeRoots[i].layoutElementIndex, 0)
	}

	textConfig := c.debugTextConfig()
	dimConfig := textConfig
	dimConfig.Color = debugColorDimension

	c.Element(ElementDeclaration{
		ID: ID("Ply__DebugView"),
		Layout: LayoutConfig{
			Sizing: Sizing{
				Width:  Fixed(debugViewWidth),
				Height: Fixed(c.layoutDimensions.Height),
			},
			LayoutDirection: TopToBottom,
			Padding:         PaddingAll(debugViewPadding),
		},
		BackgroundColor: debugColorPanel,
		Floating: FloatingConfig{
			AttachTo: AttachToRoot,
			ZIndex:   debugViewZIndex,
			AttachPoints: FloatingAttachPoints{
				Element: AttachPointRightTop,
				Parent:  AttachPointRightTop,
			},
			PointerCaptureMode: PointerPassthrough,
		},
		Clip: ClipConfig{Vertical: true},
	}, func() {
		for i, r := range rows {
			elem := c.layoutElements[r.elementIndex]
			label := fmt.Sprintf("0x%08x", elem.id)
			if item, ok := c.elementMap[elem.id]; ok && item.elementID.StringID != "" {
				label = item.elementID.StringID
			}

			c.Element(ElementDeclaration{
				ID: IDI("Ply__DebugRow", uint32(i)),
				Layout: LayoutConfig{
					Sizing: Sizing{
						Width:  Grow(0, 0),
						Height: Fixed(debugViewRowHeight),
					},
					Padding: Padding{
						Left: uint16(r.depth) * debugViewIndent,
					},
					ChildGap:       8,
					ChildAlignment: ChildAlignment{Y: AlignCenterY},
				},
				BackgroundColor: debugColorRow,
			}, func() {
				c.Text(label, textConfig)
				c.Text(fmt.Sprintf("%.0fx%.0f", elem.dimensions.Width, elem.dimensions.Height), dimConfig)
			})
		}
	})
}
