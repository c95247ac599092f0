package ply

// Default capacities, overridable through Config or the setters.
const (
	defaultMaxElementCount              = 8192
	defaultMaxMeasureTextCacheWordCount = 16384
)

const rootContainerLabel = "Ply__RootContainer"

// elementConfig tags one config entry attached to an element.
type elementConfig struct {
	configType  elementConfigType
	configIndex int
}

type elementConfigSlice struct {
	start  int
	length int
}

type wrappedTextLine struct {
	dimensions Dimensions
	start      int
	length     int
}

type textElementData struct {
	text                string
	preferredDimensions Dimensions
	elementIndex        int
	wrappedLinesStart   int
	wrappedLinesLength  int
}

// layoutElement is one slot in the per-frame arena. Non-text elements track
// their children as a slice into layoutElementChildren; text elements point
// at textElementData instead.
type layoutElement struct {
	childrenStart         int
	childrenLength        int
	textDataIndex         int
	dimensions            Dimensions
	minDimensions         Dimensions
	layoutConfigIndex     int
	elementConfigs        elementConfigSlice
	id                    uint32
	floatingChildrenCount int
}

// elementMapItem persists per-id data across frames: the resolved bounding
// box, hover callback and the generation used for duplicate detection.
type elementMapItem struct {
	boundingBox        BoundingBox
	elementID          ElementID
	layoutElementIndex int
	onHover            func(ElementID, PointerData)
	generation         uint32
	collision          bool
}

type treeNode struct {
	layoutElementIndex int
	position           Vector2
	nextChildOffset    Vector2
}

// treeRoot is the entry point of one compositing tree: the implicit root
// container plus one per floating element.
type treeRoot struct {
	layoutElementIndex int
	parentID           uint32
	clipElementID      uint32
	zIndex             int16
}

// PointerState tracks the press lifecycle of the primary pointer button.
type PointerState uint8

const (
	PointerPressedThisFrame PointerState = iota
	PointerPressed
	PointerReleasedThisFrame
	PointerReleased
)

// PointerData is the pointer position and press state for the current frame.
type PointerData struct {
	Position Vector2
	State    PointerState
}

type frameWarnings struct {
	maxElementsExceeded     bool
	textMeasurementFnNotSet bool
	maxTextMeasureCacheFull bool
}

// Context is a layout engine instance. All frame-building methods must be
// called from a single goroutine; a Context is not safe for concurrent use.
type Context struct {
	maxElementCount              int
	maxMeasureTextCacheWordCount int
	debugModeEnabled             bool
	cullingDisabled              bool
	generation                   uint32
	warnings                     frameWarnings
	droppedElementCount          int
	pointerInfo                  PointerData
	layoutDimensions             Dimensions
	measureTextFn                MeasureTextFunc
	errorHandler                 ErrorHandler

	// Per-frame arena state, reset by BeginLayout.
	layoutElements            []layoutElement
	renderCommands            []RenderCommand
	openElementStack          []int
	layoutElementChildren     []int
	childrenBuffer            []int
	textElementData           []textElementData
	aspectRatioElementIndexes []int
	clipElementIDs            []uint32
	layoutConfigs             []LayoutConfig
	elementConfigs            []elementConfig
	textConfigs               []TextConfig
	aspectRatioConfigs        []float32
	imageConfigs              []ImageConfig
	floatingConfigs           []FloatingConfig
	clipConfigs               []ClipConfig
	customConfigs             []any
	borderConfigs             []BorderConfig
	sharedConfigs             []sharedConfig
	rotationConfigs           []RotationConfig
	effectConfigs             [][]ShaderConfig
	wrappedTextLines          []wrappedTextLine
	treeNodes                 []treeNode
	treeRoots                 []treeRoot
	treeNodeVisited           []bool
	openClipElementStack      []uint32

	// Persistent state, kept across frames.
	elementMap            map[uint32]*elementMapItem
	measureTextCache      map[uint32]*measureTextCacheItem
	measuredWords         []measuredWord
	measuredWordsFreeList []int
	pointerOverIDs        []ElementID
	scrollContainers      []scrollContainerState
	scrollStateRetention  int
}

// sharedConfig carries the visual properties every element kind can have.
type sharedConfig struct {
	backgroundColor Color
	cornerRadius    CornerRadius
	userData        any
}

// NewContext creates a layout context for the given layout area.
func NewContext(dimensions Dimensions) *Context {
	return &Context{
		maxElementCount:              defaultMaxElementCount,
		maxMeasureTextCacheWordCount: defaultMaxMeasureTextCacheWordCount,
		layoutDimensions:             dimensions,
		elementMap:                   make(map[uint32]*elementMapItem),
		measureTextCache:             make(map[uint32]*measureTextCacheItem),
	}
}

// NewContextFromConfig creates a layout context from a Config, typically one
// loaded with LoadConfig.
func NewContextFromConfig(config Config) *Context {
	c := NewContext(Dimensions{Width: config.Layout.Width, Height: config.Layout.Height})
	if config.Limits.MaxElementCount > 0 {
		c.maxElementCount = config.Limits.MaxElementCount
	}
	if config.Limits.MaxTextCacheWordCount > 0 {
		c.maxMeasureTextCacheWordCount = config.Limits.MaxTextCacheWordCount
	}
	c.debugModeEnabled = config.Debug.Enabled
	c.cullingDisabled = !config.Culling.Enabled
	c.scrollStateRetention = config.Scroll.RetainStateFrames
	debugEnabled = debugEnabled || config.Debug.Verbose
	return c
}

// ========================================================================
// Internal helpers
// ========================================================================

func (c *Context) openLayoutElement() int {
	return c.openElementStack[len(c.openElementStack)-1]
}

// OpenElementID returns the id of the currently open element.
func (c *Context) OpenElementID() uint32 {
	return c.layoutElements[c.openLayoutElement()].id
}

// ParentElementID returns the id of the parent of the currently open element.
func (c *Context) ParentElementID() uint32 {
	parentIdx := c.openElementStack[len(c.openElementStack)-2]
	return c.layoutElements[parentIdx].id
}

func (c *Context) addElementMapItem(elementID ElementID, layoutElementIndex int) {
	gen := c.generation
	if item, ok := c.elementMap[elementID.ID]; ok {
		if item.generation <= gen {
			item.elementID = elementID
			item.generation = gen + 1
			item.layoutElementIndex = layoutElementIndex
			item.collision = false
			item.onHover = nil
		} else {
			item.collision = true
			c.raiseError(ErrDuplicateID, elementID.StringID)
		}
		return
	}
	c.elementMap[elementID.ID] = &elementMapItem{
		elementID:          elementID,
		layoutElementIndex: layoutElementIndex,
		generation:         gen + 1,
	}
}

func (c *Context) generateIDForAnonymousElement(openElementIndex int) ElementID {
	parentIdx := c.openElementStack[len(c.openElementStack)-2]
	parent := &c.layoutElements[parentIdx]
	offset := uint32(parent.childrenLength + parent.floatingChildrenCount)
	elementID := hashNumber(offset, parent.id)
	c.layoutElements[openElementIndex].id = elementID.ID
	c.addElementMapItem(elementID, openElementIndex)
	return elementID
}

func (c *Context) elementHasConfig(elementIndex int, configType elementConfigType) bool {
	elem := &c.layoutElements[elementIndex]
	for i := 0; i < elem.elementConfigs.length; i++ {
		if c.elementConfigs[elem.elementConfigs.start+i].configType == configType {
			return true
		}
	}
	return false
}

func (c *Context) findElementConfigIndex(elementIndex int, configType elementConfigType) (int, bool) {
	elem := &c.layoutElements[elementIndex]
	for i := 0; i < elem.elementConfigs.length; i++ {
		config := &c.elementConfigs[elem.elementConfigs.start+i]
		if config.configType == configType {
			return config.configIndex, true
		}
	}
	return 0, false
}

func (c *Context) updateAspectRatioBox(elementIndex int) {
	configIdx, ok := c.findElementConfigIndex(elementIndex, configAspect)
	if !ok {
		return
	}
	aspectRatio := c.aspectRatioConfigs[configIdx]
	if aspectRatio == 0 {
		return
	}
	elem := &c.layoutElements[elementIndex]
	if elem.dimensions.Width == 0 && elem.dimensions.Height != 0 {
		elem.dimensions.Width = elem.dimensions.Height * aspectRatio
	} else if elem.dimensions.Width != 0 && elem.dimensions.Height == 0 {
		elem.dimensions.Height = elem.dimensions.Width * (1 / aspectRatio)
	}
}

func (c *Context) storeLayoutConfig(config LayoutConfig) int {
	c.layoutConfigs = append(c.layoutConfigs, config)
	return len(c.layoutConfigs) - 1
}

func (c *Context) storeSharedConfig(config sharedConfig) int {
	c.sharedConfigs = append(c.sharedConfigs, config)
	return len(c.sharedConfigs) - 1
}

func (c *Context) attachElementConfig(configType elementConfigType, configIndex int) {
	if c.droppedElementCount > 0 {
		return
	}
	openIdx := c.openLayoutElement()
	c.layoutElements[openIdx].elementConfigs.length++
	c.elementConfigs = append(c.elementConfigs, elementConfig{
		configType:  configType,
		configIndex: configIndex,
	})
}

// ========================================================================
// Element open / close / configure
// ========================================================================

// OpenElement begins a new anonymous element as a child of the currently
// open element. It must be followed by ConfigureOpenElement and a matching
// CloseElement.
func (c *Context) OpenElement() {
	if c.warnings.maxElementsExceeded {
		c.droppedElementCount++
		return
	}
	if len(c.layoutElements) >= c.maxElementCount {
		c.warnings.maxElementsExceeded = true
		c.raiseError(ErrElementsCapacityExceeded, "")
		c.droppedElementCount++
		return
	}
	c.layoutElements = append(c.layoutElements, layoutElement{textDataIndex: -1})
	idx := len(c.layoutElements) - 1
	c.openElementStack = append(c.openElementStack, idx)

	for len(c.clipElementIDs) < len(c.layoutElements) {
		c.clipElementIDs = append(c.clipElementIDs, 0)
	}

	c.generateIDForAnonymousElement(idx)

	if len(c.openClipElementStack) > 0 {
		c.clipElementIDs[idx] = c.openClipElementStack[len(c.openClipElementStack)-1]
	} else {
		c.clipElementIDs[idx] = 0
	}
}

// OpenElementWithID begins a new element with an explicit id.
func (c *Context) OpenElementWithID(elementID ElementID) {
	if c.warnings.maxElementsExceeded {
		c.droppedElementCount++
		return
	}
	if len(c.layoutElements) >= c.maxElementCount {
		c.warnings.maxElementsExceeded = true
		c.raiseError(ErrElementsCapacityExceeded, "")
		c.droppedElementCount++
		return
	}
	c.layoutElements = append(c.layoutElements, layoutElement{textDataIndex: -1, id: elementID.ID})
	idx := len(c.layoutElements) - 1
	c.openElementStack = append(c.openElementStack, idx)

	for len(c.clipElementIDs) < len(c.layoutElements) {
		c.clipElementIDs = append(c.clipElementIDs, 0)
	}

	c.addElementMapItem(elementID, idx)

	if len(c.openClipElementStack) > 0 {
		c.clipElementIDs[idx] = c.openClipElementStack[len(c.openClipElementStack)-1]
	} else {
		c.clipElementIDs[idx] = 0
	}
}

// ConfigureOpenElement applies a declaration to the currently open element.
// Call it exactly once between OpenElement and CloseElement.
func (c *Context) ConfigureOpenElement(declaration ElementDeclaration) {
	if c.droppedElementCount > 0 {
		return
	}
	openIdx := c.openLayoutElement()

	// A declared id replaces the anonymous one assigned at OpenElement, so
	// the OpenElement + ConfigureOpenElement pattern keys the element map
	// the same way OpenElementWithID does.
	if declaration.ID.ID != 0 && declaration.ID.ID != c.layoutElements[openIdx].id {
		c.layoutElements[openIdx].id = declaration.ID.ID
		c.addElementMapItem(declaration.ID, openIdx)
	}

	c.layoutElements[openIdx].layoutConfigIndex = c.storeLayoutConfig(declaration.Layout)
	c.layoutElements[openIdx].elementConfigs.start = len(c.elementConfigs)

	// Shared config: background color, corner radius, user data fold into
	// one entry.
	sharedConfigIndex := -1
	if declaration.BackgroundColor.A > 0 {
		sharedConfigIndex = c.storeSharedConfig(sharedConfig{backgroundColor: declaration.BackgroundColor})
		c.attachElementConfig(configShared, sharedConfigIndex)
	}
	if !declaration.CornerRadius.IsZero() {
		if sharedConfigIndex >= 0 {
			c.sharedConfigs[sharedConfigIndex].cornerRadius = declaration.CornerRadius
		} else {
			sharedConfigIndex = c.storeSharedConfig(sharedConfig{cornerRadius: declaration.CornerRadius})
			c.attachElementConfig(configShared, sharedConfigIndex)
		}
	}
	if declaration.UserData != nil {
		if sharedConfigIndex >= 0 {
			c.sharedConfigs[sharedConfigIndex].userData = declaration.UserData
		} else {
			sharedConfigIndex = c.storeSharedConfig(sharedConfig{userData: declaration.UserData})
			c.attachElementConfig(configShared, sharedConfigIndex)
		}
	}

	if declaration.Image.Data != nil {
		c.imageConfigs = append(c.imageConfigs, declaration.Image)
		c.attachElementConfig(configImage, len(c.imageConfigs)-1)
	}

	if declaration.AspectRatio > 0 {
		c.aspectRatioConfigs = append(c.aspectRatioConfigs, declaration.AspectRatio)
		c.attachElementConfig(configAspect, len(c.aspectRatioConfigs)-1)
		c.aspectRatioElementIndexes = append(c.aspectRatioElementIndexes, len(c.layoutElements)-1)
	}

	if declaration.Rotation.AngleRadians != 0 || declaration.Rotation.FlipX || declaration.Rotation.FlipY {
		c.rotationConfigs = append(c.rotationConfigs, declaration.Rotation)
		c.attachElementConfig(configRotation, len(c.rotationConfigs)-1)
	}

	if len(declaration.Effects) > 0 {
		c.effectConfigs = append(c.effectConfigs, declaration.Effects)
		c.attachElementConfig(configEffects, len(c.effectConfigs)-1)
	}

	// Floating elements detach into their own tree root.
	if declaration.Floating.AttachTo != AttachToNone {
		floating := declaration.Floating
		if len(c.openElementStack) >= 2 {
			hierarchicalParentIdx := c.openElementStack[len(c.openElementStack)-2]
			hierarchicalParentID := c.layoutElements[hierarchicalParentIdx].id

			var clipElementID uint32

			switch floating.AttachTo {
			case AttachToParent:
				floating.ParentID = hierarchicalParentID
				if len(c.openClipElementStack) > 0 {
					clipElementID = c.openClipElementStack[len(c.openClipElementStack)-1]
				}
			case AttachToElementWithID:
				// The target may be declared later this frame; unresolved
				// parents are reported when the layout is finalized.
				if parentItem, ok := c.elementMap[floating.ParentID]; ok {
					clipElementID = c.clipElementIDs[parentItem.layoutElementIndex]
				}
			case AttachToRoot:
				floating.ParentID = hashStringWithOffset(rootContainerLabel, 0, 0).ID
			}

			if floating.ClipTo == ClipToNone {
				clipElementID = 0
			}

			currentElementIndex := c.openElementStack[len(c.openElementStack)-1]
			c.clipElementIDs[currentElementIndex] = clipElementID
			c.openClipElementStack = append(c.openClipElementStack, clipElementID)

			c.treeRoots = append(c.treeRoots, treeRoot{
				layoutElementIndex: currentElementIndex,
				parentID:           floating.ParentID,
				clipElementID:      clipElementID,
				zIndex:             floating.ZIndex,
			})

			c.floatingConfigs = append(c.floatingConfigs, floating)
			c.attachElementConfig(configFloating, len(c.floatingConfigs)-1)
		}
	}

	if declaration.CustomData != nil {
		c.customConfigs = append(c.customConfigs, declaration.CustomData)
		c.attachElementConfig(configCustom, len(c.customConfigs)-1)
	}

	// Clip config doubles as scroll container registration.
	if declaration.Clip.Horizontal || declaration.Clip.Vertical {
		clip := declaration.Clip
		elemID := c.layoutElements[openIdx].id

		for i := range c.scrollContainers {
			if c.scrollContainers[i].elementID == elemID {
				clip.ChildOffset = Vector2{
					X: -c.scrollContainers[i].scrollPosition.X,
					Y: -c.scrollContainers[i].scrollPosition.Y,
				}
				break
			}
		}

		c.clipConfigs = append(c.clipConfigs, clip)
		c.attachElementConfig(configClip, len(c.clipConfigs)-1)
		c.openClipElementStack = append(c.openClipElementStack, elemID)

		foundExisting := false
		for i := range c.scrollContainers {
			if c.scrollContainers[i].elementID == elemID {
				c.scrollContainers[i].layoutElementIndex = openIdx
				c.scrollContainers[i].openThisFrame = true
				c.scrollContainers[i].staleFrames = 0
				foundExisting = true
				break
			}
		}
		if !foundExisting {
			c.scrollContainers = append(c.scrollContainers, scrollContainerState{
				layoutElementIndex: openIdx,
				scrollOrigin:       Vector2{X: -1, Y: -1},
				elementID:          elemID,
				openThisFrame:      true,
			})
		}
	}

	if !declaration.Border.Width.IsZero() {
		c.borderConfigs = append(c.borderConfigs, declaration.Border)
		c.attachElementConfig(configBorder, len(c.borderConfigs)-1)
	}
}

// CloseElement finishes the currently open element, accumulating its fit
// size from its children.
func (c *Context) CloseElement() {
	// Closes pair with opens that were dropped over capacity.
	if c.droppedElementCount > 0 {
		c.droppedElementCount--
		return
	}
	// Only the implicit root is left on the stack: a close with no matching
	// open would pop the root and corrupt the frame.
	if len(c.openElementStack) <= 2 {
		c.raiseError(ErrInternalError, "CloseElement without a matching OpenElement")
		return
	}
	c.closeElement()
}

func (c *Context) closeElement() {
	openIdx := c.openLayoutElement()
	layoutConfigIndex := c.layoutElements[openIdx].layoutConfigIndex
	layoutConfig := c.layoutConfigs[layoutConfigIndex]

	elementHasClipHorizontal := false
	elementHasClipVertical := false
	configsStart := c.layoutElements[openIdx].elementConfigs.start
	configsLength := c.layoutElements[openIdx].elementConfigs.length

	for i := 0; i < configsLength; i++ {
		config := &c.elementConfigs[configsStart+i]
		if config.configType == configClip {
			clip := &c.clipConfigs[config.configIndex]
			elementHasClipHorizontal = clip.Horizontal
			elementHasClipVertical = clip.Vertical
			c.openClipElementStack = c.openClipElementStack[:len(c.openClipElementStack)-1]
			break
		} else if config.configType == configFloating {
			c.openClipElementStack = c.openClipElementStack[:len(c.openClipElementStack)-1]
		}
	}

	leftRightPadding := float32(layoutConfig.Padding.Left) + float32(layoutConfig.Padding.Right)
	topBottomPadding := float32(layoutConfig.Padding.Top) + float32(layoutConfig.Padding.Bottom)

	childrenLength := c.layoutElements[openIdx].childrenLength
	c.layoutElements[openIdx].childrenStart = len(c.layoutElementChildren)

	if layoutConfig.LayoutDirection == LeftToRight {
		c.layoutElements[openIdx].dimensions.Width = leftRightPadding
		c.layoutElements[openIdx].minDimensions.Width = leftRightPadding

		for i := 0; i < childrenLength; i++ {
			bufIdx := len(c.childrenBuffer) - childrenLength + i
			childIndex := c.childrenBuffer[bufIdx]
			child := &c.layoutElements[childIndex]

			c.layoutElements[openIdx].dimensions.Width += child.dimensions.Width
			if h := child.dimensions.Height + topBottomPadding; h > c.layoutElements[openIdx].dimensions.Height {
				c.layoutElements[openIdx].dimensions.Height = h
			}
			if !elementHasClipHorizontal {
				c.layoutElements[openIdx].minDimensions.Width += child.minDimensions.Width
			}
			if !elementHasClipVertical {
				if h := child.minDimensions.Height + topBottomPadding; h > c.layoutElements[openIdx].minDimensions.Height {
					c.layoutElements[openIdx].minDimensions.Height = h
				}
			}
			c.layoutElementChildren = append(c.layoutElementChildren, childIndex)
		}
		var childGap float32
		if childrenLength > 0 {
			childGap = float32((childrenLength - 1) * int(layoutConfig.ChildGap))
		}
		c.layoutElements[openIdx].dimensions.Width += childGap
		if !elementHasClipHorizontal {
			c.layoutElements[openIdx].minDimensions.Width += childGap
		}
	} else {
		c.layoutElements[openIdx].dimensions.Height = topBottomPadding
		c.layoutElements[openIdx].minDimensions.Height = topBottomPadding

		for i := 0; i < childrenLength; i++ {
			bufIdx := len(c.childrenBuffer) - childrenLength + i
			childIndex := c.childrenBuffer[bufIdx]
			child := &c.layoutElements[childIndex]

			c.layoutElements[openIdx].dimensions.Height += child.dimensions.Height
			if w := child.dimensions.Width + leftRightPadding; w > c.layoutElements[openIdx].dimensions.Width {
				c.layoutElements[openIdx].dimensions.Width = w
			}
			if !elementHasClipVertical {
				c.layoutElements[openIdx].minDimensions.Height += child.minDimensions.Height
			}
			if !elementHasClipHorizontal {
				if w := child.minDimensions.Width + leftRightPadding; w > c.layoutElements[openIdx].minDimensions.Width {
					c.layoutElements[openIdx].minDimensions.Width = w
				}
			}
			c.layoutElementChildren = append(c.layoutElementChildren, childIndex)
		}
		var childGap float32
		if childrenLength > 0 {
			childGap = float32((childrenLength - 1) * int(layoutConfig.ChildGap))
		}
		c.layoutElements[openIdx].dimensions.Height += childGap
		if !elementHasClipVertical {
			c.layoutElements[openIdx].minDimensions.Height += childGap
		}
	}

	c.childrenBuffer = c.childrenBuffer[:len(c.childrenBuffer)-childrenLength]

	// Clamp width to its sizing bounds. Percent sizing resolves later, so
	// the dimension resets to zero for now.
	widthSizing := &c.layoutConfigs[layoutConfigIndex].Sizing.Width
	if widthSizing.Type != SizingPercent {
		if widthSizing.Max <= 0 {
			widthSizing.Max = maxFloat
		}
		elem := &c.layoutElements[openIdx]
		elem.dimensions.Width = min(max(elem.dimensions.Width, widthSizing.Min), widthSizing.Max)
		elem.minDimensions.Width = min(max(elem.minDimensions.Width, widthSizing.Min), widthSizing.Max)
	} else {
		c.layoutElements[openIdx].dimensions.Width = 0
	}

	heightSizing := &c.layoutConfigs[layoutConfigIndex].Sizing.Height
	if heightSizing.Type != SizingPercent {
		if heightSizing.Max <= 0 {
			heightSizing.Max = maxFloat
		}
		elem := &c.layoutElements[openIdx]
		elem.dimensions.Height = min(max(elem.dimensions.Height, heightSizing.Min), heightSizing.Max)
		elem.minDimensions.Height = min(max(elem.minDimensions.Height, heightSizing.Min), heightSizing.Max)
	} else {
		c.layoutElements[openIdx].dimensions.Height = 0
	}

	c.updateAspectRatioBox(openIdx)

	elementIsFloating := c.elementHasConfig(openIdx, configFloating)

	c.openElementStack = c.openElementStack[:len(c.openElementStack)-1]

	if len(c.openElementStack) > 1 {
		parentIdx := c.openLayoutElement()
		if elementIsFloating {
			c.layoutElements[parentIdx].floatingChildrenCount++
			return
		}
		c.layoutElements[parentIdx].childrenLength++
		c.childrenBuffer = append(c.childrenBuffer, openIdx)
	}
}

// Element declares a complete element: open, configure, declare children via
// the callback, close. Pass a nil callback for a leaf.
func (c *Context) Element(declaration ElementDeclaration, children func()) {
	if declaration.ID.ID != 0 {
		c.OpenElementWithID(declaration.ID)
	} else {
		c.OpenElement()
	}
	c.ConfigureOpenElement(declaration)
	if children != nil {
		children()
	}
	c.CloseElement()
}

// Text declares a text element under the currently open element.
func (c *Context) Text(text string, config TextConfig) {
	if c.warnings.maxElementsExceeded {
		return
	}
	if len(c.layoutElements) >= c.maxElementCount {
		c.warnings.maxElementsExceeded = true
		c.raiseError(ErrElementsCapacityExceeded, "")
		return
	}

	parentIdx := c.openLayoutElement()
	parentID := c.layoutElements[parentIdx].id
	parentChildrenCount := c.layoutElements[parentIdx].childrenLength

	c.textConfigs = append(c.textConfigs, config)
	textConfigIndex := len(c.textConfigs) - 1

	c.layoutElements = append(c.layoutElements, layoutElement{textDataIndex: -1})
	textElemIdx := len(c.layoutElements) - 1

	for len(c.clipElementIDs) < len(c.layoutElements) {
		c.clipElementIDs = append(c.clipElementIDs, 0)
	}
	if len(c.openClipElementStack) > 0 {
		c.clipElementIDs[textElemIdx] = c.openClipElementStack[len(c.openClipElementStack)-1]
	} else {
		c.clipElementIDs[textElemIdx] = 0
	}

	c.childrenBuffer = append(c.childrenBuffer, textElemIdx)

	textMeasured := c.measureTextCached(text, &c.textConfigs[textConfigIndex])

	elementID := hashNumber(uint32(parentChildrenCount), parentID)
	c.layoutElements[textElemIdx].id = elementID.ID
	c.addElementMapItem(elementID, textElemIdx)

	textWidth := textMeasured.unwrappedDimensions.Width
	textHeight := textMeasured.unwrappedDimensions.Height
	if config.LineHeight > 0 {
		textHeight = float32(config.LineHeight)
	}

	c.layoutElements[textElemIdx].dimensions = Dimensions{Width: textWidth, Height: textHeight}
	c.layoutElements[textElemIdx].minDimensions = Dimensions{Width: textMeasured.minWidth, Height: textHeight}

	c.textElementData = append(c.textElementData, textElementData{
		text:                text,
		preferredDimensions: textMeasured.unwrappedDimensions,
		elementIndex:        textElemIdx,
	})
	c.layoutElements[textElemIdx].textDataIndex = len(c.textElementData) - 1

	c.layoutElements[textElemIdx].elementConfigs.start = len(c.elementConfigs)
	c.elementConfigs = append(c.elementConfigs, elementConfig{
		configType:  configText,
		configIndex: textConfigIndex,
	})
	c.layoutElements[textElemIdx].elementConfigs.length = 1

	c.layoutElements[textElemIdx].layoutConfigIndex = c.storeLayoutConfig(defaultLayoutConfig())

	c.layoutElements[parentIdx].childrenLength++
}

// ========================================================================
// Begin / End layout
// ========================================================================

// BeginLayout starts a new frame. It resets all per-frame state and opens
// the implicit root container sized to the layout dimensions.
func (c *Context) BeginLayout() {
	c.initializeEphemeralMemory()
	c.generation++

	c.evictStaleTextCache()

	c.warnings = frameWarnings{}
	c.droppedElementCount = 0

	rootID := hashStringWithOffset(rootContainerLabel, 0, 0)
	c.OpenElementWithID(rootID)
	c.ConfigureOpenElement(ElementDeclaration{
		Layout: LayoutConfig{
			Sizing: Sizing{
				Width:  Fixed(c.layoutDimensions.Width),
				Height: Fixed(c.layoutDimensions.Height),
			},
		},
	})
	// The root stays on the stack twice so user elements close against it
	// rather than emptying the stack.
	c.openElementStack = append(c.openElementStack, 0)
	c.treeRoots = append(c.treeRoots, treeRoot{layoutElementIndex: 0})
}

// EndLayout finishes the frame: closes the root, resolves the layout and
// returns the frame's render commands. The returned slice is valid until the
// next BeginLayout.
func (c *Context) EndLayout() []RenderCommand {
	c.closeElement()

	if len(c.openElementStack) > 1 {
		debugLog("end layout with %d unclosed elements", len(c.openElementStack)-1)
	}

	if c.debugModeEnabled {
		c.renderDebugView()
	}

	c.calculateFinalLayout()
	return c.renderCommands
}

func (c *Context) initializeEphemeralMemory() {
	c.childrenBuffer = c.childrenBuffer[:0]
	c.layoutElements = c.layoutElements[:0]
	c.layoutConfigs = c.layoutConfigs[:0]
	c.elementConfigs = c.elementConfigs[:0]
	c.textConfigs = c.textConfigs[:0]
	c.aspectRatioConfigs = c.aspectRatioConfigs[:0]
	c.imageConfigs = c.imageConfigs[:0]
	c.floatingConfigs = c.floatingConfigs[:0]
	c.clipConfigs = c.clipConfigs[:0]
	c.customConfigs = c.customConfigs[:0]
	c.borderConfigs = c.borderConfigs[:0]
	c.sharedConfigs = c.sharedConfigs[:0]
	c.rotationConfigs = c.rotationConfigs[:0]
	c.effectConfigs = c.effectConfigs[:0]
	c.wrappedTextLines = c.wrappedTextLines[:0]
	c.treeNodes = c.treeNodes[:0]
	c.treeRoots = c.treeRoots[:0]
	c.layoutElementChildren = c.layoutElementChildren[:0]
	c.openElementStack = c.openElementStack[:0]
	c.textElementData = c.textElementData[:0]
	c.aspectRatioElementIndexes = c.aspectRatioElementIndexes[:0]
	c.renderCommands = c.renderCommands[:0]
	c.treeNodeVisited = c.treeNodeVisited[:0]
	c.openClipElementStack = c.openClipElementStack[:0]
	c.clipElementIDs = c.clipElementIDs[:0]
}

// ========================================================================
// Settings
// ========================================================================

// SetLayoutDimensions updates the layout area used by the next frame.
func (c *Context) SetLayoutDimensions(dimensions Dimensions) {
	c.layoutDimensions = dimensions
}

// SetMaxElementCount changes the per-frame element capacity.
func (c *Context) SetMaxElementCount(count int) {
	c.maxElementCount = count
}

// SetMaxMeasureTextCacheWordCount changes the measured-word cache capacity.
func (c *Context) SetMaxMeasureTextCacheWordCount(count int) {
	c.maxMeasureTextCacheWordCount = count
}

// SetCullingEnabled toggles culling of offscreen render commands.
func (c *Context) SetCullingEnabled(enabled bool) {
	c.cullingDisabled = !enabled
}

// SetDebugModeEnabled toggles the built-in debug inspector overlay.
func (c *Context) SetDebugModeEnabled(enabled bool) {
	c.debugModeEnabled = enabled
}

// SetMeasureTextFunction registers the text measurement function. Text
// elements cannot be declared before this is set.
func (c *Context) SetMeasureTextFunction(fn MeasureTextFunc) {
	c.measureTextFn = fn
}

// SetErrorHandler registers the handler that receives engine errors raised
// during frame building.
func (c *Context) SetErrorHandler(handler ErrorHandler) {
	c.errorHandler = handler
}

// ElementData returns the most recently resolved bounding box for an id.
func (c *Context) ElementData(id ElementID) (BoundingBox, bool) {
	if item, ok := c.elementMap[id.ID]; ok {
		return item.boundingBox, true
	}
	return BoundingBox{}, false
}
