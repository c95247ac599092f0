package ply

// scrollContainerState persists scroll data for one clip element across
// frames, keyed by element id.
type scrollContainerState struct {
	boundingBox         BoundingBox
	contentSize         Dimensions
	scrollOrigin        Vector2
	pointerOrigin       Vector2
	scrollMomentum      Vector2
	scrollPosition      Vector2
	momentumTime        float32
	elementID           uint32
	layoutElementIndex  int
	openThisFrame       bool
	pointerScrollActive bool
	staleFrames         int
}

// ScrollContainerData is the externally visible state of a scroll container.
// ScrollPosition uses the positive convention: it grows as content scrolls
// further down or right, from zero up to max(0, content − container).
type ScrollContainerData struct {
	ScrollPosition      Vector2
	ContainerDimensions Dimensions
	ContentDimensions   Dimensions
	Horizontal          bool
	Vertical            bool
	Found               bool
}

const (
	scrollMomentumDecay     = 0.95
	scrollMomentumThreshold = 0.1
)

func (s *scrollContainerState) maxScroll() Vector2 {
	return Vector2{
		X: max(0, s.contentSize.Width-s.boundingBox.Width),
		Y: max(0, s.contentSize.Height-s.boundingBox.Height),
	}
}

func (s *scrollContainerState) clampScrollPosition() {
	limit := s.maxScroll()
	s.scrollPosition.X = min(max(s.scrollPosition.X, 0), limit.X)
	s.scrollPosition.Y = min(max(s.scrollPosition.Y, 0), limit.Y)
}

// UpdateScrollContainers applies wheel and drag input to scroll containers
// and evicts state for containers no longer declared. Call once per frame
// after SetPointerState and before BeginLayout.
//
// scrollDelta follows the wheel convention: positive Y scrolls up, moving
// the scroll position back toward zero.
func (c *Context) UpdateScrollContainers(enableDragScrolling bool, scrollDelta Vector2, deltaTime float32) {
	pointer := c.pointerInfo.Position

	for i := 0; i < len(c.scrollContainers); {
		s := &c.scrollContainers[i]
		if !s.openThisFrame {
			s.staleFrames++
			if s.staleFrames > c.scrollStateRetention {
				last := len(c.scrollContainers) - 1
				c.scrollContainers[i] = c.scrollContainers[last]
				c.scrollContainers = c.scrollContainers[:last]
				continue
			}
		}
		s.openThisFrame = false
		i++
	}

	// Wheel input goes to the deepest container under the pointer.
	if scrollDelta.X != 0 || scrollDelta.Y != 0 {
		best := -1
		for si := range c.scrollContainers {
			if c.scrollContainers[si].boundingBox.Contains(pointer) {
				best = si
			}
		}
		if best >= 0 {
			s := &c.scrollContainers[best]
			s.scrollPosition.X -= scrollDelta.X
			s.scrollPosition.Y -= scrollDelta.Y
			s.clampScrollPosition()
			s.scrollMomentum = Vector2{}
		}
	}

	if enableDragScrolling {
		c.updateDragScrolling(pointer, deltaTime)
	}
}

// updateDragScrolling lets a pressed pointer drag the content directly and
// carries leftover velocity as momentum after release.
func (c *Context) updateDragScrolling(pointer Vector2, deltaTime float32) {
	pressed := c.pointerInfo.State == PointerPressed || c.pointerInfo.State == PointerPressedThisFrame

	for si := range c.scrollContainers {
		s := &c.scrollContainers[si]

		if pressed {
			if !s.pointerScrollActive && s.boundingBox.Contains(pointer) {
				s.pointerScrollActive = true
				s.pointerOrigin = pointer
				s.scrollOrigin = s.scrollPosition
				s.scrollMomentum = Vector2{}
				s.momentumTime = 0
			}
			if s.pointerScrollActive {
				// Content follows the pointer, so scroll position moves
				// opposite to the drag.
				previous := s.scrollPosition
				s.scrollPosition.X = s.scrollOrigin.X + (s.pointerOrigin.X - pointer.X)
				s.scrollPosition.Y = s.scrollOrigin.Y + (s.pointerOrigin.Y - pointer.Y)
				s.clampScrollPosition()
				if deltaTime > 0 {
					s.scrollMomentum = Vector2{
						X: (s.scrollPosition.X - previous.X) / deltaTime,
						Y: (s.scrollPosition.Y - previous.Y) / deltaTime,
					}
				}
			}
			continue
		}

		s.pointerScrollActive = false

		if s.scrollMomentum.X != 0 || s.scrollMomentum.Y != 0 {
			s.scrollPosition.X += s.scrollMomentum.X * deltaTime
			s.scrollPosition.Y += s.scrollMomentum.Y * deltaTime
			s.clampScrollPosition()
			s.scrollMomentum.X *= scrollMomentumDecay
			s.scrollMomentum.Y *= scrollMomentumDecay
			if s.scrollMomentum.X < scrollMomentumThreshold && s.scrollMomentum.X > -scrollMomentumThreshold &&
				s.scrollMomentum.Y < scrollMomentumThreshold && s.scrollMomentum.Y > -scrollMomentumThreshold {
				s.scrollMomentum = Vector2{}
			}
		}
	}
}

// ScrollContainerData returns the live scroll state for an element id.
func (c *Context) ScrollContainerData(id ElementID) ScrollContainerData {
	for si := range c.scrollContainers {
		s := &c.scrollContainers[si]
		if s.elementID != id.ID {
			continue
		}
		data := ScrollContainerData{
			ScrollPosition: s.scrollPosition,
			ContainerDimensions: Dimensions{
				Width:  s.boundingBox.Width,
				Height: s.boundingBox.Height,
			},
			ContentDimensions: s.contentSize,
			Found:             true,
		}
		if s.layoutElementIndex < len(c.layoutElements) &&
			c.layoutElements[s.layoutElementIndex].id == s.elementID {
			if clipIdx, ok := c.findElementConfigIndex(s.layoutElementIndex, configClip); ok {
				data.Horizontal = c.clipConfigs[clipIdx].Horizontal
				data.Vertical = c.clipConfigs[clipIdx].Vertical
			}
		}
		return data
	}
	return ScrollContainerData{}
}

// ScrollOffset returns the scroll position of the currently open element,
// or zero if it is not a scroll container.
func (c *Context) ScrollOffset() Vector2 {
	elemID := c.layoutElements[c.openLayoutElement()].id
	for si := range c.scrollContainers {
		if c.scrollContainers[si].elementID == elemID {
			return c.scrollContainers[si].scrollPosition
		}
	}
	return Vector2{}
}

// SetScrollPosition directly sets the scroll position for an element id,
// clamped to the valid range.
func (c *Context) SetScrollPosition(id ElementID, position Vector2) {
	for si := range c.scrollContainers {
		if c.scrollContainers[si].elementID == id.ID {
			c.scrollContainers[si].scrollPosition = position
			c.scrollContainers[si].clampScrollPosition()
			return
		}
	}
}
