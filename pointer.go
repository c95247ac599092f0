package ply

// SetPointerState updates the pointer position and press state and recomputes
// which elements the pointer is over. Hit testing walks the tree roots from
// topmost to bottom; a floating element with capture mode PointerCapture
// stops the walk once hit, Passthrough lets elements underneath match too.
func (c *Context) SetPointerState(position Vector2, isDown bool) {
	c.pointerInfo.Position = position
	c.pointerOverIDs = c.pointerOverIDs[:0]

	for rootIndex := len(c.treeRoots) - 1; rootIndex >= 0; rootIndex-- {
		root := c.treeRoots[rootIndex]
		dfs := []int{root.layoutElementIndex}
		vis := []bool{false}
		found := false

		for len(dfs) > 0 {
			idx := len(dfs) - 1
			if vis[idx] {
				dfs = dfs[:idx]
				vis = vis[:idx]
				continue
			}
			vis[idx] = true
			currentIdx := dfs[idx]
			elemID := c.layoutElements[currentIdx].id

			item, ok := c.elementMap[elemID]
			if !ok {
				dfs = dfs[:idx]
				vis = vis[:idx]
				continue
			}

			elemBox := item.boundingBox

			clipOK := true
			if clipID := c.clipElementIDs[currentIdx]; clipID != 0 {
				clipItem, hasClip := c.elementMap[clipID]
				clipOK = hasClip && clipItem.boundingBox.Contains(position)
			}

			if elemBox.Contains(position) && clipOK {
				if item.onHover != nil {
					item.onHover(item.elementID, c.pointerInfo)
				}
				c.pointerOverIDs = append(c.pointerOverIDs, item.elementID)
				found = true
			}

			if c.elementHasConfig(currentIdx, configText) {
				dfs = dfs[:idx]
				vis = vis[:idx]
				continue
			}
			childrenStart := c.layoutElements[currentIdx].childrenStart
			childrenLength := c.layoutElements[currentIdx].childrenLength
			for ci := childrenLength - 1; ci >= 0; ci-- {
				dfs = append(dfs, c.layoutElementChildren[childrenStart+ci])
				vis = append(vis, false)
			}
		}

		if found {
			rootElemIdx := root.layoutElementIndex
			if cfgIdx, ok := c.findElementConfigIndex(rootElemIdx, configFloating); ok {
				if c.floatingConfigs[cfgIdx].PointerCaptureMode == PointerCapture {
					break
				}
			}
		}
	}

	if isDown {
		switch c.pointerInfo.State {
		case PointerPressedThisFrame:
			c.pointerInfo.State = PointerPressed
		case PointerPressed:
		default:
			c.pointerInfo.State = PointerPressedThisFrame
		}
	} else {
		switch c.pointerInfo.State {
		case PointerReleasedThisFrame:
			c.pointerInfo.State = PointerReleased
		case PointerReleased:
		default:
			c.pointerInfo.State = PointerReleasedThisFrame
		}
	}
}

// Hovered reports whether the pointer is over the currently open element.
// Only valid between OpenElement and CloseElement.
func (c *Context) Hovered() bool {
	elemID := c.layoutElements[c.openLayoutElement()].id
	for i := range c.pointerOverIDs {
		if c.pointerOverIDs[i].ID == elemID {
			return true
		}
	}
	return false
}

// OnHover registers a callback on the currently open element, invoked from
// SetPointerState whenever the pointer is over it.
func (c *Context) OnHover(callback func(ElementID, PointerData)) {
	elemID := c.layoutElements[c.openLayoutElement()].id
	if item, ok := c.elementMap[elemID]; ok {
		item.onHover = callback
	}
}

// PointerOver reports whether the pointer is over the element with the
// given id, based on the last SetPointerState call.
func (c *Context) PointerOver(id ElementID) bool {
	for i := range c.pointerOverIDs {
		if c.pointerOverIDs[i].ID == id.ID {
			return true
		}
	}
	return false
}

// PointerOverIDs returns every element id currently under the pointer,
// ordered topmost first.
func (c *Context) PointerOverIDs() []ElementID {
	return c.pointerOverIDs
}

// PointerData returns the pointer position and press state.
func (c *Context) PointerData() PointerData {
	return c.pointerInfo
}
