package ply

// sizeContainersAlongAxis resolves one axis for every tree. Percent children
// resolve against the parent's content area, then remaining space is
// distributed to grow children (raising the smallest toward the second
// smallest) or clawed back from resizable children (lowering the largest
// toward the second largest) until balanced within epsilon.
func (c *Context) sizeContainersAlongAxis(xAxis bool) {
	var bfsBuffer []int
	var resizable []int

	for rootIndex := 0; rootIndex < len(c.treeRoots); rootIndex++ {
		bfsBuffer = bfsBuffer[:0]
		root := c.treeRoots[rootIndex]
		rootElemIdx := root.layoutElementIndex
		bfsBuffer = append(bfsBuffer, rootElemIdx)

		// Floating containers with Grow or Percent sizing resolve against
		// their attach target.
		if floatCfgIdx, ok := c.findElementConfigIndex(rootElemIdx, configFloating); ok {
			parentID := c.floatingConfigs[floatCfgIdx].ParentID
			if parentItem, ok := c.elementMap[parentID]; ok && parentItem.generation > c.generation {
				parentDims := c.layoutElements[parentItem.layoutElementIndex].dimensions
				rootLayout := &c.layoutConfigs[c.layoutElements[rootElemIdx].layoutConfigIndex]

				switch rootLayout.Sizing.Width.Type {
				case SizingGrow:
					c.layoutElements[rootElemIdx].dimensions.Width = parentDims.Width
				case SizingPercent:
					c.layoutElements[rootElemIdx].dimensions.Width = parentDims.Width * rootLayout.Sizing.Width.Percent
				}
				switch rootLayout.Sizing.Height.Type {
				case SizingGrow:
					c.layoutElements[rootElemIdx].dimensions.Height = parentDims.Height
				case SizingPercent:
					c.layoutElements[rootElemIdx].dimensions.Height = parentDims.Height * rootLayout.Sizing.Height.Percent
				}
			}
		}

		rootLayout := &c.layoutConfigs[c.layoutElements[rootElemIdx].layoutConfigIndex]
		if rootLayout.Sizing.Width.Type != SizingPercent {
			c.layoutElements[rootElemIdx].dimensions.Width = min(
				max(c.layoutElements[rootElemIdx].dimensions.Width, rootLayout.Sizing.Width.Min),
				rootLayout.Sizing.Width.Max)
		}
		if rootLayout.Sizing.Height.Type != SizingPercent {
			c.layoutElements[rootElemIdx].dimensions.Height = min(
				max(c.layoutElements[rootElemIdx].dimensions.Height, rootLayout.Sizing.Height.Min),
				rootLayout.Sizing.Height.Max)
		}

		for i := 0; i < len(bfsBuffer); i++ {
			parentIndex := bfsBuffer[i]
			parentConfig := c.layoutConfigs[c.layoutElements[parentIndex].layoutConfigIndex]
			parentSize := c.axisDimension(parentIndex, xAxis)
			parentPadding := parentConfig.Padding.alongAxis(xAxis)
			sizingAlongAxis := (xAxis && parentConfig.LayoutDirection == LeftToRight) ||
				(!xAxis && parentConfig.LayoutDirection == TopToBottom)

			var innerContentSize float32
			totalPaddingAndChildGaps := parentPadding
			growContainerCount := 0
			parentChildGap := float32(parentConfig.ChildGap)

			resizable = resizable[:0]

			childrenStart := c.layoutElements[parentIndex].childrenStart
			childrenLength := c.layoutElements[parentIndex].childrenLength

			for childOffset := 0; childOffset < childrenLength; childOffset++ {
				childIdx := c.layoutElementChildren[childrenStart+childOffset]
				childSizing := c.axisSizing(childIdx, xAxis)
				childSize := c.axisDimension(childIdx, xAxis)

				isTextElement := c.elementHasConfig(childIdx, configText)
				if !isTextElement && c.layoutElements[childIdx].childrenLength > 0 {
					bfsBuffer = append(bfsBuffer, childIdx)
				}

				isWrappingText := false
				if isTextElement {
					if textCfgIdx, ok := c.findElementConfigIndex(childIdx, configText); ok {
						isWrappingText = c.textConfigs[textCfgIdx].WrapMode == WrapWords
					}
				}

				if childSizing.Type != SizingPercent && childSizing.Type != SizingFixed &&
					(!isTextElement || isWrappingText) {
					resizable = append(resizable, childIdx)
				}

				if sizingAlongAxis {
					if childSizing.Type != SizingPercent {
						innerContentSize += childSize
					}
					if childSizing.Type == SizingGrow {
						growContainerCount++
					}
					if childOffset > 0 {
						innerContentSize += parentChildGap
						totalPaddingAndChildGaps += parentChildGap
					}
				} else if childSize > innerContentSize {
					innerContentSize = childSize
				}
			}

			// Percent children resolve now that the parent size is known.
			for childOffset := 0; childOffset < childrenLength; childOffset++ {
				childIdx := c.layoutElementChildren[childrenStart+childOffset]
				childSizing := c.axisSizing(childIdx, xAxis)
				if childSizing.Type != SizingPercent {
					continue
				}
				newSize := (parentSize - totalPaddingAndChildGaps) * childSizing.Percent
				c.setAxisDimension(childIdx, xAxis, newSize)
				if sizingAlongAxis {
					innerContentSize += newSize
				}
				c.updateAspectRatioBox(childIdx)
			}

			if sizingAlongAxis {
				sizeToDistribute := parentSize - parentPadding - innerContentSize

				if sizeToDistribute < 0 {
					// Overflowing children inside a clipping parent stay
					// over-sized and scroll instead.
					if clipIdx, ok := c.findElementConfigIndex(parentIndex, configClip); ok {
						clip := &c.clipConfigs[clipIdx]
						if (xAxis && clip.Horizontal) || (!xAxis && clip.Vertical) {
							continue
						}
					}

					distribute := sizeToDistribute
					for distribute < -epsilon && len(resizable) > 0 {
						var largest, secondLargest float32
						widthToAdd := distribute

						for _, childIdx := range resizable {
							cs := c.axisDimension(childIdx, xAxis)
							if floatEqual(cs, largest) {
								continue
							}
							if cs > largest {
								secondLargest = largest
								largest = cs
							}
							if cs < largest {
								secondLargest = max(secondLargest, cs)
								widthToAdd = secondLargest - largest
							}
						}
						widthToAdd = max(widthToAdd, distribute/float32(len(resizable)))

						for j := 0; j < len(resizable); {
							childIdx := resizable[j]
							currentSize := c.axisDimension(childIdx, xAxis)
							minSize := c.axisMinDimension(childIdx, xAxis)
							if floatEqual(currentSize, largest) {
								newSize := currentSize + widthToAdd
								if newSize <= minSize {
									c.setAxisDimension(childIdx, xAxis, minSize)
									distribute -= minSize - currentSize
									resizable[j] = resizable[len(resizable)-1]
									resizable = resizable[:len(resizable)-1]
									continue
								}
								c.setAxisDimension(childIdx, xAxis, newSize)
								distribute -= newSize - currentSize
							}
							j++
						}
					}
				} else if sizeToDistribute > 0 && growContainerCount > 0 {
					for j := 0; j < len(resizable); {
						childIdx := resizable[j]
						if c.axisSizing(childIdx, xAxis).Type != SizingGrow {
							resizable[j] = resizable[len(resizable)-1]
							resizable = resizable[:len(resizable)-1]
						} else {
							j++
						}
					}

					distribute := sizeToDistribute
					for distribute > epsilon && len(resizable) > 0 {
						smallest := maxFloat
						secondSmallest := maxFloat
						widthToAdd := distribute

						for _, childIdx := range resizable {
							cs := c.axisDimension(childIdx, xAxis)
							if floatEqual(cs, smallest) {
								continue
							}
							if cs < smallest {
								secondSmallest = smallest
								smallest = cs
							}
							if cs > smallest {
								secondSmallest = min(secondSmallest, cs)
								widthToAdd = secondSmallest - smallest
							}
						}
						widthToAdd = min(widthToAdd, distribute/float32(len(resizable)))

						for j := 0; j < len(resizable); {
							childIdx := resizable[j]
							maxSize := c.axisSizing(childIdx, xAxis).Max
							currentSize := c.axisDimension(childIdx, xAxis)
							if floatEqual(currentSize, smallest) {
								previous := currentSize
								newSize := currentSize + widthToAdd
								if newSize >= maxSize {
									c.setAxisDimension(childIdx, xAxis, maxSize)
									resizable[j] = resizable[len(resizable)-1]
									resizable = resizable[:len(resizable)-1]
									continue
								}
								c.setAxisDimension(childIdx, xAxis, newSize)
								distribute -= newSize - previous
							}
							j++
						}
					}
				}
			} else {
				// Cross axis: grow children fill the parent's content area,
				// everything clamps between its min and that area.
				for _, childIdx := range resizable {
					childSizing := c.axisSizing(childIdx, xAxis)
					minSize := c.axisMinDimension(childIdx, xAxis)

					maxSize := parentSize - parentPadding
					if clipIdx, ok := c.findElementConfigIndex(parentIndex, configClip); ok {
						clip := &c.clipConfigs[clipIdx]
						if (xAxis && clip.Horizontal) || (!xAxis && clip.Vertical) {
							maxSize = max(maxSize, innerContentSize)
						}
					}

					childSize := c.axisDimension(childIdx, xAxis)
					if childSizing.Type == SizingGrow {
						childSize = min(maxSize, childSizing.Max)
					}
					c.setAxisDimension(childIdx, xAxis, max(minSize, min(childSize, maxSize)))
				}
			}
		}
	}
}

func (c *Context) axisDimension(elementIndex int, xAxis bool) float32 {
	if xAxis {
		return c.layoutElements[elementIndex].dimensions.Width
	}
	return c.layoutElements[elementIndex].dimensions.Height
}

func (c *Context) axisMinDimension(elementIndex int, xAxis bool) float32 {
	if xAxis {
		return c.layoutElements[elementIndex].minDimensions.Width
	}
	return c.layoutElements[elementIndex].minDimensions.Height
}

func (c *Context) setAxisDimension(elementIndex int, xAxis bool, size float32) {
	if xAxis {
		c.layoutElements[elementIndex].dimensions.Width = size
	} else {
		c.layoutElements[elementIndex].dimensions.Height = size
	}
}

func (c *Context) axisSizing(elementIndex int, xAxis bool) SizingAxis {
	layoutIdx := c.layoutElements[elementIndex].layoutConfigIndex
	if xAxis {
		return c.layoutConfigs[layoutIdx].Sizing.Width
	}
	return c.layoutConfigs[layoutIdx].Sizing.Height
}

// calculateFinalLayout runs the full pipeline for a frame: widths, text
// wrapping, height propagation, heights, z ordering and command emission.
func (c *Context) calculateFinalLayout() {
	c.sizeContainersAlongAxis(true)

	c.wrapText()

	for _, elemIdx := range c.aspectRatioElementIndexes {
		if cfgIdx, ok := c.findElementConfigIndex(elemIdx, configAspect); ok {
			aspectRatio := c.aspectRatioConfigs[cfgIdx]
			c.layoutElements[elemIdx].dimensions.Height =
				(1 / aspectRatio) * c.layoutElements[elemIdx].dimensions.Width
			layoutIdx := c.layoutElements[elemIdx].layoutConfigIndex
			c.layoutConfigs[layoutIdx].Sizing.Height.Max = c.layoutElements[elemIdx].dimensions.Height
		}
	}

	c.propagateSizesUpTree()

	c.sizeContainersAlongAxis(false)

	for _, elemIdx := range c.aspectRatioElementIndexes {
		if cfgIdx, ok := c.findElementConfigIndex(elemIdx, configAspect); ok {
			aspectRatio := c.aspectRatioConfigs[cfgIdx]
			c.layoutElements[elemIdx].dimensions.Width =
				aspectRatio * c.layoutElements[elemIdx].dimensions.Height
		}
	}

	// Stable ascending z sort keeps declaration order within a layer.
	for sortMax := len(c.treeRoots) - 1; sortMax > 0; sortMax-- {
		for i := 0; i < sortMax; i++ {
			if c.treeRoots[i+1].zIndex < c.treeRoots[i].zIndex {
				c.treeRoots[i], c.treeRoots[i+1] = c.treeRoots[i+1], c.treeRoots[i]
			}
		}
	}

	c.generateRenderCommands()
}

// wrapText splits each text element into lines that fit its resolved width
// and grows the element to the summed line height.
func (c *Context) wrapText() {
	for textIdx := range c.textElementData {
		elemIndex := c.textElementData[textIdx].elementIndex
		text := c.textElementData[textIdx].text
		preferredDims := c.textElementData[textIdx].preferredDimensions

		c.textElementData[textIdx].wrappedLinesStart = len(c.wrappedTextLines)
		c.textElementData[textIdx].wrappedLinesLength = 0

		containerWidth := c.layoutElements[elemIndex].dimensions.Width

		textConfigIdx, _ := c.findElementConfigIndex(elemIndex, configText)
		textConfig := c.textConfigs[textConfigIdx]

		measured := c.measureTextCached(text, &textConfig)
		// Unmeasured text (no measure function, or cache over capacity) has no
		// word chain to wrap and emits no lines.
		if measured == &emptyMeasureItem {
			continue
		}

		lineHeight := preferredDims.Height
		if textConfig.LineHeight > 0 {
			lineHeight = float32(textConfig.LineHeight)
		}

		if textConfig.WrapMode == WrapNone ||
			(!measured.containsNewlines && preferredDims.Width <= containerWidth) {
			lineDims := c.layoutElements[elemIndex].dimensions
			if textConfig.WrapMode == WrapNone {
				lineDims = Dimensions{Width: preferredDims.Width, Height: lineHeight}
			}
			c.wrappedTextLines = append(c.wrappedTextLines, wrappedTextLine{
				dimensions: lineDims,
				start:      0,
				length:     len(text),
			})
			c.textElementData[textIdx].wrappedLinesLength = 1
			continue
		}

		wrapWords := textConfig.WrapMode == WrapWords

		spaceWidth := c.measureTextFn(" ", &textConfig).Width

		wordIndex := measured.measuredWordsStartIndex
		var lineWidth float32
		lineLengthChars := 0
		lineStartOffset := 0

		for wordIndex != -1 {
			word := c.measuredWords[wordIndex]

			switch {
			case wrapWords && lineLengthChars == 0 && lineWidth+word.width > containerWidth:
				// An over-long word gets a line of its own.
				c.wrappedTextLines = append(c.wrappedTextLines, wrappedTextLine{
					dimensions: Dimensions{Width: word.width, Height: lineHeight},
					start:      word.startOffset,
					length:     word.length,
				})
				c.textElementData[textIdx].wrappedLinesLength++
				wordIndex = word.next
				lineStartOffset = word.startOffset + word.length

			case word.length == 0 || (wrapWords && lineWidth+word.width > containerWidth):
				// Line break: either an explicit newline marker or overflow.
				finalCharIdx := lineStartOffset + lineLengthChars - 1
				if finalCharIdx < 0 {
					finalCharIdx = 0
				}
				finalCharIsSpace := finalCharIdx < len(text) && text[finalCharIdx] == ' '
				adjWidth := lineWidth
				adjLength := lineLengthChars
				if finalCharIsSpace {
					adjWidth -= spaceWidth
					adjLength--
				}

				c.wrappedTextLines = append(c.wrappedTextLines, wrappedTextLine{
					dimensions: Dimensions{Width: adjWidth, Height: lineHeight},
					start:      lineStartOffset,
					length:     adjLength,
				})
				c.textElementData[textIdx].wrappedLinesLength++

				if lineLengthChars == 0 || word.length == 0 {
					wordIndex = word.next
				}
				lineWidth = 0
				lineLengthChars = 0
				lineStartOffset = word.startOffset

			default:
				lineWidth += word.width + float32(textConfig.LetterSpacing)
				lineLengthChars += word.length
				wordIndex = word.next
			}
		}

		if lineLengthChars > 0 {
			c.wrappedTextLines = append(c.wrappedTextLines, wrappedTextLine{
				dimensions: Dimensions{
					Width:  lineWidth - float32(textConfig.LetterSpacing),
					Height: lineHeight,
				},
				start:  lineStartOffset,
				length: lineLengthChars,
			})
			c.textElementData[textIdx].wrappedLinesLength++
		}

		numLines := c.textElementData[textIdx].wrappedLinesLength
		c.layoutElements[elemIndex].dimensions.Height = lineHeight * float32(numLines)
	}
}

// propagateSizesUpTree pushes height growth from wrapped text back up
// through fit-sized ancestors before the vertical sizing pass.
func (c *Context) propagateSizesUpTree() {
	var dfsBuffer []int
	var visited []bool

	for i := range c.treeRoots {
		dfsBuffer = append(dfsBuffer, c.treeRoots[i].layoutElementIndex)
		visited = append(visited, false)
	}

	for len(dfsBuffer) > 0 {
		bufIdx := len(dfsBuffer) - 1
		currentElemIdx := dfsBuffer[bufIdx]

		if !visited[bufIdx] {
			visited[bufIdx] = true
			isText := c.elementHasConfig(currentElemIdx, configText)
			childrenLength := c.layoutElements[currentElemIdx].childrenLength
			if isText || childrenLength == 0 {
				dfsBuffer = dfsBuffer[:bufIdx]
				visited = visited[:bufIdx]
				continue
			}
			childrenStart := c.layoutElements[currentElemIdx].childrenStart
			for j := 0; j < childrenLength; j++ {
				dfsBuffer = append(dfsBuffer, c.layoutElementChildren[childrenStart+j])
				visited = append(visited, false)
			}
			continue
		}

		dfsBuffer = dfsBuffer[:bufIdx]
		visited = visited[:bufIdx]

		layoutConfig := c.layoutConfigs[c.layoutElements[currentElemIdx].layoutConfigIndex]
		childrenStart := c.layoutElements[currentElemIdx].childrenStart
		childrenLength := c.layoutElements[currentElemIdx].childrenLength

		if layoutConfig.LayoutDirection == LeftToRight {
			for j := 0; j < childrenLength; j++ {
				childIdx := c.layoutElementChildren[childrenStart+j]
				childHeightWithPadding := max(
					c.layoutElements[childIdx].dimensions.Height+
						float32(layoutConfig.Padding.Top)+float32(layoutConfig.Padding.Bottom),
					c.layoutElements[currentElemIdx].dimensions.Height)
				c.layoutElements[currentElemIdx].dimensions.Height = min(
					max(childHeightWithPadding, layoutConfig.Sizing.Height.Min),
					layoutConfig.Sizing.Height.Max)
			}
		} else {
			contentHeight := float32(layoutConfig.Padding.Top) + float32(layoutConfig.Padding.Bottom)
			for j := 0; j < childrenLength; j++ {
				childIdx := c.layoutElementChildren[childrenStart+j]
				contentHeight += c.layoutElements[childIdx].dimensions.Height
			}
			if childrenLength > 0 {
				contentHeight += float32(childrenLength-1) * float32(layoutConfig.ChildGap)
			}
			c.layoutElements[currentElemIdx].dimensions.Height = min(
				max(contentHeight, layoutConfig.Sizing.Height.Min),
				layoutConfig.Sizing.Height.Max)
		}
	}
}
