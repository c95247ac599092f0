package ply

import "math"

func (c *Context) elementIsOffscreen(bbox BoundingBox) bool {
	if c.cullingDisabled {
		return false
	}
	return bbox.X > c.layoutDimensions.Width ||
		bbox.Y > c.layoutDimensions.Height ||
		bbox.X+bbox.Width < 0 ||
		bbox.Y+bbox.Height < 0
}

func (c *Context) addRenderCommand(cmd RenderCommand) {
	c.renderCommands = append(c.renderCommands, cmd)
}

// rotatedFootprint returns the axis-aligned box a rotated element covers.
// The element keeps its layout slot; the footprint grows around the slot's
// center. Rounded corners shrink the rotating body, so the corner radius is
// excluded from the trig expansion and added back afterward.
func rotatedFootprint(bbox BoundingBox, rotation RotationConfig, radius float32) BoundingBox {
	theta := float64(rotation.AngleRadians)
	sin := math.Abs(math.Sin(theta))
	cos := math.Abs(math.Cos(theta))

	var effW, effH float32
	switch {
	case sin < 1e-6:
		return bbox
	case cos < 1e-6:
		effW, effH = bbox.Height, bbox.Width
	default:
		innerW := max(bbox.Width-2*radius, 0)
		innerH := max(bbox.Height-2*radius, 0)
		effW = innerW*float32(cos) + innerH*float32(sin) + 2*radius
		effH = innerW*float32(sin) + innerH*float32(cos) + 2*radius
	}

	cx := bbox.X + bbox.Width/2
	cy := bbox.Y + bbox.Height/2
	return BoundingBox{
		X:      cx - effW/2,
		Y:      cy - effH/2,
		Width:  effW,
		Height: effH,
	}
}

// floatingTargetPosition resolves the anchor math for a floating root:
// parent anchor point minus the element's own anchor offset, plus the
// configured offset.
func floatingTargetPosition(config *FloatingConfig, parentBBox BoundingBox, rootDims Dimensions) Vector2 {
	var target Vector2

	switch config.AttachPoints.Parent {
	case AttachPointLeftTop, AttachPointLeftCenter, AttachPointLeftBottom:
		target.X = parentBBox.X
	case AttachPointCenterTop, AttachPointCenterCenter, AttachPointCenterBottom:
		target.X = parentBBox.X + parentBBox.Width/2
	case AttachPointRightTop, AttachPointRightCenter, AttachPointRightBottom:
		target.X = parentBBox.X + parentBBox.Width
	}
	switch config.AttachPoints.Element {
	case AttachPointCenterTop, AttachPointCenterCenter, AttachPointCenterBottom:
		target.X -= rootDims.Width / 2
	case AttachPointRightTop, AttachPointRightCenter, AttachPointRightBottom:
		target.X -= rootDims.Width
	}

	switch config.AttachPoints.Parent {
	case AttachPointLeftTop, AttachPointCenterTop, AttachPointRightTop:
		target.Y = parentBBox.Y
	case AttachPointLeftCenter, AttachPointCenterCenter, AttachPointRightCenter:
		target.Y = parentBBox.Y + parentBBox.Height/2
	case AttachPointLeftBottom, AttachPointCenterBottom, AttachPointRightBottom:
		target.Y = parentBBox.Y + parentBBox.Height
	}
	switch config.AttachPoints.Element {
	case AttachPointLeftCenter, AttachPointCenterCenter, AttachPointRightCenter:
		target.Y -= rootDims.Height / 2
	case AttachPointLeftBottom, AttachPointCenterBottom, AttachPointRightBottom:
		target.Y -= rootDims.Height
	}

	target.X += config.Offset.X
	target.Y += config.Offset.Y
	return target
}

func (c *Context) generateRenderCommands() {
	c.renderCommands = c.renderCommands[:0]
	var dfsBuffer []treeNode
	var visited []bool

	for rootIndex := 0; rootIndex < len(c.treeRoots); rootIndex++ {
		dfsBuffer = dfsBuffer[:0]
		visited = visited[:0]
		root := c.treeRoots[rootIndex]
		rootElemIdx := root.layoutElementIndex
		var rootPosition Vector2

		if floatCfgIdx, ok := c.findElementConfigIndex(rootElemIdx, configFloating); ok {
			config := &c.floatingConfigs[floatCfgIdx]
			parentItem, found := c.elementMap[root.parentID]
			if !found || parentItem.generation <= c.generation {
				// Degraded placement: the root stays at the layout origin,
				// ignoring attach points and offset.
				c.raiseError(ErrFloatingContainerParentNotFound, "")
			} else {
				rootPosition = floatingTargetPosition(config, parentItem.boundingBox, c.layoutElements[rootElemIdx].dimensions)
			}
		}

		if root.clipElementID != 0 {
			if clipItem, ok := c.elementMap[root.clipElementID]; ok {
				c.addRenderCommand(RenderCommand{
					BoundingBox: clipItem.boundingBox,
					Type:        CommandScissorStart,
					ID:          hashNumber(c.layoutElements[rootElemIdx].id, uint32(c.layoutElements[rootElemIdx].childrenLength)+10).ID,
					ZIndex:      root.zIndex,
				})
			}
		}

		rootLayout := c.layoutConfigs[c.layoutElements[rootElemIdx].layoutConfigIndex]
		dfsBuffer = append(dfsBuffer, treeNode{
			layoutElementIndex: rootElemIdx,
			position:           rootPosition,
			nextChildOffset: Vector2{
				X: float32(rootLayout.Padding.Left),
				Y: float32(rootLayout.Padding.Top),
			},
		})
		visited = append(visited, false)

		for len(dfsBuffer) > 0 {
			bufIdx := len(dfsBuffer) - 1
			currentNode := dfsBuffer[bufIdx]
			currentElemIdx := currentNode.layoutElementIndex
			layoutConfig := c.layoutConfigs[c.layoutElements[currentElemIdx].layoutConfigIndex]
			var scrollOffset Vector2

			if !visited[bufIdx] {
				visited[bufIdx] = true

				currentBBox := BoundingBox{
					X:      currentNode.position.X,
					Y:      currentNode.position.Y,
					Width:  c.layoutElements[currentElemIdx].dimensions.Width,
					Height: c.layoutElements[currentElemIdx].dimensions.Height,
				}

				if floatCfgIdx, ok := c.findElementConfigIndex(currentElemIdx, configFloating); ok {
					expand := c.floatingConfigs[floatCfgIdx].Expand
					currentBBox.X -= expand.Width
					currentBBox.Width += expand.Width * 2
					currentBBox.Y -= expand.Height
					currentBBox.Height += expand.Height * 2
				}

				scrollContainerIdx := -1
				if clipCfgIdx, ok := c.findElementConfigIndex(currentElemIdx, configClip); ok {
					clipConfig := c.clipConfigs[clipCfgIdx]
					for si := range c.scrollContainers {
						if c.scrollContainers[si].layoutElementIndex == currentElemIdx {
							scrollContainerIdx = si
							c.scrollContainers[si].boundingBox = currentBBox
							scrollOffset = clipConfig.ChildOffset
							break
						}
					}
				}

				elemID := c.layoutElements[currentElemIdx].id
				if item, ok := c.elementMap[elemID]; ok {
					item.boundingBox = currentBBox
				}

				var shared sharedConfig
				if sharedIdx, ok := c.findElementConfigIndex(currentElemIdx, configShared); ok {
					shared = c.sharedConfigs[sharedIdx]
				}

				var rotation RotationConfig
				hasRotation := false
				if rotIdx, ok := c.findElementConfigIndex(currentElemIdx, configRotation); ok {
					rotation = c.rotationConfigs[rotIdx]
					hasRotation = true
				}
				emittedBBox := currentBBox
				if hasRotation {
					emittedBBox = rotatedFootprint(currentBBox, rotation, shared.cornerRadius.maxRadius())
				}

				var elementEffects []ShaderConfig
				if fxIdx, ok := c.findElementConfigIndex(currentElemIdx, configEffects); ok {
					elementEffects = c.effectConfigs[fxIdx]
				}

				emitRectangle := shared.backgroundColor.A > 0
				shouldRender := !c.elementIsOffscreen(emittedBBox)

				// Group effects render children into an offscreen target and
				// composite with the shader chain on the way back up.
				if len(elementEffects) > 0 && shouldRender {
					for _, effect := range elementEffects {
						c.addRenderCommand(RenderCommand{
							BoundingBox: emittedBBox,
							Type:        CommandShaderBegin,
							Shader:      effect,
							ID:          hashNumber(elemID, uint32(len(c.renderCommands))).ID,
							ZIndex:      root.zIndex,
						})
					}
				}

				configsStart := c.layoutElements[currentElemIdx].elementConfigs.start
				configsLength := c.layoutElements[currentElemIdx].elementConfigs.length

				for cfgI := 0; cfgI < configsLength; cfgI++ {
					config := c.elementConfigs[configsStart+cfgI]

					switch config.configType {
					case configShared, configAspect, configFloating, configBorder, configRotation, configEffects:

					case configClip:
						if shouldRender {
							c.addRenderCommand(RenderCommand{
								BoundingBox: currentBBox,
								Type:        CommandScissorStart,
								ID:          elemID,
								ZIndex:      root.zIndex,
							})
						}

					case configImage:
						if shouldRender {
							c.addRenderCommand(RenderCommand{
								BoundingBox: emittedBBox,
								Type:        CommandImage,
								Image: ImageData{
									BackgroundColor: shared.backgroundColor,
									CornerRadius:    shared.cornerRadius,
									Data:            c.imageConfigs[config.configIndex].Data,
								},
								Effects:  elementEffects,
								Rotation: rotation,
								UserData: shared.userData,
								ID:       elemID,
								ZIndex:   root.zIndex,
							})
						}
						emitRectangle = false

					case configText:
						if !shouldRender {
							continue
						}
						textConfig := c.textConfigs[config.configIndex]
						textDataIdx := c.layoutElements[currentElemIdx].textDataIndex
						if textDataIdx < 0 {
							continue
						}
						textData := &c.textElementData[textDataIdx]
						naturalLineHeight := textData.preferredDimensions.Height
						finalLineHeight := naturalLineHeight
						if textConfig.LineHeight > 0 {
							finalLineHeight = float32(textConfig.LineHeight)
						}
						yPosition := (finalLineHeight - naturalLineHeight) / 2

						for lineIndex := 0; lineIndex < textData.wrappedLinesLength; lineIndex++ {
							line := c.wrappedTextLines[textData.wrappedLinesStart+lineIndex]
							if line.length == 0 {
								yPosition += finalLineHeight
								continue
							}

							offset := currentBBox.Width - line.dimensions.Width
							switch textConfig.Alignment {
							case AlignLeft:
								offset = 0
							case AlignCenterX:
								offset /= 2
							}

							c.addRenderCommand(RenderCommand{
								BoundingBox: BoundingBox{
									X:      currentBBox.X + offset,
									Y:      currentBBox.Y + yPosition,
									Width:  line.dimensions.Width,
									Height: line.dimensions.Height,
								},
								Type: CommandText,
								Text: TextData{
									Text:          textData.text[line.start : line.start+line.length],
									Color:         textConfig.Color,
									FontID:        textConfig.FontID,
									FontSize:      textConfig.FontSize,
									LetterSpacing: textConfig.LetterSpacing,
									LineHeight:    textConfig.LineHeight,
								},
								Effects:  textConfig.Effects,
								UserData: textConfig.UserData,
								ID:       hashNumber(uint32(lineIndex), elemID).ID,
								ZIndex:   root.zIndex,
							})
							yPosition += finalLineHeight
						}

					case configCustom:
						if shouldRender {
							c.addRenderCommand(RenderCommand{
								BoundingBox: emittedBBox,
								Type:        CommandCustom,
								Custom: CustomData{
									BackgroundColor: shared.backgroundColor,
									CornerRadius:    shared.cornerRadius,
									Data:            c.customConfigs[config.configIndex],
								},
								Effects:  elementEffects,
								Rotation: rotation,
								UserData: shared.userData,
								ID:       elemID,
								ZIndex:   root.zIndex,
							})
						}
						emitRectangle = false
					}
				}

				if emitRectangle && shouldRender {
					c.addRenderCommand(RenderCommand{
						BoundingBox: emittedBBox,
						Type:        CommandRectangle,
						Rectangle: RectangleData{
							BackgroundColor: shared.backgroundColor,
							CornerRadius:    shared.cornerRadius,
						},
						Effects:  elementEffects,
						Rotation: rotation,
						UserData: shared.userData,
						ID:       elemID,
						ZIndex:   root.zIndex,
					})
				}

				// Leftover space shifts the first child when children are
				// aligned along the layout axis.
				isText := c.elementHasConfig(currentElemIdx, configText)
				if !isText {
					childrenStart := c.layoutElements[currentElemIdx].childrenStart
					childrenLength := c.layoutElements[currentElemIdx].childrenLength

					if layoutConfig.LayoutDirection == LeftToRight {
						var contentWidth float32
						for ci := 0; ci < childrenLength; ci++ {
							childIdx := c.layoutElementChildren[childrenStart+ci]
							contentWidth += c.layoutElements[childIdx].dimensions.Width
						}
						if childrenLength > 0 {
							contentWidth += float32(childrenLength-1) * float32(layoutConfig.ChildGap)
						}
						extraSpace := c.layoutElements[currentElemIdx].dimensions.Width -
							layoutConfig.Padding.alongAxis(true) - contentWidth
						switch layoutConfig.ChildAlignment.X {
						case AlignLeft:
							extraSpace = 0
						case AlignCenterX:
							extraSpace /= 2
						}
						dfsBuffer[bufIdx].nextChildOffset.X += extraSpace
					} else {
						var contentHeight float32
						for ci := 0; ci < childrenLength; ci++ {
							childIdx := c.layoutElementChildren[childrenStart+ci]
							contentHeight += c.layoutElements[childIdx].dimensions.Height
						}
						if childrenLength > 0 {
							contentHeight += float32(childrenLength-1) * float32(layoutConfig.ChildGap)
						}
						extraSpace := c.layoutElements[currentElemIdx].dimensions.Height -
							layoutConfig.Padding.alongAxis(false) - contentHeight
						switch layoutConfig.ChildAlignment.Y {
						case AlignTop:
							extraSpace = 0
						case AlignCenterY:
							extraSpace /= 2
						}
						dfsBuffer[bufIdx].nextChildOffset.Y += extraSpace
					}

					if scrollContainerIdx >= 0 {
						var contentW, contentH float32
						for ci := 0; ci < childrenLength; ci++ {
							childIdx := c.layoutElementChildren[childrenStart+ci]
							childDims := c.layoutElements[childIdx].dimensions
							if layoutConfig.LayoutDirection == LeftToRight {
								contentW += childDims.Width
								contentH = max(contentH, childDims.Height)
							} else {
								contentW = max(contentW, childDims.Width)
								contentH += childDims.Height
							}
						}
						if childrenLength > 0 {
							gap := float32(childrenLength-1) * float32(layoutConfig.ChildGap)
							if layoutConfig.LayoutDirection == LeftToRight {
								contentW += gap
							} else {
								contentH += gap
							}
						}
						contentW += layoutConfig.Padding.alongAxis(true)
						contentH += layoutConfig.Padding.alongAxis(false)
						c.scrollContainers[scrollContainerIdx].contentSize = Dimensions{Width: contentW, Height: contentH}
					}
				}
			} else {
				// Close visit: borders and scissor/shader ends.
				closeClip := false
				if clipCfgIdx, ok := c.findElementConfigIndex(currentElemIdx, configClip); ok {
					closeClip = true
					clipConfig := c.clipConfigs[clipCfgIdx]
					for si := range c.scrollContainers {
						if c.scrollContainers[si].layoutElementIndex == currentElemIdx {
							scrollOffset = clipConfig.ChildOffset
							break
						}
					}
				}

				if borderCfgIdx, ok := c.findElementConfigIndex(currentElemIdx, configBorder); ok {
					borderElemID := c.layoutElements[currentElemIdx].id
					if item, ok := c.elementMap[borderElemID]; ok {
						bbox := item.boundingBox
						if !c.elementIsOffscreen(bbox) {
							var shared sharedConfig
							if sharedIdx, ok := c.findElementConfigIndex(currentElemIdx, configShared); ok {
								shared = c.sharedConfigs[sharedIdx]
							}
							borderConfig := c.borderConfigs[borderCfgIdx]
							childrenCount := c.layoutElements[currentElemIdx].childrenLength

							c.addRenderCommand(RenderCommand{
								BoundingBox: bbox,
								Type:        CommandBorder,
								Border: BorderData{
									Color:        borderConfig.Color,
									CornerRadius: shared.cornerRadius,
									Width:        borderConfig.Width,
								},
								UserData: shared.userData,
								ID:       hashNumber(borderElemID, uint32(childrenCount)).ID,
								ZIndex:   root.zIndex,
							})

							if borderConfig.Width.BetweenChildren > 0 && borderConfig.Color.A > 0 {
								halfGap := float32(layoutConfig.ChildGap) / 2
								childrenStart := c.layoutElements[currentElemIdx].childrenStart
								childrenLength := c.layoutElements[currentElemIdx].childrenLength

								if layoutConfig.LayoutDirection == LeftToRight {
									borderOffsetX := float32(layoutConfig.Padding.Left) - halfGap
									for ci := 0; ci < childrenLength; ci++ {
										childIdx := c.layoutElementChildren[childrenStart+ci]
										if ci > 0 {
											c.addRenderCommand(RenderCommand{
												BoundingBox: BoundingBox{
													X:      bbox.X + borderOffsetX + scrollOffset.X,
													Y:      bbox.Y + scrollOffset.Y,
													Width:  float32(borderConfig.Width.BetweenChildren),
													Height: c.layoutElements[currentElemIdx].dimensions.Height,
												},
												Type: CommandRectangle,
												Rectangle: RectangleData{
													BackgroundColor: borderConfig.Color,
												},
												UserData: shared.userData,
												ID:       hashNumber(borderElemID, uint32(childrenCount+1+ci)).ID,
												ZIndex:   root.zIndex,
											})
										}
										borderOffsetX += c.layoutElements[childIdx].dimensions.Width + float32(layoutConfig.ChildGap)
									}
								} else {
									borderOffsetY := float32(layoutConfig.Padding.Top) - halfGap
									for ci := 0; ci < childrenLength; ci++ {
										childIdx := c.layoutElementChildren[childrenStart+ci]
										if ci > 0 {
											c.addRenderCommand(RenderCommand{
												BoundingBox: BoundingBox{
													X:      bbox.X + scrollOffset.X,
													Y:      bbox.Y + borderOffsetY + scrollOffset.Y,
													Width:  c.layoutElements[currentElemIdx].dimensions.Width,
													Height: float32(borderConfig.Width.BetweenChildren),
												},
												Type: CommandRectangle,
												Rectangle: RectangleData{
													BackgroundColor: borderConfig.Color,
												},
												UserData: shared.userData,
												ID:       hashNumber(borderElemID, uint32(childrenCount+1+ci)).ID,
												ZIndex:   root.zIndex,
											})
										}
										borderOffsetY += c.layoutElements[childIdx].dimensions.Height + float32(layoutConfig.ChildGap)
									}
								}
							}
						}
					}
				}

				if closeClip {
					c.addRenderCommand(RenderCommand{
						Type: CommandScissorEnd,
						ID:   hashNumber(c.layoutElements[currentElemIdx].id, uint32(c.layoutElements[rootElemIdx].childrenLength)+11).ID,
					})
				}

				if fxIdx, ok := c.findElementConfigIndex(currentElemIdx, configEffects); ok {
					effects := c.effectConfigs[fxIdx]
					item := c.elementMap[c.layoutElements[currentElemIdx].id]
					if item != nil && !c.elementIsOffscreen(item.boundingBox) {
						for range effects {
							c.addRenderCommand(RenderCommand{
								Type:   CommandShaderEnd,
								ID:     hashNumber(c.layoutElements[currentElemIdx].id, uint32(len(c.renderCommands))+20).ID,
								ZIndex: root.zIndex,
							})
						}
					}
				}

				dfsBuffer = dfsBuffer[:bufIdx]
				visited = visited[:bufIdx]
				continue
			}

			// Push children in reverse so the first child is processed next.
			isText := c.elementHasConfig(currentElemIdx, configText)
			if !isText {
				childrenStart := c.layoutElements[currentElemIdx].childrenStart
				childrenLength := c.layoutElements[currentElemIdx].childrenLength

				newLen := len(dfsBuffer) + childrenLength
				for len(dfsBuffer) < newLen {
					dfsBuffer = append(dfsBuffer, treeNode{})
					visited = append(visited, false)
				}

				for ci := 0; ci < childrenLength; ci++ {
					childIdx := c.layoutElementChildren[childrenStart+ci]
					childLayout := c.layoutConfigs[c.layoutElements[childIdx].layoutConfigIndex]

					childOffset := dfsBuffer[bufIdx].nextChildOffset
					if layoutConfig.LayoutDirection == LeftToRight {
						childOffset.Y = float32(layoutConfig.Padding.Top)
						whitespace := c.layoutElements[currentElemIdx].dimensions.Height -
							layoutConfig.Padding.alongAxis(false) -
							c.layoutElements[childIdx].dimensions.Height
						switch layoutConfig.ChildAlignment.Y {
						case AlignCenterY:
							childOffset.Y += whitespace / 2
						case AlignBottom:
							childOffset.Y += whitespace
						}
					} else {
						childOffset.X = float32(layoutConfig.Padding.Left)
						whitespace := c.layoutElements[currentElemIdx].dimensions.Width -
							layoutConfig.Padding.alongAxis(true) -
							c.layoutElements[childIdx].dimensions.Width
						switch layoutConfig.ChildAlignment.X {
						case AlignCenterX:
							childOffset.X += whitespace / 2
						case AlignRight:
							childOffset.X += whitespace
						}
					}

					childPosition := Vector2{
						X: dfsBuffer[bufIdx].position.X + childOffset.X + scrollOffset.X,
						Y: dfsBuffer[bufIdx].position.Y + childOffset.Y + scrollOffset.Y,
					}

					newNodeIndex := newLen - 1 - ci
					dfsBuffer[newNodeIndex] = treeNode{
						layoutElementIndex: childIdx,
						position:           childPosition,
						nextChildOffset: Vector2{
							X: float32(childLayout.Padding.Left),
							Y: float32(childLayout.Padding.Top),
						},
					}
					visited[newNodeIndex] = false

					if layoutConfig.LayoutDirection == LeftToRight {
						dfsBuffer[bufIdx].nextChildOffset.X +=
							c.layoutElements[childIdx].dimensions.Width + float32(layoutConfig.ChildGap)
					} else {
						dfsBuffer[bufIdx].nextChildOffset.Y +=
							c.layoutElements[childIdx].dimensions.Height + float32(layoutConfig.ChildGap)
					}
				}
			}
		}

		if root.clipElementID != 0 {
			rootElem := &c.layoutElements[rootElemIdx]
			c.addRenderCommand(RenderCommand{
				Type: CommandScissorEnd,
				ID:   hashNumber(rootElem.id, uint32(rootElem.childrenLength)+11).ID,
			})
		}
	}
}
