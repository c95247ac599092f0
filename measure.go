package ply

// measuredWord is one whitespace-delimited run of text with its measured
// width. Words form a singly-linked chain per cache entry so entries can be
// recycled through the free list without moving memory.
type measuredWord struct {
	startOffset int
	length      int
	width       float32
	next        int
}

// measureTextCacheItem caches the measurement of a full text run. Items are
// evicted once unused for more than two frames.
type measureTextCacheItem struct {
	unwrappedDimensions     Dimensions
	measuredWordsStartIndex int
	minWidth                float32
	containsNewlines        bool
	id                      uint32
	generation              uint32
}

var emptyMeasureItem = measureTextCacheItem{measuredWordsStartIndex: -1}

func (c *Context) measureTextCached(text string, config *TextConfig) *measureTextCacheItem {
	if c.measureTextFn == nil {
		if !c.warnings.textMeasurementFnNotSet {
			c.warnings.textMeasurementFnNotSet = true
			c.raiseError(ErrTextMeasurementFunctionNotProvided, "")
		}
		return &emptyMeasureItem
	}

	id := hashTextWithConfig(text, config)

	if item, ok := c.measureTextCache[id]; ok {
		item.generation = c.generation
		return item
	}

	if len(c.measuredWords)-len(c.measuredWordsFreeList)+len(text)/2+1 > c.maxMeasureTextCacheWordCount {
		if !c.warnings.maxTextMeasureCacheFull {
			c.warnings.maxTextMeasureCacheFull = true
			c.raiseError(ErrTextMeasurementCapacityExceeded, "")
		}
		return &emptyMeasureItem
	}

	spaceWidth := c.measureTextFn(" ", config).Width

	var (
		start, end        int
		lineWidth         float32
		measuredWidth     float32
		measuredHeight    float32
		minWidth          float32
		containsNewlines  bool
		firstWordIndex    = -1
		previousWordIndex = -1
	)

	addWord := func(word measuredWord) {
		idx := c.addMeasuredWord(word, previousWordIndex)
		if previousWordIndex == -1 {
			firstWordIndex = idx
		}
		previousWordIndex = idx
	}

	for end < len(text) {
		current := text[end]
		if current == ' ' || current == '\n' {
			length := end - start
			var dimensions Dimensions
			if length > 0 {
				dimensions = c.measureTextFn(text[start:end], config)
			}
			if dimensions.Width > minWidth {
				minWidth = dimensions.Width
			}
			if dimensions.Height > measuredHeight {
				measuredHeight = dimensions.Height
			}

			if current == ' ' {
				dimensions.Width += spaceWidth
				addWord(measuredWord{
					startOffset: start,
					length:      length + 1,
					width:       dimensions.Width,
					next:        -1,
				})
				lineWidth += dimensions.Width
			}
			if current == '\n' {
				if length > 0 {
					addWord(measuredWord{
						startOffset: start,
						length:      length,
						width:       dimensions.Width,
						next:        -1,
					})
				}
				// Zero-length marker word records the line break position.
				addWord(measuredWord{startOffset: end + 1, next: -1})
				lineWidth += dimensions.Width
				if lineWidth > measuredWidth {
					measuredWidth = lineWidth
				}
				containsNewlines = true
				lineWidth = 0
			}
			start = end + 1
		}
		end++
	}

	if end-start > 0 {
		dimensions := c.measureTextFn(text[start:end], config)
		addWord(measuredWord{
			startOffset: start,
			length:      end - start,
			width:       dimensions.Width,
			next:        -1,
		})
		lineWidth += dimensions.Width
		if dimensions.Height > measuredHeight {
			measuredHeight = dimensions.Height
		}
		if dimensions.Width > minWidth {
			minWidth = dimensions.Width
		}
	}

	if lineWidth > measuredWidth {
		measuredWidth = lineWidth
	}
	measuredWidth -= float32(config.LetterSpacing)

	item := &measureTextCacheItem{
		id:                      id,
		generation:              c.generation,
		measuredWordsStartIndex: firstWordIndex,
		unwrappedDimensions:     Dimensions{Width: measuredWidth, Height: measuredHeight},
		minWidth:                minWidth,
		containsNewlines:        containsNewlines,
	}
	c.measureTextCache[id] = item
	return item
}

func (c *Context) addMeasuredWord(word measuredWord, previousWordIndex int) int {
	var newIndex int
	if n := len(c.measuredWordsFreeList); n > 0 {
		newIndex = c.measuredWordsFreeList[n-1]
		c.measuredWordsFreeList = c.measuredWordsFreeList[:n-1]
		c.measuredWords[newIndex] = word
	} else {
		c.measuredWords = append(c.measuredWords, word)
		newIndex = len(c.measuredWords) - 1
	}
	if previousWordIndex >= 0 {
		c.measuredWords[previousWordIndex].next = newIndex
	}
	return newIndex
}

// evictStaleTextCache recycles cache entries unused for more than two
// frames, returning their word chains to the free list.
func (c *Context) evictStaleTextCache() {
	gen := c.generation
	for id, item := range c.measureTextCache {
		if gen-item.generation <= 2 {
			continue
		}
		idx := item.measuredWordsStartIndex
		for idx != -1 {
			next := c.measuredWords[idx].next
			c.measuredWordsFreeList = append(c.measuredWordsFreeList, idx)
			idx = next
		}
		delete(c.measureTextCache, id)
	}
}
