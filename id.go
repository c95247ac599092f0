package ply

// ElementID identifies an element across frames. ID is the fully-mixed hash,
// BaseID the hash of the label without the offset, so indexed siblings made
// with IDI share a BaseID.
type ElementID struct {
	ID       uint32
	Offset   uint32
	BaseID   uint32
	StringID string
}

// ID hashes a string label into an element id. A zero ID is never produced;
// zero means "no id". ID(label) is equivalent to IDI(label, 0).
func ID(label string) ElementID {
	return hashStringWithOffset(label, 0, 0)
}

// IDI hashes a string label combined with an index, for elements declared in
// loops. The index participates in ID but not in BaseID.
func IDI(label string, index uint32) ElementID {
	return hashStringWithOffset(label, index, 0)
}

func hashStringWithOffset(key string, offset, seed uint32) ElementID {
	base := seed
	for i := 0; i < len(key); i++ {
		base += uint32(key[i])
		base += base << 10
		base ^= base >> 6
	}
	hash := base
	hash += offset
	hash += hash << 10
	hash ^= hash >> 6

	hash += hash << 3
	base += base << 3
	hash ^= hash >> 11
	base ^= base >> 11
	hash += hash << 15
	base += base << 15
	return ElementID{
		ID:       hash + 1,
		Offset:   offset,
		BaseID:   base + 1,
		StringID: key,
	}
}

// hashNumber derives ids for anonymous elements from their position under
// the parent, seeded by the parent's id.
func hashNumber(offset, seed uint32) ElementID {
	hash := seed
	hash += offset + 48
	hash += hash << 10
	hash ^= hash >> 6
	hash += hash << 3
	hash ^= hash >> 11
	hash += hash << 15
	return ElementID{
		ID:     hash + 1,
		Offset: offset,
		BaseID: seed,
	}
}

func hashDataScalar(data []byte) uint64 {
	var hash uint64
	for _, b := range data {
		hash += uint64(b)
		hash += hash << 10
		hash ^= hash >> 6
	}
	return hash
}

// hashTextWithConfig keys the text measurement cache on the text contents
// and the measurement-relevant parts of its config.
func hashTextWithConfig(text string, config *TextConfig) uint32 {
	hash := uint32(hashDataScalar([]byte(text)) % uint64(^uint32(0)))
	hash += uint32(config.FontID)
	hash += hash << 10
	hash ^= hash >> 6
	hash += uint32(config.FontSize)
	hash += hash << 10
	hash ^= hash >> 6
	hash += uint32(config.LetterSpacing)
	hash += hash << 10
	hash ^= hash >> 6
	hash += hash << 3
	hash ^= hash >> 11
	hash += hash << 15
	return hash + 1
}
