package cpu

// Segment is a mutable array of words. A mapped segment is never nil, even
// when it holds no words.
type Segment []uint32

// Arena owns every segment of the machine, addressed by identifier.
//
// Segment 0 always exists and holds the executing program. Unmapped
// identifiers are reissued in the order they were freed before any new
// identifier is minted.
type Arena struct {
	segment []Segment // Indexed by identifier; nil when unmapped.
	free    Queue     // Unmapped identifiers, in order of release.
}

// NewArena creates an arena holding only an empty segment 0.
func NewArena() (a *Arena) {
	a = &Arena{}
	a.Reset()

	return
}

// Reset releases all segments, leaving an empty segment 0.
func (a *Arena) Reset() {
	clear(a.segment)
	a.segment = []Segment{{}}
	a.free.Reset()
}

// get returns the mapped segment at id.
func (a *Arena) get(id uint32) (seg Segment, err error) {
	if uint64(id) >= uint64(len(a.segment)) || a.segment[id] == nil {
		err = &ErrSegment{Id: id, Err: ErrSegmentInactive}
		return
	}

	seg = a.segment[id]
	return
}

// Map allocates a zeroed segment of count words, and returns its identifier.
func (a *Arena) Map(count uint32) (id uint32) {
	seg := make(Segment, count)

	id, ok := a.free.Pop()
	if ok {
		a.segment[id] = seg
		return
	}

	id = uint32(len(a.segment))
	a.segment = append(a.segment, seg)

	return
}

// Unmap releases the segment at id, and queues id for reuse.
func (a *Arena) Unmap(id uint32) (err error) {
	if id == 0 {
		err = &ErrSegment{Id: id, Err: ErrSegmentZero}
		return
	}

	_, err = a.get(id)
	if err != nil {
		return
	}

	a.segment[id] = nil
	a.free.Push(id)

	return
}

// Read returns the word at offset in segment id.
func (a *Arena) Read(id uint32, offset uint32) (value uint32, err error) {
	seg, err := a.get(id)
	if err != nil {
		return
	}

	if uint64(offset) >= uint64(len(seg)) {
		err = &ErrSegment{Id: id, Offset: offset, Err: ErrSegmentBounds}
		return
	}

	value = seg[offset]
	return
}

// Write sets the word at offset in segment id.
func (a *Arena) Write(id uint32, offset uint32, value uint32) (err error) {
	seg, err := a.get(id)
	if err != nil {
		return
	}

	if uint64(offset) >= uint64(len(seg)) {
		err = &ErrSegment{Id: id, Offset: offset, Err: ErrSegmentBounds}
		return
	}

	seg[offset] = value
	return
}

// Load replaces segment 0 with a copy of segment id.
// The copy shares no storage with segment id.
func (a *Arena) Load(id uint32) (err error) {
	seg, err := a.get(id)
	if err != nil {
		return
	}

	// A copy of segment 0 onto itself changes nothing.
	if id == 0 {
		return
	}

	a.Program(seg)

	return
}

// Program replaces segment 0 with a copy of words.
func (a *Arena) Program(words []uint32) {
	program := make(Segment, len(words))
	copy(program, words)

	a.segment[0] = program
}

// Len returns the number of words in segment id.
func (a *Arena) Len(id uint32) (count int, err error) {
	seg, err := a.get(id)
	if err != nil {
		return
	}

	count = len(seg)
	return
}

// Mapped returns true if id refers to a mapped segment.
func (a *Arena) Mapped(id uint32) bool {
	_, err := a.get(id)
	return err == nil
}

// Active returns the number of mapped segments, including segment 0.
func (a *Arena) Active() (count int) {
	for _, seg := range a.segment {
		if seg != nil {
			count++
		}
	}

	return
}
