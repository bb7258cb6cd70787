package cpu

// Queue is a first-in, first-out list of segment identifiers.
type Queue struct {
	Data []uint32
}

// Push adds a value to the tail of the queue.
func (q *Queue) Push(value uint32) {
	q.Data = append(q.Data, value)
}

// Pop removes the value at the head of the queue.
func (q *Queue) Pop() (value uint32, ok bool) {
	value, ok = q.Peek()
	if ok {
		q.Data = q.Data[1:]
	}
	return
}

func (q *Queue) Empty() bool {
	return len(q.Data) == 0
}

func (q *Queue) Len() int {
	return len(q.Data)
}

// Peek returns the value at the head of the queue.
func (q *Queue) Peek() (value uint32, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[0], true
}

func (q *Queue) Reset() {
	q.Data = nil
}
