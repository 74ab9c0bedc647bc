package intcode

// Channel is the FIFO queue shared by the input and output instructions.
// Output values and pending input live in the same queue, so a driver must
// drain outputs before the machine asks for more input.
type Channel struct {
	buf  []int64
	head int
}

// Enqueue appends values to the back of the queue.
func (c *Channel) Enqueue(vals ...int64) {
	c.compact()
	c.buf = append(c.buf, vals...)
}

// Dequeue removes and returns the front value.
// It returns ErrEmptyChannel instead of blocking when the queue is empty.
func (c *Channel) Dequeue() (int64, error) {
	if c.Len() == 0 {
		return 0, ErrEmptyChannel
	}
	x := c.buf[c.head]
	c.head++
	if c.head == len(c.buf) {
		c.buf = c.buf[:0]
		c.head = 0
	}
	return x, nil
}

// Peek returns the front value without removing it.
func (c *Channel) Peek() (int64, error) {
	if c.Len() == 0 {
		return 0, ErrEmptyChannel
	}
	return c.buf[c.head], nil
}

// Len returns the number of queued values.
func (c *Channel) Len() int {
	return len(c.buf) - c.head
}

// Drain removes and returns every queued value in order.
func (c *Channel) Drain() []int64 {
	if c.Len() == 0 {
		return nil
	}
	out := make([]int64, c.Len())
	copy(out, c.buf[c.head:])
	c.buf = c.buf[:0]
	c.head = 0
	return out
}

// compact drops consumed slots once they dominate the buffer.
func (c *Channel) compact() {
	if c.head == 0 || c.head < len(c.buf)/2 {
		return
	}
	n := copy(c.buf, c.buf[c.head:])
	c.buf = c.buf[:n]
	c.head = 0
}
