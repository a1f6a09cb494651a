package document

// Counters is the counter cell shared by a document and its sub-documents
type Counters struct {
	general  int
	footnote int
}

// Next returns the general counter and then advances it; it starts at 0
func (c *Counters) Next() int {
	n := c.general
	c.general++
	return n
}

// NextFootnote advances the footnote counter and returns it; it starts at 1
func (c *Counters) NextFootnote() int {
	c.footnote++
	return c.footnote
}
