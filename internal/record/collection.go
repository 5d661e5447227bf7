package record

// Collection is the ordered record set for a session. Indices are fixed at
// construction; records are flagged, never removed or reordered.
type Collection struct {
	records []Record
}

// NewCollection takes ownership of records.
func NewCollection(records []Record) *Collection {
	return &Collection{records: records}
}

// Len returns the number of records.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// At returns the record at index i. ok is false when i is out of range.
func (c *Collection) At(i int) (Record, bool) {
	if c == nil || i < 0 || i >= len(c.records) {
		return Record{}, false
	}
	return c.records[i], true
}

// Records returns a copy of every record in order.
func (c *Collection) Records() []Record {
	if c == nil {
		return nil
	}
	return append([]Record(nil), c.records...)
}

// MarkDeleted flags record i as removed. It reports whether anything
// changed; an already-deleted record is left untouched.
func (c *Collection) MarkDeleted(i int) bool {
	if c == nil || i < 0 || i >= len(c.records) || !c.records[i].Active {
		return false
	}
	c.records[i].Active = false
	return true
}

// ActiveCount returns how many records have not been deleted.
func (c *Collection) ActiveCount() int {
	n := 0
	for _, r := range c.Records() {
		if r.Active {
			n++
		}
	}
	return n
}

// TotalBytes sums every record's size.
func (c *Collection) TotalBytes() int64 {
	var total int64
	for _, r := range c.Records() {
		total += r.Bytes
	}
	return total
}

// ReclaimedBytes sums the sizes of deleted records.
func (c *Collection) ReclaimedBytes() int64 {
	var total int64
	for _, r := range c.Records() {
		if !r.Active {
			total += r.Bytes
		}
	}
	return total
}
