package resource

// ID is a key into a Table.
type ID uint16

// Table maps small ids to shared cell payload strings. Boards with many
// cells holding the same content reference one payload instead of copying
// it into every cell.
//
// A Table is attached to a board once at construction and is read-only from
// then on. It is shared by every formatting call for the board's lifetime,
// so it needs no locking, but it must not be mutated after attachment.
type Table map[ID]string

// Lookup returns the payload for id.
func (t Table) Lookup(id ID) (string, bool) {
	if t == nil {
		return "", false
	}
	s, ok := t[id]
	return s, ok
}
