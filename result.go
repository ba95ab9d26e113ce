package partstream

// ResultSet maps field names to the parts submitted under them, in arrival
// order. It is exclusively owned by the parser until the parse settles and
// must not be mutated afterwards.
type ResultSet struct {
	parts map[string][]Part
	total int
}

func newResultSet() *ResultSet {
	return &ResultSet{parts: make(map[string][]Part)}
}

func (rs *ResultSet) add(p Part) {
	name := p.PartName()
	rs.parts[name] = append(rs.parts[name], p)
	rs.total++
}

// Get returns the first part submitted under name.
func (rs *ResultSet) Get(name string) (Part, bool) {
	parts := rs.parts[name]
	if len(parts) == 0 {
		return nil, false
	}
	return parts[0], true
}

// All returns every part submitted under name, preserving arrival order.
// Repeated field names (multi-selects and the like) yield multiple entries.
func (rs *ResultSet) All(name string) []Part {
	return rs.parts[name]
}

// Value returns the first field value submitted under name.
// If there are no field parts under the name, Value returns "".
func (rs *ResultSet) Value(name string) (string, bool) {
	f, ok := rs.Field(name)
	if !ok {
		return "", false
	}
	return f.Value, true
}

// Field returns the first field part submitted under name.
func (rs *ResultSet) Field(name string) (FieldPart, bool) {
	for _, p := range rs.parts[name] {
		if f, ok := p.(FieldPart); ok {
			return f, true
		}
	}
	return FieldPart{}, false
}

// File returns the first file part submitted under name.
func (rs *ResultSet) File(name string) (FilePart, bool) {
	for _, p := range rs.parts[name] {
		if f, ok := p.(FilePart); ok {
			return f, true
		}
	}
	return FilePart{}, false
}

// Map returns the underlying name-to-parts mapping. Callers must not mutate
// it.
func (rs *ResultSet) Map() map[string][]Part {
	return rs.parts
}

// Len returns the total number of parts recorded.
func (rs *ResultSet) Len() int {
	return rs.total
}
