package parse

// Property is a named finite domain: an ordered list of value names.
type Property struct {
	Name   string
	Values []string
}

// ValueIndex returns the position of a value name in the property's
// ordered value list, or -1.
func (p *Property) ValueIndex(name string) int {
	for i, v := range p.Values {
		if v == name {
			return i
		}
	}
	return -1
}

// Grid is a declared n-dimensional block of Boolean variables. Start
// is the first variable id allocated to the grid; ids are contiguous
// in declaration order and dimension 0 is the fastest varying.
type Grid struct {
	Name  string
	Dims  []int
	Start int
}

// Size returns the variable count the grid contributes, the product of
// its dimensions.
func (g *Grid) Size() int {
	size := 1
	for _, d := range g.Dims {
		size *= d
	}
	return size
}

// Tables holds the symbol tables built alongside the CFG. They belong
// to a single compilation unit.
type Tables struct {
	Properties  []*Property    // insertion-ordered
	PropertyIDs map[string]int // name -> index in Properties

	Grids map[string]*Grid

	// Local and index variable ids are assigned monotonically across
	// the whole function; a name keeps its id on reuse.
	Locals    map[string]int
	IndexVars map[string]int

	// VarCount is the global Boolean variable counter, the sum of all
	// grid sizes.
	VarCount int
}

func newTables() *Tables {
	return &Tables{
		PropertyIDs: map[string]int{},
		Grids:       map[string]*Grid{},
		Locals:      map[string]int{},
		IndexVars:   map[string]int{},
	}
}
