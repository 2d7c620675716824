package sat

// Clause is a disjunction of signed DIMACS literals: a positive value
// is a propositional variable, a negative value its negation. 0 never
// appears inside a clause.
type Clause []int

// CNF is a conjunction of clauses.
type CNF []Clause

// MaxVar returns the largest absolute literal value in the CNF.
func (c CNF) MaxVar() int {
	maxVar := 0
	for _, clause := range c {
		for _, lit := range clause {
			v := lit
			if v < 0 {
				v = -v
			}
			if v > maxVar {
				maxVar = v
			}
		}
	}
	return maxVar
}
