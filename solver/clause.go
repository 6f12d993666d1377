package solver

import (
	"fmt"
	"sort"
	"strings"
)

// A Clause is a list of Lit, plus metadata used by the CDCL engine.
// The two watched literals are always the lits at positions 0 and 1.
type Clause struct {
	lits []Lit
	// lbdValue's bits are as follows:
	// leftmost bit: learned flag.
	// second bit: locked flag (the clause is the reason of a trail literal).
	// last 30 bits: LBD value.
	lbdValue uint32
	activity float32
}

const (
	learnedMask uint32 = 1 << 31
	lockedMask  uint32 = 1 << 30
	bothMasks   uint32 = learnedMask | lockedMask
)

// NewClause returns a clause whose lits are given as an argument.
func NewClause(lits []Lit) *Clause {
	return &Clause{lits: lits}
}

// NewLearnedClause returns a new clause marked as learned.
func NewLearnedClause(lits []Lit) *Clause {
	return &Clause{lits: lits, lbdValue: learnedMask}
}

// Learned returns true iff c is a learned clause.
func (c *Clause) Learned() bool {
	return c.lbdValue&learnedMask == learnedMask
}

func (c *Clause) lock() {
	c.lbdValue = c.lbdValue | lockedMask
}

func (c *Clause) unlock() {
	c.lbdValue = c.lbdValue & ^lockedMask
}

func (c *Clause) isLocked() bool {
	return c.lbdValue&bothMasks == bothMasks
}

func (c *Clause) lbd() int {
	return int(c.lbdValue & ^bothMasks)
}

func (c *Clause) setLbd(lbd int) {
	c.lbdValue = (c.lbdValue & bothMasks) | uint32(lbd)
}

func (c *Clause) incLbd() {
	c.lbdValue++
}

// Len returns the nb of lits in the clause.
func (c *Clause) Len() int {
	return len(c.lits)
}

// First returns the first lit from the clause.
func (c *Clause) First() Lit {
	return c.lits[0]
}

// Second returns the second lit from the clause.
func (c *Clause) Second() Lit {
	return c.lits[1]
}

// Get returns the ith literal from the clause.
func (c *Clause) Get(i int) Lit {
	return c.lits[i]
}

// Set sets the ith literal of the clause.
func (c *Clause) Set(i int, l Lit) {
	c.lits[i] = l
}

// swap swaps the ith and jth lits from the clause.
func (c *Clause) swap(i, j int) {
	c.lits[i], c.lits[j] = c.lits[j], c.lits[i]
}

// Shrink reduces the length of the clause, by removing all lits
// starting from position newLen.
func (c *Clause) Shrink(newLen int) {
	c.lits = c.lits[:newLen]
}

// CNF returns a DIMACS representation of the clause.
func (c *Clause) CNF() string {
	var sb strings.Builder
	for _, lit := range c.lits {
		fmt.Fprintf(&sb, "%d ", lit.Int())
	}
	sb.WriteString("0")
	return sb.String()
}

// normalize sorts lits by variable then sign, removes duplicates and
// reports whether the clause is a tautology, i.e contains both a literal
// and its negation. A normalized tautology must be dropped by the caller.
func normalize(lits []Lit) (res []Lit, tautology bool) {
	sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })
	j := 0
	for i := 0; i < len(lits); i++ {
		if i > 0 && lits[i] == lits[i-1] {
			continue
		}
		if i > 0 && lits[i] == lits[i-1].Negation() {
			return nil, true
		}
		lits[j] = lits[i]
		j++
	}
	return lits[:j], false
}
