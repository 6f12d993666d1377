package solver

import (
	"fmt"
	"strings"
)

// DRUP certificate emission. When the solver is Certified, every learned
// clause is written before it takes part in further propagation and every
// deleted learned clause is written, prefixed with "d", at deletion time.
// A refutation is terminated by the empty clause "0".

func litsLine(lits []Lit, deleted bool) string {
	var sb strings.Builder
	if deleted {
		sb.WriteString("d ")
	}
	for _, l := range lits {
		fmt.Fprintf(&sb, "%d ", l.Int())
	}
	sb.WriteString("0")
	return sb.String()
}

func (s *Solver) emitCert(line string) {
	if s.CertChan == nil {
		fmt.Println(line)
	} else {
		s.CertChan <- line
	}
}

func (s *Solver) certifyClause(c *Clause) {
	if !s.Certified {
		return
	}
	s.emitCert(litsLine(c.lits, false))
}

func (s *Solver) certifyUnit(unit Lit) {
	if !s.Certified {
		return
	}
	s.emitCert(litsLine([]Lit{unit}, false))
}

func (s *Solver) certifyDeletion(c *Clause) {
	if !s.Certified {
		return
	}
	s.emitCert(litsLine(c.lits, true))
}
