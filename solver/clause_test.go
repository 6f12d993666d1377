package solver

import "testing"

func TestNormalize(t *testing.T) {
	lits := []Lit{IntToLit(3), IntToLit(1), IntToLit(3), IntToLit(-2)}
	res, tautology := normalize(lits)
	if tautology {
		t.Fatal("unexpected tautology")
	}
	expected := []int32{1, -2, 3}
	if len(res) != len(expected) {
		t.Fatalf("expected %d lits, got %d", len(expected), len(res))
	}
	for i, l := range res {
		if l.Int() != expected[i] {
			t.Errorf("lit %d: expected %d, got %d", i, expected[i], l.Int())
		}
	}
}

func TestNormalizeTautology(t *testing.T) {
	lits := []Lit{IntToLit(1), IntToLit(2), IntToLit(-1)}
	if _, tautology := normalize(lits); !tautology {
		t.Error("expected a tautology")
	}
}

func TestClauseFlags(t *testing.T) {
	c := NewLearnedClause([]Lit{0, 2, 4})
	if !c.Learned() {
		t.Error("clause should be learned")
	}
	c.setLbd(3)
	if c.lbd() != 3 {
		t.Errorf("expected lbd 3, got %d", c.lbd())
	}
	if c.isLocked() {
		t.Error("clause should not be locked yet")
	}
	c.lock()
	if !c.isLocked() {
		t.Error("clause should be locked")
	}
	if c.lbd() != 3 {
		t.Errorf("locking changed the lbd: got %d", c.lbd())
	}
	c.unlock()
	if c.isLocked() {
		t.Error("clause should be unlocked")
	}
	if !c.Learned() {
		t.Error("unlocking dropped the learned flag")
	}
}

func TestClauseCNF(t *testing.T) {
	c := NewClause([]Lit{IntToLit(1), IntToLit(-2), IntToLit(3)})
	if s := c.CNF(); s != "1 -2 3 0" {
		t.Errorf("unexpected CNF representation %q", s)
	}
}
