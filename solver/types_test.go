package solver

import "testing"

func TestLitEncoding(t *testing.T) {
	tests := []struct {
		cnf int32
		lit Lit
	}{
		{1, 0},
		{-1, 1},
		{2, 2},
		{-2, 3},
		{3, 4},
		{-3, 5},
	}
	for _, test := range tests {
		if lit := IntToLit(test.cnf); lit != test.lit {
			t.Errorf("IntToLit(%d): expected %d, got %d", test.cnf, test.lit, lit)
		}
		if back := test.lit.Int(); back != test.cnf {
			t.Errorf("Lit(%d).Int(): expected %d, got %d", test.lit, test.cnf, back)
		}
		if test.lit.IsPositive() != (test.cnf > 0) {
			t.Errorf("Lit(%d).IsPositive(): unexpected value", test.lit)
		}
		if neg := test.lit.Negation(); neg.Int() != -test.cnf {
			t.Errorf("Lit(%d).Negation(): expected %d, got %d", test.lit, -test.cnf, neg.Int())
		}
	}
}

func TestVarLit(t *testing.T) {
	v := IntToVar(3)
	if l := v.Lit(); l.Int() != 3 {
		t.Errorf("expected lit 3, got %d", l.Int())
	}
	if l := v.SignedLit(true); l.Int() != -3 {
		t.Errorf("expected lit -3, got %d", l.Int())
	}
}
