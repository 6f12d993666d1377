package solver

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads an int from r.
// 'b' is the last read byte. It can be a space, a '-' or a digit.
// All spaces before the int value are ignored.
// Can return EOF.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err == io.EOF {
		return res, io.EOF
	}
	if err != nil {
		return res, errors.Wrap(err, "could not read digit")
	}
	neg := 1
	if *b == '-' {
		neg = -1
		*b, err = r.ReadByte()
		if err != nil {
			return 0, errors.Wrap(err, "cannot read int")
		}
	}
	for err == nil {
		if *b < '0' || *b > '9' {
			return 0, errors.Errorf("cannot read int: %q is not a digit", *b)
		}
		res = 10*res + int(*b-'0')
		*b, err = r.ReadByte()
		if err == io.EOF {
			// The value itself is complete; report EOF on the next call.
			*b = ' '
			err = nil
			break
		}
		if isSpace(*b) {
			break
		}
	}
	res *= neg
	return res, err
}

func parseHeader(r *bufio.Reader) (nbVars, nbClauses int, err error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, 0, errors.Wrap(err, "cannot read header")
	}
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "cnf" {
		return 0, 0, errors.Errorf("invalid syntax %q in header", "p "+line)
	}
	nbVars, err = strconv.Atoi(fields[1])
	if err != nil || nbVars < 0 {
		return 0, 0, errors.Errorf("nbvars is not a valid int: %q", fields[1])
	}
	nbClauses, err = strconv.Atoi(fields[2])
	if err != nil || nbClauses < 0 {
		return 0, 0, errors.Errorf("nbclauses is not a valid int: %q", fields[2])
	}
	return nbVars, nbClauses, nil
}

// ParseDimacs reads a DIMACS CNF stream and returns its clauses as slices
// of signed CNF literals, together with the declared number of variables.
// Comment lines are ignored. A literal whose variable exceeds the declared
// count is an error, as is a clause left unterminated at EOF.
func ParseDimacs(f io.Reader) (clauses [][]int, nbVars int, err error) {
	r := bufio.NewReader(f)
	seenHeader := false
	b, err := r.ReadByte()
	for err == nil {
		if b == 'c' { // Ignore comment
			b, err = r.ReadByte()
			for err == nil && b != '\n' {
				b, err = r.ReadByte()
			}
		} else if b == 'p' { // Parse header
			if seenHeader {
				return nil, 0, errors.New("duplicate header")
			}
			var nbClauses int
			nbVars, nbClauses, err = parseHeader(r)
			if err != nil {
				return nil, 0, errors.Wrap(err, "cannot parse CNF header")
			}
			seenHeader = true
			clauses = make([][]int, 0, nbClauses)
		} else if isSpace(b) {
			// Skip stray whitespace between clauses.
		} else {
			if !seenHeader {
				return nil, 0, errors.Errorf("clause found before \"p cnf\" header")
			}
			lits := make([]int, 0, 3)
			for {
				val, errInt := readInt(&b, r)
				if errInt == io.EOF {
					if len(lits) != 0 {
						return nil, 0, errors.New("unterminated clause at EOF")
					}
					break
				}
				if errInt != nil {
					return nil, 0, errors.Wrap(errInt, "cannot parse clause")
				}
				if val == 0 {
					clauses = append(clauses, lits)
					break
				}
				if val > nbVars || -val > nbVars {
					return nil, 0, errors.Errorf("invalid literal %d for problem with %d vars only", val, nbVars)
				}
				lits = append(lits, val)
			}
		}
		b, err = r.ReadByte()
	}
	if err != io.EOF {
		return nil, 0, err
	}
	if !seenHeader {
		return nil, 0, errors.New("no \"p cnf\" header found")
	}
	return clauses, nbVars, nil
}

// ParseCNF parses a DIMACS CNF stream and returns the corresponding Problem.
func ParseCNF(f io.Reader) (*Problem, error) {
	clauses, nbVars, err := ParseDimacs(f)
	if err != nil {
		return nil, err
	}
	pb := ParseSlice(clauses)
	pb.Grow(nbVars)
	return pb, nil
}
