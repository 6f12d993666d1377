package solver

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Stats are statistics about the resolution of the problem.
// They are provided for information purpose only.
type Stats struct {
	NbRestarts      int
	NbConflicts     int
	NbDecisions     int
	NbUnitLearned   int // How many unit clauses were learned
	NbBinaryLearned int // How many binary clauses were learned
	NbLearned       int // How many clauses were learned
	NbDeleted       int // How many clauses were deleted
}

type solveMode byte

const (
	modeCDCL = solveMode(iota)
	modeDPLL
)

// A Solver solves a given problem. It is the main data structure.
type Solver struct {
	Verbose   bool               // Indicates whether the solver should log information during solving. False by default.
	Logger    logrus.FieldLogger // Where verbose information is sent. Defaults to the standard logrus logger.
	Certified bool               // Indicates whether a DRUP certificate should be generated during solving. False by default.
	CertChan  chan string        // Where to write the certificate. If Certified is true but CertChan is nil, the certificate is written on stdout.
	Stats     Stats              // Statistics about the solving process.

	nbVars    int
	status    Status
	mode      solveMode
	rule      BranchRule // Branching rule, in DPLL mode
	wl        watcherList
	trail     []Lit     // Current assignment stack
	model     Model     // 0 means unbound, other value is a binding
	lastModel Model     // Placeholder for the last model found
	activity  []float64 // How often each var is involved in conflicts
	polarity  []bool    // Saved phase for each var
	// For each var, the clause that propagated it.
	// If the var is unbound, or bound by a decision, the value is nil.
	reason          []*Clause
	varQueue        queue
	varInc          float64 // On each var bump, how big the increment should be
	clauseInc       float32 // On each clause bump, how big the increment should be
	varDecay        float64
	restart         restartPolicy
	useDeletion     bool
	stop            <-chan struct{} // Cancellation signal, polled at conflicts and decisions
	cancelled       bool
	localNbRestarts int
	litsBuf         []Lit  // Buffer for lits in learnClause, to reduce allocations
	metBuf          []bool // Buffer for met/metLvl in learnClause
	trailBuf        []int  // Buffer used while cleaning bindings
}

// New makes a CDCL solver for the given problem, with default options
// (luby restarts, berk-min clause deletion, relsat learning).
func New(pb *Problem) *Solver {
	s, err := NewWithOptions(pb, DefaultOptions())
	if err != nil {
		panic(err) // Cannot happen with default options.
	}
	return s
}

// NewWithOptions makes a CDCL solver for the given problem, configured
// with the given options. It returns an error if the options are invalid.
func NewWithOptions(pb *Problem, opts Options) (*Solver, error) {
	restart, err := opts.restartPolicy()
	if err != nil {
		return nil, err
	}
	deletion, err := opts.useDeletion()
	if err != nil {
		return nil, err
	}
	if err := opts.checkLearning(); err != nil {
		return nil, err
	}
	s := newSolver(pb)
	s.restart = restart
	s.useDeletion = deletion
	return s, nil
}

// NewDPLL makes a DPLL solver for the given problem, branching with the
// given rule.
func NewDPLL(pb *Problem, rule BranchRule) *Solver {
	s := newSolver(pb)
	s.mode = modeDPLL
	s.rule = rule
	return s
}

// newSolver builds the state shared by both engines.
func newSolver(pb *Problem) *Solver {
	if pb.Status == Unsat {
		return &Solver{status: Unsat, Logger: logrus.StandardLogger()}
	}
	nbVars := pb.NbVars
	trailCap := nbVars
	if len(pb.Units) > trailCap {
		trailCap = len(pb.Units)
	}
	model := make(Model, nbVars)
	copy(model, pb.Model)
	s := &Solver{
		Logger:    logrus.StandardLogger(),
		nbVars:    nbVars,
		status:    pb.Status,
		trail:     make([]Lit, len(pb.Units), trailCap),
		model:     model,
		activity:  make([]float64, nbVars),
		polarity:  make([]bool, nbVars),
		reason:    make([]*Clause, nbVars),
		varInc:    1.0,
		clauseInc: 1.0,
		varDecay:  defaultVarDecay,
		restart:   newLubyRestart(),
		litsBuf:   make([]Lit, nbVars+1),
		metBuf:    make([]bool, nbVars*2),
		trailBuf:  make([]int, nbVars),
	}
	s.initWatcherList(pb.Clauses)
	s.varQueue = newQueue(s.activity)
	for i, lit := range pb.Units {
		if lit.IsPositive() {
			s.model[lit.Var()] = 1
		} else {
			s.model[lit.Var()] = -1
		}
		s.trail[i] = lit
	}
	return s
}

// stopped polls the cancellation signal. It is called at each conflict,
// before each decision and at each restart.
func (s *Solver) stopped() bool {
	if s.stop == nil {
		return false
	}
	select {
	case <-s.stop:
		s.cancelled = true
		return true
	default:
		return false
	}
}

// cleanupBindings reinitializes bindings (both model & reason) for all
// variables bound at a decLevel > lvl, and saves the value each one had
// as its phase.
func (s *Solver) cleanupBindings(lvl decLevel) {
	i := 0
	for i < len(s.trail) && abs(s.model[s.trail[i].Var()]) <= lvl {
		i++
	}
	toInsert := s.trailBuf[:0]
	for j := i; j < len(s.trail); j++ {
		lit2 := s.trail[j]
		v := lit2.Var()
		s.model[v] = 0
		if s.reason[v] != nil {
			s.reason[v].unlock()
			s.reason[v] = nil
		}
		s.polarity[v] = lit2.IsPositive()
		if !s.varQueue.contains(int(v)) {
			toInsert = append(toInsert, int(v))
		}
	}
	s.trail = s.trail[:i]
	for k := len(toInsert) - 1; k >= 0; k-- {
		s.varQueue.insert(toInsert[k])
	}
}

// currentLevel returns the decision level of the most recent trail
// literal, or 1 when only top-level bindings exist.
func (s *Solver) currentLevel() decLevel {
	if len(s.trail) == 0 {
		return 1
	}
	return abs(s.model[s.trail[len(s.trail)-1].Var()])
}

// decisionBoundary returns the trail index of the first literal bound at
// the given level, i.e the decision literal, or len(trail) when the level
// was never reached. The trail is ordered by level, so everything before
// that index belongs to lower levels.
func (s *Solver) decisionBoundary(lvl decLevel) int {
	for i, lit := range s.trail {
		if abs(s.model[lit.Var()]) >= lvl {
			return i
		}
	}
	return len(s.trail)
}

// backtrackData returns, given the last learnt clause, the level to
// backjump to and the literal to assert. The lits are sorted by
// decreasing level, so the backjump level is the level of the second lit.
func backtrackData(c *Clause, model []decLevel) (btLevel decLevel, lit Lit) {
	btLevel = abs(model[c.Get(1).Var()])
	return btLevel, c.Get(0)
}

// setUnsat sets the status to unsat and, when certified, terminates the
// refutation with the empty clause. Only the CDCL engine emits proofs:
// a DPLL refutation is not a RUP derivation.
func (s *Solver) setUnsat() Status {
	if s.Certified && s.mode == modeCDCL {
		s.emitCert("0")
	}
	s.status = Unsat
	return Unsat
}

// propagateAndSearch binds the given lit, propagates it and searches for a
// solution, until one is found or a restart is needed.
func (s *Solver) propagateAndSearch(lit Lit, lvl decLevel) Status {
	for lit != LitUndef {
		if s.stopped() {
			return Indet
		}
		if conflict := s.unifyLiteral(lit, lvl); conflict == nil { // Pick a new branch or restart
			if s.restart.mustRestart() {
				s.restart.onRestart()
				s.cleanupBindings(1)
				return Indet
			}
			if s.useDeletion && s.Stats.NbConflicts >= s.wl.idxReduce*s.wl.nbMax {
				s.wl.idxReduce = s.Stats.NbConflicts/s.wl.nbMax + 1
				s.cleanupBindings(1) // Deletion only happens at the top level, outside propagation
				s.reduceLearned()
				s.bumpNbMax()
				return Indet
			}
			lvl++
			lit = s.chooseLit()
		} else { // Deal with the conflict
			s.Stats.NbConflicts++
			if s.stopped() {
				return Indet
			}
			learnt, unit := s.learnClause(conflict, lvl)
			if learnt == nil { // A unit clause was learned: this lit is known for sure
				if unit == LitUndef || (abs(s.model[unit.Var()]) == 1 && s.litStatus(unit) == Unsat) { // Top-level conflict
					if unit != LitUndef {
						s.certifyUnit(unit) // The refutation needs the unit before the empty clause
					}
					return s.setUnsat()
				}
				s.Stats.NbUnitLearned++
				s.restart.onConflict(1, len(s.trail))
				s.cleanupBindings(1)
				s.certifyUnit(unit)
				s.model[unit.Var()] = lvlToSignedLvl(unit, 1)
				if conflict = s.unifyLiteral(unit, 1); conflict != nil { // Top-level conflict
					return s.setUnsat()
				}
				s.rebuildOrderHeap()
				lit = s.chooseLit()
				lvl = 2
			} else {
				if learnt.Len() == 2 {
					s.Stats.NbBinaryLearned++
				}
				s.Stats.NbLearned++
				s.restart.onConflict(learnt.lbd(), len(s.trail))
				s.addLearned(learnt)
				lvl, lit = backtrackData(learnt, s.model)
				s.cleanupBindings(lvl)
				s.reason[lit.Var()] = learnt
				learnt.lock()
			}
		}
	}
	return Sat
}

// search searches until a solution is found or a restart is needed.
func (s *Solver) search() Status {
	s.localNbRestarts++
	lvl := decLevel(2) // Level starts at 2: 1 is for top-level bindings, 0 means "no level assigned yet"
	s.status = s.propagateAndSearch(s.chooseLit(), lvl)
	return s.status
}

// Solve solves the problem associated with the solver and returns the
// appropriate status: Sat, Unsat, or Indet when the solve was cancelled.
func (s *Solver) Solve() Status {
	return s.SolveContext(context.Background())
}

// SolveContext behaves like Solve but polls ctx at each conflict, before
// each decision and at each restart; when ctx is cancelled or expires, the
// solver gives up and returns Indet.
func (s *Solver) SolveContext(ctx context.Context) Status {
	if s.status == Unsat {
		if s.Certified {
			s.emitCert("0")
		}
		return s.status
	}
	s.stop = ctx.Done()
	s.cancelled = false
	s.status = Indet
	s.localNbRestarts = 0
	var done chan struct{}
	if s.Verbose {
		done = make(chan struct{})
		defer close(done)
		go s.logProgress(done)
	}
	if s.mode == modeDPLL {
		s.status = s.searchDPLL()
	} else {
		for s.status == Indet && !s.cancelled {
			s.search()
			if s.status == Indet {
				s.Stats.NbRestarts++
				s.rebuildOrderHeap()
			}
		}
		if s.cancelled {
			s.status = Indet
		}
	}
	if s.status == Sat {
		s.lastModel = make(Model, len(s.model))
		copy(s.lastModel, s.model)
	}
	return s.status
}

// logProgress periodically logs solving statistics until done is closed.
func (s *Solver) logProgress(done chan struct{}) {
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}
		// Concurrent reads of stats are conservative: values may be stale
		// but no state is modified here.
		if s.status == Indet {
			s.Logger.WithFields(logrus.Fields{
				"restarts":  s.Stats.NbRestarts,
				"conflicts": s.Stats.NbConflicts,
				"learned":   s.wl.nbLearned,
				"deleted":   s.Stats.NbDeleted,
				"units":     s.Stats.NbUnitLearned,
				"vars":      s.nbVars,
			}).Info("solving in progress")
		}
	}
}

// Result returns the solver's outcome as a Result value: the status, plus
// the model when the status is Sat.
func (s *Solver) Result() Result {
	res := Result{Status: s.status}
	if s.status == Sat {
		res.Model = s.Model()
	}
	return res
}

// Model returns a slice that associates, to each variable, its binding.
// If s's status is not Sat, the method will panic.
func (s *Solver) Model() []bool {
	if s.lastModel == nil {
		panic("cannot call Model() from a non-Sat solver")
	}
	res := make([]bool, s.nbVars)
	for i, lvl := range s.lastModel {
		res[i] = lvl > 0
	}
	return res
}
