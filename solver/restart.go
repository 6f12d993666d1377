package solver

import "math"

// Restart policies. Each policy is consulted once per conflict-free
// propagation, before the next decision; when it fires, the search backjumps
// to the top level while keeping learned clauses and activities.

const (
	fixedRestartInterval = 100 // Conflicts between two restarts for the fixed policy.
	geomRestartInterval  = 100 // Initial conflict budget for the geometric policy.
	geomRestartFactor    = 1.5 // Growth factor of the geometric policy.
	lubyRestartBase      = 32  // Luby budgets are lubyRestartBase * luby(i).
)

type restartPolicy interface {
	// onConflict records one more conflict, along with the LBD of the
	// clause it learned and the trail size when it arose.
	onConflict(lbd, trailSz int)
	// mustRestart says whether the search should restart now.
	mustRestart() bool
	// onRestart resets the policy's state after a restart happened.
	onRestart()
}

// neverRestart never fires.
type neverRestart struct{}

func (neverRestart) onConflict(lbd, trailSz int) {}
func (neverRestart) mustRestart() bool           { return false }
func (neverRestart) onRestart()                  {}

// fixedRestart fires every fixedRestartInterval conflicts.
type fixedRestart struct {
	interval  int
	conflicts int
}

func newFixedRestart() *fixedRestart {
	return &fixedRestart{interval: fixedRestartInterval}
}

func (r *fixedRestart) onConflict(lbd, trailSz int) { r.conflicts++ }
func (r *fixedRestart) mustRestart() bool           { return r.conflicts >= r.interval }
func (r *fixedRestart) onRestart()                  { r.conflicts = 0 }

// geomRestart fires after budgets growing geometrically:
// k(0) = geomRestartInterval, k(i+1) = ceil(k(i) * geomRestartFactor).
type geomRestart struct {
	budget    int
	conflicts int
}

func newGeomRestart() *geomRestart {
	return &geomRestart{budget: geomRestartInterval}
}

func (r *geomRestart) onConflict(lbd, trailSz int) { r.conflicts++ }
func (r *geomRestart) mustRestart() bool           { return r.conflicts >= r.budget }

func (r *geomRestart) onRestart() {
	r.conflicts = 0
	r.budget = int(math.Ceil(float64(r.budget) * geomRestartFactor))
}

// lubyRestart fires after budgets following the Luby sequence times
// lubyRestartBase.
type lubyRestart struct {
	idx       uint
	conflicts int
}

func newLubyRestart() *lubyRestart {
	return &lubyRestart{idx: 1}
}

func (r *lubyRestart) onConflict(lbd, trailSz int) { r.conflicts++ }

func (r *lubyRestart) mustRestart() bool {
	return r.conflicts >= int(luby(r.idx))*lubyRestartBase
}

func (r *lubyRestart) onRestart() {
	r.conflicts = 0
	r.idx++
}

const (
	nbMaxRecent     = 50 // How many recent LBD values we consider
	triggerRestartK = 0.8
)

// lbdRestart is the adaptive policy: it fires when the recent learned
// clauses' LBDs are, on average, much worse than the all-time average.
type lbdRestart struct {
	totalNb    int              // Total number of values considered
	totalSum   int              // Sum of all LBD so far
	nbRecent   int              // Nb of values useful in recentVals
	recentVals [nbMaxRecent]int // Last LBD values
	ptr        int              // Current index of the oldest value in recentVals
	recentAvg  float64          // Average LBD for recentVals
}

func newLbdRestart() *lbdRestart { return &lbdRestart{} }

func (l *lbdRestart) onConflict(lbd, trailSz int) {
	l.totalNb++
	l.totalSum += lbd
	if l.nbRecent < nbMaxRecent {
		l.recentVals[l.nbRecent] = lbd
		oldNbRecent := float64(l.nbRecent)
		newNbRecent := float64(l.nbRecent + 1)
		l.recentAvg = (l.recentAvg*oldNbRecent)/newNbRecent + float64(lbd)/newNbRecent
		l.nbRecent++
	} else {
		oldVal := l.recentVals[l.ptr]
		l.recentVals[l.ptr] = lbd
		l.ptr++
		if l.ptr == nbMaxRecent {
			l.ptr = 0
		}
		l.recentAvg = l.recentAvg - float64(oldVal)/nbMaxRecent + float64(lbd)/nbMaxRecent
	}
}

// mustRestart is true iff recent LBDs are much bigger on average than the
// average of all LBDs so far.
func (l *lbdRestart) mustRestart() bool {
	if l.nbRecent < nbMaxRecent {
		return false
	}
	return l.recentAvg*triggerRestartK > float64(l.totalSum)/float64(l.totalNb)
}

func (l *lbdRestart) onRestart() {
	l.ptr = 0
	l.nbRecent = 0
	l.recentAvg = 0.0
}
