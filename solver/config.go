package solver

import "github.com/pkg/errors"

// Configuration surface of the CDCL engine. Policies are selected by name
// at solve-start; an unknown name is a configuration error reported before
// any solving happens.

// A RestartStrategy names a restart policy.
type RestartStrategy string

const (
	// RestartNever disables restarts.
	RestartNever = RestartStrategy("never")
	// RestartFixed restarts every 100 conflicts.
	RestartFixed = RestartStrategy("fixed")
	// RestartGeom restarts after conflict budgets growing by a factor 1.5.
	RestartGeom = RestartStrategy("geom")
	// RestartLuby restarts after conflict budgets following the Luby sequence, times 32.
	RestartLuby = RestartStrategy("luby")
	// RestartLBD restarts when the recent learned clauses' LBD degrades.
	RestartLBD = RestartStrategy("lbd")
)

// A DeletionStrategy names a learned-clause deletion policy.
type DeletionStrategy string

const (
	// DeletionNever keeps every learned clause.
	DeletionNever = DeletionStrategy("never")
	// DeletionBerkMin periodically deletes the worse half of the learned
	// clauses, ordered by (LBD, activity).
	DeletionBerkMin = DeletionStrategy("berk-min")
)

// A LearningStrategy names a conflict-analysis scheme.
type LearningStrategy string

// LearningRelsat is the first-UIP learning scheme. It is the only one.
const LearningRelsat = LearningStrategy("relsat")

// Options configures a CDCL solver.
type Options struct {
	Restart  RestartStrategy
	Deletion DeletionStrategy
	Learning LearningStrategy
}

// DefaultOptions returns the default CDCL configuration: luby restarts,
// berk-min deletion, relsat learning.
func DefaultOptions() Options {
	return Options{
		Restart:  RestartLuby,
		Deletion: DeletionBerkMin,
		Learning: LearningRelsat,
	}
}

func (o Options) restartPolicy() (restartPolicy, error) {
	switch o.Restart {
	case RestartNever:
		return neverRestart{}, nil
	case RestartFixed:
		return newFixedRestart(), nil
	case RestartGeom:
		return newGeomRestart(), nil
	case RestartLuby, "":
		return newLubyRestart(), nil
	case RestartLBD:
		return newLbdRestart(), nil
	default:
		return nil, errors.Errorf("unknown restart policy %q", o.Restart)
	}
}

func (o Options) useDeletion() (bool, error) {
	switch o.Deletion {
	case DeletionNever:
		return false, nil
	case DeletionBerkMin, "":
		return true, nil
	default:
		return false, errors.Errorf("unknown deletion policy %q", o.Deletion)
	}
}

func (o Options) checkLearning() error {
	if o.Learning != LearningRelsat && o.Learning != "" {
		return errors.Errorf("unknown learning scheme %q", o.Learning)
	}
	return nil
}
