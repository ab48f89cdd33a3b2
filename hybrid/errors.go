package hybrid

import "errors"

// Configuration errors reported by constructors and eliminators. Degenerate
// mixture branches found during elimination are numerical degeneracy and
// surface as *core.IndeterminateError with the failing mode in the reason.
var (
	// ErrCardinality reports a nonpositive cardinality or a mode key whose
	// cardinality differs between two factors.
	ErrCardinality = errors.New("hybrid: cardinality mismatch")

	// ErrDuplicateKey reports a key that appears twice in one scope.
	ErrDuplicateKey = errors.New("hybrid: duplicate key in scope")

	// ErrNoModes reports a mixture built without mode keys.
	ErrNoModes = errors.New("hybrid: mixture needs mode keys")

	// ErrNilBranch reports a nil entry in a mixture's branch table.
	ErrNilBranch = errors.New("hybrid: nil mixture branch")

	// ErrBranchCount reports a branch or constant slice that does not match
	// the product of the mode cardinalities.
	ErrBranchCount = errors.New("hybrid: branch count mismatch")

	// ErrBranchScope reports mixture branches that do not share one scope.
	ErrBranchScope = errors.New("hybrid: branch scopes differ")

	// ErrMissingMode reports a mode lookup lacking a required assignment.
	ErrMissingMode = errors.New("hybrid: missing mode assignment")

	// ErrStateRange reports a mode state at or above its cardinality.
	ErrStateRange = errors.New("hybrid: mode state out of range")

	// ErrNotContinuous reports a request for a continuous density where none
	// exists: choosing from a discrete conditional, or mixture branches with
	// an empty continuous scope (a Modal table covers that case).
	ErrNotContinuous = errors.New("hybrid: no continuous density")

	// ErrKindMismatch reports a key that is continuous in one factor and a
	// discrete mode in another.
	ErrKindMismatch = errors.New("hybrid: key is both continuous and discrete")

	// ErrNoFrontals reports an elimination call without frontal keys.
	ErrNoFrontals = errors.New("hybrid: no frontal keys")

	// ErrMixedFrontals reports an elimination call whose frontal set mixes
	// continuous and discrete variables. Eliminate one kind per call; the
	// junction merge barrier keeps the multifrontal pipeline within that.
	ErrMixedFrontals = errors.New("hybrid: continuous and discrete frontals mixed")

	// ErrDiscreteBeforeContinuous reports discrete frontals eliminated while
	// a gathered factor still involves continuous variables. Modes can only
	// be summed out of purely discrete tables; order continuous variables
	// first (OrderingConstrainedLast does).
	ErrDiscreteBeforeContinuous = errors.New("hybrid: discrete frontals eliminated while continuous factors remain")

	// ErrUnknownFactorType reports a Factor implementation the eliminator
	// cannot decompose. Continuous, Modal and *Mixture are the supported
	// forms.
	ErrUnknownFactorType = errors.New("hybrid: unsupported factor implementation")
)
