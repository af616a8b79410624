package common

// LatestSchemaVersion is the newest network state schema version this
// client knows about. Option factories default to it.
const LatestSchemaVersion = 1

// --------------------------------------------------------------------------
// State Kind
// --------------------------------------------------------------------------

// StateKind selects which network state a query addresses
type StateKind string

const (
	StateKindRunning StateKind = "running-network-state"
	StateKindSaved   StateKind = "saved-network-state"
)

// --------------------------------------------------------------------------
// Query Options
// --------------------------------------------------------------------------

// QueryOption controls a query-network-state command
type QueryOption struct {
	Version uint      `json:"version"`
	Kind    StateKind `json:"kind"`
}

// DefaultQueryOption returns options querying the running state at the
// latest schema version
func DefaultQueryOption() QueryOption {
	return QueryOption{Version: LatestSchemaVersion, Kind: StateKindRunning}
}

// RunningQueryOption returns options querying the running state
func RunningQueryOption() QueryOption {
	return QueryOption{Version: LatestSchemaVersion, Kind: StateKindRunning}
}

// SavedQueryOption returns options querying the saved state
func SavedQueryOption() QueryOption {
	return QueryOption{Version: LatestSchemaVersion, Kind: StateKindSaved}
}

// --------------------------------------------------------------------------
// Apply Options
// --------------------------------------------------------------------------

// ApplyOption controls an apply-network-state command. The wire carries
// no-verify, the negation of the verify flag callers think in.
type ApplyOption struct {
	Version  uint `json:"version"`
	NoVerify bool `json:"no-verify"`
}

// NewApplyOption creates apply options from a caller-facing verify flag
func NewApplyOption(version uint, verifyChange bool) ApplyOption {
	return ApplyOption{Version: version, NoVerify: !verifyChange}
}

// DefaultApplyOption returns apply options with verification enabled at
// the latest schema version
func DefaultApplyOption() ApplyOption {
	return NewApplyOption(LatestSchemaVersion, true)
}
