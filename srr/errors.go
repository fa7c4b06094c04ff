package srr

import "errors"

// Sentinel errors returned by the srr package.
var (
	// ErrOddTeams is returned when the team count is odd.
	ErrOddTeams = errors.New("srr: number of teams must be even")

	// ErrNonPositiveTeams is returned when the team count is zero or negative.
	ErrNonPositiveTeams = errors.New("srr: number of teams must be positive")

	// ErrTeamOutOfRange is returned when a record names a team outside [0, n).
	ErrTeamOutOfRange = errors.New("srr: team out of range")

	// ErrRoundOutOfRange is returned when a record names a round outside [0, n-1).
	ErrRoundOutOfRange = errors.New("srr: round out of range")

	// ErrSelfMatch is returned when a record pairs a team with itself.
	ErrSelfMatch = errors.New("srr: team cannot play itself")

	// ErrNonFiniteCost is returned when a cost is NaN or ±Inf.
	ErrNonFiniteCost = errors.New("srr: cost must be finite")

	// ErrMalformedRecord is returned when a line cannot be parsed.
	ErrMalformedRecord = errors.New("srr: malformed record")

	// ErrEmptyInput is returned when the input holds no team count.
	ErrEmptyInput = errors.New("srr: empty input")

	// ErrNotRoundRobin is returned by Schedule.Validate.
	ErrNotRoundRobin = errors.New("srr: schedule is not a single round-robin")
)
