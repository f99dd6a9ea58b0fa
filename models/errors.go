package models

import "errors"

var (
	// ErrQuizNotFound is returned when a quiz id resolves to nothing.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrUserNotFound is returned when a user id or username resolves to nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidAttempt rejects attempts that cannot be scored (no questions,
	// or a question with no options).
	ErrInvalidAttempt = errors.New("invalid quiz attempt")
	// ErrValidationFailed rejects a structurally invalid request before any
	// persistence happens.
	ErrValidationFailed = errors.New("validation failed")
	// ErrLeaderboardUnavailable wraps every failed or timed-out call to the
	// leaderboard service. Local state is never rolled back because of it.
	ErrLeaderboardUnavailable = errors.New("leaderboard service unavailable")
	// ErrCascadeIntegrity signals that a cascade delete would leave orphaned
	// questions or options behind. Fatal, never ignored.
	ErrCascadeIntegrity = errors.New("cascade delete integrity violation")
	// ErrUsernameTaken is returned on registration with an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords mismatch")
)
