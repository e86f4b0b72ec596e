package league

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindForbidden      Kind = "forbidden"
	KindInvalidState   Kind = "invalid_state"
	KindValidation     Kind = "validation"
	KindDomainConflict Kind = "domain_conflict"
	KindPersistence    Kind = "persistence"
)

// Error is the error type returned by every league operation.
// Two errors match with errors.Is when their codes are equal.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Set is the 1-based index of the offending set, 0 if not set specific.
	Set int
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code != "" && t.Code == e.Code
}

var (
	ErrMatchNotFound         = &Error{Kind: KindNotFound, Code: "match_not_found", Message: "match not found"}
	ErrPlayerNotFound        = &Error{Kind: KindNotFound, Code: "player_not_found", Message: "player not found"}
	ErrStatisticNotFound     = &Error{Kind: KindNotFound, Code: "statistic_not_found", Message: "player not found in league"}
	ErrNotMatchCreator       = &Error{Kind: KindForbidden, Code: "not_match_creator", Message: "only the match creator can record results"}
	ErrNotLeagueMember       = &Error{Kind: KindForbidden, Code: "not_league_member", Message: "you do not belong to this league"}
	ErrNotLeagueMatch        = &Error{Kind: KindInvalidState, Code: "not_league_match", Message: "match is not a league match"}
	ErrMatchNotFinished      = &Error{Kind: KindInvalidState, Code: "match_not_finished", Message: "match must be finished"}
	ErrResultAlreadyRecorded = &Error{Kind: KindInvalidState, Code: "result_already_recorded", Message: "match result already recorded"}
	ErrWrongSetCount         = &Error{Kind: KindValidation, Code: "wrong_set_count", Message: fmt.Sprintf("results for exactly %d sets are required", SetsPerMatch)}
	ErrMalformedSet          = &Error{Kind: KindValidation, Code: "malformed_set", Message: "malformed set"}
	ErrInvalidSetScore       = &Error{Kind: KindValidation, Code: "invalid_set_score", Message: "invalid set score"}
	ErrTiedSets              = &Error{Kind: KindDomainConflict, Code: "tied_sets", Message: "a match must have a winner, sets cannot be tied"}
	ErrInsufficientPlayers   = &Error{Kind: KindDomainConflict, Code: "insufficient_players", Message: "match does not have enough players for two teams"}
)

func malformedSet(index int) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    ErrMalformedSet.Code,
		Message: fmt.Sprintf("malformed set %d: both pointsTeamA and pointsTeamB are required", index),
		Set:     index,
	}
}

func invalidSetScore(index, a, b int) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    ErrInvalidSetScore.Code,
		Message: fmt.Sprintf("invalid score in set %d: %d-%d", index, a, b),
		Set:     index,
	}
}

// Persistence wraps a storage failure. The message names the operation only.
func Persistence(op string, err error) error {
	return &Error{Kind: KindPersistence, Code: "persistence", Message: op, Err: err}
}

// KindOf returns the kind of err. Errors not produced by this package are persistence failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}
