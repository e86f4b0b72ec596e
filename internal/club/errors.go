package club

import "github.com/mauv0809/padel-league/internal/league"

var (
	ErrUnknownProfileField = &league.Error{Kind: league.KindValidation, Code: "unknown_profile_field", Message: "unknown profile field"}
	ErrInvalidProfileValue = &league.Error{Kind: league.KindValidation, Code: "invalid_profile_value", Message: "invalid profile value"}
	ErrEmptyProfileUpdate  = &league.Error{Kind: league.KindValidation, Code: "empty_profile_update", Message: "no profile fields to update"}
	ErrUnknownCategory     = &league.Error{Kind: league.KindValidation, Code: "unknown_category", Message: "unknown category"}
	ErrInvalidStatus       = &league.Error{Kind: league.KindValidation, Code: "invalid_status", Message: "invalid status"}
	ErrAlreadyRegistered   = &league.Error{Kind: league.KindInvalidState, Code: "already_registered", Message: "player is already registered for this match"}
	ErrLevelNotPermitted   = &league.Error{Kind: league.KindForbidden, Code: "level_not_permitted", Message: "your level does not meet the match requirements"}
	ErrRegistrationMissing = &league.Error{Kind: league.KindNotFound, Code: "registration_not_found", Message: "registration not found"}
)
