package club

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mauv0809/padel-league/internal/league"
)

// ParseProfileUpdate decodes a JSON object into a ProfileUpdate. Field names
// outside the allow-list are rejected instead of ignored.
func ParseProfileUpdate(body []byte) (ProfileUpdate, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ProfileUpdate{}, withDetail(ErrInvalidProfileValue, "body must be a JSON object")
	}

	var upd ProfileUpdate
	targets := map[string]**string{
		"name":     &upd.Name,
		"surname":  &upd.Surname,
		"phone":    &upd.Phone,
		"category": &upd.Category,
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, field := range keys {
		target, ok := targets[field]
		if !ok {
			return ProfileUpdate{}, withDetail(ErrUnknownProfileField, field)
		}
		var v string
		if err := json.Unmarshal(raw[field], &v); err != nil {
			return ProfileUpdate{}, withDetail(ErrInvalidProfileValue, field+" must be a string")
		}
		*target = &v
	}
	return upd, upd.Validate()
}

// Validate checks the values of the fields that are set.
func (u ProfileUpdate) Validate() error {
	if u.Empty() {
		return ErrEmptyProfileUpdate
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return withDetail(ErrInvalidProfileValue, "name cannot be empty")
	}
	if u.Category != nil && !KnownCategory(*u.Category) {
		return withDetail(ErrUnknownCategory, *u.Category)
	}
	return nil
}

func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Surname == nil && u.Phone == nil && u.Category == nil
}

func withDetail(base *league.Error, detail string) *league.Error {
	return &league.Error{
		Kind:    base.Kind,
		Code:    base.Code,
		Message: fmt.Sprintf("%s: %s", base.Message, detail),
	}
}
