package settings

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/skilltrack/internal/input"
)

// Decode parses a settings document. Every field reads its snake_case key
// first and falls back to the PascalCase key written by legacy releases.
// Unknown document fields are ignored; malformed skill items are errors.
func Decode(data []byte) (Settings, error) {
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return Settings{}, ErrMalformedDocument
	}

	s := Settings{
		LastSelectedProfileID: int(pick(doc, "last_selected_profile_id", "LastSelectedProfileId").Int()),
		StartTrackerOnAppRun:  pick(doc, "start_tracker_on_app_run", "StartTrackerOnAppRun").Bool(),
	}

	pick(doc, "profiles", "Profiles").ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		s.Profiles = append(s.Profiles, Profile{
			ID:   int(pick(value, "id", "Id").Int()),
			Name: stringOr(pick(value, "name", "Name"), DefaultProfileName),
		})
		return true
	})

	var itemErr error
	index := 0
	pick(doc, "skill_items", "SkillItems").ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		item, err := decodeSkillItem(value)
		if err != nil {
			itemErr = fmt.Errorf("skill item %d: %w", index, err)
			return false
		}
		s.SkillItems = append(s.SkillItems, item)
		index++
		return true
	})
	if itemErr != nil {
		return Settings{}, itemErr
	}

	s.EnsureDefaults()
	return s, nil
}

func decodeSkillItem(value gjson.Result) (SkillItem, error) {
	item := SkillItem{
		ID:         int(pick(value, "id", "Id").Int()),
		ProfileID:  int(pick(value, "profile_id", "ProfileId").Int()),
		Name:       pick(value, "name", "Name").String(),
		TimeLength: DefaultSkillDuration.Seconds(),
		IsEnabled:  true,
		SkillKey:   DefaultSkillKey,
	}

	if v := pick(value, "time_length", "TimeLength"); v.Exists() {
		item.TimeLength = v.Float()
	}
	if v := pick(value, "is_enabled", "IsEnabled"); v.Exists() {
		item.IsEnabled = v.Bool()
	}

	// A skill key field that is present but empty describes a binding that
	// could never fire; reject it rather than guessing a key.
	if v := pick(value, "skill_key", "SkillKey"); v.Exists() {
		code := keyCode(v)
		if code == "" {
			return SkillItem{}, fmt.Errorf("%w (id %d)", ErrMissingSkillKey, item.ID)
		}
		item.SkillKey = code
	}
	if v := pick(value, "select_key", "SelectKey"); v.Exists() {
		item.SelectKey = keyCode(v)
	}

	if item.TimeLength < 0 {
		return SkillItem{}, fmt.Errorf("%w: %v (id %d)", ErrInvalidDuration, item.TimeLength, item.ID)
	}
	if _, _, err := input.Canonicalize(item.SkillKey); err != nil {
		return SkillItem{}, fmt.Errorf("%w: skill key %q (id %d): %v",
			ErrInvalidKeyCode, item.SkillKey, item.ID, err)
	}
	if item.SelectKey != "" {
		if _, _, err := input.Canonicalize(item.SelectKey); err != nil {
			return SkillItem{}, fmt.Errorf("%w: select key %q (id %d): %v",
				ErrInvalidKeyCode, item.SelectKey, item.ID, err)
		}
	}
	return item, nil
}

// pick returns the first existing key's value.
func pick(doc gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if v := doc.Get(key); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func stringOr(v gjson.Result, fallback string) string {
	if v.Type == gjson.String && v.Str != "" {
		return v.Str
	}
	return fallback
}

// keyCode extracts a key code that may be stored as a bare string or as a
// legacy {"code": ...} object.
func keyCode(v gjson.Result) string {
	if v.IsObject() {
		v = pick(v, "code", "Code")
	}
	if v.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(v.Str)
}
