package settings

import (
	"strconv"
	"time"

	"github.com/dshills/skilltrack/internal/tracker"
)

// Defaults applied when a document omits a field.
const (
	DefaultProfileID   = 0
	DefaultProfileName = "Default"
	DefaultSkillKey    = "MOUSE2"
)

// DefaultSkillDuration is the cooldown used when a skill item has no
// time_length field.
const DefaultSkillDuration = 5 * time.Second

// Profile groups skill items under a user-chosen name.
type Profile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SkillItem is one persisted skill binding row. TimeLength is stored in
// seconds (float) for compatibility with existing documents; Duration
// converts at the boundary.
type SkillItem struct {
	ID         int     `json:"id"`
	ProfileID  int     `json:"profile_id"`
	Name       string  `json:"name"`
	TimeLength float64 `json:"time_length"`
	IsEnabled  bool    `json:"is_enabled"`
	SelectKey  string  `json:"select_key,omitempty"`
	SkillKey   string  `json:"skill_key"`
}

// SkillID returns the item's identifier as the opaque string form used by
// the tracker and countdown layers.
func (s SkillItem) SkillID() string {
	return strconv.Itoa(s.ID)
}

// Duration returns the item's cooldown length.
func (s SkillItem) Duration() time.Duration {
	return time.Duration(s.TimeLength * float64(time.Second))
}

// Settings is the persisted document root.
type Settings struct {
	LastSelectedProfileID int         `json:"last_selected_profile_id"`
	Profiles              []Profile   `json:"profiles"`
	SkillItems            []SkillItem `json:"skill_items"`
	StartTrackerOnAppRun  bool        `json:"start_tracker_on_app_run"`
}

// Default returns a usable empty document: one default profile, no skills.
func Default() Settings {
	s := Settings{}
	s.EnsureDefaults()
	return s
}

// EnsureDefaults repairs benign structural gaps without touching skill
// bindings: the default profile always exists, the last-selected profile
// id always points at a real profile, and orphaned skill items are moved
// to the selected profile.
func (s *Settings) EnsureDefaults() {
	hasDefault := false
	for _, p := range s.Profiles {
		if p.ID == DefaultProfileID {
			hasDefault = true
			break
		}
	}
	if !hasDefault {
		s.Profiles = append([]Profile{{ID: DefaultProfileID, Name: DefaultProfileName}}, s.Profiles...)
	}

	ids := make(map[int]bool, len(s.Profiles))
	for _, p := range s.Profiles {
		ids[p.ID] = true
	}
	if !ids[s.LastSelectedProfileID] {
		s.LastSelectedProfileID = DefaultProfileID
	}
	for i := range s.SkillItems {
		if !ids[s.SkillItems[i].ProfileID] {
			s.SkillItems[i].ProfileID = s.LastSelectedProfileID
		}
	}
}

// ProfileItems returns the skill items belonging to one profile, in
// document order.
func (s Settings) ProfileItems(profileID int) []SkillItem {
	var items []SkillItem
	for _, item := range s.SkillItems {
		if item.ProfileID == profileID {
			items = append(items, item)
		}
	}
	return items
}

// Bindings converts the selected profile's skill items into tracker
// descriptors with the given trigger mode.
func (s Settings) Bindings(profileID int, mode tracker.TriggerMode) []tracker.BindingConfig {
	items := s.ProfileItems(profileID)
	configs := make([]tracker.BindingConfig, 0, len(items))
	for _, item := range items {
		configs = append(configs, tracker.BindingConfig{
			SkillID:   item.SkillID(),
			SelectKey: item.SelectKey,
			SkillKey:  item.SkillKey,
			Enabled:   item.IsEnabled,
			Mode:      mode,
			Duration:  item.Duration(),
		})
	}
	return configs
}
