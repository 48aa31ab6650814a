package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// FallbackLabel is shown instead of an activity's description when its
// required descriptive fields are absent
const FallbackLabel = "Activity with missing fields (see diagnostics)"

// ActivityType distinguishes technosphere processes from elementary flows
type ActivityType string

const (
	ActivityTypeProcess  ActivityType = "process"
	ActivityTypeEmission ActivityType = "emission"
	ActivityTypeResource ActivityType = "natural resource"
)

// IsFlow reports whether the activity is an elementary (biosphere) flow
func (t ActivityType) IsFlow() bool {
	return t == ActivityTypeEmission || t == ActivityTypeResource
}

// Key identifies an activity inside an inventory (e.g., "ecoinvent/1f3b")
type Key struct {
	Database string
	Code     string
}

func (k Key) String() string {
	return k.Database + "/" + k.Code
}

// IsZero reports whether the key is unset
func (k Key) IsZero() bool {
	return k.Database == "" && k.Code == ""
}

// ParseKey parses a "database/code" reference. The code may itself contain
// slashes; only the first one separates the database.
func ParseKey(ref string) (Key, error) {
	ref = strings.TrimSpace(ref)
	db, code, ok := strings.Cut(ref, "/")
	if !ok || db == "" || code == "" {
		return Key{}, fmt.Errorf("invalid activity reference %q (expected database/code)", ref)
	}
	return Key{Database: db, Code: code}, nil
}

// Activity represents a process or elementary flow in the inventory
type Activity struct {
	Key        Key
	Name       string
	Unit       string
	Location   string
	Categories []string
	Type       ActivityType
}

// Label is the display text of an activity. Fallback is set when the
// descriptive fields were incomplete and Text holds FallbackLabel.
type Label struct {
	Text     string
	Fallback bool
}

// MissingFields lists the required descriptive fields that are empty
func (a Activity) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(a.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(a.Unit) == "" {
		missing = append(missing, "unit")
	}
	if strings.TrimSpace(a.Location) == "" {
		missing = append(missing, "location")
	}
	return missing
}

// Label resolves the display label: 'name' (unit, location, categories)
func (a Activity) Label() Label {
	if len(a.MissingFields()) > 0 {
		return Label{Text: FallbackLabel, Fallback: true}
	}
	categories := "None"
	if len(a.Categories) > 0 {
		categories = strings.Join(a.Categories, "::")
	}
	return Label{
		Text: fmt.Sprintf("'%s' (%s, %s, %s)", a.Name, a.Unit, a.Location, categories),
	}
}

// Truncate shortens the label to at most width runes. A non-positive width
// leaves it unchanged.
func (l Label) Truncate(width int) string {
	if width <= 0 || utf8.RuneCountInString(l.Text) <= width {
		return l.Text
	}
	return string([]rune(l.Text)[:width])
}

// SortActivities orders activities by database, then code
func SortActivities(activities []Activity) {
	slices.SortFunc(activities, func(a, b Activity) int {
		return cmp.Or(
			cmp.Compare(a.Key.Database, b.Key.Database),
			cmp.Compare(a.Key.Code, b.Key.Code),
		)
	})
}
