package catalog

import (
	"time"

	"github.com/handiism/arcade-catalog/internal/model"
)

// newWindowDays is how long a game counts as newly added.
const newWindowDays = 7

// IsNew derives the "new" flag for an entry.
//
// Rules, in order: an explicit "true" override wins; otherwise a
// present, non-placeholder added date within the last seven whole days
// makes the entry new. Unparsable dates are treated as not new.
func IsNew(added, explicit string, now time.Time) bool {
	if explicit == "true" {
		return true
	}
	if added == "" || added == model.AddedPlaceholder {
		return false
	}

	date, err := time.Parse("2006-01-02", added)
	if err != nil {
		return false
	}

	days := int(now.Sub(date).Hours() / 24)
	return days < newWindowDays
}
