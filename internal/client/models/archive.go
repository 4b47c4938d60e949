package models

import (
	"strings"
	"time"
)

// ArchiveRecord describes one physical box of archived files tracked by
// SIAP. InputDate is kept as the "2006-01-02" string the form submits;
// the server stores it verbatim.
type ArchiveRecord struct {
	ID          string     `json:"_id"`
	FileName    string     `json:"fileName"`
	UPTDName    string     `json:"uptdName"`
	InputDate   string     `json:"inputDate"`
	FileAmount  int        `json:"fileAmount"`
	BoxNumber   string     `json:"boxNumber"`
	Description string     `json:"description,omitempty"`
	CreatedBy   *UserRef   `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedBy   *UserRef   `json:"updatedBy,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Matches reports whether the record matches a search term. The match is
// a case-insensitive substring test over file name, UPTD name, box
// number and description. The empty term matches everything.
func (r ArchiveRecord) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, s := range []string{r.FileName, r.UPTDName, r.BoxNumber, r.Description} {
		if s != "" && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// InputYear extracts the year from InputDate. The second return value is
// false when the date does not parse.
func (r ArchiveRecord) InputYear() (int, bool) {
	t, err := time.Parse("2006-01-02", r.InputDate)
	if err != nil {
		return 0, false
	}
	return t.Year(), true
}

// HistoryEntry is the read-only projection of a deleted archive record
// kept for audit display. The client never creates these.
type HistoryEntry struct {
	ArchiveRecord
	DeletedBy *UserRef  `json:"deletedBy,omitempty"`
	DeletedAt time.Time `json:"deletedAt"`
}
