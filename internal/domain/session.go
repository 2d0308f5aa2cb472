package domain

import "time"

// Session holds one uploaded archive listing between requests: the immutable
// entry snapshot in container order, the most recent rename plan if any, and
// bookkeeping times for TTL expiry. Archive content is never retained.
type Session struct {
	ID         string         `json:"id"`
	Name       string         `json:"name,omitempty"` // original upload filename
	Entries    []ArchiveEntry `json:"-"`
	Plan       *RenamePlan    `json:"plan,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	LastAccess time.Time      `json:"lastAccess"`
}

// EntryCount returns the number of listing entries in the session.
func (s *Session) EntryCount() int {
	return len(s.Entries)
}
