package domain

import "time"

// Session is the server-held proof that a request comes from an authenticated user
type Session struct {
	ID        string
	UserID    uint
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session is past its expiry at the given time
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IntegrityGap kinds, used as the "gap" log attribute and in reconcile reports
const (
	GapDanglingReference = "dangling_reference"
	GapOrphanFile        = "orphan_file"
	GapStaleStaging      = "stale_staging"
)
