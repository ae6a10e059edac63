package trust

import (
	"errors"
	"time"
)

// ErrUnauthorizedCaller rejects reputation posts that are not backed by an
// agreement this registry created.
var ErrUnauthorizedCaller = errors.New("trust-score update from unregistered agreement")

// TrustScore is the cross-loan reputation counter for one borrower.
// Unseen borrowers score 0; deltas accumulate forever.
type TrustScore struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	BorrowerID string    `gorm:"size:32;uniqueIndex:ux_trust_scores_borrower" json:"borrower_id"`
	Score      int64     `gorm:"not null;default:0" json:"score"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TrustScore) TableName() string { return "trust_scores" }
