package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the per-user exam profile. Requirement is the accumulated
// free-text narrative the advisory pipeline maintains across turns.
type Profile struct {
	UserId        uuid.UUID
	Gender        string
	Province      string
	ExamYear      int
	SubjectChoice []string
	Score         int
	Rank          int
	Batch         string
	Requirement   string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
