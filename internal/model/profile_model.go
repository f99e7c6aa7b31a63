package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Profile struct {
	UserId        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Gender        string    `gorm:"type:varchar(10);not null;default:'other'"`
	Province      string    `gorm:"type:varchar(50)"`
	ExamYear      int
	SubjectChoice datatypes.JSONSlice[string]
	Score         int
	Rank          int
	Batch         string    `gorm:"type:varchar(50)"`
	Requirement   string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "user_profiles"
}
