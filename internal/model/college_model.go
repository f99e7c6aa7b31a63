package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type College struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CnName       string    `gorm:"type:varchar(100);not null;index"`
	ProvinceName string    `gorm:"type:varchar(50);index"`
	Category     string    `gorm:"type:varchar(50)"`
	Features     datatypes.JSONSlice[string]
	NatureType   string `gorm:"type:varchar(50)"`
	Ranking      int
}

func (College) TableName() string {
	return "colleges"
}
