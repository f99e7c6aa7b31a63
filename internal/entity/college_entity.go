package entity

import (
	"github.com/google/uuid"
)

type College struct {
	Id           uuid.UUID
	CnName       string
	ProvinceName string
	Category     string
	Features     []string
	NatureType   string
	Ranking      int
}
