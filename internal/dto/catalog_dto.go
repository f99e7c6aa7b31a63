package dto

import "github.com/google/uuid"

type SearchCollegesRequest struct {
	Name       string   `query:"name"`
	Provinces  []string `query:"provinces"`
	Categories []string `query:"categories"`
	Natures    []string `query:"natures"`
	Page       int      `query:"page"`
	PageSize   int      `query:"page_size"`
}

type CollegeResponse struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Province   string    `json:"province"`
	Category   string    `json:"category"`
	NatureType string    `json:"nature_type"`
	Ranking    int       `json:"ranking"`
	Features   []string  `json:"features"`
}

type SearchCollegesResponse struct {
	Colleges []*CollegeResponse `json:"colleges"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}
