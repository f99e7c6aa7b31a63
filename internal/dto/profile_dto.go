package dto

import "time"

type UpsertProfileRequest struct {
	Gender        string   `json:"gender"`
	Province      string   `json:"province" validate:"required"`
	ExamYear      int      `json:"exam_year"`
	SubjectChoice []string `json:"subject_choice"`
	Score         int      `json:"score" validate:"required"`
	Rank          int      `json:"rank"`
	Batch         string   `json:"batch"`
	Requirement   string   `json:"requirement"`
}

type ProfileResponse struct {
	Gender        string     `json:"gender"`
	Province      string     `json:"province"`
	ExamYear      int        `json:"exam_year"`
	SubjectChoice []string   `json:"subject_choice"`
	Score         int        `json:"score"`
	Rank          int        `json:"rank"`
	Batch         string     `json:"batch"`
	Requirement   string     `json:"requirement"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}
