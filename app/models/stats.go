package models

// DailyStats holds the signup/submission count for a single day
type DailyStats struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
