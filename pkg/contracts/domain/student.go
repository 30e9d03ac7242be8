package domain

import (
	"time"
)

// TimestampLayout is the layout used for synthetic response timestamps in exports
const TimestampLayout = "2006-01-02 15:04:05"

// StudentRecord is one synthetic survey response
type StudentRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Ratings   []int     `json:"ratings"`
}

// FormattedTimestamp returns the timestamp as written to spreadsheets
func (r StudentRecord) FormattedTimestamp() string {
	return r.Timestamp.Format(TimestampLayout)
}

// EventInfo carries the user-entered parameters of a mock generation run
type EventInfo struct {
	Name         string    `json:"name"`
	Date         time.Time `json:"date"`
	DateInput    string    `json:"date_input"`
	Participants int       `json:"participants"`
}
