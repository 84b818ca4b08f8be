package model

import "time"

// User is keyed by its lowercased Email.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

type Appointment struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"userEmail"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
}

// Status classifies an appointment against the current wall clock.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusPast     Status = "past"
)

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type Article struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type ArticlesPage struct {
	Items []Article `json:"items"`
	Total int       `json:"total"`
}
