package models

import (
	"time"
)

// Birthday represents a tracked birthday and the present idea for it
type Birthday struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Birthday  Date      `json:"birthday" db:"birthday"`
	Idea      string    `json:"idea" db:"idea"`
	Link      string    `json:"link" db:"link"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// BirthdayInput is the request payload for create, update and delete.
// Pointer fields distinguish an absent key from an empty value.
type BirthdayInput struct {
	ID       *int64  `json:"id,omitempty"`
	Name     *string `json:"name,omitempty"`
	Birthday *string `json:"birthday,omitempty"`
	Idea     *string `json:"idea,omitempty"`
	Link     *string `json:"link,omitempty"`
}

// NewBirthday builds a record from validated field values
func NewBirthday(name string, birthday Date, idea, link string) *Birthday {
	return &Birthday{
		Name:     name,
		Birthday: birthday,
		Idea:     idea,
		Link:     link,
	}
}

// SeedBirthday is the example record inserted when the table is first created
func SeedBirthday() *Birthday {
	return NewBirthday("John", NewDate(2000, time.October, 16), "Cookbook", "")
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
