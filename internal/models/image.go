package models

import (
	"errors"
	"time"
)

const (
	DefaultLanguage = "English"
	StatusSuccess   = "success"
)

// Image is a generated visual asset record. Status is free text written by
// the generation workflow, not an enum. Difficulty is kept as the string
// flag "true"/"false" the generator emits.
type Image struct {
	ID           string    `json:"id"`
	OwnerSubject string    `json:"ownerSubject"`
	Topic        string    `json:"topic"`
	GradeLevel   string    `json:"gradeLevel"`
	Subject      string    `json:"subject"`
	VisualType   string    `json:"visualType"`
	Instructions string    `json:"instructions"`
	Language     string    `json:"language"`
	ImageURL     string    `json:"imageUrl"`
	Difficulty   string    `json:"difficultyFlag"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

var ErrImageURLRequired = errors.New("image url required")

func (i *Image) Normalize() error {
	if i.ImageURL == "" {
		return ErrImageURLRequired
	}
	if i.Language == "" {
		i.Language = DefaultLanguage
	}
	if i.Status == "" {
		i.Status = StatusSuccess
	}
	if i.Difficulty == "" {
		i.Difficulty = "false"
	}
	return nil
}
