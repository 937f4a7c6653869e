package models

import (
	"encoding/json"
	"time"
)

// Assessment is a generated assessment/quiz artifact. The generation
// workflow owns its inner shape, so everything past the addressable header
// is kept as an opaque document.
type Assessment struct {
	ID           string          `json:"id"`
	OwnerSubject string          `json:"ownerSubject"`
	Title        string          `json:"title"`
	Data         json.RawMessage `json:"data"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Content is generic generated learning content, stored the same way.
type Content struct {
	ID           string          `json:"id"`
	OwnerSubject string          `json:"ownerSubject"`
	Title        string          `json:"title"`
	Data         json.RawMessage `json:"data"`
	CreatedAt    time.Time       `json:"createdAt"`
}
