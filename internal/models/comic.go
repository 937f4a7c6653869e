package models

import "time"

// ComicPanel carries its position explicitly via Index; readers must not
// rely on slice order.
type ComicPanel struct {
	Index    int    `json:"index"`
	Prompt   string `json:"prompt"`
	ImageURL string `json:"imageUrl"`
}

// Comic is a generated multi-panel comic. NumPanels should equal
// len(Panels) but the generator is the authority and the mismatch is not
// rejected here. ImageURLs is the flattened panel URL list kept for quick
// access.
type Comic struct {
	ID           string       `json:"id"`
	OwnerSubject string       `json:"ownerSubject"`
	Instructions string       `json:"instructions"`
	GradeLevel   string       `json:"gradeLevel"`
	NumPanels    int          `json:"numPanels"`
	Language     string       `json:"language"`
	Panels       []ComicPanel `json:"panels"`
	ImageURLs    []string     `json:"imageUrls"`
	Status       string       `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func (c *Comic) Normalize() error {
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Status == "" {
		c.Status = StatusSuccess
	}
	if len(c.ImageURLs) == 0 && len(c.Panels) > 0 {
		urls := make([]string, 0, len(c.Panels))
		for _, panel := range c.Panels {
			urls = append(urls, panel.ImageURL)
		}
		c.ImageURLs = urls
	}
	return nil
}
