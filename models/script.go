package models

import "time"

// Script is a stored shell script that can be pushed to lab nodes by ID.
type Script struct {
	Context string `json:"@context" jsonld:"@context"`
	Type    string `json:"@type" jsonld:"@type"`
	ID      string `json:"@id" jsonld:"@id" couchdb:"_id"`
	Rev     string `json:"_rev,omitempty" couchdb:"_rev"`

	// Name is the script name (required, indexed)
	Name string `json:"name" jsonld:"name" couchdb:"required,index" validate:"required"`

	// Description says what the script does
	Description string `json:"description,omitempty" jsonld:"description"`

	// Content is the shell source
	Content string `json:"text" jsonld:"text" couchdb:"required" validate:"required"`

	// Owner is the user who created the script
	Owner string `json:"owner,omitempty" jsonld:"creator"`

	CreatedAt time.Time `json:"dateCreated" jsonld:"dateCreated" couchdb:"index"`
	UpdatedAt time.Time `json:"dateModified" jsonld:"dateModified"`
}

// NewScript creates a script document with defaults.
func NewScript(name, description, content string) *Script {
	now := time.Now().UTC()
	return &Script{
		Context:     "https://schema.org",
		Type:        "SoftwareSourceCode",
		ID:          GenerateID("script"),
		Name:        name,
		Description: description,
		Content:     content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ScriptSummary is the list-view projection of a script (content omitted).
type ScriptSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary returns the list-view projection.
func (s *Script) Summary() ScriptSummary {
	return ScriptSummary{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
