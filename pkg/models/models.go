package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Admin is the single administrator account. The password hash never
// leaves the server: it is excluded from every JSON projection.
type Admin struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"createdAt" db:"created"`
	Updated      int64  `json:"updatedAt" db:"updated"`
}

type Project struct {
	ID           int64    `json:"id" db:"id"`
	Title        string   `json:"title" db:"title" validate:"required"`
	Description  string   `json:"description" db:"description" validate:"required"`
	Technologies TechList `json:"technologies" db:"technologies"`
	GithubURL    string   `json:"githubUrl,omitempty" db:"github_url"`
	LiveURL      string   `json:"liveUrl,omitempty" db:"live_url"`
	Featured     bool     `json:"featured" db:"featured"`
	Order        int      `json:"order" db:"display_order"`
	Image        string   `json:"image,omitempty" db:"image"`
	Created      int64    `json:"createdAt" db:"created"`
	Updated      int64    `json:"updatedAt" db:"updated"`
}

type Skill struct {
	ID          int64         `json:"id" db:"id"`
	Name        string        `json:"name" db:"name" validate:"required"`
	Category    SkillCategory `json:"category" db:"category"`
	Icon        string        `json:"icon,omitempty" db:"icon"`
	Proficiency int           `json:"proficiency" db:"proficiency"`
	Order       int           `json:"order" db:"display_order"`
	Created     int64         `json:"createdAt" db:"created"`
	Updated     int64         `json:"updatedAt" db:"updated"`
}

type Contact struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name" validate:"required"`
	Email   string `json:"email" db:"email" validate:"required,email"`
	Subject string `json:"subject,omitempty" db:"subject"`
	Message string `json:"message" db:"message" validate:"required"`
	Read    bool   `json:"read" db:"read"`
	Created int64  `json:"createdAt" db:"created"`
}

// SkillCategory is the closed set of skill groupings. Listing sorts by
// category first, so the values double as the sort key.
type SkillCategory string

const (
	CategoryFrontend SkillCategory = "frontend"
	CategoryBackend  SkillCategory = "backend"
	CategoryDatabase SkillCategory = "database"
	CategoryTools    SkillCategory = "tools"
	CategoryOther    SkillCategory = "other"
)

// ParseSkillCategory maps a raw string onto the closed category set.
// Empty input falls back to "other".
func ParseSkillCategory(s string) (SkillCategory, error) {
	switch c := SkillCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryFrontend, CategoryBackend, CategoryDatabase, CategoryTools, CategoryOther:
		return c, nil
	case "":
		return CategoryOther, nil
	default:
		return "", fmt.Errorf("unknown skill category %q", s)
	}
}

// TechList is an ordered list of technology names. On the wire it is
// accepted either as a JSON string array or as a single comma-separated
// string; entries are trimmed and empty entries dropped.
type TechList []string

func (t *TechList) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err == nil {
		*t = normalizeTechs(raw)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("technologies must be a string or an array of strings")
	}
	*t = ParseTechList(s)
	return nil
}

// ParseTechList splits a comma-separated value into a normalized list.
func ParseTechList(s string) TechList {
	return normalizeTechs(strings.Split(s, ","))
}

// NormalizeTechs trims every entry and drops empty ones, preserving order.
func NormalizeTechs(in []string) TechList {
	return normalizeTechs(in)
}

func normalizeTechs(in []string) TechList {
	out := make(TechList, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
