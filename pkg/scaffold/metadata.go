package scaffold

import (
	"fmt"
	"strings"
)

// Metadata is the information substituted into a new module.
type Metadata struct {
	ID          string
	Name        string
	Description string
	Brand       string
	Author      string
	Email       string
	URL         string
}

// Defaults used for empty metadata fields.
const (
	DefaultBrand  = "YourBrand"
	DefaultAuthor = "Unknown"
	DefaultEmail  = "unknown@example.com"
	DefaultURL    = "https://example.com"
)

// WithDefaults fills empty fields. Name falls back to the ID and the
// description to the name.
func (m Metadata) WithDefaults() Metadata {
	m.ID = strings.TrimSpace(m.ID)
	m.Name = orDefault(m.Name, m.ID)
	m.Description = orDefault(m.Description, m.Name)
	m.Brand = orDefault(m.Brand, DefaultBrand)
	m.Author = orDefault(m.Author, DefaultAuthor)
	m.Email = orDefault(m.Email, DefaultEmail)
	m.URL = orDefault(m.URL, DefaultURL)
	return m
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

// Validate checks the ID and that no value would break the generated
// sources.
func (m Metadata) Validate() error {
	if err := ValidateModuleID(m.ID); err != nil {
		return err
	}
	fields := []struct{ name, value string }{
		{"name", m.Name},
		{"description", m.Description},
		{"brand", m.Brand},
		{"author", m.Author},
		{"email", m.Email},
		{"url", m.URL},
	}
	for _, f := range fields {
		if strings.ContainsAny(f.value, "\"\\\r\n") {
			return fmt.Errorf("%w: %s must not contain quotes, backslashes or line breaks", ErrInvalidMetadata, f.name)
		}
	}
	return nil
}

// Substitutions maps every template placeholder to its value.
func (m Metadata) Substitutions(goModule string) map[string]string {
	return map[string]string{
		"__MOD__":         m.ID,
		"__NAME__":        m.Name,
		"__DESCRIPTION__": m.Description,
		"__BRAND__":       m.Brand,
		"__AUTHOR__":      m.Author,
		"__EMAIL__":       m.Email,
		"__URL__":         m.URL,
		"__GOMODULE__":    goModule,
	}
}

// DemoMetadata is the fixed metadata of the DEMO module.
var DemoMetadata = Metadata{
	ID:          "DEMO",
	Name:        "Demo Module",
	Description: "Demo module with example RNBO patch",
	Brand:       "Example",
	Author:      "Example Team",
	Email:       "info@example.com",
	URL:         "https://example.com",
}

// TestModules are the fixtures created by CreateTestModules.
var TestModules = []Metadata{
	{
		ID:          "TEST",
		Name:        "Test Module",
		Description: "Basic test module for development",
		Brand:       "TestBrand",
		Author:      "Test Developer",
		Email:       "test@example.com",
		URL:         "https://test.example.com",
	},
	{
		ID:          "VERB",
		Name:        "Reverb Effect",
		Description: "Digital reverb processor with multiple algorithms",
		Brand:       "AudioDev",
		Author:      "Audio Engineer",
		Email:       "audio@example.com",
		URL:         "https://audiodev.example.com",
	},
}
