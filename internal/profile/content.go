package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Content is everything the page shows about one person. It is supplied once
// and never mutated.
type Content struct {
	Name          string `toml:"name" yaml:"name" validate:"required"`
	JobTitle      string `toml:"job_title" yaml:"job_title" validate:"required"`
	ImageURL      string `toml:"image_url" yaml:"image_url" validate:"required"`
	GitHubURL     string `toml:"github_url" yaml:"github_url" validate:"required"`
	LinkedInURL   string `toml:"linkedin_url" yaml:"linkedin_url" validate:"required"`
	WebsiteURL    string `toml:"website_url" yaml:"website_url" validate:"required"`
	TwitterURL    string `toml:"twitter_url" yaml:"twitter_url" validate:"required"`
	DescriptionEn string `toml:"description_en" yaml:"description_en" validate:"required"`
	DescriptionDe string `toml:"description_de" yaml:"description_de" validate:"required"`
}

// Link is one outbound anchor in the link row.
type Link struct {
	URL   string
	Label string
	Icon  string
	Color string
}

// Links returns the outbound links in display order. Labels are the same in
// every language.
func (c Content) Links() []Link {
	return []Link{
		{URL: c.GitHubURL, Label: "GitHub", Icon: "github"},
		{URL: c.LinkedInURL, Label: "LinkedIn", Icon: "linkedin"},
		{URL: c.WebsiteURL, Label: "Website", Icon: "globe", Color: "#22F4AE"},
		{URL: c.TwitterURL, Label: "Twitter", Icon: "twitter", Color: "#1DA1F2"},
	}
}

// Description returns the variant written in lang.
func (c Content) Description(lang Language) string {
	if lang == German {
		return c.DescriptionDe
	}
	return c.DescriptionEn
}

// Validate only checks that every field is present. Reachability of the image
// and the links is never checked.
func (c Content) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate content: %w", err)
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fe.Field())
	}

	return fmt.Errorf("profile content is missing %s", strings.Join(missing, ", "))
}
