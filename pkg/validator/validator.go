package validator

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// slugRegex accepts lowercase words separated by single hyphens
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// plateRegex accepts letters, digits and inner separators
	plateRegex = regexp.MustCompile(`^[A-Z0-9]+(?:[ -][A-Z0-9]+)*$`)

	// settingKeyRegex accepts dotted or underscored identifiers
	settingKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_.]*$`)

	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

	allowedSchemes = map[string]bool{
		"http":  true,
		"https": true,
	}
)

// ValidateSlug checks a blog slug
func ValidateSlug(slug string) error {
	if slug == "" {
		return &ValidationError{Field: "slug", Message: "slug cannot be empty"}
	}
	if len(slug) > 160 {
		return &ValidationError{Field: "slug", Message: "slug too long (max 160 characters)"}
	}
	if !slugRegex.MatchString(slug) {
		return &ValidationError{Field: "slug", Message: "slug may only contain lowercase letters, digits and single hyphens"}
	}
	return nil
}

// NormalizeSlug lowercases and collapses everything that is not a letter or digit into hyphens
func NormalizeSlug(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizePlate uppercases a licence plate and squeezes inner whitespace
func NormalizePlate(raw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
}

// ValidatePlate checks a normalized licence plate
func ValidatePlate(plate string) error {
	if len(plate) < 2 || len(plate) > 16 {
		return &ValidationError{Field: "plate", Message: "plate must be between 2 and 16 characters"}
	}
	if !plateRegex.MatchString(plate) {
		return &ValidationError{Field: "plate", Message: "invalid plate format"}
	}
	return nil
}

// ValidateAvatarURL checks an optional http(s) image URL
func ValidateAvatarURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	if len(rawURL) > 512 {
		return &ValidationError{Field: "avatar_url", Message: "URL too long (max 512 characters)"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "avatar_url", Message: "invalid URL structure"}
	}
	if !allowedSchemes[strings.ToLower(parsed.Scheme)] {
		return &ValidationError{Field: "avatar_url", Message: "unsupported URL scheme"}
	}
	if parsed.Host == "" {
		return &ValidationError{Field: "avatar_url", Message: "URL must contain a host"}
	}
	return nil
}

// ValidateSettingKey checks a system configuration key
func ValidateSettingKey(key string) error {
	if len(key) == 0 || len(key) > 64 {
		return &ValidationError{Field: "settings", Message: "setting keys must be between 1 and 64 characters"}
	}
	if !settingKeyRegex.MatchString(key) {
		return &ValidationError{Field: "settings", Message: "invalid setting key: " + key}
	}
	return nil
}

// ValidateCachePattern rejects patterns that could never be meant as a key glob
func ValidateCachePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return &ValidationError{Field: "pattern", Message: "pattern cannot be empty"}
	}
	if strings.ContainsAny(pattern, " \t\r\n") {
		return &ValidationError{Field: "pattern", Message: "pattern cannot contain whitespace"}
	}
	return nil
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
