package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"hello-world", true},
		{"2024-fleet-update", true},
		{"", false},
		{"Hello", false},
		{"double--hyphen", false},
		{"-leading", false},
		{"with space", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "new-routes-in-town", NormalizeSlug("  New Routes in Town! "))
	assert.Equal(t, "a-b", NormalizeSlug("a__b"))
}

func TestPlate(t *testing.T) {
	plate := NormalizePlate(" ab  123 cd ")
	assert.Equal(t, "AB 123 CD", plate)
	assert.NoError(t, ValidatePlate(plate))

	assert.Error(t, ValidatePlate("A"))
	assert.Error(t, ValidatePlate("AB_12"))
}

func TestValidateAvatarURL(t *testing.T) {
	assert.NoError(t, ValidateAvatarURL(""))
	assert.NoError(t, ValidateAvatarURL("https://cdn.example.com/a.png"))
	assert.Error(t, ValidateAvatarURL("javascript:alert(1)"))
	assert.Error(t, ValidateAvatarURL("https://"))
}

func TestValidateSettingKey(t *testing.T) {
	assert.NoError(t, ValidateSettingKey("booking.max_passengers"))
	assert.Error(t, ValidateSettingKey(""))
	assert.Error(t, ValidateSettingKey("Upper"))
}

func TestValidateCachePattern(t *testing.T) {
	assert.NoError(t, ValidateCachePattern("user:42:*"))
	assert.Error(t, ValidateCachePattern("  "))
	assert.Error(t, ValidateCachePattern("user 42"))

	var verr *ValidationError
	assert.ErrorAs(t, ValidateCachePattern(""), &verr)
	assert.Equal(t, "pattern", verr.Field)
}
