package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type links struct {
	Github string `json:"github" validate:"omitempty,url"`
}

type sample struct {
	Name        string   `json:"name" validate:"required,valid_name,no_emoji"`
	Description string   `json:"description" validate:"required,min=100"`
	Icon        string   `json:"icon" validate:"omitempty,url"`
	Skills      []string `json:"skills" validate:"omitempty,skill_list"`
	Links       links    `json:"links"`
}

func validSample() sample {
	return sample{
		Name:        "Ada Lovelace",
		Description: strings.Repeat("a", 100),
	}
}

func TestValidator(t *testing.T) {
	v := New()

	t.Run("Should accept a description of exactly the minimum length", func(t *testing.T) {
		assert.NoError(t, v.Struct(validSample()))
	})

	t.Run("Should reject a description one character short", func(t *testing.T) {
		s := validSample()
		s.Description = strings.Repeat("a", 99)

		err := v.Struct(s)
		require.Error(t, err)
		assert.Equal(t, map[string]string{"description": "must be at least 100 characters"}, FormatValidationErrors(err))
	})

	t.Run("Should count characters rather than bytes", func(t *testing.T) {
		s := validSample()
		s.Description = strings.Repeat("é", 100)
		assert.NoError(t, v.Struct(s))
	})

	t.Run("Should report nested and url fields by json path", func(t *testing.T) {
		s := validSample()
		s.Icon = "not a url"
		s.Links.Github = "also not a url"

		fields := FormatValidationErrors(v.Struct(s))
		assert.Equal(t, "must be a valid URL", fields["icon"])
		assert.Equal(t, "must be a valid URL", fields["links.github"])
	})

	t.Run("Should reject names with digits or emoji", func(t *testing.T) {
		s := validSample()
		s.Name = "R2D2"
		assert.Contains(t, FormatValidationErrors(v.Struct(s)), "name")

		s.Name = "Ada 🚀"
		assert.Contains(t, FormatValidationErrors(v.Struct(s)), "name")
	})

	t.Run("Should let optional links be cleared but not malformed", func(t *testing.T) {
		type patch struct {
			Icon *string `json:"icon" validate:"omitnil,optional_url"`
		}
		empty, bad, good := "", "nope", "https://cdn.example.com/icon.svg"

		assert.NoError(t, v.Struct(patch{}))
		assert.NoError(t, v.Struct(patch{Icon: &empty}))
		assert.NoError(t, v.Struct(patch{Icon: &good}))
		assert.Equal(t, map[string]string{"icon": "must be a valid URL"}, FormatValidationErrors(v.Struct(patch{Icon: &bad})))
	})

	t.Run("Should reject a blank title on patch but allow it to be omitted", func(t *testing.T) {
		type patch struct {
			Title *string `json:"title" validate:"omitnil,notblank,max=200"`
		}
		blank, empty, good := "   ", "", "Backend engineer"

		assert.NoError(t, v.Struct(patch{}))
		assert.NoError(t, v.Struct(patch{Title: &good}))
		assert.Equal(t, map[string]string{"title": "must not be blank"}, FormatValidationErrors(v.Struct(patch{Title: &blank})))
		assert.Equal(t, map[string]string{"title": "must not be blank"}, FormatValidationErrors(v.Struct(patch{Title: &empty})))
	})

	t.Run("Should reject blank skill entries", func(t *testing.T) {
		s := validSample()
		s.Skills = []string{"Go", ""}
		assert.Equal(t, "each skill must be 1 to 50 characters", FormatValidationErrors(v.Struct(s))["skills"])
	})
}
