package domain_test

import (
	"context"
	"encoding/json"
	"testing"

	"portfolio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillsJSON(t *testing.T) {
	t.Run("Should split a comma separated string and drop empty entries", func(t *testing.T) {
		var job domain.Job
		require.NoError(t, json.Unmarshal([]byte(`{"skills":" Go, Rust ,, "}`), &job))
		assert.Equal(t, domain.Skills{"Go", "Rust"}, job.Skills)
	})

	t.Run("Should trim array entries", func(t *testing.T) {
		var job domain.Job
		require.NoError(t, json.Unmarshal([]byte(`{"skills":["Go ","", " SQL"]}`), &job))
		assert.Equal(t, domain.Skills{"Go", "SQL"}, job.Skills)
	})

	t.Run("Should reject non-string values", func(t *testing.T) {
		var job domain.Job
		assert.Error(t, json.Unmarshal([]byte(`{"skills":42}`), &job))
	})

	t.Run("Should encode missing skills as an empty array", func(t *testing.T) {
		out, err := json.Marshal(domain.Service{})
		require.NoError(t, err)
		assert.NotContains(t, string(out), "skills")

		out, err = json.Marshal(domain.Project{})
		require.NoError(t, err)
		assert.Contains(t, string(out), `"skills":[]`)
	})

	t.Run("Should distinguish an absent patch field from an explicit one", func(t *testing.T) {
		var patch domain.JobPatch
		require.NoError(t, json.Unmarshal([]byte(`{"skills":""}`), &patch))
		require.NotNil(t, patch.Skills)
		assert.Empty(t, *patch.Skills)
		assert.Nil(t, patch.Title)
	})
}

func TestPatchApply(t *testing.T) {
	t.Run("Should only overwrite provided fields", func(t *testing.T) {
		job := domain.Job{Title: "Engineer", Location: "Remote", Skills: domain.Skills{"Go"}}
		title := "Staff Engineer"

		domain.JobPatch{Title: &title}.Apply(&job)

		assert.Equal(t, "Staff Engineer", job.Title)
		assert.Equal(t, "Remote", job.Location)
		assert.Equal(t, domain.Skills{"Go"}, job.Skills)
	})

	t.Run("Should expose ownership through Meta", func(t *testing.T) {
		p := &domain.Project{}
		p.Meta().UserID = "owner-1"
		assert.Equal(t, "owner-1", p.UserID)
	})
}

func TestIdentityContext(t *testing.T) {
	t.Run("Should round trip the identity", func(t *testing.T) {
		ctx := domain.WithIdentity(context.Background(), domain.Identity{UserID: "u1", Email: "a@b.c"})
		id, ok := domain.IdentityFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "u1", id.UserID)
		assert.Equal(t, "u1", domain.UserIDFromContext(ctx))
	})

	t.Run("Should report anonymous contexts", func(t *testing.T) {
		_, ok := domain.IdentityFromContext(context.Background())
		assert.False(t, ok)
	})
}
