package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPasskeyUsecase(repository.NewMemory().Passkeys)

	t.Run("Should print one key per minted passkey", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(ctx, uc, []string{"mint", "-n", "3"}, &out))

		keys := strings.Fields(out.String())
		assert.Len(t, keys, 3)
		for _, k := range keys {
			assert.Len(t, k, 24)
		}
	})

	t.Run("Should list minted passkeys as unused", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(ctx, uc, []string{"list"}, &out))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		assert.Len(t, lines, 4)
		assert.Contains(t, lines[1], "false")
	})

	t.Run("Should reject unknown commands", func(t *testing.T) {
		var out bytes.Buffer
		assert.Error(t, run(ctx, uc, []string{"revoke"}, &out))
		assert.Contains(t, out.String(), "usage")
	})
}
