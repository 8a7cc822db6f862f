package scope

import (
	"context"
	"testing"

	"report-srv/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNewScope(t *testing.T) {
	t.Run("falls back to subject", func(t *testing.T) {
		sc := NewScope(Payload{Subject: "u-1", Role: "ADMIN", Department: "Finance"})
		assert.Equal(t, "u-1", sc.UserID)
		assert.Equal(t, "Finance", sc.Department)
		assert.True(t, sc.IsAdmin())
	})

	t.Run("user id wins over subject", func(t *testing.T) {
		sc := NewScope(Payload{UserID: "u-2", Subject: "u-1"})
		assert.Equal(t, "u-2", sc.UserID)
	})
}

func TestScopeContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, GetScopeFromContext(ctx).IsAuthenticated())

	ctx = SetScopeToContext(ctx, model.Scope{UserID: "7"})
	assert.Equal(t, "7", GetScopeFromContext(ctx).UserID)
}
