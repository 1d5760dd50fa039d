package confirm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
)

func TestMemoryConsume(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		kind    entity.Kind
		id      int
		token   func(issued string) string
		wantErr bool
	}{
		{name: "same record", kind: entity.KindDoctor, id: 1, token: func(s string) string { return s }},
		{name: "other id", kind: entity.KindDoctor, id: 2, token: func(s string) string { return s }, wantErr: true},
		{name: "other kind", kind: entity.KindPatient, id: 1, token: func(s string) string { return s }, wantErr: true},
		{name: "unknown token", kind: entity.KindDoctor, id: 1, token: func(string) string { return "nope" }, wantErr: true},
		{name: "empty token", kind: entity.KindDoctor, id: 1, token: func(string) string { return "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMemory(time.Minute)
			issued, err := svc.Issue(ctx, entity.KindDoctor, 1)
			require.NoError(t, err)
			require.NotEmpty(t, issued)

			err = svc.Consume(ctx, tt.kind, tt.id, tt.token(issued))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMemoryTokenIsSingleUse(t *testing.T) {
	ctx := context.Background()
	svc := NewMemory(time.Minute)

	token, err := svc.Issue(ctx, entity.KindService, 7)
	require.NoError(t, err)

	require.NoError(t, svc.Consume(ctx, entity.KindService, 7, token))
	assert.ErrorIs(t, svc.Consume(ctx, entity.KindService, 7, token), ErrInvalidToken)
}

func TestMemoryTokenExpires(t *testing.T) {
	ctx := context.Background()
	svc := NewMemory(time.Minute).(*memoryService)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	token, err := svc.Issue(ctx, entity.KindReception, 3)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, svc.Consume(ctx, entity.KindReception, 3, token), ErrInvalidToken)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "confirm:abc", redisKey("abc"))
	assert.Equal(t, "service_rendered:12", subject(entity.KindServiceRendered, 12))
}
