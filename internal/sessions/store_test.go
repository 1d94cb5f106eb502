package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb), mr
}

func TestRevogarToken(t *testing.T) {
	store, _ := novoStore(t)
	ctx := context.Background()

	assert.False(t, store.Revogado(ctx, "jti-1", "user-1"))

	err := store.RevogarToken(ctx, "jti-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, store.Revogado(ctx, "jti-1", "user-1"))
	assert.False(t, store.Revogado(ctx, "jti-2", "user-1"))
}

func TestRevogarTokenJaExpirado(t *testing.T) {
	store, _ := novoStore(t)
	ctx := context.Background()

	// Token já vencido não precisa entrar na lista.
	err := store.RevogarToken(ctx, "jti-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, store.Revogado(ctx, "jti-1", "user-1"))
}

func TestRevogarELiberarUsuario(t *testing.T) {
	store, _ := novoStore(t)
	ctx := context.Background()

	require.NoError(t, store.RevogarUsuario(ctx, "user-1", time.Hour))
	assert.True(t, store.Revogado(ctx, "qualquer-jti", "user-1"))
	assert.False(t, store.Revogado(ctx, "qualquer-jti", "user-2"))

	require.NoError(t, store.LiberarUsuario(ctx, "user-1"))
	assert.False(t, store.Revogado(ctx, "qualquer-jti", "user-1"))
}

func TestRevogadoComRedisFora(t *testing.T) {
	store, mr := novoStore(t)
	mr.Close()

	// Redis indisponível conta como revogado.
	assert.True(t, store.Revogado(context.Background(), "jti-1", "user-1"))
}

func TestRevogacaoExpiraComTTL(t *testing.T) {
	store, mr := novoStore(t)
	ctx := context.Background()

	require.NoError(t, store.RevogarToken(ctx, "jti-1", time.Now().Add(time.Minute)))
	assert.True(t, store.Revogado(ctx, "jti-1", "user-1"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, store.Revogado(ctx, "jti-1", "user-1"))
}
