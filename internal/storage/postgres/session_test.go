package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mclhub/poke-board/internal/storage"
)

// Интеграционные тесты session.go: хранение хэша refresh-токена в строке
// участника и CAS-семантика ротации.

func TestIntegration_SetAndFindByRefreshHash(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	m := seedMember(t, st, "trainer1", "trainer")

	require.NoError(t, st.SetRefreshToken(ctx, m.Idx, "hash-1"))

	got, err := st.MemberByRefreshHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, m.Idx, got.Idx)
	require.NotNil(t, got.RefreshTokenHash)
	require.Equal(t, "hash-1", *got.RefreshTokenHash)

	// Повторный вход перезаписывает хэш: сессия одна на аккаунт.
	require.NoError(t, st.SetRefreshToken(ctx, m.Idx, "hash-2"))

	_, err = st.MemberByRefreshHash(ctx, "hash-1")
	require.ErrorIs(t, err, storage.ErrNotFound)

	got, err = st.MemberByRefreshHash(ctx, "hash-2")
	require.NoError(t, err)
	require.Equal(t, m.Idx, got.Idx)

	require.ErrorIs(t, st.SetRefreshToken(ctx, 999, "x"), storage.ErrNotFound)
}

func TestIntegration_RotateRefreshToken_CAS(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	m := seedMember(t, st, "trainer1", "trainer")

	require.NoError(t, st.SetRefreshToken(ctx, m.Idx, "old-hash"))

	// Первая ротация выигрывает.
	require.NoError(t, st.RotateRefreshToken(ctx, "old-hash", "new-hash"))

	got, err := st.MemberByRefreshHash(ctx, "new-hash")
	require.NoError(t, err)
	require.Equal(t, m.Idx, got.Idx)

	// Повтор той же ротации (replay) не находит точного совпадения.
	err = st.RotateRefreshToken(ctx, "old-hash", "another-hash")
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Проигравшая ротация не изменила состояние.
	_, err = st.MemberByRefreshHash(ctx, "another-hash")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_ClearRefreshToken(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	m := seedMember(t, st, "trainer1", "trainer")

	require.NoError(t, st.SetRefreshToken(ctx, m.Idx, "hash-1"))
	require.NoError(t, st.ClearRefreshToken(ctx, m.Subject()))

	_, err := st.MemberByRefreshHash(ctx, "hash-1")
	require.ErrorIs(t, err, storage.ErrNotFound)

	got, err := st.MemberByIdx(ctx, m.Idx)
	require.NoError(t, err)
	require.Nil(t, got.RefreshTokenHash)

	require.ErrorIs(t, st.ClearRefreshToken(ctx, "absent"), storage.ErrNotFound)
}
