package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubject_RoundTrip(t *testing.T) {
	m := &Member{Provider: "kakao", ProviderID: "12345"}
	require.Equal(t, "kakao:12345", m.Subject())

	provider, providerID, ok := SplitSubject(m.Subject())
	require.True(t, ok)
	require.Equal(t, "kakao", provider)
	require.Equal(t, "12345", providerID)
}

func TestSubject_DistinguishesProviders(t *testing.T) {
	// Одинаковый provider_id у разных провайдеров даёт разные subject.
	kakao := &Member{Provider: "kakao", ProviderID: "12345"}
	naver := &Member{Provider: "naver", ProviderID: "12345"}
	local := &Member{Provider: ProviderLocal, ProviderID: "12345"}

	require.NotEqual(t, kakao.Subject(), naver.Subject())
	require.NotEqual(t, kakao.Subject(), local.Subject())
	require.NotEqual(t, naver.Subject(), local.Subject())
}

func TestSplitSubject_Invalid(t *testing.T) {
	for _, s := range []string{"", "12345", ":12345", "kakao:", ":"} {
		_, _, ok := SplitSubject(s)
		require.False(t, ok, "subject %q", s)
	}
}
