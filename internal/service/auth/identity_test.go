package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/storage"
)

func TestSignUp_OK(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	var saved *models.Member
	gomock.InOrder(
		mockSt.EXPECT().
			MemberByUserid(gomock.Any(), "trainer1").
			Return(nil, fmtWrap(storage.ErrNotFound)),
		mockSt.EXPECT().
			MemberByNickname(gomock.Any(), "trainer").
			Return(nil, fmtWrap(storage.ErrNotFound)),
		mockSt.EXPECT().
			SaveMember(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *models.Member) (int64, error) {
				saved = m
				return 42, nil
			}),
	)

	m, err := svc.SignUp(context.Background(), " trainer1 ", "password1", " trainer ", nil)
	require.NoError(t, err)
	require.Equal(t, int64(42), m.Idx)

	require.Equal(t, "trainer1", saved.Userid)
	require.Equal(t, models.ProviderLocal, saved.Provider)
	// subject локального аккаунта — его userid.
	require.Equal(t, "trainer1", saved.ProviderID)
	require.Equal(t, int64(defaultGrade), saved.Grade)

	// Хранится bcrypt-хэш, не пароль.
	require.NotEqual(t, "password1", saved.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("password1")))
}

func TestSignUp_UseridTaken(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	mockSt.EXPECT().
		MemberByUserid(gomock.Any(), "trainer1").
		Return(testMember(1), nil)

	_, err := svc.SignUp(context.Background(), "trainer1", "password1", "other", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUseridTaken)
}

func TestSignUp_NicknameTaken(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	gomock.InOrder(
		mockSt.EXPECT().
			MemberByUserid(gomock.Any(), "trainer2").
			Return(nil, fmtWrap(storage.ErrNotFound)),
		mockSt.EXPECT().
			MemberByNickname(gomock.Any(), "trainer").
			Return(testMember(1), nil),
	)

	_, err := svc.SignUp(context.Background(), "trainer2", "password1", "trainer", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNicknameTaken)
}

func TestSignUp_InsertRace_MapsToUseridTaken(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	gomock.InOrder(
		mockSt.EXPECT().
			MemberByUserid(gomock.Any(), gomock.Any()).
			Return(nil, fmtWrap(storage.ErrNotFound)),
		mockSt.EXPECT().
			MemberByNickname(gomock.Any(), gomock.Any()).
			Return(nil, fmtWrap(storage.ErrNotFound)),
		mockSt.EXPECT().
			SaveMember(gomock.Any(), gomock.Any()).
			Return(int64(0), fmtWrap(storage.ErrAlreadyExists)),
	)

	_, err := svc.SignUp(context.Background(), "trainer1", "password1", "trainer", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUseridTaken)
}

func TestSignUp_WeakPassword(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	for _, pw := range []string{"short1", "passwordonly", "12345678"} {
		_, err := svc.SignUp(context.Background(), "trainer1", pw, "trainer", nil)
		require.Error(t, err, "password %q", pw)
		require.ErrorIs(t, err, ErrWeakPassword)
	}
}

func TestSignUp_EmptyFields(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	_, err := svc.SignUp(context.Background(), "  ", "password1", "trainer", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.SignUp(context.Background(), "trainer1", "password1", "  ", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLogin_OK(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	m := testMember(1)
	m.PasswordHash = string(hash)

	mockSt.EXPECT().
		MemberByUserid(gomock.Any(), "trainer1").
		Return(m, nil)

	got, err := svc.Login(context.Background(), "trainer1", "password1")
	require.NoError(t, err)
	require.Equal(t, m.Idx, got.Idx)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	m := testMember(1)
	m.PasswordHash = string(hash)

	mockSt.EXPECT().
		MemberByUserid(gomock.Any(), "trainer1").
		Return(m, nil)

	_, err = svc.Login(context.Background(), "trainer1", "wrong-password")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserid(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	mockSt.EXPECT().
		MemberByUserid(gomock.Any(), "absent").
		Return(nil, fmtWrap(storage.ErrNotFound))

	_, err := svc.Login(context.Background(), "absent", "password1")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_SocialAccount_Rejected(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	m := testMember(1)
	m.Provider = "kakao"
	m.PasswordHash = ""

	mockSt.EXPECT().
		MemberByUserid(gomock.Any(), "trainer1").
		Return(m, nil)

	_, err := svc.Login(context.Background(), "trainer1", "password1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmptyPassword(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	// Пустой пароль отклоняется до обращения к хранилищу.
	_, err := svc.Login(context.Background(), "trainer1", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUseridAvailable(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	mockSt.EXPECT().
		MemberByUserid(gomock.Any(), "free").
		Return(nil, fmtWrap(storage.ErrNotFound))

	ok, err := svc.UseridAvailable(context.Background(), "free")
	require.NoError(t, err)
	require.True(t, ok)

	mockSt.EXPECT().
		MemberByUserid(gomock.Any(), "taken").
		Return(testMember(1), nil)

	ok, err = svc.UseridAvailable(context.Background(), "taken")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = svc.UseridAvailable(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResolveOrCreate_ExistingAccount(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	m := testMember(1)
	m.Provider = "kakao"
	m.ProviderID = "12345"
	m.AvatarURL = "https://img.example.com/old.png"

	mockSt.EXPECT().
		MemberByProvider(gomock.Any(), "kakao", "12345").
		Return(m, nil)

	got, err := svc.ResolveOrCreate(context.Background(), ExternalIdentity{
		Provider:   "kakao",
		ProviderID: "12345",
		Nickname:   "trainer",
		AvatarURL:  m.AvatarURL,
	})
	require.NoError(t, err)
	require.Equal(t, m.Idx, got.Idx)
}

func TestResolveOrCreate_ExistingAccount_AvatarRefreshed(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	m := testMember(1)
	m.Provider = "naver"
	m.ProviderID = "abc"
	m.AvatarURL = "https://img.example.com/old.png"

	gomock.InOrder(
		mockSt.EXPECT().
			MemberByProvider(gomock.Any(), "naver", "abc").
			Return(m, nil),
		mockSt.EXPECT().
			UpdateOAuthProfile(gomock.Any(), m.Idx, "https://img.example.com/new.png").
			Return(nil),
	)

	got, err := svc.ResolveOrCreate(context.Background(), ExternalIdentity{
		Provider:   "naver",
		ProviderID: "abc",
		AvatarURL:  "https://img.example.com/new.png",
	})
	require.NoError(t, err)
	require.Equal(t, "https://img.example.com/new.png", got.AvatarURL)
}

func TestResolveOrCreate_NewAccount(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	var saved *models.Member
	gomock.InOrder(
		mockSt.EXPECT().
			MemberByProvider(gomock.Any(), "kakao", "12345").
			Return(nil, fmtWrap(storage.ErrNotFound)),
		mockSt.EXPECT().
			SaveMember(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *models.Member) (int64, error) {
				saved = m
				return 99, nil
			}),
	)

	got, err := svc.ResolveOrCreate(context.Background(), ExternalIdentity{
		Provider:   "kakao",
		ProviderID: "12345",
		Nickname:   "trainer",
		AvatarURL:  "https://img.example.com/a.png",
	})
	require.NoError(t, err)
	require.Equal(t, int64(99), got.Idx)

	require.Equal(t, "kakao_12345", saved.Userid)
	require.Equal(t, "trainer", saved.Nickname)
	require.Equal(t, "kakao", saved.Provider)
	require.Equal(t, "12345", saved.ProviderID)
	require.Empty(t, saved.PasswordHash)
}

func TestResolveOrCreate_ConcurrentCreate_ReturnsExisting(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	existing := testMember(1)
	existing.Provider = "kakao"
	existing.ProviderID = "12345"

	gomock.InOrder(
		mockSt.EXPECT().
			MemberByProvider(gomock.Any(), "kakao", "12345").
			Return(nil, fmtWrap(storage.ErrNotFound)),
		mockSt.EXPECT().
			SaveMember(gomock.Any(), gomock.Any()).
			Return(int64(0), fmtWrap(storage.ErrAlreadyExists)),
		mockSt.EXPECT().
			MemberByProvider(gomock.Any(), "kakao", "12345").
			Return(existing, nil),
	)

	got, err := svc.ResolveOrCreate(context.Background(), ExternalIdentity{
		Provider:   "kakao",
		ProviderID: "12345",
		Nickname:   "trainer",
	})
	require.NoError(t, err)
	require.Equal(t, existing.Idx, got.Idx)
}

func TestResolveOrCreate_NicknameConflict_RetriesWithSuffix(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	var second *models.Member
	gomock.InOrder(
		mockSt.EXPECT().
			MemberByProvider(gomock.Any(), "kakao", "12345").
			Return(nil, fmtWrap(storage.ErrNotFound)),
		mockSt.EXPECT().
			SaveMember(gomock.Any(), gomock.Any()).
			Return(int64(0), fmtWrap(storage.ErrAlreadyExists)),
		mockSt.EXPECT().
			MemberByProvider(gomock.Any(), "kakao", "12345").
			Return(nil, fmtWrap(storage.ErrNotFound)),
		mockSt.EXPECT().
			SaveMember(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *models.Member) (int64, error) {
				second = m
				return 100, nil
			}),
	)

	got, err := svc.ResolveOrCreate(context.Background(), ExternalIdentity{
		Provider:   "kakao",
		ProviderID: "12345",
		Nickname:   "trainer",
	})
	require.NoError(t, err)
	require.Equal(t, int64(100), got.Idx)

	require.True(t, strings.HasPrefix(second.Nickname, "trainer-"))
	require.Greater(t, len(second.Nickname), len("trainer-"))
}

func TestResolveOrCreate_InvalidIdentity(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	_, err := svc.ResolveOrCreate(context.Background(), ExternalIdentity{Provider: "kakao"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.ResolveOrCreate(context.Background(), ExternalIdentity{ProviderID: "1"})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name string
		pw   string
		ok   bool
	}{
		{"ok letters and digits", "password1", true},
		{"ok unicode letters", "пароль12", true},
		{"too short", "pass1", false},
		{"no digits", "passwordonly", false},
		{"no letters", "123456789", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.pw)
			if tc.ok {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.ErrorIs(t, err, ErrWeakPassword)
		})
	}
}

func TestSignUp_BirthStored(t *testing.T) {
	svc, mockSt, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	birth := time.Date(1999, 5, 20, 0, 0, 0, 0, time.UTC)

	var saved *models.Member
	gomock.InOrder(
		mockSt.EXPECT().
			MemberByUserid(gomock.Any(), gomock.Any()).
			Return(nil, fmtWrap(storage.ErrNotFound)),
		mockSt.EXPECT().
			MemberByNickname(gomock.Any(), gomock.Any()).
			Return(nil, fmtWrap(storage.ErrNotFound)),
		mockSt.EXPECT().
			SaveMember(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *models.Member) (int64, error) {
				saved = m
				return 1, nil
			}),
	)

	_, err := svc.SignUp(context.Background(), "trainer1", "password1", "trainer", &birth)
	require.NoError(t, err)
	require.NotNil(t, saved.Birth)
	require.Equal(t, birth, *saved.Birth)
}
