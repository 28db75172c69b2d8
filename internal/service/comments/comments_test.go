package comments

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/storage"
	"github.com/mclhub/poke-board/mocks"
)

func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockCommentStorage, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockCm := mocks.NewMockCommentStorage(ctrl)
	mockRel := mocks.NewMockStorage(ctrl)
	svc := New(mockCm, mockRel)
	return svc, mockCm, mockRel, ctrl
}

func fmtWrap(err error) error { return fmt.Errorf("wrapped: %w", err) }

func userPrincipal() *models.Principal {
	return &models.Principal{Subject: "trainer1", Roles: []string{models.RoleUser}}
}

func adminPrincipal() *models.Principal {
	return &models.Principal{Subject: "admin1", Roles: []string{models.RoleAdmin, models.RoleUser}}
}

func testMember(idx int64, subject string) *models.Member {
	return &models.Member{
		Idx:        idx,
		Userid:     subject,
		Nickname:   "trainer",
		Grade:      1,
		Provider:   models.ProviderLocal,
		ProviderID: subject,
	}
}

const commentID = "64f000000000000000000001"

func TestCreate_Root_OK(t *testing.T) {
	svc, mockCm, mockRel, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	in := models.Comment{
		TargetKind: models.CommentTargetBoard,
		TargetIdx:  10,
		Content:    "  nice post  ",
	}

	gomock.InOrder(
		mockRel.EXPECT().
			BoardByIdx(gomock.Any(), int64(10)).
			Return(&models.Board{Idx: 10}, nil),
		mockRel.EXPECT().
			MemberBySubject(gomock.Any(), "trainer1").
			Return(testMember(7, "trainer1"), nil),
		mockCm.EXPECT().
			CreateComment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
				require.Equal(t, "nice post", c.Content)
				require.Equal(t, int64(7), c.MemberIdx)
				require.Equal(t, "trainer", c.Nickname)
				c.ID = commentID
				return &c, nil
			}),
	)

	created, err := svc.Create(context.Background(), userPrincipal(), in)
	require.NoError(t, err)
	require.Equal(t, commentID, created.ID)
}

func TestCreate_Reply_SkipsTargetCheck(t *testing.T) {
	svc, mockCm, mockRel, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// У ответа цель перенимается от родителя, BoardByIdx не вызывается.
	in := models.Comment{
		ParentID: commentID,
		Content:  "reply",
	}

	gomock.InOrder(
		mockRel.EXPECT().
			MemberBySubject(gomock.Any(), "trainer1").
			Return(testMember(7, "trainer1"), nil),
		mockCm.EXPECT().
			CreateComment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
				c.ID = "64f000000000000000000002"
				c.Level = 1
				return &c, nil
			}),
	)

	created, err := svc.Create(context.Background(), userPrincipal(), in)
	require.NoError(t, err)
	require.EqualValues(t, 1, created.Level)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ctx := context.Background()
	p := userPrincipal()

	_, err := svc.Create(ctx, p, models.Comment{
		TargetKind: models.CommentTargetBoard,
		TargetIdx:  10,
		Content:    "   ",
	})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Create(ctx, p, models.Comment{
		TargetKind: models.CommentTargetBoard,
		TargetIdx:  10,
		Content:    strings.Repeat("я", maxContentLen+1),
	})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Create(ctx, p, models.Comment{
		TargetKind: "wiki",
		TargetIdx:  10,
		Content:    "hello",
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreate_TargetGone(t *testing.T) {
	svc, _, mockRel, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockRel.EXPECT().
		SampleByIdx(gomock.Any(), int64(5)).
		Return(nil, fmtWrap(storage.ErrNotFound))

	_, err := svc.Create(context.Background(), userPrincipal(), models.Comment{
		TargetKind: models.CommentTargetSample,
		TargetIdx:  5,
		Content:    "hello",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreate_ParentGone(t *testing.T) {
	svc, mockCm, mockRel, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	gomock.InOrder(
		mockRel.EXPECT().
			MemberBySubject(gomock.Any(), "trainer1").
			Return(testMember(7, "trainer1"), nil),
		mockCm.EXPECT().
			CreateComment(gomock.Any(), gomock.Any()).
			Return(nil, fmtWrap(storage.ErrParentNotFound)),
	)

	_, err := svc.Create(context.Background(), userPrincipal(), models.Comment{
		ParentID: commentID,
		Content:  "reply",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreate_MaxDepth(t *testing.T) {
	svc, mockCm, mockRel, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	gomock.InOrder(
		mockRel.EXPECT().
			MemberBySubject(gomock.Any(), "trainer1").
			Return(testMember(7, "trainer1"), nil),
		mockCm.EXPECT().
			CreateComment(gomock.Any(), gomock.Any()).
			Return(nil, fmtWrap(storage.ErrMaxDepthExceeded)),
	)

	_, err := svc.Create(context.Background(), userPrincipal(), models.Comment{
		ParentID: commentID,
		Content:  "too deep",
	})
	require.ErrorIs(t, err, ErrMaxDepthExceeded)
}

func TestUpdate_AuthorOnly(t *testing.T) {
	svc, mockCm, mockRel, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	gomock.InOrder(
		mockCm.EXPECT().
			CommentByID(gomock.Any(), commentID).
			Return(&models.Comment{ID: commentID, MemberIdx: 7}, nil),
		mockRel.EXPECT().
			MemberBySubject(gomock.Any(), "trainer1").
			Return(testMember(7, "trainer1"), nil),
		mockCm.EXPECT().
			UpdateContent(gomock.Any(), commentID, "fixed").
			Return(nil),
	)

	require.NoError(t, svc.Update(context.Background(), userPrincipal(), commentID, "  fixed  "))
}

func TestUpdate_NotAuthor(t *testing.T) {
	svc, mockCm, mockRel, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	gomock.InOrder(
		mockCm.EXPECT().
			CommentByID(gomock.Any(), commentID).
			Return(&models.Comment{ID: commentID, MemberIdx: 7}, nil),
		mockRel.EXPECT().
			MemberBySubject(gomock.Any(), "trainer1").
			Return(testMember(8, "trainer1"), nil),
	)

	err := svc.Update(context.Background(), userPrincipal(), commentID, "fixed")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdate_DeletedIsImmutable(t *testing.T) {
	svc, mockCm, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockCm.EXPECT().
		CommentByID(gomock.Any(), commentID).
		Return(&models.Comment{ID: commentID, MemberIdx: 7, IsDeleted: true}, nil)

	err := svc.Update(context.Background(), userPrincipal(), commentID, "fixed")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_AdminSkipsOwnershipCheck(t *testing.T) {
	svc, mockCm, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// Администратор не разрешается в аккаунт, но комментарий обязан существовать.
	gomock.InOrder(
		mockCm.EXPECT().
			CommentByID(gomock.Any(), commentID).
			Return(&models.Comment{ID: commentID, MemberIdx: 7}, nil),
		mockCm.EXPECT().
			DeleteComment(gomock.Any(), commentID).
			Return(nil),
	)

	require.NoError(t, svc.Delete(context.Background(), adminPrincipal(), commentID))
}

func TestDelete_Author(t *testing.T) {
	svc, mockCm, mockRel, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	gomock.InOrder(
		mockCm.EXPECT().
			CommentByID(gomock.Any(), commentID).
			Return(&models.Comment{ID: commentID, MemberIdx: 7}, nil),
		mockRel.EXPECT().
			MemberBySubject(gomock.Any(), "trainer1").
			Return(testMember(7, "trainer1"), nil),
		mockCm.EXPECT().
			DeleteComment(gomock.Any(), commentID).
			Return(nil),
	)

	require.NoError(t, svc.Delete(context.Background(), userPrincipal(), commentID))
}

func TestDelete_CommentGone(t *testing.T) {
	svc, mockCm, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockCm.EXPECT().
		CommentByID(gomock.Any(), commentID).
		Return(nil, fmtWrap(storage.ErrNotFound))

	err := svc.Delete(context.Background(), adminPrincipal(), commentID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListRoots_OK(t *testing.T) {
	svc, mockCm, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	params := models.CommentListParams{PageSize: 20}
	mockCm.EXPECT().
		ListRoots(gomock.Any(), models.CommentTargetBoard, int64(10), params).
		Return(&models.CommentPage{Items: []models.Comment{{ID: commentID}}, NextPageToken: "tok"}, nil)

	page, err := svc.ListRoots(context.Background(), models.CommentTargetBoard, 10, params)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "tok", page.NextPageToken)
}

func TestListRoots_InvalidKind(t *testing.T) {
	svc, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := svc.ListRoots(context.Background(), "wiki", 10, models.CommentListParams{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestListRoots_InvalidCursor(t *testing.T) {
	svc, mockCm, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockCm.EXPECT().
		ListRoots(gomock.Any(), models.CommentTargetBoard, int64(10), gomock.Any()).
		Return(nil, fmtWrap(storage.ErrInvalidCursor))

	_, err := svc.ListRoots(context.Background(), models.CommentTargetBoard, 10, models.CommentListParams{PageToken: "garbage"})
	require.ErrorIs(t, err, ErrInvalidCursor)
}

func TestListReplies_OK(t *testing.T) {
	svc, mockCm, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	params := models.CommentListParams{PageSize: 10}
	mockCm.EXPECT().
		ListReplies(gomock.Any(), commentID, params).
		Return(&models.CommentPage{Items: []models.Comment{{ID: "64f000000000000000000002"}}}, nil)

	page, err := svc.ListReplies(context.Background(), commentID, params)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
}

func TestListReplies_ParentGone(t *testing.T) {
	svc, mockCm, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockCm.EXPECT().
		ListReplies(gomock.Any(), commentID, gomock.Any()).
		Return(nil, fmtWrap(storage.ErrNotFound))

	_, err := svc.ListReplies(context.Background(), commentID, models.CommentListParams{})
	require.ErrorIs(t, err, ErrNotFound)
}
