package models

import "time"

// CommentTarget — вид сущности, к которой прикреплено дерево комментариев.
type CommentTarget string

const (
	CommentTargetBoard  CommentTarget = "board"
	CommentTargetSample CommentTarget = "sample"
)

// Comment — комментарий в дереве (MongoDB).
//
//   - ID — hex ObjectID; ParentID — hex ObjectID родителя ("" у корня);
//   - TargetKind/TargetIdx — привязка к посту доски либо к сборке;
//   - Level — глубина (корень = 0), проверяется по cfg.Limits.MaxDepth;
//   - RepliesCount — число прямых ответов (для UI);
//   - IsDeleted — мягкое удаление, content маскируется при выдаче.
type Comment struct {
	ID           string
	TargetKind   CommentTarget
	TargetIdx    int64
	ParentID     string
	MemberIdx    int64
	Nickname     string
	Content      string
	Level        int32
	RepliesCount int32
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CommentListParams — параметры постраничной выдачи комментариев
// (курсорная модель: непрозрачный page_token).
type CommentListParams struct {
	PageSize  int32
	PageToken string
}

// CommentPage — страница комментариев.
type CommentPage struct {
	Items         []Comment
	NextPageToken string
}
