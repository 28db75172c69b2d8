package mongo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/storage"
)

// commentDoc — bson-представление комментария. Имена полей фиксируем тегами,
// чтобы фильтры и индексы не зависели от умолчаний драйвера.
type commentDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	TargetKind   models.CommentTarget `bson:"target_kind"`
	TargetIdx    int64                `bson:"target_idx"`
	ParentID     string               `bson:"parent_id"`
	MemberIdx    int64                `bson:"member_idx"`
	Nickname     string               `bson:"nickname"`
	Content      string               `bson:"content"`
	Level        int32                `bson:"level"`
	RepliesCount int32                `bson:"replies_count"`
	IsDeleted    bool                 `bson:"is_deleted"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

func (d *commentDoc) toModel() models.Comment {
	return models.Comment{
		ID:           d.ID.Hex(),
		TargetKind:   d.TargetKind,
		TargetIdx:    d.TargetIdx,
		ParentID:     d.ParentID,
		MemberIdx:    d.MemberIdx,
		Nickname:     d.Nickname,
		Content:      d.Content,
		Level:        d.Level,
		RepliesCount: d.RepliesCount,
		IsDeleted:    d.IsDeleted,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// encodeCursor кодирует пару (created_at, _id) в непрозрачный токен для клиента.
func encodeCursor(t time.Time, id primitive.ObjectID) string {
	raw := fmt.Sprintf("%d|%s", t.UTC().UnixNano(), id.Hex())

	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodeCursor декодирует токен обратно в пару ключей.
func decodeCursor(token string) (time.Time, primitive.ObjectID, error) {
	res, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return time.Time{}, primitive.NilObjectID, err
	}

	parts := strings.SplitN(string(res), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("bad parts")
	}

	var nanos int64
	if _, err := fmt.Sscan(parts[0], &nanos); err != nil {
		return time.Time{}, primitive.NilObjectID, err
	}

	oid, err := primitive.ObjectIDFromHex(parts[1])
	if err != nil {
		return time.Time{}, primitive.NilObjectID, err
	}

	return time.Unix(0, nanos).UTC(), oid, nil
}

// limitOrDefault приводит запрошенный размер страницы к [Default, Max].
func (m *Mongo) limitOrDefault(pageSize int32) int64 {
	lim := pageSize
	if lim <= 0 {
		lim = m.limits.DefaultPageSize
	}

	if lim > m.limits.MaxPageSize {
		lim = m.limits.MaxPageSize
	}

	return int64(lim)
}

// CreateComment создаёт комментарий (корневой или ответ).
//   - У корня Level=0.
//   - У ответа target перенимается от родителя, Level = parent.Level + 1,
//     глубина проверяется по cfg.Limits.MaxCommentDepth.
//   - На родителе инкрементируется replies_count.
func (m *Mongo) CreateComment(ctx context.Context, comm models.Comment) (*models.Comment, error) {
	const op = "storage.mongo.CreateComment"

	// MongoDB DateTime хранит миллисекунды.
	toMS := func(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }
	now := toMS(time.Now())

	doc := commentDoc{
		TargetKind: comm.TargetKind,
		TargetIdx:  comm.TargetIdx,
		ParentID:   strings.TrimSpace(comm.ParentID),
		MemberIdx:  comm.MemberIdx,
		Nickname:   comm.Nickname,
		Content:    comm.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var parentOID primitive.ObjectID

	if doc.ParentID == "" {
		doc.Level = 0
	} else {
		oid, err := primitive.ObjectIDFromHex(doc.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
		}
		parentOID = oid

		var parent commentDoc
		if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: parentOID}}).Decode(&parent); err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
			}

			return nil, fmt.Errorf("%s: find parent: %w", op, err)
		}

		if parent.Level+1 > m.limits.MaxCommentDepth {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrMaxDepthExceeded)
		}

		// Цель дерева всегда как у родителя (защита от рассинхрона).
		doc.TargetKind = parent.TargetKind
		doc.TargetIdx = parent.TargetIdx
		doc.Level = parent.Level + 1
	}

	res, err := m.comments.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: inserted id type", op)
	}
	doc.ID = oid

	// Счётчик ответов правим по факту успешной вставки.
	if doc.ParentID != "" {
		_, _ = m.comments.UpdateByID(ctx, parentOID, bson.D{
			{Key: "$inc", Value: bson.D{{Key: "replies_count", Value: 1}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: toMS(time.Now())}}},
		})
	}

	out := doc.toModel()
	return &out, nil
}

// CommentByID возвращает комментарий по идентификатору.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage.mongo.CommentByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc commentDoc
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// UpdateContent меняет текст комментария. Удалённые не редактируются.
func (m *Mongo) UpdateContent(ctx context.Context, id, content string) error {
	const op = "storage.mongo.UpdateContent"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.comments.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "is_deleted", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "content", Value: content},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteComment помечает комментарий удалённым (мягкое удаление),
// текст затирается.
func (m *Mongo) DeleteComment(ctx context.Context, id string) error {
	const op = "storage.mongo.DeleteComment"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.comments.UpdateByID(ctx, oid, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "is_deleted", Value: true},
			{Key: "content", Value: ""},
			{Key: "updated_at", Value: time.Now().UTC()},
		}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListRoots возвращает страницу корневых комментариев цели (parent_id == "").
// Сортировка: created_at DESC, _id DESC.
// При некорректном page_token — storage.ErrInvalidCursor.
func (m *Mongo) ListRoots(ctx context.Context, kind models.CommentTarget, targetIdx int64, p models.CommentListParams) (*models.CommentPage, error) {
	const op = "storage.mongo.ListRoots"

	filter := bson.D{
		{Key: "target_kind", Value: kind},
		{Key: "target_idx", Value: targetIdx},
		{Key: "parent_id", Value: ""},
	}

	limit := m.limitOrDefault(p.PageSize)

	// limit+1: лишний документ сообщает, есть ли следующая страница.
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit + 1)

	// Курсор «меньше» для DESC-сортировки.
	if strings.TrimSpace(p.PageToken) != "" {
		t, oid, decErr := decodeCursor(p.PageToken)
		if decErr != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCursor)
		}

		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "created_at", Value: bson.D{{Key: "$lt", Value: t}}}},
			bson.D{
				{Key: "created_at", Value: t},
				{Key: "_id", Value: bson.D{{Key: "$lt", Value: oid}}},
			},
		}})
	}

	return m.listPage(ctx, op, filter, findOpts, limit)
}

// ListReplies возвращает страницу ответов одной ветки.
// Сортировка: created_at ASC, _id ASC — под постепенную подзагрузку.
// При некорректном page_token — storage.ErrInvalidCursor.
func (m *Mongo) ListReplies(ctx context.Context, parentID string, p models.CommentListParams) (*models.CommentPage, error) {
	const op = "storage.mongo.ListReplies"

	parentOID, err := primitive.ObjectIDFromHex(strings.TrimSpace(parentID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	filter := bson.D{
		{Key: "parent_id", Value: parentOID.Hex()},
	}

	limit := m.limitOrDefault(p.PageSize)

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(limit + 1)

	// Курсор «больше» для ASC-сортировки.
	if strings.TrimSpace(p.PageToken) != "" {
		t, oid, decErr := decodeCursor(p.PageToken)
		if decErr != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCursor)
		}

		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "created_at", Value: bson.D{{Key: "$gt", Value: t}}}},
			bson.D{
				{Key: "created_at", Value: t},
				{Key: "_id", Value: bson.D{{Key: "$gt", Value: oid}}},
			},
		}})
	}

	return m.listPage(ctx, op, filter, findOpts, limit)
}

// listPage читает до limit+1 документов: токен следующей страницы
// выдаётся только при наличии лишнего документа, последняя страница
// приходит с пустым токеном.
func (m *Mongo) listPage(ctx context.Context, op string, filter bson.D, findOpts *options.FindOptions, limit int64) (*models.CommentPage, error) {
	cur, err := m.comments.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var docs []commentDoc
	for cur.Next(ctx) {
		var doc commentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		docs = append(docs, doc)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	var next string
	if int64(len(docs)) > limit {
		docs = docs[:limit]
		last := docs[limit-1]
		next = encodeCursor(last.CreatedAt, last.ID)
	}

	items := make([]models.Comment, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toModel())
	}

	return &models.CommentPage{
		Items:         items,
		NextPageToken: next,
	}, nil
}

var _ storage.CommentStorage = (*Mongo)(nil)
