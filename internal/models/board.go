package models

import "time"

// BoardType — раздел доски.
type BoardType string

const (
	// BoardNotice — объявления (создание только для администраторов).
	BoardNotice BoardType = "NOTICE"
	// BoardFree — свободная доска.
	BoardFree BoardType = "FREE"
)

// Valid сообщает, известен ли раздел.
func (t BoardType) Valid() bool {
	return t == BoardNotice || t == BoardFree
}

// Board — пост на доске.
type Board struct {
	Idx       int64
	MemberIdx int64
	// AuthorNickname — денормализованное имя автора для списков.
	AuthorNickname string
	Type           BoardType
	Title          string
	Content        string
	// Hit — счётчик просмотров (инкремент при чтении деталей).
	Hit int64
	// Recommend — счётчик рекомендаций (toggle).
	Recommend int64
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListParams — параметры постраничной выдачи (offset-модель, как в оригинале).
type ListParams struct {
	Page int32
	Size int32
}

// BoardPage — страница постов.
type BoardPage struct {
	Items      []Board
	TotalCount int64
}
