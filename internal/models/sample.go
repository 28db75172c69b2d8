package models

import "time"

// SampleVisibility — видимость сборки.
type SampleVisibility string

const (
	SamplePublic  SampleVisibility = "PUBLIC"
	SamplePrivate SampleVisibility = "PRIVATE"
)

// PokeSample — опубликованная сборка покемона.
type PokeSample struct {
	Idx       int64
	MemberIdx int64
	// AuthorNickname — денормализованное имя автора для списков.
	AuthorNickname string
	// PokemonIdx — номер в национальном покедексе.
	PokemonIdx int32
	// PokemonName — имя для поиска.
	PokemonName string
	TeraType    string
	Item        string
	Nature      string
	Ability     string
	// IVs/EVs — строки формата "31/31/31/x/31/31" и "252/0/4/0/0/252".
	IVs   string
	EVs   string
	Moves [4]string
	// Description — текст с описанием применения.
	Description string
	Visibility  SampleVisibility
	// LikeCount — кэшируемый счётчик лайков.
	LikeCount int64
	Hit       int64
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SamplePage — страница сборок.
type SamplePage struct {
	Items      []PokeSample
	TotalCount int64
}
