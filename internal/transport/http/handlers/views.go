package handlers

import (
	"time"

	"github.com/mclhub/poke-board/internal/models"
)

// memberView — публичное представление профиля.
// Хэши пароля и refresh-токена наружу не отдаются.
type memberView struct {
	Idx       int64   `json:"idx"`
	Userid    string  `json:"userid"`
	Nickname  string  `json:"nickname"`
	Birth     *string `json:"birth,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Grade     int64   `json:"grade"`
	Provider  string  `json:"provider"`
}

func memberToView(m *models.Member) memberView {
	v := memberView{
		Idx:       m.Idx,
		Userid:    m.Userid,
		Nickname:  m.Nickname,
		AvatarURL: m.AvatarURL,
		Grade:     m.Grade,
		Provider:  m.Provider,
	}

	if m.Birth != nil {
		birth := m.Birth.Format("2006-01-02")
		v.Birth = &birth
	}

	return v
}

type boardView struct {
	Idx       int64            `json:"idx"`
	Type      models.BoardType `json:"board_type"`
	Title     string           `json:"title"`
	Content   string           `json:"content,omitempty"`
	Nickname  string           `json:"nickname"`
	Hit       int64            `json:"hit"`
	Recommend int64            `json:"recommend"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func boardToView(b *models.Board, withContent bool) boardView {
	v := boardView{
		Idx:       b.Idx,
		Type:      b.Type,
		Title:     b.Title,
		Nickname:  b.AuthorNickname,
		Hit:       b.Hit,
		Recommend: b.Recommend,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if withContent {
		v.Content = b.Content
	}

	return v
}

type boardPageView struct {
	Items      []boardView `json:"items"`
	TotalCount int64       `json:"total_count"`
}

func boardPageToView(p *models.BoardPage) boardPageView {
	out := boardPageView{
		Items:      make([]boardView, 0, len(p.Items)),
		TotalCount: p.TotalCount,
	}

	for i := range p.Items {
		out.Items = append(out.Items, boardToView(&p.Items[i], false))
	}

	return out
}

type sampleView struct {
	Idx         int64                   `json:"idx"`
	Nickname    string                  `json:"nickname"`
	PokemonIdx  int32                   `json:"pokemon_idx"`
	PokemonName string                  `json:"pokemon_name"`
	TeraType    string                  `json:"tera_type,omitempty"`
	Item        string                  `json:"item,omitempty"`
	Nature      string                  `json:"nature,omitempty"`
	Ability     string                  `json:"ability,omitempty"`
	IVs         string                  `json:"ivs,omitempty"`
	EVs         string                  `json:"evs,omitempty"`
	Moves       [4]string               `json:"moves"`
	Description string                  `json:"description,omitempty"`
	Visibility  models.SampleVisibility `json:"visibility"`
	LikeCount   int64                   `json:"like_count"`
	Hit         int64                   `json:"hit"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func sampleToView(s *models.PokeSample) sampleView {
	return sampleView{
		Idx:         s.Idx,
		Nickname:    s.AuthorNickname,
		PokemonIdx:  s.PokemonIdx,
		PokemonName: s.PokemonName,
		TeraType:    s.TeraType,
		Item:        s.Item,
		Nature:      s.Nature,
		Ability:     s.Ability,
		IVs:         s.IVs,
		EVs:         s.EVs,
		Moves:       s.Moves,
		Description: s.Description,
		Visibility:  s.Visibility,
		LikeCount:   s.LikeCount,
		Hit:         s.Hit,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type samplePageView struct {
	Items      []sampleView `json:"items"`
	TotalCount int64        `json:"total_count"`
}

func samplePageToView(p *models.SamplePage) samplePageView {
	out := samplePageView{
		Items:      make([]sampleView, 0, len(p.Items)),
		TotalCount: p.TotalCount,
	}

	for i := range p.Items {
		out.Items = append(out.Items, sampleToView(&p.Items[i]))
	}

	return out
}

// commentView — представление комментария; у удалённых текст маскируется.
type commentView struct {
	ID           string    `json:"id"`
	ParentID     string    `json:"parent_id,omitempty"`
	Nickname     string    `json:"nickname"`
	Content      string    `json:"content"`
	Level        int32     `json:"level"`
	RepliesCount int32     `json:"replies_count"`
	IsDeleted    bool      `json:"is_deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func commentToView(c *models.Comment) commentView {
	v := commentView{
		ID:           c.ID,
		ParentID:     c.ParentID,
		Nickname:     c.Nickname,
		Content:      c.Content,
		Level:        c.Level,
		RepliesCount: c.RepliesCount,
		IsDeleted:    c.IsDeleted,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	if c.IsDeleted {
		v.Content = "deleted comment"
	}

	return v
}

type commentPageView struct {
	Items         []commentView `json:"items"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

func commentPageToView(p *models.CommentPage) commentPageView {
	out := commentPageView{
		Items:         make([]commentView, 0, len(p.Items)),
		NextPageToken: p.NextPageToken,
	}

	for i := range p.Items {
		out.Items = append(out.Items, commentToView(&p.Items[i]))
	}

	return out
}
