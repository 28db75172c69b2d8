// Package authctx передаёт идентичность запроса (principal) через
// context.Context без глобального состояния.
package authctx

import (
	"context"

	"github.com/mclhub/poke-board/internal/models"
)

type ctxKey struct{}

// Into кладёт principal в контекст.
func Into(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// From возвращает principal запроса и признак его наличия.
// Отсутствие означает анонимный запрос.
func From(ctx context.Context) (*models.Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(*models.Principal)
	if !ok || p == nil {
		return nil, false
	}

	return p, true
}
