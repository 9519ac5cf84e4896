package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/domain"
)

type requestDataKey struct{}

// RequestData carries the authenticated caller and the client origin of the
// current request.
type RequestData struct {
	UserID      uuid.UUID
	Username    string
	Role        domain.Role
	Origin      string
	TokenString string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// Origin returns the client origin recorded for ctx, or "".
func Origin(ctx context.Context) string {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.Origin
	}
	return ""
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
