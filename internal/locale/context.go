package locale

import (
	"context"

	"google.golang.org/grpc/metadata"
)

type ctxKey struct{}

// MetadataKeys are checked in order for the caller's preferred language.
var MetadataKeys = []string{"x-locale", "accept-language"}

func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// GetLocale returns the language stored by WithLocale, falling back to the
// incoming gRPC metadata. Empty means no preference.
func GetLocale(ctx context.Context) string {
	if val, ok := ctx.Value(ctxKey{}).(string); ok {
		return val
	}
	return FromMetadata(ctx)
}

func FromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, key := range MetadataKeys {
		if val := md.Get(key); len(val) > 0 && val[0] != "" {
			return val[0]
		}
	}
	return ""
}
