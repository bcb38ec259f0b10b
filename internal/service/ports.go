package service

import "context"

// MenuCache stores serialized menu listings. A miss is (nil, false, nil).
type MenuCache interface {
	GetMenu(ctx context.Context, key string) ([]byte, bool, error)
	SetMenu(ctx context.Context, key string, data []byte) error
	InvalidateMenu(ctx context.Context) error
}
