package mock

import (
	"context"

	"github.com/fwojciec/menuboard"
)

var _ menuboard.MenuStore = (*MenuStore)(nil)

// MenuStore is a mock implementation of menuboard.MenuStore.
type MenuStore struct {
	LoadFn func(ctx context.Context, brand menuboard.Brand) ([]*menuboard.MenuRecord, error)
	SaveFn func(ctx context.Context, brand menuboard.Brand, records []*menuboard.MenuRecord) error
}

func (s *MenuStore) Load(ctx context.Context, brand menuboard.Brand) ([]*menuboard.MenuRecord, error) {
	return s.LoadFn(ctx, brand)
}

func (s *MenuStore) Save(ctx context.Context, brand menuboard.Brand, records []*menuboard.MenuRecord) error {
	return s.SaveFn(ctx, brand, records)
}
