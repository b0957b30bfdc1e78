package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/menuboard"
	main "github.com/fwojciec/menuboard/cmd/menuboard"
	"github.com/fwojciec/menuboard/dedupe"
	"github.com/fwojciec/menuboard/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("renames the decaf duplicate and saves", func(t *testing.T) {
		t.Parallel()

		var saved []*menuboard.MenuRecord
		store := &mock.MenuStore{
			LoadFn: func(context.Context, menuboard.Brand) ([]*menuboard.MenuRecord, error) {
				return []*menuboard.MenuRecord{
					{Brand: menuboard.BrandEdiya, Name: "아메리카노", Nutrition: menuboard.Nutrition{{Key: "카페인", Value: "150mg"}}},
					{Brand: menuboard.BrandEdiya, Name: "아메리카노", Nutrition: menuboard.Nutrition{{Key: "카페인", Value: "5mg"}}},
				}, nil
			},
			SaveFn: func(_ context.Context, _ menuboard.Brand, records []*menuboard.MenuRecord) error {
				saved = records
				return nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Normalizer: dedupe.NewNormalizer(store, nil),
		}

		err := (&main.DedupeCmd{Brand: "ediya"}).Run(deps)

		require.NoError(t, err)
		require.Len(t, saved, 2)
		assert.Equal(t, "아메리카노", saved[0].Name)
		assert.Equal(t, "아메리카노 (디카페인)", saved[1].Name)
		assert.Contains(t, stdout.String(), "renamed 1 items in 1 duplicate groups")
	})

	t.Run("reports a missing menu file", func(t *testing.T) {
		t.Parallel()

		store := &mock.MenuStore{
			LoadFn: func(context.Context, menuboard.Brand) ([]*menuboard.MenuRecord, error) {
				return nil, menuboard.Errorf(menuboard.ENOTFOUND, "menu file data/ediya_menu.json not found")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Normalizer: dedupe.NewNormalizer(store, nil),
		}

		err := (&main.DedupeCmd{Brand: "ediya"}).Run(deps)

		assert.Equal(t, menuboard.ENOTFOUND, menuboard.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no Ediya menu to normalize")
	})
}
