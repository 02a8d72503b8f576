package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthguard/healthguard-go/internal/model"
	"github.com/healthguard/healthguard-go/internal/repository"
)

func TestContacts_ReplaceAndList(t *testing.T) {
	svc := NewContactService(repository.NewMemoryStore())
	ctx := context.Background()

	none, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	first := []model.Contact{model.Contact(`{"name":"Bob","phone":"+100"}`), model.Contact(`{"name":"Cy","phone":"+200"}`)}
	require.NoError(t, svc.Replace(ctx, "u1", first))

	got, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := []model.Contact{model.Contact(`{"name":"Dee","email":"dee@x.com","relationship":"sister","priority":1}`)}
	require.NoError(t, svc.Replace(ctx, "u1", second))

	got, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second, got, "replace must not merge with the previous list")
}

func TestContacts_ReplaceWithEmptyClears(t *testing.T) {
	for _, empty := range [][]model.Contact{nil, {}} {
		svc := NewContactService(repository.NewMemoryStore())
		ctx := context.Background()

		require.NoError(t, svc.Replace(ctx, "u1", []model.Contact{model.Contact(`{"name":"Bob"}`)}))
		require.NoError(t, svc.Replace(ctx, "u1", empty))

		got, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestContacts_ListsArePerUser(t *testing.T) {
	svc := NewContactService(repository.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, svc.Replace(ctx, "u1", []model.Contact{model.Contact(`{"name":"Bob"}`)}))

	got, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, got)
}
