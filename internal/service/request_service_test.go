package service

import (
	"context"
	"testing"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRequest(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	requester := env.createUser(t, "requester")

	request, err := env.requests.SaveRequest(ctx, "need a drill", requester.ID)
	require.NoError(t, err)
	assert.NotZero(t, request.ID)
	assert.Equal(t, requester.ID, request.RequesterID)

	t.Run("unknown requester", func(t *testing.T) {
		_, err := env.requests.SaveRequest(ctx, "need a saw", 999)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestGetRequestsByRequesterWithItems(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	requester := env.createUser(t, "requester")
	owner := env.createUser(t, "owner")

	request, err := env.requests.SaveRequest(ctx, "need a drill", requester.ID)
	require.NoError(t, err)

	offered, err := env.items.SaveItem(ctx, &models.Item{
		Name:        "Drill",
		Description: "answers the request",
		Available:   true,
		OwnerID:     owner.ID,
		RequestID:   request.ID,
	})
	require.NoError(t, err)

	details, err := env.requests.GetRequestsByRequester(ctx, requester.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Len(t, details[0].Items, 1)
	assert.Equal(t, offered.ID, details[0].Items[0].ID)
}

func TestGetAllRequestsExcludesOwn(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.requests.SaveRequest(ctx, "mine", alice.ID)
	require.NoError(t, err)
	theirs, err := env.requests.SaveRequest(ctx, "theirs", bob.ID)
	require.NoError(t, err)

	details, err := env.requests.GetAllRequests(ctx, alice.ID, models.Pagination{From: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, theirs.ID, details[0].ID)
	assert.NotNil(t, details[0].Items)
}

func TestGetRequestByID(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	requester := env.createUser(t, "requester")
	viewer := env.createUser(t, "viewer")

	request, err := env.requests.SaveRequest(ctx, "need a drill", requester.ID)
	require.NoError(t, err)

	details, err := env.requests.GetRequestByID(ctx, request.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, request.ID, details.ID)
	assert.Empty(t, details.Items)

	t.Run("unknown viewer", func(t *testing.T) {
		_, err := env.requests.GetRequestByID(ctx, request.ID, 999)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := env.requests.GetRequestByID(ctx, 999, viewer.ID)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}
