package api

import (
	"net/http/httptest"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIDFromHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/items", nil)
	_, err := userIDFromHeader(r)
	assert.Error(t, err)

	r.Header.Set(HeaderUserID, "abc")
	_, err = userIDFromHeader(r)
	assert.Error(t, err)

	r.Header.Set(HeaderUserID, "-5")
	_, err = userIDFromHeader(r)
	assert.Error(t, err)

	r.Header.Set(HeaderUserID, "42")
	id, err := userIDFromHeader(r)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestPaginationFromQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/bookings", nil)
		p, err := paginationFromQuery(r)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultPaginationFrom, p.From)
		assert.Equal(t, models.DefaultPaginationSize, p.Size)
	})

	t.Run("explicit", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/bookings?from=20&size=5", nil)
		p, err := paginationFromQuery(r)
		require.NoError(t, err)
		assert.Equal(t, 20, p.From)
		assert.Equal(t, 5, p.Size)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, query := range []string{"from=-1", "size=0", "size=-3", "from=abc", "size=abc"} {
			r := httptest.NewRequest("GET", "/bookings?"+query, nil)
			_, err := paginationFromQuery(r)
			assert.Error(t, err, query)
		}
	})
}

func TestStateFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/bookings", nil)
	state, err := stateFromQuery(r)
	require.NoError(t, err)
	assert.Equal(t, models.StateAll, state)

	r = httptest.NewRequest("GET", "/bookings?state=WAITING", nil)
	state, err = stateFromQuery(r)
	require.NoError(t, err)
	assert.Equal(t, models.StateWaiting, state)

	r = httptest.NewRequest("GET", "/bookings?state=bogus", nil)
	_, err = stateFromQuery(r)
	assert.ErrorIs(t, err, models.ErrUnsupportedState)
}
