package postgres

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")

	assert.Equal(t, domain.ErrUserNotFound, mapError(pgx.ErrNoRows, domain.ErrUserNotFound))
	assert.Equal(t, domain.ErrUserNotFound, mapError(fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrUserNotFound))
	assert.Equal(t, domain.ErrConflict, mapError(&pgconn.PgError{Code: "23505"}, domain.ErrUserNotFound))
	assert.Equal(t, other, mapError(other, domain.ErrUserNotFound))
}

func TestAffected(t *testing.T) {
	assert.NoError(t, affected(1, nil, domain.ErrProductNotFound, "update product"))
	assert.ErrorIs(t, affected(0, nil, domain.ErrProductNotFound, "update product"), domain.ErrProductNotFound)
	assert.ErrorIs(t, affected(0, &pgconn.PgError{Code: "23505"}, domain.ErrProductNotFound, "update product"), domain.ErrConflict)

	err := affected(0, errors.New("boom"), domain.ErrProductNotFound, "update product")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update product")
}

func TestLimitOffset(t *testing.T) {
	limit, offset := limitOffset(domain.Page{Limit: 20, Offset: 40})
	assert.Equal(t, int32(20), limit)
	assert.Equal(t, int32(40), offset)

	limit, _ = limitOffset(domain.Page{})
	assert.Equal(t, int32(math.MaxInt32), limit)

	_, offset = limitOffset(domain.Page{Limit: 100, Offset: math.MaxInt32 + 10})
	assert.Equal(t, int32(math.MaxInt32), offset)
	_, offset = limitOffset(domain.Page{Limit: 100, Offset: -8})
	assert.Equal(t, int32(0), offset)
}

func TestIsOutOfRange(t *testing.T) {
	assert.True(t, isOutOfRange(fmt.Errorf("credit: %w", &pgconn.PgError{Code: "22003"})))
	assert.False(t, isOutOfRange(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isOutOfRange(errors.New("boom")))
}

func TestNullableConversions(t *testing.T) {
	assert.False(t, nullableTimestamptz(nil).Valid)
	now := time.Now().UTC()
	assert.Equal(t, now, *timePtr(nullableTimestamptz(&now)))

	assert.False(t, textToPgType(nil).Valid)
	s := "a@example.com"
	assert.Equal(t, s, *textPtr(textToPgType(&s)))
	assert.False(t, optionalText("").Valid)

	assert.Nil(t, uuidPtr(nullUUID(nil)))
	id := uuid.New()
	assert.Equal(t, id, *uuidPtr(nullUUID(&id)))
}

func TestJSONColumns(t *testing.T) {
	b, err := marshalJSON(nil)
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = marshalJSON(map[string]any{"credits_added": 5})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"credits_added": float64(5)}, unmarshalJSON(b))
	assert.Nil(t, unmarshalJSON([]byte("not json")))
}
