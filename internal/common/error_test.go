package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorIs(t *testing.T) {
	err := NewError(ErrCodeDatabaseQuery, "query failed", StatusInternalServerError, nil)
	assert.False(t, errors.Is(err, ErrNotFound))

	wrapped := fmt.Errorf("outer: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

// ErrNotFound và ErrDuplicate dùng chung mã DB_002, phân biệt qua status code.
func TestErrorIsDistinguishesNotFoundAndDuplicate(t *testing.T) {
	assert.False(t, errors.Is(ErrDuplicate, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrDuplicate))

	notFound := NewError(ErrCodeDatabaseQuery, MsgNotFound, StatusNotFound, nil)
	assert.True(t, errors.Is(notFound, ErrNotFound))
	assert.False(t, errors.Is(notFound, ErrDuplicate))

	conflict := ConvertMongoError(mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: `E11000 duplicate key error collection: db.bots index: slug_1 dup key: { slug: "chatgpt" }`},
		},
	})
	assert.True(t, errors.Is(conflict, ErrDuplicate))
	assert.False(t, errors.Is(conflict, ErrNotFound))
}

func TestConvertMongoErrorNoDocuments(t *testing.T) {
	converted := ConvertMongoError(mongo.ErrNoDocuments)
	var appErr *Error
	require.True(t, errors.As(converted, &appErr))
	assert.Equal(t, StatusNotFound, appErr.StatusCode)
}

func TestConvertMongoErrorKeepsAppError(t *testing.T) {
	orig := NewError(ErrCodeValidationInput, MsgValidationError, StatusBadRequest, nil)
	converted := ConvertMongoError(orig)
	assert.Same(t, orig, converted.(*Error))
}

func TestConvertMongoErrorDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{
				Code:    11000,
				Message: `E11000 duplicate key error collection: db.bots index: slug_1 dup key: { slug: "chatgpt" }`,
			},
		},
	}
	converted := ConvertMongoError(dup)
	var appErr *Error
	require.True(t, errors.As(converted, &appErr))
	assert.Equal(t, StatusConflict, appErr.StatusCode)
	assert.Equal(t, "slug_1", appErr.Details["index"])
	assert.Equal(t, "slug", appErr.Details["field"])
	assert.Equal(t, "chatgpt", appErr.Details["value"])
}

func TestConvertMongoErrorNil(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil))
}
