package core

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "scanner: scan failed"))

	err := WrapError(sql.ErrNoRows, "scanner: scan failed")
	assert.EqualError(t, err, "scanner: scan failed: sql: no rows in result set")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRegisterShape_WrapsError(t *testing.T) {
	db := mockDB("mysql")

	err := db.RegisterShape("count", 5)
	require.Error(t, err)
	assert.Equal(t, `scanner: shape "count": expected struct, got int`, err.Error())

	assert.EqualError(t, db.RegisterShape("nothing", nil), `scanner: shape "nothing": nil prototype`)
}

func TestScan_WrapsDriverError(t *testing.T) {
	type badAge struct {
		Age int `db:"name"`
	}
	db := setupTestDB(t)
	require.NoError(t, db.RegisterShape("bad", badAge{}))

	_, err := db.Builder().Select("name").From("user").ResultsAs(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanner: scan failed: ")

	var wrapped *wrappedError
	assert.True(t, errors.As(err, &wrapped))
}

func TestBlockedUnsafeMutationError(t *testing.T) {
	err := &BlockedUnsafeMutationError{Reason: NoCondition, SQL: "DELETE FROM `t` AS `t` WHERE "}
	assert.ErrorIs(t, err, ErrBlockedUnsafeMutation)
	assert.NotContains(t, err.Error(), "DELETE")
}
