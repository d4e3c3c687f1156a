package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForceType(t *testing.T) {
	db := mockDB("mysql")

	tests := []struct {
		name  string
		value any
		typ   ColumnType
		want  string
	}{
		{"string", "O'Hara", TypeString, `'O\'Hara'`},
		{"string from int", 12, TypeString, "'12'"},
		{"int", 12, TypeInt, "12"},
		{"int from string", "12px", TypeInt, "12"},
		{"int from negative string", " -7 ", TypeInt, "-7"},
		{"int from float", 9.99, TypeInt, "9"},
		{"int from garbage", "x", TypeInt, "0"},
		{"float", 1.5, TypeFloat, "1.5"},
		{"float from string", "2.25kg", TypeFloat, "2.25"},
		{"bool true", true, TypeBool, "1"},
		{"bool false", false, TypeBool, "0"},
		{"bool from string", "true", TypeBool, "1"},
		{"null", "ignored", TypeNull, "NULL"},
		{"nil string", nil, TypeString, "NULL"},
		{"nil int", nil, TypeInt, "NULL"},
		{"raw", "NOW()", TypeRaw, "NOW()"},
		{"raw nil", nil, TypeRaw, ""},
		{"bytes", []byte("a'b"), TypeString, `'a\'b'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.ForceType(tt.value, tt.typ))
		})
	}
}

func TestForceType_SQLite(t *testing.T) {
	db := mockDB("sqlite")
	assert.Equal(t, "'O''Hara'", db.ForceType("O'Hara", TypeString))
	assert.Equal(t, `'back\slash'`, db.ForceType(`back\slash`, TypeString))
}

func TestColumnType_String(t *testing.T) {
	assert.Equal(t, "string", TypeString.String())
	assert.Equal(t, "raw", TypeRaw.String())
	assert.Equal(t, "ColumnType(9)", ColumnType(9).String())
	assert.True(t, TypeNull.Valid())
	assert.False(t, ColumnType(-1).Valid())
}

func TestColumnConstructors(t *testing.T) {
	assert.Equal(t, Column{Name: "a", Value: 1, Type: TypeInt}, Int("a", 1))
	assert.Equal(t, Column{Name: "a", Value: "x", Type: TypeString}, Str("a", "x"))
	assert.Equal(t, Column{Name: "a", Value: "NOW()", Type: TypeRaw}, Raw("a", "NOW()"))
	assert.Equal(t, Column{Name: "a", Value: 1.5, Type: TypeFloat}, NewColumn("a", 1.5, TypeFloat))
}

func TestTableName(t *testing.T) {
	db := mockDB("mysql", WithPrefix("wp_"))
	assert.Equal(t, "`wp_post` AS `post`", db.TableName("post", true))
	assert.Equal(t, "`wp_post`", db.TableName("post", false))

	db = mockDB("mysql")
	assert.Equal(t, "`post` AS `post`", db.TableName("post", true))
}
