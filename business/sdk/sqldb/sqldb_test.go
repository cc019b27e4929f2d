package sqldb

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func Test_QueryString(t *testing.T) {
	const q = `
	SELECT
		offer_id
	FROM
		partner_offer
	WHERE
		title = :title AND price = :price`

	data := struct {
		Title string `db:"title"`
		Price int64  `db:"price"`
	}{
		Title: "Office 365",
		Price: 1200,
	}

	got := queryString(q, data)
	assert.Equal(t, "SELECT offer_id FROM partner_offer WHERE title = 'Office 365' AND price = 1200", got)
}

func Test_MapError(t *testing.T) {
	dup := mapError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "partner_offer_pkey"})

	var dupErr ErrDBDuplicatedEntry
	assert.True(t, errors.As(dup, &dupErr))
	assert.Equal(t, "partner_offer_pkey", dupErr.Column)

	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: undefinedTable}), ErrUndefinedTable)

	other := errors.New("other")
	assert.Equal(t, other, mapError(other))
}
