package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRecorded = errors.New("recorded")

// recordingQuerier captures the statement and fails, so no rows are scanned.
type recordingQuerier struct {
	sql   string
	args  []any
	calls int
}

func (r *recordingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errRecorded
}

func (r *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.calls++
	r.sql, r.args = sql, args
	return nil, errRecorded
}

func (r *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func TestListAllWithReferencesQuery(t *testing.T) {
	q := &recordingQuerier{}
	_, err := New(q).ListAllWithReferences(context.Background())
	require.ErrorIs(t, err, errRecorded)

	assert.Contains(t, q.sql, "LEFT JOIN manufacturers m ON m.id = p.manufacturer_id")
	assert.Contains(t, q.sql, "LEFT JOIN categories c ON c.id = p.category_id")
	assert.Contains(t, q.sql, "m.country")
	assert.Contains(t, q.sql, "ORDER BY p.id")
	assert.Empty(t, q.args)
}

func TestSearchByKeywordsQuery(t *testing.T) {
	q := &recordingQuerier{}
	_, err := New(q).SearchByKeywords(context.Background(), []string{"яблоня", "100%", "a_b"})
	require.ErrorIs(t, err, errRecorded)

	assert.Contains(t, q.sql, "\n\t\tJOIN categories c ON c.id = p.category_id")
	assert.Contains(t, q.sql, "\n\t\tJOIN manufacturers m ON m.id = p.manufacturer_id")
	assert.NotContains(t, q.sql, "LEFT JOIN")
	assert.Contains(t, q.sql, "(p.name ILIKE $1 OR p.description ILIKE $1 OR c.name ILIKE $1 OR m.name ILIKE $1)")
	assert.Contains(t, q.sql, ") OR (p.name ILIKE $2")
	assert.Contains(t, q.sql, "ILIKE $3")
	assert.Contains(t, q.sql, "ORDER BY p.id")
	assert.Equal(t, []any{"%яблоня%", `%100\%%`, `%a\_b%`}, q.args)
}

func TestSearchByKeywordsWithoutWordsSkipsQuery(t *testing.T) {
	q := &recordingQuerier{}
	found, err := New(q).SearchByKeywords(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Zero(t, q.calls)
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"plain":   "plain",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
	}
	for in, want := range cases {
		assert.Equal(t, want, escapeLike(in), in)
	}
}
