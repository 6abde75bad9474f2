package storage

import (
	"braindumpBackend/priority"
	"braindumpBackend/utils"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsQuery = `SELECT i.id AS item_id, (.+) FROM items i LEFT JOIN votes v ON v.item_id = i.id LEFT JOIN comments c ON c.item_id = i.id WHERE i.id IN \(\$1,\$2\) GROUP BY i.id`

func createMockReader(t *testing.T) (*statsReader, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return createStatsReader(sqlx.NewDb(db, "sqlmock"), sq.Dollar), mock
}

func TestItemStats(t *testing.T) {
	reader, mock := createMockReader(t)

	mock.ExpectQuery(statsQuery).
		WithArgs("item-a", "item-b").
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "vote_count", "avg_priority", "comment_count"}).
			AddRow("item-a", 2, 2.5, 1).
			AddRow("item-b", 0, nil, 0))

	stats, err := reader.ItemStats(context.Background(), []string{"item-a", "item-b"})
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, 2, stats["item-a"].VoteCount)
	assert.Equal(t, 1, stats["item-a"].CommentCount)
	assert.Equal(t, priority.Summary{VoteCount: 2, Score: 2.5, Label: priority.High}, stats["item-a"].Summary())

	assert.False(t, stats["item-b"].AvgPriority.Valid)
	assert.Equal(t, priority.Summary{VoteCount: 0, Score: 2, Label: priority.Medium}, stats["item-b"].Summary())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemStats_NoIdsSkipsQuery(t *testing.T) {
	reader, mock := createMockReader(t)

	stats, err := reader.ItemStats(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, stats)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemStats_HidesDriverErrors(t *testing.T) {
	reader, mock := createMockReader(t)

	mock.ExpectQuery(statsQuery).
		WithArgs("item-a", "item-b").
		WillReturnError(errors.New("connection reset by peer"))

	_, err := reader.ItemStats(context.Background(), []string{"item-a", "item-b"})
	assert.ErrorIs(t, err, utils.ErrDatabaseError)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserVotes(t *testing.T) {
	reader, mock := createMockReader(t)

	mock.ExpectQuery(`SELECT item_id, priority FROM votes WHERE (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "priority"}).
			AddRow("item-a", 3))

	votes, err := reader.UserVotes(context.Background(), "user-1", []string{"item-a", "item-b"})
	require.NoError(t, err)

	assert.Equal(t, map[string]priority.Priority{"item-a": priority.High}, votes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStatsReader_SqlitePlaceholders(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)

	reader, err := CreateStatsReader(db)
	require.NoError(t, err)

	query, args, err := reader.(*statsReader).builder.
		Select("item_id").
		From("votes").
		Where(sq.Eq{"user_id": "user-1"}).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT item_id FROM votes WHERE user_id = ?", query)
	assert.Equal(t, []any{"user-1"}, args)
}
