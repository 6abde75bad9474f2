package storage

import (
	"braindumpBackend/priority"
	"braindumpBackend/utils"
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type (
	// StatsReader derives item aggregates from the vote and comment rows.
	StatsReader interface {
		ItemStats(ctx context.Context, itemIds []string) (map[string]ItemStats, error)
		// UserVotes returns the priority the user voted for each of the items, if any.
		UserVotes(ctx context.Context, userId string, itemIds []string) (map[string]priority.Priority, error)
	}

	ItemStats struct {
		ItemId       string          `db:"item_id"`
		VoteCount    int             `db:"vote_count"`
		AvgPriority  sql.NullFloat64 `db:"avg_priority"`
		CommentCount int             `db:"comment_count"`
	}

	statsReader struct {
		db      *sqlx.DB
		builder sq.StatementBuilderType
	}
)

// CreateStatsReader shares the connection pool of the gorm database.
func CreateStatsReader(db *gorm.DB) (StatsReader, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	dialect := db.Dialector.Name()
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == "postgres" {
		placeholder = sq.Dollar
	}

	return createStatsReader(sqlx.NewDb(sqlDB, dialect), placeholder), nil
}

func createStatsReader(db *sqlx.DB, placeholder sq.PlaceholderFormat) *statsReader {
	return &statsReader{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

func (s ItemStats) Summary() priority.Summary {
	return priority.FromAverage(s.VoteCount, s.AvgPriority.Float64)
}

func (r *statsReader) ItemStats(ctx context.Context, itemIds []string) (map[string]ItemStats, error) {
	result := make(map[string]ItemStats, len(itemIds))
	if len(itemIds) == 0 {
		return result, nil
	}

	query, args, err := r.builder.
		Select(
			"i.id AS item_id",
			"COUNT(DISTINCT v.user_id) AS vote_count",
			"AVG(v.priority) AS avg_priority",
			"COUNT(DISTINCT c.id) AS comment_count",
		).
		From("items i").
		LeftJoin("votes v ON v.item_id = i.id").
		LeftJoin("comments c ON c.item_id = i.id").
		Where(sq.Eq{"i.id": itemIds}).
		GroupBy("i.id").
		ToSql()
	if err != nil {
		log.Errorf("[DB] Failed to build item stats query. Error: %s", err.Error())
		return nil, utils.ErrDatabaseError
	}

	rows := make([]ItemStats, 0, len(itemIds))
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		log.Errorf("[DB] Failed to read item stats. Error: %s", err.Error())
		return nil, utils.ErrDatabaseError
	}

	for _, row := range rows {
		result[row.ItemId] = row
	}

	return result, nil
}

func (r *statsReader) UserVotes(ctx context.Context, userId string, itemIds []string) (map[string]priority.Priority, error) {
	result := make(map[string]priority.Priority, len(itemIds))
	if len(itemIds) == 0 {
		return result, nil
	}

	query, args, err := r.builder.
		Select("item_id", "priority").
		From("votes").
		Where(sq.Eq{"user_id": userId, "item_id": itemIds}).
		ToSql()
	if err != nil {
		log.Errorf("[DB] Failed to build user votes query. Error: %s", err.Error())
		return nil, utils.ErrDatabaseError
	}

	var rows []struct {
		ItemId   string `db:"item_id"`
		Priority int    `db:"priority"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		log.Errorf("[DB] Failed to read user votes. Error: %s", err.Error())
		return nil, utils.ErrDatabaseError
	}

	for _, row := range rows {
		result[row.ItemId] = priority.Priority(row.Priority)
	}

	return result, nil
}
