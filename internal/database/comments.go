package database

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/models"
)

const commentColumns = `c.id, c.item_id, c.author_id, u.name, c.text, c.created_at`

const commentJoins = `FROM comments c JOIN users u ON u.id = c.author_id`

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (item_id, author_id, text, created_at) VALUES (?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, comment.ItemID, comment.AuthorID, comment.Text, now)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	comment.CreatedAt = now
	return nil
}

func (db *DB) GetCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` ` + commentJoins +
		` WHERE c.item_id = ? ORDER BY c.created_at DESC, c.id DESC`
	return db.queryComments(ctx, query, itemID)
}

// GetCommentsByItems возвращает отзывы по всем вещам одной выборкой.
func (db *DB) GetCommentsByItems(ctx context.Context, itemIDs []int64) (map[int64][]models.Comment, error) {
	result := make(map[int64][]models.Comment)
	if len(itemIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + commentColumns + ` ` + commentJoins +
		` WHERE c.item_id IN (` + placeholders(len(itemIDs)) + `)
          ORDER BY c.created_at DESC, c.id DESC`

	comments, err := db.queryComments(ctx, query, int64Args(itemIDs)...)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		result[c.ItemID] = append(result[c.ItemID], c)
	}
	return result, nil
}

func (db *DB) queryComments(ctx context.Context, query string, args ...interface{}) ([]models.Comment, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	return comments, nil
}
