package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidal/agenda/internal/app/models"
)

// MessageRepository handles database operations for internal messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		db: db,
	}
}

// Create inserts a new unread message row
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (to_user_id, from_user_id, subject, content, created_at, read)
		VALUES ($1, $2, $3, $4, NOW(), FALSE)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.ToUserID,
		message.FromUserID,
		message.Subject,
		message.Content,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating message: %w", err)
	}

	message.Read = false
	return message.ID, nil
}

// ListForUser retrieves a recipient's messages, newest first
func (r *MessageRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Message, error) {
	query := `
		SELECT id, to_user_id, from_user_id, subject, content, created_at, read
		FROM messages
		WHERE to_user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(
			&message.ID,
			&message.ToUserID,
			&message.FromUserID,
			&message.Subject,
			&message.Content,
			&message.CreatedAt,
			&message.Read,
		); err != nil {
			return nil, err
		}
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// CountUnreadForUser returns the number of unread messages for a recipient
func (r *MessageRepository) CountUnreadForUser(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE to_user_id = $1 AND read = FALSE`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unread messages: %w", err)
	}
	return count, nil
}

// MarkRead sets the read flag on a message. Marking an already-read message
// is a no-op. Returns whether a message with the given id exists.
func (r *MessageRepository) MarkRead(ctx context.Context, messageID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE messages SET read = TRUE WHERE id = $1`, messageID)
	if err != nil {
		return false, fmt.Errorf("error marking message read: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
