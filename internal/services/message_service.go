package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/serverup/serverup-be/internal/models"
)

// MessageServiceProvider defines the interface for message services.
type MessageServiceProvider interface {
	Create(name, text, userID, username string) (models.Message, error)
	GetAll(search, username string) ([]models.Message, error)
	Delete(id, userID string) error
}

// MessageService provides business logic for the guestbook message board.
type MessageService struct {
	db *sql.DB
}

// NewMessageService creates a new MessageService.
func NewMessageService(db *sql.DB) *MessageService {
	return &MessageService{db: db}
}

// Create persists a new message owned by the given user.
func (s *MessageService) Create(name, text, userID, username string) (models.Message, error) {
	msg := models.Message{
		ID:        uuid.New().String(),
		Name:      name,
		Message:   text,
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO messages(id, name, message, user_id, username, created_at) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Message{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(msg.ID, msg.Name, msg.Message, msg.UserID, msg.Username, formatStoredTime(msg.CreatedAt))
	if err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// GetAll retrieves messages newest-first. search filters on a
// case-insensitive substring match against the name and message fields;
// username filters on the exact owner username. Either may be empty.
func (s *MessageService) GetAll(search, username string) ([]models.Message, error) {
	query := "SELECT id, name, message, user_id, username, created_at FROM messages"
	var conds []string
	var args []interface{}

	if search != "" {
		conds = append(conds, "(LOWER(name) LIKE ? OR LOWER(message) LIKE ?)")
		pattern := "%" + strings.ToLower(search) + "%"
		args = append(args, pattern, pattern)
	}
	if username != "" {
		conds = append(conds, "username = ?")
		args = append(args, username)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Empty result is an empty array on the wire, not null.
	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		var createdAt string
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Message, &msg.UserID, &msg.Username, &createdAt); err != nil {
			return nil, err
		}
		if msg.CreatedAt, err = parseStoredTime(createdAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// Delete removes a message, but only when it is owned by the given user.
// A missing record and an ownership mismatch are both reported as
// ErrNotFound.
func (s *MessageService) Delete(id, userID string) error {
	res, err := s.db.Exec("DELETE FROM messages WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
