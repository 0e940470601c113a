package store

import (
	"context"
	"fmt"
	"time"
)

func (s *SQLiteStore) ListContactSubmissions(ctx context.Context) ([]ContactSubmission, error) {
	var subs []ContactSubmission
	if err := s.db.SelectContext(ctx, &subs, `SELECT * FROM contact_submissions ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	return subs, nil
}

func (s *SQLiteStore) CreateContactSubmission(ctx context.Context, c *ContactSubmission) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (name, email, message, read, created_at)
		VALUES (?, ?, ?, 0, ?)
	`, c.Name, c.Email, c.Message, now)
	if err != nil {
		return fmt.Errorf("create contact submission: %w", err)
	}
	c.ID, _ = res.LastInsertId()
	c.Read = 0
	c.CreatedAt = now
	return nil
}

func (s *SQLiteStore) MarkContactRead(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE contact_submissions SET read = 1 WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("mark contact read %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) DeleteContactSubmission(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "DELETE FROM contact_submissions WHERE id = ?", id)
}
