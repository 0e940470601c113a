package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

func (s *SQLiteStore) ListSocialSettings(ctx context.Context) ([]SocialSetting, error) {
	var settings []SocialSetting
	if err := s.db.SelectContext(ctx, &settings, "SELECT * FROM social_settings ORDER BY platform"); err != nil {
		return nil, fmt.Errorf("list social settings: %w", err)
	}
	return settings, nil
}

// UpsertSocialSetting inserts or replaces the row keyed by platform.
func (s *SQLiteStore) UpsertSocialSetting(ctx context.Context, ss *SocialSetting) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO social_settings (platform, url, handle, enabled, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(platform) DO UPDATE SET
			url = excluded.url,
			handle = excluded.handle,
			enabled = excluded.enabled,
			updated_at = excluded.updated_at
	`, ss.Platform, ss.URL, ss.Handle, ss.Enabled, now)
	if err != nil {
		return fmt.Errorf("upsert social setting %s: %w", ss.Platform, err)
	}
	ss.UpdatedAt = now
	return nil
}

func (s *SQLiteStore) ListSocialEmbeds(ctx context.Context) ([]SocialEmbed, error) {
	var embeds []SocialEmbed
	if err := s.db.SelectContext(ctx, &embeds, "SELECT * FROM social_embeds ORDER BY platform, sort_order"); err != nil {
		return nil, fmt.Errorf("list social embeds: %w", err)
	}
	return embeds, nil
}

func (s *SQLiteStore) CreateSocialEmbed(ctx context.Context, e *SocialEmbed) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO social_embeds (platform, embed_html, sort_order, created_at)
		VALUES (?, ?, ?, ?)
	`, e.Platform, e.EmbedHTML, e.SortOrder, now)
	if err != nil {
		return fmt.Errorf("create social embed: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	e.CreatedAt = now
	return nil
}

func (s *SQLiteStore) UpdateSocialEmbed(ctx context.Context, id int64, p SocialEmbedPatch) (*SocialEmbed, error) {
	var sets []string
	var args []any
	if p.Platform != nil {
		sets = append(sets, "platform = ?")
		args = append(args, *p.Platform)
	}
	if p.EmbedHTML != nil {
		sets = append(sets, "embed_html = ?")
		args = append(args, *p.EmbedHTML)
	}
	if p.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *p.SortOrder)
	}
	if len(sets) == 0 {
		return s.getSocialEmbed(ctx, id)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE social_embeds SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("update social embed %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.getSocialEmbed(ctx, id)
}

func (s *SQLiteStore) getSocialEmbed(ctx context.Context, id int64) (*SocialEmbed, error) {
	var e SocialEmbed
	err := s.db.GetContext(ctx, &e, "SELECT * FROM social_embeds WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get social embed %d: %w", id, err)
	}
	return &e, nil
}

func (s *SQLiteStore) DeleteSocialEmbed(ctx context.Context, id int64) (bool, error) {
	return s.deleteRow(ctx, "DELETE FROM social_embeds WHERE id = ?", id)
}

func (s *SQLiteStore) GetPageHeader(ctx context.Context, page string) (*PageHeader, error) {
	var h PageHeader
	err := s.db.GetContext(ctx, &h, "SELECT * FROM page_headers WHERE page = ?", page)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get page header %s: %w", page, err)
	}
	return &h, nil
}

func (s *SQLiteStore) ListPageHeaders(ctx context.Context) ([]PageHeader, error) {
	var headers []PageHeader
	if err := s.db.SelectContext(ctx, &headers, "SELECT * FROM page_headers ORDER BY page"); err != nil {
		return nil, fmt.Errorf("list page headers: %w", err)
	}
	return headers, nil
}

// UpsertPageHeader inserts or replaces the row keyed by page.
func (s *SQLiteStore) UpsertPageHeader(ctx context.Context, h *PageHeader) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO page_headers (page, title, subtitle, image, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(page) DO UPDATE SET
			title = excluded.title,
			subtitle = excluded.subtitle,
			image = excluded.image,
			updated_at = excluded.updated_at
	`, h.Page, h.Title, h.Subtitle, h.Image, now)
	if err != nil {
		return fmt.Errorf("upsert page header %s: %w", h.Page, err)
	}
	h.UpdatedAt = now
	return nil
}
