package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/travelplanner/internal/domain"
)

type WishlistRepository interface {
	Add(ctx context.Context, item *domain.WishlistItem) error
	ListByUser(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	Delete(ctx context.Context, userID, id string) error
}

type PGWishlistRepository struct {
	db DB
}

func NewWishlistRepository(db DB) WishlistRepository {
	return &PGWishlistRepository{db: db}
}

func (r *PGWishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) error {
	payload := []byte(item.Payload)
	if len(payload) == 0 {
		payload = []byte(`{}`)
	}
	err := r.db.QueryRow(ctx, `INSERT INTO wishlist_items (id, user_id, kind, ref_id, title, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		item.ID, item.UserID, item.Kind, item.RefID, item.Title, payload).
		Scan(&item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert wishlist item: %w", mapError(err))
	}
	return nil
}

func (r *PGWishlistRepository) ListByUser(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	rows, err := r.db.Query(ctx, `SELECT id::text, user_id, kind, ref_id, title, payload, created_at
		FROM wishlist_items WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	items := make([]domain.WishlistItem, 0)
	for rows.Next() {
		var (
			it      domain.WishlistItem
			payload []byte
		)
		if err := rows.Scan(&it.ID, &it.UserID, &it.Kind, &it.RefID, &it.Title, &payload, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("list wishlist: scan: %w", err)
		}
		it.Payload = payload
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGWishlistRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM wishlist_items WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete wishlist item: %w", domain.ErrNotFound)
	}
	return nil
}

var _ WishlistRepository = (*PGWishlistRepository)(nil)
