package postgres

import (
	"context"
	"database/sql"

	"pet-marketplace/internal/domain/bids"
)

type BidsRepo struct {
	db *sql.DB
}

func NewBidsRepo(db *sql.DB) *BidsRepo {
	return &BidsRepo{db: db}
}

// Create es insert-or-fail: la constraint bids_auction_bidder_key arbitra
// la carrera entre dos pujas del mismo usuario.
func (r *BidsRepo) Create(ctx context.Context, b bids.Bid) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bids (
			id, auction_id, bidder_user_id, price, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		b.ID,
		b.AuctionID,
		b.BidderUserID,
		b.Price,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if isUniqueViolation(err, "bids_auction_bidder_key") {
		return bids.ErrAlreadyBid
	}
	return err
}

func (r *BidsRepo) Update(ctx context.Context, b bids.Bid) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bids
		SET price = $2, updated_at = $3
		WHERE id = $1
	`, b.ID, b.Price, b.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BidsRepo) GetByID(ctx context.Context, id string) (bids.Bid, error) {
	var b bids.Bid
	err := r.db.QueryRowContext(ctx, `
		SELECT id, auction_id, bidder_user_id, price, created_at, updated_at
		FROM bids WHERE id = $1
	`, id).Scan(&b.ID, &b.AuctionID, &b.BidderUserID, &b.Price, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return bids.Bid{}, ErrNotFound
	}
	if err != nil {
		return bids.Bid{}, err
	}
	return b, nil
}

func (r *BidsRepo) ExistsForBidder(ctx context.Context, auctionID, bidderUserID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bids WHERE auction_id = $1 AND bidder_user_id = $2
		)
	`, auctionID, bidderUserID).Scan(&exists)
	return exists, err
}

func (r *BidsRepo) ListByAuction(ctx context.Context, auctionID string) ([]bids.Bid, error) {
	return r.list(ctx, `
		SELECT id, auction_id, bidder_user_id, price, created_at, updated_at
		FROM bids WHERE auction_id = $1
		ORDER BY created_at ASC
	`, auctionID)
}

func (r *BidsRepo) ListByBidder(ctx context.Context, bidderUserID string) ([]bids.Bid, error) {
	return r.list(ctx, `
		SELECT id, auction_id, bidder_user_id, price, created_at, updated_at
		FROM bids WHERE bidder_user_id = $1
		ORDER BY created_at ASC
	`, bidderUserID)
}

func (r *BidsRepo) CountByAuction(ctx context.Context, auctionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bids WHERE auction_id = $1
	`, auctionID).Scan(&n)
	return n, err
}

func (r *BidsRepo) list(ctx context.Context, query string, args ...any) ([]bids.Bid, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]bids.Bid, 0)
	for rows.Next() {
		var b bids.Bid
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.BidderUserID, &b.Price, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
