package postgres

import (
	"context"
	"database/sql"

	"pet-marketplace/internal/domain/auctions"
)

type AuctionsRepo struct {
	db *sql.DB
}

func NewAuctionsRepo(db *sql.DB) *AuctionsRepo {
	return &AuctionsRepo{db: db}
}

// Create confía la unicidad 1:1 con la mascota a la constraint
// auctions_pet_id_key; dos creaciones concurrentes las arbitra postgres.
func (r *AuctionsRepo) Create(ctx context.Context, a auctions.Auction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO auctions (
			id, pet_id, start_price, start_date, end_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.PetID,
		a.StartPrice,
		a.StartDate,
		a.EndDate,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if isUniqueViolation(err, "auctions_pet_id_key") {
		return auctions.ErrPetAlreadyAuctioned
	}
	return err
}

func (r *AuctionsRepo) Update(ctx context.Context, a auctions.Auction) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE auctions
		SET
			start_price = $2,
			start_date = $3,
			end_date = $4,
			updated_at = $5
		WHERE id = $1
	`,
		a.ID,
		a.StartPrice,
		a.StartDate,
		a.EndDate,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AuctionsRepo) GetByID(ctx context.Context, id string) (auctions.Auction, error) {
	return r.getOne(ctx, `
		SELECT id, pet_id, start_price, start_date, end_date, created_at, updated_at
		FROM auctions WHERE id = $1
	`, id)
}

func (r *AuctionsRepo) GetByPetID(ctx context.Context, petID string) (auctions.Auction, error) {
	return r.getOne(ctx, `
		SELECT id, pet_id, start_price, start_date, end_date, created_at, updated_at
		FROM auctions WHERE pet_id = $1
	`, petID)
}

// ListByOwner junta contra pets porque la subasta no guarda dueño propio:
// el dueño es siempre el dueño actual de la mascota.
func (r *AuctionsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]auctions.Auction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.pet_id, a.start_price, a.start_date, a.end_date, a.created_at, a.updated_at
		FROM auctions a
		JOIN pets p ON p.id = a.pet_id
		WHERE p.owner_user_id = $1
		ORDER BY a.created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]auctions.Auction, 0)
	for rows.Next() {
		var a auctions.Auction
		if err := rows.Scan(&a.ID, &a.PetID, &a.StartPrice, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete cascadea las pujas vía FK ON DELETE CASCADE.
func (r *AuctionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM auctions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AuctionsRepo) getOne(ctx context.Context, query, arg string) (auctions.Auction, error) {
	var a auctions.Auction
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.PetID, &a.StartPrice, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return auctions.Auction{}, ErrNotFound
	}
	if err != nil {
		return auctions.Auction{}, err
	}
	return a, nil
}
