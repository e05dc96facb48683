package bids

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Bid
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Bid{}}
}

func (r *testRepo) Create(ctx context.Context, b Bid) error {
	for _, existing := range r.byID {
		if existing.AuctionID == b.AuctionID && existing.BidderUserID == b.BidderUserID {
			return ErrAlreadyBid
		}
	}
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) Update(ctx context.Context, b Bid) error {
	if _, ok := r.byID[b.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Bid, error) {
	b, ok := r.byID[id]
	if !ok {
		return Bid{}, errRepoNotFound
	}
	return b, nil
}

func (r *testRepo) ExistsForBidder(ctx context.Context, auctionID, bidderUserID string) (bool, error) {
	for _, b := range r.byID {
		if b.AuctionID == auctionID && b.BidderUserID == bidderUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *testRepo) ListByAuction(ctx context.Context, auctionID string) ([]Bid, error) {
	out := make([]Bid, 0)
	for _, b := range r.byID {
		if b.AuctionID == auctionID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *testRepo) ListByBidder(ctx context.Context, bidderUserID string) ([]Bid, error) {
	out := make([]Bid, 0)
	for _, b := range r.byID {
		if b.BidderUserID == bidderUserID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *testRepo) CountByAuction(ctx context.Context, auctionID string) (int, error) {
	n := 0
	for _, b := range r.byID {
		if b.AuctionID == auctionID {
			n++
		}
	}
	return n, nil
}

// -------------------------
// Test auction lookup
// -------------------------

type testLookup struct {
	snapshots map[string]AuctionSnapshot
}

func (l *testLookup) AuctionSnapshot(ctx context.Context, auctionID string) (AuctionSnapshot, error) {
	s, ok := l.snapshots[auctionID]
	if !ok {
		return AuctionSnapshot{}, errRepoNotFound
	}
	return s, nil
}

func (l *testLookup) AuctionIDForPet(ctx context.Context, petID string) (string, bool, error) {
	for id, s := range l.snapshots {
		if s.PetID == petID {
			return id, true, nil
		}
	}
	return "", false, nil
}

// -------------------------
// Tests
// -------------------------

var testNow = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

func openSnapshot() AuctionSnapshot {
	return AuctionSnapshot{
		ID:             "auction-1",
		PetID:          "pet-1",
		PetOwnerID:     "owner-1",
		StartPrice:     100,
		EndDate:        testNow.Add(72 * time.Hour),
		PetStillListed: true,
	}
}

func newTestService(snap AuctionSnapshot) (*Service, *testRepo, *testLookup) {
	repo := newTestRepo()
	lookup := &testLookup{snapshots: map[string]AuctionSnapshot{snap.ID: snap}}
	svc := NewService(repo, lookup)
	svc.now = func() time.Time { return testNow }
	return svc, repo, lookup
}

func TestService_Place_OK(t *testing.T) {
	svc, _, _ := newTestService(openSnapshot())

	b, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 150})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if b.ID == "" || b.AuctionID != "auction-1" || b.Price != 150 {
		t.Fatalf("unexpected bid: %#v", b)
	}
	if b.CreatedAt != testNow || b.UpdatedAt != testNow {
		t.Fatalf("expected timestamps = now")
	}
}

func TestService_Place_UnknownAuction(t *testing.T) {
	svc, _, _ := newTestService(openSnapshot())

	_, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "nope", Price: 150})
	if err != ErrAuctionNotFound {
		t.Fatalf("expected ErrAuctionNotFound, got %v", err)
	}
}

func TestService_Place_OwnerCannotBid(t *testing.T) {
	// El chequeo de owner va primero: gana aunque la subasta también esté
	// cerrada y el precio sea bajo.
	snap := openSnapshot()
	snap.EndDate = testNow.Add(-time.Hour)
	svc, _, _ := newTestService(snap)

	_, err := svc.Place(context.Background(), "owner-1", PlaceInput{AuctionID: "auction-1", Price: 1})
	if err != ErrOwnBid {
		t.Fatalf("expected ErrOwnBid, got %v", err)
	}
}

func TestService_Place_PetNoLongerListed(t *testing.T) {
	snap := openSnapshot()
	snap.PetStillListed = false
	svc, _, _ := newTestService(snap)

	_, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 150})
	if err != ErrNoAuctionForPet {
		t.Fatalf("expected ErrNoAuctionForPet, got %v", err)
	}
}

func TestService_Place_AfterEndDate(t *testing.T) {
	snap := openSnapshot()
	snap.EndDate = testNow.Add(-time.Minute)
	svc, _, _ := newTestService(snap)

	_, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 150})
	if err != ErrAuctionClosed {
		t.Fatalf("expected ErrAuctionClosed, got %v", err)
	}
}

func TestService_Place_BeforeStartDateIsAccepted(t *testing.T) {
	// Solo se valida end_date: una puja anterior al inicio formal entra igual.
	// Comportamiento heredado del contrato original, no "arreglar".
	svc, _, _ := newTestService(openSnapshot())

	_, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 150})
	if err != nil {
		t.Fatalf("expected bid accepted before formal start, got %v", err)
	}
}

func TestService_Place_DuplicateBidder(t *testing.T) {
	svc, _, _ := newTestService(openSnapshot())

	if _, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 150}); err != nil {
		t.Fatalf("Place #1 error: %v", err)
	}
	_, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 200})
	if err != ErrAlreadyBid {
		t.Fatalf("expected ErrAlreadyBid, got %v", err)
	}
}

func TestService_Place_PriceBelowStart(t *testing.T) {
	svc, _, _ := newTestService(openSnapshot())

	_, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 99})
	if err != ErrPriceBelowStart {
		t.Fatalf("expected ErrPriceBelowStart, got %v", err)
	}
}

func TestService_Place_PriceEqualToStartIsAccepted(t *testing.T) {
	// El umbral es >= start_price, y cada puja compite solo contra start_price
	// (no contra la puja máxima actual). Contrato heredado.
	svc, _, _ := newTestService(openSnapshot())

	_, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 100})
	if err != nil {
		t.Fatalf("expected bid at start price accepted, got %v", err)
	}
}

func TestService_Amend_OK_OverwritesPrice(t *testing.T) {
	svc, repo, _ := newTestService(openSnapshot())

	b, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 150})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}

	later := testNow.Add(time.Hour)
	svc.now = func() time.Time { return later }

	amended, err := svc.Amend(context.Background(), "bidder-1", b.ID, 250)
	if err != nil {
		t.Fatalf("Amend error: %v", err)
	}
	if amended.Price != 250 {
		t.Fatalf("expected price 250, got %v", amended.Price)
	}
	if amended.UpdatedAt != later || amended.CreatedAt != testNow {
		t.Fatalf("expected UpdatedAt bumped and CreatedAt intact")
	}
	if repo.byID[b.ID].Price != 250 {
		t.Fatalf("expected price persisted in place, no history")
	}
}

func TestService_Amend_OnlyBidder(t *testing.T) {
	svc, _, _ := newTestService(openSnapshot())

	b, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 150})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}

	if _, err := svc.Amend(context.Background(), "someone-else", b.ID, 250); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Amend_ClosedAuction(t *testing.T) {
	svc, _, lookup := newTestService(openSnapshot())

	b, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 150})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}

	snap := lookup.snapshots["auction-1"]
	snap.EndDate = testNow.Add(-time.Minute)
	lookup.snapshots["auction-1"] = snap

	if _, err := svc.Amend(context.Background(), "bidder-1", b.ID, 250); err != ErrAuctionClosed {
		t.Fatalf("expected ErrAuctionClosed, got %v", err)
	}
}

func TestService_Amend_PriceBelowStart(t *testing.T) {
	svc, _, _ := newTestService(openSnapshot())

	b, err := svc.Place(context.Background(), "bidder-1", PlaceInput{AuctionID: "auction-1", Price: 150})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}

	if _, err := svc.Amend(context.Background(), "bidder-1", b.ID, 50); err != ErrPriceBelowStart {
		t.Fatalf("expected ErrPriceBelowStart, got %v", err)
	}
}

func TestService_ListForPet_NoAuctionMeansEmptyList(t *testing.T) {
	svc, _, _ := newTestService(openSnapshot())

	items, err := svc.ListForPet(context.Background(), "pet-without-auction")
	if err != nil {
		t.Fatalf("ListForPet error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}
}
