package memory

import (
	"errors"
	"sync"

	"pet-marketplace/internal/domain/auctions"
	"pet-marketplace/internal/domain/bids"
	"pet-marketplace/internal/domain/catalog"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
)

var ErrNotFound = errors.New("not found")

// Store comparte el estado entre repos para poder imitar la integridad
// referencial de postgres (cascadas y unicidad) en modo dev/tests.
type Store struct {
	mu sync.RWMutex

	users       map[string]users.User
	userIDbyNom map[string]string // username -> id
	tokens      map[string]users.Token

	categories map[string]catalog.Category
	tags       map[string]catalog.Tag

	pets map[string]pets.Pet

	auctions     map[string]auctions.Auction
	auctionByPet map[string]string // petID -> auctionID (unicidad 1:1)

	bids        map[string]bids.Bid
	bidByBidder map[string]string // auctionID+"/"+bidderID -> bidID (unicidad)
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]users.User),
		userIDbyNom:  make(map[string]string),
		tokens:       make(map[string]users.Token),
		categories:   make(map[string]catalog.Category),
		tags:         make(map[string]catalog.Tag),
		pets:         make(map[string]pets.Pet),
		auctions:     make(map[string]auctions.Auction),
		auctionByPet: make(map[string]string),
		bids:         make(map[string]bids.Bid),
		bidByBidder:  make(map[string]string),
	}
}

func bidKey(auctionID, bidderUserID string) string {
	return auctionID + "/" + bidderUserID
}

// deletePetLocked cascadea subasta y pujas. Requiere s.mu tomado en escritura.
func (s *Store) deletePetLocked(petID string) {
	if auctionID, ok := s.auctionByPet[petID]; ok {
		s.deleteAuctionLocked(auctionID)
	}
	delete(s.pets, petID)
}

// deleteAuctionLocked cascadea pujas. Requiere s.mu tomado en escritura.
func (s *Store) deleteAuctionLocked(auctionID string) {
	for id, b := range s.bids {
		if b.AuctionID == auctionID {
			delete(s.bidByBidder, bidKey(b.AuctionID, b.BidderUserID))
			delete(s.bids, id)
		}
	}
	if a, ok := s.auctions[auctionID]; ok {
		delete(s.auctionByPet, a.PetID)
	}
	delete(s.auctions, auctionID)
}
