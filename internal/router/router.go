package router

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	_ "pet-marketplace/docs"
	"pet-marketplace/internal/adapters/auth/token"
	mem "pet-marketplace/internal/adapters/storage/memory"
	pg "pet-marketplace/internal/adapters/storage/postgres"
	"pet-marketplace/internal/domain/auctions"
	"pet-marketplace/internal/domain/bids"
	"pet-marketplace/internal/domain/catalog"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// DevAuth desactiva la verificación de tokens: el middleware acepta
	// X-Debug-User-ID. Solo para dev y tests.
	DevAuth bool

	TokenTTL time.Duration

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	var (
		usersRepo    users.Repository
		tokensRepo   users.TokenRepository
		catalogRepo  catalog.Repository
		petsRepo     pets.Repository
		auctionsRepo auctions.Repository
		bidsRepo     bids.Repository
	)

	if opts.DB != nil {
		usersRepo = pg.NewUsersRepo(opts.DB)
		tokensRepo = pg.NewTokensRepo(opts.DB)
		catalogRepo = pg.NewCatalogRepo(opts.DB)
		petsRepo = pg.NewPetsRepo(opts.DB)
		auctionsRepo = pg.NewAuctionsRepo(opts.DB)
		bidsRepo = pg.NewBidsRepo(opts.DB)
		log.Info("storage: postgres")
	} else {
		// El store in-memory es compartido: las cascadas pet -> subasta -> pujas
		// necesitan ver todas las colecciones.
		store := mem.NewStore()
		usersRepo = mem.NewUsersRepo(store)
		tokensRepo = mem.NewTokensRepo(store)
		catalogRepo = mem.NewCatalogRepo(store)
		petsRepo = mem.NewPetsRepo(store)
		auctionsRepo = mem.NewAuctionsRepo(store)
		bidsRepo = mem.NewBidsRepo(store)
		log.Info("storage: in-memory")
	}

	// Services por módulo
	usersSvc := users.NewService(usersRepo, tokensRepo, opts.TokenTTL)
	catalogSvc := catalog.NewService(catalogRepo)
	petsSvc := pets.NewService(petsRepo, catalogSvc)
	auctionsSvc := auctions.NewService(auctionsRepo, petsSvc)
	bidsSvc := bids.NewService(bidsRepo, auctionLookup{auctions: auctionsSvc, pets: petsSvc})

	var verifier auth.AuthVerifier
	if !opts.DevAuth {
		verifier = token.NewVerifier(usersSvc)
	} else {
		log.Warn("auth: modo dev (X-Debug-User-ID)")
	}
	// Todos los middlewares quedan registrados antes de la primera ruta
	// (chi lo exige).
	r.Use(middleware.AuthContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	market := marketView{auctions: auctionsSvc, bids: bidsSvc, users: usersSvc}

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	catalog.RegisterRoutes(r, catalogSvc)
	pets.RegisterRoutes(r, petsSvc, catalogSvc, market, usersSvc)
	pets.RegisterStoreRoutes(r, petsSvc, catalogSvc, market, usersSvc)
	auctions.RegisterRoutes(r, auctionsSvc)
	bids.RegisterRoutes(r, bidsSvc, petsSvc)

	return r
}

// auctionLookup implementa bids.AuctionLookup componiendo subastas + mascotas.
// Vive acá porque es el único punto donde ambos módulos son visibles.
type auctionLookup struct {
	auctions *auctions.Service
	pets     *pets.Service
}

func (l auctionLookup) AuctionSnapshot(ctx context.Context, auctionID string) (bids.AuctionSnapshot, error) {
	a, err := l.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return bids.AuctionSnapshot{}, err
	}

	owner, _, err := l.pets.PetForAuction(ctx, a.PetID)
	if err != nil {
		return bids.AuctionSnapshot{}, err
	}

	// La referencia mascota -> subasta puede haberse cortado entre lookup y
	// escritura (borrado concurrente); se reporta para que el service corte.
	stillListed := false
	if cur, err := l.auctions.ForPet(ctx, a.PetID); err == nil && cur.ID == a.ID {
		stillListed = true
	}

	return bids.AuctionSnapshot{
		ID:             a.ID,
		PetID:          a.PetID,
		PetOwnerID:     owner,
		StartPrice:     a.StartPrice,
		EndDate:        a.EndDate,
		PetStillListed: stillListed,
	}, nil
}

func (l auctionLookup) AuctionIDForPet(ctx context.Context, petID string) (string, bool, error) {
	a, err := l.auctions.ForPet(ctx, petID)
	if err != nil {
		if errors.Is(err, auctions.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return a.ID, true, nil
}

// marketView implementa pets.MarketView componiendo subastas, pujas y usuarios.
type marketView struct {
	auctions *auctions.Service
	bids     *bids.Service
	users    *users.Service
}

func (m marketView) AuctionForPet(ctx context.Context, petID string) (pets.AuctionSummary, bool, error) {
	a, err := m.auctions.ForPet(ctx, petID)
	if err != nil {
		if errors.Is(err, auctions.ErrNotFound) {
			return pets.AuctionSummary{}, false, nil
		}
		return pets.AuctionSummary{}, false, err
	}

	n, err := m.bids.CountByAuction(ctx, a.ID)
	if err != nil {
		return pets.AuctionSummary{}, false, err
	}

	return pets.AuctionSummary{
		ID:           a.ID,
		NumberOfBids: n,
		StartPrice:   a.StartPrice,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		Open:         auctions.IsOpen(a, time.Now()),
	}, true, nil
}

func (m marketView) BiddersForPet(ctx context.Context, petID string) ([]pets.Bidder, error) {
	items, err := m.bids.ListForPet(ctx, petID)
	if err != nil {
		return nil, err
	}

	out := make([]pets.Bidder, 0, len(items))
	for _, b := range items {
		username, err := m.users.UsernameByID(ctx, b.BidderUserID)
		if err != nil {
			// Usuarios de dev (X-Debug-User-ID) no existen en el directorio.
			username = b.BidderUserID
		}
		out = append(out, pets.Bidder{
			UserID:   b.BidderUserID,
			Username: username,
			Price:    b.Price,
		})
	}
	return out, nil
}
