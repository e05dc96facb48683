package pets

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-marketplace/internal/domain/catalog"
	"pet-marketplace/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type handlerDeps struct {
	svc     *Service
	catalog *catalog.Service
	market  MarketView
	users   UserDirectory
}

func RegisterRoutes(r chi.Router, svc *Service, catalogSvc *catalog.Service, market MarketView, users UserDirectory) {
	h := handlerDeps{svc: svc, catalog: catalogSvc, market: market, users: users}

	// Mascotas del owner (crear/listar/mutar). El store público vive en store_handler.go.
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", h.createPet())
		pr.Get("/", h.listMyPets())
		pr.Get("/{petID}", h.getMyPet())
		pr.Patch("/{petID}", h.updatePet())
		pr.Delete("/{petID}", h.deletePet())
	})
}

type createPetRequest struct {
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Status     *bool    `json:"status"` // default true (listada)
	Price      float64  `json:"price"`
	CategoryID string   `json:"category_id"`
	TagIDs     []string `json:"tag_ids"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name       *string   `json:"name"`
	Age        *int      `json:"age"`
	Status     *bool     `json:"status"`
	Price      *float64  `json:"price"`
	CategoryID *string   `json:"category_id"`
	TagIDs     *[]string `json:"tag_ids"`
}

type ownerView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type categoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type tagView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type bidderView struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Price    float64 `json:"price"`
}

type petResponse struct {
	ID        string       `json:"id"`
	Owner     ownerView    `json:"owner"`
	Name      string       `json:"name"`
	Age       int          `json:"age"`
	Status    string       `json:"status"` // "available" | "sold"
	Price     float64      `json:"price"`
	Category  categoryView `json:"category"`
	Tags      []tagView    `json:"tags"`
	Bidders   []bidderView `json:"bidders"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (h handlerDeps) createPet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		available := true
		if req.Status != nil {
			available = *req.Status
		}

		p, err := h.svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:       req.Name,
			Age:        req.Age,
			Available:  available,
			Price:      req.Price,
			CategoryID: req.CategoryID,
			TagIDs:     req.TagIDs,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, h.toPetResponse(r, p))
	}
}

func (h handlerDeps) listMyPets() http.HandlerFunc {
	// Owner-only: cada usuario ve solo sus mascotas (el store es la vista pública).
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := h.svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, h.toPetResponse(r, p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (h handlerDeps) getMyPet() http.HandlerFunc {
	// 404 para no-owners: misma semántica que listar scoped por owner.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil || p.OwnerUserID != claims.UserID {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, h.toPetResponse(r, p))
	}
}

func (h handlerDeps) updatePet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := h.svc.Update(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateInput{
			Name:       req.Name,
			Age:        req.Age,
			Available:  req.Status,
			Price:      req.Price,
			CategoryID: req.CategoryID,
			TagIDs:     req.TagIDs,
		})
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, h.toPetResponse(r, p))
	}
}

func (h handlerDeps) deletePet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		err := h.svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h handlerDeps) toPetResponse(r *http.Request, p Pet) petResponse {
	ctx := r.Context()

	resp := petResponse{
		ID:        p.ID,
		Owner:     h.ownerView(ctx, p.OwnerUserID),
		Name:      p.Name,
		Age:       p.Age,
		Status:    p.StatusLabel(),
		Price:     p.Price,
		Tags:      []tagView{},
		Bidders:   []bidderView{},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	if c, err := h.catalog.GetCategory(ctx, p.CategoryID); err == nil {
		resp.Category = categoryView{ID: c.ID, Name: c.Name}
	} else {
		resp.Category = categoryView{ID: p.CategoryID}
	}

	if tags, err := h.catalog.GetTags(ctx, p.TagIDs); err == nil {
		for _, tg := range tags {
			resp.Tags = append(resp.Tags, tagView{ID: tg.ID, Name: tg.Name})
		}
	}

	// Bidders solo si la mascota tiene subasta; tolera errores de composición.
	if bidders, err := h.market.BiddersForPet(ctx, p.ID); err == nil {
		for _, b := range bidders {
			resp.Bidders = append(resp.Bidders, bidderView{ID: b.UserID, Username: b.Username, Price: b.Price})
		}
	}

	return resp
}

func (h handlerDeps) ownerView(ctx context.Context, userID string) ownerView {
	username, err := h.users.UsernameByID(ctx, userID)
	if err != nil || strings.TrimSpace(username) == "" {
		// En modo dev (X-Debug-User-ID) puede no existir el user; mostramos el id.
		username = userID
	}
	return ownerView{ID: userID, Username: username}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
