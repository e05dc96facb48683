package catalog

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-marketplace/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Crear requiere auth; listar es público (el store referencia estos nombres).
	r.Route("/categories", func(cr chi.Router) {
		cr.Post("/", createCategoryHandler(svc))
		cr.Get("/", listCategoriesHandler(svc))
	})

	r.Route("/tags", func(tr chi.Router) {
		tr.Post("/", createTagHandler(svc))
		tr.Get("/", listTagsHandler(svc))
	})
}

type createNamedRequest struct {
	Name string `json:"name"`
}

type namedResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func createCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createNamedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.CreateCategory(r.Context(), req.Name)
		if err != nil {
			writeNamedError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, namedResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
}

func listCategoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCategories(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]namedResponse, 0, len(items))
		for _, c := range items {
			out = append(out, namedResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createTagHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createNamedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		tg, err := svc.CreateTag(r.Context(), req.Name)
		if err != nil {
			writeNamedError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, namedResponse{ID: tg.ID, Name: tg.Name, CreatedAt: tg.CreatedAt})
	}
}

func listTagsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListTags(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]namedResponse, 0, len(items))
		for _, tg := range items {
			out = append(out, namedResponse{ID: tg.ID, Name: tg.Name, CreatedAt: tg.CreatedAt})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeNamedError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, "name is required", http.StatusBadRequest)
	case ErrNameTaken:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON se repite por módulo a propósito (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
