package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-marketplace/internal/router"
)

func newDevServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{DevAuth: true}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_AuctionLifecycle(t *testing.T) {
	ts := newDevServer(t)

	sellerID := "seller-1"
	buyerID := "buyer-1"
	otherID := "buyer-2"

	// 1) Seller arma el catálogo y publica una mascota
	categoryID := createNamed(t, ts.URL, "/categories", sellerID, "Dogs")
	tagID := createNamed(t, ts.URL, "/tags", sellerID, "friendly")

	petID := createPet(t, ts.URL, sellerID, map[string]any{
		"name":        "Milo",
		"age":         3,
		"price":       500.0,
		"category_id": categoryID,
		"tag_ids":     []string{tagID},
	})

	// 2) El store público la muestra sin auth, aún sin subasta
	{
		st, body := doReq(t, ts.URL, "GET", "/store/"+petID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 store detail, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status       string `json:"status"`
			IsForAuction any    `json:"is_for_auction"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "available" {
			t.Fatalf("expected status available, got %q", resp.Status)
		}
		if v, ok := resp.IsForAuction.(bool); !ok || v {
			t.Fatalf("expected is_for_auction=false before auction, got %v", resp.IsForAuction)
		}
	}

	// 3) Seller crea la subasta
	auctionID := createAuction(t, ts.URL, sellerID, map[string]any{
		"pet_id":      petID,
		"start_price": 100.0,
		"start_date":  time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
		"end_date":    time.Now().UTC().Add(72 * time.Hour).Format(time.RFC3339),
	})

	// 4) Segunda subasta para la misma mascota => 400
	{
		st, body := doReq(t, ts.URL, "POST", "/auctions", sellerID, map[string]any{
			"pet_id":      petID,
			"start_price": 50.0,
			"start_date":  time.Now().UTC().Format(time.RFC3339),
			"end_date":    time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate auction, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "already has an auction") {
			t.Fatalf("expected duplicate auction message, got %s", string(body))
		}
	}

	// 5) El store refleja la subasta como resumen
	{
		st, body := doReq(t, ts.URL, "GET", "/store/"+petID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 store detail, got %d", st)
		}
		var resp struct {
			IsForAuction struct {
				ID           string  `json:"id"`
				NumberOfBids int     `json:"number_of_bids"`
				StartPrice   float64 `json:"start_price"`
				Open         bool    `json:"open"`
			} `json:"is_for_auction"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("expected auction summary object, body=%s", string(body))
		}
		if resp.IsForAuction.ID != auctionID || !resp.IsForAuction.Open {
			t.Fatalf("unexpected auction summary: %+v", resp.IsForAuction)
		}
	}

	// 6) El seller no puede pujar por su propia mascota
	{
		st, body := doReq(t, ts.URL, "POST", "/bids", sellerID, map[string]any{
			"auction_id": auctionID,
			"price":      150.0,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 own bid, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "your own pet") {
			t.Fatalf("expected own-pet message, got %s", string(body))
		}
	}

	// 7) Puja por debajo del precio inicial => 400
	{
		st, body := doReq(t, ts.URL, "POST", "/bids", buyerID, map[string]any{
			"auction_id": auctionID,
			"price":      99.0,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 low bid, got %d body=%s", st, string(body))
		}
	}

	// 8) Buyer puja bien
	bidID := placeBid(t, ts.URL, buyerID, auctionID, 150)

	// 9) Segunda puja del mismo buyer => 400 (una por subasta)
	{
		st, body := doReq(t, ts.URL, "POST", "/bids", buyerID, map[string]any{
			"auction_id": auctionID,
			"price":      200.0,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate bid, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "already bid") {
			t.Fatalf("expected already-bid message, got %s", string(body))
		}
	}

	// 10) Pero puede enmendar su puja
	{
		st, body := doReq(t, ts.URL, "PATCH", "/bids/"+bidID, buyerID, map[string]any{"price": 250.0})
		if st != http.StatusOK {
			t.Fatalf("expected 200 amend bid, got %d body=%s", st, string(body))
		}
		var resp struct {
			Price float64 `json:"price"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Price != 250 {
			t.Fatalf("expected amended price 250, got %v", resp.Price)
		}
	}

	// 11) Otro usuario no puede enmendar la puja ajena
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/bids/"+bidID, otherID, map[string]any{"price": 300.0})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 amend foreign bid, got %d", st)
		}
	}

	// 12) Pujas de la mascota: anónimo ve lista vacía, no-owner 403, owner detalle
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/bids", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 anonymous pet bids, got %d", st)
		}
		var items []json.RawMessage
		_ = json.Unmarshal(body, &items)
		if len(items) != 0 {
			t.Fatalf("expected empty list for anonymous, got %s", string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID+"/bids", buyerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 pet bids for non owner, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/bids", sellerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pet bids for owner, got %d body=%s", st, string(body))
		}
		var items []struct {
			Price float64 `json:"price"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0].Price != 250 {
			t.Fatalf("expected one bid at 250, got %s", string(body))
		}
	}

	// 13) El detalle del owner incluye bidders con precio
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, sellerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 owner pet detail, got %d body=%s", st, string(body))
		}
		var resp struct {
			Bidders []struct {
				ID    string  `json:"id"`
				Price float64 `json:"price"`
			} `json:"bidders"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Bidders) != 1 || resp.Bidders[0].ID != buyerID {
			t.Fatalf("expected buyer among bidders, got %s", string(body))
		}
	}

	// 14) Seller marca la mascota como vendida: sale del store y bloquea la subasta
	{
		st, body := doReq(t, ts.URL, "PATCH", "/pets/"+petID, sellerID, map[string]any{"status": false})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch pet, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/store/"+petID, "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 store detail for sold pet, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "PATCH", "/auctions/"+auctionID, sellerID, map[string]any{"start_price": 120.0})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 auction update for sold pet, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "not available or you are not the owner") {
			t.Fatalf("expected unavailable-pet message, got %s", string(body))
		}
	}

	// 15) Borrar la mascota cascadea subasta y pujas
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID, sellerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete pet, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/auctions/"+auctionID, sellerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 auction after pet delete, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/bids", buyerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my bids, got %d", st)
		}
		var items []json.RawMessage
		_ = json.Unmarshal(body, &items)
		if len(items) != 0 {
			t.Fatalf("expected bids gone after cascade, got %s", string(body))
		}
	}
}

func TestHTTP_ClosedAuction_RejectsBids(t *testing.T) {
	ts := newDevServer(t)

	sellerID := "seller-1"
	buyerID := "buyer-1"

	categoryID := createNamed(t, ts.URL, "/categories", sellerID, "Dogs")
	petID := createPet(t, ts.URL, sellerID, map[string]any{
		"name":        "Rex",
		"age":         5,
		"price":       300.0,
		"category_id": categoryID,
	})

	auctionID := createAuction(t, ts.URL, sellerID, map[string]any{
		"pet_id":      petID,
		"start_price": 100.0,
		"start_date":  time.Now().UTC().Add(-48 * time.Hour).Format(time.RFC3339),
		"end_date":    time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
	})

	st, body := doReq(t, ts.URL, "POST", "/bids", buyerID, map[string]any{
		"auction_id": auctionID,
		"price":      150.0,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 closed auction, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), "closed") {
		t.Fatalf("expected closed message, got %s", string(body))
	}
}

func TestHTTP_GetPet_HidesForeignPets(t *testing.T) {
	ts := newDevServer(t)

	sellerID := "seller-1"

	categoryID := createNamed(t, ts.URL, "/categories", sellerID, "Cats")
	petID := createPet(t, ts.URL, sellerID, map[string]any{
		"name":        "Misha",
		"age":         2,
		"price":       200.0,
		"category_id": categoryID,
	})

	// /pets/{id} es la vista del owner: ajenos ven 404, no 403.
	st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, "someone-else", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 foreign pet, got %d", st)
	}
}

func TestHTTP_TokenAuth_RegisterLoginAndUse(t *testing.T) {
	// Sin DevAuth: el middleware exige Bearer tokens reales.
	ts := httptest.NewServer(router.NewRouter(router.Options{DevAuth: false, TokenTTL: time.Hour}))
	defer ts.Close()

	// Registro
	st, body := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
		"username": "ana",
		"password": "supersecret1",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}

	// Password corto => 400
	st, _ = doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
		"username": "bob",
		"password": "short",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 short password, got %d", st)
	}

	// Login
	st, body = doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
		"username": "ana",
		"password": "supersecret1",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}
	var sess struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &sess)
	if sess.Token == "" {
		t.Fatalf("login: missing token body=%s", string(body))
	}

	// Password incorrecto => 401
	st, _ = doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
		"username": "ana",
		"password": "wrongpassword",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 wrong password, got %d", st)
	}

	// Con token: crear categoría y mascota
	st, body = doBearerReq(t, ts.URL, "POST", "/categories", sess.Token, map[string]any{"name": "Dogs"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 category with token, got %d body=%s", st, string(body))
	}
	var cat struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &cat)

	st, body = doBearerReq(t, ts.URL, "POST", "/pets", sess.Token, map[string]any{
		"name":        "Milo",
		"age":         3,
		"price":       500.0,
		"category_id": cat.ID,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 pet with token, got %d body=%s", st, string(body))
	}

	// Token inventado => sin claims => 401
	st, _ = doBearerReq(t, ts.URL, "GET", "/pets", "not-a-real-token", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 bad token, got %d", st)
	}

	// X-Debug-User-ID no sirve cuando hay verifier
	st, _ = doReq(t, ts.URL, "GET", "/pets", "sneaky-user", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 debug header ignored, got %d", st)
	}
}

// -------------------------
// Helpers
// -------------------------

func createNamed(t *testing.T, baseURL, path, userID, name string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, userID, map[string]any{"name": name})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func createAuction(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auctions", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create auction, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create auction: missing id body=%s", string(body))
	}
	return resp.ID
}

func placeBid(t *testing.T, baseURL, userID, auctionID string, price float64) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/bids", userID, map[string]any{
		"auction_id": auctionID,
		"price":      price,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 place bid, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("place bid: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()
	return doRequest(t, baseURL, method, path, body, func(req *http.Request) {
		if debugUserID != "" {
			req.Header.Set("X-Debug-User-ID", debugUserID)
		}
	})
}

func doBearerReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()
	return doRequest(t, baseURL, method, path, body, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
}

func doRequest(t *testing.T, baseURL, method, path string, body any, decorate func(*http.Request)) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	decorate(req)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
