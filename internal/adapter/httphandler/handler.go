// Package httphandler exposes the search and catalog operations over JSON
// HTTP for the rendering layer.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopsmart/substitution/internal/core/domain"
	"github.com/shopsmart/substitution/internal/core/port"
)

// POST /v1/substitutions JSON (200 OK, 400 Bad request, 404 Not found)

type SubstitutionsHandler struct {
	finder port.SubstituteFinder
}

func RegisterSubstitutions(mux *http.ServeMux, finder port.SubstituteFinder) {
	h := SubstitutionsHandler{finder}
	mux.HandleFunc("POST /v1/substitutions", h.PostSubstitutions)
}

func (h SubstitutionsHandler) PostSubstitutions(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "SubstitutionsHandler.PostSubstitutions"
	log := slog.With("op", op)

	var req SubstituteRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}
	if req.MaxPrice <= 0 {
		http.Error(w, "max_price must be positive", http.StatusBadRequest)
		return
	}

	res, err := h.finder.FindSubstitutes(r.Context(), h.toDomain(req))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(
			w, "failed to search substitutes", http.StatusServiceUnavailable,
		)
		log.Error("failed to search substitutes", "err", err)
		return
	}

	writeJSON(w, log, searchResultToDTO(res))
	log.Info("search served",
		"productID", req.ProductID, "kind", string(res.Kind),
	)
}

func (SubstitutionsHandler) toDomain(
	req SubstituteRequest,
) domain.SubstituteRequest {
	return domain.SubstituteRequest{
		ProductID:      req.ProductID,
		MaxPrice:       req.MaxPrice,
		RequiredTags:   req.RequiredTags,
		PreferredBrand: req.PreferredBrand,
	}
}

// GET /v1/products (200 OK, 503 Service unavailable)
// GET /v1/products/{id} (200 OK, 404 Not found)
// POST /v1/products JSON (202 Accepted, 400 Bad request)

type ProductsHandler struct {
	reader port.ProductReader
	sender port.ProductsSender
}

func RegisterProducts(
	mux *http.ServeMux, reader port.ProductReader, sender port.ProductsSender,
) {
	h := ProductsHandler{reader, sender}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("POST /v1/products", h.PostProducts)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	vs, err := h.reader.Products(r.Context())
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		log.Error("failed to read products", "err", err)
		return
	}

	dto := make([]Product, 0, len(vs))
	for _, v := range vs {
		dto = append(dto, productToDTO(v))
	}
	writeJSON(w, log, dto)
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	v, err := h.reader.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		log.Error("failed to read product", "err", err)
		return
	}

	writeJSON(w, log, productToDTO(v))
}

func (h ProductsHandler) PostProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProducts"
	log := slog.With("op", op)

	var ps []Product
	err := json.NewDecoder(r.Body).Decode(&ps)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if len(ps) == 0 {
		http.Error(w, "empty product list", http.StatusBadRequest)
		return
	}

	err = h.sender.SendProducts(r.Context(), h.toDomain(ps))
	if err != nil {
		http.Error(
			w, "failed to accept products", http.StatusServiceUnavailable,
		)
		log.Error("failed to send products", "err", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	if _, err = w.Write([]byte("Accepted")); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}

	log.Info("accepted", "nProducts", len(ps))
}

func (ProductsHandler) toDomain(ps []Product) (vs []domain.Product) {
	for _, p := range ps {
		vs = append(vs, domain.Product{
			ID:         p.ID,
			Name:       p.Name,
			Price:      p.Price,
			Stock:      p.Stock,
			Category:   p.Category,
			Brand:      p.Brand,
			Attributes: p.Attributes,
		})
	}
	return vs
}

// POST /v1/recalls JSON {"product_id" string, "recalled" bool}
// (202 Accepted, 400 Bad request)

type RecallsHandler struct {
	setter port.RecallSetter
}

func RegisterRecalls(mux *http.ServeMux, setter port.RecallSetter) {
	h := RecallsHandler{setter}
	mux.HandleFunc("POST /v1/recalls", h.PostRecall)
}

func (h RecallsHandler) PostRecall(w http.ResponseWriter, r *http.Request) {
	const op = "RecallsHandler.PostRecall"
	log := slog.With("op", op)

	var rule RecallRule
	err := json.NewDecoder(r.Body).Decode(&rule)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if rule.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	err = h.setter.SetRecall(r.Context(), domain.RecallRule{
		ProductID: rule.ProductID,
		Recalled:  rule.Recalled,
	})
	if err != nil {
		http.Error(
			w, "failed to accept recall", http.StatusServiceUnavailable,
		)
		log.Error("failed to set recall", "err", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	if _, err = w.Write([]byte("Accepted")); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}

	log.Info("accepted", "productID", rule.ProductID, "recalled", rule.Recalled)
}

// GET /v1/healthz (200 OK)

func RegisterHealth(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func productToDTO(v domain.Product) Product {
	return Product{
		ID:         v.ID,
		Name:       v.Name,
		Price:      v.Price,
		Stock:      v.Stock,
		Category:   v.Category,
		Brand:      v.Brand,
		Attributes: v.Attributes,
	}
}

func searchResultToDTO(res domain.SearchResult) SearchResult {
	dto := SearchResult{Kind: string(res.Kind)}

	if res.Kind == domain.KindExactMatch {
		p := productToDTO(res.Product)
		dto.Product = &p
		return dto
	}

	for _, item := range res.Items {
		dto.Items = append(dto.Items, RankedSubstitute{
			Product:     productToDTO(item.Product),
			Score:       item.Score,
			MatchedTags: item.MatchedTags,
			Explanation: item.Explanation,
		})
	}
	return dto
}
