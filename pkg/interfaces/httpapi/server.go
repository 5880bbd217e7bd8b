// Package httpapi exposes the engine's logical operations as a thin JSON
// surface for the presentation layer.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecostock/ecostock/pkg/application/dto"
	"github.com/ecostock/ecostock/pkg/application/services/analytics"
	"github.com/ecostock/ecostock/pkg/application/services/forecast"
	"github.com/ecostock/ecostock/pkg/application/services/fulfillment"
	"github.com/ecostock/ecostock/pkg/application/services/inventory"
	"github.com/ecostock/ecostock/pkg/application/services/recommendation"
	"github.com/ecostock/ecostock/pkg/domain/entities"
	"github.com/ecostock/ecostock/pkg/domain/repositories"
	"github.com/ecostock/ecostock/pkg/infrastructure/events"
	"github.com/ecostock/ecostock/pkg/infrastructure/metrics"
)

// Server routes JSON requests to the engine services
type Server struct {
	fulfillment *fulfillment.Service
	inventory   *inventory.Service
	forecast    *forecast.Service
	analytics   *analytics.Service
	generator   *recommendation.Generator
	workflow    *recommendation.Workflow
	stores      repositories.StoreRepository
	products    repositories.ProductRepository
	recs        repositories.RecommendationRepository
	audit       events.Store
	metrics     *metrics.Metrics
	logger      *slog.Logger
	mux         *http.ServeMux
}

// Deps bundles the server's collaborators
type Deps struct {
	Fulfillment *fulfillment.Service
	Inventory   *inventory.Service
	Forecast    *forecast.Service
	Analytics   *analytics.Service
	Generator   *recommendation.Generator
	Workflow    *recommendation.Workflow
	Stores      repositories.StoreRepository
	Products    repositories.ProductRepository
	Recs        repositories.RecommendationRepository
	Audit       events.Store
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry
	Logger      *slog.Logger
}

// NewServer creates the API server and registers its routes
func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		fulfillment: deps.Fulfillment,
		inventory:   deps.Inventory,
		forecast:    deps.Forecast,
		analytics:   deps.Analytics,
		generator:   deps.Generator,
		workflow:    deps.Workflow,
		stores:      deps.Stores,
		products:    deps.Products,
		recs:        deps.Recs,
		audit:       deps.Audit,
		metrics:     deps.Metrics,
		logger:      logger,
		mux:         http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /api/purchase", s.handlePurchase)
	s.mux.HandleFunc("GET /api/inventory", s.handleListInventory)
	s.mux.HandleFunc("GET /api/forecast", s.handleForecast)
	s.mux.HandleFunc("GET /api/stores", s.handleListStores)
	s.mux.HandleFunc("GET /api/stores/{id}/analytics", s.handleStoreAnalytics)
	s.mux.HandleFunc("GET /api/recommendations", s.handleListRecommendations)
	s.mux.HandleFunc("POST /api/recommendations/generate", s.handleGenerate)
	s.mux.HandleFunc("GET /api/recommendations/{id}/history", s.handleHistory)
	s.mux.HandleFunc("POST /api/recommendations/{id}/approve", s.handleApprove)
	s.mux.HandleFunc("POST /api/recommendations/{id}/reject", s.handleReject)
	s.mux.HandleFunc("POST /api/transfer", s.handleTransfer)

	if deps.Registry != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	return s
}

// ServeHTTP implements http.Handler with request logging
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.logger.Debug("request handled",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Duration("elapsed", time.Since(start)))
}

type purchaseRequest struct {
	ProductID       string            `json:"product_id"`
	Quantity        entities.Quantity `json:"quantity"`
	CustomerAddress string            `json:"customer_address"`
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.fulfillment.Purchase(r.Context(), entities.ProductID(req.ProductID), req.Quantity, req.CustomerAddress)
	if err != nil {
		s.metrics.PurchasesFailed.Inc()
		s.writeDomainError(w, err)
		return
	}

	s.metrics.PurchasesFulfilled.Inc()
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	views, err := s.inventory.ListInventory(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	productFilter := entities.ProductID(r.URL.Query().Get("product_id"))

	products, err := s.products.GetAllProducts()
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	stores, err := s.stores.GetAllStores()
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	var views []dto.ForecastView
	for _, p := range products {
		if productFilter != "" && p.ID != productFilter {
			continue
		}
		for _, store := range stores {
			entry, err := s.forecast.Forecast(r.Context(), p.ID, store.ID)
			if err != nil {
				s.writeDomainError(w, err)
				return
			}
			views = append(views, dto.ForecastView{
				ProductID:         p.ID,
				ProductName:       p.Name,
				StoreID:           store.ID,
				StoreName:         store.Name,
				PredictedNextWeek: entry.PredictedNextWeek,
				Trend:             entry.Trend.String(),
			})
		}
		aggregate, err := s.forecast.ForecastNetwork(r.Context(), p.ID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		views = append(views, dto.ForecastView{
			ProductID:         p.ID,
			ProductName:       p.Name,
			PredictedNextWeek: aggregate.PredictedNextWeek,
			Trend:             aggregate.Trend.String(),
		})
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.analytics.StoreSummaries(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleStoreAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := s.analytics.StoreAnalytics(r.Context(), entities.StoreID(r.PathValue("id")))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	var (
		recs []*entities.Recommendation
		err  error
	)
	if r.URL.Query().Get("all") == "true" {
		recs, err = s.recs.GetAll()
	} else {
		recs, err = s.recs.GetByState(entities.Pending)
	}
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	views := make([]dto.RecommendationView, 0, len(recs))
	for _, rec := range recs {
		view, err := s.recommendationView(rec)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		views = append(views, view)
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	recs, err := s.generator.Generate(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.metrics.Recommendations.WithLabelValues("generated").Add(float64(len(recs)))
	s.writeJSON(w, http.StatusOK, map[string]int{"generated": len(recs)})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.recs.Get(id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	trail := []events.Event{}
	if s.audit != nil {
		var err error
		trail, err = s.audit.History(id)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, trail)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	rec, err := s.workflow.Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if rec.State == entities.Executed {
		s.metrics.Recommendations.WithLabelValues("approved").Inc()
		s.metrics.TransfersExecuted.Inc()
	}
	view, verr := s.recommendationView(rec)
	if verr != nil {
		s.writeDomainError(w, verr)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	rec, err := s.workflow.Reject(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.metrics.Recommendations.WithLabelValues("rejected").Inc()
	view, verr := s.recommendationView(rec)
	if verr != nil {
		s.writeDomainError(w, verr)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

type transferRequest struct {
	StoreID     string            `json:"store_id"`
	ProductID   string            `json:"product_id"`
	DestStoreID string            `json:"dest_store_id"`
	Quantity    entities.Quantity `json:"quantity"`
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.inventory.MoveStock(r.Context(), entities.ProductID(req.ProductID), entities.StoreID(req.StoreID), entities.StoreID(req.DestStoreID), req.Quantity)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.metrics.TransfersExecuted.Inc()
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "transferred"})
}

func (s *Server) recommendationView(rec *entities.Recommendation) (dto.RecommendationView, error) {
	view := dto.RecommendationView{
		ID:            rec.ID,
		ProductID:     rec.ProductID,
		SourceStoreID: rec.SourceStoreID,
		DestStoreID:   rec.DestStoreID,
		Quantity:      rec.Quantity,
		CO2SavedKg:    rec.CO2SavedKg,
		Method:        rec.Method.String(),
		State:         rec.State.String(),
		Note:          rec.Note,
	}

	product, err := s.products.GetProduct(rec.ProductID)
	if err != nil {
		return view, err
	}
	view.ProductName = product.Name

	dest, err := s.stores.GetStore(rec.DestStoreID)
	if err != nil {
		return view, err
	}
	view.DestStore = dest.Name

	if rec.SourceStoreID != "" {
		source, err := s.stores.GetStore(rec.SourceStoreID)
		if err != nil {
			return view, err
		}
		view.SourceStore = source.Name
	}
	return view, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps the engine's error taxonomy onto HTTP statuses
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entities.ErrStoreNotFound),
		errors.Is(err, entities.ErrProductNotFound),
		errors.Is(err, entities.ErrRecordNotFound),
		errors.Is(err, entities.ErrRecommendationNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrInvalidQuantity):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrInsufficientStock),
		errors.Is(err, entities.ErrNoStoreAvailable),
		errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, entities.ErrStaleRecommendation):
		s.writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("internal error", slog.String("error", err.Error()))
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
