package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/logging"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/metrics"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/usecase"
)

const maxCodeLength = 500

var codePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

type validateRequest struct {
	TicketCode string `json:"ticketCode"`
}

// validationResponse is the flat payload scanning clients render. Only
// status and message are always present.
type validationResponse struct {
	Status       string  `json:"status"`
	Message      string  `json:"message"`
	TicketType   *string `json:"ticketType"`
	EventName    *string `json:"eventName"`
	TierName     *string `json:"tierName"`
	AttendeeName *string `json:"attendeeName"`
	EventDate    *string `json:"eventDate"`
	Venue        *string `json:"venue"`
}

// handleValidate is the validation gateway. Malformed input is rejected here
// with zero storage calls; only well-formed codes reach the engine. These
// local rejections are counted and logged but deliberately kept out of the
// audit trail.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	l := logging.With(r.Context(), s.log)

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TicketCode == "" {
		l.Debug().Msg("scan rejected: ticket code missing")
		metrics.IncScanRejected("missing")
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Status:  string(model.ScanStatusInvalid),
			Message: "Ticket code is required",
		})
		return
	}
	if len(req.TicketCode) > maxCodeLength {
		l.Debug().Msg("scan rejected: ticket code too long")
		metrics.IncScanRejected("too_long")
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Status:  string(model.ScanStatusInvalid),
			Message: "Invalid ticket format",
		})
		return
	}
	code := strings.TrimSpace(req.TicketCode)
	if !codePattern.MatchString(code) {
		l.Debug().Msg("scan rejected: ticket code has invalid characters")
		metrics.IncScanRejected("charset")
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Status:  string(model.ScanStatusInvalid),
			Message: "Invalid ticket format",
		})
		return
	}

	res := s.validationUC.Validate(r.Context(), code)

	httpStatus := http.StatusOK
	if res.Status == model.ScanStatusError {
		httpStatus = http.StatusInternalServerError
	}
	writeJSON(w, httpStatus, toValidationResponse(res))
}

func toValidationResponse(res *model.ValidationResult) validationResponse {
	out := validationResponse{
		Status:  string(res.Status),
		Message: res.Message,
	}
	if sc := res.Context; sc != nil {
		if sc.TicketType != "" {
			tt := sc.TicketType
			out.TicketType = &tt
		}
		out.EventName = sc.EventName
		out.TierName = sc.TierName
		out.AttendeeName = sc.AttendeeName
		out.Venue = sc.Venue
		if sc.EventDate != nil {
			d := sc.EventDate.Format(time.RFC3339)
			out.EventDate = &d
		}
	}
	return out
}

func (s *Server) handleScanHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.validationUC.History(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*model.ScanLogEntry{}
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.ScanLogEntry `json:"data"`
	}{Data: entries})
}

// ---- events ----

type eventCreateRequest struct {
	OrganizerID string     `json:"organizer_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	EventDate   time.Time  `json:"event_date"`
	EndDate     *time.Time `json:"end_date"`
	Venue       string     `json:"venue"`
	Address     *string    `json:"address"`
	City        *string    `json:"city"`
	IsFree      bool       `json:"is_free"`
	BasePrice   *int64     `json:"base_price"`
	Currency    string     `json:"currency"`
	Capacity    *int       `json:"capacity"`
	Category    *string    `json:"category"`
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	ev, err := s.eventUC.Create(r.Context(), usecase.CreateEventInput{
		OrganizerID: req.OrganizerID,
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		EndDate:     req.EndDate,
		Venue:       req.Venue,
		Address:     req.Address,
		City:        req.City,
		IsFree:      req.IsFree,
		BasePrice:   req.BasePrice,
		Currency:    req.Currency,
		Capacity:    req.Capacity,
		Category:    req.Category,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	var (
		events []*model.Event
		err    error
	)
	if org := r.URL.Query().Get("organizer_id"); org != "" {
		events, err = s.eventUC.ListByOrganizer(r.Context(), org)
	} else {
		events, err = s.eventUC.ListPublished(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []*model.Event{}
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Event `json:"data"`
	}{Data: events})
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.eventUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleUpdateEventStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.eventUC.UpdateStatus(r.Context(), chi.URLParam(r, "id"), model.EventStatus(req.Status)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- tiers ----

type tierCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int64   `json:"price"`
	Capacity    *int    `json:"capacity"`
	SortOrder   int     `json:"sort_order"`
}

func (s *Server) handleCreateTier(w http.ResponseWriter, r *http.Request) {
	var req tierCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	tier, err := s.eventUC.CreateTier(r.Context(), usecase.CreateTierInput{
		EventID:     chi.URLParam(r, "id"),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Capacity:    req.Capacity,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tier)
}

func (s *Server) handleListTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := s.eventUC.ListTiers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tiers == nil {
		tiers = []*model.TicketTier{}
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.TicketTier `json:"data"`
	}{Data: tiers})
}

// ---- tickets ----

type bookTicketRequest struct {
	EventID       string  `json:"event_id"`
	TierID        string  `json:"tier_id"`
	AttendeeName  string  `json:"attendee_name"`
	AttendeeEmail string  `json:"attendee_email"`
	AttendeePhone *string `json:"attendee_phone"`
	BuyerID       *string `json:"buyer_id"`
}

func (s *Server) handleBookTicket(w http.ResponseWriter, r *http.Request) {
	var req bookTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	ticket, err := s.bookingUC.Book(r.Context(), usecase.BookTicketInput{
		EventID:       req.EventID,
		TierID:        req.TierID,
		AttendeeName:  req.AttendeeName,
		AttendeeEmail: req.AttendeeEmail,
		AttendeePhone: req.AttendeePhone,
		BuyerID:       req.BuyerID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (s *Server) handleListMyTickets(w http.ResponseWriter, r *http.Request) {
	buyerID := r.URL.Query().Get("buyer_id")
	tickets, err := s.bookingUC.ListByBuyer(r.Context(), buyerID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tickets == nil {
		tickets = []*model.Ticket{}
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Ticket `json:"data"`
	}{Data: tickets})
}

func (s *Server) handleListEventTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := s.bookingUC.ListByEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tickets == nil {
		tickets = []*model.Ticket{}
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Ticket `json:"data"`
	}{Data: tickets})
}

// ---- stats ----

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	totals, err := s.statsUC.Dashboard(r.Context(), r.URL.Query().Get("organizer_id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleEventStats(w http.ResponseWriter, r *http.Request) {
	perEvent, err := s.statsUC.PerEvent(r.Context(), r.URL.Query().Get("organizer_id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*usecase.EventAnalytics `json:"data"`
	}{Data: perEvent})
}

// ---- helpers ----

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto transport codes without leaking
// internals to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		http.Error(w, "Invalid request", http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrTierNotFound),
		errors.Is(err, domain.ErrTicketNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrTierSoldOut):
		http.Error(w, "Sold out", http.StatusConflict)
	default:
		logging.With(r.Context(), s.log).Error().Err(err).Msg("request failed")
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
