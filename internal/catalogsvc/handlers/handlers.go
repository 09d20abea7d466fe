package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/avvvet/card-catalog/internal/catalogsvc/models"
	"github.com/avvvet/card-catalog/internal/catalogsvc/service"
	"github.com/avvvet/card-catalog/internal/catalogsvc/store"
	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	cards    *service.CardService
	instance string
}

func NewHandler(cards *service.CardService, instance string) *Handler {
	return &Handler{cards: cards, instance: instance}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Index *int   `json:"index,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("error encoding response: %s", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg})
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeBody decodes exactly one JSON value from the request body.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errTrailingData
	}
	return nil
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Message: "catalog service is running",
		Code:    http.StatusOK,
		Data:    map[string]string{"instance": h.instance},
	})
}

func (h *Handler) GetAllCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.GetAllCards(r.Context())
	if err != nil {
		log.Errorf("Error [CardService.GetAllCards] %s", err)
		writeError(w, http.StatusInternalServerError, "unable to list cards")
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *Handler) GetCardByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	view, err := h.cards.GetCardByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		log.Errorf("Error [CardService.GetCardByID] id=%d %s", id, err)
		writeError(w, http.StatusInternalServerError, "unable to get card")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) AddCard(w http.ResponseWriter, r *http.Request) {
	var card models.Card
	if err := decodeBody(w, r, &card); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.cards.AddCard(r.Context(), card)
	if err != nil {
		log.Errorf("Error [CardService.AddCard] %s", err)
		writeError(w, http.StatusInternalServerError, "unable to create card")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (h *Handler) CreateMultipleCards(w http.ResponseWriter, r *http.Request) {
	var views []models.CardView
	if err := decodeBody(w, r, &views); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.cards.CreateMultipleCards(r.Context(), views)
	if err != nil {
		var batchErr *service.BatchError
		if errors.As(err, &batchErr) {
			log.Errorf("Error [CardService.CreateMultipleCards] stopped at index %d: %s", batchErr.Index, batchErr.Err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "unable to create card",
				Index: &batchErr.Index,
			})
			return
		}
		log.Errorf("Error [CardService.CreateMultipleCards] %s", err)
		writeError(w, http.StatusInternalServerError, "unable to create cards")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
