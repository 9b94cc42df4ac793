package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/serverup/serverup-be/internal/auth"
	"github.com/serverup/serverup-be/internal/services"
)

// MessageHandler handles HTTP requests for the guestbook message board.
type MessageHandler struct {
	service services.MessageServiceProvider
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service services.MessageServiceProvider) *MessageHandler {
	return &MessageHandler{service: service}
}

// MessagePayload defines the structure for message creation requests.
type MessagePayload struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Create handles posting a new message. The route is behind the auth
// middleware; the message is owned by the authenticated user.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var payload MessagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if payload.Name == "" || payload.Message == "" {
		writeError(w, http.StatusBadRequest, "Name and message are required")
		return
	}

	if _, err := h.service.Create(payload.Name, payload.Message, claims.UserID, claims.Username); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to save message")
		writeError(w, http.StatusInternalServerError, "Failed to save message. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("Thank you %s! Your message has been saved.", payload.Name),
	})
}

// GetAll handles listing messages, newest first. Supports the optional
// search and username query filters and requires no authentication.
func (h *MessageHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	username := r.URL.Query().Get("username")

	messages, err := h.service.GetAll(search, username)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch messages")
		writeError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"messages": messages,
	})
}

// Delete handles removing a message. Only the owner may delete; a missing
// id and a foreign owner get the same 404.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Delete(id, claims.UserID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Message not found or you do not have permission to delete it")
			return
		}
		log.Error().Err(err).Str("message_id", id).Msg("Failed to delete message")
		writeError(w, http.StatusInternalServerError, "Failed to delete message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Message deleted successfully",
	})
}
