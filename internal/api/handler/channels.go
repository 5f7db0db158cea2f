package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/goalfeed-app/goalfeed/internal/api/respond"
	"github.com/goalfeed-app/goalfeed/internal/store"
)

// createChannelRequest is the POST /api/channels payload. Subscription flags
// default to the same values the schema does.
type createChannelRequest struct {
	Name          string  `json:"name"`
	Platform      string  `json:"platform"`
	ChatID        string  `json:"chat_id"`
	AffiliateLink *string `json:"affiliate_link"`
	PostGoals     *bool   `json:"post_goals"`
	PostCards     *bool   `json:"post_cards"`
	PostLineups   *bool   `json:"post_lineups"`
	PostFulltime  *bool   `json:"post_fulltime"`
	PostSubs      *bool   `json:"post_subs"`
}

// ListChannels returns all channels.
// @Summary List channels
// @Tags channels
// @Produce json
// @Success 200 {array} store.Channel
// @Router /api/channels [get]
func (h *Handler) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.channels.List(r.Context())
	if err != nil {
		h.logger.Error("list channels", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to list channels")
		return
	}
	if channels == nil {
		channels = []store.Channel{}
	}
	respond.WriteJSON(w, http.StatusOK, channels)
}

// GetChannel returns one channel by id.
// @Summary Get channel
// @Tags channels
// @Produce json
// @Param id path int true "Channel ID"
// @Success 200 {object} store.Channel
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/channels/{id} [get]
func (h *Handler) GetChannel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid channel id")
		return
	}
	channel, err := h.channels.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Channel not found")
			return
		}
		h.logger.Error("get channel", "id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to get channel")
		return
	}
	respond.WriteJSON(w, http.StatusOK, channel)
}

// CreateChannel validates and persists a new channel. Telegram destinations
// are verified against the Bot API before insert.
// @Summary Create channel
// @Tags channels
// @Accept json
// @Produce json
// @Param channel body createChannelRequest true "Channel"
// @Success 201 {object} store.Channel
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/channels [post]
func (h *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var req createChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}
	if req.Name == "" || req.Platform == "" || req.ChatID == "" {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "name, platform, and chat_id are required")
		return
	}
	if req.Platform != store.PlatformTelegram && req.Platform != store.PlatformWhatsApp {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "platform must be telegram or whatsapp")
		return
	}

	if req.Platform == store.PlatformTelegram {
		if _, err := h.telegram.VerifyChannel(r.Context(), req.ChatID); err != nil {
			respond.WriteError(w, http.StatusBadRequest, "VERIFICATION_FAILED",
				fmt.Sprintf("Telegram verification failed: %v", err))
			return
		}
	}

	channel, err := h.channels.Create(r.Context(), store.Channel{
		Name:          req.Name,
		Platform:      req.Platform,
		ChatID:        req.ChatID,
		AffiliateLink: req.AffiliateLink,
		PostGoals:     boolOr(req.PostGoals, true),
		PostCards:     boolOr(req.PostCards, true),
		PostLineups:   boolOr(req.PostLineups, true),
		PostFulltime:  boolOr(req.PostFulltime, true),
		PostSubs:      boolOr(req.PostSubs, false),
	})
	if err != nil {
		h.logger.Error("create channel", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to create channel")
		return
	}
	respond.WriteJSON(w, http.StatusCreated, channel)
}

// UpdateChannel patches channel fields.
// @Summary Update channel
// @Tags channels
// @Accept json
// @Produce json
// @Param id path int true "Channel ID"
// @Param channel body store.ChannelUpdate true "Fields to update"
// @Success 200 {object} store.Channel
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/channels/{id} [patch]
func (h *Handler) UpdateChannel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid channel id")
		return
	}

	if _, err := h.channels.Get(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Channel not found")
			return
		}
		h.logger.Error("get channel", "id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to get channel")
		return
	}

	var upd store.ChannelUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}

	channel, err := h.channels.Update(r.Context(), id, upd)
	if err != nil {
		h.logger.Error("update channel", "id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to update channel")
		return
	}
	respond.WriteJSON(w, http.StatusOK, channel)
}

// DeleteChannel removes a channel.
// @Summary Delete channel
// @Tags channels
// @Produce json
// @Param id path int true "Channel ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/channels/{id} [delete]
func (h *Handler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid channel id")
		return
	}
	if err := h.channels.Delete(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Channel not found")
			return
		}
		h.logger.Error("delete channel", "id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to delete channel")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"message": "Channel deleted"})
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
