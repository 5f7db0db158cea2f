package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/goalfeed-app/goalfeed/internal/api/respond"
	"github.com/goalfeed-app/goalfeed/internal/store"
)

// ListPosts returns the most recent delivery records.
// @Summary Recent posts
// @Tags posts
// @Produce json
// @Param limit query int false "Max rows (default 50)"
// @Success 200 {array} store.Post
// @Router /api/posts [get]
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	posts, err := h.posts.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("recent posts", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to list posts")
		return
	}
	if posts == nil {
		posts = []store.Post{}
	}
	respond.WriteJSON(w, http.StatusOK, posts)
}

// PostStats returns aggregate delivery counts.
// @Summary Delivery analytics
// @Tags posts
// @Produce json
// @Success 200 {object} store.PostStats
// @Router /api/posts/stats [get]
func (h *Handler) PostStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.posts.Stats(r.Context())
	if err != nil {
		h.logger.Error("post stats", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to compute stats")
		return
	}
	respond.WriteJSON(w, http.StatusOK, stats)
}

// sendRequest is the POST /api/posts/send payload for manual broadcasts.
type sendRequest struct {
	Message    string `json:"message"`
	ChannelIDs []int  `json:"channel_ids"`
	EventType  string `json:"event_type"`
	MatchID    string `json:"match_id"`
}

// sendResult is the per-channel outcome of a manual broadcast.
type sendResult struct {
	ChannelID   int    `json:"channel_id"`
	ChannelName string `json:"channel_name,omitempty"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// SendPost broadcasts a manual message to selected channels. Follows the
// same dispatch contract as the poller: every attempt is logged, failures
// never abort the remaining channels.
// @Summary Manual broadcast
// @Tags posts
// @Accept json
// @Produce json
// @Param request body sendRequest true "Broadcast"
// @Success 200 {object} map[string][]sendResult
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/posts/send [post]
func (h *Handler) SendPost(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}
	if req.Message == "" || len(req.ChannelIDs) == 0 {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "message and channel_ids are required")
		return
	}
	if req.EventType == "" {
		req.EventType = "manual"
	}

	results := make([]sendResult, 0, len(req.ChannelIDs))
	for _, channelID := range req.ChannelIDs {
		channel, err := h.channels.Get(r.Context(), channelID)
		if err != nil || !channel.Active {
			results = append(results, sendResult{
				ChannelID: channelID, Success: false,
				Error: "Channel not found or inactive",
			})
			continue
		}

		sender, ok := h.senders[channel.Platform]
		if !ok {
			results = append(results, sendResult{
				ChannelID: channelID, ChannelName: channel.Name, Success: false,
				Error: "No sender configured for platform",
			})
			continue
		}

		res := sender.Send(r.Context(), channel.ChatID, req.Message)
		status := store.PostStatusSent
		if !res.Success {
			status = store.PostStatusFailed
		}
		if err := h.posts.Append(r.Context(), channel.ID, req.Message, req.EventType, req.MatchID, status); err != nil {
			h.logger.Warn("post log write failed", "channel", channel.Name, "error", err)
		}

		results = append(results, sendResult{
			ChannelID: channelID, ChannelName: channel.Name,
			Success: res.Success, Error: res.Error,
		})
	}

	respond.WriteJSON(w, http.StatusOK, map[string][]sendResult{"results": results})
}

// DeletePost removes one delivery record.
// @Summary Delete post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Router /api/posts/{id} [delete]
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid post id")
		return
	}
	if err := h.posts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Post not found")
			return
		}
		h.logger.Error("delete post", "id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to delete post")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}
