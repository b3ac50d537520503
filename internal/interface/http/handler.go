package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aidassist/healthqa/internal/domain/chat"
	"github.com/aidassist/healthqa/internal/domain/language"
	apperrors "github.com/aidassist/healthqa/pkg/errors"
)

// ChatHandler wires the HTTP transport to the chat domain.
type ChatHandler struct {
	chatSvc chat.Service
	logger  *slog.Logger
}

// NewChatHandler constructs the root HTTP handler.
func NewChatHandler(chatSvc chat.Service, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatSvc: chatSvc,
		logger:  logger.With("component", "http.handler"),
	}
}

// Ask answers a single chat question.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.chatSvc.Ask(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "chat_failed", errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AskStream streams the answer word by word as newline-delimited JSON.
func (h *ChatHandler) AskStream(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	stream, err := h.chatSvc.StreamAsk(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "chat_failed", errMessage(err), err))
		return
	}

	c.Writer.Header().Set("Content-Type", "application/x-ndjson")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	for chunk := range stream {
		payload, err := json.Marshal(chunk)
		if err != nil {
			h.logger.Error("marshal chunk failed", "error", err)
			continue
		}
		c.Writer.Write(payload)
		c.Writer.Write([]byte("\n"))
		flusher.Flush()
	}
}

// FAQs returns corpus entries for client display.
func (h *ChatHandler) FAQs(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}

	faqs, err := h.chatSvc.FAQs(c.Request.Context(), limit, c.Query("language"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "faqs_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"faqs": faqs})
}

// Languages lists the language codes clients may request.
func (h *ChatHandler) Languages(c *gin.Context) {
	type languageInfo struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	langs := make([]languageInfo, 0, len(language.Supported))
	for code, name := range language.Supported {
		langs = append(langs, languageInfo{Code: code, Name: name})
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].Code < langs[j].Code })
	c.JSON(http.StatusOK, gin.H{"languages": langs, "default": language.Default})
}

// Stats exposes outcome counters for operational visibility.
func (h *ChatHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.chatSvc.Stats())
}

// Audio serves previously synthesized answer audio.
func (h *ChatHandler) Audio(c *gin.Context) {
	key := c.Param("key")
	data, mimeType, err := h.chatSvc.Audio(c.Request.Context(), key)
	if err != nil {
		status := http.StatusNotFound
		code := "not_found"
		if apperrors.IsCode(err, "audio_unavailable") {
			status = http.StatusServiceUnavailable
			code = "audio_unavailable"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}
	c.Data(http.StatusOK, mimeType, data)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
