package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/lumachat/luma/internal/chat"
	"github.com/lumachat/luma/internal/config"
	"github.com/lumachat/luma/internal/exchange"
	"github.com/lumachat/luma/internal/history"
	"github.com/lumachat/luma/internal/llm"
	"github.com/lumachat/luma/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	// Wire persistence, state, transport, orchestration
	hist := history.New(cfg.History.Path)
	store := chat.NewStore(hist, cfg.LLM.SystemPrompt)
	sender := llm.NewSender(llm.NewClient(cfg.LLM), cfg.LLM.Model)
	orch := exchange.New(store, sender)

	mux := http.NewServeMux()

	// one message round trip
	mux.HandleFunc("POST /chat", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ConversationID string `json:"conversationId"`
			Text           string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.ConversationID == "" {
			req.ConversationID = store.ActiveID()
		}
		outcome, err := orch.Submit(r.Context(), req.ConversationID, req.Text)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, chat.ErrConversationNotFound) {
				status = http.StatusNotFound
			}
			logger.L.Error("submit failed", "error", err, "conversation", req.ConversationID)
			http.Error(w, "failed to process message", status)
			return
		}
		writeJSON(w, outcome)
	})

	mux.HandleFunc("GET /conversations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"conversations": store.Conversations(),
			"activeId":      store.ActiveID(),
		})
	})

	mux.HandleFunc("POST /conversations", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title string `json:"title"`
		}
		// body is optional for the new-chat action
		_ = json.NewDecoder(r.Body).Decode(&req)
		var conv chat.Conversation
		if req.Title != "" {
			conv = store.CreateConversation(req.Title)
		} else {
			conv = store.NewChat()
		}
		writeJSON(w, conv)
	})

	mux.HandleFunc("DELETE /conversations/{id}", func(w http.ResponseWriter, r *http.Request) {
		promptSelect, err := store.DeleteConversation(r.PathValue("id"))
		if notFound(w, err) {
			return
		}
		writeJSON(w, map[string]any{"promptSelect": promptSelect, "activeId": store.ActiveID()})
	})

	mux.HandleFunc("POST /conversations/{id}/rename", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title string `json:"title"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
			http.Error(w, "title required", http.StatusBadRequest)
			return
		}
		if notFound(w, store.RenameConversation(r.PathValue("id"), req.Title)) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /conversations/{id}/clear", func(w http.ResponseWriter, r *http.Request) {
		if notFound(w, store.ClearMessages(r.PathValue("id"))) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /conversations/{id}/activate", func(w http.ResponseWriter, r *http.Request) {
		if notFound(w, store.SetActive(r.PathValue("id"))) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("PATCH /conversations/{id}/messages/{msgId}", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text       *string `json:"text"`
			ToggleLike bool    `json:"toggleLike"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		id, msgID := r.PathValue("id"), r.PathValue("msgId")
		var msg chat.Message
		var err error
		if req.ToggleLike {
			msg, err = store.ToggleLike(id, msgID)
		} else {
			msg, err = store.UpdateMessage(id, msgID, chat.MessagePatch{Text: req.Text})
		}
		if notFound(w, err) {
			return
		}
		writeJSON(w, msg)
	})

	mux.HandleFunc("DELETE /conversations/{id}/messages/{msgId}", func(w http.ResponseWriter, r *http.Request) {
		if notFound(w, store.RemoveMessage(r.PathValue("id"), r.PathValue("msgId"))) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// Start server
	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.L.Info("starting server", "address", serverAddr)
	if err := http.ListenAndServe(serverAddr, mux); err != nil {
		logger.L.Error("failed to start server", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Error("failed to encode response", "error", err)
	}
}

// notFound writes the appropriate error response and reports whether err was
// non-nil.
func notFound(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, chat.ErrConversationNotFound), errors.Is(err, chat.ErrMessageNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return true
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return true
	}
}
