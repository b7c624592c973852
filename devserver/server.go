// Package devserver serves a local /chat endpoint with the same wire contract
// the widget expects, for trying the widget without a real backend.
package devserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/linanwx/chatwidget/logger"
)

const maxRequestBytes = 64 << 10

// ReplyFunc produces the reply for one message.
type ReplyFunc func(ctx context.Context, message string) (string, error)

// Echo replies with the message it was given.
func Echo(_ context.Context, message string) (string, error) {
	return "You said: " + message, nil
}

// Handler answers POST {"message": "..."} with {"reply": "..."}.
type Handler struct {
	reply ReplyFunc
}

// NewHandler returns a handler using reply, or Echo when reply is nil.
func NewHandler(reply ReplyFunc) *Handler {
	if reply == nil {
		reply = Echo
	}
	return &Handler{reply: reply}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body")
		return
	}
	if !gjson.ValidBytes(data) {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	msg := gjson.GetBytes(data, "message")
	if msg.Type != gjson.String || strings.TrimSpace(msg.String()) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	text, err := h.reply(r.Context(), msg.String())
	if err != nil {
		logger.Warn("devserver reply failed", "err", err)
		writeError(w, http.StatusInternalServerError, "reply failed")
		return
	}

	out, err := sjson.SetBytes([]byte(`{}`), "reply", text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode reply")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(out)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	body, _ := sjson.SetBytes([]byte(`{}`), "error", msg)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// NewMux mounts the handler at path.
func NewMux(path string, reply ReplyFunc) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(path, NewHandler(reply))
	return mux
}

// ListenAndServe runs the server on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr, path string, reply ReplyFunc) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewMux(path, reply),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("devserver listening", "addr", addr, "path", path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("devserver stopped")
		return nil
	}
}
