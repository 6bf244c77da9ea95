// Package webhook exposes the inbound messaging endpoint. The provider
// posts one form-encoded request per message and expects a TwiML document
// with the reply.
package webhook

import (
	"context"
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agromatch/agromatch/internal/dialog"
	"github.com/agromatch/agromatch/internal/logger"
)

// twiml is the minimal response document: one message element.
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// Server handles the provider callbacks and a health probe.
type Server struct {
	bot    *dialog.Bot
	logger *zap.Logger
	http   *http.Server
}

func NewServer(addr string, bot *dialog.Bot, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{bot: bot, logger: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until the context is canceled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("webhook server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	from := strings.TrimSpace(r.PostFormValue("From"))
	if from == "" {
		http.Error(w, "missing From", http.StatusBadRequest)
		return
	}

	in := dialog.Incoming{
		From:       from,
		Body:       r.PostFormValue("Body"),
		Attachment: r.PostFormValue("MediaUrl0"),
	}

	s.logger.Info("inbound message",
		zap.String("from", from),
		zap.String("body_preview", logger.TruncateForLog(in.Body, 80)),
	)

	reply := s.bot.HandleMessage(r.Context(), in)

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(twiml{Message: reply}); err != nil {
		s.logger.Error("encoding twiml response", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
