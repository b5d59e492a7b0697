// Package server exposes a game store over HTTP, with a websocket feed of
// celebrations for the page rendering the confetti.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/prizegrid/game"
	"github.com/they4kman/prizegrid/locale"
)

const (
	shutdownTimeout = 5 * time.Second
	maxRequestBytes = 1 << 10
)

type Server struct {
	store     *game.Store
	formatter *locale.Formatter
	log       logrus.FieldLogger
	hub       *hub
	mux       *http.ServeMux
}

// New wires a server to store and subscribes it to the store's celebrations.
func New(store *game.Store, formatter *locale.Formatter, log logrus.FieldLogger) *Server {
	srv := &Server{
		store:     store,
		formatter: formatter,
		log:       log,
		hub:       newHub(),
		mux:       http.NewServeMux(),
	}

	srv.mux.HandleFunc("GET /api/state", srv.handleState)
	srv.mux.HandleFunc("POST /api/start", srv.handleStart)
	srv.mux.HandleFunc("POST /api/reset", srv.handleReset)
	srv.mux.HandleFunc("POST /api/boxes/{id}/open", srv.handleOpen)
	srv.mux.HandleFunc("GET /ws", srv.handleWS)

	store.AddCelebrationListener(srv.celebrate)
	return srv
}

func (srv *Server) Handler() http.Handler {
	return srv.mux
}

// Run serves handler on addr until ctx is canceled. The bound address is
// sent on started once the listener is ready.
func Run(ctx context.Context, addr string, handler http.Handler, log logrus.FieldLogger, started chan<- string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Handler:     handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	log.WithField("addr", listener.Addr().String()).Info("server started")
	if started != nil {
		started <- listener.Addr().String()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("shutting down server")
	return httpServer.Shutdown(shutdownCtx)
}

func (srv *Server) celebrate(box game.Box) {
	dropped := srv.hub.publish(Event{
		Type:  EventCelebrate,
		Box:   box,
		Label: srv.formatter.Prize(box.Prize),
	})
	if dropped > 0 {
		srv.log.WithFields(logrus.Fields{"box": box.ID, "dropped": dropped}).Warn("slow subscribers missed a celebration")
	}
}

// Labels are the formatted prize amounts for the player's language.
type Labels struct {
	Large string `json:"large"`
	Small string `json:"small"`
}

type StateResponse struct {
	State      game.State `json:"state"`
	TotalBoxes int        `json:"totalBoxes"`
	Opened     int        `json:"opened"`
	Winnings   string     `json:"winnings"`
	Labels     Labels     `json:"labels"`
}

type StartRequest struct {
	Width           int  `json:"width"`
	Height          int  `json:"height"`
	Prize100Count   int  `json:"prize100Count"`
	Prize25000Count int  `json:"prize25000Count"`
	Minigame        bool `json:"minigame"`
}

type OpenResponse struct {
	Opened bool     `json:"opened"`
	Box    game.Box `json:"box"`
	Label  string   `json:"label"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (srv *Server) handleState(w http.ResponseWriter, r *http.Request) {
	srv.writeState(w)
}

func (srv *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		srv.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	err := srv.store.StartGame(r.Context(), game.Config{
		Width:           req.Width,
		Height:          req.Height,
		LargePrizeCount: req.Prize25000Count,
		SmallPrizeCount: req.Prize100Count,
		Minigame:        req.Minigame,
	})
	if err != nil {
		srv.writeError(w, err)
		return
	}
	srv.writeState(w)
}

func (srv *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := srv.store.ResetGame(r.Context()); err != nil {
		srv.writeError(w, err)
		return
	}
	srv.writeState(w)
}

func (srv *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		srv.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "box id must be an integer"})
		return
	}

	opened, err := srv.store.OpenBox(r.Context(), id)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	resp := OpenResponse{Opened: opened}
	if box, ok := srv.store.Box(id); ok {
		resp.Box = box
		resp.Label = srv.formatter.Prize(box.Prize)
	}
	srv.writeJSON(w, http.StatusOK, resp)
}

func (srv *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so no event sent after the
	// client connects is missed.
	events := srv.hub.subscribe()
	defer srv.hub.unsubscribe(events)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		srv.log.WithError(err).Warn("websocket accept failed")
		return
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case event := <-events:
			if err := wsjson.Write(ctx, conn, event); err != nil {
				srv.log.WithError(err).Debug("websocket write failed")
				return
			}
		}
	}
}

func (srv *Server) writeState(w http.ResponseWriter) {
	stats := srv.store.Stats()
	srv.writeJSON(w, http.StatusOK, StateResponse{
		State:      srv.store.State(),
		TotalBoxes: srv.store.TotalBoxes(),
		Opened:     stats.Opened,
		Winnings:   srv.formatter.Prize(stats.Winnings),
		Labels: Labels{
			Large: srv.formatter.Prize(game.LargePrize),
			Small: srv.formatter.Prize(game.SmallPrize),
		},
	})
}

func (srv *Server) writeError(w http.ResponseWriter, err error) {
	var configErr *game.ConfigurationError
	if errors.As(err, &configErr) {
		srv.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	srv.log.WithError(err).Error("request failed")
	srv.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (srv *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		srv.log.WithError(err).Debug("write response failed")
	}
}
