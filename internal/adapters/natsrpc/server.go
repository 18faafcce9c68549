package natsrpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/coordinator"
	"go.trai.ch/zerr"
)

// Server is the master-side endpoint. It subscribes to the protocol subjects
// and dispatches inbound calls to the coordinator. NATS delivers messages on
// a single subscription in order, which preserves per-worker FIFO; the
// coordinator's own locking allows distinct workers to proceed concurrently.
type Server struct {
	conn   *nats.Conn
	coord  *coordinator.Coordinator
	logger ports.Logger
	subs   []*nats.Subscription
}

// NewServer connects to the NATS server at url and prepares dispatch.
func NewServer(url string, coord *coordinator.Coordinator, logger ports.Logger) (*Server, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "connecting to coordination transport"), "url", url)
	}
	return &Server{conn: conn, coord: coord, logger: logger}, nil
}

// Start subscribes the protocol subjects. Calls arriving before Start are
// answered by nobody and surface to workers as retryable no-responder
// failures.
func (s *Server) Start(ctx context.Context) error {
	handlers := map[string]nats.MsgHandler{
		SubjectAttach: func(msg *nats.Msg) { s.handleAttach(ctx, msg) },
		SubjectNotify: func(msg *nats.Msg) { s.handleNotify(ctx, msg) },
		SubjectClose:  func(msg *nats.Msg) { s.handleClose(ctx, msg) },
	}
	for subject, handler := range handlers {
		sub, err := s.conn.Subscribe(subject, handler)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "subscribing protocol subject"), "subject", subject)
		}
		s.subs = append(s.subs, sub)
	}
	return nil
}

// Stop unsubscribes and releases the connection.
func (s *Server) Stop() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.conn.Close()
}

func (s *Server) handleAttach(ctx context.Context, msg *nats.Msg) {
	var req attachRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.respondErr(msg, zerr.Wrap(err, "decoding attach request"))
		return
	}
	s.respond(msg, s.coord.HandleAttach(ctx, ports.AttachInfo{
		WorkerID: req.WorkerID,
		Endpoint: req.Endpoint,
		Slots:    req.Slots,
	}))
}

func (s *Server) handleNotify(ctx context.Context, msg *nats.Msg) {
	var req notifyRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.respondErr(msg, zerr.Wrap(err, "decoding notify request"))
		return
	}
	s.respond(msg, s.coord.HandleNotify(ctx, ports.Notification{
		WorkerID:       req.WorkerID,
		Status:         req.Status,
		CompletedSteps: req.CompletedSteps,
	}))
}

func (s *Server) handleClose(ctx context.Context, msg *nats.Msg) {
	var req closeRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.respondErr(msg, zerr.Wrap(err, "decoding close request"))
		return
	}
	s.respond(msg, s.coord.HandleClose(ctx, req.WorkerID))
}

func (s *Server) respond(msg *nats.Msg, err error) {
	if err == nil {
		s.reply(msg, reply{OK: true})
		return
	}
	s.respondErr(msg, err)
}

func (s *Server) respondErr(msg *nats.Msg, err error) {
	code := codeInternal
	if errors.Is(err, domain.ErrProtocolViolation) ||
		errors.Is(err, domain.ErrSessionNotFound) ||
		errors.Is(err, domain.ErrWorkerIDMissing) {
		code = codeProtocolViolation
	}
	s.logger.Error(err)
	s.reply(msg, reply{OK: false, Error: err.Error(), Code: code})
}

func (s *Server) reply(msg *nats.Msg, rep reply) {
	data, err := json.Marshal(rep)
	if err != nil {
		s.logger.Error(zerr.Wrap(err, "encoding reply"))
		return
	}
	if err := msg.Respond(data); err != nil {
		s.logger.Error(zerr.Wrap(err, "responding to worker call"))
	}
}
