// Package api serves a small line-based TCP API: one "<path> <args...>"
// line per request, one JSON line per response.
package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"
)

// Server is the status API.
type Server struct {
	addr   string
	ln     net.Listener
	logger *slog.Logger
	router *Router
	config ServerConfig

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Server. Handlers are registered through Router before Start.
func New(addr string, config ServerConfig, logger *slog.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		logger: logger,
		config: config,
		router: NewRouter(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Router returns the router used by the API server so callers can register handlers.
func (a *Server) Router() *Router { return a.router }

func (a *Server) Config() ServerConfig { return a.config }

// Addr returns the bound address once started.
func (a *Server) Addr() string {
	if a.ln != nil {
		return a.ln.Addr().String()
	}
	return a.addr
}

// Start listens on the configured address and serves incoming API commands.
func (a *Server) Start() error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	a.ln = ln
	a.logger.Info("API listening", "addr", ln.Addr().String())
	a.wg.Add(1)
	go a.serve()
	return nil
}

// Close stops the listener and every open connection.
func (a *Server) Close() {
	a.cancel()
	if a.ln != nil {
		_ = a.ln.Close()
	}
	a.wg.Wait()
}

func (a *Server) serve() {
	defer a.wg.Done()
	for {
		c, err := a.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				a.logger.Info("API server stopped")
				return
			}
			a.logger.Info("API accept error", "error", err)
			return
		}
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.handleConn(c)
		}()
	}
}

func writeError(w io.Writer, msg string) {
	problem := map[string]string{"error": msg}
	problemJSON, _ := json.Marshal(problem)
	_, _ = fmt.Fprintf(w, "%s\n", problemJSON)
}

func writeOK(w io.Writer, rest string) {
	_, _ = fmt.Fprintf(w, "%s\n", rest)
}

func (a *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(a.ctx, func() { _ = conn.Close() })
	defer stop()

	connLogger := a.logger.With("remote", conn.RemoteAddr().String())
	r := bufio.NewReader(conn)
	for {
		if a.config.ConnectionTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(a.config.ConnectionTimeout))
		}
		line, err := r.ReadString('\n')
		if err != nil {
			if err != io.EOF && a.ctx.Err() == nil {
				connLogger.Debug("read api line", "error", err)
			}
			return
		}
		a.dispatch(conn, connLogger, line)
	}
}

func (a *Server) dispatch(w io.Writer, logger *slog.Logger, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	logger.Debug("api cmd", "cmd", line)
	fields := strings.Fields(line)
	path := strings.ToLower(fields[0])

	h, params := a.router.Match(path)
	if h == nil {
		logger.Warn("api unknown path", "path", path)
		writeError(w, "unknown path")
		return
	}
	req := &Request{Ctx: a.ctx, Params: params, Args: fields[1:]}
	res := &Response{}
	if err := h(req, res, logger); err != nil {
		logger.Error("api handler error", "path", path, "error", err)
		writeError(w, err.Error())
		return
	}
	writeOK(w, res.JSON)
}
