package api

import (
	"context"
	"log/slog"
	"strings"
)

// Request is one parsed command line.
type Request struct {
	Ctx    context.Context
	Params map[string]string
	Args   []string
}

// Response carries the JSON line written back on success.
type Response struct {
	JSON string
}

// HandlerFunc serves one path. A returned error is sent to the client as
// {"error": "..."}.
type HandlerFunc func(req *Request, res *Response, logger *slog.Logger) error

type route struct {
	segments []string
	handler  HandlerFunc
}

// Router matches slash-separated paths. A segment written as {name}
// matches anything and is returned under name.
type Router struct {
	routes []route
}

func NewRouter() *Router { return &Router{} }

func (r *Router) Register(pattern string, h HandlerFunc) {
	r.routes = append(r.routes, route{segments: strings.Split(strings.ToLower(pattern), "/"), handler: h})
}

// Match returns the first handler registered for path and its params.
func (r *Router) Match(path string) (HandlerFunc, map[string]string) {
	parts := strings.Split(path, "/")
	for _, rt := range r.routes {
		if params, ok := matchSegments(rt.segments, parts); ok {
			return rt.handler, params
		}
	}
	return nil, nil
}

func matchSegments(pattern, parts []string) (map[string]string, bool) {
	if len(pattern) != len(parts) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			params[seg[1:len(seg)-1]] = parts[i]
			continue
		}
		if seg != parts[i] {
			return nil, false
		}
	}
	return params, true
}
