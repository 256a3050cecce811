// Package server is the HTTP control server of colorlab. It exposes the
// color wheel animation state, color conversion and rendered frames.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rcrowley/go-metrics"
	"gopkg.in/macaron.v1"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/internal/report"
	"github.com/gogpu/colorlab/render"
)

// Frame size limits for /frame.png.
const (
	DefaultWidth  = 320
	DefaultHeight = 240
	MaxSize       = 2048
)

// MaxTime bounds the magnitude of the t= parameter of /frame.png, in
// seconds. It also rejects infinities.
const MaxTime = 1e9

const shutdownTimeout = 5 * time.Second

// Server serves the control API.
type Server struct {
	state    *State
	registry metrics.Registry
	static   string
	now      func() time.Time
	start    time.Time
	frames   metrics.Counter
	cache    *frameCache
	cacheLen int
	m        *macaron.Macaron
}

// Option configures a Server.
type Option func(*Server)

// WithStatic serves files from dir, with index.html as directory index.
func WithStatic(dir string) Option {
	return func(s *Server) {
		s.static = dir
	}
}

// WithState shares an existing State.
func WithState(st *State) Option {
	return func(s *Server) {
		s.state = st
	}
}

// WithRegistry records metrics into r instead of a private registry.
func WithRegistry(r metrics.Registry) Option {
	return func(s *Server) {
		s.registry = r
	}
}

// WithClock replaces time.Now, which drives the default animation time.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithFrameCache keeps up to n encoded frames requested with an explicit
// t= parameter. Zero disables caching.
func WithFrameCache(n int) Option {
	return func(s *Server) {
		s.cacheLen = n
	}
}

// New creates a Server.
func New(opts ...Option) *Server {
	s := &Server{
		now:      time.Now,
		cacheLen: DefaultFrameCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.state == nil {
		s.state = NewState()
	}
	if s.registry == nil {
		s.registry = metrics.NewRegistry()
	}
	s.start = s.now()
	s.frames = metrics.GetOrRegisterCounter("server.frames", s.registry)
	s.cache = newFrameCache(s.cacheLen, s.registry)

	m := macaron.New()
	m.Use(macaron.Recovery())
	m.Use(requestLogger)
	m.Use(noCache)
	if s.static != "" {
		m.Use(macaron.Static(s.static, macaron.StaticOptions{
			SkipLogging: true,
			IndexFile:   "index.html",
		}))
	}

	m.Get("/frequency", func(ctx *macaron.Context) string {
		return s.getVar(ctx, "frequency")
	})
	m.Get("/saturation", func(ctx *macaron.Context) string {
		return s.getVar(ctx, "saturation")
	})
	m.Get("/background", s.background)
	m.Get("/state", s.snapshot)
	m.Get("/convert", s.convert)
	m.Get("/frame.png", s.frame)
	m.Get("/metrics", s.writeMetrics)
	s.m = m
	return s
}

// State returns the shared animation state.
func (s *Server) State() *State {
	return s.state
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.m
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.m,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	colorlab.Logger().Info("server: listening", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	colorlab.Logger().Info("server: stopped")
	return nil
}

func requestLogger(ctx *macaron.Context) {
	start := time.Now()
	ctx.Next()
	colorlab.Logger().Debug("server: request",
		slog.String("method", ctx.Req.Method),
		slog.String("path", ctx.Req.URL.Path),
		slog.Int("status", ctx.Resp.Status()),
		slog.Duration("elapsed", time.Since(start)))
}

func noCache(ctx *macaron.Context) {
	h := ctx.Header()
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
}

// getVar reads a variable, or sets it when a state query parameter is
// given. Values are integers scaled by 1000.
func (s *Server) getVar(ctx *macaron.Context, name string) string {
	ctx.Header().Set("Content-Type", "application/json")
	raw := ctx.Query("state")
	if raw == "" {
		v, _ := s.state.Var(name)
		return `{"state": "` + strconv.Itoa(v) + `"}`
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		ctx.Header().Set("Content-Type", "text/plain; charset=utf-8")
		ctx.Resp.WriteHeader(http.StatusBadRequest)
		return "not a number!"
	}
	s.state.SetVar(name, v)
	colorlab.Logger().Info("server: variable set", slog.String("name", name), slog.Int("value", v))
	return `{"state": "` + raw + `"}`
}

// background reads the background color, sets it with state=#rrggbbaa,
// or removes it with state=none.
func (s *Server) background(ctx *macaron.Context) string {
	ctx.Header().Set("Content-Type", "application/json")
	raw := ctx.Query("state")
	switch raw {
	case "":
	case "none":
		s.state.ClearBackground()
	default:
		c, err := colorlab.FromHex(raw)
		if err != nil {
			ctx.Header().Set("Content-Type", "text/plain; charset=utf-8")
			ctx.Resp.WriteHeader(http.StatusBadRequest)
			return "not a color!"
		}
		s.state.SetBackground(c)
	}
	bg, ok := s.state.Background()
	if !ok {
		return `{"state": "none"}`
	}
	return `{"state": "` + bg.Hex() + `"}`
}

func (s *Server) snapshot(ctx *macaron.Context) {
	writeJSON(ctx, http.StatusOK, s.state.Snapshot())
}

// convertKinds lists the /convert query parameters in lookup order.
var convertKinds = []string{"hex", "rgb", "cmyk", "hsl"}

func (s *Server) convert(ctx *macaron.Context) {
	for _, kind := range convertKinds {
		v := ctx.Query(kind)
		if v == "" {
			continue
		}
		c, err := report.Parse(kind, v)
		if err != nil {
			writeError(ctx, http.StatusBadRequest, err)
			return
		}
		writeJSON(ctx, http.StatusOK, report.Describe(c))
		return
	}
	writeError(ctx, http.StatusBadRequest, errors.New("one of hex, rgb, cmyk or hsl is required"))
}

func (s *Server) frame(ctx *macaron.Context) {
	w, err := sizeParam(ctx, "w", DefaultWidth)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err)
		return
	}
	h, err := sizeParam(ctx, "h", DefaultHeight)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err)
		return
	}
	t := s.now().Sub(s.start).Seconds()
	pinned := ctx.Query("t") != ""
	if pinned {
		t, err = strconv.ParseFloat(ctx.Query("t"), 64)
		if err != nil || math.IsNaN(t) || math.Abs(t) > MaxTime {
			writeError(ctx, http.StatusBadRequest, errors.New("t: not a number"))
			return
		}
	}
	name := ctx.Query("scene")
	if name == "" {
		name = "wheel"
	}
	scene, snap, err := s.state.Scene(name)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, err)
		return
	}

	key := frameKey{
		scene:      name,
		width:      w,
		height:     h,
		millis:     int64(math.Round(t * 1000)),
		frequency:  snap.Frequency,
		saturation: snap.Saturation,
	}
	if snap.Background != nil {
		key.background = snap.Background.Hex()
	}
	data, ok := []byte(nil), false
	if pinned {
		data, ok = s.cache.get(key)
	}
	if !ok {
		data, err = s.renderPNG(scene, w, h, t)
		if err != nil {
			writeError(ctx, http.StatusInternalServerError, err)
			return
		}
		if pinned {
			s.cache.set(key, data)
		}
	}

	ctx.Header().Set("Content-Type", "image/png")
	ctx.Resp.WriteHeader(http.StatusOK)
	_, _ = ctx.Resp.Write(data)
}

func (s *Server) renderPNG(scene *render.Scene, w, h int, t float64) ([]byte, error) {
	target := render.NewPixmapTarget(w, h)
	loop := render.NewLoop(scene, target, render.WithRegistry(s.registry))
	var buf bytes.Buffer
	err := loop.RenderAt(int(s.frames.Count()), t, func(render.Frame) error {
		return png.Encode(&buf, target.Image())
	})
	if err != nil {
		return nil, err
	}
	s.frames.Inc(1)
	return buf.Bytes(), nil
}

func (s *Server) writeMetrics(ctx *macaron.Context) {
	ctx.Header().Set("Content-Type", "application/json")
	ctx.Resp.WriteHeader(http.StatusOK)
	metrics.WriteJSONOnce(s.registry, ctx.Resp)
}

func sizeParam(ctx *macaron.Context, name string, def int) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 || v > MaxSize {
		return 0, errors.New(name + ": want an integer in 1.." + strconv.Itoa(MaxSize))
	}
	return v, nil
}

func writeJSON(ctx *macaron.Context, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(map[string]string{"error": err.Error()})
	}
	ctx.Header().Set("Content-Type", "application/json")
	ctx.Resp.WriteHeader(status)
	_, _ = ctx.Resp.Write(data)
}

func writeError(ctx *macaron.Context, status int, err error) {
	colorlab.Logger().Debug("server: bad request", slog.String("path", ctx.Req.URL.Path), slog.String("error", err.Error()))
	writeJSON(ctx, status, map[string]string{"error": err.Error()})
}
