package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/compare"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
)

const (
	apiPrefix      = "/api/v1/"
	requestTimeout = 5 * time.Second
)

// Server exposes the calculation engine over HTTP
type Server struct {
	engine         *calculation.CalculationEngine
	compare        *compare.CompareEngine
	logger         *zap.Logger
	metrics        *Metrics
	metricsHandler fasthttp.RequestHandler

	// timeout bounds each operation; the engine checks it once per schedule year
	timeout time.Duration
	// now supplies the current year for reverse requests that omit it
	now func() time.Time
}

// New creates a server around an engine. Metrics go to a private registry so
// several servers can coexist in one process.
func New(engine *calculation.CalculationEngine, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := prometheus.NewRegistry()
	metrics, err := NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return &Server{
		engine:         engine,
		compare:        compare.NewCompareEngine(engine),
		logger:         logger,
		metrics:        metrics,
		metricsHandler: fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
		timeout:        requestTimeout,
		now:            time.Now,
	}, nil
}

// Handler routes requests to the operations
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	switch path {
	case "/healthz":
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok")
		return
	case "/metrics":
		s.metricsHandler(ctx)
		return
	}

	var op func(context.Context, []byte) (any, error)
	name := path[min(len(apiPrefix), len(path)):]
	switch path {
	case apiPrefix + "eligibility":
		op = s.eligibility
	case apiPrefix + "buildup":
		op = s.buildUp
	case apiPrefix + "forward":
		op = s.forward
	case apiPrefix + "reverse":
		op = s.reverse
	case apiPrefix + "compare":
		op = s.compareBlends
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "NOT_FOUND", "unknown endpoint "+path, "")
		return
	}
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST", "")
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	result, err := op(reqCtx, ctx.PostBody())
	elapsed := time.Since(start)
	s.metrics.Observe(name, domain.ErrorCode(err), elapsed)

	if err != nil {
		s.logger.Warn("request failed", zap.String("op", name), zap.Error(err), zap.Duration("elapsed", elapsed))
		s.writeDomainError(ctx, err)
		return
	}
	s.logger.Info("request", zap.String("op", name), zap.Duration("elapsed", elapsed))
	s.writeJSON(ctx, fasthttp.StatusOK, result)
}

// ListenAndServe serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:      s.Handler,
		Name:         "drawdown",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return srv.Shutdown()
	}
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return domain.NewValidationError("body", "malformed JSON: %v", err)
	}
	return nil
}

func (s *Server) eligibility(ctx context.Context, body []byte) (any, error) {
	var req EligibilityRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	if req.FromYear == 0 {
		req.FromYear = s.now().Year()
	}
	if req.ToYear == 0 {
		req.ToYear = req.FromYear + 9
	}
	return s.engine.EligibilityReport(ctx, req.Household, req.FromYear, req.ToYear)
}

func (s *Server) buildUp(ctx context.Context, body []byte) (any, error) {
	var plan domain.BuildUpPlan
	if err := decode(body, &plan); err != nil {
		return nil, err
	}
	if plan.ContributionTiming == "" {
		plan.ContributionTiming = domain.EndOfPeriod
	}
	return s.engine.BuildUp(ctx, plan)
}

func (s *Server) forward(ctx context.Context, body []byte) (any, error) {
	var req ForwardRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	return s.engine.Forward(ctx, req.Plan, req.Household, req.IncomeSources)
}

func (s *Server) reverse(ctx context.Context, body []byte) (any, error) {
	var req ReverseRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	s.defaultCurrentYear(&req.Request)
	return s.engine.Reverse(ctx, req.Request, req.Household, req.IncomeSources)
}

func (s *Server) compareBlends(ctx context.Context, body []byte) (any, error) {
	var req CompareRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	s.defaultCurrentYear(&req.Request)
	return s.compare.Compare(ctx, req.Request, req.Household, req.IncomeSources, compare.CompareOptions{
		Percentages: req.Percentages,
	})
}

func (s *Server) defaultCurrentYear(req *domain.ReverseRequest) {
	if req.CurrentYear == 0 {
		req.CurrentYear = s.now().Year()
	}
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, code, message, field string) {
	s.writeJSON(ctx, status, ErrorResponse{Status: status, Code: code, Message: message, Field: field})
}

func (s *Server) writeDomainError(ctx *fasthttp.RequestCtx, err error) {
	var field string
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		field = verr.Field
	}
	s.writeError(ctx, statusFor(err), domain.ErrorCode(err), err.Error(), field)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fasthttp.StatusBadRequest
	case errors.Is(err, domain.ErrUnresolvableEligibility):
		return fasthttp.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fasthttp.StatusServiceUnavailable
	default:
		return fasthttp.StatusInternalServerError
	}
}
