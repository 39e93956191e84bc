package report

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stay-tools/pms-atlas/pkg/adapters"
	"github.com/stay-tools/pms-atlas/pkg/models/api"
	"github.com/stay-tools/pms-atlas/pkg/models/domain"
	"github.com/stay-tools/pms-atlas/pkg/services/messaging"
	"github.com/stay-tools/pms-atlas/pkg/services/period"
	"github.com/stay-tools/pms-atlas/pkg/services/pms"
	reportsvc "github.com/stay-tools/pms-atlas/pkg/services/report"
)

// Handler serves the report API and the bot webhook against one bound
// engine.
type Handler struct {
	orchestrator *reportsvc.Orchestrator
	resolver     *period.Resolver
	registry     pms.Registry
	messenger    messaging.Notifier
	validate     *validator.Validate
}

func NewHandler(
	orch *reportsvc.Orchestrator,
	resolver *period.Resolver,
	registry pms.Registry,
	messenger messaging.Notifier,
) *Handler {
	return &Handler{
		orchestrator: orch,
		resolver:     resolver,
		registry:     registry,
		messenger:    messenger,
		validate:     validator.New(),
	}
}

// CreateReport executes a batch of (metric, period) combinations and
// returns the rendered lines in request order.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics := make([]domain.Metric, 0, len(req.Metrics))
	for _, name := range req.Metrics {
		metric, ok := ParseMetric(name)
		if !ok {
			logger.Debug().Str("metric", name).Msg("skipping unknown metric")
			continue
		}
		metrics = append(metrics, metric)
	}

	periods, err := h.resolvePeriods(req.Periods)
	if err != nil {
		// A period that fails to resolve is fatal to the whole batch.
		writeError(w, http.StatusBadRequest, reportsvc.RenderFatal(err))
		return
	}

	requests := reportsvc.ExpandBatch(metrics, periods, req.ServiceName)
	results := h.orchestrator.Run(ctx, requests)

	writeJSON(w, logger, api.ReportResponse{Lines: adapters.MapResultsToAPI(results)})
}

// BotWebhook handles a free-text chat message of the shape
// "<period token> <metric words>" and replies through the channel.
func (h *Handler) BotWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply := h.answer(r, req.Message)

	resp, err := h.messenger.MessageText(ctx, reply, req.ReplyToken)
	if err != nil {
		logger.Error().Err(err).Msg("failed to reply through the messaging channel")
		writeError(w, http.StatusBadGateway, "failed to reach the messaging channel")
		return
	}

	writeJSON(w, logger, map[string]any{"statusCode": resp.StatusCode, "ok": resp.OK})
}

// ListBackends reports which backends this deployment can serve.
func (h *Handler) ListBackends(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	writeJSON(w, logger, api.BackendsResponse{Backends: h.registry.ListBackends()})
}

func (h *Handler) answer(r *http.Request, message string) string {
	ctx := r.Context()

	intent, ok := parseIntent(message)
	if !ok {
		return "Sorry, I don't understand."
	}

	p, err := h.resolver.Resolve(intent.periodExpr)
	if err != nil {
		return reportsvc.RenderFatal(err)
	}

	req, ok := reportsvc.BuildRequest(intent.metric, p, intent.serviceName)
	if !ok {
		return "Sorry, I don't understand."
	}

	results := h.orchestrator.Run(ctx, []domain.MetricRequest{req})
	return reportsvc.Render(results[0])
}

type intent struct {
	periodExpr  string
	metric      domain.Metric
	serviceName string
}

var periodAliases = map[string]string{
	"today": "today",
	"wtd":   "week to date",
	"mtd":   "month to date",
	"ytd":   "year to date",
}

// parseIntent reads "<period token> <metric words>", e.g. "mtd occupancy
// rate" or "today spa revenue".
func parseIntent(message string) (intent, bool) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(message)))
	if len(words) < 2 {
		return intent{}, false
	}

	periodExpr, ok := periodAliases[words[0]]
	if !ok {
		// A leading date token is also accepted.
		periodExpr = words[0]
	}

	rest := words[1:]
	if metric, ok := ParseMetric(strings.Join(rest, " ")); ok {
		return intent{periodExpr: periodExpr, metric: metric}, true
	}

	// "<service> revenue" asks for ancillary service revenue.
	if len(rest) == 2 && rest[1] == "revenue" {
		return intent{
			periodExpr:  periodExpr,
			metric:      domain.MetricServiceRevenue,
			serviceName: rest[0],
		}, true
	}

	return intent{}, false
}

// ParseMetric normalizes a metric name ("occupancy rate", "adr",
// "revenue-par") into its canonical identifier.
func ParseMetric(name string) (domain.Metric, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
	switch normalized {
	case "occupancy-rate":
		return domain.MetricOccupancyRate, true
	case "average-daily-rate", "adr":
		return domain.MetricAverageDailyRate, true
	case "revenue-par", "rev-par", "revpar":
		return domain.MetricRevenuePAR, true
	case "service-revenue":
		return domain.MetricServiceRevenue, true
	default:
		return "", false
	}
}

func (h *Handler) resolvePeriods(expressions []api.PeriodExpression) ([]domain.Period, error) {
	if len(expressions) == 0 {
		p, err := h.resolver.Resolve("")
		if err != nil {
			return nil, err
		}
		return []domain.Period{p}, nil
	}

	periods := make([]domain.Period, 0, len(expressions))
	for _, expr := range expressions {
		var (
			p   domain.Period
			err error
		)
		if expr.IsRange {
			p, err = h.resolver.ResolveRange(expr.StartDate, expr.EndDate)
		} else {
			p, err = h.resolver.Resolve(expr.Text)
		}
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, nil
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: message})
}
