package handler

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"trendkit/internal/core/cache"
	"trendkit/internal/core/logger"
	"trendkit/internal/core/trenderr"
	"trendkit/internal/features/trends/domain"
	"trendkit/internal/features/trends/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// TrendHandler handles HTTP requests for trend operations.
type TrendHandler struct {
	service ports.TrendService
}

// NewTrendHandler creates a new TrendHandler.
func NewTrendHandler(service ports.TrendService) *TrendHandler {
	return &TrendHandler{
		service: service,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Suggestion tells the caller how to recover.
	Suggestion string `json:"suggestion,omitempty"`
	// Parameter names the rejected input.
	Parameter string `json:"parameter,omitempty"`
	// ValidValues lists what Parameter accepts.
	ValidValues []string `json:"valid_values,omitempty"`
	// Partial holds rows collected before a timeout.
	Partial any `json:"partial,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// GeosResponse is the body of GET /trends/geos.
type GeosResponse struct {
	Geos []string `json:"geos"`
}

// GetTrending godoc
// @Summary Get realtime trending keywords
// @Description Returns the current trending searches from the Google Trends RSS feed
// @Tags trends
// @Produce json
// @Param geo query string false "Country code" default(KR)
// @Param limit query int false "Number of results (max 20)" default(10)
// @Param format query string false "minimal, standard or full" default(minimal)
// @Param cache query bool false "Use the cache" default(true)
// @Param ttl query int false "Cache TTL in seconds"
// @Success 200 {array} string
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /trends/trending [get]
func (h *TrendHandler) GetTrending(c *fiber.Ctx) error {
	q := domain.NewTrendingQuery()
	q.Geo = queryString(c, "geo", q.Geo)
	q.Format = domain.Format(queryString(c, "format", string(q.Format)))

	var err error
	if q.Limit, err = queryInt(c, "limit", q.Limit); err != nil {
		return h.fail(c, err)
	}
	opts, err := callOptions(c)
	if err != nil {
		return h.fail(c, err)
	}

	trends, err := h.service.Trending(c.UserContext(), q, opts...)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(trends)
}

// GetBulk godoc
// @Summary Get bulk trending keywords
// @Description Scrapes the trending table with a headless browser, optionally enriched with news, images and related queries
// @Tags trends
// @Produce json
// @Param geo query string false "Country code" default(KR)
// @Param hours query int false "Time window: 4, 24, 48 or 168" default(168)
// @Param limit query int false "Number of results (max 200)" default(100)
// @Param enrich query bool false "Attach news, images and related queries" default(false)
// @Param cache query bool false "Use the cache" default(true)
// @Param ttl query int false "Cache TTL in seconds"
// @Success 200 {object} domain.BulkReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /trends/bulk [get]
func (h *TrendHandler) GetBulk(c *fiber.Ctx) error {
	q := domain.NewBulkQuery()
	q.Geo = queryString(c, "geo", q.Geo)
	q.Enrich = c.QueryBool("enrich", false)

	var err error
	if q.Hours, err = queryInt(c, "hours", q.Hours); err != nil {
		return h.fail(c, err)
	}
	if q.Limit, err = queryInt(c, "limit", q.Limit); err != nil {
		return h.fail(c, err)
	}
	opts, err := callOptions(c)
	if err != nil {
		return h.fail(c, err)
	}

	report, err := h.service.Bulk(c.UserContext(), q, opts...)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

// GetRelated godoc
// @Summary Get related queries
// @Description Returns the top search queries related to a keyword
// @Tags trends
// @Produce json
// @Param keyword path string true "Keyword"
// @Param geo query string false "Country code" default(KR)
// @Param days query int false "Time window in days" default(90)
// @Param limit query int false "Number of results (max 100)" default(10)
// @Success 200 {array} string
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /trends/related/{keyword} [get]
func (h *TrendHandler) GetRelated(c *fiber.Ctx) error {
	keyword, err := url.PathUnescape(utils.CopyString(c.Params("keyword")))
	if err != nil {
		return h.fail(c, trenderr.Validation("keyword", "keyword is not a valid path segment", nil))
	}

	q := domain.NewRelatedQuery(keyword)
	q.Geo = queryString(c, "geo", q.Geo)
	if q.Days, err = queryInt(c, "days", q.Days); err != nil {
		return h.fail(c, err)
	}
	if q.Limit, err = queryInt(c, "limit", q.Limit); err != nil {
		return h.fail(c, err)
	}
	opts, err := callOptions(c)
	if err != nil {
		return h.fail(c, err)
	}

	related, err := h.service.Related(c.UserContext(), q, opts...)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(related)
}

// GetInterest godoc
// @Summary Get interest over time
// @Description Returns a 0-100 interest series per keyword
// @Tags trends
// @Produce json
// @Param keywords query string true "Comma separated keywords (max 5)"
// @Param geo query string false "Country code" default(KR)
// @Param days query int false "Time window in days" default(7)
// @Param platform query string false "web, youtube, images, news or froogle" default(web)
// @Success 200 {object} domain.Interest
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /trends/interest [get]
func (h *TrendHandler) GetInterest(c *fiber.Ctx) error {
	q := domain.NewInterestQuery(domain.SplitKeywords(queryString(c, "keywords", ""))...)
	q.Geo = queryString(c, "geo", q.Geo)
	q.Platform = domain.Platform(queryString(c, "platform", string(q.Platform)))

	var err error
	if q.Days, err = queryInt(c, "days", q.Days); err != nil {
		return h.fail(c, err)
	}
	opts, err := callOptions(c)
	if err != nil {
		return h.fail(c, err)
	}

	interest, err := h.service.Interest(c.UserContext(), q, opts...)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(interest)
}

// GetCompare godoc
// @Summary Compare keywords
// @Description Returns the mean interest of each keyword over the window
// @Tags trends
// @Produce json
// @Param keywords query string true "Comma separated keywords (max 5)"
// @Param geo query string false "Country code" default(KR)
// @Param days query int false "Time window in days" default(90)
// @Param platform query string false "web, youtube, images, news or froogle" default(web)
// @Success 200 {object} map[string]number
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /trends/compare [get]
func (h *TrendHandler) GetCompare(c *fiber.Ctx) error {
	q := domain.NewCompareQuery(domain.SplitKeywords(queryString(c, "keywords", ""))...)
	q.Geo = queryString(c, "geo", q.Geo)
	q.Platform = domain.Platform(queryString(c, "platform", string(q.Platform)))

	var err error
	if q.Days, err = queryInt(c, "days", q.Days); err != nil {
		return h.fail(c, err)
	}
	opts, err := callOptions(c)
	if err != nil {
		return h.fail(c, err)
	}

	cmp, err := h.service.Compare(c.UserContext(), q, opts...)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cmp)
}

// GetGeos godoc
// @Summary List supported country codes
// @Tags trends
// @Produce json
// @Success 200 {object} GeosResponse
// @Router /trends/geos [get]
func (h *TrendHandler) GetGeos(c *fiber.Ctx) error {
	return c.JSON(GeosResponse{Geos: h.service.Geos()})
}

// fail writes err as an ErrorResponse with the status of its kind.
func (h *TrendHandler) fail(c *fiber.Ctx, err error) error {
	rayID, _ := c.Locals("requestid").(string)
	resp := ErrorResponse{Message: err.Error(), RayID: rayID}
	status := fiber.StatusInternalServerError

	var te *trenderr.Error
	if errors.As(err, &te) {
		resp.Message = te.Message
		if te.Err != nil {
			resp.Message += ": " + te.Err.Error()
		}
		resp.Suggestion = te.Suggestion
		resp.Parameter = te.Parameter
		resp.ValidValues = te.ValidValues
		resp.Partial = te.Partial
		status = StatusOf(te.Kind)

		if te.Kind == trenderr.KindRateLimit {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(te.RetryAfter/time.Second)))
		}
	}

	log := logger.Get().With(zap.String("ray_id", rayID), zap.String("path", c.Path()), zap.Int("status", status))
	if status >= fiber.StatusInternalServerError {
		log.Error("Trend request failed", zap.Error(err))
	} else {
		log.Warn("Trend request rejected", zap.Error(err))
	}

	return c.Status(status).JSON(resp)
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind trenderr.Kind) int {
	switch kind {
	case trenderr.KindValidation:
		return fiber.StatusBadRequest
	case trenderr.KindRateLimit:
		return fiber.StatusTooManyRequests
	case trenderr.KindTimeout:
		return fiber.StatusGatewayTimeout
	case trenderr.KindService:
		return fiber.StatusServiceUnavailable
	case trenderr.KindDriver:
		return fiber.StatusInternalServerError
	case trenderr.KindExternal:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// queryString reads a query parameter into memory owned by the caller. Values end
// up as cache keys and inside cached results, which outlive the request buffer.
func queryString(c *fiber.Ctx, name, def string) string {
	return utils.CopyString(c.Query(name, def))
}

// queryInt reads an integer query parameter, rejecting values that do not parse.
func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, trenderr.Validation(name, fmt.Sprintf("%s must be an integer, got %q", name, raw), nil)
	}
	return v, nil
}

// callOptions reads the cache and ttl controls shared by every trend route.
func callOptions(c *fiber.Ctx) ([]cache.CallOption, error) {
	var opts []cache.CallOption
	if !c.QueryBool("cache", true) {
		opts = append(opts, cache.NoCache())
	}
	ttl, err := queryInt(c, "ttl", 0)
	if err != nil {
		return nil, err
	}
	if ttl < 0 {
		return nil, trenderr.Validation("ttl", fmt.Sprintf("ttl must not be negative, got %d", ttl), nil)
	}
	if ttl > 0 {
		opts = append(opts, cache.TTL(time.Duration(ttl)*time.Second))
	}
	return opts, nil
}
