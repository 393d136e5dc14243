package projection

import (
	"context"
	"errors"
	"net/http"
	"time"

	v1 "github.com/aevon-lab/bestsellers/internal/api/v1"
	httperr "github.com/aevon-lab/bestsellers/internal/core/errors"
	"github.com/aevon-lab/bestsellers/internal/core/sales"
	"github.com/aevon-lab/bestsellers/internal/recompute"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the query and admin routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/bestsellers", s.HandleQuery)
	r.GET("/v1/products/bestsellers", s.HandleListBestSellers)

	admin := r.Group("/v1/admin/bestsellers")
	if s.recomputer != nil {
		admin.POST("/recompute", s.HandleRecompute)
	}
	admin.POST("/refresh", s.HandleRefresh)
	admin.GET("/cache", s.HandleCacheStats)
	admin.DELETE("/cache", s.HandleInvalidateCache)
}

type queryParams struct {
	Period     string `form:"period"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
	PageSize   int    `form:"page_size"`
	Offset     *int   `form:"offset"`
	VendorID   string `form:"vendor_id"`
	CategoryID string `form:"category_id"`
	MinSales   int64  `form:"min_sales"`
}

func (p queryParams) toRequest() QueryRequest {
	limit := p.Limit
	if limit == 0 {
		limit = p.PageSize
	}
	return QueryRequest{
		Period:     p.Period,
		Page:       p.Page,
		Limit:      limit,
		Offset:     p.Offset,
		VendorID:   p.VendorID,
		CategoryID: p.CategoryID,
		MinSales:   p.MinSales,
	}
}

// bindQueryParams binds the query string. An empty offset= counts as unset so
// that page still applies.
func bindQueryParams(c *gin.Context) (queryParams, error) {
	var params queryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return queryParams{}, err
	}
	if c.Query("offset") == "" {
		params.Offset = nil
	}
	return params, nil
}

// HandleQuery handles GET /v1/bestsellers
// Query parameters: period, page, limit (or page_size), offset, vendor_id, category_id, min_sales
func (s *Service) HandleQuery(c *gin.Context) {
	params, err := bindQueryParams(c)
	if err != nil {
		writeInvalidParams(c, err)
		return
	}

	resp, err := s.Query(c.Request.Context(), params.toRequest())
	if err != nil {
		writeError(c, err, "Failed to query best sellers")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleRefresh handles POST /v1/admin/bestsellers/refresh
// Accepts the query parameters of HandleQuery plus ttl (Go duration, e.g. "30m").
func (s *Service) HandleRefresh(c *gin.Context) {
	params, err := bindQueryParams(c)
	if err != nil {
		writeInvalidParams(c, err)
		return
	}

	var ttl time.Duration
	if raw := c.Query("ttl"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidArgumentError,
				Message:   "Invalid ttl",
				Details:   "ttl must be a non-negative duration such as 30m",
			})
			return
		}
		ttl = parsed
	}

	resp, err := s.Refresh(c.Request.Context(), params.toRequest(), ttl)
	if err != nil {
		writeError(c, err, "Failed to refresh best sellers")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleListBestSellers handles GET /v1/products/bestsellers
// Query parameters: limit, offset
func (s *Service) HandleListBestSellers(c *gin.Context) {
	var params struct {
		Limit  int `form:"limit"`
		Offset int `form:"offset"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		writeInvalidParams(c, err)
		return
	}

	resp, err := s.ListBestSellers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		writeError(c, err, "Failed to list best sellers")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleRecompute handles POST /v1/admin/bestsellers/recompute
// A run with failed or skipped writes still returns 200 with status "partial".
func (s *Service) HandleRecompute(c *gin.Context) {
	summary, err := s.RunFullRecompute(c.Request.Context())
	if err != nil && !errors.Is(err, recompute.ErrPartialRecompute) {
		writeError(c, err, "Failed to recompute best sellers")
		return
	}

	c.JSON(http.StatusOK, NewRecomputeResponse(summary))
}

// HandleCacheStats handles GET /v1/admin/bestsellers/cache
func (s *Service) HandleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.CacheStats())
}

// HandleInvalidateCache handles DELETE /v1/admin/bestsellers/cache
// With ?key= only that entry is removed; otherwise the whole cache is cleared.
func (s *Service) HandleInvalidateCache(c *gin.Context) {
	key := c.Query("key")
	removed := s.InvalidateCache(key)
	if key != "" && removed == 0 {
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpCacheKeyNotFoundError,
			Message:   "Cache key not found",
			Details:   key,
		})
		return
	}

	c.JSON(http.StatusOK, v1.CacheInvalidateResponse{Removed: removed, Key: key})
}

func writeInvalidParams(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
		ErrorType: httperr.HttpInvalidArgumentError,
		Message:   "Invalid query parameters",
		Details:   err.Error(),
	})
}

// writeError maps service errors to status codes. Deadline is checked before
// data source so a timed out query reports 504 rather than 503.
func writeError(c *gin.Context, err error, message string) {
	status, errorType := http.StatusInternalServerError, httperr.HttpInternalError
	switch {
	case errors.Is(err, sales.ErrInvalidArgument):
		status, errorType = http.StatusBadRequest, httperr.HttpInvalidArgumentError
	case errors.Is(err, recompute.ErrRecomputeInProgress):
		status, errorType = http.StatusConflict, httperr.HttpRecomputeInProgress
	case errors.Is(err, context.DeadlineExceeded):
		status, errorType = http.StatusGatewayTimeout, httperr.HttpTimeoutError
	case errors.Is(err, sales.ErrDataSource):
		status, errorType = http.StatusServiceUnavailable, httperr.HttpDataSourceError
	}

	c.JSON(status, httperr.ErrorResponse{
		ErrorType: errorType,
		Message:   message,
		Details:   err.Error(),
	})
}

// NewRecomputeResponse converts a run summary into its wire form.
func NewRecomputeResponse(s recompute.Summary) v1.RecomputeResponse {
	failures := make([]v1.RecomputeFailure, 0, len(s.Failures))
	for _, f := range s.Failures {
		failures = append(failures, v1.RecomputeFailure{
			ProductID: f.ProductID,
			Rank:      f.Rank,
			Error:     f.Err.Error(),
		})
	}
	return v1.RecomputeResponse{
		RunID:           s.RunID,
		Trigger:         string(s.Trigger),
		Status:          s.Status(),
		StartedAt:       s.StartedAt,
		FinishedAt:      s.FinishedAt,
		DurationMs:      s.FinishedAt.Sub(s.StartedAt).Milliseconds(),
		CatalogSize:     s.CatalogSize,
		RankedProducts:  s.RankedProducts,
		Threshold:       s.Threshold,
		ThresholdRank:   s.ThresholdRank,
		BestSellers:     s.BestSellers,
		ProductsReset:   s.ProductsReset,
		ProductsUpdated: s.ProductsUpdated,
		ProductsSkipped: s.ProductsSkipped,
		Interrupted:     s.Interrupted,
		Failures:        failures,
		PolicyVersion:   s.PolicyVersion,
	}
}
