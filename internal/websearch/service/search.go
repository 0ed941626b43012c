package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lk2023060901/search-api/internal/pkg/errors"
	"github.com/lk2023060901/search-api/internal/pkg/logger"
	"github.com/lk2023060901/search-api/internal/pkg/response"
	"github.com/lk2023060901/search-api/internal/websearch/types"
	"go.uber.org/zap"
)

// MultiSearcher is the aggregation engine seen from the HTTP layer
type MultiSearcher interface {
	MultiSearch(ctx context.Context, req types.SearchRequest) *types.AggregatedResponse
}

type SearchService struct {
	uc MultiSearcher
}

func NewSearchService(uc MultiSearcher) *SearchService {
	return &SearchService{uc: uc}
}

// RegisterRoutes mounts POST and GET /search under rg
func (s *SearchService) RegisterRoutes(rg *gin.RouterGroup) {
	search := rg.Group("/search")
	search.POST("", s.SearchPost)
	search.GET("", s.SearchGet)
}

// SourceList accepts either a JSON array of names or one comma-delimited string.
// null and "" both mean "all sources".
type SourceList []string

func (l *SourceList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("sources must be a list of names or a comma-separated string")
	}
	*l = types.SplitSources(raw)
	return nil
}

type SearchRequest struct {
	Query     string     `json:"query" binding:"required"`
	Count     *int       `json:"count"`
	Freshness string     `json:"freshness"`
	Sources   SourceList `json:"sources"`
}

type SearchQuery struct {
	Query     string `form:"query" binding:"required"`
	Count     *int   `form:"count"`
	Freshness string `form:"freshness"`
	Sources   string `form:"sources"`
}

// SearchPost validates the JSON body; a count outside 1-20 is rejected.
func (s *SearchService) SearchPost(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInvalidParams))
		return
	}

	count := types.DefaultCount
	if req.Count != nil {
		if *req.Count < types.MinCount || *req.Count > types.MaxCount {
			response.ErrorWithCode(c, apperrors.ErrSearchInvalidCount, fmt.Sprintf("got %d", *req.Count))
			return
		}
		count = *req.Count
	}

	s.search(c, types.SearchRequest{
		Query:     req.Query,
		Count:     count,
		Freshness: req.Freshness,
		Sources:   req.Sources,
	})
}

// SearchGet reads query parameters; count is clamped to 1-20 instead of rejected.
func (s *SearchService) SearchGet(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInvalidParams))
		return
	}

	count := types.DefaultCount
	if q.Count != nil {
		count = types.ClampCount(*q.Count)
	}

	s.search(c, types.SearchRequest{
		Query:     q.Query,
		Count:     count,
		Freshness: q.Freshness,
		Sources:   types.SplitSources(q.Sources),
	})
}

func (s *SearchService) search(c *gin.Context, req types.SearchRequest) {
	if err := req.Normalize(); err != nil {
		response.ErrorWithCode(c, apperrors.ErrSearchEmptyQuery)
		return
	}

	ctx := c.Request.Context()
	logger.FromContext(ctx).Debug("multi search",
		zap.String("query", req.Query),
		zap.Int("count", req.Count),
		zap.String("freshness", req.Freshness),
		zap.Strings("sources", req.Sources))

	response.Success(c, s.uc.MultiSearch(ctx, req))
}
