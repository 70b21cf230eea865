package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaginationParams struct {
	Page     int    `json:"page" form:"page"`
	PageSize int    `json:"page_size" form:"page_size"`
	Sort     string `json:"sort" form:"sort"`
	Order    string `json:"order" form:"order"`
}

type PaginationMeta struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"page_size"`
	Total        int64 `json:"total"`
	TotalPages   int   `json:"total_pages"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
	NextPage     *int  `json:"next_page,omitempty"`
	PreviousPage *int  `json:"previous_page,omitempty"`
}

func GetPaginationParams(c *gin.Context) *PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	sort := c.DefaultQuery("sort", "created_at")
	order := c.DefaultQuery("order", "desc")

	if page < 1 {
		page = 1
	}
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return &PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Sort:     sort,
		Order:    order,
	}
}

// DefaultPaginationParams is the non-HTTP entry point for callers that
// have no gin context, such as tests and internal jobs.
func DefaultPaginationParams() *PaginationParams {
	return &PaginationParams{
		Page:     1,
		PageSize: DefaultPageSize,
		Sort:     "created_at",
		Order:    "desc",
	}
}

func (p *PaginationParams) GetSkip() int64 {
	return int64((p.Page - 1) * p.PageSize)
}

func (p *PaginationParams) GetLimit() int64 {
	return int64(p.PageSize)
}

func (p *PaginationParams) GetSortOptions() *options.FindOptions {
	sortOrder := -1
	if p.Order == "asc" {
		sortOrder = 1
	}

	return options.Find().
		SetSort(bson.D{{Key: p.Sort, Value: sortOrder}}).
		SetSkip(p.GetSkip()).
		SetLimit(p.GetLimit())
}

func CalculatePaginationMeta(params *PaginationParams, total int64) *PaginationMeta {
	totalPages := int(math.Ceil(float64(total) / float64(params.PageSize)))

	meta := &PaginationMeta{
		Page:        params.Page,
		PageSize:    params.PageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
	}

	if meta.HasNext {
		next := params.Page + 1
		meta.NextPage = &next
	}
	if meta.HasPrevious {
		previous := params.Page - 1
		meta.PreviousPage = &previous
	}

	return meta
}
