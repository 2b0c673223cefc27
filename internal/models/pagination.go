package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PaginationSearchQuery represents the paging query parameters shared by every list endpoint
type PaginationSearchQuery struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"pageSize" json:"pageSize"`
	Search   string `form:"search" json:"search,omitempty"`
}

// TransactionQuery narrows expense and income listings
type TransactionQuery struct {
	PaginationSearchQuery
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
}

// PagedResponse is one page of projected rows plus the total count of rows matching the filters
type PagedResponse[T any] struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	Data       []T   `json:"data"`
}
