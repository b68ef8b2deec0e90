package controllers

import (
	"strconv"

	"github.com/dmdhrumilmistry/chitragupta/database"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// pageParams reads page and pageSize from the query string, clamping both to
// sane values. Invalid or missing parameters fall back to the defaults
// instead of erroring.
func pageParams(pageStr, pageSizeStr string) (int, int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

type listResponse struct {
	Data     any               `json:"data"`
	PageInfo database.PageInfo `json:"pageInfo"`
}

func newListResponse(data any, total int64, page, pageSize int) listResponse {
	return listResponse{
		Data: data,
		PageInfo: database.PageInfo{
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		},
	}
}
