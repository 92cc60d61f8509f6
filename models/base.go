package models

// DefaultPerPage 列表接口默认每页条数
const DefaultPerPage = 3

// MaxPerPage 每页条数上限
const MaxPerPage = 100

// PaginationQuery 每个请求构造一次的分页值对象，显式传入各服务
type PaginationQuery struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// PaginationResult 分页结果元信息
type PaginationResult struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

// NewPaginationQuery 规范化分页参数
func NewPaginationQuery(page, perPage int) PaginationQuery {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	return PaginationQuery{Page: page, PerPage: perPage}
}

// Offset 返回SQL偏移量
func (p PaginationQuery) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPaginationResult 创建一个新的分页结果对象
func NewPaginationResult(total int64, p PaginationQuery) PaginationResult {
	return PaginationResult{
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
	}
}
