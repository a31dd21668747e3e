package labdesk

import (
	"encoding/json"
	"fmt"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
	SortNone SortDirection = ""
)

func (s SortDirection) String() string {
	return string(s)
}

// bounds keep the OFFSET of the rendered query far away from an int overflow
const (
	maxPage     = 1000000
	maxPageSize = 1000
)

type Pageable struct {
	Page      int           `form:"page,default=0" json:"page" binding:"min=0,max=1000000"`        // The desired page number
	PageSize  int           `form:"pageSize,default=25" json:"pageSize" binding:"min=0,max=1000"` // The desired number of items per page
	Sort      string        `form:"sort" json:"sort"`                                             // The sorting parameter
	Direction SortDirection `form:"direction" json:"direction" binding:"omitempty,oneof=asc desc"`
}

func (p *Pageable) UnmarshalJSON(data []byte) error {
	type pageableAlias Pageable
	pageable := pageableAlias{
		Page:     0,
		PageSize: 25,
	}
	if err := json.Unmarshal(data, &pageable); err != nil {
		return err
	}
	*p = Pageable(pageable)
	return nil
}

func (p *Pageable) IsPaged() bool {
	return p.PageSize > 0
}

func (p *Pageable) IsUnPaged() bool {
	return p.PageSize == 0
}

type Page struct {
	Items      interface{} `json:"content"`     // The items
	Page       int         `json:"currentPage"` // The actual page number
	PageSize   int         `json:"pageSize"`    // The number of items per page
	TotalCount int         `json:"totalCount"`  // The total count of items
	TotalPages int         `json:"totalPages"`  // The total pages
}

func NewPage(pageable Pageable, totalCount int, items interface{}) Page {
	var totalPages int
	if pageable.IsUnPaged() {
		if totalCount > 0 {
			totalPages = 1
		}

		return Page{
			Items:      items,
			Page:       0,
			PageSize:   0,
			TotalCount: totalCount,
			TotalPages: totalPages,
		}
	}

	if totalCount > 0 {
		totalPages = (totalCount + pageable.PageSize - 1) / pageable.PageSize
	}

	return Page{
		Items:      items,
		Page:       pageable.Page,
		PageSize:   pageable.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// applyPagination renders ORDER BY, LIMIT and OFFSET. Only columns listed in sortColumns can be sorted by,
// anything else falls back to defaultOrder. Page and page size are clamped to their bounds.
func applyPagination(pageable Pageable, sortColumns map[string]string, defaultOrder string) string {
	order := defaultOrder
	if column, ok := sortColumns[pageable.Sort]; ok {
		direction := SortAsc
		if pageable.Direction == SortDesc {
			direction = SortDesc
		}
		order = column + " " + direction.String()
	}

	query := " ORDER BY " + order
	if pageable.IsPaged() {
		page := min(max(pageable.Page, 0), maxPage)
		pageSize := min(pageable.PageSize, maxPageSize)
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, page*pageSize)
	}
	return query
}
