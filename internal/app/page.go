package app

// Page параметры постраничной выдачи
type Page struct {
	ItemCount   int  `json:"item_count"`
	PageIndex   int  `json:"page_index"`
	PageSize    int  `json:"page_size"`
	PageCount   int  `json:"page_count"`
	Offset      int  `json:"offset"`
	Limit       int  `json:"limit"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPage номер страницы за пределами диапазона сводится к первой
func NewPage(itemCount, pageIndex, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = 10
	}
	p := Page{ItemCount: itemCount, PageSize: pageSize}
	p.PageCount = itemCount / pageSize
	if itemCount%pageSize > 0 {
		p.PageCount++
	}
	if itemCount == 0 || pageIndex < 1 || pageIndex > p.PageCount {
		p.PageIndex = 1
		return p
	}
	p.PageIndex = pageIndex
	p.Offset = pageSize * (pageIndex - 1)
	p.Limit = pageSize
	p.HasNext = p.PageIndex < p.PageCount
	p.HasPrevious = p.PageIndex > 1
	return p
}
