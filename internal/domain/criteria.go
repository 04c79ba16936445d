package domain

// Direction 排序方向
type Direction string

const (
	SortAsc  Direction = "ASC"
	SortDesc Direction = "DESC"
)

// Filter is an equality filter on a camelCase entity field
type Filter struct {
	Field string
	Value any
}

// Sorting 排序
type Sorting struct {
	Field     string
	Direction Direction
}

// Criteria describes a repository search: id list, equality filters,
// sortings, associations to load and an optional limit.
// Criteria 查询条件
type Criteria struct {
	IDs          []string
	Filters      []Filter
	Sortings     []Sorting
	Associations []string
	Limit        int
}

// NewCriteria 创建查询条件，可选传入 ID 列表
func NewCriteria(ids ...string) *Criteria {
	return &Criteria{IDs: ids}
}

// Equals 等值过滤
func Equals(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Sort 排序规则
func Sort(field string, dir Direction) Sorting {
	return Sorting{Field: field, Direction: dir}
}

func (c *Criteria) AddFilter(filters ...Filter) *Criteria {
	c.Filters = append(c.Filters, filters...)
	return c
}

func (c *Criteria) AddSorting(sortings ...Sorting) *Criteria {
	c.Sortings = append(c.Sortings, sortings...)
	return c
}

func (c *Criteria) AddAssociation(names ...string) *Criteria {
	for _, name := range names {
		if !c.HasAssociation(name) {
			c.Associations = append(c.Associations, name)
		}
	}
	return c
}

func (c *Criteria) HasAssociation(name string) bool {
	for _, a := range c.Associations {
		if a == name {
			return true
		}
	}
	return false
}

func (c *Criteria) SetLimit(n int) *Criteria {
	c.Limit = n
	return c
}
