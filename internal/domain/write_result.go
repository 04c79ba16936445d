package domain

// WriteResult lists the ids affected by one write call, per entity name
// WriteResult 写入结果，按实体名记录受影响的 ID
type WriteResult struct {
	affected map[string][]string
}

func NewWriteResult() *WriteResult {
	return &WriteResult{affected: make(map[string][]string)}
}

// Add 记录受影响的 ID
func (r *WriteResult) Add(entity string, ids ...string) {
	if len(ids) == 0 {
		return
	}
	r.affected[entity] = append(r.affected[entity], ids...)
}

// IDs returns the affected ids of entity; safe on a nil result
func (r *WriteResult) IDs(entity string) []string {
	if r == nil {
		return nil
	}
	return r.affected[entity]
}

// Contains reports whether id was affected for entity
func (r *WriteResult) Contains(entity, id string) bool {
	for _, v := range r.IDs(entity) {
		if v == id {
			return true
		}
	}
	return false
}

// Empty reports whether nothing was affected
func (r *WriteResult) Empty() bool {
	if r == nil {
		return true
	}
	for _, ids := range r.affected {
		if len(ids) > 0 {
			return false
		}
	}
	return true
}
