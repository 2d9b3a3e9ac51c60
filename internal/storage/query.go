package storage

// Query builds CouchDB Mango queries. Conditions on distinct fields are
// ANDed by the selector itself; repeated conditions on one field replace
// each other.
type Query struct {
	selector map[string]interface{}
	sort     []map[string]string
	limit    int
	skip     int
}

// NewQuery starts a query for one document type. An empty docType
// matches every type.
func NewQuery(docType string) *Query {
	q := &Query{selector: make(map[string]interface{})}
	if docType != "" {
		q.selector["@type"] = map[string]interface{}{"$eq": docType}
	}
	return q
}

// Eq adds an equality condition.
func (q *Query) Eq(field string, value interface{}) *Query {
	q.selector[field] = map[string]interface{}{"$eq": value}
	return q
}

// In matches documents whose field is any of the values.
func (q *Query) In(field string, values ...string) *Query {
	q.selector[field] = map[string]interface{}{"$in": values}
	return q
}

// Exists requires the field to be present.
func (q *Query) Exists(field string) *Query {
	q.selector[field] = map[string]interface{}{"$exists": true}
	return q
}

// Regex matches the field against a pattern.
func (q *Query) Regex(field, pattern string) *Query {
	q.selector[field] = map[string]interface{}{"$regex": pattern}
	return q
}

// Filters adds an equality condition per map entry. A nil map is a
// no-op, which lets callers pass user-supplied filters straight through.
func (q *Query) Filters(filters map[string]interface{}) *Query {
	for field, value := range filters {
		q.Eq(field, value)
	}
	return q
}

// Sort orders the result by field; direction is "asc" or "desc".
func (q *Query) Sort(field, direction string) *Query {
	q.sort = append(q.sort, map[string]string{field: direction})
	return q
}

// Limit caps the number of returned documents.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Skip offsets into the result.
func (q *Query) Skip(n int) *Query {
	q.skip = n
	return q
}

// Build produces the Mango query map kivik's Find expects.
func (q *Query) Build() map[string]interface{} {
	query := map[string]interface{}{
		"selector": q.selector,
	}
	if len(q.sort) > 0 {
		query["sort"] = q.sort
	}
	if q.limit > 0 {
		query["limit"] = q.limit
	}
	if q.skip > 0 {
		query["skip"] = q.skip
	}
	return query
}
