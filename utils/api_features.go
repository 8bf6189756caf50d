package utils

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reserved query keys consumed by the composer itself. They never reach the
// equality-filter stage.
var excludedFields = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// Comparison suffixes allowed in bracket notation, e.g. price[gte]=100.
// Only these four are ever rewritten into Mongo operators; everything else
// from user input stays a plain equality match, so arbitrary operators can
// not be injected through the query string.
var comparisonOps = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

// APIFeatures builds a filtered, sorted, paginated, field-limited read query
// from a raw request query string. Stages chain in order
// Filter().Sort().LimitFields().Paginate(); the caller executes the result
// exactly once via Criteria() and FindOptions().
type APIFeatures struct {
	queryString url.Values
	filter      bson.M
	opts        *options.FindOptions
}

// NewAPIFeatures creates a composer over a parsed query string
func NewAPIFeatures(queryString url.Values) *APIFeatures {
	return &APIFeatures{
		queryString: queryString,
		filter:      bson.M{},
		opts:        options.Find(),
	}
}

// Filter strips the reserved keys and turns the remaining parameters into
// equality or range conditions.
func (f *APIFeatures) Filter() *APIFeatures {
	for key, values := range f.queryString {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		field, op, ok := splitBracketKey(key)
		if excludedFields[field] {
			continue
		}

		if ok {
			mongoOp, allowed := comparisonOps[op]
			if !allowed {
				// Unknown operator suffixes are dropped, not passed through.
				continue
			}
			cond, exists := f.filter[field].(bson.M)
			if !exists {
				cond = bson.M{}
			}
			cond[mongoOp] = coerceValue(value)
			f.filter[field] = cond
			continue
		}

		f.filter[field] = coerceValue(value)
	}

	return f
}

// Sort applies a comma-separated sort list ("-" prefix = descending) with a
// stable _id tie-break; defaults to newest first.
func (f *APIFeatures) Sort() *APIFeatures {
	sort := bson.D{}

	if raw := f.queryString.Get("sort"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if strings.HasPrefix(field, "-") {
				sort = append(sort, bson.E{Key: field[1:], Value: -1})
			} else {
				sort = append(sort, bson.E{Key: field, Value: 1})
			}
		}
	}

	if len(sort) == 0 {
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}

	// Insertion-order tie-break keeps pagination stable. Skipped when the
	// caller sorts on _id already; Mongo rejects duplicate sort keys.
	hasID := false
	for _, e := range sort {
		if e.Key == "_id" {
			hasID = true
			break
		}
	}
	if !hasID {
		sort = append(sort, bson.E{Key: "_id", Value: 1})
	}

	f.opts.SetSort(sort)
	return f
}

// LimitFields restricts the returned fields to a comma-separated projection
// list; "-" prefixed names are exclusions. Without the parameter no
// projection is applied.
func (f *APIFeatures) LimitFields() *APIFeatures {
	raw := f.queryString.Get("fields")
	if raw == "" {
		return f
	}

	projection := bson.M{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if strings.HasPrefix(field, "-") {
			projection[field[1:]] = 0
		} else {
			projection[field] = 1
		}
	}

	if len(projection) > 0 {
		f.opts.SetProjection(projection)
	}
	return f
}

// Paginate computes skip/limit from page (1-based, default 1) and limit
// (default 100). No upper bound is enforced on limit.
func (f *APIFeatures) Paginate() *APIFeatures {
	page := positiveIntOrDefault(f.queryString.Get("page"), 1)
	limit := positiveIntOrDefault(f.queryString.Get("limit"), 100)

	f.opts.SetSkip(int64((page - 1) * limit))
	f.opts.SetLimit(int64(limit))
	return f
}

// Criteria returns the composed filter, merged with an optional scope (e.g.
// the parent tour of a nested review listing). Scope entries win over
// user-supplied filters on the same field.
func (f *APIFeatures) Criteria(scope bson.M) bson.M {
	merged := bson.M{}
	for k, v := range f.filter {
		merged[k] = v
	}
	for k, v := range scope {
		merged[k] = v
	}
	return merged
}

// FindOptions returns the accumulated sort/projection/pagination options
func (f *APIFeatures) FindOptions() *options.FindOptions {
	return f.opts
}

// splitBracketKey parses "price[gte]" into ("price", "gte", true). Plain
// keys come back with ok=false.
func splitBracketKey(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

// coerceValue converts a query-string value into the type Mongo should
// compare against. The driver does no schema casting, so numbers and bools
// have to be recognized here.
func coerceValue(value string) interface{} {
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if fl, err := strconv.ParseFloat(value, 64); err == nil {
		return fl
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

func positiveIntOrDefault(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
