package utils

import (
	"net/url"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestFilter(t *testing.T) {
	t.Run("reserved keys never reach the filter", func(t *testing.T) {
		query := url.Values{
			"page":       {"2"},
			"sort":       {"price"},
			"limit":      {"10"},
			"fields":     {"name"},
			"difficulty": {"easy"},
		}

		filter := NewAPIFeatures(query).Filter().Criteria(nil)

		want := bson.M{"difficulty": "easy"}
		if !reflect.DeepEqual(filter, want) {
			t.Errorf("expected %v, got %v", want, filter)
		}
	})

	t.Run("rewrites comparison suffixes into Mongo operators", func(t *testing.T) {
		query := url.Values{
			"price[gte]":        {"500"},
			"price[lt]":         {"2000"},
			"duration[gt]":      {"5"},
			"maxGroupSize[lte]": {"25"},
		}

		filter := NewAPIFeatures(query).Filter().Criteria(nil)

		want := bson.M{
			"price":        bson.M{"$gte": int64(500), "$lt": int64(2000)},
			"duration":     bson.M{"$gt": int64(5)},
			"maxGroupSize": bson.M{"$lte": int64(25)},
		}
		if !reflect.DeepEqual(filter, want) {
			t.Errorf("expected %v, got %v", want, filter)
		}
	})

	t.Run("drops unknown operator suffixes", func(t *testing.T) {
		query := url.Values{
			"price[where]": {"1"},
			"price[ne]":    {"0"},
			"name[regex]":  {".*"},
		}

		filter := NewAPIFeatures(query).Filter().Criteria(nil)

		if len(filter) != 0 {
			t.Errorf("expected empty filter, got %v", filter)
		}
	})

	t.Run("coerces values by type", func(t *testing.T) {
		query := url.Values{
			"duration":       {"5"},
			"ratingsAverage": {"4.5"},
			"secretTour":     {"true"},
			"difficulty":     {"medium"},
		}

		filter := NewAPIFeatures(query).Filter().Criteria(nil)

		want := bson.M{
			"duration":       int64(5),
			"ratingsAverage": 4.5,
			"secretTour":     true,
			"difficulty":     "medium",
		}
		if !reflect.DeepEqual(filter, want) {
			t.Errorf("expected %v, got %v", want, filter)
		}
	})

	t.Run("scope wins over user filters", func(t *testing.T) {
		query := url.Values{"tour": {"000000000000000000000000"}}

		filter := NewAPIFeatures(query).Filter().Criteria(bson.M{"tour": "scoped"})

		if filter["tour"] != "scoped" {
			t.Errorf("expected scope to win, got %v", filter["tour"])
		}
	})
}

func TestSort(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  bson.D
	}{
		{
			name:  "default newest first",
			query: "",
			want:  bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}},
		},
		{
			name:  "descending prefix",
			query: "sort=-ratingsAverage,price",
			want: bson.D{
				{Key: "ratingsAverage", Value: -1},
				{Key: "price", Value: 1},
				{Key: "_id", Value: 1},
			},
		},
		{
			name:  "single ascending field",
			query: "sort=price",
			want:  bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}},
		},
		{
			name:  "explicit _id sort gets no duplicate tie-break",
			query: "sort=-_id",
			want:  bson.D{{Key: "_id", Value: -1}},
		},
		{
			name:  "_id mixed into a sort list gets no duplicate tie-break",
			query: "sort=price,_id",
			want:  bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("bad query: %v", err)
			}

			opts := NewAPIFeatures(values).Sort().FindOptions()

			if !reflect.DeepEqual(opts.Sort, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, opts.Sort)
			}
		})
	}
}

func TestLimitFields(t *testing.T) {
	t.Run("no projection without fields param", func(t *testing.T) {
		opts := NewAPIFeatures(url.Values{}).LimitFields().FindOptions()

		if opts.Projection != nil {
			t.Errorf("expected no projection, got %v", opts.Projection)
		}
	})

	t.Run("inclusion and exclusion lists", func(t *testing.T) {
		query := url.Values{"fields": {"name,price,-createdAt"}}

		opts := NewAPIFeatures(query).LimitFields().FindOptions()

		want := bson.M{"name": 1, "price": 1, "createdAt": 0}
		if !reflect.DeepEqual(opts.Projection, want) {
			t.Errorf("expected %v, got %v", want, opts.Projection)
		}
	})
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantSkip  int64
		wantLimit int64
	}{
		{name: "defaults", query: "", wantSkip: 0, wantLimit: 100},
		{name: "page 2 limit 10", query: "page=2&limit=10", wantSkip: 10, wantLimit: 10},
		{name: "page 5 limit 3", query: "page=5&limit=3", wantSkip: 12, wantLimit: 3},
		{name: "garbage falls back to defaults", query: "page=abc&limit=-4", wantSkip: 0, wantLimit: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("bad query: %v", err)
			}

			opts := NewAPIFeatures(values).Paginate().FindOptions()

			if opts.Skip == nil || *opts.Skip != tc.wantSkip {
				t.Errorf("expected skip %d, got %v", tc.wantSkip, opts.Skip)
			}
			if opts.Limit == nil || *opts.Limit != tc.wantLimit {
				t.Errorf("expected limit %d, got %v", tc.wantLimit, opts.Limit)
			}
		})
	}
}

func TestSplitBracketKey(t *testing.T) {
	cases := []struct {
		key       string
		wantField string
		wantOp    string
		wantOK    bool
	}{
		{"price[gte]", "price", "gte", true},
		{"price", "price", "", false},
		{"[gte]", "[gte]", "", false},
		{"price[gte", "price[gte", "", false},
	}

	for _, tc := range cases {
		field, op, ok := splitBracketKey(tc.key)
		if field != tc.wantField || op != tc.wantOp || ok != tc.wantOK {
			t.Errorf("splitBracketKey(%q) = (%q, %q, %v), expected (%q, %q, %v)",
				tc.key, field, op, ok, tc.wantField, tc.wantOp, tc.wantOK)
		}
	}
}
