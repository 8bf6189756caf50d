package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitaafita/backend/database"
)

// Repository is a generic data-access layer over a single collection. Each
// entity supplies a default filter that scopes every list read (e.g. hiding
// secret tours or soft-deleted users); direct ID lookups bypass it so that
// administrative paths can still address such records.
type Repository[T any] struct {
	collection    string
	defaultFilter bson.M
}

func newRepository[T any](collection string, defaultFilter bson.M) *Repository[T] {
	return &Repository[T]{collection: collection, defaultFilter: defaultFilter}
}

func (r *Repository[T]) coll() *mongo.Collection {
	return database.Collection(r.collection)
}

// scoped merges the entity's default filter into a query filter. The default
// filter is applied last, so a caller condition on the same field can never
// strip the exclusion (a public ?secretTour=true must not surface secret
// tours).
func (r *Repository[T]) scoped(filter bson.M) bson.M {
	if len(r.defaultFilter) == 0 {
		return filter
	}
	merged := bson.M{}
	for k, v := range filter {
		merged[k] = v
	}
	for k, v := range r.defaultFilter {
		merged[k] = v
	}
	return merged
}

// Create inserts a document and writes the generated ObjectID back into it
func (r *Repository[T]) Create(ctx context.Context, doc *T) error {
	res, err := r.coll().InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		if e, hasID := any(doc).(interface{ SetID(primitive.ObjectID) }); hasID {
			e.SetID(oid)
		}
	}
	return nil
}

// FindByID retrieves a document by ID, bypassing the default filter
func (r *Repository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindOne retrieves the first document matching the filter, with the default
// filter applied.
func (r *Repository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := r.coll().FindOne(ctx, r.scoped(filter)).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Find retrieves all documents matching the filter with the given options,
// with the default filter applied.
func (r *Repository[T]) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := r.coll().Find(ctx, r.scoped(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Replace overwrites a document by ID. Returns mongo.ErrNoDocuments when the
// document does not exist.
func (r *Repository[T]) Replace(ctx context.Context, id primitive.ObjectID, doc *T) error {
	res, err := r.coll().ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateByID applies a partial $set update and returns the updated document.
// Returns mongo.ErrNoDocuments when the document does not exist.
func (r *Repository[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc T
	err := r.coll().
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteByID removes a document by ID and returns it. Returns
// mongo.ErrNoDocuments when the document does not exist.
func (r *Repository[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := r.coll().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Aggregate runs a pipeline and decodes all results into out
func (r *Repository[T]) Aggregate(ctx context.Context, pipeline []bson.M, out interface{}) error {
	cursor, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
