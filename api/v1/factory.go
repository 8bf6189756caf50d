package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/repositories"
	"github.com/fitaafita/backend/utils"
)

// opCtx bounds a single database operation
func opCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 5*time.Second)
}

// pathID parses the :id route parameter into an ObjectID
func pathID(c *gin.Context) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Param("id"))
}

// hooks are the explicit lifecycle stages the generic handlers run around a
// write or read: preSave before an insert, postWrite detached after any
// successful write, load to eager-load relations on a single read, decorate
// to enrich a list before it is sent.
type hooks[T any] struct {
	preSave   func(c *gin.Context, doc *T) error
	postWrite func(doc *T)
	load      func(ctx context.Context, doc *T) error
	decorate  func(ctx context.Context, docs []T) error
}

// scopeFunc derives an implicit parent filter from the route, e.g. the tour
// of a nested review listing.
type scopeFunc func(c *gin.Context) (bson.M, error)

// createOne builds a handler that binds, validates and inserts a document
func createOne[T any](repo *repositories.Repository[T], bind func(*gin.Context) (*T, error), h hooks[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := bind(c)
		if err != nil {
			c.Error(err)
			return
		}

		if h.preSave != nil {
			if err := h.preSave(c, doc); err != nil {
				c.Error(err)
				return
			}
		}

		ctx, cancel := opCtx(c)
		defer cancel()

		if err := repo.Create(ctx, doc); err != nil {
			c.Error(err)
			return
		}

		if h.postWrite != nil {
			go h.postWrite(doc)
		}

		c.JSON(http.StatusCreated, gin.H{
			"status": "success",
			"data":   gin.H{"data": doc},
		})
	}
}

// getAll builds a listing handler driven by the query composer, optionally
// scoped to a parent resource.
func getAll[T any](repo *repositories.Repository[T], scope scopeFunc, h hooks[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		parent := bson.M{}
		if scope != nil {
			var err error
			parent, err = scope(c)
			if err != nil {
				c.Error(err)
				return
			}
		}

		features := utils.NewAPIFeatures(c.Request.URL.Query()).
			Filter().
			Sort().
			LimitFields().
			Paginate()

		ctx, cancel := opCtx(c)
		defer cancel()

		docs, err := repo.Find(ctx, features.Criteria(parent), features.FindOptions())
		if err != nil {
			c.Error(err)
			return
		}

		if h.decorate != nil {
			if err := h.decorate(ctx, docs); err != nil {
				c.Error(err)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"results": len(docs),
			"data":    gin.H{"data": docs},
		})
	}
}

// getOne builds a detail handler with optional relation loading
func getOne[T any](repo *repositories.Repository[T], h hooks[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			c.Error(err)
			return
		}

		ctx, cancel := opCtx(c)
		defer cancel()

		doc, err := repo.FindByID(ctx, id)
		if err != nil {
			c.Error(err)
			return
		}

		if h.load != nil {
			if err := h.load(ctx, doc); err != nil {
				c.Error(err)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   gin.H{"data": doc},
		})
	}
}

// updateOne builds a partial-update handler. The document is loaded, the
// bound changes applied, schema validation re-run against the merged
// document, and the result persisted.
func updateOne[T any](repo *repositories.Repository[T], apply func(*gin.Context, *T) error, h hooks[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			c.Error(err)
			return
		}

		ctx, cancel := opCtx(c)
		defer cancel()

		doc, err := repo.FindByID(ctx, id)
		if err != nil {
			c.Error(err)
			return
		}

		if err := apply(c, doc); err != nil {
			c.Error(err)
			return
		}

		if v, ok := any(doc).(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				c.Error(utils.NewAppError(err.Error(), http.StatusBadRequest))
				return
			}
		}

		if err := repo.Replace(ctx, id, doc); err != nil {
			c.Error(err)
			return
		}

		if h.postWrite != nil {
			go h.postWrite(doc)
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   gin.H{"data": doc},
		})
	}
}

// deleteOne builds a removal handler responding 204 on success
func deleteOne[T any](repo *repositories.Repository[T], h hooks[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			c.Error(err)
			return
		}

		ctx, cancel := opCtx(c)
		defer cancel()

		doc, err := repo.DeleteByID(ctx, id)
		if err != nil {
			c.Error(err)
			return
		}

		if h.postWrite != nil {
			go h.postWrite(doc)
		}

		c.Status(http.StatusNoContent)
	}
}
