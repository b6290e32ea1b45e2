package query

/*
	Description:
		Package `query` wraps https://github.com/mongodb/mongo-go-driver with the few
		operations the engine stores need, tagged with metrics and slow query logs.
		See https://godoc.org/go.mongodb.org/mongo-driver/mongo for driver details.

	Use Case:
		Please Read the testcases for usage of each method
*/

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is error for unindexed query
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

// Index describes a compound index, keys prefixed with "-" are descending
type Index struct {
	Keys   []string
	Unique bool
}

//Mongo abstract the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne get data from the table
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Upsert replaces the entry matched by selector, or inserts it
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search sort order by `sort` argument (ex "timestamp" ascending, or "-timestamp" descending),
	// more keys are comma separated like "-timestamp,-seq".
	// if `sort` is "", the sort action is skipped, and the MongoDB does not guarantee the order of query results.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Remove remove an entry from the table
	// Return ErrNotFound if selector does not match any documents
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// IncrementMany increases fields and their values and decodes the updated entry into result.
	// If entry not exist, insert with set statement.
	IncrementMany(context ctx.Ctx, table domain.Table, query interface{}, fieldAndValues bson.M, set bson.M, result interface{}) error

	// Swap applies set to the matched entry and decodes the entry as it was before into result.
	// Return ErrNotFound if selector does not match any documents
	Swap(context ctx.Ctx, table domain.Table, selector interface{}, set bson.M, result interface{}) error

	// Update applies the update operators to the first entry matched by selector.
	// Return ErrNotFound if selector does not match any documents
	Update(context ctx.Ctx, table domain.Table, selector interface{}, update bson.M) error

	EnsureIndexes(context ctx.Ctx, table domain.Table, indexes ...Index) error

	RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error
}
