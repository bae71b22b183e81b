// Package repositories holds the persistence layer for catalog records.
package repositories

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/tokri/app/models"
)

var (
	// ErrProductNotFound is returned when no record matches the given id,
	// including ids that are not valid ObjectIDs.
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository is the product record store contract. The MongoDB
// implementation lives in mongo_repository.go; tests substitute mocks.
type ProductRepository interface {
	// List returns all products, newest first (createdOn descending).
	List(ctx context.Context) ([]models.Product, error)

	// Get returns the product with the given id or ErrProductNotFound.
	Get(ctx context.Context, id string) (*models.Product, error)

	// Create assigns ID and CreatedOn, inserts p, and fills both fields in
	// on the passed record.
	Create(ctx context.Context, p *models.Product) error

	// Update applies a partial $set of fields to the record with the given
	// id. Fields absent from the patch are untouched; "_id" and "createdOn"
	// are never written. Returns ErrProductNotFound when nothing matches.
	Update(ctx context.Context, id string, fields map[string]interface{}) error

	// Delete removes the record with the given id. Deleting an absent
	// record is not an error; callers cannot distinguish "deleted" from
	// "was already gone".
	Delete(ctx context.Context, id string) error
}
