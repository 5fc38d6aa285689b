package client

import (
	"context"

	"github.com/dmitrijs2005/docsession/internal/client/models"
)

// Store is the remote user collection as seen by the session service.
type Store interface {
	// FindUser returns the first record whose name equals name exactly,
	// or (nil, nil) when there is none.
	FindUser(ctx context.Context, name string) (models.Record, error)
	// CreateUser inserts rec and returns the record as stored, _id included.
	CreateUser(ctx context.Context, rec models.Record) (models.Record, error)
	// UpdateUser applies fields as a $set to the record with the given id.
	UpdateUser(ctx context.Context, id string, fields models.Record) error
	Ping(ctx context.Context) error
	Close() error
}
