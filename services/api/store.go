package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"stitchcms/pkg/bus"
)

// Store holds external dependencies required by the API layer. The ORM handles
// row-level CRUD; DB serves the raw read-side aggregation queries; Bus carries
// the outbound mail queue.
type Store struct {
	DB  *pgxpool.Pool
	ORM *gorm.DB
	Bus *bus.Bus
}
