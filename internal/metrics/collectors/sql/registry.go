package sql

import (
	"database/sql"

	"github.com/liftedinit/propchain/internal/metrics/collectors"
)

// SqlCollectorFactory builds a collector reading the blocks mirrored to PostgreSQL.
type SqlCollectorFactory = collectors.Factory[*sql.DB]

var DefaultSqlRegistry = collectors.NewRegistry[*sql.DB]("database connection")

func RegisterCollectorFactory(factory SqlCollectorFactory) {
	DefaultSqlRegistry.Register(factory)
}
