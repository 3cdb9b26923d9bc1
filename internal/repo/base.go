package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is embedded by the GORM-backed repositories so every query is
// scoped to the caller's context.
type Base struct {
	conn *gorm.DB
}

func NewBase(conn *gorm.DB) Base {
	return Base{conn: conn}
}

// DB returns the connection bound to ctx. A nil context yields the raw
// connection, which is what migrations and test fixtures use.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.conn
	}
	return b.conn.WithContext(ctx)
}

// Ready reports whether a connection was supplied.
func (b Base) Ready() bool {
	return b.conn != nil
}
