package core

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Row is one record as returned by a single query execution: column name →
// scalar value. Column names are query-specific; the aggregation stage decodes
// the columns it needs into a typed row shape and ignores the rest.
type Row map[string]any

// Executor is the single synchronous boundary to the relational store.
// Implementations must bind parameters positionally ($1…$n), return an empty
// slice (not an error) when a query matches no rows, and surface store
// failures as *DataAccessError. No caching or retry semantics are assumed.
type Executor interface {
	// Select runs a query and returns all matching rows in query order.
	Select(ctx context.Context, query string, args ...any) ([]Row, error)

	// SelectOne runs a query expected to yield at most one row.
	// A nil Row with a nil error means the query matched nothing.
	SelectOne(ctx context.Context, query string, args ...any) (Row, error)
}

// ── Row field coercion ────────────────────────────────────────────────────────
//
// The store hands back driver-native values (int64, float64, string,
// pgtype.Numeric, time.Time). These helpers normalize a named column into the
// scalar type a decoder wants, treating NULL and absent columns as zero values.

func rowString(r Row, col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func rowInt(r Row, col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

func rowDecimal(r Row, col string) decimal.Decimal {
	switch v := r[col].(type) {
	case decimal.Decimal:
		return v
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case pgtype.Numeric:
		return numericToDecimal(v)
	case *pgtype.Numeric:
		if v == nil {
			return decimal.Zero
		}
		return numericToDecimal(*v)
	default:
		return decimal.Zero
	}
}

func rowTime(r Row, col string) time.Time {
	if v, ok := r[col].(time.Time); ok {
		return v
	}
	return time.Time{}
}

// numericToDecimal converts a pgx NUMERIC value without a float round trip.
func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.NaN || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(new(big.Int).Set(n.Int), n.Exp)
}
