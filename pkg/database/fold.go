package database

import (
	"database/sql/driver"
	"fmt"

	"golang.org/x/text/cases"
	"modernc.org/sqlite"
)

// foldFunc is the SQLite scalar that case-folds its argument with full Unicode
// rules. The built-in LOWER() only folds ASCII, so "CAMIÓN" would never match
// "camión".
const foldFunc = "casefold"

func init() {
	err := sqlite.RegisterDeterministicScalarFunction(foldFunc, 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case nil:
			return nil, nil
		case string:
			return Fold(v), nil
		case []byte:
			return Fold(string(v)), nil
		default:
			return Fold(fmt.Sprint(v)), nil
		}
	})
	if err != nil {
		panic(fmt.Sprintf("database: register %s: %v", foldFunc, err))
	}
}

// Fold case-folds s the same way the sqlite casefold() function does.
func Fold(s string) string {
	// A Caser keeps state between calls and must not be shared across goroutines.
	return cases.Fold().String(s)
}

// FoldExpr wraps a column or placeholder in the driver's Unicode-aware case fold.
// Postgres LOWER() already follows the database locale.
func FoldExpr(driverName, expr string) string {
	if driverName == DriverPostgres {
		return "LOWER(" + expr + ")"
	}
	return foldFunc + "(" + expr + ")"
}
