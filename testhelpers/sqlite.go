package testhelpers

import (
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode"

	"github.com/estatehub-api/database"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var driverSeq atomic.Int64

// TrigramFuncs gives SQLite the pg_trgm surface the fuzzy search query needs
var TrigramFuncs = map[string]interface{}{
	"similarity": Similarity,
	"greatest":   Greatest,
}

// OpenSQLite returns a migrated in-memory database whose connections have
// funcs registered as SQL functions. Each call gets its own driver name
// since database/sql drivers cannot be unregistered.
func OpenSQLite(t *testing.T, funcs map[string]interface{}) *gorm.DB {
	t.Helper()

	driverName := fmt.Sprintf("sqlite3_funcs_%d", driverSeq.Add(1))
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			for name, impl := range funcs {
				if err := conn.RegisterFunc(name, impl, true); err != nil {
					return err
				}
			}
			return nil
		},
	})

	db, err := gorm.Open(&sqlite.Dialector{DriverName: driverName, DSN: "file::memory:"}, &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

// Similarity is pg_trgm's similarity(): shared trigrams over all distinct
// trigrams of both strings, words padded with two leading and one trailing
// space. NULL arguments score zero.
func Similarity(a, b interface{}) float64 {
	ta, tb := trigrams(text(a)), trigrams(text(b))
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(ta)+len(tb)-shared)
}

// Greatest returns the largest numeric argument
func Greatest(values ...interface{}) float64 {
	best := 0.0
	for i, v := range values {
		f := number(v)
		if i == 0 || f > best {
			best = f
		}
	}
	return best
}

func trigrams(s string) map[string]struct{} {
	out := make(map[string]struct{})
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		padded := []rune("  " + w + " ")
		for i := 0; i+3 <= len(padded); i++ {
			out[string(padded[i:i+3])] = struct{}{}
		}
	}
	return out
}

func text(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func number(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	default:
		return 0
	}
}
