package tickets

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func TestReleaseSeatsGuardsCounterInvariant(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	stmt := releaseSeats(db, uuid.New(), 3, time.Now()).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "available_seats = available_seats + ")
	assert.Contains(t, sql, "sold_seats = sold_seats - ")
	// The guard refuses a release that would corrupt the counters; the
	// sweep treats zero affected rows as a fatal integrity error.
	assert.Contains(t, sql, "sold_seats >= ")
	assert.Contains(t, sql, "available_seats + sold_seats = total_seats")
}
