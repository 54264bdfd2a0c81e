package pgsql

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

// The series advisory lock only serialises numbering if the statements after it
// take a fresh snapshot.
func TestPostingUnitIsolation(t *testing.T) {
	assert.Equal(t, pgx.ReadCommitted, postingTxOptions.IsoLevel)
	assert.NotEqual(t, pgx.ReadOnly, postingTxOptions.AccessMode)
}
