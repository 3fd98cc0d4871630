package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestVersion(t *testing.T) {
	version, err := LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestEmbeddedSchema(t *testing.T) {
	data, err := fs.ReadFile(schemaFS, "sql/00001_create_day_bookings.sql")
	require.NoError(t, err)

	schema := string(data)
	assert.Contains(t, schema, "-- +goose Up")
	assert.Contains(t, schema, "-- +goose Down")
	assert.Contains(t, schema, "day_bookings_booking_date_key")
	assert.Contains(t, schema, "booking_details_slot_key")
}
