package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkUpsert_EmptyRows(t *testing.T) {
	n, err := BulkUpsert(nil, nil, UpsertConfig{
		Table:        "casinos",
		Columns:      []string{"id", "name"},
		ConflictKeys: []string{"name"},
	}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestBulkUpsert_NoColumns(t *testing.T) {
	_, err := BulkUpsert(nil, nil, UpsertConfig{
		Table:        "casinos",
		ConflictKeys: []string{"name"},
	}, [][]any{{"1", "Stake"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns specified")
}

func TestBulkUpsert_NoConflictKeys(t *testing.T) {
	_, err := BulkUpsert(nil, nil, UpsertConfig{
		Table:   "casinos",
		Columns: []string{"id", "name"},
	}, [][]any{{"1", "Stake"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no conflict keys specified")
}

func TestQuoteAndJoin(t *testing.T) {
	result := quoteAndJoin([]string{"id", "name", "resolved_domain"})
	assert.Equal(t, `"id", "name", "resolved_domain"`, result)
}
