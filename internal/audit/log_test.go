package audit

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailRecordAndFind(t *testing.T) {
	trail := NewTrail(100, nil)
	ctx := context.Background()

	trail.Record(ctx, "journal.posted", "j-1", "posted entry", "alice")
	trail.Record(ctx, "journal.reversed", "j-1", "reversed entry", "bob")
	trail.Record(ctx, "invoice.created", "inv-1", "created invoice", "alice")

	byAction := trail.Find(Query{Action: "journal.posted"})
	require.Len(t, byAction, 1)
	assert.Equal(t, "j-1", byAction[0].EntityID)
	assert.Equal(t, "alice", byAction[0].Actor)

	byEntity := trail.Find(Query{EntityID: "j-1"})
	assert.Len(t, byEntity, 2)

	limited := trail.Find(Query{Limit: 2})
	assert.Len(t, limited, 2)
}

func TestTrailEvictsOldestPastCapacity(t *testing.T) {
	trail := NewTrail(5, nil)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		trail.Record(ctx, "account.created", fmt.Sprintf("a-%d", i), "", "system")
	}

	assert.Equal(t, 5, trail.Len())
	all := trail.Find(Query{})
	require.Len(t, all, 5)
	// Oldest three were evicted.
	assert.Equal(t, "a-3", all[0].EntityID)
	assert.Equal(t, "a-7", all[4].EntityID)
}

func TestTrailEntryIDsAreSortable(t *testing.T) {
	trail := NewTrail(10, nil)
	ctx := context.Background()

	first := trail.Record(ctx, "x", "1", "", "")
	second := trail.Record(ctx, "x", "2", "", "")
	assert.Less(t, first.EntryID, second.EntryID)
}
