package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMergeQueue_OldestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	jobs := []*QueueItem{
		{Kind: KindJob, ID: "j1", CreatedAt: base.Add(2 * time.Hour)},
		{Kind: KindJob, ID: "j2", CreatedAt: base},
	}
	banners := []*QueueItem{
		{Kind: KindBanner, ID: "b1", CreatedAt: base.Add(time.Hour)},
		{Kind: KindBanner, ID: "b2", CreatedAt: base},
	}

	merged := MergeQueue(jobs, banners)

	ids := make([]string, len(merged))
	for i, it := range merged {
		ids[i] = it.ID
	}
	assert.Equal(t, []string{"j2", "b2", "b1", "j1"}, ids)
}

func TestSubmitterIDs_Distinct(t *testing.T) {
	items := []*QueueItem{
		{SubmitterID: "u2"},
		{SubmitterID: "u1"},
		{SubmitterID: "u2"},
		{SubmitterID: ""},
	}
	assert.Equal(t, []string{"u2", "u1"}, SubmitterIDs(items))
}

func TestDashboard_PendingTotal(t *testing.T) {
	assert.Equal(t, int64(5), Dashboard{PendingJobs: 3, PendingBanners: 2}.PendingTotal())
}
