package entity

import (
	"sort"
	"time"
)

// StatusPending is the status shared by jobs and banners awaiting review.
const StatusPending = "pending"

type ItemKind string

const (
	KindJob    ItemKind = "job"
	KindBanner ItemKind = "banner"
)

// Dashboard holds the admin overview counters.
type Dashboard struct {
	Profiles       int64 `json:"profiles"`
	Jobs           int64 `json:"jobs"`
	Applications   int64 `json:"applications"`
	PendingJobs    int64 `json:"pending_jobs"`
	PendingBanners int64 `json:"pending_banners"`
}

// PendingTotal is the length of the full moderation queue.
func (d Dashboard) PendingTotal() int64 {
	return d.PendingJobs + d.PendingBanners
}

type Submitter struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// QueueItem is one job or banner waiting for a moderator.
type QueueItem struct {
	Kind        ItemKind   `json:"kind"`
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	SubmitterID string     `json:"submitter_id"`
	Submitter   *Submitter `json:"submitter,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MergeQueue interleaves pending jobs and banners oldest first, so whatever
// has waited longest is reviewed next. Ties keep jobs ahead of banners.
func MergeQueue(jobs, banners []*QueueItem) []*QueueItem {
	out := make([]*QueueItem, 0, len(jobs)+len(banners))
	out = append(out, jobs...)
	out = append(out, banners...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// SubmitterIDs returns the distinct submitter ids in queue order.
func SubmitterIDs(items []*QueueItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.SubmitterID == "" {
			continue
		}
		if _, ok := seen[it.SubmitterID]; ok {
			continue
		}
		seen[it.SubmitterID] = struct{}{}
		ids = append(ids, it.SubmitterID)
	}
	return ids
}
