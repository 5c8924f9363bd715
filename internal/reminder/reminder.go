// Package reminder sends each stored plan a digest of the procedures that
// need attention this week.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"futarinavi/internal/dates"
	"futarinavi/internal/logger"
	"futarinavi/internal/metrics"
	"futarinavi/internal/models"
	sentryutil "futarinavi/internal/sentry"
	"futarinavi/internal/store"
	"futarinavi/internal/timeline"
)

// DigestItem is one line of a digest.
type DigestItem struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Urgency  timeline.Urgency `json:"urgency"`
	Deadline string           `json:"deadline,omitempty"`
}

// Digest is what a notifier delivers for one plan.
type Digest struct {
	PlanID  string       `json:"plan_id"`
	Items   []DigestItem `json:"items"`
	Overdue int          `json:"overdue"`
	Urgent  int          `json:"urgent"`
	Soon    int          `json:"soon"`
	Text    string       `json:"text"`
}

// Notifier delivers one digest.
type Notifier interface {
	Notify(ctx context.Context, d Digest) error
}

// BuildDigest returns false when nothing needs attention.
func BuildDigest(plan models.Plan, items []timeline.Item) (Digest, bool) {
	week := timeline.ThisWeek(items)
	if len(week) == 0 {
		return Digest{}, false
	}
	d := Digest{PlanID: plan.ID, Items: make([]DigestItem, 0, len(week))}
	for _, it := range week {
		di := DigestItem{ID: it.ID, Title: it.Title, Urgency: it.Urgency}
		if it.DeadlineDate != nil {
			di.Deadline = dates.Format(*it.DeadlineDate)
		}
		d.Items = append(d.Items, di)
		switch it.Urgency {
		case timeline.UrgencyOverdue:
			d.Overdue++
		case timeline.UrgencyUrgent:
			d.Urgent++
		case timeline.UrgencySoon:
			d.Soon++
		}
	}
	d.Text = digestText(d)
	return d, true
}

func digestText(d Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "【ふたりナビ】今週の手続き %d件", len(d.Items))
	if d.Overdue > 0 {
		fmt.Fprintf(&b, "（期限超過 %d件）", d.Overdue)
	}
	b.WriteString("\n")
	for _, it := range d.Items {
		fmt.Fprintf(&b, "・[%s] %s", timeline.UrgencyLabel(it.Urgency), it.Title)
		if it.Deadline != "" {
			fmt.Fprintf(&b, "（期限 %s）", it.Deadline)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Job walks every stored plan and notifies those with pending work.
type Job struct {
	Store    store.PlanStore
	Notifier Notifier
	Location *time.Location
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

// RunOnce processes all plans. Failures of single plans are reported and
// skipped; the returned error is only set when listing plans fails.
func (j *Job) RunOnce(ctx context.Context) (sent int, err error) {
	plans, err := j.Store.List(ctx)
	if err != nil {
		sentryutil.CaptureJobError("reminder", err, nil)
		return 0, fmt.Errorf("list plans: %w", err)
	}

	now := j.now()
	for _, p := range plans {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		md, err := dates.ParseLocalDate(p.MarriageDate, j.Location)
		if err != nil {
			logger.Warn("reminder: skipping plan with invalid date", map[string]interface{}{"plan_id": p.ID, "error": err.Error()})
			continue
		}
		opts := timeline.Options{IncludeMoving: p.Options.IncludeMoving, NameChanged: p.Options.NameChanged}
		items := timeline.Generate(md, opts, timeline.NewCompletedSet(p.CompletedIDs...), now)
		if j.Metrics != nil {
			j.Metrics.TimelineGenerations.Inc()
		}

		d, ok := BuildDigest(p, items)
		if !ok {
			continue
		}
		if err := j.Notifier.Notify(ctx, d); err != nil {
			j.count("error")
			logger.Error("reminder: notify failed", map[string]interface{}{"plan_id": p.ID, "error": err.Error()})
			sentryutil.CaptureJobError("reminder", err, map[string]string{"plan_id": p.ID})
			continue
		}
		j.count("sent")
		sent++
	}
	logger.Info("reminder: run complete", map[string]interface{}{"plans": len(plans), "sent": sent})
	return sent, nil
}

func (j *Job) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now().In(j.Location)
}

func (j *Job) count(result string) {
	if j.Metrics != nil {
		j.Metrics.RemindersSent.WithLabelValues(result).Inc()
	}
}

// NextRun returns the first moment at hour:00 strictly after now, in now's location.
func NextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start runs the job once after bootDelay and then daily at hour until ctx ends.
func (j *Job) Start(ctx context.Context, hour int, bootDelay time.Duration) {
	go func() {
		if !sleep(ctx, bootDelay) {
			return
		}
		j.runLogged(ctx)
		for {
			wait := time.Until(NextRun(j.now(), hour))
			if !sleep(ctx, wait) {
				return
			}
			j.runLogged(ctx)
		}
	}()
}

func (j *Job) runLogged(ctx context.Context) {
	if _, err := j.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("reminder: run failed", map[string]interface{}{"error": err.Error()})
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
