package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"futarinavi/internal/config"
	"futarinavi/internal/dates"
	"futarinavi/internal/timeline"

	"github.com/spf13/cobra"
)

func newTimelineCmd() *cobra.Command {
	var (
		date, today, done, group string
		moving, nameChanged      bool
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the procedure timeline for a marriage date",
		Example: `  navi timeline --date 2026-04-01
  navi timeline --date 2026-04-01 --moving --done marriage-registration,mynumber-card
  navi timeline --date 2026-04-01 --group urgency --today 2026-04-20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := parseDay("date", date)
			if err != nil {
				return err
			}
			now := config.Now()
			if today != "" {
				if now, err = parseDay("today", today); err != nil {
					return err
				}
			}
			ids := splitIDs(done)
			for _, id := range ids {
				if !timeline.KnownID(id) {
					return fmt.Errorf("--done: unknown task id %q", id)
				}
			}

			var movingPtr, namePtr *bool
			if cmd.Flags().Changed("moving") {
				movingPtr = &moving
			}
			if cmd.Flags().Changed("name-changed") {
				namePtr = &nameChanged
			}
			opts := timeline.OptionsFrom(movingPtr, namePtr)

			items := timeline.Generate(md, opts, timeline.NewCompletedSet(ids...), now)
			sum := timeline.Summarize(items, md, now)
			return renderTimeline(cmd.OutOrStdout(), items, sum, md, group)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "marriage date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&today, "today", "", "evaluate urgencies as of this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&done, "done", "", "comma-separated ids of completed tasks")
	cmd.Flags().StringVar(&group, "group", "category", "grouping: category, urgency or none")
	cmd.Flags().BoolVar(&moving, "moving", false, "include moving procedures")
	cmd.Flags().BoolVar(&nameChanged, "name-changed", true, "include name change procedures")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func renderTimeline(w io.Writer, items []timeline.Item, sum timeline.Summary, md time.Time, group string) error {
	fmt.Fprintln(w, titleStyle.Render("ふたりナビ 結婚手続きタイムライン"))
	fmt.Fprintf(w, "結婚日 %s  %s  完了 %d/%d (%d%%)\n", dates.Format(md), sum.Countdown, sum.Completed, sum.Total, sum.Percent)
	if sum.Overdue > 0 || sum.Urgent > 0 {
		fmt.Fprintln(w, urgencyStyles[timeline.UrgencyOverdue].Render(
			fmt.Sprintf("期限超過 %d件 / 至急 %d件", sum.Overdue, sum.Urgent)))
	}
	if sum.AllDone {
		fmt.Fprintln(w, amountStyle.Render("すべての手続きが完了しました"))
	}

	switch group {
	case "category":
		for _, g := range timeline.GroupByCategory(items) {
			fmt.Fprintln(w)
			fmt.Fprintln(w, headerStyle.Render(g.Label))
			for _, it := range g.Items {
				fmt.Fprintln(w, itemLine(it))
			}
		}
	case "urgency":
		for _, g := range timeline.GroupByUrgency(items) {
			fmt.Fprintln(w)
			fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%d)", g.Label, len(g.Items))))
			for _, it := range g.Items {
				fmt.Fprintln(w, itemLine(it))
			}
		}
	case "none":
		fmt.Fprintln(w)
		for _, it := range items {
			fmt.Fprintln(w, itemLine(it))
		}
	default:
		return fmt.Errorf("--group: expected category, urgency or none, got %q", group)
	}
	return nil
}

func itemLine(it timeline.Item) string {
	var b strings.Builder
	b.WriteString("  ")
	if it.Completed {
		b.WriteString(doneStyle.Render("✓ " + it.Title))
		b.WriteString(" " + dimStyle.Render(it.ID))
		return b.String()
	}
	b.WriteString(badge(it.Urgency))
	b.WriteString(" " + it.Title)
	b.WriteString(" " + dimStyle.Render(it.ID))
	b.WriteString("\n      " + dates.Format(it.ScheduledDate))
	if it.DeadlineDate != nil {
		b.WriteString("  期限 " + dates.Format(*it.DeadlineDate))
	}
	if it.Location != "" {
		b.WriteString("  " + it.Location)
	}
	return b.String()
}
