package decision

import (
	"fmt"
	"sort"
	"time"
)

// EvaluateDeliverables fires one action item per incomplete deliverable
// whose due date has passed. The run surfaces at most cfg.DeliverableCap
// items; when more are overdue the most overdue win.
func EvaluateDeliverables(projects []Project, now time.Time, cfg Config) []Item {
	type overdue struct {
		project     Project
		deliverable Deliverable
		days        int
	}
	var candidates []overdue
	for _, p := range projects {
		for _, d := range p.Deliverables {
			if d.ID == "" || d.Done || d.DueAt.IsZero() || !d.DueAt.Before(now) {
				continue
			}
			candidates = append(candidates, overdue{project: p, deliverable: d, days: ageDays(d.DueAt, now)})
		}
	}

	// Most overdue first; deterministic on deliverable id for equal ages.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].days != candidates[j].days {
			return candidates[i].days > candidates[j].days
		}
		return candidates[i].deliverable.ID < candidates[j].deliverable.ID
	})
	if cfg.DeliverableCap > 0 && len(candidates) > cfg.DeliverableCap {
		candidates = candidates[:cfg.DeliverableCap]
	}

	items := make([]Item, 0, len(candidates))
	for _, c := range candidates {
		severity := SeverityOrange
		if c.days >= cfg.DeliverableRedDays {
			severity = SeverityRed
		}

		due := c.deliverable.DueAt
		items = append(items, Item{
			ID:       "a4-deliverable-" + c.deliverable.ID,
			Rule:     RuleDeliverableOverdue,
			Surface:  SurfaceAction,
			Severity: severity,
			Category: CategoryProject,
			Title:    "Deliverable overdue",
			TitleKey: "deliverable-overdue",
			Description: fmt.Sprintf("%q in %s is %d days overdue.",
				c.deliverable.Title, c.project.Name, c.days),
			Chips: []Chip{
				{Label: "Project", Value: c.project.Name},
				{Label: "Overdue", Value: fmt.Sprintf("%d days", c.days)},
			},
			Refs: Refs{
				ProjectID:     c.project.ID,
				ProjectName:   c.project.Name,
				DeliverableID: c.deliverable.ID,
			},
			CTAs: []CTA{
				{Label: "Open project", ActionKey: "OPEN_PROJECT", Payload: map[string]string{"project_id": c.project.ID}, Kind: CTAPrimary},
			},
			Dismissible: false,
			CreatedAt:   due,
			DueAt:       &due,
		})
	}
	return items
}
