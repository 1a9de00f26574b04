// Package seed provides the sample feedback collection the dashboard starts with.
package seed

import (
	"strings"
	"time"

	"github.com/julianstephens/triage/internal/models"
)

const (
	hour = time.Hour
	day  = 24 * time.Hour
)

type note struct {
	id, author, content string
	ago                 time.Duration
}

type entry struct {
	id, title, content string
	status             models.Status
	priority           models.Priority
	category           models.Category
	name, email        string
	created, updated   time.Duration
	resolved           time.Duration // zero means unresolved
	tags               []string
	notes              []note
}

var entries = []entry{
	{
		id: "fb-001", title: "CSV export produces an empty file",
		content: "Exporting the dashboard to CSV starts a download but the file has no rows. Same result in Chrome and Firefox. Our monthly reporting is blocked.",
		status: models.StatusNew, priority: models.PriorityHigh, category: models.CategoryBug,
		name: "Sarah Chen", email: "sarah.chen@techcorp.io",
		created: 2 * hour, updated: 2 * hour,
		tags: []string{"export", "csv", "critical-path"},
	},
	{
		id: "fb-002", title: "Dark mode",
		content: "Please add a dark theme. I work late and the bright interface is tiring.",
		status: models.StatusInReview, priority: models.PriorityMedium, category: models.CategoryFeatureRequest,
		name: "Mike Johnson", email: "mike.johnson@startup.co",
		created: 5 * day, updated: 2 * day,
		tags: []string{"ui", "accessibility", "popular-request"},
		notes: []note{{"note-001", "Jessica Lee", "Requested by more than fifteen customers, on the Q1 roadmap.", 3 * day}},
	},
	{
		id: "fb-003", title: "Dashboard is slow with large datasets",
		content: "With roughly 50,000 records the dashboard needs over thirty seconds to load. Enterprise accounts need better performance.",
		status: models.StatusInReview, priority: models.PriorityCritical, category: models.CategoryImprovement,
		name: "David Park", email: "enterprise@bigcorp.com",
		created: 10 * day, updated: 1 * day,
		tags: []string{"performance", "enterprise", "pagination"},
		notes: []note{
			{"note-002", "Alex Rivera", "Caused by loading every row up front. Pagination in progress.", 7 * day},
			{"note-003", "Emma Wilson", "Enterprise plan customer.", 6 * day},
		},
	},
	{
		id: "fb-004", title: "The new filters are great",
		content: "The advanced filtering shipped last week saves our team hours. Thank you!",
		status: models.StatusResolved, priority: models.PriorityLow, category: models.CategoryOther,
		name: "Rachel Green", email: "happy.customer@email.com",
		created: 7 * day, updated: 6 * day, resolved: 6 * day,
		tags: []string{"positive-feedback", "filtering"},
		notes: []note{{"note-004", "Jessica Lee", "Shared with the team.", 6 * day}},
	},
	{
		id: "fb-005", title: "Where is the Slack integration?",
		content: "The docs mention a Slack integration but I cannot find where to enable it.",
		status: models.StatusResolved, priority: models.PriorityLow, category: models.CategoryQuestion,
		name: "Tom Bradley", email: "confused.user@company.org",
		created: 3 * day, updated: 2 * day, resolved: 2 * day,
		tags: []string{"integrations", "slack", "documentation"},
		notes: []note{{"note-005", "Emma Wilson", "Sent the setup guide and offered an onboarding call.", 2 * day}},
	},
	{
		id: "fb-006", title: "Android app crashes on launch",
		content: "After upgrading to Android 14 the app closes immediately on a Galaxy S23.",
		status: models.StatusNew, priority: models.PriorityCritical, category: models.CategoryBug,
		name: "Kevin Zhang", email: "android.user@gmail.com",
		created: 5 * hour, updated: 5 * hour,
		tags: []string{"mobile", "android", "crash", "urgent"},
	},
	{
		id: "fb-007", title: "Bulk import from spreadsheets",
		content: "We are migrating 10,000 records and can only add them one at a time. A spreadsheet import would save weeks.",
		status: models.StatusNew, priority: models.PriorityMedium, category: models.CategoryFeatureRequest,
		name: "Lisa Wang", email: "migration@newclient.com",
		created: 1 * day, updated: 1 * day,
		tags: []string{"import", "excel", "migration", "onboarding"},
	},
	{
		id: "fb-008", title: "Keyboard shortcuts",
		content: "j/k navigation and single-key actions would help power users a lot.",
		status: models.StatusArchived, priority: models.PriorityLow, category: models.CategoryFeatureRequest,
		name: "Chris Martinez", email: "power.user@dev.io",
		created: 45 * day, updated: 30 * day,
		tags: []string{"keyboard", "accessibility", "power-users"},
		notes: []note{{"note-006", "Jessica Lee", "Moved to the backlog.", 30 * day}},
	},
	{
		id: "fb-009", title: "Okta SSO returns 403",
		content: "SSO is configured per the docs but users get a 403 after authenticating. The SAML assertion looks correct.",
		status: models.StatusInReview, priority: models.PriorityHigh, category: models.CategoryBug,
		name: "Nicole Foster", email: "it.admin@secure-company.com",
		created: 2 * day, updated: 12 * hour,
		tags: []string{"sso", "okta", "authentication", "enterprise"},
		notes: []note{{"note-007", "Emma Wilson", "Call scheduled with the customer.", 12 * hour}},
	},
	{
		id: "fb-010", title: "Webhook deliveries are late",
		content: "Webhooks arrive five to ten minutes late, which breaks our automations.",
		status: models.StatusResolved, priority: models.PriorityHigh, category: models.CategoryBug,
		name: "James Smith", email: "devops@automation.tech",
		created: 4 * day, updated: 1 * day, resolved: 1 * day,
		tags: []string{"webhooks", "performance", "infrastructure"},
		notes: []note{
			{"note-008", "Alex Rivera", "Queue backlog after a traffic spike; workers scaled up.", 2 * day},
			{"note-009", "Emma Wilson", "Customer confirmed deliveries are real-time again.", 1 * day},
		},
	},
	{
		id: "fb-011", title: "@mentions in internal notes",
		content: "Being able to mention a colleague in a note and notify them would help us collaborate.",
		status: models.StatusNew, priority: models.PriorityMedium, category: models.CategoryFeatureRequest,
		name: "Amanda Torres", email: "team.lead@collaborative.io",
		created: 8 * hour, updated: 8 * hour,
		tags: []string{"collaboration", "notifications", "mentions"},
	},
	{
		id: "fb-012", title: "Charts are invisible to screen readers",
		content: "The analytics charts have no text alternatives, so the dashboard is unusable with a screen reader.",
		status: models.StatusNew, priority: models.PriorityHigh, category: models.CategoryBug,
		name: "Daniel Brown", email: "accessibility@inclusive.org",
		created: 1 * day, updated: 1 * day,
		tags: []string{"accessibility", "a11y", "screen-reader", "charts"},
	},
	{
		id: "fb-013", title: "Duplicate notification emails",
		content: "Every notification arrives two or three times since last week.",
		status: models.StatusResolved, priority: models.PriorityMedium, category: models.CategoryBug,
		name: "Patricia Miller", email: "inbox.overflow@email.net",
		created: 6 * day, updated: 3 * day, resolved: 3 * day,
		tags: []string{"notifications", "email", "duplicates"},
		notes: []note{{"note-010", "Alex Rivera", "Removed duplicate subscriptions.", 4 * day}},
	},
	{
		id: "fb-014", title: "API rate limit is too low",
		content: "100 requests per minute is not enough for our integration.",
		status: models.StatusInReview, priority: models.PriorityHigh, category: models.CategoryImprovement,
		name: "Robert Taylor", email: "api.heavy@integration.co",
		created: 3 * day, updated: 1 * day,
		tags: []string{"api", "rate-limits", "enterprise"},
		notes: []note{{"note-011", "Alex Rivera", "Raised this account to 500 per minute for now.", 2 * day}},
	},
	{
		id: "fb-015", title: "Date range picker is confusing",
		content: "Presets like \"last 7 days\" would make the report picker much easier.",
		status: models.StatusArchived, priority: models.PriorityLow, category: models.CategoryImprovement,
		name: "Jennifer Adams", email: "ux.feedback@design.studio",
		created: 60 * day, updated: 45 * day,
		tags: []string{"ux", "date-picker", "reports"},
		notes: []note{{"note-012", "Jessica Lee", "Added to the design backlog.", 45 * day}},
	},
}

// Records builds the seed collection with timestamps relative to now.
func Records(now time.Time) []models.Feedback {
	out := make([]models.Feedback, 0, len(entries))
	for _, e := range entries {
		fb := models.Feedback{
			ID:            e.id,
			Title:         e.title,
			Content:       e.content,
			Status:        e.status,
			Priority:      e.priority,
			Category:      e.category,
			CustomerName:  e.name,
			CustomerEmail: e.email,
			CreatedAt:     now.Add(-e.created),
			UpdatedAt:     now.Add(-e.updated),
			Notes:         []models.Note{},
			Tags:          append([]string(nil), e.tags...),
		}
		if e.resolved > 0 {
			t := now.Add(-e.resolved)
			fb.ResolvedAt = &t
		}
		for _, n := range e.notes {
			fb.Notes = append(fb.Notes, models.Note{
				ID:         n.id,
				Content:    n.content,
				AuthorID:   authorID(n.author),
				AuthorName: n.author,
				CreatedAt:  now.Add(-n.ago),
			})
		}
		out = append(out, fb)
	}
	return out
}

func authorID(name string) string {
	return "user-" + strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
