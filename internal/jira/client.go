// Package jira scrapes ticket transition histories from the tracker and
// turns them into the record set the report consumes.
package jira

import (
	"fmt"
	"sort"
	"time"

	jira "github.com/andygrunwald/go-jira"

	"github.com/openedx/transitions-kpi/internal/config"
	"github.com/openedx/transitions-kpi/internal/kpi"
	"github.com/openedx/transitions-kpi/internal/logging"
	"github.com/openedx/transitions-kpi/pkg/models"
)

const searchPageSize = 50

// Client handles interactions with the JIRA API.
type Client struct {
	client *jira.Client
	now    func() time.Time
}

// NewClient creates a tracker client from the given configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := config.ValidateJiraConfig(cfg); err != nil {
		return nil, err
	}

	tp := jira.BasicAuthTransport{
		Username: cfg.Jira.Username,
		Password: cfg.Jira.Token,
	}

	client, err := jira.NewClient(tp.Client(), cfg.Jira.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %v", err)
	}

	logging.Debug("created jira client",
		"url", cfg.Jira.URL,
		"username", cfg.Jira.Username,
		"token", logging.MaskSensitive(cfg.Jira.Token))

	return &Client{client: client, now: time.Now}, nil
}

// ScrapeProject fetches every issue in the project with its changelog and
// reconstructs how long each issue spent in each workflow state. A failure to
// interpret one issue's changelog is recorded on that issue's record rather
// than aborting the whole scrape.
func (c *Client) ScrapeProject(project string) ([]models.Record, error) {
	jql := fmt.Sprintf("project = %s ORDER BY created ASC", project)

	var records []models.Record
	for startAt := 0; ; {
		issues, resp, err := c.client.Issue.Search(jql, &jira.SearchOptions{
			StartAt:    startAt,
			MaxResults: searchPageSize,
			Expand:     "changelog",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search jira issues: %v", err)
		}

		for _, issue := range issues {
			records = append(records, c.recordFromIssue(issue))
		}

		startAt += len(issues)
		if len(issues) == 0 || startAt >= resp.Total {
			break
		}
		logging.Debug("fetched issue page", "start_at", startAt, "total", resp.Total)
	}

	logging.Info("scraped project", "project", project, "issue_count", len(records))
	return records, nil
}

// recordFromIssue converts one issue into a Record. The states map is only
// populated when the issue has transitioned at least once.
func (c *Client) recordFromIssue(issue jira.Issue) models.Record {
	record := models.Record{Issue: issue.Key}

	if issue.Fields == nil {
		record.Error = "issue has no fields"
		return record
	}

	record.Labels = issue.Fields.Labels

	created := time.Time(issue.Fields.Created)
	resolved := time.Time(issue.Fields.Resolutiondate)
	if !resolved.IsZero() {
		record.Resolved = resolved.Format(time.RFC3339)
	}

	changes, err := statusChanges(issue.Changelog)
	if err != nil {
		record.Error = err.Error()
		return record
	}
	if len(changes) == 0 {
		return record
	}

	end := resolved
	if end.IsZero() {
		end = c.now()
	}

	dwell, note := dwellTimes(created, changes, end)
	record.Debug = note

	record.States = make(map[string]models.StateDuration, len(dwell))
	for state, d := range dwell {
		record.States[state] = kpi.Encode(d)
	}

	return record
}

// statusChange is one status transition extracted from the changelog.
type statusChange struct {
	at   time.Time
	from string
	to   string
}

func statusChanges(changelog *jira.Changelog) ([]statusChange, error) {
	if changelog == nil {
		return nil, nil
	}

	var changes []statusChange
	for _, history := range changelog.Histories {
		at, err := history.CreatedTime()
		if err != nil {
			return nil, fmt.Errorf("unparseable changelog timestamp %q", history.Created)
		}
		for _, item := range history.Items {
			if item.Field != "status" {
				continue
			}
			changes = append(changes, statusChange{at: at, from: item.FromString, to: item.ToString})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].at.Before(changes[j].at) })
	return changes, nil
}

// dwellTimes accumulates per-state dwell time from a chronological transition
// list. The first state runs from issue creation to the first transition; the
// final state runs from the last transition to end (resolution or now). A
// transition that predates the previous marker contributes a negative dwell,
// which is kept as-is and flagged in the returned note.
func dwellTimes(created time.Time, changes []statusChange, end time.Time) (map[string]time.Duration, string) {
	dwell := make(map[string]time.Duration)
	note := ""

	prev := created
	for _, change := range changes {
		if change.at.Before(prev) && note == "" {
			note = fmt.Sprintf("transition to %q predates previous state marker", change.to)
		}
		dwell[change.from] += change.at.Sub(prev)
		prev = change.at
	}

	last := changes[len(changes)-1]
	dwell[last.to] += end.Sub(prev)

	return dwell, note
}
