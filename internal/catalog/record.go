// Package catalog owns the project records browsed by the orbital scene.
//
// Records are read-only to the scene for the duration of a session. They
// come from one or more Sources: the SQLite store managed by the
// `orbitfolio projects` commands and an optional YAML seed file that can be
// watched for edits.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the delivery state of a project.
type Status string

const (
	StatusDeployed   Status = "DEPLOYED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusArchived   Status = "ARCHIVED"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusDeployed, StatusInProgress, StatusArchived}

// ParseStatus accepts any case and either '-' or '_' as separator.
func ParseStatus(s string) (Status, error) {
	norm := Status(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	for _, st := range Statuses {
		if norm == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (valid: %v)", s, Statuses)
}

// Metric is one labeled figure shown in the detail panel.
type Metric struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Link is an external reference for a project.
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// Record is one project in the portfolio.
type Record struct {
	ID             string   `yaml:"id" json:"id"`
	Codename       string   `yaml:"codename" json:"codename"`
	Title          string   `yaml:"title" json:"title"`
	Status         Status   `yaml:"status" json:"status"`
	Classification string   `yaml:"classification" json:"classification"`
	Summary        string   `yaml:"summary" json:"summary"`
	Description    string   `yaml:"description" json:"description"` // markdown
	Metrics        []Metric `yaml:"metrics,omitempty" json:"metrics,omitempty"`
	Tech           []string `yaml:"tech,omitempty" json:"tech,omitempty"`
	Links          []Link   `yaml:"links,omitempty" json:"links,omitempty"`
}

// ErrInvalidRecord is wrapped by Validate failures.
var ErrInvalidRecord = errors.New("invalid record")

// Validate checks the fields the scene depends on.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: %s: empty title", ErrInvalidRecord, r.ID)
	}
	if _, err := ParseStatus(string(r.Status)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRecord, r.ID, err)
	}
	for i, l := range r.Links {
		if strings.TrimSpace(l.URL) == "" {
			return fmt.Errorf("%w: %s: link %d has no url", ErrInvalidRecord, r.ID, i)
		}
	}
	return nil
}

// Route is the navigation path of the record's detail page.
func (r Record) Route() string { return "/projects/" + r.ID }

// Label is the short name shown next to a node.
func (r Record) Label() string {
	if r.Codename != "" {
		return r.Codename
	}
	return r.Title
}

// Clone returns a deep copy so callers cannot mutate shared slices.
func (r Record) Clone() Record {
	c := r
	c.Metrics = append([]Metric(nil), r.Metrics...)
	c.Tech = append([]string(nil), r.Tech...)
	c.Links = append([]Link(nil), r.Links...)
	return c
}
