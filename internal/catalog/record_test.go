package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(id string) Record {
	return Record{
		ID:             id,
		Codename:       "CN-" + id,
		Title:          "Project " + id,
		Status:         StatusDeployed,
		Classification: "INTERNAL",
		Summary:        "summary " + id,
		Description:    "# " + id,
		Metrics:        []Metric{{Label: "users", Value: "1k"}},
		Tech:           []string{"go", "sqlite"},
		Links:          []Link{{Label: "repo", URL: "https://example.com/" + id}},
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"DEPLOYED", StatusDeployed},
		{"deployed", StatusDeployed},
		{"in-progress", StatusInProgress},
		{" In_Progress ", StatusInProgress},
		{"archived", StatusArchived},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseStatus("shipped")
	assert.Error(t, err)
}

func TestRecord_Validate(t *testing.T) {
	assert.NoError(t, sample("a").Validate())

	r := sample("a")
	r.ID = " "
	assert.ErrorIs(t, r.Validate(), ErrInvalidRecord)

	r = sample("a")
	r.Title = ""
	assert.ErrorIs(t, r.Validate(), ErrInvalidRecord)

	r = sample("a")
	r.Status = "LIVE"
	assert.ErrorIs(t, r.Validate(), ErrInvalidRecord)

	r = sample("a")
	r.Links = []Link{{Label: "broken"}}
	assert.ErrorIs(t, r.Validate(), ErrInvalidRecord)
}

func TestRecord_RouteAndLabel(t *testing.T) {
	r := sample("atlas")
	assert.Equal(t, "/projects/atlas", r.Route())
	assert.Equal(t, "CN-atlas", r.Label())

	r.Codename = ""
	assert.Equal(t, "Project atlas", r.Label())
}

func TestRecord_CloneIsDeep(t *testing.T) {
	r := sample("a")
	c := r.Clone()
	c.Tech[0] = "rust"
	c.Metrics[0].Value = "0"
	c.Links[0].URL = "x"

	assert.Equal(t, "go", r.Tech[0])
	assert.Equal(t, "1k", r.Metrics[0].Value)
	assert.Equal(t, "https://example.com/a", r.Links[0].URL)
}

func TestStatic_FetchCopies(t *testing.T) {
	s := Static{sample("a")}
	got, err := s.Fetch(context.Background())
	require.NoError(t, err)
	got[0].Tech[0] = "changed"
	assert.Equal(t, "go", s[0].Tech[0])
}

func TestFetchOrEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("nil source", func(t *testing.T) {
		got := FetchOrEmpty(ctx, nil, time.Second)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("success", func(t *testing.T) {
		got := FetchOrEmpty(ctx, Static{sample("a"), sample("b")}, time.Second)
		assert.Len(t, got, 2)
	})

	t.Run("error degrades to empty", func(t *testing.T) {
		src := SourceFunc(func(context.Context) ([]Record, error) {
			return nil, errors.New("boom")
		})
		got := FetchOrEmpty(ctx, src, time.Second)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("invalid record is dropped", func(t *testing.T) {
		bad := sample("b")
		bad.Title = ""
		got := FetchOrEmpty(ctx, Static{sample("a"), bad, sample("c")}, time.Second)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
	})

	t.Run("repeated id keeps the first", func(t *testing.T) {
		first := sample("a")
		second := sample("a")
		second.Title = "later"
		got := FetchOrEmpty(ctx, Static{first, second}, time.Second)
		require.Len(t, got, 1)
		assert.Equal(t, first.Title, got[0].Title)
	})

	t.Run("all invalid is empty", func(t *testing.T) {
		got := FetchOrEmpty(ctx, Static{{ID: "x"}}, time.Second)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("timeout", func(t *testing.T) {
		src := SourceFunc(func(ctx context.Context) ([]Record, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
		start := time.Now()
		got := FetchOrEmpty(ctx, src, 20*time.Millisecond)
		assert.Empty(t, got)
		assert.Less(t, time.Since(start), 2*time.Second)
	})
}
