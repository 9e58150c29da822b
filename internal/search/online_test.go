package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skyseek/skyseek/internal/domain"
	"github.com/skyseek/skyseek/internal/logger"
	"github.com/skyseek/skyseek/internal/sources"
)

// stubSource is a scriptable sources.Source for fan-out tests.
type stubSource struct {
	id    domain.SourceID
	objs  []domain.SearchableObject
	err   error
	delay time.Duration
}

func (s *stubSource) ID() domain.SourceID { return s.id }

func (s *stubSource) Resolve(ctx context.Context, name string) ([]domain.SearchableObject, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.objs, s.err
}

func (s *stubSource) CheckAvailability(ctx context.Context) bool { return true }

func TestOnline_MergesAcrossSources(t *testing.T) {
	simbad := &stubSource{id: domain.SourceSimbad, objs: []domain.SearchableObject{
		{Name: "M31", Type: domain.TypeDSO, Source: domain.SourceSimbad},
		{Name: "M110", Type: domain.TypeDSO, Source: domain.SourceSimbad},
	}}
	sesame := &stubSource{id: domain.SourceSesame, objs: []domain.SearchableObject{
		// Duplicate name across sources: first registration order wins.
		{Name: "m31", Type: domain.TypeDSO, Source: domain.SourceSesame},
		{Name: "NGC 205", Type: domain.TypeDSO, Source: domain.SourceSesame},
	}}

	res := Online(context.Background(), "m31", []sources.Source{simbad, sesame}, time.Second, logger.NewNop())

	if len(res.Failed) != 0 {
		t.Fatalf("unexpected failures: %v", res.Failed)
	}
	if len(res.SourcesQueried) != 2 {
		t.Fatalf("SourcesQueried = %v, want both", res.SourcesQueried)
	}
	if len(res.Results) != 3 {
		t.Fatalf("len = %d, want 3 after dedup", len(res.Results))
	}
	for _, o := range res.Results {
		if !o.IsOnlineResult {
			t.Errorf("%s should be flagged as an online result", o.Name)
		}
		if o.Score < domain.FuzzyThreshold {
			t.Errorf("%s score %v below the inclusion floor", o.Name, o.Score)
		}
	}
	// The simbad M31 won the dedup.
	if res.Results[0].Source != domain.SourceSimbad {
		t.Errorf("first M31 should come from simbad, got %s", res.Results[0].Source)
	}
}

func TestOnline_PartialFailure(t *testing.T) {
	ok := &stubSource{id: domain.SourceSimbad, objs: []domain.SearchableObject{
		{Name: "M31", Type: domain.TypeDSO, Source: domain.SourceSimbad},
	}}
	broken := &stubSource{id: domain.SourceSesame, err: errors.New("boom")}

	res := Online(context.Background(), "m31", []sources.Source{ok, broken}, time.Second, logger.NewNop())

	if len(res.Results) != 1 {
		t.Fatalf("expected the healthy source's result, got %d", len(res.Results))
	}
	if len(res.Failed) != 1 || res.Failed[0] != domain.SourceSesame {
		t.Errorf("Failed = %v, want [sesame]", res.Failed)
	}
	if len(res.SourcesQueried) != 1 || res.SourcesQueried[0] != domain.SourceSimbad {
		t.Errorf("SourcesQueried = %v, want [simbad]", res.SourcesQueried)
	}
}

func TestOnline_Timeout(t *testing.T) {
	slow := &stubSource{id: domain.SourceSimbad, delay: 500 * time.Millisecond,
		objs: []domain.SearchableObject{{Name: "M31"}}}
	fast := &stubSource{id: domain.SourceSesame, objs: []domain.SearchableObject{
		{Name: "NGC 224", Type: domain.TypeDSO, Source: domain.SourceSesame},
	}}

	res := Online(context.Background(), "m31", []sources.Source{slow, fast}, 50*time.Millisecond, logger.NewNop())

	if len(res.Failed) != 1 || res.Failed[0] != domain.SourceSimbad {
		t.Errorf("slow source should time out, Failed = %v", res.Failed)
	}
	if len(res.Results) != 1 || res.Results[0].Name != "NGC 224" {
		t.Errorf("fast source's results should survive, got %v", res.Results)
	}
}

func TestOnline_ShortQuery(t *testing.T) {
	src := &stubSource{id: domain.SourceSimbad}
	res := Online(context.Background(), "m", []sources.Source{src}, time.Second, logger.NewNop())
	if len(res.Results) != 0 || len(res.SourcesQueried) != 0 {
		t.Errorf("sub-minimum query should not fan out: %+v", res)
	}
}

func TestOnline_Cap(t *testing.T) {
	objs := make([]domain.SearchableObject, 0, 40)
	for i := 0; i < 40; i++ {
		objs = append(objs, domain.SearchableObject{
			Name: "NGC " + string(rune('A'+i%26)) + string(rune('a'+i/26)),
			Type: domain.TypeDSO,
		})
	}
	src := &stubSource{id: domain.SourceSimbad, objs: objs}

	res := Online(context.Background(), "ngc", []sources.Source{src}, time.Second, logger.NewNop())
	if len(res.Results) > MaxOnlineResults {
		t.Errorf("len = %d, want <= %d", len(res.Results), MaxOnlineResults)
	}
}
