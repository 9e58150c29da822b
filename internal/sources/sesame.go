package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/skyseek/skyseek/internal/domain"
	"github.com/skyseek/skyseek/internal/logger"
)

// defaultSesameURL is the CDS Sesame resolver, plain-text output with
// identifier lists.
const defaultSesameURL = "https://cds.unistra.fr/cgi-bin/nph-sesame/-oI/A?"

// Sesame resolves names through the CDS Sesame service. Sesame answers
// with at most one object per query, as line-oriented text.
type Sesame struct {
	baseURL string
	client  *http.Client
	limiter *rateLimiter
	log     logger.Logger
}

// NewSesame creates the Sesame adapter.
func NewSesame(log logger.Logger) *Sesame {
	return &Sesame{
		baseURL: defaultSesameURL,
		client:  newHTTPClient(),
		limiter: newRateLimiter(defaultBurst, defaultCallsPerMin),
		log:     log,
	}
}

func (s *Sesame) ID() domain.SourceID { return domain.SourceSesame }

// Resolve queries Sesame for a single name.
func (s *Sesame) Resolve(ctx context.Context, name string) ([]domain.SearchableObject, error) {
	name = strings.TrimSpace(name)
	if len(name) < domain.MinQueryLength {
		return nil, nil
	}
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+url.QueryEscape(name), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build sesame request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sesame request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sesame returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read sesame response: %w", err)
	}

	obj, ok := parseSesame(name, string(body))
	if !ok {
		return nil, nil
	}
	return []domain.SearchableObject{obj}, nil
}

// CheckAvailability probes the resolver endpoint.
func (s *Sesame) CheckAvailability(ctx context.Context) bool {
	return probe(ctx, s.client, strings.TrimSuffix(s.baseURL, "?"))
}

// parseSesame extracts one object from Sesame's %-prefixed line format.
//
//	%J 10.68470833 +41.26905556 = 00:42:44.3 +41:16:09
//	%C.0 G
//	%M.V 3.44
//	%I.0 NAME Andromeda Galaxy
//	%I M 31
func parseSesame(query, body string) (domain.SearchableObject, bool) {
	obj := domain.SearchableObject{
		Type:           domain.TypeDSO,
		Source:         domain.SourceSesame,
		IsOnlineResult: true,
	}

	var commonNames []string
	var designations []string
	found := false

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "%J "):
			fields := strings.Fields(strings.TrimPrefix(line, "%J "))
			if len(fields) >= 2 {
				ra, errRA := strconv.ParseFloat(fields[0], 64)
				dec, errDec := strconv.ParseFloat(fields[1], 64)
				if errRA == nil && errDec == nil {
					obj.RA = &ra
					obj.Dec = &dec
					found = true
				}
			}

		case strings.HasPrefix(line, "%C.0 "):
			obj.Type = normalizeType(strings.TrimPrefix(line, "%C.0 "))

		case strings.HasPrefix(line, "%M.V "):
			if mag, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, "%M.V ")), 64); err == nil {
				obj.Magnitude = &mag
			}

		case strings.HasPrefix(line, "%I.0 "), strings.HasPrefix(line, "%I "):
			val := strings.TrimPrefix(line, "%I.0 ")
			val = strings.TrimSpace(strings.TrimPrefix(val, "%I "))
			if val == "" {
				continue
			}
			found = true
			if cn, ok := strings.CutPrefix(val, "NAME "); ok {
				commonNames = append(commonNames, strings.TrimSpace(cn))
			} else {
				designations = append(designations, val)
			}
		}
	}

	if !found {
		return domain.SearchableObject{}, false
	}

	obj.Name = pickDesignation(designations, query)
	obj.CommonNames = strings.Join(commonNames, ", ")
	for _, d := range designations {
		if d != obj.Name {
			obj.AlternateNames = append(obj.AlternateNames, d)
		}
	}
	obj.SourceURL = "https://cds.unistra.fr/cgi-bin/nph-sesame/-oI/A?" + url.QueryEscape(query)
	return obj, true
}

// pickDesignation chooses the display name among resolved identifiers,
// preferring short popular catalogs over survey designations.
func pickDesignation(designations []string, fallback string) string {
	for _, prefix := range []string{"M ", "NGC ", "IC "} {
		for _, d := range designations {
			if strings.HasPrefix(d, prefix) {
				return strings.ReplaceAll(d, " ", "")
			}
		}
	}
	if len(designations) > 0 {
		return designations[0]
	}
	return fallback
}
