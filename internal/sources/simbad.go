package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/skyseek/skyseek/internal/domain"
	"github.com/skyseek/skyseek/internal/logger"
)

const (
	defaultSimbadTAPURL = "https://simbad.cds.unistra.fr/simbad/sim-tap/sync"
	simbadObjectURL     = "https://simbad.cds.unistra.fr/simbad/sim-id?Ident="

	// simbadMaxRows bounds one TAP response; the online stage caps the
	// merged set anyway.
	simbadMaxRows = 15
)

// Simbad resolves names through the SIMBAD TAP service using ADQL over
// the ident table, JSON output.
type Simbad struct {
	tapURL  string
	client  *http.Client
	limiter *rateLimiter
	log     logger.Logger
}

// NewSimbad creates the SIMBAD adapter.
func NewSimbad(log logger.Logger) *Simbad {
	return &Simbad{
		tapURL:  defaultSimbadTAPURL,
		client:  newHTTPClient(),
		limiter: newRateLimiter(defaultBurst, defaultCallsPerMin),
		log:     log,
	}
}

func (s *Simbad) ID() domain.SourceID { return domain.SourceSimbad }

// tapResponse is the TAP JSON table shape: column metadata plus rows of
// loosely typed cells.
type tapResponse struct {
	Metadata []struct {
		Name string `json:"name"`
	} `json:"metadata"`
	Data [][]any `json:"data"`
}

// Resolve queries SIMBAD for identifiers matching the name.
func (s *Simbad) Resolve(ctx context.Context, name string) ([]domain.SearchableObject, error) {
	name = strings.TrimSpace(name)
	if len(name) < domain.MinQueryLength {
		return nil, nil
	}
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}

	adql := fmt.Sprintf(
		`SELECT TOP %d b.main_id, b.otype_txt, b.ra, b.dec, f.V, b.rvz_redshift, b.sp_type, b.morph_type `+
			`FROM basic b JOIN ident i ON i.oidref = b.oid LEFT JOIN allfluxes f ON f.oidref = b.oid `+
			`WHERE UPPER(i.id) LIKE UPPER('%%%s%%')`,
		simbadMaxRows, escapeADQL(name))

	form := url.Values{
		"REQUEST": {"doQuery"},
		"LANG":    {"ADQL"},
		"FORMAT":  {"json"},
		"QUERY":   {adql},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tapURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build simbad request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("simbad request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("simbad returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read simbad response: %w", err)
	}

	var table tapResponse
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("failed to parse simbad response: %w", err)
	}
	return s.normalize(table), nil
}

// CheckAvailability probes the TAP endpoint's availability resource.
func (s *Simbad) CheckAvailability(ctx context.Context) bool {
	return probe(ctx, s.client, strings.TrimSuffix(s.tapURL, "/sync")+"/availability")
}

// normalize converts a TAP table into searchable objects. Rows missing
// a main identifier are dropped; everything else gets a best-effort
// mapping with DSO as the fallback type.
func (s *Simbad) normalize(table tapResponse) []domain.SearchableObject {
	col := make(map[string]int, len(table.Metadata))
	for i, m := range table.Metadata {
		col[strings.ToLower(m.Name)] = i
	}

	objects := make([]domain.SearchableObject, 0, len(table.Data))
	for _, row := range table.Data {
		name := cellString(row, col, "main_id")
		if name == "" {
			continue
		}

		obj := domain.SearchableObject{
			Name:           strings.ReplaceAll(name, "  ", " "),
			Type:           normalizeType(cellString(row, col, "otype_txt")),
			Source:         domain.SourceSimbad,
			SourceURL:      simbadObjectURL + url.QueryEscape(name),
			IsOnlineResult: true,
			SpectralType:   cellString(row, col, "sp_type"),
		}
		obj.MorphologicalType = cellString(row, col, "morph_type")

		ra := cellFloat(row, col, "ra")
		dec := cellFloat(row, col, "dec")
		if ra != nil && dec != nil {
			obj.RA = ra
			obj.Dec = dec
		}
		obj.Magnitude = cellFloat(row, col, "v")
		obj.Redshift = cellFloat(row, col, "rvz_redshift")

		objects = append(objects, obj)
	}
	return objects
}

func cellString(row []any, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) || row[i] == nil {
		return ""
	}
	v, ok := row[i].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

func cellFloat(row []any, col map[string]int, name string) *float64 {
	i, ok := col[name]
	if !ok || i >= len(row) || row[i] == nil {
		return nil
	}
	v, ok := row[i].(float64)
	if !ok {
		return nil
	}
	return &v
}

// escapeADQL doubles single quotes for string literals.
func escapeADQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
