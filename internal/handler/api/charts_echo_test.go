package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	models "TrueArk/internal/domain/models"
	"TrueArk/internal/usecase"
	xlogger "TrueArk/pkg/logger"

	"github.com/labstack/echo/v4"
)

// fakeEphemeris returns fixed raw positions so handler tests are deterministic.
type fakeEphemeris struct {
	mode models.EphemerisMode
}

func (f *fakeEphemeris) BodyPosition(_ context.Context, _ float64, body models.Body) (float64, float64, error) {
	// Spread bodies across signs; Neptune retrograde.
	base := map[models.Body][2]float64{
		models.Sun:      {162.93, 0.966},
		models.Moon:     {260.12, 13.18},
		models.Mercury:  {178.40, 1.42},
		models.Venus:    {139.55, 1.21},
		models.Mars:     {98.03, 0.64},
		models.Jupiter:  {95.87, 0.12},
		models.Saturn:   {146.21, 0.08},
		models.Uranus:   {218.66, 0.02},
		models.Neptune:  {253.44, -0.01},
		models.Pluto:    {192.78, 0.03},
		models.TrueNode: {197.91, -0.05},
	}
	p := base[body]
	return p[0], p[1], nil
}

func (f *fakeEphemeris) Angles(_ context.Context, _, _, _ float64) (float64, float64, error) {
	return 305.25, 215.80, nil
}

func (f *fakeEphemeris) Mode() models.EphemerisMode { return f.mode }

func (f *fakeEphemeris) Precision() string {
	if f.mode == models.ModeSwiss {
		return "arcsecond"
	}
	return "arcminute"
}

type apiEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestHandler(t *testing.T) (*echo.Echo, *ChartsEchoHandler) {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	engine := usecase.NewChartEngine(&fakeEphemeris{mode: models.ModeMoshier}, nil, nil)
	svc := usecase.NewChartService(engine, nil, nil, nil, time.Minute, nil, nil)
	h := NewChartsEchoHandler(l, svc)

	e := echo.New()
	h.RegisterRoutes(e)
	return e, h
}

func doJSON(e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, apiEnvelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env apiEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestPostChartComputesFullChart(t *testing.T) {
	e, _ := newTestHandler(t)

	rec, env := doJSON(e, http.MethodPost, "/chart",
		`{"datetime_utc":"1977-09-05T17:24:00Z","latitude":37.82,"longitude":-79.82}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("http status = %d, body %s", rec.Code, rec.Body.String())
	}
	if env.Status != http.StatusOK {
		t.Fatalf("envelope status = %d, body %s", env.Status, rec.Body.String())
	}

	var out models.ChartOutput
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if len(out.Bodies) != 11 {
		t.Fatalf("%d planets, want 11", len(out.Bodies))
	}
	if len(out.Houses) != 12 {
		t.Fatalf("%d houses, want 12", len(out.Houses))
	}
	asc := out.Angles[models.AngleAscendant]
	if out.Houses["1"] != asc.Sign {
		t.Fatalf("house 1 = %s, ascendant = %s", out.Houses["1"], asc.Sign)
	}
	if out.Metadata.EphemerisMode != models.ModeMoshier {
		t.Fatalf("mode = %s, want moshier", out.Metadata.EphemerisMode)
	}
}

func TestPostChartDefaultsHouseSystemAndZodiac(t *testing.T) {
	e, _ := newTestHandler(t)

	rec, env := doJSON(e, http.MethodPost, "/chart",
		`{"datetime_utc":"2000-01-01T12:00:00Z","latitude":0,"longitude":0}`)
	if rec.Code != http.StatusOK || env.Status != http.StatusOK {
		t.Fatalf("defaulted request rejected: http %d envelope %d", rec.Code, env.Status)
	}
}

func TestPostChartRejectsBadLatitude(t *testing.T) {
	e, _ := newTestHandler(t)

	_, env := doJSON(e, http.MethodPost, "/chart",
		`{"datetime_utc":"1977-09-05T17:24:00Z","latitude":91,"longitude":0}`)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400", env.Status)
	}
}

func TestPostChartRejectsUnsupportedHouseSystem(t *testing.T) {
	e, _ := newTestHandler(t)

	_, env := doJSON(e, http.MethodPost, "/chart",
		`{"datetime_utc":"1977-09-05T17:24:00Z","latitude":0,"longitude":0,"house_system":"P"}`)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400", env.Status)
	}
}

func TestPostChartRejectsAyanamsaAsUnprocessable(t *testing.T) {
	e, _ := newTestHandler(t)

	// Passes struct validation (no tag forbids it) and must be rejected by the
	// engine with an input error.
	_, env := doJSON(e, http.MethodPost, "/chart",
		`{"datetime_utc":"1977-09-05T17:24:00Z","latitude":0,"longitude":0,"ayanamsa":"lahiri"}`)
	if env.Status != http.StatusUnprocessableEntity {
		t.Fatalf("envelope status = %d, want 422", env.Status)
	}
}

func TestPostChartRejectsNonUTCOffsetAsUnprocessable(t *testing.T) {
	e, _ := newTestHandler(t)

	_, env := doJSON(e, http.MethodPost, "/chart",
		`{"datetime_utc":"1977-09-05T17:24:00+05:30","latitude":0,"longitude":0}`)
	if env.Status != http.StatusUnprocessableEntity {
		t.Fatalf("envelope status = %d, want 422", env.Status)
	}
}

func TestGetChartWithoutStoreFails(t *testing.T) {
	e, _ := newTestHandler(t)

	_, env := doJSON(e, http.MethodGet, "/charts/a2a1f0e4-1f6e-4f3a-9b1c-2d3e4f5a6b7c", "")
	if env.Status != http.StatusInternalServerError {
		t.Fatalf("envelope status = %d, want 500 without a store", env.Status)
	}
}

func TestHealthReportsEphemerisMode(t *testing.T) {
	e, _ := newTestHandler(t)

	rec, env := doJSON(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || env.Status != http.StatusOK {
		t.Fatalf("health failed: http %d envelope %d", rec.Code, env.Status)
	}

	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if data["ephemeris_mode"] != "moshier" {
		t.Fatalf("ephemeris_mode = %q, want moshier", data["ephemeris_mode"])
	}
}
