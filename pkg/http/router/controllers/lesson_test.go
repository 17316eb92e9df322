package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/pleguide/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/pleguide/pkg/ilp"
	"github.com/lintang-b-s/pleguide/pkg/lesson"
	"github.com/lintang-b-s/pleguide/pkg/lp"
	"github.com/lintang-b-s/pleguide/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubService answers every call with the same program and error.
type stubService struct {
	prog    *lp.LinearProgram
	err     error
	naive   *ilp.NaiveResult
	problem string
	maxVars int
}

func (s *stubService) Page(ctx context.Context, form lesson.FormState) (*lesson.Page, error) {
	return nil, s.err
}

func (s *stubService) Chart(ctx context.Context) ([]byte, error) {
	return nil, s.err
}

func (s *stubService) Relaxation(ctx context.Context, problem string) (*lp.LinearProgram, *lp.RelaxedSolution, error) {
	s.problem = problem
	return s.prog, nil, s.err
}

func (s *stubService) RoundingSearch(ctx context.Context, problem string) (*lp.LinearProgram, *ilp.NaiveResult, error) {
	s.problem = problem
	return s.prog, s.naive, s.err
}

func (s *stubService) Messages() lesson.Messages {
	return lesson.Messages{
		NoFeasible:     "sin solución factible",
		NoIntegral:     "sin solución entera",
		Solving:        "resolviendo",
		InConstruction: "en construcción",
	}
}

func (s *stubService) FormBounds() (min, max, def int) {
	if s.maxVars == 0 {
		return 2, 5, 3
	}
	return 2, s.maxVars, 2
}

type nopRenderer struct{}

func (nopRenderer) Render(w io.Writer, page *lesson.Page) error { return nil }

func newRouter(t *testing.T, svc LessonService) *httprouter.Router {
	t.Helper()
	r := httprouter.New()
	api := New(svc, nopRenderer{}, zap.NewNop())
	api.PageRoutes(helper.NewRouteGroup(r, ""))
	api.Routes(helper.NewRouteGroup(r, "/api"))
	return r
}

func testProgram(t *testing.T) *lp.LinearProgram {
	t.Helper()
	p, err := lp.NewLinearProgram("demo", []float64{1, 1}, true, lp.Le(4, 1, 1))
	require.NoError(t, err)
	return p
}

func TestErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		path       string
		wantStatus int
	}{
		{name: "internal", err: util.WrapErrorf(errors.New("x"), util.ErrInternalServerError, "solver"), path: "/api/relaxation", wantStatus: http.StatusInternalServerError},
		{name: "bad param", err: util.WrapErrorf(errors.New("x"), util.ErrBadParamInput, "bad"), path: "/api/branch-and-bound?problem=x", wantStatus: http.StatusBadRequest},
		{name: "not found", err: util.WrapErrorf(errors.New("x"), util.ErrNotFound, "missing"), path: "/chart.svg", wantStatus: http.StatusNotFound},
		{name: "deadline", err: util.WrapErrorf(context.DeadlineExceeded, util.ErrInternalServerError, "slow"), path: "/", wantStatus: http.StatusGatewayTimeout},
		{name: "plain error", err: errors.New("boom"), path: "/api/branch-and-bound", wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(t, &stubService{prog: testProgram(t), err: tt.err})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, tt.wantStatus, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, http.StatusText(tt.wantStatus), body.Error.Code)
		})
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	r := newRouter(t, &stubService{prog: testProgram(t), err: errors.New("secret detail")})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/relaxation", nil))
	assert.NotContains(t, rec.Body.String(), "secret detail")
	assert.Contains(t, rec.Body.String(), util.MessageInternalServerError)
}

func TestRoundingSearchWithoutIntegralLeaf(t *testing.T) {
	prog := testProgram(t)
	naive := &ilp.NaiveResult{
		Relaxed: &lp.RelaxedSolution{Point: []float64{1.5, 2.5}, Value: -4},
		Pops:    3,
	}
	svc := &stubService{prog: prog, naive: naive, err: ilp.ErrNoIntegralSolution}
	r := newRouter(t, svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/branch-and-bound?problem=demo", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "demo", svc.problem)

	var body struct {
		Data roundingSearchResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Data.Found)
	assert.Equal(t, 3, body.Data.Pops)
	assert.Equal(t, []float64{1.5, 2.5}, body.Data.Relaxed)
	assert.Equal(t, "sin solución entera", body.Data.Message)
}

func TestNewRoundingSearchResponse(t *testing.T) {
	prog := testProgram(t)
	res := ilp.SearchFrom(&lp.RelaxedSolution{Point: []float64{1.5, 2}, Value: -3.5}, prog)

	resp := NewRoundingSearchResponse(prog, res, "")
	require.True(t, resp.Found)
	assert.Len(t, resp.Leaves, len(res.Leaves))
	for _, l := range resp.Leaves {
		assert.InDelta(t, 3.5, l.InheritedObjective, 1e-9)
	}
	assert.InDelta(t, 3.5, resp.Objective, 1e-9)
}

func TestRoundingSearchOfInfeasibleRelaxation(t *testing.T) {
	svc := &stubService{prog: testProgram(t), err: ilp.ErrNoFeasibleSolution}
	r := newRouter(t, svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/branch-and-bound", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data roundingSearchResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Data.Found)
	assert.Zero(t, body.Data.Pops)
	assert.Equal(t, "sin solución entera", body.Data.Message)
}

func TestNumVarsFollowsFormBounds(t *testing.T) {
	tests := []struct {
		name       string
		numVars    string
		wantStatus int
	}{
		{name: "at configured maximum", numVars: "3", wantStatus: http.StatusOK},
		{name: "above configured maximum", numVars: "4", wantStatus: http.StatusBadRequest},
		{name: "below minimum", numVars: "1", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(t, &stubService{prog: testProgram(t), maxVars: 3})

			req := httptest.NewRequest(http.MethodPost, "/api/problems", strings.NewReader(`{"num_vars":`+tt.numVars+`}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusOK {
				var body struct {
					Data customProblemResponse `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, []string{"resolviendo", "en construcción"}, body.Data.Messages)
			}

			form := url.Values{"num_vars": {tt.numVars}}
			req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec = httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
