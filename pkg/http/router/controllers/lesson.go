package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/pleguide/pkg/ilp"
	helper "github.com/lintang-b-s/pleguide/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/pleguide/pkg/lesson"
	"go.uber.org/zap"
)

const maxFormBytes = 1 << 16

type lessonAPI struct {
	lessonService LessonService
	renderer      PageRenderer
	log           *zap.Logger
}

func New(lessonService LessonService, renderer PageRenderer, log *zap.Logger) *lessonAPI {
	return &lessonAPI{
		lessonService: lessonService,
		renderer:      renderer,
		log:           log,
	}
}

// PageRoutes registers the HTML page and its chart.
func (api *lessonAPI) PageRoutes(group *helper.RouteGroup) {
	group.GET("/", api.page)
	group.POST("/", api.submitForm)
	group.GET("/chart.svg", api.chart)
}

func (api *lessonAPI) Routes(group *helper.RouteGroup) {
	group.GET("/relaxation", api.relaxation)
	group.GET("/branch-and-bound", api.roundingSearch)
	group.POST("/problems", api.customProblem)
}

func (api *lessonAPI) page(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	_, _, def := api.lessonService.FormBounds()
	api.writePage(w, r, lesson.FormState{NumVars: def})
}

func (api *lessonAPI) submitForm(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulario inválido", http.StatusBadRequest)
		return
	}
	minVars, maxVars, def := api.lessonService.FormBounds()

	form := lesson.FormState{
		NumVars:     def,
		Objective:   r.PostForm.Get("objective"),
		Constraints: r.PostForm.Get("constraints"),
		Submitted:   true,
	}
	n, err := strconv.Atoi(r.PostForm.Get("num_vars"))
	if err != nil || n < minVars || n > maxVars {
		http.Error(w, fmt.Sprintf("num_vars debe estar entre %d y %d", minVars, maxVars), http.StatusBadRequest)
		return
	}
	form.NumVars = n
	api.writePage(w, r, form)
}

func (api *lessonAPI) writePage(w http.ResponseWriter, r *http.Request, form lesson.FormState) {
	page, err := api.lessonService.Page(r.Context(), form)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := api.renderer.Render(&buf, page); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		api.log.Warn("write page", zap.Error(err))
	}
}

func (api *lessonAPI) chart(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	svg, err := api.lessonService.Chart(r.Context())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// relaxation
//
//	@Summary		relajación continua
//	@Description	resuelve el programa lineal sin restricciones de integralidad
//	@Tags			lesson
//	@Produce		json
//	@Param			problem	query		string	false	"anna (por defecto) o ejercicio-8.1"
//	@Success		200		{object}	relaxationResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/relaxation [get]
func (api *lessonAPI) relaxation(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	prog, sol, err := api.lessonService.Relaxation(r.Context(), r.URL.Query().Get("problem"))
	if err != nil && !errors.Is(err, ilp.ErrNoFeasibleSolution) {
		api.getStatusCode(w, r, err)
		return
	}

	var message string
	if sol == nil {
		message = api.lessonService.Messages().NoFeasible
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRelaxationResponse(prog, sol, message)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// roundingSearch
//
//	@Summary		búsqueda por redondeo
//	@Description	redondea la solución relajada con floor y ceil usando una pila, sin volver a resolver
//	@Tags			lesson
//	@Produce		json
//	@Param			problem	query		string	false	"anna (por defecto) o ejercicio-8.1"
//	@Success		200		{object}	roundingSearchResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/branch-and-bound [get]
func (api *lessonAPI) roundingSearch(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	prog, res, err := api.lessonService.RoundingSearch(r.Context(), r.URL.Query().Get("problem"))
	if err != nil && !errors.Is(err, ilp.ErrNoFeasibleSolution) && !errors.Is(err, ilp.ErrNoIntegralSolution) {
		api.getStatusCode(w, r, err)
		return
	}

	// an infeasible relaxation leaves no integral point either, as on the page.
	var message string
	if errors.Is(err, ilp.ErrNoFeasibleSolution) {
		res = nil
	}
	if res == nil || res.Best == nil {
		message = api.lessonService.Messages().NoIntegral
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRoundingSearchResponse(prog, res, message)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// customProblem
//
//	@Summary		formulario de problema propio
//	@Description	acepta la definición de un problema propio; todavía no se resuelve
//	@Tags			lesson
//	@Accept			json
//	@Produce		json
//	@Param			body	body		customProblemRequest	true	"problema"
//	@Success		200		{object}	customProblemResponse
//	@Failure		400		{object}	errorResponse
//	@Router			/problems [post]
func (api *lessonAPI) customProblem(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request customProblemRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, errors.New("invalid request body"))
		return
	}
	if vv := validate(request); vv != nil {
		api.BadRequestResponse(w, r, validationError(vv))
		return
	}
	minVars, maxVars, _ := api.lessonService.FormBounds()
	if request.NumVars < minVars || request.NumVars > maxVars {
		api.BadRequestResponse(w, r, fmt.Errorf("num_vars debe estar entre %d y %d", minVars, maxVars))
		return
	}

	msgs := api.lessonService.Messages()
	resp := customProblemResponse{Status: "pending", Messages: []string{msgs.Solving, msgs.InConstruction}}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
