package controllers

import (
	"github.com/lintang-b-s/pleguide/pkg/ilp"
	"github.com/lintang-b-s/pleguide/pkg/lp"
)

type customProblemRequest struct {
	NumVars     int    `json:"num_vars" validate:"required"`
	Objective   string `json:"objective" validate:"max=2000"`
	Constraints string `json:"constraints" validate:"max=10000"`
}

type customProblemResponse struct {
	Status   string   `json:"status"`
	Messages []string `json:"messages"`
}

type relaxationResponse struct {
	Problem   string    `json:"problem"`
	Feasible  bool      `json:"feasible"`
	Point     []float64 `json:"point,omitempty"`
	Objective float64   `json:"objective,omitempty"`
	Message   string    `json:"message,omitempty"`
}

func NewRelaxationResponse(p *lp.LinearProgram, sol *lp.RelaxedSolution, message string) relaxationResponse {
	resp := relaxationResponse{Problem: p.Name(), Message: message}
	if sol != nil {
		resp.Feasible = true
		resp.Point = sol.Point
		resp.Objective = sol.Objective(p)
	}
	return resp
}

type leafResponse struct {
	Point                []float64 `json:"point"`
	InheritedObjective   float64   `json:"inherited_objective"`
	Improved             bool      `json:"improved"`
	SatisfiesConstraints bool      `json:"satisfies_constraints"`
}

type roundingSearchResponse struct {
	Problem   string         `json:"problem"`
	Found     bool           `json:"found"`
	Point     []int          `json:"point,omitempty"`
	Objective float64        `json:"objective,omitempty"`
	Relaxed   []float64      `json:"relaxed_point,omitempty"`
	Pops      int            `json:"pops"`
	Leaves    []leafResponse `json:"leaves,omitempty"`
	Message   string         `json:"message,omitempty"`
}

func NewRoundingSearchResponse(p *lp.LinearProgram, res *ilp.NaiveResult, message string) roundingSearchResponse {
	resp := roundingSearchResponse{Problem: p.Name(), Message: message}
	if res == nil {
		return resp
	}
	resp.Pops = res.Pops
	if res.Relaxed != nil {
		resp.Relaxed = res.Relaxed.Point
	}
	for _, l := range res.Leaves {
		resp.Leaves = append(resp.Leaves, leafResponse{
			Point:                l.Point,
			InheritedObjective:   p.InternalValue(l.Value),
			Improved:             l.Improved,
			SatisfiesConstraints: l.SatisfiesConstraints,
		})
	}
	if res.Best != nil {
		resp.Found = true
		resp.Point = res.Best.IntPoint()
		resp.Objective = res.BestObjective(p)
	}
	return resp
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
