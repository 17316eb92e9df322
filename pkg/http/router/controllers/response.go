package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	esTranslations "github.com/go-playground/validator/v10/translations/es"
	"github.com/lintang-b-s/pleguide/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]any

func (api *lessonAPI) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (api *lessonAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	var resp errorResponse
	resp.Error.Code = http.StatusText(status)
	resp.Error.Message = message
	if err := api.writeJSON(w, status, envelope{"error": resp.Error}, nil); err != nil {
		api.log.Error("write error response", zap.Error(err), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *lessonAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (api *lessonAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (api *lessonAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("server error", zap.Error(err), zap.String("method", r.Method), zap.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

func (api *lessonAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		api.errorResponse(w, r, http.StatusGatewayTimeout, util.ErrTimeout.Error())
		return
	}
	var ierr *util.Error
	if !errors.As(err, &ierr) {
		api.ServerErrorResponse(w, r, err)
		return
	}
	switch ierr.Code() {
	case util.ErrBadParamInput:
		api.BadRequestResponse(w, r, ierr)
	case util.ErrNotFound:
		api.NotFoundResponse(w, r, ierr)
	default:
		api.ServerErrorResponse(w, r, ierr)
	}
}

// validate checks a request struct and returns the violations translated to
// Spanish, or nil.
func validate(request any) []string {
	v := validator.New()
	err := v.Struct(request)
	if err == nil {
		return nil
	}
	spanish := es.New()
	uni := ut.New(spanish, spanish)
	trans, _ := uni.GetTranslator("es")
	_ = esTranslations.RegisterDefaultTranslations(v, trans)

	vv := translateError(err, trans)
	out := make([]string, 0, len(vv))
	for _, e := range vv {
		out = append(out, e.Error())
	}
	return out
}

func translateError(err error, trans ut.Translator) []error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(verrs))
	for _, e := range verrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

func validationError(vv []string) error {
	return fmt.Errorf("validation error: %v", vv)
}
