package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// storyID binds the {id} path parameter.
func storyID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter id: %s", err), http.StatusBadRequest)
		return "", false
	}
	return id, true
}

// queryParam binds an optional form-style query parameter. An absent
// parameter binds to "".
func queryParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter %s: %s", name, err), http.StatusBadRequest)
		return "", false
	}
	if v == nil {
		return "", true
	}
	return *v, true
}
