package types

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type APIOutline struct {
	Routes []RouteOutline `json:"routes"`
}

type RouteOutline struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

func NewOutline() *APIOutline {
	return &APIOutline{
		Routes: make([]RouteOutline, 0),
	}
}

// RegisterRoute records the route and restricts it to method on router.
func (o *APIOutline) RegisterRoute(router *mux.Router, method string, path string, f http.HandlerFunc) {
	o.Routes = append(o.Routes, RouteOutline{
		Method: method,
		Path:   path,
	})
	router.HandleFunc(path, f).Methods(method)
}

func (o *APIOutline) RegisterGetRoute(router *mux.Router, path string, f http.HandlerFunc) {
	o.RegisterRoute(router, http.MethodGet, path, f)
}

// OutlineHandler lists the registered routes sorted by path.
func (o *APIOutline) OutlineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		routes := make([]RouteOutline, len(o.Routes))
		copy(routes, o.Routes)
		sort.Slice(routes, func(i, j int) bool {
			return routes[i].Path < routes[j].Path
		})
		WriteJSON(w, http.StatusOK, APIOutline{Routes: routes})
	}
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("cannot encode response")
	}
}

func WriteError(w http.ResponseWriter, status int, err error) {
	WriteJSON(w, status, ErrorResponse{Error: err.Error()})
}
