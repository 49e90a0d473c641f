package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/jeamon/demo-crud-api/docs"
)

// SetupRoutes enforces the api routes.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/", m.public.Chain(api.Index))
	router.GET("/status", m.public.Chain(api.Status))

	router.POST("/book/add", m.public.Chain(api.CreateBook))
	router.GET("/book", m.public.Chain(api.GetAllBooks))
	router.GET("/book/:id", m.public.Chain(api.GetOneBook))
	router.PUT("/book/:id", m.public.Chain(api.UpdateBook))
	router.DELETE("/book/:id", m.public.Chain(api.DeleteOneBook))

	if api.config.OpsEndpointsEnable {
		router.GET("/ops/configs", m.ops.Chain(api.GetConfigs))
		router.GET("/ops/stats", m.ops.Chain(api.GetStatistics))
		router.GET("/ops/maintenance", m.ops.Chain(api.Maintenance))
		router.GET("/swagger/:any", m.ops.Chain(WrapSwaggerHandler(httpswagger.WrapHandler)))
	}
	return router
}

// WrapSwaggerHandler adapts the swagger ui handler to the httprouter signature.
func WrapSwaggerHandler(h http.Handler) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		h.ServeHTTP(w, r)
	}
}
