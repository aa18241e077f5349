package api

import "github.com/labstack/echo/v4"

// Router aggregates the REST and websocket handlers into one route registration.
type Router struct {
	charts   *ChartsEchoHandler
	transits *TransitsWSHandler
}

func NewRouter(charts *ChartsEchoHandler, transits *TransitsWSHandler) *Router {
	return &Router{charts: charts, transits: transits}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	r.charts.RegisterRoutes(e)
	r.transits.RegisterRoutes(e)
}
