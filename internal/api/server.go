package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the search handler, health check and metrics endpoint.
// GET / is an alias of /search so the service can sit behind a bare
// function URL.
func NewRouter(s Searcher) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), RequestLogger(), Recovery())

	h := NewHandler(s)
	router.GET("/", h.Search)
	router.GET("/search", h.Search)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

// NewServer returns an http.Server for handler. The write timeout leaves
// room for a full batch of slow fetches.
func NewServer(addr string, handler http.Handler, fetchTimeout time.Duration) *http.Server {
	if fetchTimeout <= 0 {
		fetchTimeout = 5 * time.Second
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      4*fetchTimeout + 30*time.Second,
		IdleTimeout:       90 * time.Second,
	}
}
