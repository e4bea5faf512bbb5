package httpapi

import (
	_ "embed"
	"net/http"
)

//go:embed static/index.html
var indexHTML []byte

// indexHandler serves the chat page.
//
// @Summary      Chat page
// @Tags         ui
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       / [get]
func indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}
