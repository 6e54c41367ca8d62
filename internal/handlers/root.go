package handlers

import "net/http"

// NewRootHandler returns the plain-text liveness handler.
// @Summary Hello
// @Tags health
// @Produce plain
// @Success 200 {string} string "hello world"
// @Router / [get]
func NewRootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("hello world"))
	}
}
