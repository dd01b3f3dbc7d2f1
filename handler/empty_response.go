package handler

import "net/http"

type emptyResponse struct{}

func (emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Empty answers 204 No Content.
func Empty() Response { return emptyResponse{} }
