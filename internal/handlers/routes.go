package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the shortener, admin and liveness routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, adminHandler *AdminHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Liveness",
		Tags:        []string{"Health"},
	}, Root)

	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/api/shorten",
		Summary:       "Create short URL",
		Description:   "Creates a short URL, or returns the existing one when the URL was already shortened.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID: "list-short-urls",
		Method:      http.MethodGet,
		Path:        "/api/admin/urls",
		Summary:     "List short URLs",
		Description: "Lists every short URL, newest first. Requires the x-admin-key header.",
		Tags:        []string{"Admin"},
		Errors:      []int{http.StatusUnauthorized, http.StatusInternalServerError},
	}, adminHandler.ListLinks)

	huma.Register(api, huma.Operation{
		OperationID:   "redirect",
		Method:        http.MethodGet,
		Path:          "/{code}",
		Summary:       "Redirect to original URL",
		Description:   "Redirects to the original URL associated with the short code.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusFound,
	}, urlHandler.RedirectToURL)
}
