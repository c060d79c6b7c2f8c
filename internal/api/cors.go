package api

import (
	"net/http"

	"github.com/gorilla/handlers"
)

func setupCorsOptions(origin string) []handlers.CORSOption {
	methods := handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions})
	headers := handlers.AllowedHeaders([]string{"Content-Type"})

	// credentials are only allowed for an explicit origin
	if origin == "" {
		return []handlers.CORSOption{methods, handlers.AllowedOrigins([]string{"*"}), headers}
	}

	credentials := handlers.AllowCredentials()
	origins := handlers.AllowedOrigins([]string{origin})

	options := []handlers.CORSOption{credentials, methods, origins, headers}
	return options
}
