package routes

import (
	"net/http"

	swaggerHandler "github.com/swaggo/http-swagger"

	_ "github.com/oggyb/sms-gateway-connector/internal/docs" // swagger docs
	"github.com/oggyb/sms-gateway-connector/internal/response"
)

type AppDeps struct {
	Home    HomeHandler
	Message MessageHandler
}

type HomeHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type MessageHandler interface {
	SendMessage(w http.ResponseWriter, r *http.Request)
	GetMessage(w http.ResponseWriter, r *http.Request)
	ListMessages(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

func Register(mux *http.ServeMux, d AppDeps) {
	mux.HandleFunc("GET /{$}", d.Home.Index)
	mux.HandleFunc("GET /health", d.Home.Health)

	mux.HandleFunc("POST /messages", d.Message.SendMessage)
	mux.HandleFunc("GET /messages", d.Message.ListMessages)
	mux.HandleFunc("GET /messages/{id}", d.Message.GetMessage)
	mux.HandleFunc("GET /stats", d.Message.Stats)

	mux.HandleFunc("GET /swagger/", swaggerHandler.WrapHandler)

	// Fallback handler for undefined routes (404)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusNotFound, "route not found")
	}))
}
