package internal

import (
	"net/http"

	"bbcd/internal/controllers"
	"bbcd/internal/providers"
	"bbcd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/latest", http.HandlerFunc(apiController.GetLatest))
	routers.Get("/history", http.HandlerFunc(apiController.GetHistory))
	routers.Get("/download", http.HandlerFunc(apiController.Download))
	routers.Get("/force-sync", http.HandlerFunc(apiController.ForceSync))
	routers.Post("/register", http.HandlerFunc(apiController.Register))
	return routers
}
