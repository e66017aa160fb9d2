package internal

import (
	"net/http"
	"storemon/internal/controllers"
	"storemon/internal/providers"
	"storemon/internal/structures"
)

func InitRoutes(reportController *controllers.ReportController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/trigger_report", http.HandlerFunc(reportController.TriggerReport))
	routers.Get("/get_report", http.HandlerFunc(reportController.GetReport))
	return routers
}
