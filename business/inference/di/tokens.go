// Package di contains dependency injection tokens for the inference context.
package di

import (
	"github.com/ChiaviniK/ComexioCase/business/inference/app"
	"github.com/ChiaviniK/ComexioCase/business/inference/domain"
	"github.com/ChiaviniK/ComexioCase/business/inference/infra/chart"
	"github.com/ChiaviniK/ComexioCase/internal/di"
)

// Public service tokens - exposed to other modules
var (
	ImportService = di.NewToken[*app.ImportService]("inference.ImportService")
	BatchHistory  = di.NewToken[*app.BatchHistory]("inference.BatchHistory")
	ChartRenderer = di.NewToken[*chart.Renderer]("inference.ChartRenderer")
)

// Private service tokens - internal to inference module
var (
	Engine = di.NewToken[*domain.Engine]("inference:engine")
)

func GetImportService(c di.ServiceRegistry) *app.ImportService {
	return di.GetToken(c, ImportService)
}

func GetBatchHistory(c di.ServiceRegistry) *app.BatchHistory {
	return di.GetToken(c, BatchHistory)
}

func GetChartRenderer(c di.ServiceRegistry) *chart.Renderer {
	return di.GetToken(c, ChartRenderer)
}

func GetEngine(c di.ServiceRegistry) *domain.Engine {
	return di.GetToken(c, Engine)
}
