package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// Middleware attaches a fresh LogData to every request handled by the Huma
// API and emits one structured line per request once the handler returns.
func Middleware(logger *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(logger)
		logData.AddData("operation", ctx.Operation().OperationID)

		endTimer := logData.AddTiming("duration")
		next(huma.WithValue(ctx, logDataKey, logData))
		endTimer()

		logData.AddData("status", ctx.Status())
		if ctx.Status() >= 500 {
			logData.Log().Errorf("Handler.%v.Error", ctx.Operation().OperationID)
			return
		}
		logData.Log().Infof("Handler.%v.Complete", ctx.Operation().OperationID)
	}
}
