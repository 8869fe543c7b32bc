package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterDBTracing attaches the otelgorm plugin so every query issued
// through the connection becomes a child span of the request span carried
// in the statement context. Query variables are stripped from the recorded
// SQL; bookings carry customer contact details and those must not end up
// in trace storage.
func RegisterDBTracing(db *gorm.DB, dbName string, log *zap.Logger) error {
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(dbName),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}

	log.Info("database tracing enabled", zap.String("db_name", dbName))
	return nil
}
