package logging

import (
	"go.uber.org/zap"
)

// New builds the process-wide logger. Development config outside of prod so
// local runs stay readable.
func New(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
