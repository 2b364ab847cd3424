package handler

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// GenerateRequestID returns a time-ordered UUID for the X-Request-ID header.
func GenerateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		logrus.WithError(err).Debug("uuid v7 generation failed, falling back to v4")
		return uuid.NewString()
	}
	return id.String()
}
