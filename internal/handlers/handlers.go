package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/talentgrid/internmatch/internal/services"
	"github.com/talentgrid/internmatch/internal/validation"
)

type Handlers struct {
	Health         *HealthHandler
	Auth           *AuthHandler
	Recommendation *RecommendationHandler
	Feedback       *FeedbackHandler
	Catalog        *CatalogHandler
}

func New(logger *logrus.Logger, services *services.Services, validator *validation.SchemaValidator) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(logger, services),
		Auth:           NewAuthHandler(logger, services),
		Recommendation: NewRecommendationHandler(logger, services),
		Feedback:       NewFeedbackHandler(logger, services, validator),
		Catalog:        NewCatalogHandler(logger, services),
	}
}
