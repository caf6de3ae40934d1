package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/api/middleware"
)

// NewContainer registers the filters, the API routes and the OpenAPI
// document at /api/v1/openapi.json.
func NewContainer(handler *Handler) *restful.Container {
	container := restful.NewContainer()

	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)

	RegisterRoutes(container, handler)

	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/api/v1/openapi.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}

	container.Add(restfulspec.NewOpenAPIService(config))

	return container
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Legal Advisor API",
			Description: "Legal-risk assessment of IT product specifications",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "scope", Description: "Scope filter"}},
		{TagProps: spec.TagProps{Name: "assess", Description: "Legal-risk assessment"}},
		{TagProps: spec.TagProps{Name: "history", Description: "Session history"}},
	}
}
