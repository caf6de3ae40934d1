package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/scope"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/scope/check").
			To(handler.CheckScope).
			Doc("Check whether a specification is within the legal-risk domain").
			Metadata(restfulspec.KeyOpenAPITags, []string{"scope"}).
			Reads(ScopeCheckRequest{}).
			Writes(ScopeCheckResponse{}).
			Returns(200, "OK", ScopeCheckResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/scope/categories").
			To(handler.Categories).
			Doc("List in-scope categories and their keywords").
			Metadata(restfulspec.KeyOpenAPITags, []string{"scope"}).
			Writes([]scope.Category{}).
			Returns(200, "OK", []scope.Category{}))

	ws.
		Route(ws.POST("/assess").
			To(handler.Assess).
			Doc("Assess the legal risk of a specification").
			Metadata(restfulspec.KeyOpenAPITags, []string{"assess"}).
			Reads(AssessRequest{}).
			Writes(AssessResponse{}).
			Returns(200, "OK", AssessResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(502, "Assessment Failed", AssessResponse{}))

	ws.
		Route(ws.GET("/history/{session_id}").
			To(handler.History).
			Doc("List assessment history for a session, newest first").
			Metadata(restfulspec.KeyOpenAPITags, []string{"history"}).
			Param(ws.PathParameter("session_id", "Session identifier").DataType("string")).
			Writes(HistoryResponse{}).
			Returns(200, "OK", HistoryResponse{}).
			Returns(503, "History Disabled", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.DELETE("/history/{session_id}").
			To(handler.ClearHistory).
			Doc("Clear assessment history for a session").
			Metadata(restfulspec.KeyOpenAPITags, []string{"history"}).
			Param(ws.PathParameter("session_id", "Session identifier").DataType("string")).
			Returns(204, "No Content", nil).
			Returns(503, "History Disabled", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
