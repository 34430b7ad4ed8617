package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/api"
	"github.com/helpdesk-portal/helpdesk-service/internal/handler"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	pathHealth  = "/health"
	pathReady   = "/ready"
	pathSwagger = "/swagger"
)

// Deps — everything the route table needs.
type Deps struct {
	Profiles     service.ProfileServicer
	Profile      *handler.ProfileHandler
	Ticket       *handler.TicketHandler
	Message      *handler.MessageHandler
	Availability *handler.AvailabilityHandler
	Payment      *handler.PaymentHandler
	Knowledge    *handler.KnowledgeHandler
	Audit        *handler.AuditHandler
}

func New(d Deps) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET(pathHealth, handler.Health)
	r.GET(pathReady, handler.Ready)
	r.GET(pathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, pathSwagger+"/") })
	r.GET(pathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = pathSwagger + "/index.html"
			c.Request.RequestURI = pathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	v1 := r.Group("/api/v1", handler.CallerAuth())
	{
		v1.GET("/profile", d.Profile.GetCaller)
		v1.PUT("/profile", d.Profile.SaveCaller)
		v1.GET("/profiles/:principal", d.Profile.GetByPrincipal)
		v1.POST("/access-control/init", d.Profile.InitAccessControl)
		v1.GET("/role", d.Profile.GetRole)
		v1.GET("/role/admin", d.Profile.IsAdmin)

		v1.POST("/tickets", d.Ticket.Create)
		v1.GET("/tickets", d.Ticket.ListMine)
		v1.GET("/tickets/:id", d.Ticket.Get)
		v1.PUT("/tickets/:id/status", d.Ticket.UpdateStatus)
		v1.POST("/tickets/:id/feedback", d.Ticket.AddFeedback)
		v1.GET("/analytics", d.Ticket.Analytics)

		v1.POST("/tickets/:id/messages", d.Message.Send)
		v1.GET("/tickets/:id/messages", d.Message.ListForTicket)
		v1.POST("/tickets/:id/messages/read", d.Message.MarkRead)
		v1.GET("/messages", d.Message.ListMine)
		v1.DELETE("/messages/:id", d.Message.Delete)

		v1.PUT("/availability", d.Availability.SetMine)
		v1.GET("/availability", d.Availability.List)
		v1.GET("/availability/:principal", d.Availability.Get)

		v1.GET("/tickets/:id/payment-toggle", d.Payment.GetToggle)
		v1.PUT("/tickets/:id/payment-toggle", d.Payment.SetToggle)
		v1.GET("/tickets/:id/payment-toggle/status", d.Payment.ToggleStatus)
		v1.GET("/payments/configured", d.Payment.Configured)
		v1.POST("/checkout/sessions", d.Payment.CreateCheckoutSession)
		v1.POST("/checkout/support-session", d.Payment.CreateSupportCheckoutSession)
		v1.GET("/checkout/sessions/:id/status", d.Payment.SessionStatus)
		v1.POST("/payments", d.Payment.CreateRecord)
		v1.GET("/payments/:id", d.Payment.GetRecord)
		v1.PUT("/payments/:id/status", d.Payment.UpdateRecordStatus)

		v1.GET("/kb/articles", d.Knowledge.List)
		v1.GET("/kb/articles/:id", d.Knowledge.Get)
		v1.POST("/kb/articles/:id/views", d.Knowledge.IncrementViews)

		v1.POST("/logins", d.Audit.RecordLogin)

		admin := v1.Group("/admin", handler.RequireAdmin(d.Profiles))
		{
			admin.GET("/tickets", d.Ticket.ListAll)
			admin.PUT("/roles/:principal", d.Profile.AssignRole)
			admin.POST("/availability/offline-all", d.Availability.AllOffline)
			admin.POST("/kb/articles", d.Knowledge.Create)
			admin.PUT("/kb/articles/:id", d.Knowledge.Update)
			admin.DELETE("/kb/articles/:id", d.Knowledge.Delete)
			admin.GET("/logins", d.Audit.List)
			admin.GET("/logins.csv", d.Audit.ExportCSV)
		}
	}

	return r
}
