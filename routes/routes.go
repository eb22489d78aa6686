package routes

import (
	"net/http"

	"tripdesk/agents"
	"tripdesk/auth"
	"tripdesk/booking"
	"tripdesk/inquiries"
	"tripdesk/livefeed"
	"tripdesk/middleware"
	"tripdesk/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/passports/*filepath", http.Dir("static/passports"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", middleware.Authenticate(booking.CreateBooking))
	router.GET("/api/bookings", middleware.Authenticate(booking.GetBookings))
	router.GET("/api/bookings/:bookingid", middleware.Authenticate(booking.GetBooking))
	router.PUT("/api/bookings/:bookingid", middleware.Authenticate(booking.UpdateBooking))
	router.DELETE("/api/bookings/:bookingid", middleware.Authenticate(booking.DeleteBooking))

	router.POST("/api/bookings/:bookingid/approve", middleware.RequireRole("admin", booking.ApproveBooking))
	router.POST("/api/bookings/:bookingid/reject", middleware.RequireRole("admin", booking.RejectBooking))
	router.POST("/api/bookings/:bookingid/assign", middleware.RequireRole("admin", booking.AssignAgent))

	router.GET("/api/bookings/:bookingid/pdf", middleware.Authenticate(booking.DownloadBookingPDF))
	router.POST("/api/bookings/:bookingid/passports", middleware.Authenticate(booking.UploadPassportScan))
}

func AddAgentRoutes(router *httprouter.Router) {
	router.GET("/api/agents", middleware.RequireRole("admin", agents.GetAgents))
	router.GET("/api/agents/:agentid", middleware.Authenticate(agents.GetAgent))
	router.PUT("/api/agents/:agentid", middleware.Authenticate(agents.UpdateAgent))
	router.DELETE("/api/agents/:agentid", middleware.RequireRole("admin", agents.DeactivateAgent))
}

func AddInquiryRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, hub *livefeed.Hub) {
	// public intake, rate limited
	router.POST("/api/inquiries", rl.Limit(inquiries.CreateInquiry(hub)))

	router.GET("/api/inquiries", middleware.Authenticate(inquiries.GetInquiries))
	router.GET("/api/inquiries/:inquiryid", middleware.Authenticate(inquiries.GetInquiry))
	router.PATCH("/api/inquiries/:inquiryid/status", middleware.Authenticate(inquiries.UpdateInquiryStatus))
	router.POST("/api/inquiries/:inquiryid/assign", middleware.RequireRole("admin", inquiries.AssignInquiry))
	router.POST("/api/inquiries/:inquiryid/convert", middleware.Authenticate(inquiries.ConvertInquiry))
	router.DELETE("/api/inquiries/:inquiryid", middleware.RequireRole("admin", inquiries.DeleteInquiry))

	router.GET("/ws/inquiries", livefeed.ServeWS(hub))
}
