package router

import (
	"time"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/handler"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth  *handler.AuthHandler
	User  *handler.UserHandler
	Event *handler.EventHandler
	Admin *handler.AdminHandler
}

func SetupRouter(h Handlers, jwtSecret []byte) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/getSecurityCode", h.Auth.GetSecurityCode)
		auth.POST("/resetPassword", h.Auth.ResetPassword)
	}

	// Public reads.
	r.GET("/event/:id", h.Event.GetEvent)
	r.GET("/events/upcoming", h.Event.ListUpcoming)
	r.GET("/club/:id/events", h.Event.ListClubEvents)

	authed := r.Group("/")
	authed.Use(middleware.JWTAuth(jwtSecret))
	{
		user := authed.Group("/user")
		{
			user.POST("/register", h.User.RegisterForEvent)
			user.POST("/sendTeamInvitaion", h.User.SendInvitation)
			user.POST("/acceptTeamInvite", h.User.AcceptInvitation)
			user.POST("/rejectTeamInvite", h.User.RejectInvitation)
			user.POST("/feedback", h.User.SubmitFeedback)
		}

		authed.GET("/club/:id", h.Admin.GetClub)

		admin := authed.Group("/admin")
		admin.Use(middleware.ClubAdminOnly())
		{
			admin.POST("/event", h.Event.CreateEvent)
			admin.POST("/event/:id/poster", h.Event.UploadPoster)
			admin.POST("/attendance", h.Admin.MarkAttendance)
			admin.POST("/winners", h.Admin.AddWinners)
			admin.GET("/events-history", h.Admin.EventsHistory)
		}

		global := authed.Group("/admin")
		global.Use(middleware.GlobalAdminOnly())
		{
			global.POST("/club", h.Admin.CreateClub)
			global.POST("/clubAdmin", h.Admin.AddClubAdmin)
		}
	}

	return r
}
