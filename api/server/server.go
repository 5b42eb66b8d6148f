package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/MLR-commits/Intranet_BAcademic/controllers"
	"github.com/MLR-commits/Intranet_BAcademic/middlewares"
	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/settings"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, &res.Response{
		Success: false,
		Message: "Too many requests. Try again in" + time.Until(info.ResetTime).String(),
	})
}

var settingsData = settings.GetSettings()

func init() {
	if err := godotenv.Load(); err != nil {
		log.Fatalf("No .env file found")
	}
}

func Init() {
	router := gin.New()
	// Proxies
	router.SetTrustedProxies([]string{"localhost"})
	// Zap looger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	router.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
	}))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if err, ok := recovered.(string); ok {
			c.String(http.StatusInternalServerError, fmt.Sprintf("Server Internal Error: %s", err))
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, res.Response{
			Success: false,
			Message: "Server Internal Error",
		})
	}))
	// CORS
	httpOrigin := "http://" + settingsData.CLIENT_URL
	httpsOrigin := "https://" + settingsData.CLIENT_URL
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{httpOrigin, httpsOrigin},
		AllowMethods:     []string{"GET", "OPTIONS", "PUT", "PATCH", "DELETE", "POST"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		AllowWebSockets:  false,
		MaxAge:           12 * time.Hour,
	}))
	// Secure
	sslUrl := "ssl." + settingsData.CLIENT_URL
	secureConfig := secure.Config{
		SSLHost:              sslUrl,
		STSSeconds:           315360000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		IENoOpen:             true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		SSLProxyHeaders: map[string]string{
			"X-Fowarded-Proto": "https",
		},
	}
	router.Use(secure.New(secureConfig))
	// Rate limit
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: 7,
	})
	mw := ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: ErrorHandler,
		KeyFunc:      keyFunc,
	})
	router.Use(mw)
	loginStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	loginMw := ratelimit.RateLimiter(loginStore, &ratelimit.Options{
		ErrorHandler: ErrorHandler,
		KeyFunc:      keyFunc,
	})
	// Validators
	InitValidators()
	// Routes
	adminRol := middlewares.RolesMiddleware(models.ADMIN)
	staffRol := middlewares.RolesMiddleware(models.ADMIN, models.STAFF)
	studentRol := middlewares.RolesMiddleware(models.STUDENT)
	seatingRol := middlewares.RolesMiddleware(models.ADMIN, models.SEATING_MANAGER)
	coordinatorRol := middlewares.RolesMiddleware(models.CLUB_COORDINATOR)

	auth := router.Group("/api/academic/auth")
	registration := router.Group("/api/academic/registration")
	users := router.Group("/api/academic/users", middlewares.JWTMiddleware())
	notifications := router.Group("/api/academic/notifications", middlewares.JWTMiddleware())
	exams := router.Group("/api/academic/exams", middlewares.JWTMiddleware())
	seating := router.Group("/api/academic/seating", middlewares.JWTMiddleware())
	assignments := router.Group("/api/academic/assignments", middlewares.JWTMiddleware())
	hallTickets := router.Group("/api/academic/hall_tickets", middlewares.JWTMiddleware())
	placements := router.Group("/api/academic/placements", middlewares.JWTMiddleware())
	events := router.Group("/api/academic/events", middlewares.JWTMiddleware())
	results := router.Group("/api/academic/results", middlewares.JWTMiddleware())
	timetables := router.Group("/api/academic/timetables", middlewares.JWTMiddleware())
	career := router.Group("/api/academic/career", middlewares.JWTMiddleware())
	{
		// Init controllers
		userController := new(controllers.UserController)
		registrationController := new(controllers.RegistrationController)
		notificationController := new(controllers.NotificationController)
		examController := new(controllers.ExamController)
		seatingController := new(controllers.SeatingController)
		assignmentController := new(controllers.AssignmentController)
		hallTicketController := new(controllers.HallTicketController)
		placementController := new(controllers.PlacementController)
		eventController := new(controllers.EventController)
		resultController := new(controllers.ResultController)
		timetableController := new(controllers.TimetableController)
		careerController := new(controllers.CareerController)
		// Auth
		auth.POST("/login", loginMw, userController.Login)
		// Registration
		registration.POST("/submit", registrationController.Submit)
		registration.GET("/status", registrationController.CheckStatus)
		registration.GET("/get_requests", middlewares.JWTMiddleware(), adminRol, registrationController.GetRequests)
		registration.GET("/get_stats", middlewares.JWTMiddleware(), adminRol, registrationController.GetStats)
		registration.POST("/approve/:idRequest", middlewares.JWTMiddleware(), adminRol, registrationController.Approve)
		registration.POST("/reject/:idRequest", middlewares.JWTMiddleware(), adminRol, registrationController.Reject)
		// Users
		users.GET("/get_staff", adminRol, userController.GetStaff)
		users.POST("/new_staff", adminRol, userController.CreateStaff)
		users.DELETE("/delete_staff/:idStaff", adminRol, userController.DeleteStaff)
		// Notifications
		notifications.GET("/get_notifications", notificationController.GetNotifications)
		notifications.PATCH("/mark_read/:idNotification", notificationController.MarkRead)
		notifications.PATCH("/mark_all_read", notificationController.MarkAllRead)
		notifications.DELETE("/delete/:idNotification", notificationController.DeleteNotification)
		// Exams
		exams.GET("/get_exams", staffRol, examController.GetExams)
		exams.GET("/get_exam/:idExam", examController.GetExam)
		exams.GET("/get_student_exams", studentRol, examController.GetStudentExams)
		exams.POST("/new_exam", staffRol, examController.NewExam)
		exams.POST("/generate_schedule", staffRol, examController.GenerateSchedule)
		exams.POST("/release_schedule", adminRol, examController.ReleaseSchedule)
		// Seating
		seating.GET("/get_seating/:idExam", seatingController.GetSeating)
		seating.GET("/get_rooms", seatingRol, seatingController.GetRooms)
		seating.GET("/get_available_rooms", seatingRol, seatingController.GetAvailableRooms)
		seating.GET("/export/:idExam", seatingRol, seatingController.ExportSeating)
		seating.POST("/new_room", seatingRol, seatingController.NewRoom)
		seating.PUT("/update_room/:idRoom", seatingRol, seatingController.UpdateRoom)
		seating.POST("/allocate", seatingRol, seatingController.AllocateSeating)
		// Assignments
		assignments.GET("/get_schedule", assignmentController.GetSchedule)
		assignments.POST(
			"/new_assignment",
			middlewares.RolesMiddleware(models.ADMIN, models.SEATING_MANAGER),
			assignmentController.NewAssignment,
		)
		assignments.PATCH("/update_status/:idAssignment", staffRol, assignmentController.UpdateStatus)
		// Hall tickets
		hallTickets.GET("/get_my_ticket/:idExam", studentRol, hallTicketController.GetMyHallTicket)
		hallTickets.POST("/generate", adminRol, hallTicketController.GenerateHallTicket)
		hallTickets.POST("/generate_bulk", adminRol, hallTicketController.GenerateBulk)
		hallTickets.POST("/authorize/:idExam", adminRol, hallTicketController.Authorize)
		// Placements
		placements.GET("/get_placements", placementController.GetPlacements)
		placements.GET("/get_placement/:idPlacement", placementController.GetPlacement)
		placements.GET("/get_stats", placementController.GetStats)
		placements.GET("/search", placementController.Search)
		placements.POST("/new_placement", adminRol, placementController.NewPlacement)
		placements.PUT("/update_placement/:idPlacement", adminRol, placementController.UpdatePlacement)
		placements.DELETE("/delete_placement/:idPlacement", adminRol, placementController.DeletePlacement)
		placements.POST("/apply/:idPlacement", studentRol, placementController.Apply)
		placements.POST("/select_students/:idPlacement", adminRol, placementController.SelectStudents)
		// Events
		events.GET("/get_events", eventController.GetEvents)
		events.POST("/propose", coordinatorRol, eventController.ProposeEvent)
		events.PATCH("/update_status/:idEvent", adminRol, eventController.UpdateStatus)
		// Results
		results.GET("/get_batches", staffRol, resultController.GetBatches)
		results.GET("/get_batch/:batchID", staffRol, resultController.GetBatchDetails)
		results.GET("/get_my_results", studentRol, resultController.GetMyResults)
		results.GET("/download_template", staffRol, resultController.DownloadTemplate)
		results.POST("/upload_batch", staffRol, resultController.UploadBatch)
		results.PATCH("/toggle_publish/:batchID", staffRol, resultController.TogglePublish)
		results.DELETE("/delete_batch/:batchID", adminRol, resultController.DeleteBatch)
		// Timetables
		timetables.GET("/get_timetables", timetableController.GetTimetables)
		timetables.GET("/get_active", timetableController.GetActiveTimetable)
		timetables.POST("/new_timetable", staffRol, timetableController.NewTimetable)
		timetables.PUT("/update_timetable/:idTimetable", staffRol, timetableController.UpdateTimetable)
		timetables.DELETE("/delete_timetable/:idTimetable", adminRol, timetableController.DeleteTimetable)
		// Career
		career.GET("/get_my_requests", studentRol, careerController.GetMyRequests)
		career.GET("/get_pending_requests", staffRol, careerController.GetPendingRequests)
		career.POST("/submit_step", studentRol, careerController.SubmitStep)
		career.POST("/attach_proof/:idApproval", studentRol, careerController.AttachProof)
		career.POST("/decide/:idApproval", staffRol, careerController.Decide)
	}
	// No route
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(404, res.Response{
			Success: false,
			Message: "Not found",
		})
	})
	// Init server
	if err := router.Run(); err != nil {
		log.Fatalf("Error init server")
	}
}
