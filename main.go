package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"winDayAPI/handlers"
	"winDayAPI/internal/bus"
	"winDayAPI/internal/engine"
	"winDayAPI/middleware"
	"winDayAPI/services"

	_ "net/http/pprof"
)

var (
	dbPool              *pgxpool.Pool
	changeBus           *bus.Bus
	userService         *services.UserService
	winService          *services.WinService
	statusService       *services.StatusService
	calendarService     *services.CalendarService
	dashboardService    *services.DashboardService
	routineService      *services.RoutineService
	taskService         *services.TaskService
	sessionService      *services.SessionService
	goalService         *services.GoalService
	subscriptionService *services.SubscriptionService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to Postgres")

	windowDays := engine.DefaultStreakWindowDays
	if v := os.Getenv("WIN_STREAK_WINDOW_DAYS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			log.Fatalf("Invalid WIN_STREAK_WINDOW_DAYS: %q", v)
		}
		windowDays = parsed
	}

	changeBus = bus.New()
	userService = services.NewUserService(dbPool)
	winService = services.NewWinService(dbPool, changeBus, windowDays)
	statusService = services.NewStatusService(dbPool)
	calendarService = services.NewCalendarService(dbPool)
	dashboardService = services.NewDashboardService(dbPool, winService)
	routineService = services.NewRoutineService(dbPool, changeBus)
	taskService = services.NewTaskService(dbPool, changeBus)
	sessionService = services.NewSessionService(dbPool, changeBus)
	goalService = services.NewGoalService(dbPool)
	subscriptionService = services.NewSubscriptionService(dbPool)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	userHandler := handlers.NewUserHandler(userService)
	winHandler := handlers.NewWinHandler(winService, statusService, calendarService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	routineHandler := handlers.NewRoutineHandler(routineService)
	taskHandler := handlers.NewTaskHandler(taskService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	goalHandler := handlers.NewGoalHandler(goalService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	webhookHandler := handlers.NewWebhookHandler(userService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "winDay-api"}`))
	}).Methods("GET")

	r.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/delete-account", userHandler.DeleteAccount).Methods("DELETE")

	protected.HandleFunc("/user/win", winHandler.MarkWon).Methods("POST")
	protected.HandleFunc("/user/day", winHandler.GetDay).Methods("GET")
	protected.HandleFunc("/user/streak", winHandler.GetStreak).Methods("GET")
	protected.HandleFunc("/user/win-history", winHandler.GetHistory).Methods("GET")
	protected.HandleFunc("/user/calendar", winHandler.GetCalendar).Methods("GET")

	protected.HandleFunc("/user/dashboard", dashboardHandler.GetMastery).Methods("GET")

	protected.HandleFunc("/user/routines", routineHandler.GetRoutines).Methods("GET")
	protected.HandleFunc("/user/routines", routineHandler.CreateRoutine).Methods("POST")
	protected.HandleFunc("/user/routines", routineHandler.DeleteRoutine).Methods("DELETE")
	protected.HandleFunc("/user/routines/complete", routineHandler.CompleteRoutine).Methods("POST")

	protected.HandleFunc("/user/tasks", taskHandler.GetTasks).Methods("GET")
	protected.HandleFunc("/user/tasks", taskHandler.CreateTask).Methods("POST")
	protected.HandleFunc("/user/tasks", taskHandler.SetTaskDone).Methods("PUT")
	protected.HandleFunc("/user/tasks", taskHandler.DeleteTask).Methods("DELETE")

	protected.HandleFunc("/user/sessions", sessionHandler.GetSessions).Methods("GET")
	protected.HandleFunc("/user/sessions", sessionHandler.LogSession).Methods("POST")

	protected.HandleFunc("/user/goals", goalHandler.GetGoals).Methods("GET")
	protected.HandleFunc("/user/goals", goalHandler.CreateGoal).Methods("POST")
	protected.HandleFunc("/user/goals", goalHandler.DeleteGoal).Methods("DELETE")

	protected.HandleFunc("/user/subscription", subscriptionHandler.GetStatus).Methods("GET")

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
