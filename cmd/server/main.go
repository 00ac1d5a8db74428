package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avelik/schedesk/internal/bus"
	"github.com/avelik/schedesk/internal/config"
	"github.com/avelik/schedesk/internal/database"
	"github.com/avelik/schedesk/internal/handler"
	appmw "github.com/avelik/schedesk/internal/middleware"
	"github.com/avelik/schedesk/internal/model"
	"github.com/avelik/schedesk/internal/queue"
	"github.com/avelik/schedesk/internal/report"
	"github.com/avelik/schedesk/internal/repository"
	"github.com/avelik/schedesk/internal/router"
	"github.com/avelik/schedesk/internal/table"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and lookup
	// caching without affecting the rest of the service.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and lookup cache disabled")
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	customers := repository.NewCustomerRepo(db)
	appointments := repository.NewAppointmentRepo(db)
	lookups := repository.NewLookupRepo(db)
	reports := report.NewRepo(db)

	// Domain wiring: validator, event bus and the two record tables.
	validator := model.NewValidator(cfg.BusinessTZ)
	b := bus.New()

	customerTable := table.New(table.Config[*model.Customer]{
		Repo:      customers,
		Validator: validator,
		New:       func() *model.Customer { return &model.Customer{} },
		DeleteDependencies: func(ctx context.Context, cu *model.Customer) error {
			_, err := appointments.DeleteByCustomer(ctx, cu.ID)
			return err
		},
		Bus:          b,
		DeletedEvent: bus.CustomerDeleted,
	})

	appointmentTable := table.New(table.Config[*model.Appointment]{
		Repo:      appointments,
		Validator: validator,
		New: func() *model.Appointment {
			now := time.Now().UTC().Truncate(time.Minute)
			return &model.Appointment{Start: now, End: now}
		},
		CanPersist: func(ctx context.Context, a *model.Appointment) error {
			n, err := appointments.CountOverlapping(ctx, a)
			if err != nil {
				return err
			}
			if n > 0 {
				return repository.ErrOverlappingAppointment
			}
			return nil
		},
		Bus: b,
	})
	// Deleting a customer cascades; drop the orphaned rows from view.
	appointmentTable.SubscribeReload(bus.CustomerDeleted)

	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := customerTable.Load(ctx); err != nil {
			log.Fatalf("load customers: %v", err)
		}
		if err := appointmentTable.Load(ctx); err != nil {
			log.Fatalf("load appointments: %v", err)
		}
	}

	// Background consumer appends appointment.scheduled events to
	// logs/appointments.log and reconnects on broker failure.
	go func() {
		if err := queue.StartAppointmentConsumer(cfg.QueueURL); err != nil {
			log.Printf("appointment consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	// A panicking handler must take down the request, not the process.
	e.Use(echomw.Recover())
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret,
		appmw.NewLoginLimiter(config.LoadRateLimitConfig(), rdb))
	router.RegisterSchedule(e, cfg.JWTSecret,
		appmw.NewLookupCache(config.LoadCacheConfig(), rdb),
		handler.NewCustomerHandler(customerTable),
		handler.NewAppointmentHandler(appointmentTable, appointments, cfg.QueueURL),
		handler.NewLookupHandler(lookups),
		handler.NewReportHandler(reports))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, business tz=%s)", addr, cfg.Env, cfg.BusinessTZ)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
