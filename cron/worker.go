package cron

import (
	"context"
	"encoding/json"

	"fieldbook/config"
	bookingRepo "fieldbook/database/repository/booking"
	fieldRepo "fieldbook/database/repository/field"
	"fieldbook/services/schedule"
	"fieldbook/services/tasks"
	"fieldbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitAvailabilityWorker runs the async worker that keeps the
// denormalized field.isAvailable badge in step with bookings. The badge
// is cosmetic and eventually consistent; the transactional overlap
// check remains the only arbiter of conflicts.
func InitAvailabilityWorker(fields fieldRepo.FieldRepository, bookings bookingRepo.BookingRepository, clock schedule.Clock, defaults schedule.OperatingHours) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeFieldRefresh, handleFieldRefresh(fields, bookings, clock, defaults))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting availability worker")
		if err := srv.Run(mux); err != nil {
			logger.Fatal("availability worker failed to start", zap.Error(err))
		}
	}()
}

func handleFieldRefresh(fields fieldRepo.FieldRepository, bookings bookingRepo.BookingRepository, clock schedule.Clock, defaults schedule.OperatingHours) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.FieldRefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid field refresh payload", zap.Error(err))
			return err
		}

		field, err := fields.GetByID(ctx, p.FieldID)
		if err != nil {
			logger.Error("field refresh: lookup failed", zap.String("fieldID", p.FieldID), zap.Error(err))
			return err
		}
		snapshot, err := bookings.GetActiveByFieldAndDate(ctx, p.FieldID, p.Date)
		if err != nil {
			logger.Error("field refresh: snapshot failed", zap.String("fieldID", p.FieldID), zap.Error(err))
			return err
		}

		hours := defaults
		if field.CloseHour > field.OpenHour && field.CloseHour > 0 {
			hours = schedule.OperatingHours{Open: field.OpenHour, Close: field.CloseHour}
		}
		grid := schedule.BuildGrid(hours)
		slots := schedule.Classify(grid, p.Date, clock.Now(), "", snapshot)

		available := false
		for _, s := range slots {
			if s.Selectable() {
				available = true
				break
			}
		}

		if err := fields.SetAvailability(ctx, p.FieldID, available); err != nil {
			logger.Error("field refresh: update failed", zap.String("fieldID", p.FieldID), zap.Error(err))
			return err
		}
		logger.Debug("field availability refreshed",
			zap.String("fieldID", p.FieldID),
			zap.String("date", p.Date),
			zap.Bool("available", available))
		return nil
	}
}
