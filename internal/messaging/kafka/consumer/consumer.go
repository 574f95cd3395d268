package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/auth"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/domain"
	"github.com/gmi-gj-dev-krushna/employcentric/internal/events"
)

// ConsumeEmployeeLifecycle provisions a login account for every new
// employee. The account starts with an unusable random password; the
// employee gets access through the password reset flow.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	users auth.Repository,
	logger *zap.Logger,
) error {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started", zap.String("topic", events.EmployeeCreatedTopic))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("employee lifecycle consumer stopped")
				return nil
			}
			return err
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// Malformed payloads never become valid; commit past them.
			log.Error("decode employee event failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			if err := reader.CommitMessages(ctx, msg); err != nil {
				return err
			}
			continue
		}

		if err := provisionAccount(ctx, users, event); err != nil {
			if isUniqueViolation(err) {
				// Redelivery or a manually created account. Either way
				// the login exists, so the work is done.
				log.Warn("account already provisioned",
					zap.String("employee_id", event.EmployeeID),
					zap.String("email", event.Email),
				)
				if err := reader.CommitMessages(ctx, msg); err != nil {
					return err
				}
				continue
			}

			// Leave the offset uncommitted so the event is retried.
			log.Error("provision account failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		log.Info("account provisioned",
			zap.String("employee_id", event.EmployeeID),
			zap.String("company_id", event.CompanyID),
		)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

func provisionAccount(ctx context.Context, users auth.Repository, event events.EmployeeCreatedEvent) error {
	employeeID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return err
	}
	companyID, err := uuid.Parse(event.CompanyID)
	if err != nil {
		return err
	}

	// Nobody knows this password. It only exists to satisfy the
	// not-null constraint until the employee resets it.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return users.Create(ctx, &auth.User{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Name:       event.FullName,
		Email:      event.Email,
		Password:   string(hash),
		Role:       domain.RoleEmployee,
		IsActive:   true,
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
