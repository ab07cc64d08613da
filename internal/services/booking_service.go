package services

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/infra"
	"travelplanner/internal/models/db_models"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/repositories"
	"travelplanner/pkg/utils"
)

type BookingServiceInterface interface {
	// Create reserves slots on the destination ledger and stores the booking
	// in one transaction.
	Create(ctx context.Context, actor Actor, destinationID uuid.UUID, slots int) (*response_models.BookingResponse, error)
	// Cancel deletes the booking and returns its slots to the ledger in one
	// transaction. Only the owner may cancel.
	Cancel(ctx context.Context, actor Actor, bookingID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]response_models.BookingResponse, error)
	ListForDestination(ctx context.Context, destinationID uuid.UUID) ([]response_models.BookingResponse, error)
}

type BookingService struct {
	tx          infra.Transactor
	ledger      repositories.DestinationLedger
	bookingRepo repositories.BookingRepository
	destRepo    repositories.DestinationRepository
	logger      *zap.Logger
}

func NewBookingService(
	tx infra.Transactor,
	ledger repositories.DestinationLedger,
	bookingRepo repositories.BookingRepository,
	destRepo repositories.DestinationRepository,
	logger *zap.Logger,
) BookingServiceInterface {
	return &BookingService{
		tx:          tx,
		ledger:      ledger,
		bookingRepo: bookingRepo,
		destRepo:    destRepo,
		logger:      logger.Named("booking"),
	}
}

func (b *BookingService) Create(ctx context.Context, actor Actor, destinationID uuid.UUID, slots int) (*response_models.BookingResponse, error) {
	ctx, span := startSpan(ctx, "booking.create",
		attribute.String("destination_id", destinationID.String()),
		attribute.Int("slots", slots))
	defer span.End()

	if !actor.valid() {
		return nil, utils.ErrUnauthorized
	}
	if slots <= 0 {
		return nil, utils.ErrInvalidInput
	}

	booking := &db_models.Booking{
		UserID:        actor.ID,
		DestinationID: destinationID,
		SlotsReserved: slots,
	}

	err := b.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := b.ledger.WithTx(tx).Reserve(ctx, destinationID, slots); err != nil {
			return err
		}
		return b.bookingRepo.WithTx(tx).InsertTx(ctx, booking)
	})
	if err != nil {
		return nil, finishSpan(span, b.logger, "create booking", err,
			zap.String("destination_id", destinationID.String()),
			zap.String("user_id", actor.ID.String()))
	}

	b.logger.Info("booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("destination_id", destinationID.String()),
		zap.Int("slots", slots))

	out := toBookingResponse(booking)
	return &out, nil
}

func (b *BookingService) Cancel(ctx context.Context, actor Actor, bookingID uuid.UUID) error {
	ctx, span := startSpan(ctx, "booking.cancel", attribute.String("booking_id", bookingID.String()))
	defer span.End()

	booking, err := b.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return finishSpan(span, b.logger, "find booking", err, zap.String("booking_id", bookingID.String()))
	}
	if booking == nil {
		return finishSpan(span, b.logger, "cancel booking", utils.ErrBookingNotFound)
	}
	if booking.UserID != actor.ID {
		return finishSpan(span, b.logger, "cancel booking", utils.ErrForbidden)
	}

	// The row is deleted before the release so a concurrent cancel of the
	// same booking finds nothing to delete and never releases twice.
	err = b.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		deleted, err := b.bookingRepo.WithTx(tx).DeleteByID(ctx, booking.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return utils.ErrBookingNotFound
		}
		return b.ledger.WithTx(tx).Release(ctx, booking.DestinationID, booking.SlotsReserved)
	})
	if err != nil {
		return finishSpan(span, b.logger, "cancel booking", err, zap.String("booking_id", bookingID.String()))
	}

	b.logger.Info("booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("destination_id", booking.DestinationID.String()),
		zap.Int("slots", booking.SlotsReserved))
	return nil
}

func (b *BookingService) ListForUser(ctx context.Context, userID uuid.UUID) ([]response_models.BookingResponse, error) {
	bookings, err := b.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, databaseError(b.logger, "list bookings for user", err, zap.String("user_id", userID.String()))
	}
	return toBookingResponses(bookings), nil
}

func (b *BookingService) ListForDestination(ctx context.Context, destinationID uuid.UUID) ([]response_models.BookingResponse, error) {
	exists, err := b.destRepo.Exists(ctx, destinationID)
	if err != nil {
		return nil, databaseError(b.logger, "find destination", err, zap.String("destination_id", destinationID.String()))
	}
	if !exists {
		return nil, utils.ErrDestinationNotFound
	}

	bookings, err := b.bookingRepo.ListByDestination(ctx, destinationID)
	if err != nil {
		return nil, databaseError(b.logger, "list bookings for destination", err, zap.String("destination_id", destinationID.String()))
	}
	return toBookingResponses(bookings), nil
}

func toBookingResponse(booking *db_models.Booking) response_models.BookingResponse {
	out := response_models.BookingResponse{
		ID:            booking.ID.String(),
		UserID:        booking.UserID.String(),
		DestinationID: booking.DestinationID.String(),
		SlotsReserved: booking.SlotsReserved,
		CreatedAt:     utils.FormatUnixRFC3339(booking.CreatedAt),
	}
	if booking.Destination != nil {
		out.DestinationName = booking.Destination.Name
	}
	return out
}

func toBookingResponses(bookings []db_models.Booking) []response_models.BookingResponse {
	out := make([]response_models.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}
