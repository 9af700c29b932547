package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/app/repositories"
	"github.com/yigit/dormitory/internal/db"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/helpers"
)

// OccupancyService defines the room and stay lifecycle operations
type OccupancyService interface {
	CreateRoom(ctx context.Context, room *models.Room) (int64, error)
	GetRoom(ctx context.Context, id int64) (*models.RoomOccupancy, error)
	ListRooms(ctx context.Context) ([]*models.RoomOccupancy, error)
	CheckIn(ctx context.Context, studentID, roomID int64, date string) (int64, error)
	CheckOut(ctx context.Context, stayID int64, date, reason string) error
	GetStay(ctx context.Context, id int64) (*models.Stay, error)
	ListOpenStays(ctx context.Context) ([]*models.OpenStay, error)
}

type occupancyServiceImpl struct {
	store       *db.DB
	studentRepo *repositories.StudentRepository
	roomRepo    *repositories.RoomRepository
	stayRepo    *repositories.StayRepository
	logger      zerolog.Logger
}

// NewOccupancyService creates a new occupancy service instance
func NewOccupancyService(store *db.DB, repos *repositories.Repositories, logger zerolog.Logger) OccupancyService {
	return &occupancyServiceImpl{
		store:       store,
		studentRepo: repos.StudentRepository,
		roomRepo:    repos.RoomRepository,
		stayRepo:    repos.StayRepository,
		logger:      logger,
	}
}

func (s *occupancyServiceImpl) validateRoom(room *models.Room) error {
	if room == nil {
		return apperrors.NewValidationError("room", "room is required")
	}
	room.Building = strings.TrimSpace(room.Building)
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.Building == "" {
		return apperrors.NewValidationError("building", "building cannot be empty")
	}
	if room.RoomNumber == "" {
		return apperrors.NewValidationError("roomNumber", "room number cannot be empty")
	}
	if room.TotalBeds <= 0 {
		return apperrors.NewValidationError("totalBeds", "total beds must be a positive number")
	}
	if room.Status == "" {
		room.Status = models.RoomStatusFree
	}
	if !room.Status.Valid() {
		return apperrors.NewValidationError("status", fmt.Sprintf("unknown room status %q", room.Status))
	}
	return nil
}

// CreateRoom registers a room; (building, room number) must be unique
func (s *occupancyServiceImpl) CreateRoom(ctx context.Context, room *models.Room) (int64, error) {
	if err := s.validateRoom(room); err != nil {
		return 0, err
	}

	id, err := s.roomRepo.CreateRoom(ctx, room)
	if err != nil {
		return 0, fmt.Errorf("create room: %w", err)
	}

	s.logger.Info().Int64("roomID", id).Str("building", room.Building).Str("roomNumber", room.RoomNumber).Msg("Room created")
	return id, nil
}

// GetRoom returns one room with its live occupancy
func (s *occupancyServiceImpl) GetRoom(ctx context.Context, id int64) (*models.RoomOccupancy, error) {
	if id <= 0 {
		return nil, apperrors.ErrRoomNotFound
	}
	return s.roomRepo.GetRoomByID(ctx, id)
}

// ListRooms returns rooms by building, floor and number; occupied is counted on every call
func (s *occupancyServiceImpl) ListRooms(ctx context.Context) ([]*models.RoomOccupancy, error) {
	return s.roomRepo.ListRooms(ctx)
}

// resolveDate applies the today default and checks the format
func resolveDate(field, date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return helpers.Today(), nil
	}
	if !helpers.IsValidDate(date) {
		return "", apperrors.NewValidationError(field, field+" must be YYYY-MM-DD")
	}
	return date, nil
}

// CheckIn opens a stay. The student and room must exist, the student must not
// hold an open stay and the room must have a free bed. Room status is advisory
// and does not block a check-in.
func (s *occupancyServiceImpl) CheckIn(ctx context.Context, studentID, roomID int64, date string) (int64, error) {
	if studentID <= 0 {
		return 0, apperrors.NewValidationError("studentId", "student id is required")
	}
	if roomID <= 0 {
		return 0, apperrors.NewValidationError("roomId", "room id is required")
	}
	date, err := resolveDate("checkinDate", date)
	if err != nil {
		return 0, err
	}

	var stayID int64
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx db.Querier) error {
		exists, err := s.studentRepo.StudentExists(ctx, tx, studentID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrStudentNotFound
		}

		room, err := s.roomRepo.LockRoom(ctx, tx, roomID)
		if err != nil {
			return err
		}

		open, err := s.stayRepo.HasOpenStay(ctx, tx, studentID)
		if err != nil {
			return err
		}
		if open {
			return apperrors.ErrAlreadyCheckedIn
		}

		if room.Occupied >= room.TotalBeds {
			return apperrors.ErrRoomFull
		}
		if room.Status == models.RoomStatusRepair {
			s.logger.Warn().Int64("roomID", roomID).Msg("Checking in to a room marked as under repair")
		}

		stayID, err = s.stayRepo.InsertStay(ctx, tx, &models.Stay{
			StudentID:   studentID,
			RoomID:      roomID,
			CheckinDate: date,
		})
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("check in: %w", err)
	}

	s.logger.Info().Int64("stayID", stayID).Int64("studentID", studentID).Int64("roomID", roomID).Str("date", date).Msg("Student checked in")
	return stayID, nil
}

// CheckOut closes a stay. Repeating it overwrites the checkout date and reason.
func (s *occupancyServiceImpl) CheckOut(ctx context.Context, stayID int64, date, reason string) error {
	if stayID <= 0 {
		return apperrors.ErrStayNotFound
	}
	date, err := resolveDate("checkoutDate", date)
	if err != nil {
		return err
	}

	if err := s.stayRepo.CloseStay(ctx, stayID, date, strings.TrimSpace(reason)); err != nil {
		return fmt.Errorf("check out: %w", err)
	}

	s.logger.Info().Int64("stayID", stayID).Str("date", date).Msg("Student checked out")
	return nil
}

// GetStay returns one stay, open or closed
func (s *occupancyServiceImpl) GetStay(ctx context.Context, id int64) (*models.Stay, error) {
	if id <= 0 {
		return nil, apperrors.ErrStayNotFound
	}
	return s.stayRepo.GetStayByID(ctx, id)
}

// ListOpenStays returns open stays newest check-in first
func (s *occupancyServiceImpl) ListOpenStays(ctx context.Context) ([]*models.OpenStay, error) {
	return s.stayRepo.ListOpenStays(ctx)
}
