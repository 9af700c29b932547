package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/db"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/logger"
)

const occupiedSubquery = "(SELECT COUNT(*) FROM stays s WHERE s.room_id = r.id AND s.checkout_date IS NULL) AS occupied"

// RoomRepository handles room database operations
type RoomRepository struct {
	db *db.DB
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(store *db.DB) *RoomRepository {
	return &RoomRepository{db: store}
}

// CreateRoom inserts a room and returns its id
func (r *RoomRepository) CreateRoom(ctx context.Context, room *models.Room) (int64, error) {
	query, args, err := r.db.Builder.Insert("rooms").
		Columns("building", "floor", "room_number", "total_beds", "status").
		Values(room.Building, room.Floor, room.RoomNumber, room.TotalBeds, string(room.Status)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create room query: %w", err)
	}

	var id int64
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		return q.QueryRowContext(ctx, query, args...).Scan(&id)
	})
	if err != nil {
		if translated := translateError(err, apperrors.ErrRoomExists); translated != err {
			return 0, translated
		}
		logger.Error().Err(err).Str("building", room.Building).Str("roomNumber", room.RoomNumber).Msg("Error executing create room query")
		return 0, fmt.Errorf("error creating room: %w", err)
	}

	room.ID = id
	return id, nil
}

// GetRoomByID returns a room with its live occupancy
func (r *RoomRepository) GetRoomByID(ctx context.Context, id int64) (*models.RoomOccupancy, error) {
	var room *models.RoomOccupancy
	err := r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		var err error
		room, err = r.getRoom(ctx, q, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// LockRoom reads a room inside a transaction, locking its row where the store supports it
func (r *RoomRepository) LockRoom(ctx context.Context, tx db.Querier, id int64) (*models.RoomOccupancy, error) {
	return r.getRoom(ctx, tx, id, true)
}

func (r *RoomRepository) getRoom(ctx context.Context, q db.Querier, id int64, lock bool) (*models.RoomOccupancy, error) {
	builder := r.db.Builder.Select("r.id", "r.building", "r.floor", "r.room_number", "r.total_beds", "r.status").
		From("rooms r").
		Where(squirrel.Eq{"r.id": id})
	if lock {
		builder = r.db.ForUpdate(builder)
	} else {
		builder = builder.Column(occupiedSubquery)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get room query: %w", err)
	}

	room := &models.RoomOccupancy{}
	dest := []any{&room.ID, &room.Building, &room.Floor, &room.RoomNumber, &room.TotalBeds, &room.Status}
	if !lock {
		dest = append(dest, &room.Occupied)
	}
	if err := q.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrRoomNotFound
		}
		logger.Error().Err(err).Int64("roomID", id).Msg("Error scanning room row")
		return nil, fmt.Errorf("error getting room by ID: %w", err)
	}

	if lock {
		// The lock covers the room row only; open stays are counted on the same tx
		occupied, err := r.CountOpenStays(ctx, q, id)
		if err != nil {
			return nil, err
		}
		room.Occupied = occupied
	}
	return room, nil
}

// CountOpenStays counts the open stays of a room using q
func (r *RoomRepository) CountOpenStays(ctx context.Context, q db.Querier, roomID int64) (int, error) {
	query, args, err := r.db.Builder.Select("COUNT(*)").
		From("stays").
		Where(squirrel.Eq{"room_id": roomID, "checkout_date": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count stays query: %w", err)
	}

	var count int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting open stays: %w", err)
	}
	return count, nil
}

// ListRooms returns every room ordered by building, floor and number with a live occupied count
func (r *RoomRepository) ListRooms(ctx context.Context) ([]*models.RoomOccupancy, error) {
	query, args, err := r.db.Builder.Select("r.id", "r.building", "r.floor", "r.room_number", "r.total_beds", "r.status").
		Column(occupiedSubquery).
		From("rooms r").
		OrderBy("r.building ASC", "r.floor ASC", "r.room_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list rooms query: %w", err)
	}

	rooms := []*models.RoomOccupancy{}
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			room := &models.RoomOccupancy{}
			if err := rows.Scan(&room.ID, &room.Building, &room.Floor, &room.RoomNumber,
				&room.TotalBeds, &room.Status, &room.Occupied); err != nil {
				return err
			}
			rooms = append(rooms, room)
		}
		return rows.Err()
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error querying rooms")
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	return rooms, nil
}
