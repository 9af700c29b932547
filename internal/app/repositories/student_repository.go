package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/db"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
	"github.com/yigit/dormitory/internal/pkg/helpers"
	"github.com/yigit/dormitory/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "full_name", "birth_date", "passport_data", "phone", "email",
	"study_group", "faculty", "study_mode", "has_benefits", "notes",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *db.DB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(store *db.DB) *StudentRepository {
	return &StudentRepository{db: store}
}

// CreateStudent inserts a student and returns its id
func (r *StudentRepository) CreateStudent(ctx context.Context, s *models.Student) (int64, error) {
	query, args, err := r.db.Builder.Insert("students").
		Columns(studentColumns[1:]...).
		Values(
			s.FullName,
			helpers.NullableString(s.BirthDate),
			helpers.NullableString(s.PassportData),
			helpers.NullableString(s.Phone),
			helpers.NullableString(s.Email),
			helpers.NullableString(s.StudyGroup),
			helpers.NullableString(s.Faculty),
			helpers.NullableString(s.StudyMode),
			helpers.BoolToInt(s.HasBenefits),
			helpers.NullableString(s.Notes),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		return q.QueryRowContext(ctx, query, args...).Scan(&id)
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", translateError(err, nil))
	}

	s.ID = id
	return id, nil
}

// GetStudentByID retrieves a student by ID
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.db.Builder.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var student *models.Student
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		var scanErr error
		student, scanErr = scanStudent(q.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return student, nil
}

// ListStudents returns students ordered by full name.
// A non-empty search matches a case-insensitive substring of the name or study group.
func (r *StudentRepository) ListStudents(ctx context.Context, search string) ([]*models.Student, error) {
	builder := r.db.Builder.Select(studentColumns...).
		From("students").
		OrderBy("full_name ASC", "id ASC")

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.Like{"LOWER(full_name)": pattern},
			squirrel.Like{"LOWER(COALESCE(study_group, ''))": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	students := []*models.Student{}
	err = r.db.WithConn(ctx, func(ctx context.Context, q db.Querier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			student, err := scanStudent(rows)
			if err != nil {
				return err
			}
			students = append(students, student)
		}
		return rows.Err()
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error querying students")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	return students, nil
}

// StudentExists reports whether a student row exists, using q so it can join a transaction
func (r *StudentRepository) StudentExists(ctx context.Context, q db.Querier, id int64) (bool, error) {
	query, args, err := r.db.Builder.Select("1").
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build student exists query: %w", err)
	}

	var one int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("error checking student: %w", err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var (
		s                                             models.Student
		birth, passport, phone, email, group, faculty sql.NullString
		mode, notes                                   sql.NullString
		benefits                                      int
	)
	if err := row.Scan(&s.ID, &s.FullName, &birth, &passport, &phone, &email,
		&group, &faculty, &mode, &benefits, &notes); err != nil {
		return nil, err
	}
	s.BirthDate = nullToString(birth)
	s.PassportData = nullToString(passport)
	s.Phone = nullToString(phone)
	s.Email = nullToString(email)
	s.StudyGroup = nullToString(group)
	s.Faculty = nullToString(faculty)
	s.StudyMode = nullToString(mode)
	s.HasBenefits = benefits != 0
	s.Notes = nullToString(notes)
	return &s, nil
}
