package services

import (
	"testing"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/pkg/apperrors"
)

func TestRegisterRequiresFullName(t *testing.T) {
	svc := newTestServices(t)
	ctx := t.Context()

	_, err := svc.Students.Register(ctx, &models.Student{FullName: "   ", StudyGroup: "CS-1"})
	assertIs(t, err, apperrors.ErrValidationFailed)
	if field := apperrors.FieldOf(err); field != "fullName" {
		t.Errorf("field = %q, want fullName", field)
	}

	students, err := svc.Students.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(students) != 0 {
		t.Errorf("validation failure inserted %d students", len(students))
	}
}

func TestRegisterAndGet(t *testing.T) {
	svc := newTestServices(t)
	ctx := t.Context()

	id, err := svc.Students.Register(ctx, &models.Student{
		FullName:    "  Ivanov Ivan  ",
		BirthDate:   "2004-05-17",
		Phone:       "+7 900 000 00 00",
		StudyGroup:  "CS-21",
		HasBenefits: true,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.Students.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FullName != "Ivanov Ivan" {
		t.Errorf("full name = %q, want trimmed", got.FullName)
	}
	if !got.HasBenefits || got.StudyGroup != "CS-21" || got.BirthDate != "2004-05-17" {
		t.Errorf("student = %+v", got)
	}
	if got.Email != "" || got.Notes != "" {
		t.Errorf("empty optional fields should read back empty: %+v", got)
	}

	_, err = svc.Students.Get(ctx, id+100)
	assertIs(t, err, apperrors.ErrResourceNotFound)

	_, err = svc.Students.Register(ctx, &models.Student{FullName: "X", BirthDate: "17.05.2004"})
	assertIs(t, err, apperrors.ErrValidationFailed)
}

func TestListStudentsSearch(t *testing.T) {
	svc := newTestServices(t)
	ctx := t.Context()

	for _, s := range []models.Student{
		{FullName: "Petrova Anna", StudyGroup: "ME-11"},
		{FullName: "Abramov Oleg", StudyGroup: "CS-21"},
		{FullName: "Sidorov Petr"},
	} {
		s := s
		if _, err := svc.Students.Register(ctx, &s); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Abramov Oleg", "Petrova Anna", "Sidorov Petr"}},
		{"petr", []string{"Petrova Anna", "Sidorov Petr"}},
		{"cs-2", []string{"Abramov Oleg"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		got, err := svc.Students.List(ctx, tt.query)
		if err != nil {
			t.Fatalf("List(%q): %v", tt.query, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("List(%q) returned %d students, want %d", tt.query, len(got), len(tt.want))
		}
		for i, name := range tt.want {
			if got[i].FullName != name {
				t.Errorf("List(%q)[%d] = %q, want %q", tt.query, i, got[i].FullName, name)
			}
		}
	}
}

func TestRegisterRejectsMalformedContacts(t *testing.T) {
	svc := newTestServices(t)
	ctx := t.Context()

	_, err := svc.Students.Register(ctx, &models.Student{FullName: "A", Email: "not-an-email"})
	assertIs(t, err, apperrors.ErrValidationFailed)
	if field := apperrors.FieldOf(err); field != "email" {
		t.Errorf("field = %q, want email", field)
	}

	_, err = svc.Students.Register(ctx, &models.Student{FullName: "A", Phone: "ask the dean"})
	if field := apperrors.FieldOf(err); field != "phone" {
		t.Errorf("field = %q, want phone", field)
	}
}

func TestRegisterTrimsContacts(t *testing.T) {
	svc := newTestServices(t)
	ctx := t.Context()

	id, err := svc.Students.Register(ctx, &models.Student{FullName: "A", Email: " a@b.com ", Phone: " +7 900 000 00 00\t"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := svc.Students.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Email != "a@b.com" || got.Phone != "+7 900 000 00 00" {
		t.Errorf("contacts stored as %q / %q, want trimmed", got.Email, got.Phone)
	}
}
