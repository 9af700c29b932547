package seed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	appAuth "github.com/yigit/dormitory/internal/app/auth"
	"github.com/yigit/dormitory/internal/pkg/auth"
	"github.com/yigit/dormitory/internal/testkit"
)

func TestEnsureDefaultAdminIsIdempotent(t *testing.T) {
	_, repos := testkit.NewRepositories(t)
	hasher, err := auth.NewPasswordHasher("")
	if err != nil {
		t.Fatalf("hasher: %v", err)
	}
	var logs bytes.Buffer
	lgr := zerolog.New(&logs)
	ctx := t.Context()

	created, err := EnsureDefaultAdmin(ctx, repos.UserRepository, hasher, "admin123", lgr)
	if err != nil || !created {
		t.Fatalf("first run: created=%v err=%v", created, err)
	}
	created, err = EnsureDefaultAdmin(ctx, repos.UserRepository, hasher, "admin123", lgr)
	if err != nil || created {
		t.Fatalf("second run: created=%v err=%v", created, err)
	}

	admin, err := repos.UserRepository.GetUserByUsername(ctx, DefaultAdminUsername)
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if admin.Role != appAuth.RoleAdmin {
		t.Errorf("role = %q, want admin", admin.Role)
	}
	if admin.PasswordHash != auth.SHA256Hex("admin123") {
		t.Errorf("stored hash does not match the sha256 scheme")
	}

	if n := strings.Count(logs.String(), `"level":"warn"`); n != 2 {
		t.Errorf("warnings = %d, want one per run while the default password is valid", n)
	}
}

func TestEnsureDefaultAdminQuietAfterPasswordChange(t *testing.T) {
	_, repos := testkit.NewRepositories(t)
	hasher, _ := auth.NewPasswordHasher("sha256")
	var logs bytes.Buffer

	if _, err := EnsureDefaultAdmin(t.Context(), repos.UserRepository, hasher, "changed-elsewhere", zerolog.Nop()); err != nil {
		t.Fatalf("EnsureDefaultAdmin: %v", err)
	}
	if _, err := EnsureDefaultAdmin(t.Context(), repos.UserRepository, hasher, "admin123", zerolog.New(&logs)); err != nil {
		t.Fatalf("EnsureDefaultAdmin: %v", err)
	}
	if strings.Contains(logs.String(), `"level":"warn"`) {
		t.Errorf("warned although the admin password no longer matches the default: %s", logs.String())
	}
}
