package services

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/apperrors"
)

func newUserFixture() (*UserService, *fakeUserStore, *fakeFileStore, *fakeStorage) {
	users := newFakeUserStore(&models.User{
		ID: 1, Email: "asha@example.com", FirstName: "Asha", LastName: "Rao",
		Phone: "9000000001", RoleType: models.RoleStudent, IsActive: true,
	})
	files := newFakeFileStore()
	storage := &fakeStorage{}
	return NewUserService(users, files, storage, 0), users, files, storage
}

func uploadHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     1024,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"application/pdf"}},
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _, _, _ := newUserFixture()
	first := "Aisha"

	user, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{FirstName: &first})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if user.FirstName != "Aisha" {
		t.Fatalf("first name = %q, want Aisha", user.FirstName)
	}
	if user.LastName != "Rao" || user.Phone != "9000000001" {
		t.Fatalf("untouched fields changed: %+v", user)
	}
}

func TestUpdateProfileDuplicatePhone(t *testing.T) {
	svc, users, _, _ := newUserFixture()
	users.users[2] = &models.User{ID: 2, Email: "b@example.com", Phone: "9000000002"}
	phone := "9000000002"

	_, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{Phone: &phone})
	if !errors.Is(err, apperrors.ErrPhoneAlreadyExists) {
		t.Fatalf("expected ErrPhoneAlreadyExists, got %v", err)
	}
}

func TestUploadResumeRecordsMetadata(t *testing.T) {
	svc, users, files, _ := newUserFixture()

	path, err := svc.UploadResume(context.Background(), 1, uploadHeader("cv.pdf"))
	if err != nil {
		t.Fatalf("UploadResume failed: %v", err)
	}

	user, _ := users.GetByID(context.Background(), 1)
	if user.ResumePath == nil || *user.ResumePath != path {
		t.Fatalf("resume path not set on user: %+v", user.ResumePath)
	}

	record, ok := files.records[path]
	if !ok {
		t.Fatalf("no metadata recorded for %q", path)
	}
	if record.Name != "cv.pdf" || record.UploadedBy != 1 || record.MimeType != "application/pdf" {
		t.Fatalf("metadata mismatch: %+v", record)
	}
}

func TestUploadReplacementRemovesOldFile(t *testing.T) {
	svc, _, files, storage := newUserFixture()
	ctx := context.Background()

	first, err := svc.UploadAvatar(ctx, 1, uploadHeader("old.png"))
	if err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	second, err := svc.UploadAvatar(ctx, 1, uploadHeader("new.png"))
	if err != nil {
		t.Fatalf("second upload failed: %v", err)
	}
	if first == second {
		t.Fatalf("replacement reused the same path %q", first)
	}

	if len(storage.deleted) != 1 || storage.deleted[0] != first {
		t.Fatalf("expected old file %q deleted, got %v", first, storage.deleted)
	}
	if _, ok := files.records[first]; ok {
		t.Fatalf("old metadata for %q should be removed", first)
	}
	if _, ok := files.records[second]; !ok {
		t.Fatalf("new metadata for %q missing", second)
	}
}

func TestSignedURLsForMissingFiles(t *testing.T) {
	svc, users, _, _ := newUserFixture()
	user, _ := users.GetByID(context.Background(), 1)

	url, err := svc.AvatarURL(context.Background(), user)
	if err != nil {
		t.Fatalf("AvatarURL failed: %v", err)
	}
	if url != "" {
		t.Fatalf("user without avatar should get empty URL, got %q", url)
	}
}
