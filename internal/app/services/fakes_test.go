package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/pkg/apperrors"
)

// In-memory stand-ins for the repository layer. They reproduce the guarded
// update semantics of the SQL implementations so the services see the same
// error behavior.

func fakeTxRunner() TxRunner {
	return func(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
		return fn(ctx, nil)
	}
}

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
	for _, u := range users {
		s.users[u.ID] = u
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	return s
}

func (s *fakeUserStore) CreateUser(_ context.Context, _ pgx.Tx, user *models.User) (int64, error) {
	for _, u := range s.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if u.Phone == user.Phone {
			return 0, apperrors.ErrPhoneAlreadyExists
		}
	}
	id := s.nextID
	s.nextID++
	copied := *user
	copied.ID = id
	s.users[id] = &copied
	return id, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) RecordLogin(_ context.Context, id int64) error {
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, u := range s.users {
		if u.Phone == phone {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) ListAll(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id int64, firstName, lastName, phone *string) error {
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if phone != nil {
		for _, other := range s.users {
			if other.ID != id && other.Phone == *phone {
				return apperrors.ErrPhoneAlreadyExists
			}
		}
		u.Phone = *phone
	}
	if firstName != nil {
		u.FirstName = *firstName
	}
	if lastName != nil {
		u.LastName = *lastName
	}
	return nil
}

func (s *fakeUserStore) SetAvatarPath(_ context.Context, id int64, path string) error {
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.AvatarPath = &path
	return nil
}

func (s *fakeUserStore) SetResumePath(_ context.Context, id int64, path string) error {
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.ResumePath = &path
	return nil
}

type fakeFileStore struct {
	records map[string]*models.StoredFile
	nextID  int64
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{records: make(map[string]*models.StoredFile), nextID: 1}
}

func (s *fakeFileStore) Create(_ context.Context, file *models.StoredFile) (int64, error) {
	id := s.nextID
	s.nextID++
	copied := *file
	copied.ID = id
	s.records[file.Path] = &copied
	return id, nil
}

func (s *fakeFileStore) DeleteByPath(_ context.Context, path string) error {
	delete(s.records, path)
	return nil
}

// fakeStorage hands out sequential paths and tracks which ones still exist
type fakeStorage struct {
	saved   int
	deleted []string
}

func (s *fakeStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	s.saved++
	return fmt.Sprintf("%s/file-%d", subPath, s.saved), nil
}

func (s *fakeStorage) DeleteFile(filePath string) error {
	s.deleted = append(s.deleted, filePath)
	return nil
}

func (s *fakeStorage) SignedURL(filePath string, _ time.Duration) (string, error) {
	return "signed://" + filePath, nil
}

func (s *fakeStorage) VerifySignedPath(_, _, _ string) bool { return true }

type fakeStudentStore struct {
	profiles map[int64]*models.StudentProfile
	nextID   int64
}

func newFakeStudentStore(profiles ...*models.StudentProfile) *fakeStudentStore {
	s := &fakeStudentStore{profiles: make(map[int64]*models.StudentProfile), nextID: 1}
	for _, p := range profiles {
		s.profiles[p.ID] = p
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

func (s *fakeStudentStore) CreateProfile(_ context.Context, _ pgx.Tx, profile *models.StudentProfile) (int64, error) {
	for _, p := range s.profiles {
		if p.UserID == profile.UserID {
			return 0, apperrors.ErrStudentProfileExists
		}
		if p.USN == profile.USN {
			return 0, apperrors.ErrUSNAlreadyExists
		}
	}
	id := s.nextID
	s.nextID++
	copied := *profile
	copied.ID = id
	s.profiles[id] = &copied
	return id, nil
}

func (s *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.StudentProfile, error) {
	if p, ok := s.profiles[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *fakeStudentStore) GetByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *fakeStudentStore) ListAll(_ context.Context) ([]models.StudentProfile, error) {
	out := make([]models.StudentProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeStudentStore) ListByBatchIDs(_ context.Context, batchIDs []int64) ([]models.StudentProfile, error) {
	wanted := make(map[int64]bool, len(batchIDs))
	for _, id := range batchIDs {
		wanted[id] = true
	}
	var out []models.StudentProfile
	for _, p := range s.profiles {
		if p.BatchID != nil && wanted[*p.BatchID] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeStudentStore) UpdateAcademics(_ context.Context, id int64, usn, college, branch, track, skillLevel *string, batchID *int64) error {
	p, ok := s.profiles[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if usn != nil {
		p.USN = *usn
	}
	if college != nil {
		p.College = *college
	}
	if branch != nil {
		p.Branch = *branch
	}
	if track != nil {
		p.Track = models.Track(*track)
	}
	if skillLevel != nil {
		p.SkillLevel = models.SkillLevel(*skillLevel)
	}
	if batchID != nil {
		p.BatchID = batchID
	}
	return nil
}

func (s *fakeStudentStore) Approve(_ context.Context, id int64, studentID string, batchID int64) error {
	p, ok := s.profiles[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if p.ApprovalStatus != models.ApprovalPending {
		return apperrors.ErrStudentNotPending
	}
	p.ApprovalStatus = models.ApprovalApproved
	p.StudentID = &studentID
	p.BatchID = &batchID
	return nil
}

func (s *fakeStudentStore) Reject(_ context.Context, id int64) error {
	p, ok := s.profiles[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if p.ApprovalStatus != models.ApprovalPending {
		return apperrors.ErrStudentNotPending
	}
	p.ApprovalStatus = models.ApprovalRejected
	return nil
}

func (s *fakeStudentStore) CountByApprovalStatus(_ context.Context) (map[models.ApprovalStatus]int, error) {
	counts := make(map[models.ApprovalStatus]int)
	for _, p := range s.profiles {
		counts[p.ApprovalStatus]++
	}
	return counts, nil
}

func (s *fakeStudentStore) CountByBatch(_ context.Context) (map[int64]int, error) {
	counts := make(map[int64]int)
	for _, p := range s.profiles {
		if p.BatchID != nil {
			counts[*p.BatchID]++
		}
	}
	return counts, nil
}

type fakeBatchStore struct {
	batches map[int64]*models.Batch
	nextID  int64
}

func newFakeBatchStore(batches ...*models.Batch) *fakeBatchStore {
	s := &fakeBatchStore{batches: make(map[int64]*models.Batch), nextID: 1}
	for _, b := range batches {
		s.batches[b.ID] = b
		if b.ID >= s.nextID {
			s.nextID = b.ID + 1
		}
	}
	return s
}

func (s *fakeBatchStore) Create(_ context.Context, batch *models.Batch) (int64, error) {
	id := s.nextID
	s.nextID++
	copied := *batch
	copied.ID = id
	s.batches[id] = &copied
	return id, nil
}

func (s *fakeBatchStore) GetByID(_ context.Context, id int64) (*models.Batch, error) {
	if b, ok := s.batches[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, apperrors.ErrBatchNotFound
}

func (s *fakeBatchStore) ListAll(_ context.Context) ([]models.Batch, error) {
	out := make([]models.Batch, 0, len(s.batches))
	for _, b := range s.batches {
		out = append(out, *b)
	}
	return out, nil
}

func (s *fakeBatchStore) ListByFaculty(_ context.Context, facultyID int64) ([]models.Batch, error) {
	var out []models.Batch
	for _, b := range s.batches {
		if b.FacultyID != nil && *b.FacultyID == facultyID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBatchStore) Update(_ context.Context, id int64, name, description, courseCode, schedule *string, startDate, endDate *time.Time, capacity *int, facultyID *int64) error {
	b, ok := s.batches[id]
	if !ok {
		return apperrors.ErrBatchNotFound
	}
	if name != nil {
		b.Name = *name
	}
	if description != nil {
		b.Description = *description
	}
	if courseCode != nil {
		b.CourseCode = *courseCode
	}
	if schedule != nil {
		b.Schedule = *schedule
	}
	if startDate != nil {
		b.StartDate = *startDate
	}
	if endDate != nil {
		b.EndDate = *endDate
	}
	if capacity != nil {
		b.Capacity = *capacity
	}
	if facultyID != nil {
		b.FacultyID = facultyID
	}
	return nil
}

func (s *fakeBatchStore) Count(_ context.Context) (int, error) {
	return len(s.batches), nil
}

type fakeProjectStore struct {
	projects map[int64]*models.Project
	members  []models.ProjectMember
	nextID   int64
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: make(map[int64]*models.Project), nextID: 1}
}

func (s *fakeProjectStore) CreateWithLead(ctx context.Context, _ pgx.Tx, project *models.Project) (int64, error) {
	id := s.nextID
	s.nextID++
	copied := *project
	copied.ID = id
	s.projects[id] = &copied
	if _, err := s.AddMember(ctx, id, project.LeadID); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *fakeProjectStore) GetByID(_ context.Context, id int64) (*models.Project, error) {
	if p, ok := s.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, apperrors.ErrProjectNotFound
}

func (s *fakeProjectStore) ListAll(_ context.Context) ([]models.Project, error) {
	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeProjectStore) ListByMember(_ context.Context, userID int64) ([]models.Project, error) {
	var out []models.Project
	for _, m := range s.members {
		if m.UserID == userID {
			if p, ok := s.projects[m.ProjectID]; ok {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

func (s *fakeProjectStore) ListMembers(_ context.Context, projectID int64) ([]models.ProjectMember, error) {
	var out []models.ProjectMember
	for _, m := range s.members {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeProjectStore) ListAllMembers(_ context.Context) ([]models.ProjectMember, error) {
	out := make([]models.ProjectMember, len(s.members))
	copy(out, s.members)
	return out, nil
}

func (s *fakeProjectStore) CountMembers(_ context.Context, projectID int64) (int, error) {
	count := 0
	for _, m := range s.members {
		if m.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (s *fakeProjectStore) IsMember(_ context.Context, projectID, userID int64) (bool, error) {
	for _, m := range s.members {
		if m.ProjectID == projectID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeProjectStore) AddMember(_ context.Context, projectID, userID int64) (int64, error) {
	for _, m := range s.members {
		if m.ProjectID == projectID && m.UserID == userID {
			return 0, apperrors.ErrAlreadyMember
		}
	}
	id := int64(len(s.members) + 1)
	s.members = append(s.members, models.ProjectMember{
		ID:        id,
		ProjectID: projectID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	})
	return id, nil
}

func (s *fakeProjectStore) RemoveMember(_ context.Context, projectID, userID int64) error {
	for i, m := range s.members {
		if m.ProjectID == projectID && m.UserID == userID {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrMemberNotFound
}

func (s *fakeProjectStore) Count(_ context.Context) (int, error) {
	return len(s.projects), nil
}

type fakeLeaveStore struct {
	leaves map[int64]*models.LeaveRequest
	nextID int64
}

func newFakeLeaveStore(leaves ...*models.LeaveRequest) *fakeLeaveStore {
	s := &fakeLeaveStore{leaves: make(map[int64]*models.LeaveRequest), nextID: 1}
	for _, l := range leaves {
		s.leaves[l.ID] = l
		if l.ID >= s.nextID {
			s.nextID = l.ID + 1
		}
	}
	return s
}

func (s *fakeLeaveStore) Create(_ context.Context, leave *models.LeaveRequest) (int64, error) {
	id := s.nextID
	s.nextID++
	copied := *leave
	copied.ID = id
	copied.Status = models.LeavePending
	copied.CreatedAt = time.Now()
	s.leaves[id] = &copied
	return id, nil
}

func (s *fakeLeaveStore) GetByID(_ context.Context, id int64) (*models.LeaveRequest, error) {
	if l, ok := s.leaves[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, apperrors.ErrLeaveNotFound
}

func (s *fakeLeaveStore) ListAll(_ context.Context) ([]models.LeaveRequest, error) {
	out := make([]models.LeaveRequest, 0, len(s.leaves))
	for _, l := range s.leaves {
		out = append(out, *l)
	}
	return out, nil
}

func (s *fakeLeaveStore) ListByUser(_ context.Context, userID int64) ([]models.LeaveRequest, error) {
	var out []models.LeaveRequest
	for _, l := range s.leaves {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *fakeLeaveStore) Review(_ context.Context, id int64, status models.LeaveStatus, reviewerID int64) error {
	l, ok := s.leaves[id]
	if !ok {
		return apperrors.ErrLeaveNotFound
	}
	if l.Status != models.LeavePending {
		return apperrors.ErrLeaveAlreadyReviewed
	}
	now := time.Now()
	l.Status = status
	l.ReviewedBy = &reviewerID
	l.ReviewedAt = &now
	return nil
}

func (s *fakeLeaveStore) CountByStatus(_ context.Context) (map[models.LeaveStatus]int, error) {
	counts := make(map[models.LeaveStatus]int)
	for _, l := range s.leaves {
		counts[l.Status]++
	}
	return counts, nil
}

type fakeQueryStore struct {
	queries map[int64]*models.SupportQuery
	nextID  int64
}

func newFakeQueryStore(queries ...*models.SupportQuery) *fakeQueryStore {
	s := &fakeQueryStore{queries: make(map[int64]*models.SupportQuery), nextID: 1}
	for _, q := range queries {
		s.queries[q.ID] = q
		if q.ID >= s.nextID {
			s.nextID = q.ID + 1
		}
	}
	return s
}

func (s *fakeQueryStore) Create(_ context.Context, query *models.SupportQuery) (int64, error) {
	id := s.nextID
	s.nextID++
	copied := *query
	copied.ID = id
	copied.CreatedAt = time.Now()
	s.queries[id] = &copied
	return id, nil
}

func (s *fakeQueryStore) GetByID(_ context.Context, id int64) (*models.SupportQuery, error) {
	if q, ok := s.queries[id]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, apperrors.ErrQueryNotFound
}

func (s *fakeQueryStore) ListAll(_ context.Context) ([]models.SupportQuery, error) {
	out := make([]models.SupportQuery, 0, len(s.queries))
	for _, q := range s.queries {
		out = append(out, *q)
	}
	return out, nil
}

func (s *fakeQueryStore) ListByUser(_ context.Context, userID int64) ([]models.SupportQuery, error) {
	var out []models.SupportQuery
	for _, q := range s.queries {
		if q.UserID == userID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *fakeQueryStore) Resolve(_ context.Context, id int64) error {
	q, ok := s.queries[id]
	if !ok {
		return apperrors.ErrQueryNotFound
	}
	if q.Resolved {
		return nil
	}
	now := time.Now()
	q.Resolved = true
	q.ResolvedAt = &now
	return nil
}

func (s *fakeQueryStore) Reopen(_ context.Context, id int64) error {
	q, ok := s.queries[id]
	if !ok {
		return apperrors.ErrQueryNotFound
	}
	if !q.Resolved {
		return nil
	}
	q.Resolved = false
	q.ResolvedAt = nil
	return nil
}

func (s *fakeQueryStore) CountUnresolved(_ context.Context) (int, error) {
	count := 0
	for _, q := range s.queries {
		if !q.Resolved {
			count++
		}
	}
	return count, nil
}
