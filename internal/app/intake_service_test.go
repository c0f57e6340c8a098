package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/activity"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/application"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/candidate"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/job"
	"github.com/Pankajnegi356/recruitment-portal/internal/integration/mailer"
	"github.com/Pankajnegi356/recruitment-portal/internal/slug"
)

type fakeJobRepo struct {
	mu     sync.Mutex
	jobs   map[int64]job.Job
	order  []int64
	nextID int64
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[int64]job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	j.ID = r.nextID
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	j.UpdatedAt = j.CreatedAt
	r.jobs[j.ID] = j
	r.order = append(r.order, j.ID)
	return &j, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.jobs[j.ID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.CreatedAt = current.CreatedAt
	j.UpdatedAt = time.Now().UTC()
	r.jobs[j.ID] = j
	return &j, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id int64) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return &j, nil
}

func (r *fakeJobRepo) List(ctx context.Context) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]job.Job, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.jobs[id])
	}
	return items, nil
}

func (r *fakeJobRepo) ListOpen(ctx context.Context) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, id := range r.order {
		if r.jobs[id].OpenForApplications() {
			items = append(items, r.jobs[id])
		}
	}
	return items, nil
}

type fakeCandidateRepo struct {
	mu         sync.Mutex
	byID       map[int64]candidate.Candidate
	byEmail    map[string]int64
	nextID     int64
	insertRace bool
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{
		byID:    make(map[int64]candidate.Candidate),
		byEmail: make(map[string]int64),
	}
}

func (r *fakeCandidateRepo) Create(ctx context.Context, c candidate.Candidate) (*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertRace {
		// Simulate a concurrent submission that claimed the email between the
		// caller's lookup and this insert.
		r.insertRace = false
		r.nextID++
		raced := c
		raced.ID = r.nextID
		raced.Name = "Earlier Submission"
		raced.CreatedAt = time.Now().UTC()
		raced.UpdatedAt = raced.CreatedAt
		r.byID[raced.ID] = raced
		r.byEmail[raced.Email] = raced.ID
		return nil, common.NewError(common.CodeConflict, "candidate email already exists", nil)
	}
	if _, exists := r.byEmail[c.Email]; exists {
		return nil, common.NewError(common.CodeConflict, "candidate email already exists", nil)
	}
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	r.byID[c.ID] = c
	r.byEmail[c.Email] = c.ID
	return &c, nil
}

func (r *fakeCandidateRepo) Update(ctx context.Context, c candidate.Candidate) (*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[c.ID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "candidate not found", nil)
	}
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.byID[c.ID] = c
	r.byEmail[c.Email] = c.ID
	return &c, nil
}

func (r *fakeCandidateRepo) GetByID(ctx context.Context, id int64) (*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "candidate not found", nil)
	}
	return &c, nil
}

func (r *fakeCandidateRepo) FindByEmail(ctx context.Context, email string) (*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "candidate not found", nil)
	}
	c := r.byID[id]
	return &c, nil
}

func (r *fakeCandidateRepo) UpdateStatus(ctx context.Context, id int64, status, maxStage int) (*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "candidate not found", nil)
	}
	c.Status = status
	c.MaxStageReached = maxStage
	c.UpdatedAt = time.Now().UTC()
	r.byID[id] = c
	return &c, nil
}

func (r *fakeCandidateRepo) ListByJob(ctx context.Context, jobID int64) ([]candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []candidate.Candidate
	for _, c := range r.byID {
		if c.JobID != nil && *c.JobID == jobID {
			items = append(items, c)
		}
	}
	return items, nil
}

type applicationKey struct {
	candidateID int64
	jobID       int64
}

type fakeApplicationRepo struct {
	mu     sync.Mutex
	byKey  map[applicationKey]application.Application
	nextID int64
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{byKey: make(map[applicationKey]application.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, a application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := applicationKey{candidateID: a.CandidateID, jobID: a.JobID}
	if _, exists := r.byKey[key]; exists {
		return nil, common.NewError(common.CodeConflict, "application already exists for this candidate and job", nil)
	}
	r.nextID++
	a.ID = r.nextID
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	r.byKey[key] = a
	return &a, nil
}

func (r *fakeApplicationRepo) FindByCandidateAndJob(ctx context.Context, candidateID, jobID int64) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byKey[applicationKey{candidateID: candidateID, jobID: jobID}]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return &a, nil
}

func (r *fakeApplicationRepo) ListByCandidate(ctx context.Context, candidateID int64) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for key, a := range r.byKey {
		if key.candidateID == candidateID {
			items = append(items, a)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID int64) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for key, a := range r.byKey {
		if key.jobID == jobID {
			items = append(items, a)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byKey)
}

type fakeActivityRepo struct {
	mu        sync.Mutex
	entries   []activity.Entry
	createErr error
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (r *fakeActivityRepo) Create(ctx context.Context, e activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeActivityRepo) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]activity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []activity.Entry
	for _, e := range r.entries {
		if e.EntityType == entityType && e.EntityID == entityID {
			items = append(items, e)
		}
	}
	return items, nil
}

type sentMail struct {
	to         string
	subject    string
	content    string
	attachment *mailer.Attachment
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, content string, attachment *mailer.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, content: content, attachment: attachment})
	return nil
}

func (m *fakeMailer) last() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}

type intakeFixture struct {
	jobs         *fakeJobRepo
	candidates   *fakeCandidateRepo
	applications *fakeApplicationRepo
	activity     *fakeActivityRepo
	mail         *fakeMailer
	service      *IntakeService
}

func newIntakeFixture(t *testing.T) *intakeFixture {
	t.Helper()
	f := &intakeFixture{
		jobs:         newFakeJobRepo(),
		candidates:   newFakeCandidateRepo(),
		applications: newFakeApplicationRepo(),
		activity:     newFakeActivityRepo(),
		mail:         &fakeMailer{},
	}
	f.service = NewIntakeService(f.jobs, f.candidates, f.applications, f.activity, f.mail, nil, IntakeConfig{
		NotifyEmail:  "hiring@example.com",
		AdminBaseURL: "http://localhost:3000",
	})
	return f
}

func (f *intakeFixture) addOpenJob(t *testing.T, title string) (*job.Job, string) {
	t.Helper()
	created, err := f.jobs.Create(context.Background(), job.Job{Title: title, Department: "Engineering", Status: job.StatusActive})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return created, slug.Generate(created.Title, created.CreatedAt)
}

func awaitNotification(t *testing.T, s *IntakeService) error {
	t.Helper()
	select {
	case err := <-s.NotificationResults():
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification dispatch")
		return nil
	}
}

func TestSubmitApplicationCreatesCandidateAndApplication(t *testing.T) {
	f := newIntakeFixture(t)
	posting, code := f.addOpenJob(t, "Backend Engineer")

	result, err := f.service.SubmitApplication(context.Background(), SubmitInput{
		Slug:      code,
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "+1 555 0100",
		ResumeURL: "https://cdn.example.com/jane.pdf",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.JobTitle != "Backend Engineer" {
		t.Fatalf("expected job title Backend Engineer, got %q", result.JobTitle)
	}
	if result.Status != application.StatusApplied {
		t.Fatalf("expected status applied, got %q", result.Status)
	}

	cand, err := f.candidates.FindByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("candidate not stored: %v", err)
	}
	if cand.Source != candidate.SourcePublicApplication {
		t.Fatalf("expected source %q, got %q", candidate.SourcePublicApplication, cand.Source)
	}
	if cand.Status != candidate.StageApplied {
		t.Fatalf("expected stage applied, got %d", cand.Status)
	}
	if cand.JobID == nil || *cand.JobID != posting.ID {
		t.Fatalf("expected candidate linked to job %d", posting.ID)
	}
	if cand.ResumeRef != "https://cdn.example.com/jane.pdf" {
		t.Fatalf("unexpected resume ref %q", cand.ResumeRef)
	}
	if _, err := f.applications.FindByCandidateAndJob(context.Background(), cand.ID, posting.ID); err != nil {
		t.Fatalf("application not stored: %v", err)
	}

	if err := awaitNotification(t, f.service); err != nil {
		t.Fatalf("notification failed: %v", err)
	}
	mailItem, ok := f.mail.last()
	if !ok {
		t.Fatal("expected a notification email")
	}
	if mailItem.to != "hiring@example.com" {
		t.Fatalf("unexpected recipient %q", mailItem.to)
	}
	if mailItem.subject != "New Application: Jane Doe - Backend Engineer" {
		t.Fatalf("unexpected subject %q", mailItem.subject)
	}
}

func TestSubmitApplicationDuplicateSameJobConflicts(t *testing.T) {
	f := newIntakeFixture(t)
	_, code := f.addOpenJob(t, "Backend Engineer")

	in := SubmitInput{Slug: code, Name: "Jane Doe", Email: "jane@example.com"}
	if _, err := f.service.SubmitApplication(context.Background(), in); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := f.service.SubmitApplication(context.Background(), in)
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if f.applications.count() != 1 {
		t.Fatalf("expected a single application, got %d", f.applications.count())
	}
}

func TestSubmitApplicationSecondJobReusesCandidate(t *testing.T) {
	f := newIntakeFixture(t)
	_, firstCode := f.addOpenJob(t, "Backend Engineer")
	second, secondCode := f.addOpenJob(t, "Data Analyst")

	if _, err := f.service.SubmitApplication(context.Background(), SubmitInput{Slug: firstCode, Name: "Jane Doe", Email: "jane@example.com"}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := f.service.SubmitApplication(context.Background(), SubmitInput{Slug: secondCode, Name: "Jane Doe", Email: "jane@example.com"}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if f.applications.count() != 2 {
		t.Fatalf("expected two applications, got %d", f.applications.count())
	}
	cand, err := f.candidates.FindByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("candidate lookup: %v", err)
	}
	if cand.JobID == nil || *cand.JobID != second.ID {
		t.Fatalf("expected candidate repointed at job %d", second.ID)
	}
	if cand.Status != candidate.StageApplied {
		t.Fatalf("expected stage reset to applied, got %d", cand.Status)
	}
}

func TestSubmitApplicationValidation(t *testing.T) {
	f := newIntakeFixture(t)
	_, code := f.addOpenJob(t, "Backend Engineer")

	cases := []struct {
		name  string
		input SubmitInput
	}{
		{name: "missing name", input: SubmitInput{Slug: code, Email: "jane@example.com"}},
		{name: "missing email", input: SubmitInput{Slug: code, Name: "Jane Doe"}},
		{name: "malformed email", input: SubmitInput{Slug: code, Name: "Jane Doe", Email: "jane@nodot"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.SubmitApplication(context.Background(), tc.input)
			if !common.Is(err, common.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if f.applications.count() != 0 {
		t.Fatalf("expected no applications, got %d", f.applications.count())
	}
}

func TestSubmitApplicationUnknownSlug(t *testing.T) {
	f := newIntakeFixture(t)
	f.addOpenJob(t, "Backend Engineer")

	_, err := f.service.SubmitApplication(context.Background(), SubmitInput{Slug: "no-such-posting-0001", Name: "Jane Doe", Email: "jane@example.com"})
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSubmitApplicationInsertRaceFallsBackToUpdate(t *testing.T) {
	f := newIntakeFixture(t)
	posting, code := f.addOpenJob(t, "Backend Engineer")
	f.candidates.insertRace = true

	result, err := f.service.SubmitApplication(context.Background(), SubmitInput{Slug: code, Name: "Jane Doe", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	cand, err := f.candidates.GetByID(context.Background(), result.CandidateID)
	if err != nil {
		t.Fatalf("candidate lookup: %v", err)
	}
	if cand.Name != "Jane Doe" {
		t.Fatalf("expected update path to overwrite name, got %q", cand.Name)
	}
	if cand.JobID == nil || *cand.JobID != posting.ID {
		t.Fatalf("expected candidate linked to job %d", posting.ID)
	}
}

func TestSubmitApplicationSurvivesActivityFailure(t *testing.T) {
	f := newIntakeFixture(t)
	_, code := f.addOpenJob(t, "Backend Engineer")
	f.activity.createErr = errors.New("activity store down")

	if _, err := f.service.SubmitApplication(context.Background(), SubmitInput{Slug: code, Name: "Jane Doe", Email: "jane@example.com"}); err != nil {
		t.Fatalf("submit should not fail on activity error: %v", err)
	}
	if f.applications.count() != 1 {
		t.Fatalf("expected application despite activity failure, got %d", f.applications.count())
	}
}

func TestSubmitApplicationSurvivesNotificationFailure(t *testing.T) {
	f := newIntakeFixture(t)
	_, code := f.addOpenJob(t, "Backend Engineer")
	f.mail.sendErr = errors.New("mailer down")

	if _, err := f.service.SubmitApplication(context.Background(), SubmitInput{Slug: code, Name: "Jane Doe", Email: "jane@example.com"}); err != nil {
		t.Fatalf("submit should not fail on mailer error: %v", err)
	}
	if err := awaitNotification(t, f.service); err == nil {
		t.Fatal("expected notification error to surface on the results channel")
	}
}

func TestSubmitApplicationResumeUpload(t *testing.T) {
	f := newIntakeFixture(t)
	_, code := f.addOpenJob(t, "Backend Engineer")

	attachment := &mailer.Attachment{Filename: "jane.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}
	result, err := f.service.SubmitApplication(context.Background(), SubmitInput{
		Slug:   code,
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Resume: attachment,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	cand, err := f.candidates.GetByID(context.Background(), result.CandidateID)
	if err != nil {
		t.Fatalf("candidate lookup: %v", err)
	}
	if cand.ResumeRef != candidate.ResumeAttached {
		t.Fatalf("expected resume ref %q, got %q", candidate.ResumeAttached, cand.ResumeRef)
	}
	if err := awaitNotification(t, f.service); err != nil {
		t.Fatalf("notification failed: %v", err)
	}
	mailItem, ok := f.mail.last()
	if !ok || mailItem.attachment == nil {
		t.Fatal("expected resume forwarded on the notification email")
	}
	if mailItem.attachment.Filename != "jane.pdf" {
		t.Fatalf("unexpected attachment filename %q", mailItem.attachment.Filename)
	}
}
