package usecase

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waste3d/coursehub/internal/domain"
	"github.com/waste3d/coursehub/internal/logger"
)

// fakeStudents - хранилище в памяти, считает записи
type fakeStudents struct {
	byEmail  map[string]*domain.Student
	enrolled map[uint]map[uint]bool
	nextID   uint
	writes   int
	appends  [][]uint

	// createRace имитирует параллельное создание того же студента
	createRace bool
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{byEmail: map[string]*domain.Student{}, enrolled: map[uint]map[uint]bool{}}
}

func (f *fakeStudents) GetByEmail(_ context.Context, email string) (*domain.Student, error) {
	s, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

// GetProfile отдает студента с полным набором курсов
func (f *fakeStudents) GetProfile(ctx context.Context, email string) (*domain.Student, error) {
	s, err := f.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	s.EnrolledCourses = courses(f.enrolledIDs(s.ID)...)
	return s, nil
}

func (f *fakeStudents) GetOrCreateByEmail(ctx context.Context, email string) (*domain.Student, error) {
	if s, err := f.GetByEmail(ctx, email); err == nil {
		return s, nil
	}
	s := &domain.Student{Email: email}
	return s, f.Create(ctx, s)
}

func (f *fakeStudents) Create(_ context.Context, s *domain.Student) error {
	if f.createRace {
		f.createRace = false
		f.nextID++
		f.byEmail[s.Email] = &domain.Student{ID: f.nextID, Email: s.Email, Name: "Other"}
		return domain.ErrStudentExists
	}
	if _, ok := f.byEmail[s.Email]; ok {
		return domain.ErrStudentExists
	}
	f.writes++
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.byEmail[s.Email] = &cp
	return nil
}

func (f *fakeStudents) UpdateName(_ context.Context, id uint, name string) error {
	f.writes++
	for _, s := range f.byEmail {
		if s.ID == id {
			s.Name = name
		}
	}
	return nil
}

func (f *fakeStudents) EnrolledCourseIDs(_ context.Context, studentID uint, courseIDs []uint) ([]uint, error) {
	var out []uint
	for _, id := range courseIDs {
		if f.enrolled[studentID][id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeStudents) AddEnrollments(_ context.Context, s *domain.Student, courses []domain.Course) error {
	f.writes++
	if f.enrolled[s.ID] == nil {
		f.enrolled[s.ID] = map[uint]bool{}
	}
	var ids []uint
	for _, c := range courses {
		f.enrolled[s.ID][c.ID] = true
		ids = append(ids, c.ID)
	}
	f.appends = append(f.appends, ids)
	return nil
}

func (f *fakeStudents) enrolledIDs(studentID uint) []uint {
	var out []uint
	for id := range f.enrolled[studentID] {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type fakeCourses map[uint]domain.Course

func (f fakeCourses) GetByID(_ context.Context, id uint) (*domain.Course, error) {
	c, ok := f[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return &c, nil
}

func (f fakeCourses) GetByIDs(ctx context.Context, ids []uint) ([]domain.Course, error) {
	var out []domain.Course
	for _, id := range ids {
		c, err := f.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func courses(ids ...uint) []domain.Course {
	out := make([]domain.Course, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Course{ID: id})
	}
	return out
}

func ids(cs []domain.Course) []uint {
	out := make([]uint, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func newEnrollment(ss *fakeStudents) *EnrollmentUseCase {
	return NewEnrollmentUseCase(ss, fakeCourses{
		101: {ID: 101, Title: "A"},
		102: {ID: 102, Title: "B"},
		103: {ID: 103, Title: "C"},
	}, logger.Nop())
}

func TestResolveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ss := newFakeStudents()
	uc := newEnrollment(ss)

	first, err := uc.Resolve(ctx, "a@x.com", "Alice")
	require.NoError(t, err)
	second, err := uc.Resolve(ctx, "a@x.com", "Alice")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, ss.writes)
}

func TestResolveRenames(t *testing.T) {
	ctx := context.Background()
	ss := newFakeStudents()
	uc := newEnrollment(ss)

	_, err := uc.Resolve(ctx, "a@x.com", "Alice")
	require.NoError(t, err)

	s, err := uc.Resolve(ctx, "a@x.com", "Alicia")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", s.Name)
	assert.Equal(t, "Alicia", ss.byEmail["a@x.com"].Name)
	assert.Equal(t, 2, ss.writes)

	_, err = uc.Resolve(ctx, "a@x.com", "Alicia")
	require.NoError(t, err)
	assert.Equal(t, 2, ss.writes, "same name must not write")
}

func TestResolveLosesCreateRace(t *testing.T) {
	ctx := context.Background()
	ss := newFakeStudents()
	ss.createRace = true
	uc := newEnrollment(ss)

	s, err := uc.Resolve(ctx, "a@x.com", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", s.Name)
	assert.Equal(t, "Alice", ss.byEmail["a@x.com"].Name)
}

func TestReconcileScenario(t *testing.T) {
	ctx := context.Background()
	ss := newFakeStudents()
	uc := newEnrollment(ss)
	s, err := uc.Resolve(ctx, "a@x.com", "Alice")
	require.NoError(t, err)

	res, err := uc.Reconcile(ctx, s, courses(101, 102))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []uint{101, 102}, ids(res.Courses))

	res, err = uc.Reconcile(ctx, s, courses(101, 103))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, []uint{103}, ids(res.Courses))

	_, err = uc.Reconcile(ctx, s, courses(101))
	assert.ErrorIs(t, err, domain.ErrNoNewEnrollment)

	assert.Equal(t, []uint{101, 102, 103}, ss.enrolledIDs(s.ID))
}

func TestReconcileTwiceIsNoop(t *testing.T) {
	ctx := context.Background()
	ss := newFakeStudents()
	uc := newEnrollment(ss)
	s, err := uc.Resolve(ctx, "a@x.com", "Alice")
	require.NoError(t, err)

	_, err = uc.Reconcile(ctx, s, courses(103, 101))
	require.NoError(t, err)
	before := ss.enrolledIDs(s.ID)
	writes := ss.writes

	_, err = uc.Reconcile(ctx, s, courses(103, 101))
	assert.ErrorIs(t, err, domain.ErrNoNewEnrollment)
	assert.Equal(t, before, ss.enrolledIDs(s.ID))
	assert.Equal(t, writes, ss.writes)
}

func TestReconcileAccumulates(t *testing.T) {
	ctx := context.Background()
	ss := newFakeStudents()
	uc := newEnrollment(ss)
	s, err := uc.Resolve(ctx, "a@x.com", "Alice")
	require.NoError(t, err)

	_, err = uc.Reconcile(ctx, s, courses(101))
	require.NoError(t, err)
	_, err = uc.Reconcile(ctx, s, courses(102, 103))
	require.NoError(t, err)

	assert.Equal(t, []uint{101, 102, 103}, ss.enrolledIDs(s.ID))
}

func TestReconcileAppliesOneBatch(t *testing.T) {
	ctx := context.Background()
	ss := newFakeStudents()
	uc := newEnrollment(ss)
	s, err := uc.Resolve(ctx, "a@x.com", "Alice")
	require.NoError(t, err)

	// дубль в запросе схлопывается, порядок сохраняется
	res, err := uc.Reconcile(ctx, s, courses(102, 101, 102))
	require.NoError(t, err)
	assert.Equal(t, []uint{102, 101}, ids(res.Courses))
	require.Len(t, ss.appends, 1)
	assert.Equal(t, []uint{102, 101}, ss.appends[0])
}

func TestReconcileEmptyRequest(t *testing.T) {
	ss := newFakeStudents()
	uc := newEnrollment(ss)

	_, err := uc.Reconcile(context.Background(), &domain.Student{ID: 1}, nil)
	assert.ErrorIs(t, err, domain.ErrNoNewEnrollment)
	assert.Zero(t, ss.writes)
}

func TestEnroll(t *testing.T) {
	ctx := context.Background()
	ss := newFakeStudents()
	uc := newEnrollment(ss)

	s, res, err := uc.Enroll(ctx, "a@x.com", "Alice", []uint{101, 102})
	require.NoError(t, err)
	assert.Equal(t, "Alice", s.Name)
	assert.Equal(t, 2, res.Count)

	s, res, err = uc.Enroll(ctx, "a@x.com", "Alice", []uint{101, 103})
	require.NoError(t, err)
	assert.Equal(t, []uint{103}, ids(res.Courses))
	assert.Equal(t, []uint{101, 102, 103}, ids(s.EnrolledCourses))

	s, res, err = uc.Enroll(ctx, "a@x.com", "Alicia", []uint{101})
	assert.ErrorIs(t, err, domain.ErrNoNewEnrollment)
	assert.Nil(t, res)
	require.NotNil(t, s)
	assert.Equal(t, "Alicia", s.Name)
}

func TestEnrollUnknownCourseWritesNothing(t *testing.T) {
	ss := newFakeStudents()
	uc := newEnrollment(ss)

	_, _, err := uc.Enroll(context.Background(), "a@x.com", "Alice", []uint{101, 999})
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	assert.Zero(t, ss.writes)
}

func TestEnrollOneAlwaysSucceeds(t *testing.T) {
	ctx := context.Background()
	ss := newFakeStudents()
	uc := newEnrollment(ss)

	_, c, err := uc.EnrollOne(ctx, "a@x.com", 101)
	require.NoError(t, err)
	assert.Equal(t, "A", c.Title)

	s, _, err := uc.EnrollOne(ctx, "a@x.com", 101)
	require.NoError(t, err)
	assert.Equal(t, []uint{101}, ss.enrolledIDs(s.ID))

	_, _, err = uc.EnrollOne(ctx, "a@x.com", 999)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}
