package pitchform

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pitchdeck/internal/models"
	"pitchdeck/internal/service"
	"pitchdeck/internal/validation"
)

type MockAction struct {
	mock.Mock
}

func (m *MockAction) CreatePitch(ctx context.Context, session *models.Session, form models.PitchForm, pitch string) service.ActionResult {
	args := m.Called(ctx, session, form, pitch)
	return args.Get(0).(service.ActionResult)
}

type recorder struct {
	mu            sync.Mutex
	notifications []Notification
	paths         []string
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func pngUpload(size int) *models.Upload {
	data := make([]byte, size)
	copy(data, "\x89PNG\r\n\x1a\n")
	return &models.Upload{Filename: "logo.png", Data: data}
}

func validValues() models.PitchForm {
	return models.PitchForm{
		Title:       "My Cool App!",
		Description: "A platform for pitching ideas",
		Category:    "Tech",
	}
}

const pitch = "# The pitch body"

func newController(action Action) (*Controller, *recorder) {
	rec := &recorder{}
	return NewController(action, validation.New(), rec, rec), rec
}

func TestController_InitialState(t *testing.T) {
	c, _ := newController(new(MockAction))

	state := c.State()
	assert.Equal(t, Initial, state.Kind)
	assert.Equal(t, service.StatusInitial, state.Result.Status)
	assert.Empty(t, state.Result.Error)
}

func TestController_InvalidTitleSkipsAction(t *testing.T) {
	action := new(MockAction)
	c, rec := newController(action)
	<-c.SelectImage(pngUpload(256))

	values := validValues()
	values.Title = "ab"

	state, err := c.Submit(context.Background(), &models.Session{ID: "author-1"}, values, pitch)

	require.NoError(t, err)
	assert.Equal(t, Error, state.Kind)
	assert.Equal(t, "String must contain at least 3 character(s)", state.Errors["title"])
	assert.Equal(t, "Validation failed", state.Result.Error)
	assert.Equal(t, service.ValidationError, state.Result.ErrorKind)
	require.Len(t, rec.notifications, 1)
	assert.Equal(t, "Please check your inputs and try again", rec.notifications[0].Description)
	assert.Equal(t, VariantDestructive, rec.notifications[0].Variant)
	assert.Empty(t, rec.paths)
	action.AssertNotCalled(t, "CreatePitch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestController_OversizedImage(t *testing.T) {
	action := new(MockAction)
	c, _ := newController(action)
	<-c.SelectImage(pngUpload(validation.MaxImageSize + 1))

	state, err := c.Submit(context.Background(), &models.Session{ID: "author-1"}, validValues(), pitch)

	require.NoError(t, err)
	assert.Equal(t, Error, state.Kind)
	assert.Equal(t, "Max image size is 5MB", state.Errors["image"])
	action.AssertNotCalled(t, "CreatePitch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestController_MissingImage(t *testing.T) {
	action := new(MockAction)
	c, _ := newController(action)

	state, err := c.Submit(context.Background(), &models.Session{ID: "author-1"}, validValues(), pitch)

	require.NoError(t, err)
	assert.Equal(t, "Image is required", state.Errors["image"])
}

func TestController_Success(t *testing.T) {
	action := new(MockAction)
	c, rec := newController(action)
	img := pngUpload(256)
	<-c.SelectImage(img)

	session := &models.Session{ID: "author-1"}
	action.On("CreatePitch", mock.Anything, session, mock.MatchedBy(func(f models.PitchForm) bool {
		// the selected image is attached to the forwarded form
		return f.Image == img && f.Title == "My Cool App!"
	}), pitch).Return(service.ActionResult{
		Startup: &models.Startup{ID: "startup-1", Slug: "my-cool-app"},
		Status:  service.StatusSuccess,
	})

	state, err := c.Submit(context.Background(), session, validValues(), pitch)

	require.NoError(t, err)
	assert.Equal(t, Success, state.Kind)
	assert.Equal(t, "startup-1", state.Result.ID)
	assert.Nil(t, state.Errors)
	require.Len(t, rec.notifications, 1)
	assert.Equal(t, "Success", rec.notifications[0].Title)
	assert.Equal(t, "Your startup pitch has been created successfully", rec.notifications[0].Description)
	assert.Equal(t, []string{"/startup/startup-1"}, rec.paths)
	action.AssertExpectations(t)
}

func TestController_ActionError(t *testing.T) {
	action := new(MockAction)
	c, rec := newController(action)
	<-c.SelectImage(pngUpload(256))

	action.On("CreatePitch", mock.Anything, mock.Anything, mock.Anything, pitch).Return(service.ActionResult{
		Error:     "Not signed in",
		Status:    service.StatusError,
		ErrorKind: service.AuthError,
	})

	state, err := c.Submit(context.Background(), nil, validValues(), pitch)

	require.NoError(t, err)
	assert.Equal(t, Error, state.Kind)
	assert.Equal(t, "Not signed in", state.Result.Error)
	assert.Empty(t, state.Errors)
	assert.Empty(t, rec.paths)
	require.Len(t, rec.notifications, 1)
	assert.Equal(t, "Not signed in", rec.notifications[0].Description)
}

func TestController_UnexpectedFailure(t *testing.T) {
	action := new(MockAction)
	c, rec := newController(action)
	<-c.SelectImage(pngUpload(256))

	action.On("CreatePitch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { panic("boom") })

	state, err := c.Submit(context.Background(), &models.Session{ID: "author-1"}, validValues(), pitch)

	require.NoError(t, err)
	assert.Equal(t, Error, state.Kind)
	assert.Equal(t, "An unexpected error has occurred", state.Result.Error)
	require.Len(t, rec.notifications, 1)
	assert.Equal(t, "An unexpected error has occurred", rec.notifications[0].Description)
}

func TestController_RejectsSubmitWhileSubmitting(t *testing.T) {
	action := new(MockAction)
	c, _ := newController(action)
	<-c.SelectImage(pngUpload(256))

	entered := make(chan struct{})
	release := make(chan struct{})
	action.On("CreatePitch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(service.ActionResult{Startup: &models.Startup{ID: "startup-1"}, Status: service.StatusSuccess}).
		Once()

	done := make(chan State)
	go func() {
		state, _ := c.Submit(context.Background(), &models.Session{ID: "author-1"}, validValues(), pitch)
		done <- state
	}()

	<-entered
	assert.Equal(t, Submitting, c.State().Kind)

	_, err := c.Submit(context.Background(), &models.Session{ID: "author-1"}, validValues(), pitch)
	assert.ErrorIs(t, err, ErrSubmitting)

	close(release)
	select {
	case state := <-done:
		assert.Equal(t, Success, state.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("submission did not finish")
	}
	action.AssertNumberOfCalls(t, "CreatePitch", 1)
}

func TestController_Preview(t *testing.T) {
	c, _ := newController(new(MockAction))

	<-c.SelectImage(pngUpload(16))
	assert.True(t, strings.HasPrefix(c.Preview(), "data:image/png;base64,"))

	<-c.SelectImage(nil)
	assert.Empty(t, c.Preview())
}

func TestController_AttachImageSubmitsWithoutPreview(t *testing.T) {
	action := new(MockAction)
	c, _ := newController(action)
	img := pngUpload(256)

	<-c.SelectImage(pngUpload(16))
	c.AttachImage(img)
	assert.Empty(t, c.Preview())

	action.On("CreatePitch", mock.Anything, mock.Anything, mock.MatchedBy(func(f models.PitchForm) bool {
		return f.Image == img
	}), pitch).Return(service.ActionResult{Startup: &models.Startup{ID: "startup-1"}, Status: service.StatusSuccess})

	state, err := c.Submit(context.Background(), &models.Session{ID: "author-1"}, validValues(), pitch)

	require.NoError(t, err)
	assert.Equal(t, Success, state.Kind)
	assert.Empty(t, c.Preview())
	action.AssertExpectations(t)
}

func TestController_Reject(t *testing.T) {
	action := new(MockAction)
	c, rec := newController(action)

	state, err := c.Reject(validation.FieldErrors{"image": validation.MsgImageTooLarge})

	require.NoError(t, err)
	assert.Equal(t, Error, state.Kind)
	assert.Equal(t, service.ValidationError, state.Result.ErrorKind)
	assert.Equal(t, "Max image size is 5MB", state.Errors["image"])
	require.Len(t, rec.notifications, 1)
	assert.Equal(t, VariantDestructive, rec.notifications[0].Variant)
	assert.Equal(t, state, c.State())
	action.AssertNotCalled(t, "CreatePitch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
