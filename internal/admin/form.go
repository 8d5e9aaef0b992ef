package admin

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Faisalali0159/besofy/internal/domain"
)

var (
	// ErrMissingFields is returned when title, content or category is blank.
	ErrMissingFields = errors.New("required fields missing")
	// ErrSubmitInProgress is returned while an earlier submit is outstanding.
	ErrSubmitInProgress = errors.New("submission already in progress")
	// ErrSessionClosed is returned by Submit after a successful submit.
	ErrSessionClosed = errors.New("form session closed")
)

// Form holds the editable fields of an article.
type Form struct {
	Title     string
	Content   string
	Category  domain.Category
	Image     *string
	Published bool
}

// FormFromArticle prefills a form for editing.
func FormFromArticle(a domain.Article) Form {
	return Form{
		Title:     a.Title,
		Content:   a.Content,
		Category:  a.Category,
		Image:     a.Image,
		Published: a.Published,
	}
}

// Validate checks the required fields locally.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Title) == "" ||
		strings.TrimSpace(f.Content) == "" ||
		strings.TrimSpace(string(f.Category)) == "" {
		return ErrMissingFields
	}
	return nil
}

// Input converts the form to the API input.
func (f Form) Input() domain.ArticleInput {
	return domain.ArticleInput{
		Title:     f.Title,
		Content:   f.Content,
		Category:  f.Category,
		Image:     f.Image,
		Published: f.Published,
	}
}

// session is the state shared by create and edit forms.
type session struct {
	mu         sync.Mutex
	form       Form
	open       bool
	submitting bool
	errText    string
}

// Form returns a copy of the current form.
func (s *session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetForm replaces the form contents.
func (s *session) SetForm(f Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// Open reports whether the form is still shown.
func (s *session) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Submitting reports whether a submit is outstanding; the submit control
// is disabled while it is true.
func (s *session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Err returns the message of the last failed submit.
func (s *session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errText
}

// submit runs send with the validated form. On success the session closes
// and m reloads its list.
func (s *session) submit(ctx context.Context, m *Manager, fallback string, send func(context.Context, domain.ArticleInput) error) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmitInProgress
	}
	if !s.open {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if err := s.form.Validate(); err != nil {
		s.errText = MissingFieldsMessage
		s.mu.Unlock()
		return &ActionError{Message: MissingFieldsMessage, Err: err}
	}
	s.submitting = true
	s.errText = ""
	in := s.form.Input()
	s.mu.Unlock()

	err := send(ctx, in)

	s.mu.Lock()
	s.submitting = false
	if err != nil {
		ae := failure(err, fallback)
		s.errText = ae.Message
		s.mu.Unlock()
		return ae
	}
	s.open = false
	s.mu.Unlock()

	m.reload(ctx)
	return nil
}

// CreateSession is an open "new article" form.
type CreateSession struct {
	session
	m *Manager
}

// NewCreate opens an empty create form.
func (m *Manager) NewCreate() *CreateSession {
	return &CreateSession{session: session{open: true}, m: m}
}

// Submit validates and creates the article. Failures keep the form open
// with its contents intact.
func (s *CreateSession) Submit(ctx context.Context) error {
	return s.submit(ctx, s.m, CreateFailedMessage, func(ctx context.Context, in domain.ArticleInput) error {
		_, err := s.m.api.CreateArticle(ctx, in)
		return err
	})
}

// EditSession is an open edit form for one article.
type EditSession struct {
	session
	m  *Manager
	id string
}

// NewEdit opens an edit form prefilled from a.
func (m *Manager) NewEdit(a domain.Article) *EditSession {
	return &EditSession{session: session{open: true, form: FormFromArticle(a)}, m: m, id: a.ID}
}

// Edit fetches article id and opens an edit form for it.
func (m *Manager) Edit(ctx context.Context, id string) (*EditSession, error) {
	a, err := m.api.GetArticle(ctx, id)
	if err != nil {
		return nil, failure(err, "Failed to load news article")
	}
	return m.NewEdit(*a), nil
}

// ID returns the article being edited.
func (s *EditSession) ID() string { return s.id }

// Done reports whether the update succeeded and the view should return
// to the list.
func (s *EditSession) Done() bool { return !s.Open() }

// Submit validates and sends the full record.
func (s *EditSession) Submit(ctx context.Context) error {
	return s.submit(ctx, s.m, UpdateFailedMessage, func(ctx context.Context, in domain.ArticleInput) error {
		_, err := s.m.api.UpdateArticle(ctx, s.id, in)
		return err
	})
}
