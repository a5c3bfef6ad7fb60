package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"restaurant-cms/models"

	"go.uber.org/zap"
)

// ProjectionVar is the global the projection script assigns the document to.
const ProjectionVar = "window.restaurantData"

// ErrNotFound is returned by a Backend that has nothing persisted yet.
var ErrNotFound = errors.New("document not found")

// Backend persists the canonical document and its projection script together.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, document, script []byte) error
}

// Publisher mirrors saved artifacts somewhere the public site can reach.
type Publisher interface {
	PublishProjection(ctx context.Context, document, script []byte) error
}

type Store struct {
	// mu serializes Update cycles within this process.
	mu sync.Mutex

	backend   Backend
	publisher Publisher
	logger    *zap.Logger
}

func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// WithPublisher sets an optional mirror that runs after every successful save.
func (s *Store) WithPublisher(p Publisher) *Store {
	s.publisher = p
	return s
}

// Load returns the persisted document, or the default document when nothing
// has been saved yet.
func (s *Store) Load(ctx context.Context) (*models.Document, error) {
	body, err := s.backend.Read(ctx)
	if errors.Is(err, ErrNotFound) {
		return models.DefaultDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// Save writes the document and its projection script. The document is not
// validated.
func (s *Store) Save(ctx context.Context, doc *models.Document) error {
	body, err := MarshalDocument(doc)
	if err != nil {
		return err
	}
	script := ProjectionScript(body)

	if err := s.backend.Write(ctx, body, script); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	s.logger.Debug("document saved",
		zap.Int("menu_items", len(doc.MenuItems)),
		zap.Int("announcements", len(doc.Announcements)),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishProjection(ctx, body, script); err != nil {
			s.logger.Warn("failed to publish projection", zap.Error(err))
		}
	}
	return nil
}

// MarshalDocument renders doc the way it is stored on disk.
func MarshalDocument(doc *models.Document) ([]byte, error) {
	body, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return body, nil
}

// ProjectionScript wraps an encoded document so static pages can include it
// with a plain script tag.
func ProjectionScript(body []byte) []byte {
	script := make([]byte, 0, len(body)+len(ProjectionVar)+5)
	script = append(script, ProjectionVar+" = "...)
	script = append(script, body...)
	script = append(script, ';')
	return script
}

// Update runs one read-modify-write cycle under the store lock. fn receives
// the current document and returns the next one and whether to save it.
// When fn declines to save, the current document is returned unchanged.
func (s *Store) Update(ctx context.Context, fn func(doc models.Document) (models.Document, bool, error)) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	next, save, err := fn(*current)
	if err != nil {
		return nil, err
	}
	if !save {
		return current, nil
	}

	if err := s.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}
