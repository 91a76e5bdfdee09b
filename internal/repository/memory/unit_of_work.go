package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/repository/contract"
	"ai-health-assistant-be/internal/repository/specification"
	"ai-health-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store is a process-local replacement for the relational store. Writes made
// inside a unit of work become visible only on Commit. It backs the service
// tests and the STORE_DRIVER=memory mode.
type Store struct {
	mu            sync.RWMutex
	consultations []*entity.Consultation
	progress      []*entity.ProgressEntry
	conversations []*entity.ConversationRecord
	chunks        map[uuid.UUID]*entity.DocumentChunk

	failMu sync.Mutex
	fail   map[string]error
}

func NewStore() *Store {
	return &Store{
		chunks: make(map[uuid.UUID]*entity.DocumentChunk),
		fail:   make(map[string]error),
	}
}

// FailOn makes the named operation return err. Known operations are
// "commit", "consultation.create", "progress.create", "conversation.create",
// "chunk.upsert", "chunk.delete" and the matching ".find" reads.
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.fail[op] = err
}

func (s *Store) failure(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.fail[op]
}

func (s *Store) Consultations() []*entity.Consultation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*entity.Consultation(nil), s.consultations...)
}

func (s *Store) ProgressEntries() []*entity.ProgressEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*entity.ProgressEntry(nil), s.progress...)
}

func (s *Store) Conversations() []*entity.ConversationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*entity.ConversationRecord(nil), s.conversations...)
}

type repositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

type unitOfWork struct {
	store   *Store
	inTx    bool
	pending []func()
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.inTx = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.inTx = false
	if err := u.store.failure("commit"); err != nil {
		u.pending = nil
		return err
	}
	u.store.mu.Lock()
	for _, apply := range u.pending {
		apply()
	}
	u.store.mu.Unlock()
	u.pending = nil
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.inTx = false
	u.pending = nil
	return nil
}

// write applies immediately outside a transaction and defers inside one.
func (u *unitOfWork) write(apply func()) {
	if u.inTx {
		u.pending = append(u.pending, apply)
		return
	}
	u.store.mu.Lock()
	apply()
	u.store.mu.Unlock()
}

func (u *unitOfWork) ConsultationRepository() contract.ConsultationRepository {
	return &consultationRepo{uow: u}
}

func (u *unitOfWork) ProgressEntryRepository() contract.ProgressEntryRepository {
	return &progressRepo{uow: u}
}

func (u *unitOfWork) ConversationRepository() contract.ConversationRepository {
	return &conversationRepo{uow: u}
}

func (u *unitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return &chunkRepo{uow: u}
}

// filter understands the specifications the services use.
type filter struct {
	id             *uuid.UUID
	userID         *uuid.UUID
	consultationID *uuid.UUID
	patientID      *uuid.UUID
	source         *string
	desc           bool
	ordered        bool
	limit          int
}

func newFilter(specs []specification.Specification) filter {
	var f filter
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			f.id = &s.ID
		case specification.UserOwnedBy:
			f.userID = &s.UserID
		case specification.ByConsultationID:
			f.consultationID = &s.ConsultationID
		case specification.ByPatientID:
			f.patientID = &s.PatientID
		case specification.BySource:
			f.source = &s.Source
		case specification.OrderBy:
			f.ordered = true
			f.desc = s.Desc
		case specification.Pagination:
			f.limit = s.Limit
		}
	}
	return f
}

func eq(want *uuid.UUID, got uuid.UUID) bool {
	return want == nil || *want == got
}

func orderAndLimit[T any](items []T, f filter, at func(T) time.Time) []T {
	if f.ordered {
		sort.SliceStable(items, func(i, j int) bool {
			if f.desc {
				return at(items[i]).After(at(items[j]))
			}
			return at(items[i]).Before(at(items[j]))
		})
	}
	if f.limit > 0 && len(items) > f.limit {
		items = items[:f.limit]
	}
	return items
}

type consultationRepo struct{ uow *unitOfWork }

func (r *consultationRepo) Create(ctx context.Context, c *entity.Consultation) error {
	if err := r.uow.store.failure("consultation.create"); err != nil {
		return err
	}
	if c.Id == uuid.Nil {
		c.Id = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	cp := *c
	r.uow.write(func() { r.uow.store.consultations = append(r.uow.store.consultations, &cp) })
	return nil
}

func (r *consultationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Consultation, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *consultationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Consultation, error) {
	if err := r.uow.store.failure("consultation.find"); err != nil {
		return nil, err
	}
	f := newFilter(specs)
	r.uow.store.mu.RLock()
	var out []*entity.Consultation
	for _, c := range r.uow.store.consultations {
		if eq(f.id, c.Id) && eq(f.userID, c.UserId) {
			cp := *c
			out = append(out, &cp)
		}
	}
	r.uow.store.mu.RUnlock()
	return orderAndLimit(out, f, func(c *entity.Consultation) time.Time { return c.CreatedAt }), nil
}

type progressRepo struct{ uow *unitOfWork }

func (r *progressRepo) Create(ctx context.Context, p *entity.ProgressEntry) error {
	if err := r.uow.store.failure("progress.create"); err != nil {
		return err
	}
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	cp := *p
	r.uow.write(func() { r.uow.store.progress = append(r.uow.store.progress, &cp) })
	return nil
}

func (r *progressRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProgressEntry, error) {
	if err := r.uow.store.failure("progress.find"); err != nil {
		return nil, err
	}
	f := newFilter(specs)
	r.uow.store.mu.RLock()
	var out []*entity.ProgressEntry
	for _, p := range r.uow.store.progress {
		if eq(f.id, p.Id) && eq(f.userID, p.UserId) && eq(f.consultationID, p.ConsultationId) {
			cp := *p
			out = append(out, &cp)
		}
	}
	r.uow.store.mu.RUnlock()
	return orderAndLimit(out, f, func(p *entity.ProgressEntry) time.Time { return p.Date }), nil
}

func (r *progressRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type conversationRepo struct{ uow *unitOfWork }

func (r *conversationRepo) Create(ctx context.Context, c *entity.ConversationRecord) error {
	if err := r.uow.store.failure("conversation.create"); err != nil {
		return err
	}
	if c.Id == uuid.Nil {
		c.Id = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	cp := *c
	r.uow.write(func() { r.uow.store.conversations = append(r.uow.store.conversations, &cp) })
	return nil
}

func (r *conversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationRecord, error) {
	if err := r.uow.store.failure("conversation.find"); err != nil {
		return nil, err
	}
	f := newFilter(specs)
	r.uow.store.mu.RLock()
	var out []*entity.ConversationRecord
	for _, c := range r.uow.store.conversations {
		if eq(f.id, c.Id) && eq(f.userID, c.UserId) && eq(f.patientID, c.PatientId) {
			cp := *c
			out = append(out, &cp)
		}
	}
	r.uow.store.mu.RUnlock()
	return orderAndLimit(out, f, func(c *entity.ConversationRecord) time.Time { return c.CreatedAt }), nil
}

func (r *conversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type chunkRepo struct{ uow *unitOfWork }

func (r *chunkRepo) UpsertBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if err := r.uow.store.failure("chunk.upsert"); err != nil {
		return err
	}
	copies := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		cp := *c
		copies[i] = &cp
	}
	r.uow.write(func() {
		for _, c := range copies {
			r.uow.store.chunks[c.Id] = c
		}
	})
	return nil
}

// SearchSimilar ranks by dot product, which equals cosine similarity for the
// normalized vectors the embedding providers return.
func (r *chunkRepo) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredDocumentChunk, error) {
	if err := r.uow.store.failure("chunk.find"); err != nil {
		return nil, err
	}
	r.uow.store.mu.RLock()
	scored := make([]*contract.ScoredDocumentChunk, 0, len(r.uow.store.chunks))
	for _, c := range r.uow.store.chunks {
		var dot float64
		for i := 0; i < len(c.Embedding) && i < len(embedding); i++ {
			dot += float64(c.Embedding[i]) * float64(embedding[i])
		}
		cp := *c
		scored = append(scored, &contract.ScoredDocumentChunk{Chunk: &cp, Similarity: dot})
	}
	r.uow.store.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity == scored[j].Similarity {
			return scored[i].Chunk.Id.String() < scored[j].Chunk.Id.String()
		}
		return scored[i].Similarity > scored[j].Similarity
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (r *chunkRepo) DeleteBySource(ctx context.Context, source string) error {
	if err := r.uow.store.failure("chunk.delete"); err != nil {
		return err
	}
	r.uow.write(func() {
		for id, c := range r.uow.store.chunks {
			if c.Source == source {
				delete(r.uow.store.chunks, id)
			}
		}
	})
	return nil
}

func (r *chunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	f := newFilter(specs)
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	var n int64
	for _, c := range r.uow.store.chunks {
		if f.source == nil || *f.source == c.Source {
			n++
		}
	}
	return n, nil
}
