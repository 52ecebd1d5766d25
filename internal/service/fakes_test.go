package service

import (
	"context"
	"sync"
	"time"

	"promptito-be/internal/entity"
	"promptito-be/internal/model"
	"promptito-be/internal/pkg/mailer"
	"promptito-be/internal/repository"
	"promptito-be/internal/repository/contract"
	"promptito-be/internal/repository/specification"
	"promptito-be/internal/repository/unitofwork"
	"promptito-be/pkg/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeStore is an in-memory database shared by every unit of work it hands
// out. Only the specifications the services use are interpreted; ordering
// and paging specifications are ignored.
type fakeStore struct {
	mu sync.Mutex

	prompts   map[uuid.UUID]*entity.Prompt
	drafts    map[uuid.UUID]*entity.PromptDraft
	favorites []*entity.Favorite
	reports   map[uuid.UUID]*entity.Report
	packs     map[uuid.UUID]*entity.SkillPack
	agents    map[uuid.UUID]*entity.Agent
	profiles  map[uuid.UUID]*entity.UserProfile

	notificationTypes map[string]*model.NotificationType
	notifications     []model.Notification
	muted             map[uuid.UUID][]string

	commits int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		prompts:           make(map[uuid.UUID]*entity.Prompt),
		drafts:            make(map[uuid.UUID]*entity.PromptDraft),
		reports:           make(map[uuid.UUID]*entity.Report),
		packs:             make(map[uuid.UUID]*entity.SkillPack),
		agents:            make(map[uuid.UUID]*entity.Agent),
		profiles:          make(map[uuid.UUID]*entity.UserProfile),
		notificationTypes: make(map[string]*model.NotificationType),
		muted:             make(map[uuid.UUID][]string),
	}
}

func (s *fakeStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: s}
}

func (s *fakeStore) addPrompt(p entity.Prompt) *entity.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.prompts[p.Id] = &p
	cp := p
	return &cp
}

func (s *fakeStore) prompt(id uuid.UUID) entity.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.prompts[id]
}

type fakeUnitOfWork struct {
	store *fakeStore
	inTx  bool
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.store.mu.Lock()
	u.store.commits++
	u.store.mu.Unlock()
	u.inTx = false
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.inTx = false
	return nil
}

func (u *fakeUnitOfWork) PromptRepository() contract.PromptRepository { return fakePrompts{u.store} }
func (u *fakeUnitOfWork) PromptDraftRepository() contract.PromptDraftRepository {
	return fakeDrafts{u.store}
}
func (u *fakeUnitOfWork) FavoriteRepository() contract.FavoriteRepository {
	return fakeFavorites{u.store}
}
func (u *fakeUnitOfWork) ReportRepository() contract.ReportRepository { return fakeReports{u.store} }
func (u *fakeUnitOfWork) SkillPackRepository() contract.SkillPackRepository {
	return fakePacks{u.store}
}
func (u *fakeUnitOfWork) AgentRepository() contract.AgentRepository { return fakeAgents{u.store} }
func (u *fakeUnitOfWork) UserProfileRepository() contract.UserProfileRepository {
	return fakeProfiles{u.store}
}
func (u *fakeUnitOfWork) NotificationRepository() repository.NotificationRepository {
	return fakeNotifications{u.store}
}

// fields is what the fake specifications can match on.
type fields struct {
	id, owner, user, prompt uuid.UUID
	slug                    string
	listed                  bool
}

func matches(f fields, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if f.id != sp.ID {
				return false
			}
		case specification.ByIDs:
			if !containsID(sp.IDs, f.id) {
				return false
			}
		case specification.OwnedBy:
			if f.owner != sp.OwnerID {
				return false
			}
		case specification.ByUserID:
			if f.user != sp.UserID {
				return false
			}
		case specification.ByPromptID:
			if f.prompt != sp.PromptID {
				return false
			}
		case specification.ByPromptIDs:
			if !containsID(sp.PromptIDs, f.prompt) {
				return false
			}
		case specification.BySlug:
			if f.slug != sp.Slug {
				return false
			}
		case specification.PublicActive:
			if !f.listed {
				return false
			}
		}
	}
	return true
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

type fakePrompts struct{ s *fakeStore }

func promptFields(p *entity.Prompt) fields {
	return fields{id: p.Id, owner: p.OwnerId, slug: p.Slug, listed: p.IsListed()}
}

func (r fakePrompts) Create(ctx context.Context, p *entity.Prompt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.prompts {
		if existing.Slug == p.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	p.CreatedAt = time.Now()
	cp := *p
	r.s.prompts[p.Id] = &cp
	return nil
}

func (r fakePrompts) Update(ctx context.Context, p *entity.Prompt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.prompts[p.Id]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.s.prompts[p.Id] = &cp
	return nil
}

func (r fakePrompts) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.prompts, id)
	return nil
}

func (r fakePrompts) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prompt, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r fakePrompts) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prompt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Prompt, 0)
	for _, p := range r.s.prompts {
		if matches(promptFields(p), specs) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakePrompts) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r fakePrompts) IncrementViews(ctx context.Context, id uuid.UUID, n int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.prompts[id]; ok {
		p.ViewsCount += n
	}
	return nil
}

func (r fakePrompts) AdjustFavorites(ctx context.Context, id uuid.UUID, delta int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.prompts[id]; ok {
		p.FavoritesCount += delta
		if p.FavoritesCount < 0 {
			p.FavoritesCount = 0
		}
	}
	return nil
}

func (r fakePrompts) SetStatus(ctx context.Context, id uuid.UUID, status string, hiddenReason *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.prompts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	p.HiddenReason = hiddenReason
	return nil
}

func (r fakePrompts) Facets(ctx context.Context) ([]string, []string, error) {
	return []string{}, []string{}, nil
}

type fakeDrafts struct{ s *fakeStore }

func (r fakeDrafts) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.PromptDraft, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.drafts[userId]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r fakeDrafts) Upsert(ctx context.Context, d *entity.PromptDraft) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	d.UpdatedAt = &now
	if d.Id == uuid.Nil {
		d.Id = uuid.New()
	}
	cp := *d
	r.s.drafts[d.UserId] = &cp
	return nil
}

func (r fakeDrafts) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.drafts, userId)
	return nil
}

type fakeFavorites struct{ s *fakeStore }

func (r fakeFavorites) Create(ctx context.Context, f *entity.Favorite) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.favorites {
		if x.UserId == f.UserId && x.PromptId == f.PromptId {
			return false, nil
		}
	}
	f.Id = uuid.New()
	f.CreatedAt = time.Now()
	cp := *f
	r.s.favorites = append(r.s.favorites, &cp)
	return true, nil
}

func (r fakeFavorites) Delete(ctx context.Context, userId, promptId uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.favorites {
		if x.UserId == userId && x.PromptId == promptId {
			r.s.favorites = append(r.s.favorites[:i], r.s.favorites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r fakeFavorites) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Favorite, 0)
	for _, f := range r.s.favorites {
		if matches(fields{id: f.Id, user: f.UserId, prompt: f.PromptId}, specs) {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakeFavorites) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeReports struct{ s *fakeStore }

func (r fakeReports) Create(ctx context.Context, rep *entity.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rep.Id = uuid.New()
	rep.CreatedAt = time.Now()
	cp := *rep
	r.s.reports[rep.Id] = &cp
	return nil
}

func (r fakeReports) Update(ctx context.Context, rep *entity.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rep
	r.s.reports[rep.Id] = &cp
	return nil
}

func (r fakeReports) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r fakeReports) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Report, 0)
	for _, rep := range r.s.reports {
		if matches(fields{id: rep.Id, prompt: rep.TargetId}, specs) {
			cp := *rep
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakeReports) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakePacks struct{ s *fakeStore }

func (r fakePacks) Create(ctx context.Context, p *entity.SkillPack) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	p.CreatedAt = time.Now()
	cp := *p
	r.s.packs[p.Id] = &cp
	return nil
}

func (r fakePacks) Update(ctx context.Context, p *entity.SkillPack) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.packs[p.Id] = &cp
	return nil
}

func (r fakePacks) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.packs, id)
	return nil
}

func (r fakePacks) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SkillPack, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r fakePacks) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SkillPack, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.SkillPack, 0)
	for _, p := range r.s.packs {
		if matches(fields{id: p.Id, owner: p.OwnerId}, specs) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakePacks) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeAgents struct{ s *fakeStore }

func (r fakeAgents) Create(ctx context.Context, a *entity.Agent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.Id == uuid.Nil {
		a.Id = uuid.New()
	}
	a.CreatedAt = time.Now()
	cp := *a
	r.s.agents[a.Id] = &cp
	return nil
}

func (r fakeAgents) Update(ctx context.Context, a *entity.Agent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	r.s.agents[a.Id] = &cp
	return nil
}

func (r fakeAgents) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.agents, id)
	return nil
}

func (r fakeAgents) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Agent, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r fakeAgents) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Agent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Agent, 0)
	for _, a := range r.s.agents {
		if matches(fields{id: a.Id, owner: a.OwnerId}, specs) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakeAgents) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeProfiles struct{ s *fakeStore }

func (r fakeProfiles) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if matches(fields{id: p.Id}, specs) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeProfiles) Upsert(ctx context.Context, p *entity.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	p.UpdatedAt = &now
	// is_admin is never written through the API.
	p.IsAdmin = false
	if existing, ok := r.s.profiles[p.Id]; ok {
		p.IsAdmin = existing.IsAdmin
	}
	cp := *p
	r.s.profiles[p.Id] = &cp
	return nil
}

func (r fakeProfiles) FindAdminIds(ctx context.Context) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]uuid.UUID, 0)
	for _, p := range r.s.profiles {
		if p.IsAdmin {
			out = append(out, p.Id)
		}
	}
	return out, nil
}

type fakeNotifications struct{ s *fakeStore }

func (r fakeNotifications) CreateNotification(ctx context.Context, n *model.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications = append(r.s.notifications, *n)
	return nil
}

func (r fakeNotifications) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Notification, 0)
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r fakeNotifications) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, x := range r.s.notifications {
		if x.UserID == userID && !x.IsRead {
			n++
		}
	}
	return n, nil
}

func (r fakeNotifications) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].ID == notificationID && r.s.notifications[i].UserID == userID {
			r.s.notifications[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r fakeNotifications) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].UserID == userID {
			r.s.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r fakeNotifications) GetNotificationTypeByCode(ctx context.Context, code string) (*model.NotificationType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.notificationTypes[code]
	if !ok || !t.IsActive {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r fakeNotifications) GetMutedTypes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]string{}, r.s.muted[userID]...), nil
}

func (r fakeNotifications) SetMutedTypes(ctx context.Context, userID uuid.UUID, codes []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.muted[userID] = append([]string{}, codes...)
	return nil
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

func (p *fakePublisher) last() events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return nil
	}
	return p.events[len(p.events)-1]
}

type fakeViews struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (v *fakeViews) PublishPromptViewed(ctx context.Context, promptId uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ids = append(v.ids, promptId)
	return nil
}

type sentMail struct {
	to, subject, reason string
}

// fakeMailer collects mail sent from background goroutines.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) SendReportNotice(toEmail string, n mailer.ReportNotice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: toEmail, subject: n.PromptTitle, reason: n.Reason})
	return nil
}

func (m *fakeMailer) SendHiddenNotice(toEmail, promptTitle, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: toEmail, subject: promptTitle, reason: reason})
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *fakeMailer) first() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[0]
}
