package services

import (
	"context"
	"fmt"
	"time"

	"eventlottery/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID     map[string]*domain.Event
	waitlist map[string]map[string]bool // eventID -> set of userIDs
	nextID   int
	err      error // if set, every method returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:     make(map[string]*domain.Event),
		waitlist: make(map[string]map[string]bool),
		nextID:   1,
	}
}

func (f *fakeEventRepo) add(e *domain.Event) *domain.Event {
	if e.ID == "" {
		e.ID = fmt.Sprintf("ev-%d", f.nextID)
		f.nextID++
	}
	f.byID[e.ID] = e
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.add(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) AddToWaitlist(ctx context.Context, eventID, userID string, lat, lng *float64) error {
	if f.err != nil {
		return f.err
	}
	if f.waitlist[eventID] == nil {
		f.waitlist[eventID] = make(map[string]bool)
	}
	f.waitlist[eventID][userID] = true
	return nil
}

func (f *fakeEventRepo) RemoveFromWaitlist(ctx context.Context, eventID, userID string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.waitlist[eventID], userID)
	return nil
}

func (f *fakeEventRepo) ListWaitlist(ctx context.Context, eventID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for id := range f.waitlist[eventID] {
		out = append(out, id)
	}
	return out, nil
}

// fakeListRepo is an in-memory InvitationListRepository for a single event.
// It records PromoteWinners and Revoke invocations for assertions.
type fakeListRepo struct {
	lists map[domain.ListName]map[string]bool

	promoted           [][]string
	promotedNotif      *domain.Notification
	revoked            []string // userIDs revoked, in order
	prunedRecipients   []string
	err                error
	membershipOverride *domain.ListMembership
}

func newFakeListRepo() *fakeListRepo {
	lists := make(map[domain.ListName]map[string]bool)
	for _, l := range []domain.ListName{domain.ListAll, domain.ListWaiting, domain.ListInvited, domain.ListFinal, domain.ListCancelled} {
		lists[l] = make(map[string]bool)
	}
	return &fakeListRepo{lists: lists}
}

func (f *fakeListRepo) AddTo(ctx context.Context, eventID string, list domain.ListName, userIDs []string) error {
	if f.err != nil {
		return f.err
	}
	for _, id := range userIDs {
		f.lists[list][id] = true
	}
	return nil
}

func (f *fakeListRepo) RemoveFrom(ctx context.Context, eventID string, list domain.ListName, userIDs []string) error {
	if f.err != nil {
		return f.err
	}
	for _, id := range userIDs {
		delete(f.lists[list], id)
	}
	return nil
}

func (f *fakeListRepo) ListMembers(ctx context.Context, eventID string, list domain.ListName) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, 0, len(f.lists[list]))
	for id := range f.lists[list] {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeListRepo) Membership(ctx context.Context, eventID, userID string) (domain.ListMembership, error) {
	if f.err != nil {
		return domain.ListMembership{}, f.err
	}
	if f.membershipOverride != nil {
		return *f.membershipOverride, nil
	}
	return domain.ListMembership{
		All:       f.lists[domain.ListAll][userID],
		Waiting:   f.lists[domain.ListWaiting][userID],
		Invited:   f.lists[domain.ListInvited][userID],
		Final:     f.lists[domain.ListFinal][userID],
		Cancelled: f.lists[domain.ListCancelled][userID],
	}, nil
}

func (f *fakeListRepo) Move(ctx context.Context, eventID string, from, to domain.ListName, userIDs []string) error {
	if f.err != nil {
		return f.err
	}
	for _, id := range userIDs {
		delete(f.lists[from], id)
		f.lists[to][id] = true
	}
	return nil
}

func (f *fakeListRepo) PromoteWinners(ctx context.Context, eventID string, winners []string, n *domain.Notification) error {
	if f.err != nil {
		return f.err
	}
	for _, id := range winners {
		delete(f.lists[domain.ListWaiting], id)
		f.lists[domain.ListInvited][id] = true
	}
	f.promoted = append(f.promoted, winners)
	f.promotedNotif = n
	return nil
}

func (f *fakeListRepo) Revoke(ctx context.Context, eventID, userID string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.lists[domain.ListInvited], userID)
	delete(f.lists[domain.ListAll], userID)
	f.revoked = append(f.revoked, userID)
	f.prunedRecipients = append(f.prunedRecipients, userID)
	return nil
}

// fakeUserRepo is an in-memory UserRepository for tests. ApplyRating folds
// the running average the way the real repository does.
type fakeUserRepo struct {
	byID    map[string]*domain.User
	nextID  int
	err     error
	applied []appliedRating
}

type appliedRating struct {
	organizerID    string
	rating         float64
	notificationID string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", f.nextID)
		f.nextID++
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetRating(ctx context.Context, userID string) (float64, int, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	u, ok := f.byID[userID]
	if !ok {
		return 0, 0, domain.ErrNotFound
	}
	return u.Rating, u.RatingCount, nil
}

func (f *fakeUserRepo) ApplyRating(ctx context.Context, organizerID string, rating float64, notificationID string) error {
	if f.err != nil {
		return f.err
	}
	u, ok := f.byID[organizerID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Rating = (u.Rating*float64(u.RatingCount) + rating) / float64(u.RatingCount+1)
	u.RatingCount++
	f.applied = append(f.applied, appliedRating{organizerID, rating, notificationID})
	return nil
}

// fakeNotificationRepo is an in-memory NotificationRepository for tests.
type fakeNotificationRepo struct {
	created []*domain.Notification
	nextID  int
	err     error
	pruned  []prunedRecipient
	deleted []string
}

type prunedRecipient struct {
	eventID string
	typ     domain.NotificationType
	userID  string
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if f.err != nil {
		return f.err
	}
	n.ID = fmt.Sprintf("notif-%d", f.nextID)
	f.nextID++
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, n := range f.created {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeNotificationRepo) RemoveRecipient(ctx context.Context, eventID string, t domain.NotificationType, userID string) error {
	if f.err != nil {
		return f.err
	}
	f.pruned = append(f.pruned, prunedRecipient{eventID, t, userID})
	return nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i, n := range f.created {
		if n.ID == id {
			f.created = append(f.created[:i], f.created[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeNotificationRepo) ListByRecipient(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Notification, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []*domain.Notification
	for _, n := range f.created {
		for _, r := range n.Recipients {
			if r == userID {
				out = append(out, n)
				break
			}
		}
	}
	return out, len(out), nil
}

// firstKSampler picks the first k ids in input order, making draws fully
// predictable in tests.
type firstKSampler struct{}

func (firstKSampler) Pick(ids []string, k int) []string {
	if k > len(ids) {
		k = len(ids)
	}
	if k < 0 {
		k = 0
	}
	return ids[:k]
}

// fakeLoginCodeRepo records stored codes and controls Consume results.
type fakeLoginCodeRepo struct {
	email     string
	codeHash  string
	expiresAt time.Time
	consume   bool
	err       error
}

func (f *fakeLoginCodeRepo) Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.email = email
	f.codeHash = codeHash
	f.expiresAt = expiresAt
	return nil
}

func (f *fakeLoginCodeRepo) Consume(ctx context.Context, email, codeHash string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.consume, nil
}

// fakeTokenIssuer returns a canned token and records the subject.
type fakeTokenIssuer struct {
	token  string
	userID string
	err    error
}

func (f *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.userID = userID
	return f.token, nil
}

// fakeEmailService records sends; it never fails unless err is set.
type fakeEmailService struct {
	loginCodes    []*domain.LoginCodeEmailData
	notifications []*domain.NotificationEmailData
	err           error
}

func (f *fakeEmailService) SendLoginCode(ctx context.Context, data *domain.LoginCodeEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.loginCodes = append(f.loginCodes, data)
	return nil
}

func (f *fakeEmailService) SendNotificationCopy(ctx context.Context, t domain.NotificationType, data *domain.NotificationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.notifications = append(f.notifications, data)
	return nil
}
