package services

import (
	"context"
	"time"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
)

// Ин-мемори фейки репозиториев для тестов сервисного слоя.

type fakePublisher struct {
	published []publishedMessage
}

type publishedMessage struct {
	Channel   string
	EventType string
	Payload   interface{}
}

func (p *fakePublisher) Publish(channel, eventType string, payload interface{}) {
	p.published = append(p.published, publishedMessage{
		Channel:   channel,
		EventType: eventType,
		Payload:   payload,
	})
}

type fakeEventRepo struct {
	events map[int]*models.Event
	err    error
}

func newFakeEventRepo(events ...*models.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[int]*models.Event)}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	if r.err != nil {
		return r.err
	}
	event.ID = len(r.events) + 1
	event.CreatedAt = time.Now()
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int) (*models.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	event, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.events[event.ID]; !ok {
		return repositories.ErrEventNotFound
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) List(_ context.Context, filter repositories.ListEventsFilter) ([]*models.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []*models.Event
	for _, e := range r.events {
		if filter.OrganizerID != nil && e.OrganizerID != *filter.OrganizerID {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
	for _, u := range users {
		repo.users[u.ID] = u
		if u.ID >= repo.nextID {
			repo.nextID = u.ID + 1
		}
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id int, role models.Role) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Role = role
	return nil
}

type fakeRegistrationRepo struct {
	registrations []*models.Registration
	nextID        int
	err           error
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{nextID: 1}
}

func (r *fakeRegistrationRepo) Create(_ context.Context, reg *models.Registration) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.registrations {
		if existing.UserID == reg.UserID && existing.EventID == reg.EventID {
			return repositories.ErrRegistrationConflict
		}
	}
	reg.ID = r.nextID
	r.nextID++
	reg.CreatedAt = time.Now()
	r.registrations = append(r.registrations, reg)
	return nil
}

func (r *fakeRegistrationRepo) FindByUserAndEvent(_ context.Context, userID, eventID int) (*models.Registration, error) {
	for _, reg := range r.registrations {
		if reg.UserID == userID && reg.EventID == eventID {
			return reg, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) ListByEvent(_ context.Context, eventID int) ([]*models.Registration, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []*models.Registration
	for _, reg := range r.registrations {
		if reg.EventID == eventID {
			result = append(result, reg)
		}
	}
	return result, nil
}

func (r *fakeRegistrationRepo) ListByUser(_ context.Context, userID int) ([]*models.Registration, error) {
	var result []*models.Registration
	for _, reg := range r.registrations {
		if reg.UserID == userID {
			result = append(result, reg)
		}
	}
	return result, nil
}

type fakeAssignmentRepo struct {
	assignments []*models.JudgeAssignment
	nextID      int
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{nextID: 1}
}

func (r *fakeAssignmentRepo) Upsert(_ context.Context, a *models.JudgeAssignment) error {
	for _, existing := range r.assignments {
		if existing.EventID == a.EventID && existing.JudgeID == a.JudgeID {
			a.ID = existing.ID
			a.CreatedAt = existing.CreatedAt
			return nil
		}
	}
	a.ID = r.nextID
	r.nextID++
	a.CreatedAt = time.Now()
	r.assignments = append(r.assignments, a)
	return nil
}

func (r *fakeAssignmentRepo) Exists(_ context.Context, eventID, judgeID int) (bool, error) {
	for _, a := range r.assignments {
		if a.EventID == eventID && a.JudgeID == judgeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAssignmentRepo) List(_ context.Context, filter repositories.ListAssignmentsFilter) ([]*models.JudgeAssignment, error) {
	var result []*models.JudgeAssignment
	for _, a := range r.assignments {
		if filter.EventID != nil && a.EventID != *filter.EventID {
			continue
		}
		if filter.JudgeID != nil && a.JudgeID != *filter.JudgeID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (r *fakeAssignmentRepo) ListByJudgeWithEvents(ctx context.Context, judgeID int) ([]*models.JudgeAssignment, error) {
	return r.List(ctx, repositories.ListAssignmentsFilter{JudgeID: &judgeID})
}

type fakeScoreRepo struct {
	scores []*models.Score
}

func (r *fakeScoreRepo) Create(_ context.Context, score *models.Score) error {
	score.CreatedAt = time.Now()
	r.scores = append(r.scores, score)
	return nil
}

func (r *fakeScoreRepo) List(_ context.Context, filter repositories.ScoreFilter) ([]*models.Score, error) {
	var result []*models.Score
	for _, s := range r.scores {
		if filter.EventID != nil && s.EventID != *filter.EventID {
			continue
		}
		if filter.TeamID != nil && s.TeamID != *filter.TeamID {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (r *fakeScoreRepo) TotalsByEvent(_ context.Context, eventID int) ([]models.TeamTotal, error) {
	totals := make(map[int]*models.TeamTotal)
	for _, s := range r.scores {
		if s.EventID != eventID {
			continue
		}
		t, ok := totals[s.TeamID]
		if !ok {
			t = &models.TeamTotal{TeamID: s.TeamID}
			totals[s.TeamID] = t
		}
		t.Total += s.Total
		t.Scores++
	}
	result := make([]models.TeamTotal, 0, len(totals))
	for _, t := range totals {
		result = append(result, *t)
	}
	return result, nil
}

type fakeTeamRepo struct {
	teams   map[int]*models.Team
	members []*models.TeamMember
	nextID  int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]*models.Team), nextID: 1}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	team.ID = r.nextID
	r.nextID++
	team.CreatedAt = time.Now()
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (r *fakeTeamRepo) List(_ context.Context, filter repositories.ListTeamsFilter) ([]*models.Team, error) {
	var result []*models.Team
	for _, team := range r.teams {
		if filter.EventID != nil && team.EventID != *filter.EventID {
			continue
		}
		if filter.MemberID != nil && !r.hasMember(team.ID, *filter.MemberID) {
			continue
		}
		result = append(result, team)
	}
	return result, nil
}

func (r *fakeTeamRepo) AddMember(_ context.Context, member *models.TeamMember) error {
	if _, ok := r.teams[member.TeamID]; !ok {
		return repositories.ErrTeamMemberTeamInvalid
	}
	if r.hasMember(member.TeamID, member.UserID) {
		return repositories.ErrTeamMemberConflict
	}
	member.ID = len(r.members) + 1
	member.CreatedAt = time.Now()
	r.members = append(r.members, member)
	return nil
}

func (r *fakeTeamRepo) ListMembers(_ context.Context, teamID int) ([]models.TeamMember, error) {
	var result []models.TeamMember
	for _, m := range r.members {
		if m.TeamID == teamID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *fakeTeamRepo) hasMember(teamID, userID int) bool {
	for _, m := range r.members {
		if m.TeamID == teamID && m.UserID == userID {
			return true
		}
	}
	return false
}
