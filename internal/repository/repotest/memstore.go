// Package repotest provides an in-memory store for tests above the
// repository layer.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

// MemStore is an in-memory implementation of the repository methods the
// services consume. It returns the same outcome kinds as the PostgreSQL
// repository and counts calls so tests can assert that rejected requests
// never reach storage.
type MemStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*model.User
	skills   map[int64]*model.Skill
	skillTag map[int64][]int64
	comments map[int64]*model.Comment
	tags     map[int64]*model.Tag

	calls  int
	writes int
	fail   error
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		users:    make(map[int64]*model.User),
		skills:   make(map[int64]*model.Skill),
		skillTag: make(map[int64][]int64),
		comments: make(map[int64]*model.Comment),
		tags:     make(map[int64]*model.Tag),
	}
}

func (m *MemStore) touch(write bool) error {
	m.calls++
	if write {
		m.writes++
	}
	return m.fail
}

func (m *MemStore) id() int64 {
	m.nextID++
	return m.nextID
}

// CallCount returns the number of store calls since the last reset.
func (m *MemStore) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// WriteCount returns the number of mutating calls since the last reset.
func (m *MemStore) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// ---- users ----

func (m *MemStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(true); err != nil {
		return err
	}
	for _, u := range m.users {
		if u.Email == user.Email || u.Name == user.Name {
			return repository.ErrUniqueViolation
		}
	}
	user.ID = m.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MemStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(false); err != nil {
		return nil, err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return m.findUser(func(u *model.User) bool { return u.Email == email })
}

func (m *MemStore) GetUserByName(_ context.Context, name string) (*model.User, error) {
	return m.findUser(func(u *model.User) bool { return u.Name == name })
}

func (m *MemStore) findUser(match func(*model.User) bool) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(false); err != nil {
		return nil, err
	}
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ---- skills ----

func (m *MemStore) CreateSkill(_ context.Context, skill *model.Skill, tagIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(true); err != nil {
		return err
	}
	if _, ok := m.users[skill.OwnerID]; !ok {
		return repository.ErrRelatedMissing
	}
	for _, id := range tagIDs {
		if _, ok := m.tags[id]; !ok {
			return repository.ErrRelatedMissing
		}
	}
	skill.ID = m.id()
	skill.CreatedAt = time.Now()
	skill.UpdatedAt = skill.CreatedAt
	cp := *skill
	m.skills[skill.ID] = &cp
	m.skillTag[skill.ID] = append([]int64(nil), tagIDs...)
	return nil
}

func (m *MemStore) GetSkillByID(_ context.Context, id int64) (*model.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(false); err != nil {
		return nil, err
	}
	s, ok := m.skills[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m.hydrateSkill(s), nil
}

func (m *MemStore) hydrateSkill(s *model.Skill) *model.Skill {
	cp := *s
	if u, ok := m.users[s.OwnerID]; ok {
		cp.Owner = model.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	cp.Tags = []model.Tag{}
	for _, id := range m.skillTag[s.ID] {
		if t, ok := m.tags[id]; ok {
			cp.Tags = append(cp.Tags, *t)
		}
	}
	cp.CommentCount = 0
	for _, c := range m.comments {
		if c.SkillID == s.ID {
			cp.CommentCount++
		}
	}
	return &cp
}

func (m *MemStore) ListSkills(_ context.Context, filter repository.SkillFilter) ([]*model.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(false); err != nil {
		return nil, err
	}
	out := []*model.Skill{}
	for _, s := range m.skills {
		if filter.Type != nil && s.Type != *filter.Type {
			continue
		}
		if filter.OwnerID != nil && s.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Completed != nil && s.Completed != *filter.Completed {
			continue
		}
		if filter.Search != "" && !matchesSearch(s, filter.Search) {
			continue
		}
		if len(filter.TagIDs) > 0 && !m.hasAnyTag(s.ID, filter.TagIDs) {
			continue
		}
		out = append(out, m.hydrateSkill(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MemStore) UpdateSkill(_ context.Context, id int64, patch model.SkillPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(true); err != nil {
		return err
	}
	s, ok := m.skills[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.TagIDs != nil {
		for _, tid := range *patch.TagIDs {
			if _, ok := m.tags[tid]; !ok {
				return repository.ErrRelatedMissing
			}
		}
		m.skillTag[id] = append([]int64(nil), (*patch.TagIDs)...)
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.Type != nil {
		s.Type = *patch.Type
	}
	if patch.Completed != nil {
		s.Completed = *patch.Completed
	}
	s.UpdatedAt = time.Now()
	return nil
}

func (m *MemStore) DeleteSkill(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(true); err != nil {
		return err
	}
	if _, ok := m.skills[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.skills, id)
	delete(m.skillTag, id)
	for cid, c := range m.comments {
		if c.SkillID == id {
			delete(m.comments, cid)
		}
	}
	return nil
}

func (m *MemStore) CountSkills(_ context.Context, skillType model.SkillType, openOnly bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(false); err != nil {
		return 0, err
	}
	var n int64
	for _, s := range m.skills {
		if s.Type == skillType && (!openOnly || !s.Completed) {
			n++
		}
	}
	return n, nil
}

func matchesSearch(s *model.Skill, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.Title), term) ||
		strings.Contains(strings.ToLower(s.Description), term)
}

func (m *MemStore) hasAnyTag(skillID int64, tagIDs []int64) bool {
	for _, have := range m.skillTag[skillID] {
		for _, want := range tagIDs {
			if have == want {
				return true
			}
		}
	}
	return false
}

// ---- comments ----

func (m *MemStore) CreateComment(_ context.Context, comment *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(true); err != nil {
		return err
	}
	if _, ok := m.skills[comment.SkillID]; !ok {
		return repository.ErrRelatedMissing
	}
	comment.ID = m.id()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	cp := *comment
	m.comments[comment.ID] = &cp
	return nil
}

func (m *MemStore) GetCommentByID(_ context.Context, id int64) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(false); err != nil {
		return nil, err
	}
	c, ok := m.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	if s, ok := m.skills[c.SkillID]; ok {
		cp.Skill = model.SkillSummary{ID: s.ID, Title: s.Title}
	}
	return &cp, nil
}

func (m *MemStore) ListComments(_ context.Context, filter repository.CommentFilter) ([]*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(false); err != nil {
		return nil, err
	}
	out := []*model.Comment{}
	for _, c := range m.comments {
		if filter.SkillID != nil && c.SkillID != *filter.SkillID {
			continue
		}
		if filter.OwnerID != nil && c.OwnerID != *filter.OwnerID {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) UpdateComment(_ context.Context, id int64, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(true); err != nil {
		return err
	}
	c, ok := m.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Message = message
	return nil
}

func (m *MemStore) DeleteComment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(true); err != nil {
		return err
	}
	if _, ok := m.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

// ---- tags ----

func (m *MemStore) CreateTag(_ context.Context, tag *model.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(true); err != nil {
		return err
	}
	for _, t := range m.tags {
		if t.Title == tag.Title {
			return repository.ErrUniqueViolation
		}
	}
	tag.ID = m.id()
	tag.CreatedAt = time.Now()
	cp := *tag
	m.tags[tag.ID] = &cp
	return nil
}

func (m *MemStore) GetTagByID(_ context.Context, id int64) (*model.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(false); err != nil {
		return nil, err
	}
	t, ok := m.tags[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemStore) GetTagByTitle(_ context.Context, title string) (*model.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(false); err != nil {
		return nil, err
	}
	for _, t := range m.tags {
		if t.Title == title {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MemStore) ListTags(_ context.Context) ([]*model.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(false); err != nil {
		return nil, err
	}
	out := []*model.Tag{}
	for _, t := range m.tags {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *MemStore) UpdateTag(_ context.Context, id int64, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(true); err != nil {
		return err
	}
	t, ok := m.tags[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, other := range m.tags {
		if other.ID != id && other.Title == title {
			return repository.ErrUniqueViolation
		}
	}
	t.Title = title
	return nil
}

func (m *MemStore) DeleteTag(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.touch(true); err != nil {
		return err
	}
	if _, ok := m.tags[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.tags, id)
	return nil
}

// ---- helpers ----

// FailWith makes every following call return err. Pass nil to recover.
func (m *MemStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// AddUser seeds a user named name with email name@example.com.
func (m *MemStore) AddUser(name string) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &model.User{ID: m.id(), Name: name, Email: name + "@example.com"}
	m.users[u.ID] = u
	return u
}

// AddSkill seeds an open skill.
func (m *MemStore) AddSkill(ownerID int64, title string, skillType model.SkillType) *model.Skill {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &model.Skill{ID: m.id(), Title: title, Description: "desc", Type: skillType, OwnerID: ownerID}
	m.skills[s.ID] = s
	return s
}

// AddComment seeds a comment.
func (m *MemStore) AddComment(ownerID, skillID int64, message string) *model.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &model.Comment{ID: m.id(), Message: message, OwnerID: ownerID, SkillID: skillID}
	m.comments[c.ID] = c
	return c
}

// AddTag seeds a tag.
func (m *MemStore) AddTag(title string) *model.Tag {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &model.Tag{ID: m.id(), Title: title}
	m.tags[t.ID] = t
	return t
}

// ResetCalls zeroes the call counters.
func (m *MemStore) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = 0
	m.writes = 0
}
