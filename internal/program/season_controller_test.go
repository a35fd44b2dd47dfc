package program

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/config"
	"github.com/jdmarsh-dev/fieldhouse/internal/common"
)

// fakeProgramRepo is an in-memory ProgramRepository for handler tests.
type fakeProgramRepo struct {
	programs     map[uint]*Program
	seasons      map[uint]*Season
	nextID       uint
	seasonWrites int
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{
		programs: make(map[uint]*Program),
		seasons:  make(map[uint]*Season),
		nextID:   1,
	}
}

func (f *fakeProgramRepo) addProgram(schoolID uint, name, gender string) *Program {
	p := &Program{SchoolID: schoolID, Name: name, Gender: gender}
	p.ID = f.nextID
	f.nextID++
	f.programs[p.ID] = p
	return p
}

func (f *fakeProgramRepo) CreateProgram(p *Program) error {
	for _, existing := range f.programs {
		if existing.SchoolID == p.SchoolID && existing.Name == p.Name && existing.Gender == p.Gender {
			return gorm.ErrDuplicatedKey
		}
	}
	p.ID = f.nextID
	f.nextID++
	f.programs[p.ID] = p
	return nil
}

func (f *fakeProgramRepo) CreateProgramWithSeason(p *Program, s *Season) error {
	if err := f.CreateProgram(p); err != nil {
		return err
	}
	s.ProgramID = p.ID
	return f.CreateSeason(s)
}

func (f *fakeProgramRepo) GetProgramByID(id uint) (*Program, error) {
	return f.programs[id], nil
}

func (f *fakeProgramRepo) FindProgramByNameAndGender(schoolID uint, name, gender string) (*Program, error) {
	for _, p := range f.programs {
		if p.SchoolID == schoolID && p.Name == name && p.Gender == gender {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProgramRepo) GetProgramsBySchool(schoolID uint) ([]Program, error) {
	var out []Program
	for _, p := range f.programs {
		if p.SchoolID == schoolID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProgramRepo) UpdateProgram(p *Program) error {
	f.programs[p.ID] = p
	return nil
}

func (f *fakeProgramRepo) DeleteProgramWithSeasons(id uint) error {
	for sid, s := range f.seasons {
		if s.ProgramID == id {
			delete(f.seasons, sid)
		}
	}
	delete(f.programs, id)
	return nil
}

func (f *fakeProgramRepo) CreateSeason(s *Season) error {
	for _, existing := range f.seasons {
		if existing.ProgramID == s.ProgramID && existing.Year == s.Year {
			return gorm.ErrDuplicatedKey
		}
	}
	s.ID = f.nextID
	f.nextID++
	copied := *s
	f.seasons[s.ID] = &copied
	return nil
}

func (f *fakeProgramRepo) GetSeasonByID(id uint) (*Season, error) {
	s, ok := f.seasons[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeProgramRepo) GetSeasonsByProgram(programID uint) ([]Season, error) {
	var out []Season
	for _, s := range f.seasons {
		if s.ProgramID == programID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

func (f *fakeProgramRepo) GetLatestSeason(programID uint) (*Season, error) {
	seasons, _ := f.GetSeasonsByProgram(programID)
	if len(seasons) == 0 {
		return nil, nil
	}
	return &seasons[0], nil
}

func (f *fakeProgramRepo) GetSeasonByProgramAndYear(programID uint, year int) (*Season, error) {
	for _, s := range f.seasons {
		if s.ProgramID == programID && s.Year == year {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeProgramRepo) UpdateSeason(s *Season) error {
	f.seasonWrites++
	copied := *s
	f.seasons[s.ID] = &copied
	return nil
}

func (f *fakeProgramRepo) DeleteSeason(id uint) error {
	delete(f.seasons, id)
	return nil
}

// --- test plumbing ---

func superAdmin() *common.AdminIdentity {
	return &common.AdminIdentity{ID: "user_super", Role: common.RoleSuperAdmin}
}

func schoolAdmin(schoolID uint) *common.AdminIdentity {
	return &common.AdminIdentity{ID: "user_school", Role: common.RoleSchoolAdmin, SchoolID: &schoolID}
}

func newTestRequest(t *testing.T, ident *common.AdminIdentity, body interface{}, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/", &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if ident != nil {
		c.Set(common.ContextAdminKey, ident)
	}
	return c, w
}

func param(key string, value interface{}) gin.Param {
	return gin.Param{Key: key, Value: fmt.Sprint(value)}
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

// --- tests ---

func TestBootstrapSeason_CreatesCurrentYearWhenNoneExist(t *testing.T) {
	repo := newFakeProgramRepo()
	p := repo.addProgram(1, "Basketball", GenderBoys)
	pc := NewProgramController(repo, &config.Config{})

	c, w := newTestRequest(t, superAdmin(), nil, param("program_id", p.ID))
	pc.BootstrapSeason(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["created"])
	require.Len(t, repo.seasons, 1)
}

func TestBootstrapSeason_IdempotentWhenSeasonExists(t *testing.T) {
	repo := newFakeProgramRepo()
	p := repo.addProgram(1, "Basketball", GenderBoys)
	require.NoError(t, repo.CreateSeason(&Season{ProgramID: p.ID, Year: 2024}))
	pc := NewProgramController(repo, &config.Config{})

	c, w := newTestRequest(t, superAdmin(), nil, param("program_id", p.ID))
	pc.BootstrapSeason(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, false, data["created"])
	assert.Len(t, repo.seasons, 1)
}

func TestUpsertSeason_InsertThenDuplicateYearConflicts(t *testing.T) {
	repo := newFakeProgramRepo()
	p := repo.addProgram(1, "Basketball", GenderBoys)
	pc := NewProgramController(repo, &config.Config{})

	body := SeasonUpsertRequest{Year: 2024, Record: "12-4"}
	c, w := newTestRequest(t, superAdmin(), body, param("program_id", p.ID))
	pc.UpsertSeason(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = newTestRequest(t, superAdmin(), body, param("program_id", p.ID))
	pc.UpsertSeason(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, repo.seasons, 1)
}

func TestUpsertSeason_UpdateRejectsSeasonFromOtherProgram(t *testing.T) {
	repo := newFakeProgramRepo()
	p1 := repo.addProgram(1, "Basketball", GenderBoys)
	p2 := repo.addProgram(1, "Soccer", GenderGirls)
	s := &Season{ProgramID: p2.ID, Year: 2024}
	require.NoError(t, repo.CreateSeason(s))
	pc := NewProgramController(repo, &config.Config{})

	body := SeasonUpsertRequest{ID: &s.ID, Year: 2024}
	c, w := newTestRequest(t, superAdmin(), body, param("program_id", p1.ID))
	pc.UpsertSeason(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpsertSeason_LegacyAchievementsText(t *testing.T) {
	repo := newFakeProgramRepo()
	p := repo.addProgram(1, "Basketball", GenderBoys)
	pc := NewProgramController(repo, &config.Config{})

	body := SeasonUpsertRequest{Year: 2024, AchievementsRaw: "State Champions\nRegion Champions"}
	c, w := newTestRequest(t, superAdmin(), body, param("program_id", p.ID))
	pc.UpsertSeason(c)

	require.Equal(t, http.StatusCreated, w.Code)
	for _, s := range repo.seasons {
		assert.Equal(t, []string{"State Champions", "Region Champions"}, []string(s.Achievements))
	}
}

func TestAddPlayer_EmptyNameIsNoop(t *testing.T) {
	repo := newFakeProgramRepo()
	p := repo.addProgram(1, "Basketball", GenderBoys)
	s := &Season{ProgramID: p.ID, Year: 2024, Roster: PlayerList{{ID: "a1", Name: "John Smith"}}}
	require.NoError(t, repo.CreateSeason(s))
	pc := NewProgramController(repo, &config.Config{})

	c, w := newTestRequest(t, superAdmin(), PlayerInput{Name: "   "}, param("season_id", s.ID))
	pc.AddPlayer(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, repo.seasonWrites)
	require.Len(t, repo.seasons[s.ID].Roster, 1)
}

func TestAddPlayer_AppendsWithGeneratedID(t *testing.T) {
	repo := newFakeProgramRepo()
	p := repo.addProgram(1, "Basketball", GenderBoys)
	s := &Season{ProgramID: p.ID, Year: 2024}
	require.NoError(t, repo.CreateSeason(s))
	pc := NewProgramController(repo, &config.Config{})

	c, w := newTestRequest(t, superAdmin(), PlayerInput{Name: "Mike Jones", Position: "WR"}, param("season_id", s.ID))
	pc.AddPlayer(c)

	require.Equal(t, http.StatusOK, w.Code)
	roster := repo.seasons[s.ID].Roster
	require.Len(t, roster, 1)
	assert.Equal(t, "Mike Jones", roster[0].Name)
	assert.NotEmpty(t, roster[0].ID)
}

func TestUpdatePlayer_EmptyNameRejected(t *testing.T) {
	repo := newFakeProgramRepo()
	p := repo.addProgram(1, "Basketball", GenderBoys)
	s := &Season{ProgramID: p.ID, Year: 2024, Roster: PlayerList{{ID: "a1", Name: "John Smith"}}}
	require.NoError(t, repo.CreateSeason(s))
	pc := NewProgramController(repo, &config.Config{})

	c, w := newTestRequest(t, superAdmin(), PlayerInput{Name: ""},
		param("season_id", s.ID), gin.Param{Key: "player_id", Value: "a1"})
	pc.UpdatePlayer(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "John Smith", repo.seasons[s.ID].Roster[0].Name)
}

func TestRemovePlayer_UnknownIDNotFound(t *testing.T) {
	repo := newFakeProgramRepo()
	p := repo.addProgram(1, "Basketball", GenderBoys)
	s := &Season{ProgramID: p.ID, Year: 2024, Roster: PlayerList{{ID: "a1", Name: "John Smith"}}}
	require.NoError(t, repo.CreateSeason(s))
	pc := NewProgramController(repo, &config.Config{})

	c, w := newTestRequest(t, superAdmin(), nil,
		param("season_id", s.ID), gin.Param{Key: "player_id", Value: "nope"})
	pc.RemovePlayer(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, repo.seasons[s.ID].Roster, 1)
}

func TestBulkImportRoster_AppendsParsedEntries(t *testing.T) {
	repo := newFakeProgramRepo()
	p := repo.addProgram(1, "Basketball", GenderBoys)
	s := &Season{ProgramID: p.ID, Year: 2024, Roster: PlayerList{{ID: "a1", Name: "Existing Player"}}}
	require.NoError(t, repo.CreateSeason(s))
	pc := NewProgramController(repo, &config.Config{})

	body := BulkImportRequest{Text: "name,pos\nJohn Smith,QB,12,7\nMike Jones,WR,11,81"}
	c, w := newTestRequest(t, superAdmin(), body, param("season_id", s.ID))
	pc.BulkImportRoster(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(2), data["imported"])
	assert.Len(t, repo.seasons[s.ID].Roster, 3)
}

func TestBulkImportRoster_NoInputRejected(t *testing.T) {
	repo := newFakeProgramRepo()
	p := repo.addProgram(1, "Basketball", GenderBoys)
	s := &Season{ProgramID: p.ID, Year: 2024}
	require.NoError(t, repo.CreateSeason(s))
	pc := NewProgramController(repo, &config.Config{})

	c, w := newTestRequest(t, superAdmin(), BulkImportRequest{Text: "  "}, param("season_id", s.ID))
	pc.BulkImportRoster(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeasonAccess_OtherSchoolForbidden(t *testing.T) {
	repo := newFakeProgramRepo()
	p := repo.addProgram(1, "Basketball", GenderBoys)
	s := &Season{ProgramID: p.ID, Year: 2024}
	require.NoError(t, repo.CreateSeason(s))
	pc := NewProgramController(repo, &config.Config{})

	c, w := newTestRequest(t, schoolAdmin(2), PlayerInput{Name: "Mike Jones"}, param("season_id", s.ID))
	pc.AddPlayer(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
