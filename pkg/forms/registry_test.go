package forms

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap-forms/pkg/validator"
)

func TestBuiltinFormsCompile(t *testing.T) {
	engine := validator.New()
	for _, form := range Builtin() {
		assert.NoError(t, engine.Compile(form), form.Name)
	}
}

func TestNewDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{Login, ProposalCreate, Registration, SkillCreate}, r.Names())

	form, err := r.Get(Registration)
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "full_name", "password1", "password2"}, form.FieldIDs())

	_, err = r.Get("unknown")
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	assert.ErrorIs(t, r.Register(nil), ErrNilForm)
	assert.ErrorIs(t, r.Register(&validator.FormSpec{Name: "Bad Name"}), ErrInvalidName)

	bad := &validator.FormSpec{Name: "bad", Fields: []validator.FieldSpec{{ID: "a", Kind: "date"}}}
	assert.ErrorIs(t, r.Register(bad), validator.ErrInvalidSpec)

	require.NoError(t, r.Register(LoginForm()))
	assert.ErrorIs(t, r.Register(LoginForm()), ErrFormAlreadyExists)

	replaced := LoginForm()
	replaced.PasswordMinLength = 6
	require.NoError(t, r.Replace(replaced))
	got, err := r.Get(Login)
	require.NoError(t, err)
	assert.Equal(t, 6, got.PasswordMinLength)
}

func TestRegistry_IsolatedFromCaller(t *testing.T) {
	r := NewRegistry()
	form := LoginForm()
	require.NoError(t, r.Register(form))

	// 注册后修改原表单
	form.Fields[0].Kind = "date"
	form.Fields = append(form.Fields, validator.FieldSpec{ID: "c", Kind: validator.KindPasswordConfirmation, Match: "missing"})

	got, err := r.Get(Login)
	require.NoError(t, err)
	assert.Equal(t, validator.KindEmail, got.Fields[0].Kind)
	assert.Equal(t, []string{"email", "password"}, got.FieldIDs())
	assert.NoError(t, r.Engine().Compile(got))

	// 修改 Get 的返回值
	got.Fields[0].Required = false
	got.Name = "changed"
	again, err := r.Get(Login)
	require.NoError(t, err)
	assert.True(t, again.Fields[0].Required)
	assert.Equal(t, Login, again.Name)
}

func TestRegistry_OptionsNotShared(t *testing.T) {
	r := NewRegistry()
	form := SkillCreateForm()
	require.NoError(t, r.Register(form))

	level, ok := form.Field("level")
	require.True(t, ok)
	level.Options[0] = "гуру"

	got, err := r.Get(SkillCreate)
	require.NoError(t, err)
	registered, ok := got.Field("level")
	require.True(t, ok)
	assert.Equal(t, SkillLevels, registered.Options)
}

func TestRegistry_Concurrent(t *testing.T) {
	r := MustRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%10 == 0 {
				_ = r.Replace(SkillCreateForm())
				return
			}
			form, err := r.Get(SkillCreate)
			if assert.NoError(t, err) {
				r.Engine().Validate(form, validator.Values{"name": "Go"})
			}
		}(i)
	}
	wg.Wait()
}

func TestCatalog_Scenarios(t *testing.T) {
	engine := validator.New()

	tests := []struct {
		name      string
		form      *validator.FormSpec
		values    validator.Values
		firstFail string
		message   string
	}{
		{
			name:   "登录成功",
			form:   LoginForm(),
			values: validator.Values{"email": "user@example.com", "password": "x"},
		},
		{
			name:      "登录邮箱错误",
			form:      LoginForm(),
			values:    validator.Values{"email": "user@example", "password": "x"},
			firstFail: "email",
			message:   "Введите корректный email адрес",
		},
		{
			name: "注册密码不一致",
			form: RegistrationForm(),
			values: validator.Values{
				"email": "user@example.com", "full_name": "Анна",
				"password1": "secret123", "password2": "secret124",
			},
			firstFail: "password2",
			message:   "Пароли не совпадают",
		},
		{
			name:      "技能名称太短",
			form:      SkillCreateForm(),
			values:    validator.Values{"name": "G", "description": "язык программирования", "level": "средний", "category": "1"},
			firstFail: "name",
			message:   "Название навыка должно содержать минимум 2 символа",
		},
		{
			name:      "技能等级不在选项中",
			form:      SkillCreateForm(),
			values:    validator.Values{"name": "Go", "description": "язык программирования", "level": "гуру", "category": "1"},
			firstFail: "level",
			message:   "Выберите значение из списка",
		},
		{
			name: "提议交换相同技能",
			form: ProposalCreateForm(),
			values: validator.Values{
				"skill_offered": "Python", "skill_wanted": "Python",
				"format": "онлайн", "description": "хочу научиться чему-то новому",
			},
			firstFail: "skill_wanted",
			message:   "Нельзя обменивать навык на самого себя",
		},
		{
			name: "提议不填期限",
			form: ProposalCreateForm(),
			values: validator.Values{
				"skill_offered": "Python", "skill_wanted": "Go",
				"format": "офлайн", "description": "хочу научиться чему-то новому",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.SubmitCheck(tt.form, tt.values)
			assert.Equal(t, tt.firstFail == "", res.AllValid)
			assert.Equal(t, tt.firstFail, res.FirstInvalidField)
			if tt.firstFail != "" {
				assert.Equal(t, tt.message, res.Results[tt.firstFail].Message)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	src := `
forms:
  - name: newsletter
    title: Рассылка
    fields:
      - id: email
        kind: email
        required: true
      - id: topic
        kind: select
        options: [go, python]
`
	specs, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "newsletter", specs[0].Name)
	assert.Equal(t, validator.KindSelect, specs[0].Fields[1].Kind)
	assert.Equal(t, []string{"go", "python"}, specs[0].Fields[1].Options)

	_, err = Decode(strings.NewReader("forms:\n  - name: x\n    unknown: 1\n"))
	assert.Error(t, err)

	specs, err = Decode(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, specs)
}

func TestRegistry_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
forms:
  - name: login
    password_min_length: 6
    fields:
      - {id: email, kind: email, required: true}
      - {id: password, kind: password, required: true}
`), 0o600))

	r := MustRegistry()
	require.NoError(t, r.LoadFile(path))

	login, err := r.Get(Login)
	require.NoError(t, err)
	assert.Equal(t, 6, login.PasswordMinLength)
	res := r.Engine().ValidateField(login, "password", validator.Values{"password": "abc"})
	assert.Equal(t, "Пароль должен содержать минимум 6 символов", res.Message)

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte(`
forms:
  - name: registration
    fields:
      - {id: password2, kind: password_confirmation, match: missing}
`), 0o600))
	err = r.LoadFile(badPath)
	assert.True(t, errors.Is(err, validator.ErrInvalidSpec))

	// 加载失败时原有定义不变
	reg, err := r.Get(Registration)
	require.NoError(t, err)
	assert.Len(t, reg.Fields, 4)

	assert.Error(t, r.LoadFile(filepath.Join(dir, "missing.yaml")))
}

func TestProposalForm_DeadlinesOptional(t *testing.T) {
	form := ProposalCreateForm()
	deadlines, ok := form.Field("deadlines")
	require.True(t, ok)
	assert.False(t, deadlines.Required)

	res := validator.New().SubmitCheck(form, validator.Values{
		"skill_offered": "1",
		"skill_wanted":  "2",
		"format":        "офлайн",
		"description":   "обмен опытом программирования",
	})
	assert.True(t, res.AllValid)
	assert.Equal(t, validator.ValidationResult{Valid: true}, res.Results["deadlines"])
}
