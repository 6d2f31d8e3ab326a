package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap-forms/pkg/validator"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestFormsCmd(t *testing.T) {
	out, err := run(t, "forms")
	require.NoError(t, err)
	assert.Equal(t, "login\nproposal_create\nregistration\nskill_create\n", out)

	out, err = run(t, "forms", "login")
	require.NoError(t, err)
	var form validator.FormSpec
	require.NoError(t, json.Unmarshal([]byte(out), &form))
	assert.Equal(t, []string{"email", "password"}, form.FieldIDs())

	_, err = run(t, "forms", "nope")
	assert.Error(t, err)
}

func TestCheckCmd(t *testing.T) {
	out, err := run(t, "check", "login", "-v", "email=user@example.com", "-v", "password=x")
	require.NoError(t, err)
	assert.Contains(t, out, "all fields valid")

	out, err = run(t, "check", "proposal_create",
		"-v", "skill_offered=Python", "-v", "skill_wanted=Python",
		"-v", "format=онлайн", "-v", "description=обмен опытом программирования")
	assert.True(t, errors.Is(err, errInvalidInput))
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "FAIL  skill_wanted: Нельзя обменивать навык на самого себя")
	assert.Contains(t, out, "focus skill_wanted")

	out, err = run(t, "check", "registration", "--json", "-v", "email=bad")
	assert.ErrorIs(t, err, errInvalidInput)
	var res validator.SubmitResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "email", res.FirstInvalidField)

	_, err = run(t, "check", "login", "-v", "novalue")
	assert.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestCheckCmd_FormsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
forms:
  - name: login
    password_min_length: 6
    fields:
      - {id: email, kind: email, required: true}
      - {id: password, kind: password, required: true}
`), 0o600))

	out, err := run(t, "check", "login", "--forms", path, "-v", "email=a@b.co", "-v", "password=abc")
	assert.ErrorIs(t, err, errInvalidInput)
	assert.Contains(t, out, "Пароль должен содержать минимум 6 символов")
}

func TestParseValues(t *testing.T) {
	values, err := parseValues([]string{"a=1", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, validator.Values{"a": "1", "b": "x=y", "c": ""}, values)

	_, err = parseValues([]string{"=1"})
	assert.Error(t, err)
}
