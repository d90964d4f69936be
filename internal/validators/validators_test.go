package validators

import (
	"strings"
	"testing"

	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateSignup(t *testing.T) {
	v := New(DefaultPasswordPolicy())

	tests := []struct {
		name     string
		req      models.SignupRequest
		wantRule Rule
	}{
		{
			name: "valid",
			req:  models.SignupRequest{Username: "alice", Email: "alice@x.com", Password: "Abc12!@"},
		},
		{
			name: "valid with matching confirmation",
			req:  models.SignupRequest{Username: "alice", Email: "alice@x.com", Password: "Abc12!@", ConfirmPassword: "Abc12!@"},
		},
		{
			name:     "missing email",
			req:      models.SignupRequest{Username: "al", Password: "Abc12!@"},
			wantRule: RuleRequired,
		},
		{
			name:     "missing password",
			req:      models.SignupRequest{Username: "alice", Email: "alice@x.com"},
			wantRule: RuleRequired,
		},
		{
			name:     "short username",
			req:      models.SignupRequest{Username: "al", Email: "alice@x.com", Password: "Abc12!@"},
			wantRule: RuleUsernameTooShort,
		},
		{
			name:     "bad email",
			req:      models.SignupRequest{Username: "alice", Email: "alice@x", Password: "Abc12!@"},
			wantRule: RuleInvalidEmail,
		},
		{
			name:     "email with spaces",
			req:      models.SignupRequest{Username: "alice", Email: "al ice@x.com", Password: "Abc12!@"},
			wantRule: RuleInvalidEmail,
		},
		{
			name:     "password without uppercase",
			req:      models.SignupRequest{Username: "alice", Email: "alice@x.com", Password: "abc12!@"},
			wantRule: RuleWeakPassword,
		},
		{
			name:     "password with one symbol",
			req:      models.SignupRequest{Username: "alice", Email: "alice@x.com", Password: "Abc123!"},
			wantRule: RuleWeakPassword,
		},
		{
			name:     "password too short",
			req:      models.SignupRequest{Username: "alice", Email: "alice@x.com", Password: "A!@"},
			wantRule: RuleWeakPassword,
		},
		{
			name:     "confirmation mismatch",
			req:      models.SignupRequest{Username: "alice", Email: "alice@x.com", Password: "Abc12!@", ConfirmPassword: "Abc12!#"},
			wantRule: RulePasswordMismatch,
		},
		{
			name:     "username longer than column",
			req:      models.SignupRequest{Username: strings.Repeat("a", 51), Email: "alice@x.com", Password: "Abc12!@"},
			wantRule: RuleUsernameTooLong,
		},
		{
			name: "username at column limit",
			req:  models.SignupRequest{Username: strings.Repeat("a", 50), Email: "alice@x.com", Password: "Abc12!@"},
		},
		{
			name:     "email longer than column",
			req:      models.SignupRequest{Username: "alice", Email: strings.Repeat("a", 250) + "@x.com", Password: "Abc12!@"},
			wantRule: RuleEmailTooLong,
		},
		{
			name:     "username checked before email",
			req:      models.SignupRequest{Username: "al", Email: "nope", Password: "weak"},
			wantRule: RuleUsernameTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSignup(tt.req)
			if tt.wantRule == "" {
				assert.NoError(t, err)
				return
			}
			var ruleErr *RuleError
			require.ErrorAs(t, err, &ruleErr)
			assert.Equal(t, tt.wantRule, ruleErr.Rule)
			assert.NotEmpty(t, ruleErr.Message)
			assert.True(t, IsRuleError(err))
		})
	}
}

func TestValidator_ValidateSignup_IsDeterministic(t *testing.T) {
	v := New(DefaultPasswordPolicy())
	req := models.SignupRequest{Username: "alice", Email: "bad", Password: "Abc12!@"}

	first := v.ValidateSignup(req)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, v.ValidateSignup(req))
	}
}

func TestPasswordPolicy_Allows(t *testing.T) {
	strict := PasswordPolicy{MinLength: 8, RequireUppercase: true, MinSymbols: 2, Symbols: DefaultPasswordSymbols}

	assert.False(t, strict.Allows("Abc12!@"))
	assert.True(t, strict.Allows("Abcd12!@"))
	assert.True(t, strict.Allows("A!b@cdef"))
	assert.False(t, strict.Allows("abcd12!@"))
	assert.Contains(t, strict.Describe(), "at least 8 characters")

	relaxed := PasswordPolicy{MinLength: 6}
	assert.True(t, relaxed.Allows("abcdef"))
}

func TestValidator_SingleFields(t *testing.T) {
	v := New(DefaultPasswordPolicy())

	assert.NoError(t, v.ValidateUsername("bob"))
	assert.Error(t, v.ValidateUsername("bo"))

	assert.NoError(t, v.ValidateEmail("bob@example.com"))
	assert.Error(t, v.ValidateEmail("bob@example"))

	assert.NoError(t, v.ValidatePassword("Secret!!"))
	assert.Error(t, v.ValidatePassword("secret"))

	assert.NoError(t, v.ValidateNoteTitle(""))
	assert.NoError(t, v.ValidateNoteTitle(string(make([]byte, 60))))

	err := v.ValidateNoteTitle("ééééééééééééééééééééééééééééééééééééééééééééééééééééééééééééé")
	var ruleErr *RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, RuleTitleTooLong, ruleErr.Rule)
}

func TestValidator_SingleFields_ColumnLimits(t *testing.T) {
	v := New(DefaultPasswordPolicy())

	var ruleErr *RuleError
	require.ErrorAs(t, v.ValidateUsername(strings.Repeat("b", 51)), &ruleErr)
	assert.Equal(t, RuleUsernameTooLong, ruleErr.Rule)
	assert.Equal(t, "Username cannot be more than 50 characters", ruleErr.Message)

	require.ErrorAs(t, v.ValidateUsername("bo"), &ruleErr)
	assert.Equal(t, RuleUsernameTooShort, ruleErr.Rule)

	require.ErrorAs(t, v.ValidateEmail(strings.Repeat("b", 250)+"@x.com"), &ruleErr)
	assert.Equal(t, RuleEmailTooLong, ruleErr.Rule)
	assert.Equal(t, "Email cannot be more than 255 characters", ruleErr.Message)

	require.ErrorAs(t, v.ValidateEmail("bob@example"), &ruleErr)
	assert.Equal(t, RuleInvalidEmail, ruleErr.Rule)
}
