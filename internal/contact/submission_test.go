package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() Submission {
	return Submission{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Collaboration",
		Message: "I would like to talk about engines.",
	}
}

func TestParseSubmission(t *testing.T) {
	t.Parallel()

	t.Run("normalizes fields", func(t *testing.T) {
		t.Parallel()

		sub, err := ParseSubmission([]byte(`{
			"name": "  Ada  ",
			"email": " Ada@Example.COM ",
			"subject": "\tHi\n",
			"message": "  Cafe\u0301 is great, really.  "
		}`))
		require.NoError(t, err)
		assert.Equal(t, "Ada", sub.Name)
		assert.Equal(t, "ada@example.com", sub.Email)
		assert.Equal(t, "Hi", sub.Subject)
		assert.Equal(t, "Cafe\u0301 is great, really.", sub.Message, "only trimmed, not recomposed")
	})

	t.Run("whitespace email fails format check", func(t *testing.T) {
		t.Parallel()

		sub, err := ParseSubmission([]byte(`{"name":"Ada","email":"   ","subject":"Hi","message":"long enough message"}`))
		require.NoError(t, err)
		assert.Empty(t, sub.Email)
		assert.Equal(t, msgEmailInvalid, validationMessage(sub.Validate()))
	})

	t.Run("empty email is required", func(t *testing.T) {
		t.Parallel()

		sub, err := ParseSubmission([]byte(`{"name":"Ada","email":"","subject":"Hi","message":"long enough message"}`))
		require.NoError(t, err)
		assert.Equal(t, msgEmailRequired, validationMessage(sub.Validate()))
	})

	t.Run("whitespace name is required", func(t *testing.T) {
		t.Parallel()

		sub, err := ParseSubmission([]byte(`{"name":" \n ","email":"a@b.co","subject":"Hi","message":"long enough message"}`))
		require.NoError(t, err)
		assert.Equal(t, msgNameRequired, validationMessage(sub.Validate()))
	})

	t.Run("wrong types count as missing", func(t *testing.T) {
		t.Parallel()

		sub, err := ParseSubmission([]byte(`{"name": 42, "email": ["a@b.co"], "subject": null, "message": {"x": 1}}`))
		require.NoError(t, err)
		assert.Equal(t, Submission{}, sub)
		assert.Equal(t, msgNameRequired, validationMessage(sub.Validate()))
	})

	for name, body := range map[string]string{
		"array":   `[1,2]`,
		"string":  `"hello"`,
		"null":    `null`,
		"garbage": `{"name":`,
		"empty":   ``,
	} {
		t.Run("rejects "+name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseSubmission([]byte(body))
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, msgInvalidBody, validationMessage(err))
		})
	}
}

func TestSubmission_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		mutate func(*Submission)
		name   string
		want   string
	}{
		{name: "valid", mutate: func(*Submission) {}},
		{name: "name missing", mutate: func(s *Submission) { s.Name = "" }, want: msgNameRequired},
		{name: "name at limit", mutate: func(s *Submission) { s.Name = strings.Repeat("n", 100) }},
		{name: "name too long", mutate: func(s *Submission) { s.Name = strings.Repeat("n", 101) }, want: msgNameTooLong},
		{name: "name counts code units", mutate: func(s *Submission) { s.Name = strings.Repeat("é", 100) }},
		{name: "name emoji at limit", mutate: func(s *Submission) { s.Name = strings.Repeat("😀", 50) }},
		{name: "name emoji over limit", mutate: func(s *Submission) { s.Name = strings.Repeat("😀", 60) }, want: msgNameTooLong},
		{name: "message emoji too short", mutate: func(s *Submission) { s.Message = strings.Repeat("😀", 4) }, want: msgMessageTooShort},
		{name: "email missing", mutate: func(s *Submission) { s.Email = "" }, want: msgEmailRequired},
		{name: "email without at", mutate: func(s *Submission) { s.Email = "ada.example.com" }, want: msgEmailInvalid},
		{name: "email without dot", mutate: func(s *Submission) { s.Email = "ada@example" }, want: msgEmailInvalid},
		{name: "email with space", mutate: func(s *Submission) { s.Email = "a da@example.com" }, want: msgEmailInvalid},
		{
			name:   "email too long",
			mutate: func(s *Submission) { s.Email = strings.Repeat("a", 250) + "@ex.com" },
			want:   msgEmailTooLong,
		},
		{name: "subject missing", mutate: func(s *Submission) { s.Subject = "" }, want: msgSubjectRequired},
		{name: "subject too long", mutate: func(s *Submission) { s.Subject = strings.Repeat("s", 201) }, want: msgSubjectTooLong},
		{name: "message too short", mutate: func(s *Submission) { s.Message = "too short" }, want: msgMessageTooShort},
		{name: "message at minimum", mutate: func(s *Submission) { s.Message = "ten chars!" }},
		{name: "message too long", mutate: func(s *Submission) { s.Message = strings.Repeat("m", 2001) }, want: msgMessageTooLong},
		{
			name:   "first violation wins",
			mutate: func(s *Submission) { s.Name = ""; s.Email = "bad"; s.Message = "" },
			want:   msgNameRequired,
		},
		{
			name:   "format checked before length",
			mutate: func(s *Submission) { s.Email = strings.Repeat("a", 300) },
			want:   msgEmailInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sub := validSubmission()
			tc.mutate(&sub)
			err := sub.Validate()

			if tc.want == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tc.want, validationMessage(err))
		})
	}
}
