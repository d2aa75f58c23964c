package support

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrBadPayload     = errors.New("bad payload")
	ErrFieldsRequired = errors.New("all fields are required")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrInvalidName    = errors.New("invalid name")
)

const messageSchema = `{
  "type": "object",
  "properties": {
    "name":    {"type": "string", "maxLength": 200},
    "email":   {"type": "string", "maxLength": 320},
    "message": {"type": "string", "maxLength": 5000}
  },
  "additionalProperties": false
}`

var schema = mustSchema(messageSchema)

func mustSchema(s string) *gojsonschema.Schema {
	sc, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("support schema: %v", err))
	}
	return sc
}

type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SchemaError lists every schema violation of a payload.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "support payload: " + strings.Join(e.Violations, "; ")
}

func (e *SchemaError) Unwrap() error { return ErrBadPayload }

// ParseMessage checks raw JSON against the form schema, then trims every
// field and applies the content rules.
func ParseMessage(raw []byte) (Message, error) {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if !res.Valid() {
		se := &SchemaError{}
		for _, d := range res.Errors() {
			se.Violations = append(se.Violations, d.String())
		}
		return Message{}, se
	}

	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(normalizeNewlines(m.Message))

	if m.Name == "" || m.Email == "" || m.Message == "" {
		return Message{}, ErrFieldsRequired
	}
	if strings.IndexFunc(m.Name, unicode.IsControl) >= 0 {
		return Message{}, ErrInvalidName
	}

	addr, err := parseEmail(m.Email)
	if err != nil {
		return Message{}, err
	}
	m.Email = addr
	return m, nil
}

// parseEmail accepts a single bare address and returns it. Anything that
// could end up as extra header lines is rejected.
func parseEmail(s string) (string, error) {
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return "", ErrInvalidEmail
	}
	a, err := mail.ParseAddress(s)
	if err != nil || a.Name != "" || a.Address != s {
		return "", ErrInvalidEmail
	}
	if _, domain, _ := strings.Cut(a.Address, "@"); !strings.Contains(domain, ".") {
		return "", ErrInvalidEmail
	}
	return a.Address, nil
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeNewlines(s string) string {
	return newlines.Replace(s)
}

// Mail is a rendered support message ready for a Sender.
type Mail struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Body    string
}

func Compose(m Message, from, to string) Mail {
	var b strings.Builder
	b.WriteString("Новое сообщение с формы поддержки Steam Shop\n\n")
	fmt.Fprintf(&b, "Имя отправителя: %s\n", m.Name)
	fmt.Fprintf(&b, "Email отправителя: %s\n\n", m.Email)
	b.WriteString("Сообщение:\n")
	b.WriteString(m.Message)
	b.WriteString("\n\n---\nОтправлено через форму обратной связи Steam Shop\n")

	return Mail{
		From:    from,
		To:      to,
		ReplyTo: m.Email,
		Subject: fmt.Sprintf("Сообщение от %s — Steam Shop Support", m.Name),
		Body:    b.String(),
	}
}
