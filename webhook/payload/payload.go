package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ContentType tags the shape of the envelope's data field
type ContentType string

const (
	TypeBlogPost       ContentType = "blogPost"
	TypeLinkedInPost   ContentType = "linkedInPost"
	TypeInstagramStory ContentType = "instagramStory"
)

// Valid reports whether the content type is one the service knows how to decode
func (c ContentType) Valid() bool {
	switch c {
	case TypeBlogPost, TypeLinkedInPost, TypeInstagramStory:
		return true
	}
	return false
}

func (c ContentType) String() string {
	return string(c)
}

// PublishStatus is what the caller wants done with the content on the target platform
type PublishStatus string

const (
	Publish PublishStatus = "publish"
	Draft   PublishStatus = "draft"
)

func (p PublishStatus) String() string {
	return string(p)
}

// TargetPlatform names where the content goes and how it should land there
type TargetPlatform struct {
	Name          string        `json:"name" validate:"required,max=100"`
	PublishStatus PublishStatus `json:"publishStatus" validate:"required,oneof=publish draft"`
}

/* Envelope is the request body of the publish webhook.
 * Data stays raw until the content type is known, then it is decoded into one Content variant
 */
type Envelope struct {
	IdempotencyKey  string          `json:"idempotencyKey" validate:"required,max=255"`
	ContentType     ContentType     `json:"contentType" validate:"required,oneof=blogPost linkedInPost instagramStory"`
	TargetPlatform  TargetPlatform  `json:"targetPlatform"`
	NotificationURL string          `json:"notificationUrl,omitempty" validate:"omitempty,max=2048,http_url"`
	Data            json.RawMessage `json:"data"`
}

// Submission is a fully validated envelope together with its decoded content
type Submission struct {
	Envelope Envelope
	Content  Content
}

// Parse decodes and validates a raw request body.
// Every violation found is returned inside a *ValidationError.
func Parse(body []byte) (Submission, error) {
	var env Envelope
	typeErrs, err := decodeInto(body, &env, "")
	if err != nil {
		return Submission{}, err
	}
	env.IdempotencyKey = strings.TrimSpace(env.IdempotencyKey)

	verr := &ValidationError{}
	verr.add(typeErrs)
	verr.add(withoutFields(validateStruct(env, ""), typeErrs))

	if isEmptyJSON(env.Data) {
		verr.Errors = append(verr.Errors, FieldError{Field: "data", Message: "is required"})
	}

	var c Content
	if env.ContentType.Valid() && !isEmptyJSON(env.Data) {
		decoded, err := DecodeContent(env.ContentType, env.Data)
		if err != nil {
			var dataErr *ValidationError
			if !errors.As(err, &dataErr) {
				return Submission{}, err
			}
			verr.Errors = append(verr.Errors, dataErr.Errors...)
		}
		c = decoded
	}

	if len(verr.Errors) > 0 {
		return Submission{}, verr
	}

	return Submission{Envelope: env, Content: c}, nil
}

// DecodeContent decodes and validates the data of a given content type
func DecodeContent(ct ContentType, raw json.RawMessage) (Content, error) {
	var (
		c        Content
		typeErrs []FieldError
		err      error
	)
	switch ct {
	case TypeBlogPost:
		var p BlogPost
		typeErrs, err = decodeInto(raw, &p, "data")
		c = p
	case TypeLinkedInPost:
		var p LinkedInPost
		typeErrs, err = decodeInto(raw, &p, "data")
		c = p
	case TypeInstagramStory:
		var p InstagramStory
		typeErrs, err = decodeInto(raw, &p, "data")
		c = p
	default:
		return nil, fmt.Errorf("unsupported content type: %q", ct)
	}
	if err != nil {
		return nil, err
	}

	errs := append(typeErrs, withoutFields(validateStruct(c, "data"), typeErrs)...)
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return c, nil
}

// PeekIdempotencyKey extracts the idempotency key without validating anything else.
// It returns "" when the body is not a JSON object or the key is absent.
func PeekIdempotencyKey(body []byte) string {
	var probe struct {
		IdempotencyKey string `json:"idempotencyKey"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return strings.TrimSpace(probe.IdempotencyKey)
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

/* decodeInto unmarshals raw into dst, a pointer to a struct.
 * A member with the wrong JSON type is reported as one FieldError and left at its zero value,
 * the rest of the object still decodes. Anything else that stops decoding is returned as err.
 */
func decodeInto(raw []byte, dst interface{}, prefix string) ([]FieldError, error) {
	err := json.Unmarshal(raw, dst)
	if err == nil {
		return nil, nil
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return nil, decodeError(err, prefix)
	}

	errs := typeErrors(raw, reflect.TypeOf(dst).Elem(), prefix)
	if len(errs) == 0 {
		errs = []FieldError{typeFieldError(joinPath(prefix, typeErr.Field), typeErr)}
	}
	return errs, nil
}

// typeErrors decodes every member of a JSON object on its own so each wrongly typed one is found
func typeErrors(raw []byte, t reflect.Type, prefix string) []FieldError {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil
	}

	var out []FieldError
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		value, ok := members[name]
		if name == "" || name == "-" || !ok {
			continue
		}
		path := joinPath(prefix, name)

		err := json.Unmarshal(value, reflect.New(f.Type).Interface())
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			continue
		}
		if f.Type.Kind() == reflect.Struct && typeErr.Field != "" {
			out = append(out, typeErrors(value, f.Type, path)...)
			continue
		}
		out = append(out, typeFieldError(joinPath(path, typeErr.Field), typeErr))
	}
	return out
}

func typeFieldError(field string, typeErr *json.UnmarshalTypeError) FieldError {
	return FieldError{
		Field:   field,
		Message: fmt.Sprintf("must be of type %s", jsonKind(typeErr.Type.Kind().String())),
	}
}

// withoutFields drops violations on fields that already failed to decode
func withoutFields(errs, failed []FieldError) []FieldError {
	if len(failed) == 0 {
		return errs
	}
	out := errs[:0:0]
	for _, fe := range errs {
		if !coveredBy(fe.Field, failed) {
			out = append(out, fe)
		}
	}
	return out
}

func coveredBy(field string, failed []FieldError) bool {
	for _, f := range failed {
		if field == f.Field || strings.HasPrefix(field, f.Field+".") || strings.HasPrefix(field, f.Field+"[") {
			return true
		}
	}
	return false
}

// decodeError turns a body that cannot be decoded at all into a validation error
func decodeError(err error, prefix string) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && joinPath(prefix, typeErr.Field) != "" {
		return &ValidationError{Errors: []FieldError{typeFieldError(joinPath(prefix, typeErr.Field), typeErr)}}
	}
	field := prefix
	if field == "" {
		field = "body"
	}
	return &ValidationError{Errors: []FieldError{{Field: field, Message: "must be a valid JSON object"}}}
}

func joinPath(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	}
	return prefix + "." + field
}

func jsonKind(goKind string) string {
	switch goKind {
	case "string":
		return "string"
	case "slice", "array":
		return "array"
	case "struct", "map":
		return "object"
	case "bool":
		return "boolean"
	}
	return "number"
}
