package handlers

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках используем имена полей из json-тегов, а не имена Go-полей
	v.RegisterTagNameFunc(jsonTagName)
	return v
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// bodyChecker - запрос с проверками, которые не выражаются тегами validate
type bodyChecker interface {
	checkBody() []FieldError
}

// decodeAndValidate читает JSON из тела запроса в req и проверяет его тегами validate.
// Возвращает nil, если запрос корректен, иначе список ошибок для ответа 422.
func decodeAndValidate(r *http.Request, req any) []FieldError {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(req); err != nil {
		return decodeErrors(err, req)
	}
	// после объекта в теле допустимы только пробелы
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return []FieldError{{
			Loc:  []string{"body"},
			Msg:  "JSON decode error: unexpected data after the request object",
			Type: "json_invalid",
		}}
	}

	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return []FieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
		}
		fieldErrors := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fieldErrors = append(fieldErrors, toFieldError(fe))
		}
		return fieldErrors
	}

	if checker, ok := req.(bodyChecker); ok {
		return checker.checkBody()
	}
	return nil
}

func decodeErrors(err error, req any) []FieldError {
	if errors.Is(err, io.EOF) {
		return []FieldError{{Loc: []string{"body"}, Msg: "Field required", Type: "missing"}}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, bodyFieldName(req, typeErr.Field))
		}
		return []FieldError{{Loc: loc, Msg: "Input should be a valid " + typeErr.Type.String(), Type: "type_error"}}
	}

	return []FieldError{{Loc: []string{"body"}, Msg: "JSON decode error: " + err.Error(), Type: "json_invalid"}}
}

// bodyFieldName переводит имя Go-поля из ошибки декодера в ключ JSON
func bodyFieldName(req any, field string) string {
	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return field
	}
	if fld, ok := t.FieldByName(field); ok {
		if name := jsonTagName(fld); name != "" {
			return name
		}
	}
	return field
}

func toFieldError(fe validator.FieldError) FieldError {
	loc := []string{"body", fe.Field()}
	switch fe.Tag() {
	case "required":
		return FieldError{Loc: loc, Msg: "Field required", Type: "missing"}
	case "gt":
		return FieldError{Loc: loc, Msg: "Input should be greater than " + fe.Param(), Type: "greater_than"}
	default:
		return FieldError{Loc: loc, Msg: fe.Error(), Type: fe.Tag()}
	}
}

// pathID разбирает {id} из пути; ошибка описывается так же, как ошибки тела
func pathID(r *http.Request) (int64, []FieldError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, []FieldError{{
			Loc:  []string{"path", "id"},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		}}
	}
	return id, nil
}
