package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"runtime/debug"

	"github.com/argenis972/portfolio-backend/internal/apperr"
	"github.com/argenis972/portfolio-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Codes and messages the mapper answers with on its own.
const (
	CodeInputValidation = "ERRO_VALIDACAO_ENTRADA"
	CodeInternal        = "ERRO_INTERNO"
	CodeUnexpected      = "ERRO_INESPERADO"

	MessageInputValidation = "Dados de entrada inválidos"
	MessageInternal        = "Erro interno do servidor. Tente novamente mais tarde."
	MessageUnexpected      = "Erro inesperado. A equipe foi notificada."
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"campo"`
	Message string `json:"mensagem"`
	Type    string `json:"tipo"`
}

type ErrorBody struct {
	Code    string       `json:"codigo"`
	Message string       `json:"mensagem"`
	Details []FieldError `json:"detalhes,omitempty"`
}

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error ErrorBody `json:"erro"`
}

// PanicError carries a value recovered from a handler panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

type mapped struct {
	status int
	body   ErrorBody
	level  zapcore.Level
	msg    string
	fields []zap.Field
}

// ErrorMapper turns the last error recorded on the gin context, or a
// recovered panic, into an ErrorEnvelope response. Handlers report failures
// with c.Error(err) and return; binding failures are recorded with
// gin.ErrorTypeBind.
func ErrorMapper() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				c.Abort()
				_ = c.Error(&PanicError{Value: rec, Stack: debug.Stack()})
				respond(c)
			}
		}()

		c.Next()
		respond(c)
	}
}

func respond(c *gin.Context) {
	last := c.Errors.Last()
	if last == nil {
		return
	}

	m := mapError(last)
	log := logging.FromContext(c.Request.Context())
	if ce := log.Check(m.level, m.msg); ce != nil {
		ce.Write(m.fields...)
	}

	if c.Writer.Written() {
		return
	}
	c.AbortWithStatusJSON(m.status, ErrorEnvelope{Error: m.body})
}

// statusFor returns the status an error is answered with.
func statusFor(ge *gin.Error) int {
	return mapError(ge).status
}

func mapError(ge *gin.Error) mapped {
	err := ge.Err

	if appErr, ok := apperr.As(err); ok && appErr.Kind.IsDomain() {
		m := mapped{
			status: appErr.Kind.HTTPStatus(),
			body:   ErrorBody{Code: appErr.Code, Message: appErr.Message},
			fields: []zap.Field{zap.String("codigo", appErr.Code), zap.String("mensagem", appErr.Message)},
		}
		switch appErr.Kind {
		case apperr.KindValidation:
			m.level, m.msg = zapcore.WarnLevel, "Erro de validação"
		case apperr.KindNotFound:
			m.level, m.msg = zapcore.InfoLevel, "Recurso não encontrado"
		default:
			m.level, m.msg = zapcore.WarnLevel, "Erro de domínio"
		}
		return m
	}

	if ge.IsType(gin.ErrorTypeBind) {
		details := inputDetails(err)
		return mapped{
			status: http.StatusUnprocessableEntity,
			body:   ErrorBody{Code: CodeInputValidation, Message: MessageInputValidation, Details: details},
			level:  zapcore.WarnLevel,
			msg:    "Erro de validação de entrada",
			fields: []zap.Field{zap.Int("campos_invalidos", len(details)), zap.Any("erros", details)},
		}
	}

	if appErr, ok := apperr.As(err); ok && appErr.Kind == apperr.KindInfrastructure {
		return mapped{
			status: http.StatusInternalServerError,
			body:   ErrorBody{Code: CodeInternal, Message: MessageInternal},
			level:  zapcore.ErrorLevel,
			msg:    "Erro de infraestrutura",
			fields: []zap.Field{
				zap.String("codigo", appErr.Code),
				zap.String("origem", appErr.Source),
				zap.Error(err),
			},
		}
	}

	fields := []zap.Field{zap.String("tipo_erro", fmt.Sprintf("%T", err)), zap.Error(err)}
	var pe *PanicError
	if errors.As(err, &pe) {
		fields = append(fields, zap.ByteString("stack_panico", pe.Stack))
	}
	return mapped{
		status: http.StatusInternalServerError,
		body:   ErrorBody{Code: CodeUnexpected, Message: MessageUnexpected},
		level:  zapcore.ErrorLevel,
		msg:    "Exceção não tratada",
		fields: fields,
	}
}

// inputDetails lists the offending fields of a binding failure in
// declaration order.
func inputDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			msg, typ := describeTag(fe)
			out = append(out, FieldError{Field: "body." + fe.Field(), Message: msg, Type: typ})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := "body"
		if typeErr.Field != "" {
			field += "." + typeErr.Field
		}
		if typeErr.Type != nil && typeErr.Type.Kind() == reflect.String {
			return []FieldError{{Field: field, Message: "Input should be a valid string", Type: "string_type"}}
		}
		return []FieldError{{Field: field, Message: "Input should be a valid " + kindName(typeErr.Type), Type: "type_error"}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []FieldError{{Field: "body", Message: "JSON decode error", Type: "json_invalid"}}
	}
	if errors.Is(err, io.EOF) {
		return []FieldError{{Field: "body", Message: "Field required", Type: "missing"}}
	}

	return []FieldError{{Field: "body", Message: err.Error(), Type: "value_error"}}
}

func describeTag(fe validator.FieldError) (message, typ string) {
	switch fe.Tag() {
	case "required":
		return "Field required", "missing"
	case "min":
		return fmt.Sprintf("String should have at least %s characters", fe.Param()), "string_too_short"
	case "max":
		return fmt.Sprintf("String should have at most %s characters", fe.Param()), "string_too_long"
	case "email":
		return "value is not a valid email address", "value_error"
	}
	return fmt.Sprintf("Value failed the %s check", fe.Tag()), "value_error"
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "dictionary"
	}
	return t.Kind().String()
}
